package restcodec

// ParseOpt bundles parsing limits applied by the top-level read entry points.
// Zero values disable the corresponding limit.
type ParseOpt struct {
	MaxDepth int
	MaxBytes int64
}
