package mapper

import (
	"reflect"
	"sync"
)

// Registry resolves factories by their conventional name.
type Registry interface {
	Lookup(name string) (any, bool)
}

// MapRegistry is a concurrency-safe Registry backed by sync.Map.
type MapRegistry struct {
	m sync.Map
}

// NewMapRegistry returns an empty registry.
func NewMapRegistry() *MapRegistry { return &MapRegistry{} }

// Register stores factory under name, replacing any previous entry.
func (r *MapRegistry) Register(name string, factory any) { r.m.Store(name, factory) }

// Lookup returns the factory stored under name.
func (r *MapRegistry) Lookup(name string) (any, bool) { return r.m.Load(name) }

// DefaultRegistry is the registry generated packages add themselves to from
// their init functions.
var DefaultRegistry = NewMapRegistry()

// Register adds factory to DefaultRegistry.
func Register(name string, factory any) { DefaultRegistry.Register(name, factory) }

// ReaderFactoryName returns the conventional reader factory name for t:
// "<pkgpath>/json/reader.<Name>ReaderFactory".
func ReaderFactoryName(t reflect.Type) string {
	return t.PkgPath() + "/json/reader." + t.Name() + "ReaderFactory"
}

// WriterFactoryName returns the conventional writer factory name for t:
// "<pkgpath>/json/writer.<Name>WriterFactory".
func WriterFactoryName(t reflect.Type) string {
	return t.PkgPath() + "/json/writer." + t.Name() + "WriterFactory"
}
