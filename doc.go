// Package restcodec reads and writes JSON documents through generated,
// reflection-free codecs.
//
// Reading is lenient: a Session walks the token stream and records every data
// failure it meets as "[line:column] message" instead of stopping at the
// first one. Only the top-level entry points (ReadObject, ReadArray and their
// variants) turn the collected failures into a *ParseError. Writing is fail
// fast: the first structural or I/O error is returned.
//
// Design policy:
//   - Keep only public APIs in the root package; put tokenizers under source/
//     and shared internals under internal/.
//   - Codecs for a type are looked up by naming convention through package
//     mapper; generated packages register factories from init functions.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	pet, err := restcodec.ReadObjectBytes(data, petReader{})
//	if pe, ok := restcodec.AsParseError(err); ok {
//		for _, f := range pe.Failures { ... }
//	}
//	out, err := restcodec.ToJSONString(pet, petWriter{})
package restcodec
