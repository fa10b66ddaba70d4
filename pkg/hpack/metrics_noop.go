//go:build !prometheus

package hpack

// No-op instrumentation hooks for builds without the "prometheus" tag, so
// call sites in codec.go / dynamic_table.go / string.go never need a
// build-tag switch of their own.

func recordEncode()                     {}
func recordDecode()                     {}
func recordEviction()                   {}
func recordHuffmanBytesSaved(saved int) {}
