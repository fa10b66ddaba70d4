package hpack

import (
	"errors"
	"strconv"
)

// Error taxonomy (spec section 7). Each sentinel corresponds to exactly one
// failure mode; decoders and encoders never return an error outside this
// set. Mirrors the sentinel + package-prefixed-message convention used by
// http2/errors.go in the wider codebase.
var (
	// ErrTruncated means the buffer ended mid-field, mid-integer, or
	// mid-string.
	ErrTruncated = errors.New("hpack: truncated input")

	// ErrIntegerOverflow means a variable-length integer's continuation
	// bytes accumulated past the implementation bound.
	ErrIntegerOverflow = errors.New("hpack: integer overflow")

	// ErrInvalidIndex means an index was zero in an Indexed form, or
	// pointed past the combined static+dynamic table.
	ErrInvalidIndex = errors.New("hpack: invalid index")

	// ErrTableSizeExceeded means a Dynamic Table Size Update requested a
	// max_size larger than settings_max_size.
	ErrTableSizeExceeded = errors.New("hpack: dynamic table size exceeds settings maximum")

	// ErrTableUpdateMisplaced means a Dynamic Table Size Update appeared
	// after a header field had already been decoded in the same block.
	ErrTableUpdateMisplaced = errors.New("hpack: dynamic table size update after header field")

	// ErrHuffmanInvalidPadding means the final bits of a Huffman string
	// were neither empty nor a short all-ones prefix of EOS.
	ErrHuffmanInvalidPadding = errors.New("hpack: invalid huffman padding")

	// ErrHuffmanEOSInStream means the EOS symbol appeared as a decoded
	// symbol rather than as padding.
	ErrHuffmanEOSInStream = errors.New("hpack: huffman EOS symbol in stream")

	// ErrEmptyName means a literal header field decoded to an empty name.
	ErrEmptyName = errors.New("hpack: empty header name")

	// ErrAllocation means a string's declared length exceeded the
	// decoder's configured maximum, so its octets were not read.
	ErrAllocation = errors.New("hpack: allocation failure")
)

// DecodeError wraps a sentinel from the taxonomy above with the byte offset
// in the header block at which it was detected, following the
// ConnectionError/StreamError wrapping pattern elsewhere in the codebase.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return "hpack: at offset " + strconv.Itoa(e.Offset) + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
