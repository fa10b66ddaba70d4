package hpack

// String literal representation (RFC 7541 Section 5.2): an H bit marking
// whether the octets are Huffman-encoded, a 7-bit-prefixed length, and
// that many octets.

const stringHuffmanFlag = 0x80

// encodeString appends the RFC 7541 Section 5.2 encoding of s to buf,
// choosing Huffman encoding whenever it strictly shortens the octets; a
// tie is broken in favor of the literal encoding, which avoids the
// encode/decode round trip for no space benefit.
func encodeString(buf []byte, s string) []byte {
	huffLen := HuffmanEncodeLen(s)

	if huffLen < len(s) {
		recordHuffmanBytesSaved(len(s) - huffLen)
		buf = encodeInteger(buf, uint64(huffLen), 7, stringHuffmanFlag)
		return append(buf, HuffmanEncode(s)...)
	}

	buf = encodeInteger(buf, uint64(len(s)), 7, 0)
	return append(buf, s...)
}

// decodeString reads an RFC 7541 Section 5.2 string from r. maxLen bounds
// the accepted length (spec section 7, ALLOCATION); a non-positive maxLen
// means unbounded.
func decodeString(r *reader, maxLen int) (string, error) {
	first, err := r.ReadByte()
	if err != nil {
		return "", ErrTruncated
	}
	r.pos-- // un-read: decodeInteger expects to consume the prefix octet itself

	huffman := first&stringHuffmanFlag != 0

	length, err := decodeInteger(r, 7)
	if err != nil {
		return "", err
	}

	if maxLen > 0 && length > uint64(maxLen) {
		return "", ErrAllocation
	}

	raw, err := r.ReadN(int(length))
	if err != nil {
		return "", ErrTruncated
	}

	if !huffman {
		return string(raw), nil
	}

	return HuffmanDecode(raw)
}
