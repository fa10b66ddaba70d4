package hpack

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"
)

// decodeHex parses a hex fixture, tolerating the whitespace RFC 7541
// uses to group its Appendix C examples into 16-bit words.
func decodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("bad hex fixture %q: %v", s, err)
	}
	return b
}

// RFC 7541 Appendix C.2.1: Literal Header Field with Incremental Indexing,
// without Huffman coding.
func TestAppendixC21LiteralWithIndexing(t *testing.T) {
	ctx := NewContext(4096)
	dec := NewDecoder(ctx)

	wire := decodeHex(t, "400a637573746f6d2d6b6579 0d637573746f6d2d686561646572")
	headers, err := dec.Decode(wire)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := HeaderField{Name: "custom-key", Value: "custom-header", Indexing: Index}
	if len(headers) != 1 || headers[0] != want {
		t.Fatalf("headers = %+v, want [%+v]", headers, want)
	}

	if ctx.DynamicTableLen() != 1 {
		t.Errorf("dynamic table len = %d, want 1", ctx.DynamicTableLen())
	}
	if ctx.DynamicTableSize() != 55 {
		t.Errorf("dynamic table size = %d, want 55", ctx.DynamicTableSize())
	}
}

// RFC 7541 Appendix C.2.4: Indexed Header Field.
func TestAppendixC24Indexed(t *testing.T) {
	ctx := NewContext(4096)
	dec := NewDecoder(ctx)

	headers, err := dec.Decode(decodeHex(t, "82"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := HeaderField{Name: ":method", Value: "GET", Indexing: Index}
	if len(headers) != 1 || headers[0] != want {
		t.Fatalf("headers = %+v, want [%+v]", headers, want)
	}
	if ctx.DynamicTableLen() != 0 {
		t.Errorf("dynamic table should be unchanged, got %d entries", ctx.DynamicTableLen())
	}
}

// RFC 7541 Appendix C.3: three-request sequence without Huffman coding,
// run against one context, checking the dynamic table's final state.
func TestAppendixC3RequestSequence(t *testing.T) {
	ctx := NewContext(4096)
	dec := NewDecoder(ctx)

	wires := []string{
		"828684410f7777772e6578616d706c652e636f6d",
		"828684be58086e6f2d6361636865",
		"828785bf400a637573746f6d2d6b65790c637573746f6d2d76616c7565",
	}

	want := [][]HeaderField{
		{
			{Name: ":method", Value: "GET", Indexing: Index},
			{Name: ":scheme", Value: "http", Indexing: Index},
			{Name: ":path", Value: "/", Indexing: Index},
			{Name: ":authority", Value: "www.example.com", Indexing: Index},
		},
		{
			{Name: ":method", Value: "GET", Indexing: Index},
			{Name: ":scheme", Value: "http", Indexing: Index},
			{Name: ":path", Value: "/", Indexing: Index},
			{Name: ":authority", Value: "www.example.com", Indexing: Index},
			{Name: "cache-control", Value: "no-cache", Indexing: Index},
		},
		{
			{Name: ":method", Value: "GET", Indexing: Index},
			{Name: ":scheme", Value: "https", Indexing: Index},
			{Name: ":path", Value: "/index.html", Indexing: Index},
			{Name: ":authority", Value: "www.example.com", Indexing: Index},
			{Name: "custom-key", Value: "custom-value", Indexing: Index},
		},
	}

	for i, wire := range wires {
		headers, err := dec.Decode(decodeHex(t, wire))
		if err != nil {
			t.Fatalf("request %d: Decode: %v", i+1, err)
		}
		if len(headers) != len(want[i]) {
			t.Fatalf("request %d: got %d headers, want %d", i+1, len(headers), len(want[i]))
		}
		for j, hf := range headers {
			if hf != want[i][j] {
				t.Errorf("request %d header %d = %+v, want %+v", i+1, j, hf, want[i][j])
			}
		}
	}

	if ctx.DynamicTableLen() != 3 {
		t.Fatalf("final dynamic table len = %d, want 3", ctx.DynamicTableLen())
	}
	if ctx.DynamicTableSize() != 164 {
		t.Errorf("final dynamic table size = %d, want 164", ctx.DynamicTableSize())
	}

	wantEntries := []HeaderField{
		{Name: "custom-key", Value: "custom-value"},
		{Name: "cache-control", Value: "no-cache"},
		{Name: ":authority", Value: "www.example.com"},
	}
	for i, want := range wantEntries {
		hf, ok := ctx.table.dynamic.Get(i + 1)
		if !ok || hf.Name != want.Name || hf.Value != want.Value {
			t.Errorf("dynamic entry %d = %+v, %v, want %+v", i+1, hf, ok, want)
		}
	}
}

// Response sequence with a tight settings_max_size, exercising ordered
// eviction (Appendix C.5's scenario, without pinning to its exact wire
// bytes since those differ with the indexing choices the encoder makes).
func TestEvictionUnderTightSettingsMaxSize(t *testing.T) {
	ctx := NewContext(256)
	enc := NewEncoder(ctx)

	responses := [][]HeaderField{
		{
			{Name: ":status", Value: "302", Indexing: Index},
			{Name: "cache-control", Value: "private", Indexing: Index},
			{Name: "date", Value: "Mon, 21 Oct 2013 20:13:21 GMT", Indexing: Index},
			{Name: "location", Value: "https://www.example.com", Indexing: Index},
		},
		{
			{Name: ":status", Value: "307", Indexing: Index},
			{Name: "cache-control", Value: "private", Indexing: Index},
			{Name: "date", Value: "Mon, 21 Oct 2013 20:13:21 GMT", Indexing: Index},
			{Name: "location", Value: "https://www.example.com", Indexing: Index},
		},
		{
			{Name: ":status", Value: "200", Indexing: Index},
			{Name: "cache-control", Value: "private", Indexing: Index},
			{Name: "date", Value: "Mon, 21 Oct 2013 20:13:22 GMT", Indexing: Index},
			{Name: "location", Value: "https://www.example.com", Indexing: Index},
			{Name: "content-encoding", Value: "gzip", Indexing: Index},
			{Name: "set-cookie", Value: "foo=ASDJKHQKBZXOQWEOPIUAXQWEOIU; max-age=3600; version=1", Indexing: Index},
		},
	}

	// The decoder's context must track the same settings_max_size ceiling
	// as the encoder's so both dynamic tables evolve identically.
	decCtx := NewContext(256)
	dec := NewDecoder(decCtx)

	for i, resp := range responses {
		wire, err := enc.Encode(resp)
		if err != nil {
			t.Fatalf("response %d: Encode: %v", i+1, err)
		}
		headers, err := dec.Decode(wire)
		if err != nil {
			t.Fatalf("response %d: Decode: %v", i+1, err)
		}
		if len(headers) != len(resp) {
			t.Fatalf("response %d: got %d headers, want %d", i+1, len(headers), len(resp))
		}
		for j, hf := range headers {
			if hf.Name != resp[j].Name || hf.Value != resp[j].Value {
				t.Errorf("response %d header %d = %+v, want %+v", i+1, j, hf, resp[j])
			}
		}
		if ctx.DynamicTableSize() > 256 {
			t.Errorf("encoder dynamic table size %d exceeds settings_max_size 256", ctx.DynamicTableSize())
		}
		if decCtx.DynamicTableSize() > 256 {
			t.Errorf("decoder dynamic table size %d exceeds settings_max_size 256", decCtx.DynamicTableSize())
		}
	}

	if ctx.DynamicTableLen() != decCtx.DynamicTableLen() {
		t.Errorf("encoder/decoder dynamic table diverged: %d vs %d entries",
			ctx.DynamicTableLen(), decCtx.DynamicTableLen())
	}
}

// The Huffman round-trip worked example from section 8.
func TestHuffmanWorkedExample(t *testing.T) {
	want := decodeHex(t, "f1e3c2e5f23a6ba0ab90f4ff")
	got := HuffmanEncode("www.example.com")
	if !bytes.Equal(got, want) {
		t.Fatalf("HuffmanEncode(www.example.com) = %x, want %x", got, want)
	}

	s, err := HuffmanDecode(got)
	if err != nil {
		t.Fatalf("HuffmanDecode: %v", err)
	}
	if s != "www.example.com" {
		t.Fatalf("HuffmanDecode round-trip = %q", s)
	}
}
