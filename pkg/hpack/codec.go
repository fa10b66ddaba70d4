package hpack

// Field representation codec (RFC 7541 Section 6): the five forms an
// octet stream decomposes into, disambiguated by the high bits of the
// first octet of each field — Indexed (1xxxxxxx), Literal with
// Incremental Indexing (01xxxxxx), Dynamic Table Size Update (001xxxxx),
// Literal Never Indexed (0001xxxx), Literal without Indexing (0000xxxx).

// defaultMaxStringLength bounds a single decoded name or value, guarding
// against a peer claiming an implausibly large string length (spec
// section 7, ALLOCATION).
const defaultMaxStringLength = 16 << 20 // 16 MiB

// Encoder produces HPACK-compressed header blocks against a Context. An
// Encoder is not safe for concurrent use, and its Context must not be
// shared with a Decoder: the peer's Decoder keeps its own Context, whose
// dynamic table evolves in lockstep with this one's across calls.
type Encoder struct {
	ctx *Context
	buf []byte
}

// NewEncoder creates an encoder bound to ctx.
func NewEncoder(ctx *Context) *Encoder {
	return &Encoder{ctx: ctx}
}

// Encode returns the HPACK encoding of fields. Each field's Indexing
// directive governs which of the five representations is chosen (spec
// section 4.5): a field with a full match in the combined table is
// emitted as Indexed unless its directive is NeverIndex (which must
// survive as a distinguishable literal even when indexable, so a future
// re-encoding cannot silently allow indexing); Index emissions that add a
// new entry use Literal with Incremental Indexing and update the dynamic
// table; NoIndex and NeverIndex never touch the dynamic table.
func (e *Encoder) Encode(fields []HeaderField) ([]byte, error) {
	recordEncode()
	e.buf = e.buf[:0]

	if e.ctx.pendingMaxSize {
		e.buf = encodeInteger(e.buf, uint64(e.ctx.table.dynamic.MaxSize()), 5, 0x20)
		e.ctx.pendingMaxSize = false
	}

	for _, hf := range fields {
		if hf.Name == "" {
			return nil, ErrEmptyName
		}
		e.encodeField(hf)
	}

	out := make([]byte, len(e.buf))
	copy(out, e.buf)
	return out, nil
}

func (e *Encoder) encodeField(hf HeaderField) {
	index, kind := e.ctx.table.Find(hf.Name, hf.Value)

	if kind == fullMatch && hf.Indexing != NeverIndex {
		e.buf = encodeInteger(e.buf, uint64(index), 7, 0x80)
		return
	}

	var flags byte
	var prefixBits uint8
	switch hf.Indexing {
	case Index:
		flags, prefixBits = 0x40, 6
	case NeverIndex:
		flags, prefixBits = 0x10, 4
	default: // NoIndex
		flags, prefixBits = 0x00, 4
	}

	if kind == nameMatch || kind == fullMatch {
		e.buf = encodeInteger(e.buf, uint64(index), prefixBits, flags)
	} else {
		e.buf = encodeInteger(e.buf, 0, prefixBits, flags)
		e.buf = encodeString(e.buf, hf.Name)
	}
	e.buf = encodeString(e.buf, hf.Value)

	if hf.Indexing == Index {
		e.ctx.table.Add(HeaderField{Name: hf.Name, Value: hf.Value, Indexing: Index})
	}
}

// Decoder consumes HPACK-compressed header blocks against a Context.
type Decoder struct {
	ctx             *Context
	r               reader
	maxStringLength int
}

// NewDecoder creates a decoder bound to ctx, with defaultMaxStringLength
// as its per-string size guard.
func NewDecoder(ctx *Context) *Decoder {
	return &Decoder{ctx: ctx, maxStringLength: defaultMaxStringLength}
}

// SetMaxStringLength overrides the per-string size guard. A non-positive
// value disables the guard.
func (d *Decoder) SetMaxStringLength(n int) {
	d.maxStringLength = n
}

// Decode decodes a single header block and returns its fields.
func (d *Decoder) Decode(data []byte) ([]HeaderField, error) {
	return d.DecodeInto(data, nil)
}

// DecodeInto decodes a single header block, appending decoded fields to
// headers (typically passed as an existing slice's [:0] to reuse its
// backing array).
func (d *Decoder) DecodeInto(data []byte, headers []HeaderField) ([]HeaderField, error) {
	recordDecode()
	d.r.Reset(data)
	seenField := false

	for d.r.Len() > 0 {
		offset := d.r.pos

		b, err := d.r.ReadByte()
		if err != nil {
			return headers, &DecodeError{Offset: offset, Err: ErrTruncated}
		}
		d.r.pos--

		var hf HeaderField
		isUpdate := false

		switch {
		case b&0x80 != 0:
			// Indexed Header Field (section 6.1): 1xxxxxxx
			hf, err = d.decodeIndexed()

		case b&0x40 != 0:
			// Literal with Incremental Indexing (section 6.2.1): 01xxxxxx
			hf, err = d.decodeLiteral(6, Index)

		case b&0x20 != 0:
			// Dynamic Table Size Update (section 6.3): 001xxxxx
			isUpdate = true
			err = d.decodeTableSizeUpdate(seenField)

		case b&0x10 != 0:
			// Literal Never Indexed (section 6.2.3): 0001xxxx
			hf, err = d.decodeLiteral(4, NeverIndex)

		default:
			// Literal without Indexing (section 6.2.2): 0000xxxx
			hf, err = d.decodeLiteral(4, NoIndex)
		}

		if err != nil {
			return headers, &DecodeError{Offset: offset, Err: err}
		}

		if isUpdate {
			continue
		}

		seenField = true
		headers = append(headers, hf)
	}

	return headers, nil
}

func (d *Decoder) decodeIndexed() (HeaderField, error) {
	index, err := decodeInteger(&d.r, 7)
	if err != nil {
		return HeaderField{}, err
	}
	if index == 0 {
		return HeaderField{}, ErrInvalidIndex
	}

	hf, ok := d.ctx.table.Get(int(index))
	if !ok {
		return HeaderField{}, ErrInvalidIndex
	}
	hf.Indexing = Index
	return hf, nil
}

func (d *Decoder) decodeLiteral(prefixBits uint8, indexing Indexing) (HeaderField, error) {
	nameIndex, err := decodeInteger(&d.r, prefixBits)
	if err != nil {
		return HeaderField{}, err
	}

	var name string
	if nameIndex == 0 {
		name, err = decodeString(&d.r, d.maxStringLength)
		if err != nil {
			return HeaderField{}, err
		}
	} else {
		entry, ok := d.ctx.table.Get(int(nameIndex))
		if !ok {
			return HeaderField{}, ErrInvalidIndex
		}
		name = entry.Name
	}

	if name == "" {
		return HeaderField{}, ErrEmptyName
	}

	value, err := decodeString(&d.r, d.maxStringLength)
	if err != nil {
		return HeaderField{}, err
	}

	hf := HeaderField{Name: name, Value: value, Indexing: indexing}
	if indexing == Index {
		d.ctx.table.Add(hf)
	}
	return hf, nil
}

func (d *Decoder) decodeTableSizeUpdate(seenField bool) error {
	if seenField {
		return ErrTableUpdateMisplaced
	}

	size, err := decodeInteger(&d.r, 5)
	if err != nil {
		return err
	}
	if uint32(size) > d.ctx.settingsMaxSize {
		return ErrTableSizeExceeded
	}

	d.ctx.table.dynamic.SetMaxSize(uint32(size))
	return nil
}
