package hpack

import "strings"

// Decoder / BlockDecoder, RFC 7541 Section 6 decode side.
//
// Decoder owns exactly one table for the lifetime of a connection
// direction. BlockDecoder parses one header block: its state is Leading
// (dynamic-size-update signals accepted) until the first field
// representation, then Body (signals after that point are a decode
// error) — a one-way, per-block transition.

type blockState int

const (
	stateLeading blockState = iota
	stateBody
)

// Decoder decodes HPACK-encoded header blocks against one dynamic table.
type Decoder struct {
	table           *table
	maxStringLength int
	stringIntern    map[string]string
}

// NewDecoder creates a decoder whose dynamic table starts at
// initialMaxDynamicTableSize, applying the given options.
func NewDecoder(initialMaxDynamicTableSize uint16, opts ...Option) *Decoder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	d := &Decoder{
		table:           newTable(uint32(initialMaxDynamicTableSize)),
		maxStringLength: o.maxStringLength,
	}
	if o.internCommonHeaders {
		d.stringIntern = newCommonHeaderIntern()
	}
	return d
}

// SetDynamicTableSizeHardLimit fails if h is below the current soft
// limit — the decoder cannot shrink below what the peer believes was
// negotiated — otherwise sets it unconditionally. The decoder never
// enqueues updates of its own; it only ever receives them on the wire.
func (d *Decoder) SetDynamicTableSizeHardLimit(h uint16) error {
	if uint32(h) < d.table.dynamic.SoftLimit() {
		return tableSizeExceededf("set_dynamic_table_size_hard_limit", h)
	}
	d.table.dynamic.SetHardLimit(uint32(h))
	return nil
}

// DynamicTableSize reports the dynamic table's current accounted size,
// for tests asserting against the RFC Appendix C scenarios.
func (d *Decoder) DynamicTableSize() uint32 { return d.table.dynamic.Size() }

// EnterHeaderBlock begins decoding a header block over data. The
// BlockDecoder starts in the Leading state, in which size-update signals
// are accepted; the first call to DecodeField/DecodeRawField drains them
// and moves it to Body, a one-way transition.
func (d *Decoder) EnterHeaderBlock(data []byte) (*BlockDecoder, error) {
	bd := &BlockDecoder{d: d, state: stateLeading}
	bd.r.Reset(data)
	return bd, nil
}

// BlockDecoder parses the field representations of one header block.
type BlockDecoder struct {
	d     *Decoder
	r     byteReader
	state blockState
}

func (bd *BlockDecoder) applySizeUpdate() error {
	s, _, err := decodeInteger(&bd.r, 5)
	if err != nil {
		return err
	}
	if s > maxHpackInt {
		return invalidInputf("dynamic_table_size_update", s)
	}
	return bd.d.table.dynamic.SetSoftLimit(uint32(s))
}

// DecodeField parses the next field representation and returns an owned
// HeaderField. A nil result with a nil error signals end-of-block.
func (bd *BlockDecoder) DecodeField() (*HeaderField, error) {
	raw, err := bd.DecodeRawField()
	if err != nil || raw == nil {
		return nil, err
	}
	hf := HeaderField{Name: strings.Clone(raw.Field.Name), Value: strings.Clone(raw.Field.Value)}
	return &hf, nil
}

// DecodeRawField parses the next field representation and returns it
// along with its on-wire kind. The returned HeaderField's Name/Value may
// alias the input slice passed to EnterHeaderBlock (borrowed) rather than
// being freshly allocated; callers that need them to outlive the block
// must copy, exactly as DecodeField does.
func (bd *BlockDecoder) DecodeRawField() (*RawField, error) {
	if bd.state == stateLeading {
		for !bd.r.Eos() {
			b, err := bd.r.Peek()
			if err != nil {
				return nil, err
			}
			if b&0xe0 != 0x20 {
				break
			}
			if err := bd.applySizeUpdate(); err != nil {
				return nil, err
			}
		}
		bd.state = stateBody
	}

	if bd.r.Eos() {
		return nil, nil
	}

	lead, err := bd.r.Peek()
	if err != nil {
		return nil, err
	}

	switch {
	case lead&0x80 != 0:
		return bd.decodeIndexed()
	case lead&0x40 != 0:
		return bd.decodeLiteral(KindLiteralIncrementalIndexing, 6)
	case lead&0x20 != 0:
		return nil, invalidInputf("decode_field_size_update_after_field", nil)
	case lead&0x10 != 0:
		return bd.decodeLiteral(KindLiteralNeverIndexed, 4)
	default:
		return bd.decodeLiteral(KindLiteralWithoutIndexing, 4)
	}
}

func (bd *BlockDecoder) decodeIndexed() (*RawField, error) {
	index, _, err := decodeInteger(&bd.r, 7)
	if err != nil {
		return nil, err
	}
	if index == 0 {
		return nil, invalidInputf("decode_indexed_zero", nil)
	}
	hf, ok := bd.d.table.get(index)
	if !ok {
		return nil, invalidInputf("decode_indexed", index)
	}
	return &RawField{Kind: KindIndexed, Field: hf}, nil
}

func (bd *BlockDecoder) decodeLiteral(kind FieldKind, prefixLen uint8) (*RawField, error) {
	nameIndex, _, err := decodeInteger(&bd.r, prefixLen)
	if err != nil {
		return nil, err
	}

	var name string
	if nameIndex == 0 {
		nameBytes, _, err := decodeString(&bd.r, bd.d.maxStringLength)
		if err != nil {
			return nil, err
		}
		name = bd.intern(bytesToString(nameBytes))
	} else {
		hf, ok := bd.d.table.get(nameIndex)
		if !ok {
			return nil, invalidInputf("decode_literal_name_index", nameIndex)
		}
		name = hf.Name
	}

	valueBytes, _, err := decodeString(&bd.r, bd.d.maxStringLength)
	if err != nil {
		return nil, err
	}
	value := bytesToString(valueBytes)

	if kind == KindLiteralIncrementalIndexing {
		// Materialize owned copies before insertion: both name and value
		// must outlive this block's input slice. strings.Clone, not a bare
		// string() conversion, because name/value may already be the
		// zero-copy unsafe view produced by bytesToString, and converting
		// a value already of type string is a no-op, not a copy.
		bd.d.table.push(strings.Clone(name), strings.Clone(value))
	}

	return &RawField{Kind: kind, Field: HeaderField{Name: name, Value: value}}, nil
}

func (bd *BlockDecoder) intern(name string) string {
	if bd.d.stringIntern == nil {
		return name
	}
	if interned, ok := bd.d.stringIntern[name]; ok {
		return interned
	}
	return name
}
