package hpack

import "github.com/valyala/bytebufferpool"

// Encoder / BlockEncoder, RFC 7541 Section 6 encode side.
//
// The sink backing a BlockEncoder is a caller-supplied
// *bytebufferpool.ByteBuffer rather than a plain bytes.Buffer: a
// connection's encoder emits many blocks over its lifetime, and a caller
// that returns each finished buffer to the pool lets a later
// EnterHeaderBlock reuse its backing array instead of allocating fresh.
// Finish hands the buffer back; it does not return it to the pool.

// Encoder encodes header fields against one dynamic table, mirroring the
// table state the peer decoder is expected to hold.
type Encoder struct {
	table   *table
	pending []uint32 // prior soft-limit values awaiting emission, in change order
}

// NewEncoder creates an encoder whose dynamic table starts at
// initialMaxDynamicTableSize.
func NewEncoder(initialMaxDynamicTableSize uint16) *Encoder {
	return &Encoder{table: newTable(uint32(initialMaxDynamicTableSize))}
}

// SetDynamicTableSizeSoftLimit fails if s exceeds the hard limit.
// Otherwise it applies s immediately (so subsequent pushes evict against
// the new budget) and, if the limit actually changed, enqueues the value
// it held just before this call so the change can be signalled to the
// peer at the next EnterHeaderBlock.
func (e *Encoder) SetDynamicTableSizeSoftLimit(s uint16) error {
	if uint32(s) > e.table.dynamic.HardLimit() {
		return tableSizeExceededf("set_dynamic_table_size_soft_limit", s)
	}
	old := e.table.dynamic.SoftLimit()
	if err := e.table.dynamic.SetSoftLimit(uint32(s)); err != nil {
		return err
	}
	if old != uint32(s) {
		e.pending = append(e.pending, old)
	}
	return nil
}

// SetDynamicTableSizeHardLimit sets the local upper bound unconditionally.
// If it pulls the soft limit down with it, the soft limit's prior value
// is enqueued the same way SetDynamicTableSizeSoftLimit does.
func (e *Encoder) SetDynamicTableSizeHardLimit(h uint16) {
	oldSoft := e.table.dynamic.SoftLimit()
	e.table.dynamic.SetHardLimit(uint32(h))
	if newSoft := e.table.dynamic.SoftLimit(); newSoft != oldSoft {
		e.pending = append(e.pending, oldSoft)
	}
}

// EnterHeaderBlock starts a new header block writing into sink, draining
// any pending size-update values (in the order they changed) as
// size-update signals before the caller encodes its first field.
func (e *Encoder) EnterHeaderBlock(sink *bytebufferpool.ByteBuffer) (*BlockEncoder, error) {
	for _, old := range e.pending {
		if err := encodeInteger(sink, int(old), 5, 0x20); err != nil {
			return nil, err
		}
	}
	e.pending = e.pending[:0]
	return &BlockEncoder{e: e, sink: sink}, nil
}

// BlockEncoder emits the field representations of one header block.
type BlockEncoder struct {
	e    *Encoder
	sink *bytebufferpool.ByteBuffer
}

// EncodeIndexed emits an Indexed Header Field referencing an existing
// table row.
func (be *BlockEncoder) EncodeIndexed(index int) error {
	if !be.e.table.validateIndex(index) {
		return invalidInputf("encode_indexed", index)
	}
	return encodeInteger(be.sink, index, 7, 0x80)
}

// EncodeStatic emits an Indexed Header Field for a symbolic static-table
// row.
func (be *BlockEncoder) EncodeStatic(entry StaticEntry) error {
	return be.EncodeIndexed(int(entry))
}

// EncodeHeader is the convenience path: it looks up (name, value) in the
// table and emits the cheapest representation it finds — an Indexed
// field on an exact match, or a literal with an indexed name when only
// the name matched, falling back to a literal with an inline name.
func (be *BlockEncoder) EncodeHeader(name, value string, form IndexingForm) error {
	index, exact := be.e.table.find(name, value)
	if exact {
		return be.EncodeIndexed(index)
	}
	lit := NewLiteral(name, value).WithForm(form)
	if index > 0 {
		lit.WithNameIndex(index)
	}
	return be.EncodeLiteral(lit)
}

var literalPrefix = map[IndexingForm]struct {
	prefixLen uint8
	bits      byte
}{
	FormIncrementalIndexing: {6, 0x40},
	FormWithoutIndexing:     {4, 0x00},
	FormNeverIndexed:        {4, 0x10},
}

// EncodeLiteral emits f. The referenced name index (if any) is validated
// first, then — for incremental indexing — the dynamic table is pushed,
// and only then are bytes written to the sink. A failed validation
// therefore always leaves both the table and the sink unchanged.
func (be *BlockEncoder) EncodeLiteral(f *LiteralField) error {
	if f.nameIndex != 0 && !be.e.table.validateIndex(f.nameIndex) {
		return invalidInputf("encode_literal_name_index", f.nameIndex)
	}

	prefix := literalPrefix[f.form]

	if f.form == FormIncrementalIndexing {
		be.e.table.push(f.name, f.value)
	}

	if err := encodeInteger(be.sink, f.nameIndex, prefix.prefixLen, prefix.bits); err != nil {
		return err
	}
	if f.nameIndex == 0 {
		if err := encodeWith(be.sink, f.name, f.nameEncoding); err != nil {
			return err
		}
	}
	return encodeWith(be.sink, f.value, f.valueEncoding)
}

// Finish returns the underlying byte sink. The caller is responsible for
// returning it to bytebufferpool once its bytes have been sent.
func (be *BlockEncoder) Finish() *bytebufferpool.ByteBuffer {
	return be.sink
}
