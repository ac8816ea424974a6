package hpack

// Field representations, RFC 7541 Section 6: the five on-wire shapes a
// single octet's top bits select between.

// FieldKind identifies the on-wire representation of a decoded field,
// exposed so an intermediary decoding then re-encoding a header block can
// preserve "never indexed" semantics rather than collapsing every
// literal into one form (see RawField / BlockDecoder.DecodeRawField).
type FieldKind int

const (
	KindIndexed FieldKind = iota
	KindLiteralIncrementalIndexing
	KindLiteralWithoutIndexing
	KindLiteralNeverIndexed
	KindDynamicTableSizeUpdate
)

func (k FieldKind) String() string {
	switch k {
	case KindIndexed:
		return "indexed"
	case KindLiteralIncrementalIndexing:
		return "literal-incremental-indexing"
	case KindLiteralWithoutIndexing:
		return "literal-without-indexing"
	case KindLiteralNeverIndexed:
		return "literal-never-indexed"
	case KindDynamicTableSizeUpdate:
		return "dynamic-table-size-update"
	default:
		return "unknown"
	}
}

// RawField pairs a resolved header field with the on-wire kind it was
// decoded from.
type RawField struct {
	Kind  FieldKind
	Field HeaderField
}

// Encoding selects how a literal's name or value is placed on the wire.
// EncodingAuto picks whichever of the raw and Huffman-coded forms is
// shorter; EncodingRaw/EncodingHuffman force one form regardless of
// length, for callers (tests, interop fixtures) that need a specific
// byte sequence.
type Encoding int

const (
	EncodingAuto Encoding = iota
	EncodingRaw
	EncodingHuffman
)

func encodeWith(sink ByteSink, s string, enc Encoding) error {
	switch enc {
	case EncodingRaw:
		return encodeStringRaw(sink, stringToBytes(s))
	case EncodingHuffman:
		return encodeStringHuffman(sink, stringToBytes(s))
	default:
		return encodeString(sink, stringToBytes(s))
	}
}

// IndexingForm selects which of the three literal representations a
// LiteralField encodes as.
type IndexingForm int

const (
	FormIncrementalIndexing IndexingForm = iota
	FormWithoutIndexing
	FormNeverIndexed
)

// LiteralField is a builder-configured literal header field: indexing
// form, name source, and the encoding of each string are set
// independently rather than through a positional boolean argument list.
type LiteralField struct {
	name  string
	value string

	form          IndexingForm
	nameIndex     int // 0 means "name encoded inline"
	nameEncoding  Encoding
	valueEncoding Encoding
}

// NewLiteral starts a literal field with an inline name and value,
// incremental indexing, and automatic Huffman-or-raw selection.
func NewLiteral(name, value string) *LiteralField {
	return &LiteralField{name: name, value: value, form: FormIncrementalIndexing}
}

func (f *LiteralField) WithForm(form IndexingForm) *LiteralField {
	f.form = form
	return f
}

// WithNameIndex references an existing table entry for the name instead
// of encoding it inline. index is absolute (1..=61 static, 62+ dynamic).
func (f *LiteralField) WithNameIndex(index int) *LiteralField {
	f.nameIndex = index
	return f
}

func (f *LiteralField) WithNameEncoding(enc Encoding) *LiteralField {
	f.nameEncoding = enc
	return f
}

func (f *LiteralField) WithValueEncoding(enc Encoding) *LiteralField {
	f.valueEncoding = enc
	return f
}
