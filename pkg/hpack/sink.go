package hpack

// ByteSink is the abstract write target a BlockEncoder writes a header
// block into. *bytebufferpool.ByteBuffer satisfies it directly; encoding
// against the interface rather than the concrete pooled buffer keeps the
// field/integer/string codecs free of any dependency on the pool itself.
type ByteSink interface {
	Write(p []byte) (int, error)
	WriteByte(c byte) error
}
