package hpack

import "io"

// byteReader is a lightweight wrapper around a borrowed []byte that
// implements peek/read_byte/read_slice without allocating the way
// bytes.NewReader + bufio would. It never advances past the end of the
// slice; partial reads are surfaced as errors, never silent truncation.
//
// It only ever advances; callers needing to re-inspect a byte they've
// already consumed (the field-kind dispatch) use Peek before the
// consuming read, not an unread-after-the-fact step.
type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) Reset(data []byte) {
	r.data = data
	r.pos = 0
}

// Len reports the number of unread bytes.
func (r *byteReader) Len() int {
	return len(r.data) - r.pos
}

// Eos reports whether the reader has reached the end of its slice.
func (r *byteReader) Eos() bool {
	return r.pos >= len(r.data)
}

// Peek returns the byte at the current offset without advancing.
func (r *byteReader) Peek() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, invalidInputf("peek", nil)
	}
	return r.data[r.pos], nil
}

// ReadSlice returns a zero-copy sub-slice of length n and advances past it.
func (r *byteReader) ReadSlice(n int) ([]byte, error) {
	if n > r.Len() {
		return nil, invalidInputf("read_slice", n)
	}
	s := r.data[r.pos : r.pos+n]
	r.pos += n
	return s, nil
}

// ReadByte implements io.ByteReader.
func (r *byteReader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

