package hpack

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every error the decoder returns when the
// input bytes do not form a valid HPACK encoding: a malformed integer, a
// Huffman code with no matching symbol, a field index outside the table,
// or a string length that runs past the end of the block.
var ErrInvalidInput = errors.New("hpack: invalid input")

// ErrIO is wrapped when the encoder's ByteSink refuses a write. A
// truncated block on the decode side is reported as ErrInvalidInput.
var ErrIO = errors.New("hpack: byte sink write failed")

// ErrTableSizeExceeded is returned by the dynamic table when the encoder
// or decoder attempts a size update beyond the negotiated hard limit.
var ErrTableSizeExceeded = errors.New("hpack: dynamic table size update exceeds limit")

// ErrStringTooLong is returned by the decoder when a literal string's
// declared length exceeds the configured maxStringLength guard.
var ErrStringTooLong = errors.New("hpack: string literal exceeds maximum length")

// CodecError carries the operation that failed and the offending value
// alongside the sentinel it wraps.
type CodecError struct {
	Op  string
	Val any
	Err error
}

func (e *CodecError) Error() string {
	if e.Val == nil {
		return fmt.Sprintf("hpack: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("hpack: %s: %v (%v)", e.Op, e.Err, e.Val)
}

func (e *CodecError) Unwrap() error { return e.Err }

func invalidInputf(op string, val any) error {
	return &CodecError{Op: op, Val: val, Err: ErrInvalidInput}
}

func ioErrorf(op string, err error) error {
	return &CodecError{Op: op, Err: fmt.Errorf("%w: %w", ErrIO, err)}
}

func tableSizeExceededf(op string, val any) error {
	return &CodecError{Op: op, Val: val, Err: ErrTableSizeExceeded}
}

func stringTooLongf(op string, val any) error {
	return &CodecError{Op: op, Val: val, Err: ErrStringTooLong}
}
