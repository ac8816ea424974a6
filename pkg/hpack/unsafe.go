package hpack

import "unsafe"

// bytesToString borrows b as a string with no copy. The result must not
// outlive b and must not be modified; decodeLiteral and the callers
// above it that need to retain what this returns copy it first, via
// strings.Clone.
func bytesToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// stringToBytes borrows s as a []byte with no copy. The result must
// never be written to — s's backing array is not addressable memory by
// Go's rules, only readable through this alias — and must not outlive s.
// Used on the encode path, where strings are only ever read from to
// compute lengths and write bytes out, never mutated.
func stringToBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
