// Package hpack implements RFC 7541 HPACK header compression for HTTP/2:
// a static 61-entry dictionary, a per-connection dynamic FIFO dictionary
// with soft/hard byte-budget limits, an N-bit-prefix variable-length
// integer codec, and the canonical Huffman code over octets.
//
// The codec is single-threaded per Encoder/Decoder instance: one of each
// per HTTP/2 connection direction, with no internal concurrency and no
// I/O of its own. Callers own framing, transport, and the byte slices
// passed in and out.
package hpack
