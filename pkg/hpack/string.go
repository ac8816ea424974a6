package hpack

// String literal codec, RFC 7541 Section 5.2: a 7-bit-prefix integer
// carrying the payload length, with the Huffman flag in the prefix's top
// bit (the "P" passed to encodeInteger/decodeInteger), followed by that
// many bytes of payload.

// encodeStringRaw writes s to sink uncoded, with H=0.
func encodeStringRaw(sink ByteSink, s []byte) error {
	if err := encodeInteger(sink, len(s), 7, 0x00); err != nil {
		return err
	}
	if _, err := sink.Write(s); err != nil {
		return ioErrorf("encode_string", err)
	}
	return nil
}

// encodeStringHuffman Huffman-encodes s and writes it to sink, with H=1.
func encodeStringHuffman(sink ByteSink, s []byte) error {
	encodedLen := huffmanEncodedLen(s)
	if err := encodeInteger(sink, encodedLen, 7, 0x80); err != nil {
		return err
	}
	encoded := huffmanAppend(make([]byte, 0, encodedLen), s)
	if _, err := sink.Write(encoded); err != nil {
		return ioErrorf("encode_string", err)
	}
	return nil
}

// encodeString writes whichever of the raw and Huffman-coded forms of s
// is shorter. This is a fixed, always-applied length comparison, not a
// tunable or adaptive compression search.
func encodeString(sink ByteSink, s []byte) error {
	if len(s) > 0 {
		if hlen := huffmanEncodedLen(s); hlen < len(s) {
			return encodeStringHuffman(sink, s)
		}
	}
	return encodeStringRaw(sink, s)
}

// decodeString reads a string literal from r. When the Huffman flag is
// clear, data is a zero-copy sub-slice of r's backing array (borrowed);
// when set, data is freshly allocated by the Huffman decoder (owned).
// Callers that need to outlive the current block (literal-with-indexing)
// must copy a borrowed result before returning it.
func decodeString(r *byteReader, maxLen int) (data []byte, huffman bool, err error) {
	lead, err := r.Peek()
	if err != nil {
		return nil, false, err
	}
	huffman = lead&0x80 != 0

	length, _, err := decodeInteger(r, 7)
	if err != nil {
		return nil, false, err
	}
	if length > maxLen {
		return nil, false, stringTooLongf("decode_string_length", length)
	}

	raw, err := r.ReadSlice(length)
	if err != nil {
		return nil, false, invalidInputf("decode_string", err)
	}

	if !huffman {
		return raw, false, nil
	}

	decoded, err := huffmanDecode(make([]byte, 0, length*2), raw)
	if err != nil {
		return nil, false, err
	}
	return decoded, true, nil
}
