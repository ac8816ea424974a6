package hpack

import "testing"

// Conformance fixtures straight from RFC 7541 Appendix C: three requests
// sharing one decoder (C.3/C.4), in both the plain and Huffman-coded
// forms, and a response sequence starting from a 256-byte dynamic table
// budget that forces an eviction partway through (C.5/C.6).

func decodeAllFields(t *testing.T, dec *Decoder, block []byte) []HeaderField {
	t.Helper()
	bd, err := dec.EnterHeaderBlock(block)
	if err != nil {
		t.Fatalf("EnterHeaderBlock: %v", err)
	}
	var got []HeaderField
	for {
		hf, err := bd.DecodeField()
		if err != nil {
			t.Fatalf("DecodeField: %v", err)
		}
		if hf == nil {
			break
		}
		got = append(got, *hf)
	}
	return got
}

func assertFields(t *testing.T, got []HeaderField, want []HeaderField) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d fields, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAppendixC3RequestsWithoutHuffman(t *testing.T) {
	dec := NewDecoder(4096)

	block1 := []byte{
		0x82, 0x86, 0x84, 0x41, 0x0f, 0x77, 0x77, 0x77, 0x2e, 0x65,
		0x78, 0x61, 0x6d, 0x70, 0x6c, 0x65, 0x2e, 0x63, 0x6f, 0x6d,
	}
	assertFields(t, decodeAllFields(t, dec, block1), []HeaderField{
		{":method", "GET"},
		{":scheme", "http"},
		{":path", "/"},
		{":authority", "www.example.com"},
	})
	if dec.DynamicTableSize() != 57 {
		t.Errorf("table size after request 1 = %d, want 57", dec.DynamicTableSize())
	}

	block2 := []byte{
		0x82, 0x86, 0x84, 0xbe, 0x58, 0x08, 0x6e,
		0x6f, 0x2d, 0x63, 0x61, 0x63, 0x68, 0x65,
	}
	assertFields(t, decodeAllFields(t, dec, block2), []HeaderField{
		{":method", "GET"},
		{":scheme", "http"},
		{":path", "/"},
		{":authority", "www.example.com"},
		{"cache-control", "no-cache"},
	})
	if dec.DynamicTableSize() != 110 {
		t.Errorf("table size after request 2 = %d, want 110", dec.DynamicTableSize())
	}

	block3 := []byte{
		0x82, 0x87, 0x85, 0xbf, 0x40, 0x0a, 0x63, 0x75, 0x73, 0x74, 0x6f,
		0x6d, 0x2d, 0x6b, 0x65, 0x79, 0x0c, 0x63, 0x75, 0x73, 0x74, 0x6f,
		0x6d, 0x2d, 0x76, 0x61, 0x6c, 0x75, 0x65,
	}
	assertFields(t, decodeAllFields(t, dec, block3), []HeaderField{
		{":method", "GET"},
		{":scheme", "https"},
		{":path", "/index.html"},
		{":authority", "www.example.com"},
		{"custom-key", "custom-value"},
	})
	if dec.DynamicTableSize() != 164 {
		t.Errorf("table size after request 3 = %d, want 164", dec.DynamicTableSize())
	}
}

func TestAppendixC4RequestsWithHuffman(t *testing.T) {
	dec := NewDecoder(4096)

	block1 := []byte{
		0x82, 0x86, 0x84, 0x41, 0x8c, 0xf1, 0xe3, 0xc2,
		0xe5, 0xf2, 0x3a, 0x6b, 0xa0, 0xab, 0x90, 0xf4, 0xff,
	}
	assertFields(t, decodeAllFields(t, dec, block1), []HeaderField{
		{":method", "GET"},
		{":scheme", "http"},
		{":path", "/"},
		{":authority", "www.example.com"},
	})
	if dec.DynamicTableSize() != 57 {
		t.Errorf("table size after request 1 = %d, want 57", dec.DynamicTableSize())
	}

	block2 := []byte{
		0x82, 0x86, 0x84, 0xbe, 0x58, 0x86, 0xa8, 0xeb, 0x10, 0x64, 0x9c, 0xbf,
	}
	assertFields(t, decodeAllFields(t, dec, block2), []HeaderField{
		{":method", "GET"},
		{":scheme", "http"},
		{":path", "/"},
		{":authority", "www.example.com"},
		{"cache-control", "no-cache"},
	})
	if dec.DynamicTableSize() != 110 {
		t.Errorf("table size after request 2 = %d, want 110", dec.DynamicTableSize())
	}

	block3 := []byte{
		0x82, 0x87, 0x85, 0xbf, 0x40, 0x88, 0x25, 0xa8, 0x49,
		0xe9, 0x5b, 0xa9, 0x7d, 0x7f, 0x89, 0x25, 0xa8, 0x49,
		0xe9, 0x5b, 0xb8, 0xe8, 0xb4, 0xbf,
	}
	assertFields(t, decodeAllFields(t, dec, block3), []HeaderField{
		{":method", "GET"},
		{":scheme", "https"},
		{":path", "/index.html"},
		{":authority", "www.example.com"},
		{"custom-key", "custom-value"},
	})
	if dec.DynamicTableSize() != 164 {
		t.Errorf("table size after request 3 = %d, want 164", dec.DynamicTableSize())
	}
}

func TestAppendixC5ResponsesWithoutHuffman(t *testing.T) {
	dec := NewDecoder(256)

	block1 := []byte{
		0x48, 0x03, 0x33, 0x30, 0x32, 0x58, 0x07, 0x70, 0x72, 0x69,
		0x76, 0x61, 0x74, 0x65, 0x61, 0x1d, 0x4d, 0x6f, 0x6e, 0x2c,
		0x20, 0x32, 0x31, 0x20, 0x4f, 0x63, 0x74, 0x20, 0x32, 0x30,
		0x31, 0x33, 0x20, 0x32, 0x30, 0x3a, 0x31, 0x33, 0x3a, 0x32,
		0x31, 0x20, 0x47, 0x4d, 0x54, 0x6e, 0x17, 0x68, 0x74, 0x74,
		0x70, 0x73, 0x3a, 0x2f, 0x2f, 0x77, 0x77, 0x77, 0x2e, 0x65,
		0x78, 0x61, 0x6d, 0x70, 0x6c, 0x65, 0x2e, 0x63, 0x6f, 0x6d,
	}
	assertFields(t, decodeAllFields(t, dec, block1), []HeaderField{
		{":status", "302"},
		{"cache-control", "private"},
		{"date", "Mon, 21 Oct 2013 20:13:21 GMT"},
		{"location", "https://www.example.com"},
	})
	if dec.DynamicTableSize() != 222 {
		t.Errorf("table size after response 1 = %d, want 222", dec.DynamicTableSize())
	}

	block2 := []byte{0x48, 0x03, 0x33, 0x30, 0x37, 0xc1, 0xc0, 0xbf}
	assertFields(t, decodeAllFields(t, dec, block2), []HeaderField{
		{":status", "307"},
		{"cache-control", "private"},
		{"date", "Mon, 21 Oct 2013 20:13:21 GMT"},
		{"location", "https://www.example.com"},
	})
	if dec.DynamicTableSize() != 222 {
		t.Errorf("table size after response 2 = %d, want 222", dec.DynamicTableSize())
	}

	block3 := []byte{
		0x88, 0xc1, 0x61, 0x1d, 0x4d, 0x6f, 0x6e, 0x2c,
		0x20, 0x32, 0x31, 0x20, 0x4f, 0x63, 0x74, 0x20,
		0x32, 0x30, 0x31, 0x33, 0x20, 0x32, 0x30, 0x3a,
		0x31, 0x33, 0x3a, 0x32, 0x32, 0x20, 0x47, 0x4d,
		0x54, 0xc0, 0x5a, 0x04, 0x67, 0x7a, 0x69, 0x70,
		0x77, 0x38, 0x66, 0x6f, 0x6f, 0x3d, 0x41, 0x53,
		0x44, 0x4a, 0x4b, 0x48, 0x51, 0x4b, 0x42, 0x5a,
		0x58, 0x4f, 0x51, 0x57, 0x45, 0x4f, 0x50, 0x49,
		0x55, 0x41, 0x58, 0x51, 0x57, 0x45, 0x4f, 0x49,
		0x55, 0x3b, 0x20, 0x6d, 0x61, 0x78, 0x2d, 0x61,
		0x67, 0x65, 0x3d, 0x33, 0x36, 0x30, 0x30, 0x3b,
		0x20, 0x76, 0x65, 0x72, 0x73, 0x69, 0x6f, 0x6e,
		0x3d, 0x31,
	}
	assertFields(t, decodeAllFields(t, dec, block3), []HeaderField{
		{":status", "200"},
		{"cache-control", "private"},
		{"date", "Mon, 21 Oct 2013 20:13:22 GMT"},
		{"location", "https://www.example.com"},
		{"content-encoding", "gzip"},
		{"set-cookie", "foo=ASDJKHQKBZXOQWEOPIUAXQWEOIU; max-age=3600; version=1"},
	})
	if dec.DynamicTableSize() != 215 {
		t.Errorf("table size after response 3 = %d, want 215 (eviction of the first date entry)", dec.DynamicTableSize())
	}
}

func TestAppendixC6ResponsesWithHuffman(t *testing.T) {
	dec := NewDecoder(256)

	block1 := []byte{
		0x48, 0x82, 0x64, 0x02, 0x58, 0x85, 0xae, 0xc3, 0x77, 0x1a, 0x4b,
		0x61, 0x96, 0xd0, 0x7a, 0xbe, 0x94, 0x10, 0x54, 0xd4, 0x44, 0xa8,
		0x20, 0x05, 0x95, 0x04, 0x0b, 0x81, 0x66, 0xe0, 0x82, 0xa6, 0x2d,
		0x1b, 0xff, 0x6e, 0x91, 0x9d, 0x29, 0xad, 0x17, 0x18, 0x63, 0xc7,
		0x8f, 0x0b, 0x97, 0xc8, 0xe9, 0xae, 0x82, 0xae, 0x43, 0xd3,
	}
	assertFields(t, decodeAllFields(t, dec, block1), []HeaderField{
		{":status", "302"},
		{"cache-control", "private"},
		{"date", "Mon, 21 Oct 2013 20:13:21 GMT"},
		{"location", "https://www.example.com"},
	})
	if dec.DynamicTableSize() != 222 {
		t.Errorf("table size after response 1 = %d, want 222", dec.DynamicTableSize())
	}

	block2 := []byte{0x48, 0x83, 0x64, 0x0e, 0xff, 0xc1, 0xc0, 0xbf}
	assertFields(t, decodeAllFields(t, dec, block2), []HeaderField{
		{":status", "307"},
		{"cache-control", "private"},
		{"date", "Mon, 21 Oct 2013 20:13:21 GMT"},
		{"location", "https://www.example.com"},
	})
	if dec.DynamicTableSize() != 222 {
		t.Errorf("table size after response 2 = %d, want 222", dec.DynamicTableSize())
	}

	block3 := []byte{
		0x88, 0xc1, 0x61, 0x96, 0xd0, 0x7a, 0xbe, 0x94, 0x10, 0x54, 0xd4,
		0x44, 0xa8, 0x20, 0x05, 0x95, 0x04, 0x0b, 0x81, 0x66, 0xe0, 0x84,
		0xa6, 0x2d, 0x1b, 0xff, 0xc0, 0x5a, 0x83, 0x9b, 0xd9, 0xab, 0x77,
		0xad, 0x94, 0xe7, 0x82, 0x1d, 0xd7, 0xf2, 0xe6, 0xc7, 0xb3, 0x35,
		0xdf, 0xdf, 0xcd, 0x5b, 0x39, 0x60, 0xd5, 0xaf, 0x27, 0x08, 0x7f,
		0x36, 0x72, 0xc1, 0xab, 0x27, 0x0f, 0xb5, 0x29, 0x1f, 0x95, 0x87,
		0x31, 0x60, 0x65, 0xc0, 0x03, 0xed, 0x4e, 0xe5, 0xb1, 0x06, 0x3d,
		0x50, 0x07,
	}
	assertFields(t, decodeAllFields(t, dec, block3), []HeaderField{
		{":status", "200"},
		{"cache-control", "private"},
		{"date", "Mon, 21 Oct 2013 20:13:22 GMT"},
		{"location", "https://www.example.com"},
		{"content-encoding", "gzip"},
		{"set-cookie", "foo=ASDJKHQKBZXOQWEOPIUAXQWEOIU; max-age=3600; version=1"},
	})
	if dec.DynamicTableSize() != 215 {
		t.Errorf("table size after response 3 = %d, want 215 (eviction of the first date entry)", dec.DynamicTableSize())
	}
}
