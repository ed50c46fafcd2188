package format

import (
	"bytes"
	"testing"
)

// TestGoldenHeaderEncoding pins the header's on-disk byte layout
// against the original C struct { u64 h_nelem; u32 h_magic; u32 h_vers; }.
func TestGoldenHeaderEncoding(t *testing.T) {
	h := Header{NElements: 0x0102030405060708, Magic: Magic, Version: Version}
	got := h.Encode()
	want := []byte{
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, // n_elements, LE
		0xc0, 0x00, 0x4c, 0x41, // magic: 0xc0, 0x00, 'L', 'A'
		0x01, 0x00, 0x00, 0x00, // version = 1
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = % x, want % x", got, want)
	}
	if len(got) != HeaderSize {
		t.Fatalf("len(Encode()) = %d, want %d", len(got), HeaderSize)
	}

	back := DecodeHeader(got)
	if back != h {
		t.Fatalf("DecodeHeader roundtrip = %+v, want %+v", back, h)
	}
}

func TestMagicConstant(t *testing.T) {
	if Magic != 0x414c00c0 {
		t.Fatalf("Magic = %#x, want %#x", Magic, 0x414c00c0)
	}
}

func TestGoldenElemEncoding(t *testing.T) {
	e := Elem{Key: 42, FP: 0}
	got := EncodeElem(e)
	want := []byte{
		0x2a, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeElem() = % x, want % x", got, want)
	}
	if DecodeElem(got) != e {
		t.Fatalf("DecodeElem roundtrip mismatch")
	}
}

func TestKeyAt(t *testing.T) {
	buf := make([]byte, ElemSize*3)
	PutElem(buf[0:ElemSize], Elem{Key: 10})
	PutElem(buf[ElemSize:2*ElemSize], Elem{Key: 20})
	PutElem(buf[2*ElemSize:3*ElemSize], Elem{Key: 30})

	for i, want := range []uint64{10, 20, 30} {
		if got := KeyAt(buf, uint64(i)); got != want {
			t.Fatalf("KeyAt(%d) = %d, want %d", i, got, want)
		}
	}
}
