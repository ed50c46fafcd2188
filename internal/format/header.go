// Package format owns the on-disk byte layout of a cola database: the
// fixed header, the per-element record, and the arithmetic that maps a
// level number to its byte offset within the file.
//
// Reference: original cola (giannitedesco/cola) include/cola-format.h,
// coladb.c's level_ofs(). Encode/decode style follows
// calvinalkan-agent-task's pkg/slotcache/format.go: explicit byte
// offsets plus encoding/binary, not struct overlay or unsafe casts.
package format

import "encoding/binary"

// Magic identifies a cola database file. Byte layout matches the
// original C source's COLA_MAGIC: 0xc0 | (0x00<<8) | ('L'<<16) | ('A'<<24).
const Magic uint32 = 0xc0 | (0x00 << 8) | ('L' << 16) | ('A' << 24)

// Version is the only supported on-disk format version. Version 0 (no
// fp field) is an earlier format revision and is not supported.
const Version uint32 = 1

const (
	// HeaderSize is the fixed size in bytes of the persisted header.
	HeaderSize = 8 + 4 + 4

	// ElemSize is the fixed size in bytes of one persisted element:
	// an 8-byte key and an 8-byte fractional-cascading pointer slot.
	ElemSize = 8 + 8
)

// Header is the fixed-size record at the start of every cola file.
type Header struct {
	NElements uint64
	Magic     uint32
	Version   uint32
}

// Encode serializes h into a HeaderSize-byte little-endian buffer.
func (h Header) Encode() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint64(buf[0:8], h.NElements)
	binary.LittleEndian.PutUint32(buf[8:12], h.Magic)
	binary.LittleEndian.PutUint32(buf[12:16], h.Version)
	return buf
}

// DecodeHeader parses a HeaderSize-byte buffer into a Header. It does
// not validate magic or version; callers check those explicitly so
// they can produce distinct error values.
func DecodeHeader(buf []byte) Header {
	return Header{
		NElements: binary.LittleEndian.Uint64(buf[0:8]),
		Magic:     binary.LittleEndian.Uint32(buf[8:12]),
		Version:   binary.LittleEndian.Uint32(buf[12:16]),
	}
}

// Elem is one persisted record: a key and its (currently unused on the
// query path) fractional-cascading pointer.
type Elem struct {
	Key uint64
	FP  uint64
}

// EncodeElem serializes e into a ElemSize-byte little-endian buffer.
func EncodeElem(e Elem) []byte {
	buf := make([]byte, ElemSize)
	PutElem(buf, e)
	return buf
}

// PutElem serializes e into buf, which must be at least ElemSize bytes.
func PutElem(buf []byte, e Elem) {
	binary.LittleEndian.PutUint64(buf[0:8], e.Key)
	binary.LittleEndian.PutUint64(buf[8:16], e.FP)
}

// DecodeElem parses an ElemSize-byte buffer into an Elem.
func DecodeElem(buf []byte) Elem {
	return Elem{
		Key: binary.LittleEndian.Uint64(buf[0:8]),
		FP:  binary.LittleEndian.Uint64(buf[8:16]),
	}
}

// KeyAt reads just the key field of the element at index i within buf,
// a slice of contiguous elements. Used by the query/merge hot paths
// that only ever compare keys.
func KeyAt(buf []byte, i uint64) uint64 {
	off := i * ElemSize
	return binary.LittleEndian.Uint64(buf[off : off+8])
}
