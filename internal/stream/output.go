package stream

import (
	"fmt"
	"os"

	"github.com/coladb/cola/internal/format"
	"github.com/coladb/cola/internal/fsio"
)

// Output is a forward-only sink the k-way merge writes the destination
// level's elements into, in ascending order.
type Output interface {
	// Push writes one element.
	Push(e format.Elem) error
	// Flush forces any buffered-but-unwritten elements to disk. A
	// no-op for MappedOutput, since writes land directly in the
	// shared mapping.
	Flush() error
}

// MappedOutput writes directly into the shared mapping. Grounded on
// outbuf_init's mapped branch and outbuf_push's out->mapped case.
type MappedOutput struct {
	data []byte
	pos  int
}

// NewMappedOutput wraps the destination level's byte range.
func NewMappedOutput(levelBytes []byte) *MappedOutput {
	return &MappedOutput{data: levelBytes}
}

func (out *MappedOutput) Push(e format.Elem) error {
	if out.pos+format.ElemSize > len(out.data) {
		return fmt.Errorf("stream: mapped output overrun")
	}
	format.PutElem(out.data[out.pos:out.pos+format.ElemSize], e)
	out.pos += format.ElemSize
	return nil
}

func (out *MappedOutput) Flush() error { return nil }

// BufferedOutput accumulates elements in a caller-supplied ring
// buffer and pwrites it out a block at a time once full. Grounded on
// outbuf_init's buffered branch and outbuf_push's flush-on-full path.
type BufferedOutput struct {
	f       *os.File
	buf     []byte
	baseOff int64
	cur     int
	written uint64 // elements already flushed to disk
}

// NewBufferedOutput builds an Output over a level that lies beyond the
// shared mapping, using buf as write-behind scratch space (typically
// sliced from a bufpool.Pool's write region).
func NewBufferedOutput(f *os.File, buf []byte, levelOffset int64) *BufferedOutput {
	return &BufferedOutput{f: f, buf: buf, baseOff: levelOffset}
}

func (out *BufferedOutput) Push(e format.Elem) error {
	if out.cur+format.ElemSize > len(out.buf) {
		if err := out.flushFull(); err != nil {
			return err
		}
	}
	format.PutElem(out.buf[out.cur:out.cur+format.ElemSize], e)
	out.cur += format.ElemSize
	return nil
}

func (out *BufferedOutput) flushFull() error {
	off := out.baseOff + int64(out.written)*format.ElemSize
	if err := fsio.PwriteFull(out.f, out.buf[:out.cur], off); err != nil {
		return fmt.Errorf("stream: flush output: %w", err)
	}
	out.written += uint64(out.cur / format.ElemSize)
	out.cur = 0
	return nil
}

// Flush writes any partially-filled buffer tail to disk. Must be
// called once per destination level after the merge completes.
func (out *BufferedOutput) Flush() error {
	if out.cur == 0 {
		return nil
	}
	return out.flushFull()
}
