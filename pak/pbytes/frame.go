package pbytes

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// ErrEndOfFrame is returned by ReadFull when the requested length would cross the end of the frame.
var ErrEndOfFrame = errors.New("read crosses end of frame")

// Frame is a read view clamped to [start, start+size) of an underlying seekable stream.
//
// The frame seeks to its own cursor before each read, so the underlying stream
// may be moved by someone else between two reads.
type Frame struct {
	source io.ReadSeeker
	cursor int64
	end    int64
}

func NewFrame(source io.ReadSeeker, start int64, size int64) *Frame {
	return &Frame{
		source: source,
		cursor: start,
		end:    start + size,
	}
}

func (r *Frame) Remaining() int64 {
	return r.end - r.cursor
}

// Read never returns bytes beyond the end of the frame, and reports io.EOF once the frame is exhausted.
// If the underlying stream ends before the frame does, io.ErrUnexpectedEOF is returned.
func (r *Frame) Read(bs []byte) (int, error) {
	remaining := r.Remaining()
	if remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(bs)) > remaining {
		bs = bs[:remaining]
	}
	if _, err := r.source.Seek(r.cursor, io.SeekStart); err != nil {
		return 0, err
	}
	n, err := r.source.Read(bs)
	r.cursor += int64(n)
	if errors.Is(err, io.EOF) {
		if n > 0 {
			return n, nil
		}
		return 0, io.ErrUnexpectedEOF
	}
	return n, err
}

func (r *Frame) ReadFull(n int) ([]byte, error) {
	if int64(n) > r.Remaining() {
		return nil, ErrEndOfFrame
	}
	bs := make([]byte, n)
	// zero-length reads must not touch the underlying stream
	if n == 0 {
		return bs, nil
	}
	if _, err := io.ReadFull(r, bs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return bs, nil
}

func (r *Frame) ReadUint16() (uint16, error) {
	bs, err := r.ReadFull(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(bs), nil
}

func (r *Frame) ReadUint32() (uint32, error) {
	bs, err := r.ReadFull(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(bs), nil
}
