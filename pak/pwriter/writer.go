// Package pwriter writes blocks sequentially into a seekable sink.
//
// Blocks whose size is known up front are written in one go. Blocks streamed
// from a reader get their header space reserved first and patched once the
// payload has been copied, so a file is never held in memory as a whole.
package pwriter

import (
	"io"
	"math"

	"github.com/pkg/errors"
	"treepak/pak/pblock"
	"treepak/pak/perr"
	"treepak/pak/pheader"
)

// DefaultBufferSize is the size of the transfer buffer used for bulk copies.
const DefaultBufferSize = 5 * 1024 * 1024

type Writer struct {
	sink   io.WriteSeeker
	buffer []byte
	offset int64
}

// New positions the sink right after the space reserved for the container header.
func New(sink io.WriteSeeker, bufferSize int) (*Writer, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if _, err := sink.Seek(pheader.Size, io.SeekStart); err != nil {
		return nil, perr.IO("pwriter.New", err)
	}
	return &Writer{
		sink:   sink,
		buffer: make([]byte, bufferSize),
		offset: pheader.Size,
	}, nil
}

func (r *Writer) Offset() int64 {
	return r.offset
}

// WriteBlock writes a block whose payload is fully known and returns its offset.
func (r *Writer) WriteBlock(blockType pblock.Type, payload []byte) (uint32, error) {
	offset, err := r.blockOffset()
	if err != nil {
		return 0, err
	}
	if int64(len(payload)) > math.MaxUint32 {
		err := errors.Wrapf(perr.ErrSizeOverflow, "payload of %d bytes", len(payload))
		return 0, perr.Format("Writer.WriteBlock", err)
	}

	header := pblock.EncodeHeader(pblock.BlockHeader{Type: blockType, Size: uint32(len(payload))})
	if err := r.write(header); err != nil {
		return 0, perr.IO("Writer.WriteBlock", err)
	}
	if err := r.write(payload); err != nil {
		return 0, perr.IO("Writer.WriteBlock", err)
	}

	return offset, nil
}

// WriteBlockFrom streams source into a new block and returns its offset.
// The header is reserved, the payload copied chunk by chunk, and the header patched afterwards.
func (r *Writer) WriteBlockFrom(blockType pblock.Type, source io.Reader) (uint32, error) {
	offset, err := r.blockOffset()
	if err != nil {
		return 0, err
	}
	if _, err := r.sink.Seek(pblock.HeaderSize, io.SeekCurrent); err != nil {
		return 0, perr.IO("Writer.WriteBlockFrom", err)
	}
	r.offset += pblock.HeaderSize

	size := int64(0)
	for {
		n, readErr := source.Read(r.buffer)
		if n > 0 {
			size += int64(n)
			if size > math.MaxUint32 {
				err := errors.Wrapf(perr.ErrSizeOverflow, "block at offset %d exceeds %d bytes", offset, uint32(math.MaxUint32))
				return 0, perr.Format("Writer.WriteBlockFrom", err)
			}
			if err := r.write(r.buffer[:n]); err != nil {
				return 0, perr.IO("Writer.WriteBlockFrom", err)
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return 0, perr.IO("Writer.WriteBlockFrom", readErr)
		}
	}

	header := pblock.EncodeHeader(pblock.BlockHeader{Type: blockType, Size: uint32(size)})
	if _, err := r.sink.Seek(int64(offset), io.SeekStart); err != nil {
		return 0, perr.IO("Writer.WriteBlockFrom", err)
	}
	if _, err := r.sink.Write(header); err != nil {
		return 0, perr.IO("Writer.WriteBlockFrom", err)
	}
	if _, err := r.sink.Seek(size, io.SeekCurrent); err != nil {
		return 0, perr.IO("Writer.WriteBlockFrom", err)
	}

	return offset, nil
}

// WriteHeader patches the container header at offset 0 and returns to the current position.
func (r *Writer) WriteHeader(header pheader.Header) error {
	if _, err := r.sink.Seek(0, io.SeekStart); err != nil {
		return perr.IO("Writer.WriteHeader", err)
	}
	if _, err := r.sink.Write(pheader.Encode(header)); err != nil {
		return perr.IO("Writer.WriteHeader", err)
	}
	if _, err := r.sink.Seek(r.offset, io.SeekStart); err != nil {
		return perr.IO("Writer.WriteHeader", err)
	}
	return nil
}

func (r *Writer) blockOffset() (uint32, error) {
	if r.offset > math.MaxUint32 {
		err := errors.Wrapf(perr.ErrSizeOverflow, "block offset %d", r.offset)
		return 0, perr.Format("Writer.blockOffset", err)
	}
	return uint32(r.offset), nil
}

func (r *Writer) write(bs []byte) error {
	n, err := r.sink.Write(bs)
	r.offset += int64(n)
	return err
}
