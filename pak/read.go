package pak

import (
	"io"

	"github.com/pkg/errors"
	"treepak/pak/pblock"
	"treepak/pak/pbytes"
	"treepak/pak/perr"
	"treepak/pak/pheader"
)

// blockReader resolves offsets of one container and refuses to visit a block twice.
type blockReader struct {
	source  io.ReadSeeker
	size    int64
	visited map[uint32]struct{}
}

func newBlockReader(source io.ReadSeeker) (*blockReader, error) {
	size, err := source.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, perr.IO("newBlockReader", err)
	}
	if _, err := source.Seek(0, io.SeekStart); err != nil {
		return nil, perr.IO("newBlockReader", err)
	}
	return &blockReader{
		source:  source,
		size:    size,
		visited: map[uint32]struct{}{},
	}, nil
}

// readHeader must run before anything else is read, and before the destination is touched.
func (r *blockReader) readHeader() (*pheader.Header, error) {
	if _, err := r.source.Seek(0, io.SeekStart); err != nil {
		return nil, perr.IO("blockReader.readHeader", err)
	}
	return pheader.Decode(r.source)
}

func (r *blockReader) readBlock(offset uint32) (*pblock.BlockHeader, *pbytes.Frame, error) {
	if _, ok := r.visited[offset]; ok {
		err := errors.Wrapf(perr.ErrCycle, "offset %d", offset)
		return nil, nil, perr.Format("blockReader.readBlock", err)
	}
	r.visited[offset] = struct{}{}

	header, frame, err := pblock.ReadAt(r.source, offset)
	if err != nil {
		return nil, nil, err
	}
	end := int64(offset) + pblock.HeaderSize + int64(header.Size)
	if end > r.size {
		err := errors.Wrapf(
			perr.ErrTruncated, "%s block at offset %d ends at %d, container has %d bytes",
			header.Type, offset, end, r.size,
		)
		return nil, nil, perr.Format("blockReader.readBlock", err)
	}
	return header, frame, nil
}

// readRoot resolves the root block and decodes its entries.
func (r *blockReader) readRoot(offset uint32) ([]pblock.Entry, error) {
	header, frame, err := r.readBlock(offset)
	if err != nil {
		return nil, err
	}
	if header.Type != pblock.TypeDirectory {
		err := errors.Wrapf(perr.ErrRootNotDirectory, "found %s at offset %d", header.Type, offset)
		return nil, perr.Logic("blockReader.readRoot", err)
	}
	return pblock.DecodeDirectory(frame)
}
