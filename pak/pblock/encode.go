package pblock

import (
	"github.com/pkg/errors"
	"treepak/pak/pbytes"
	"treepak/pak/perr"
)

func EncodeHeader(header BlockHeader) []byte {
	bs := make([]byte, 0, HeaderSize)
	bs = append(bs, uint8(header.Type))
	bs = append(bs, pbytes.EncodeUint32(header.Size)...)
	return bs
}

// EncodeDirectory lays the entries out back to back in the given order.
func EncodeDirectory(entries []Entry) ([]byte, error) {
	size := 0
	for _, entry := range entries {
		size += EntryHeaderSize + len(entry.Name)
	}

	bs := make([]byte, 0, size)
	for _, entry := range entries {
		if len(entry.Name) > MaxNameSize {
			err := errors.Wrapf(perr.ErrNameTooLong, `"%.32s..." is %d bytes`, entry.Name, len(entry.Name))
			return nil, perr.Format("pblock.EncodeDirectory", err)
		}
		bs = append(bs, pbytes.EncodeUint32(entry.Offset)...)
		bs = append(bs, pbytes.EncodeUint16(uint16(len(entry.Name)))...)
		bs = append(bs, entry.Name...)
	}
	return bs, nil
}
