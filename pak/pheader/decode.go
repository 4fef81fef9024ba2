package pheader

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"treepak/pak/perr"
)

// Decode reads and validates the container header.
// The magic number is checked before the version, and both before the root offset is trusted.
func Decode(reader io.Reader) (*Header, error) {
	bs := make([]byte, Size)
	if _, err := io.ReadFull(reader, bs); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, perr.Format("pheader.Decode", perr.ErrTruncated)
		}
		return nil, perr.IO("pheader.Decode", err)
	}

	header := Header{
		Magic:      binary.BigEndian.Uint16(bs[0:2]),
		Version:    bs[2],
		RootOffset: binary.BigEndian.Uint32(bs[3:7]),
	}
	if header.Magic != Magic {
		err := errors.Wrapf(perr.ErrInvalidMagic, `expected "%#04x", got "%#04x"`, Magic, header.Magic)
		return nil, perr.Format("pheader.Decode", err)
	}
	if header.Version != SupportedVersion {
		err := errors.Wrapf(perr.ErrUnsupportedVersion, `expected "%#02x", got "%#02x"`, SupportedVersion, header.Version)
		return nil, perr.Format("pheader.Decode", err)
	}

	return &header, nil
}
