package pblock

import (
	"encoding/binary"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"treepak/pak/pbytes"
	"treepak/pak/perr"
)

// ReadAt reads the block header at offset and returns a frame over exactly the declared payload.
// The type tag is validated before the header is handed out.
func ReadAt(source io.ReadSeeker, offset uint32) (*BlockHeader, *pbytes.Frame, error) {
	if _, err := source.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, nil, perr.IO("pblock.ReadAt", err)
	}

	bs := make([]byte, HeaderSize)
	if _, err := io.ReadFull(source, bs); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err := errors.Wrapf(perr.ErrTruncated, "block header at offset %d", offset)
			return nil, nil, perr.Format("pblock.ReadAt", err)
		}
		return nil, nil, perr.IO("pblock.ReadAt", err)
	}

	blockType := Type(bs[0])
	if !blockType.IsValid() {
		err := errors.Wrapf(perr.ErrUnknownBlockType, `tag "%#02x" at offset %d`, bs[0], offset)
		return nil, nil, perr.Format("pblock.ReadAt", err)
	}
	header := BlockHeader{
		Type: blockType,
		Size: binary.BigEndian.Uint32(bs[1:]),
	}
	frame := pbytes.NewFrame(source, int64(offset)+HeaderSize, int64(header.Size))

	return &header, frame, nil
}

// DecodeDirectory parses entries until the frame cannot hold another entry header.
func DecodeDirectory(frame *pbytes.Frame) ([]Entry, error) {
	entries := make([]Entry, 0)
	for frame.Remaining() >= EntryHeaderSize {
		offset, err := frame.ReadUint32()
		if err != nil {
			return nil, wrapFrameError("pblock.DecodeDirectory", err)
		}
		nameSize, err := frame.ReadUint16()
		if err != nil {
			return nil, wrapFrameError("pblock.DecodeDirectory", err)
		}
		nameBytes, err := frame.ReadFull(int(nameSize))
		if err != nil {
			return nil, wrapFrameError("pblock.DecodeDirectory", err)
		}
		name := string(nameBytes)
		if err := ValidateName(name); err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Offset: offset, Name: name})
	}
	return entries, nil
}

// ValidateName rejects names that cannot be used as a single path component.
func ValidateName(name string) error {
	invalid := name == "" ||
		name == "." ||
		name == ".." ||
		strings.ContainsAny(name, "/\x00") ||
		strings.ContainsRune(name, os.PathSeparator) ||
		!utf8.ValidString(name)
	if invalid {
		err := errors.Wrapf(perr.ErrInvalidName, "%q", name)
		return perr.Format("pblock.ValidateName", err)
	}
	return nil
}

func wrapFrameError(caller string, err error) error {
	if errors.Is(err, pbytes.ErrEndOfFrame) || errors.Is(err, io.ErrUnexpectedEOF) {
		return perr.Format(caller, errors.Wrap(perr.ErrTruncated, err.Error()))
	}
	return perr.IO(caller, err)
}
