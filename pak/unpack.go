package pak

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"treepak/ds"
	"treepak/pak/pblock"
	"treepak/pak/pbytes"
	"treepak/pak/perr"
)

// unpackLevel holds the entries of one directory that are not materialised yet.
type unpackLevel struct {
	path    string
	pending []pblock.Entry
}

// Unpack recreates the tree stored in the container at containerPath under directory.
//
// The header and the root block are validated before anything on disk changes.
// After that, whatever exists at directory is removed and rebuilt; a failure
// leaves a partially populated tree behind.
func Unpack(containerPath string, directory string, opts ...Option) error {
	o := newOptions(opts)

	file, err := os.Open(containerPath)
	if err != nil {
		return errors.Wrapf(perr.IO("Unpack", err), "Unpack error opening container %q", containerPath)
	}
	defer file.Close()

	reader, err := newBlockReader(file)
	if err != nil {
		return errors.Wrap(err, "Unpack error reading container")
	}
	header, err := reader.readHeader()
	if err != nil {
		return errors.Wrap(err, "Unpack error reading header")
	}
	rootEntries, err := reader.readRoot(header.RootOffset)
	if err != nil {
		return errors.Wrap(err, "Unpack error reading root directory")
	}

	if err := os.RemoveAll(directory); err != nil {
		o.logger.Debug("could not remove destination", "path", directory, "err", err)
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return errors.Wrapf(perr.IO("Unpack", err), "Unpack error creating %q", directory)
	}

	buffer := make([]byte, o.bufferSize)
	if err := unpackTree(reader, directory, rootEntries, buffer, o.logger); err != nil {
		return errors.Wrapf(err, "Unpack error extracting into %q", directory)
	}

	o.logger.Debug("unpacked", "container", containerPath, "directory", directory)
	return nil
}

func unpackTree(reader *blockReader, directory string, rootEntries []pblock.Entry, buffer []byte, logger *log.Logger) error {
	stack := ds.NewStack[unpackLevel]()
	// entries are consumed from the back; reversed, they come out in stored order
	stack.Push(unpackLevel{path: directory, pending: lo.Reverse(rootEntries)})

	for !stack.IsEmpty() {
		top := stack.Top()
		if len(top.pending) == 0 {
			stack.Pop()
			continue
		}
		entry := top.pending[len(top.pending)-1]
		top.pending = top.pending[:len(top.pending)-1]
		path := filepath.Join(top.path, entry.Name)

		header, frame, err := reader.readBlock(entry.Offset)
		if err != nil {
			return errors.Wrapf(err, "unpackTree error reading %q", path)
		}
		switch header.Type {
		case pblock.TypeDirectory:
			if err := os.Mkdir(path, 0o755); err != nil {
				return perr.IO("unpackTree", err)
			}
			entries, err := pblock.DecodeDirectory(frame)
			if err != nil {
				return errors.Wrapf(err, "unpackTree error decoding %q", path)
			}
			logger.Debug("created directory", "path", path, "entries", len(entries))
			stack.Push(unpackLevel{path: path, pending: lo.Reverse(entries)})
		case pblock.TypeFile:
			if err := unpackFile(path, frame, buffer); err != nil {
				return err
			}
			logger.Debug("created file", "path", path, "size", header.Size)
		}
	}

	return nil
}

// unpackFile copies the payload of a file block into path through buffer.
func unpackFile(path string, frame *pbytes.Frame, buffer []byte) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return perr.IO("unpackFile", err)
	}
	defer func() {
		closeErr := file.Close()
		if err == nil && closeErr != nil {
			err = perr.IO("unpackFile", closeErr)
		}
	}()

	for {
		n, readErr := frame.Read(buffer)
		if n > 0 {
			if _, err := file.Write(buffer[:n]); err != nil {
				return perr.IO("unpackFile", err)
			}
		}
		if errors.Is(readErr, io.EOF) {
			return nil
		}
		if errors.Is(readErr, io.ErrUnexpectedEOF) {
			err := errors.Wrapf(perr.ErrTruncated, "payload of %q", path)
			return perr.Format("unpackFile", err)
		}
		if readErr != nil {
			return perr.IO("unpackFile", readErr)
		}
	}
}
