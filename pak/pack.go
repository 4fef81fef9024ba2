package pak

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"treepak/ds"
	"treepak/pak/pblock"
	"treepak/pak/perr"
	"treepak/pak/pheader"
	"treepak/pak/pwriter"
)

type (
	// packFrame is a directory whose files are written but whose subdirectories are not all done yet.
	packFrame struct {
		name    string
		entries *ds.LinkedHashMap[string, uint32]
		pending []string
	}
	packer struct {
		writer *pwriter.Writer
		logger *log.Logger
		// container is skipped when met inside the source tree
		container os.FileInfo
	}
)

// Pack writes the tree under directory into a container at containerPath.
// The container is truncated before writing; a failure leaves a partial file behind.
func Pack(containerPath string, directory string, opts ...Option) (err error) {
	o := newOptions(opts)

	info, err := os.Stat(directory)
	if err != nil {
		return errors.Wrapf(perr.IO("Pack", err), "Pack error reading source %q", directory)
	}
	if !info.IsDir() {
		err := perr.IO("Pack", errors.Errorf("%q is not a directory", directory))
		return errors.Wrap(err, "Pack error reading source")
	}

	file, err := os.OpenFile(containerPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrapf(perr.IO("Pack", err), "Pack error creating container %q", containerPath)
	}
	defer func() {
		closeErr := file.Close()
		if err == nil && closeErr != nil {
			err = errors.Wrapf(perr.IO("Pack", closeErr), "Pack error closing container %q", containerPath)
		}
	}()

	containerInfo, err := file.Stat()
	if err != nil {
		return errors.Wrapf(perr.IO("Pack", err), "Pack error reading container %q", containerPath)
	}
	writer, err := pwriter.New(file, o.bufferSize)
	if err != nil {
		return errors.Wrap(err, "Pack error preparing container")
	}
	p := packer{writer: writer, logger: o.logger, container: containerInfo}
	rootOffset, err := p.packTree(directory)
	if err != nil {
		return errors.Wrapf(err, "Pack error packing %q", directory)
	}
	if err := writer.WriteHeader(pheader.New(rootOffset)); err != nil {
		return errors.Wrap(err, "Pack error writing header")
	}

	o.logger.Debug("packed", "container", containerPath, "root_offset", rootOffset, "bytes", writer.Offset())
	return nil
}

// packTree walks directory depth first and returns the offset of its directory block.
// A directory block is written only after all of its children, so blocks appear bottom-up.
func (r *packer) packTree(directory string) (uint32, error) {
	root, err := r.beginDirectory(directory)
	if err != nil {
		return 0, err
	}
	stack := ds.NewStack[packFrame]()
	stack.Push(*root)

	for {
		top := stack.Top()
		if len(top.pending) > 0 {
			next := top.pending[len(top.pending)-1]
			top.pending = top.pending[:len(top.pending)-1]

			frame, err := r.beginDirectory(next)
			if err != nil {
				return 0, err
			}
			stack.Push(*frame)
			continue
		}

		frame := stack.Pop()
		offset, err := endDirectory(r.writer, frame)
		if err != nil {
			return 0, err
		}
		r.logger.Debug("wrote directory", "name", frame.name, "entries", frame.entries.Len(), "offset", offset)

		if stack.IsEmpty() {
			return offset, nil
		}
		parent := stack.Top()
		if parent.entries.Put(frame.name, offset) {
			r.logger.Debug("name collision, earlier block is unreachable", "parent", parent.name, "name", frame.name)
		}
	}
}

// beginDirectory writes every regular file of directory and queues its subdirectories.
// Other entry kinds, symbolic links included, are skipped.
func (r *packer) beginDirectory(directory string) (*packFrame, error) {
	dirEntries, err := os.ReadDir(directory)
	if err != nil {
		return nil, perr.IO("beginDirectory", err)
	}

	frame := packFrame{
		name:    entryName(filepath.Base(directory)),
		entries: ds.NewLinkedHashMap[string, uint32](),
		pending: make([]string, 0),
	}
	for _, dirEntry := range dirEntries {
		path := filepath.Join(directory, dirEntry.Name())
		switch {
		case dirEntry.IsDir():
			frame.pending = append(frame.pending, path)
		case dirEntry.Type().IsRegular():
			if r.isContainer(dirEntry) {
				r.logger.Debug("skipping the container itself", "path", path)
				continue
			}
			offset, err := packFile(r.writer, path)
			if err != nil {
				return nil, err
			}
			r.logger.Debug("wrote file", "path", path, "offset", offset)
			name := entryName(dirEntry.Name())
			if frame.entries.Put(name, offset) {
				r.logger.Debug("name collision, earlier block is unreachable", "parent", frame.name, "name", name)
			}
		default:
			r.logger.Debug("skipping entry", "path", path, "mode", dirEntry.Type().String())
		}
	}
	// pending is consumed from the back; reversed, subdirectories are visited in name order
	frame.pending = lo.Reverse(frame.pending)

	return &frame, nil
}

func (r *packer) isContainer(dirEntry os.DirEntry) bool {
	if r.container == nil {
		return false
	}
	info, err := dirEntry.Info()
	return err == nil && os.SameFile(info, r.container)
}

func endDirectory(writer *pwriter.Writer, frame packFrame) (uint32, error) {
	entries := lo.Map(
		frame.entries.Keys(),
		func(name string, _ int) pblock.Entry {
			offset, _ := frame.entries.Get(name)
			return pblock.Entry{Offset: offset, Name: name}
		},
	)
	payload, err := pblock.EncodeDirectory(entries)
	if err != nil {
		return 0, errors.Wrapf(err, "endDirectory error encoding %q", frame.name)
	}
	return writer.WriteBlock(pblock.TypeDirectory, payload)
}

func packFile(writer *pwriter.Writer, path string) (uint32, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, perr.IO("packFile", err)
	}
	defer file.Close()

	offset, err := writer.WriteBlockFrom(pblock.TypeFile, file)
	if err != nil {
		return 0, errors.Wrapf(err, "packFile error streaming %q", path)
	}
	return offset, nil
}

// entryName replaces invalid UTF-8 so that every stored name decodes as text.
func entryName(name string) string {
	return strings.ToValidUTF8(name, "\uFFFD")
}
