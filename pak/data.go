// Package pak packs a directory tree into a single container file and unpacks it back.
//
// A container is a 7-byte header followed by blocks. Every directory becomes a
// directory block listing its children by name and offset; every regular file
// becomes a file block holding its raw bytes. Both directions walk the tree with
// an explicit stack, so the depth of the tree is not bounded by the call stack.
package pak

import (
	"os"

	"github.com/charmbracelet/log"
	"treepak/pak/pwriter"
)

type (
	Option  func(*options)
	options struct {
		bufferSize int
		logger     *log.Logger
	}
)

// WithBufferSize sets the size of the transfer buffer used to copy file contents.
// Non-positive values fall back to pwriter.DefaultBufferSize.
func WithBufferSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.bufferSize = size
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func NewLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "treepak",
	})
}

func newOptions(opts []Option) options {
	o := options{
		bufferSize: pwriter.DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = NewLogger()
	}
	return o
}
