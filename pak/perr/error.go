// Package perr holds the error classes surfaced by the container codec.
//
// Every failure is one of IOError, FormatError or LogicError. Each class wraps
// a more specific cause, so callers can match either the class with errors.As
// or the cause with errors.Is.
package perr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Causes wrapped by FormatError.
var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrUnknownBlockType   = errors.New("unknown block type")
	ErrTruncated          = errors.New("truncated data")
	ErrInvalidName        = errors.New("invalid entry name")
	ErrCycle              = errors.New("block referenced more than once")
	ErrSizeOverflow       = errors.New("size does not fit the format")
	ErrNameTooLong        = errors.New("entry name too long")
)

// Causes wrapped by LogicError.
var (
	ErrRootNotDirectory = errors.New("root must be a directory")
)

type (
	IOError struct {
		Caller string
		Err    error
	}
	FormatError struct {
		Caller string
		Err    error
	}
	LogicError struct {
		Caller string
		Err    error
	}
)

func (r IOError) Error() string {
	return fmt.Sprintf("%s: io error: %v", r.Caller, r.Err)
}

func (r IOError) Unwrap() error {
	return r.Err
}

func (r FormatError) Error() string {
	return fmt.Sprintf("%s: format error: %v", r.Caller, r.Err)
}

func (r FormatError) Unwrap() error {
	return r.Err
}

func (r LogicError) Error() string {
	return fmt.Sprintf("%s: logic error: %v", r.Caller, r.Err)
}

func (r LogicError) Unwrap() error {
	return r.Err
}

// IO wraps err into an IOError, or returns nil when err is nil.
// Errors that already carry a class are returned unchanged.
func IO(caller string, err error) error {
	if err == nil {
		return nil
	}
	if IsClassified(err) {
		return err
	}
	return IOError{Caller: caller, Err: err}
}

func Format(caller string, cause error) error {
	return FormatError{Caller: caller, Err: cause}
}

func Logic(caller string, cause error) error {
	return LogicError{Caller: caller, Err: cause}
}

// IsClassified reports whether err already is, or wraps, one of the error classes.
func IsClassified(err error) bool {
	var ioErr IOError
	var formatErr FormatError
	var logicErr LogicError
	return errors.As(err, &ioErr) ||
		errors.As(err, &formatErr) ||
		errors.As(err, &logicErr)
}
