package perr

import (
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestFormatError_Unwrap(t *testing.T) {
	err := errors.Wrap(Format("Decode", ErrInvalidMagic), "Unpack error")

	var formatErr FormatError
	assert.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "Decode", formatErr.Caller)
	assert.True(t, errors.Is(err, ErrInvalidMagic))
	assert.False(t, errors.Is(err, ErrUnsupportedVersion))
	assert.Contains(t, err.Error(), "invalid magic number")
}

func TestIO(t *testing.T) {
	assert.NoError(t, IO("Pack", nil))

	err := IO("Pack", io.ErrClosedPipe)
	var ioErr IOError
	assert.True(t, errors.As(err, &ioErr))
	assert.True(t, errors.Is(err, io.ErrClosedPipe))

	logicErr := Logic("Unpack", ErrRootNotDirectory)
	assert.Equal(t, logicErr, IO("Unpack", logicErr))
}
