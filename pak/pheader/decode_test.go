package pheader

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"treepak/pak/perr"
)

func TestEncode(t *testing.T) {
	bs := Encode(New(0x01020304))
	assert.Equal(t, []byte{0x10, 0xFA, 0xEE, 0x01, 0x02, 0x03, 0x04}, bs)
	assert.Len(t, bs, Size)
}

func TestDecode(t *testing.T) {
	header, err := Decode(bytes.NewReader(Encode(New(4242))))
	require.NoError(t, err)
	assert.Equal(t, New(4242), *header)
}

func TestDecode_Rejections(t *testing.T) {
	tests := map[string]struct {
		in    []byte
		cause error
	}{
		"bad magic": {
			in:    []byte{0x10, 0xFB, 0xEE, 0, 0, 0, 7},
			cause: perr.ErrInvalidMagic,
		},
		"bad version": {
			in:    []byte{0x10, 0xFA, 0xEF, 0, 0, 0, 7},
			cause: perr.ErrUnsupportedVersion,
		},
		"bad magic and version": {
			in:    []byte{0, 0, 0, 0, 0, 0, 7},
			cause: perr.ErrInvalidMagic,
		},
		"truncated": {
			in:    []byte{0x10, 0xFA, 0xEE},
			cause: perr.ErrTruncated,
		},
		"empty": {
			in:    []byte{},
			cause: perr.ErrTruncated,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(test.in))
			var formatErr perr.FormatError
			assert.True(t, errors.As(err, &formatErr))
			assert.ErrorIs(t, err, test.cause)
		})
	}
}
