package pwriter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"treepak/pak/pblock"
	"treepak/pak/perr"
	"treepak/pak/pheader"
)

func createSink(t *testing.T) *os.File {
	file, err := os.Create(filepath.Join(t.TempDir(), "sink.pak"))
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })
	return file
}

func TestWriter(t *testing.T) {
	sink := createSink(t)
	writer, err := New(sink, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(pheader.Size), writer.Offset())

	fileOffset, err := writer.WriteBlockFrom(pblock.TypeFile, strings.NewReader("0123456789"))
	require.NoError(t, err)
	assert.Equal(t, uint32(7), fileOffset)
	assert.Equal(t, int64(7+5+10), writer.Offset())

	dirOffset, err := writer.WriteBlock(pblock.TypeDirectory, []byte{0xAB})
	require.NoError(t, err)
	assert.Equal(t, uint32(22), dirOffset)

	require.NoError(t, writer.WriteHeader(pheader.New(dirOffset)))
	assert.Equal(t, int64(28), writer.Offset())

	bs, err := os.ReadFile(sink.Name())
	require.NoError(t, err)

	expected := pheader.Encode(pheader.New(22))
	expected = append(expected, 0xFF, 0, 0, 0, 10)
	expected = append(expected, "0123456789"...)
	expected = append(expected, 0xDD, 0, 0, 0, 1, 0xAB)
	assert.Equal(t, expected, bs)
}

func TestWriter_EmptyStream(t *testing.T) {
	sink := createSink(t)
	writer, err := New(sink, 0)
	require.NoError(t, err)

	offset, err := writer.WriteBlockFrom(pblock.TypeFile, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, uint32(pheader.Size), offset)
	assert.Equal(t, int64(pheader.Size+pblock.HeaderSize), writer.Offset())
}

func TestWriter_SourceError(t *testing.T) {
	sink := createSink(t)
	writer, err := New(sink, 0)
	require.NoError(t, err)

	_, err = writer.WriteBlockFrom(pblock.TypeFile, iotest.ErrReader(os.ErrPermission))
	var ioErr perr.IOError
	assert.ErrorAs(t, err, &ioErr)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestWriter_OffsetOverflow(t *testing.T) {
	sink := createSink(t)
	writer, err := New(sink, 0)
	require.NoError(t, err)
	writer.offset = 1 << 32

	_, err = writer.WriteBlock(pblock.TypeDirectory, nil)
	assert.ErrorIs(t, err, perr.ErrSizeOverflow)
}
