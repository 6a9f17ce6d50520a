package xcipher

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamRoundTrip(t *testing.T) {
	message := "the stream must come back byte for byte"
	key := []byte{0x2b, 0xb8, 0x0d, 0x53}

	// screen through a Reader, restore through a Writer
	var screened bytes.Buffer
	in, err := NewReader(strings.NewReader(message), key)
	require.NoError(t, err)
	n, err := io.Copy(&screened, in)
	require.NoError(t, err)
	assert.Equal(t, int64(len(message)), n)
	assert.NotEqual(t, message, screened.String())

	var restored strings.Builder
	out, err := NewWriter(&restored, key)
	require.NoError(t, err)
	_, err = io.Copy(out, bytes.NewReader(screened.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, message, restored.String())
}

func TestReader_MatchesTransform(t *testing.T) {
	data := []byte("stream and pure forms must agree")
	key := []byte{0x13, 0x37, 0x42}

	expected, err := Transform(data, key)
	require.NoError(t, err)

	r, err := NewReader(bytes.NewReader(data), key)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

// Reset must rewind the key to its construction offset, so a second pass
// over the same bytes produces identical output.
func TestReset_RewindsToOffset(t *testing.T) {
	data := []byte("pass")
	key := []byte{0xaa, 0xbb, 0xcc}
	const offset = 2

	var firstOut, secondOut bytes.Buffer
	w, err := NewWriter(&firstOut, key, offset)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)

	w.Reset(&secondOut)
	_, err = w.Write(data)
	require.NoError(t, err)
	assert.Equal(t, firstOut.Bytes(), secondOut.Bytes())

	r, err := NewReader(bytes.NewReader(firstOut.Bytes()), key, offset)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	r.Reset(bytes.NewReader(firstOut.Bytes()))
	got, err = io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestStream_EmptyKey(t *testing.T) {
	_, err := NewReader(strings.NewReader("x"), nil)
	assert.ErrorIs(t, err, ErrEmptyKey)
	_, err = NewWriter(&bytes.Buffer{}, nil)
	assert.ErrorIs(t, err, ErrEmptyKey)
}
