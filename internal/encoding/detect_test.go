package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtmarsh/budgeteer/internal/encoding"
)

func TestNewUTF8Reader_ValidUTF8(t *testing.T) {
	input := "name,amount,category,type\nCafé,4.50,groceries,expenses\n"

	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_StripsUTF8BOM(t *testing.T) {
	content := "name,amount,category,type\n"
	input := append([]byte{0xEF, 0xBB, 0xBF}, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "Água,12,bills,expenses\n" in Windows-1252 (Á = 0xC1).
	input := []byte{
		0xC1, 'g', 'u', 'a', ',', '1', '2', ',',
		'b', 'i', 'l', 'l', 's', ',',
		'e', 'x', 'p', 'e', 'n', 's', 'e', 's', '\n',
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Água,12,bills,expenses\n", string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	content := "name,amount\n"

	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xFE})
	for _, r := range content {
		buf.WriteByte(byte(r))
		buf.WriteByte(0)
	}

	r, err := encoding.NewUTF8Reader(&buf)
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}
