package dpmtool

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func readBody(t *testing.T, m *multipartFile) []byte {
	t.Helper()
	rc, err := m.Open()
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return b
}

func TestMultipartFile_StreamsFilePart(t *testing.T) {
	content := bytes.Repeat([]byte("0123456789abcdef"), 64*1024)
	m, err := newMultipartFile(writeFile(t, `q"uote.db`, content))
	require.NoError(t, err)

	body := readBody(t, m)
	assert.Equal(t, m.Size(), int64(len(body)))

	mediaType, params, err := mime.ParseMediaType(m.ContentType())
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	r := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	part, err := r.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "file", part.FormName())
	assert.Equal(t, `q"uote.db`, part.FileName())
	assert.Equal(t, "application/octet-stream", part.Header.Get("Content-Type"))

	got, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = r.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestMultipartFile_ReopenYieldsSameBody(t *testing.T) {
	m, err := newMultipartFile(writeFile(t, "sales.db", []byte("SQLite format 3")))
	require.NoError(t, err)

	assert.Equal(t, readBody(t, m), readBody(t, m))
}

func TestMultipartFile_EarlyCloseStopsEncoder(t *testing.T) {
	m, err := newMultipartFile(writeFile(t, "big.db", make([]byte, 1<<20)))
	require.NoError(t, err)

	rc, err := m.Open()
	require.NoError(t, err)
	buf := make([]byte, 16)
	_, err = io.ReadFull(rc, buf)
	require.NoError(t, err)
	assert.NoError(t, rc.Close())
}

func TestMultipartFile_RejectsMissingAndDirectory(t *testing.T) {
	_, err := newMultipartFile(filepath.Join(t.TempDir(), "missing.db"))
	assert.ErrorContains(t, err, "open database file")

	_, err = newMultipartFile(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")
}
