package dpmtool

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

// multipartFile is a multipart/form-data body with the file at path as its
// only part. The file is streamed on every Open, never held in memory.
type multipartFile struct {
	path     string
	boundary string
	size     int64
}

func newMultipartFile(path string) (*multipartFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open database file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("open database file: %s is a directory", path)
	}

	m := &multipartFile{
		path:     path,
		boundary: multipart.NewWriter(io.Discard).Boundary(),
	}

	var envelope bytes.Buffer
	if err := m.write(&envelope, strings.NewReader("")); err != nil {
		return nil, err
	}
	m.size = int64(envelope.Len()) + info.Size()
	return m, nil
}

func (m *multipartFile) ContentType() string {
	return "multipart/form-data; boundary=" + m.boundary
}

// Size is the exact encoded length, valid while the file is unchanged.
func (m *multipartFile) Size() int64 {
	return m.size
}

// Open starts encoding the body on its own goroutine. Closing the reader
// early stops the encoder.
func (m *multipartFile) Open() (io.ReadCloser, error) {
	f, err := os.Open(m.path)
	if err != nil {
		return nil, fmt.Errorf("open database file: %w", err)
	}

	pr, pw := io.Pipe()
	go func() {
		defer f.Close()
		pw.CloseWithError(m.write(pw, f))
	}()
	return pr, nil
}

func (m *multipartFile) write(w io.Writer, content io.Reader) error {
	mw := multipart.NewWriter(w)
	if err := mw.SetBoundary(m.boundary); err != nil {
		return fmt.Errorf("set multipart boundary: %w", err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filepath.Base(m.path))))
	h.Set("Content-Type", "application/octet-stream")
	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("read database file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
