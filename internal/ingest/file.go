package ingest

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

const defaultContentType = "application/octet-stream"

// LocalFile is one file selected for upload. Open may be called once per
// attempt; Size is -1 when unknown.
type LocalFile struct {
	Name        string
	ContentType string
	Size        int64
	Path        string

	open func() (io.ReadCloser, error)
}

func (f LocalFile) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, fmt.Errorf("%s: no content source", f.Name)
	}
	return f.open()
}

// FromPath describes a file on disk. The content type is sniffed from the
// file's leading bytes and falls back to the extension.
func FromPath(path string) (LocalFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return LocalFile{}, err
	}
	if info.IsDir() {
		return LocalFile{}, fmt.Errorf("%s is a directory", path)
	}

	ct, err := detectContentType(path)
	if err != nil {
		return LocalFile{}, err
	}

	return LocalFile{
		Name:        filepath.Base(path),
		ContentType: ct,
		Size:        info.Size(),
		Path:        path,
		open:        func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// FromBytes builds an in-memory LocalFile.
func FromBytes(name, contentType string, data []byte) LocalFile {
	return LocalFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		open:        func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

func detectContentType(path string) (string, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detect content type of %s: %w", path, err)
	}

	ct := m.String()
	if m.Is(defaultContentType) || m.Is("text/plain") {
		if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
			ct = byExt
		}
	}
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		ct = mt
	}
	return ct, nil
}
