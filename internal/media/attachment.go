package media

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// Attachment is a local file staged for upload.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// LoadAttachment reads a file from disk and sniffs its MIME type.
func LoadAttachment(path string) (Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("read attachment: %w", err)
	}
	if len(data) == 0 {
		return Attachment{}, fmt.Errorf("attachment %s is empty", path)
	}
	return Attachment{
		Name:        filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

// Preview is a transient decoded copy of an image, materialized so a
// view can display it. It is valid only while the current editor is
// open; callers must Release it when it leaves the screen or the
// decoded bytes pile up in the temp dir.
type Preview struct {
	path string
}

// NewPreview decodes a base64 payload into a temp file.
func NewPreview(data string) (*Preview, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode preview: %w", err)
	}
	f, err := os.CreateTemp("", "aloja-preview-*")
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(raw); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, err
	}
	return &Preview{path: f.Name()}, nil
}

func (p *Preview) Path() string { return p.path }

// Release deletes the backing file. Safe to call more than once.
func (p *Preview) Release() {
	if p.path != "" {
		_ = os.Remove(p.path)
		p.path = ""
	}
}
