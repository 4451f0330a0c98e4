package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/MontseAlvarez09/Alojamientos/internal/media"
)

// FormValue is one scalar multipart field. Order is preserved so the
// encoded body matches what the screens send.
type FormValue struct {
	Name  string
	Value string
}

// FilePart is one binary attachment keyed by its multipart field name.
// Gallery uploads repeat the same field; covers use it once.
type FilePart struct {
	Field string
	File  media.Attachment
}

// Payload is what a mutation carries: either a JSON document or a
// multipart form, never both.
type Payload struct {
	JSON   any
	Values []FormValue
	Files  []FilePart
}

func (p *Payload) isJSON() bool { return p.JSON != nil }

// encode renders the payload body and its Content-Type.
func (p *Payload) encode() (io.Reader, string, error) {
	if p.isJSON() {
		b, err := json.Marshal(p.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("encode json payload: %w", err)
		}
		return bytes.NewReader(b), "application/json", nil
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, v := range p.Values {
		if err := w.WriteField(v.Name, v.Value); err != nil {
			return nil, "", err
		}
	}
	for _, fp := range p.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`,
			escapeQuotes(fp.Field), escapeQuotes(fp.File.Name)))
		if fp.File.ContentType != "" {
			h.Set("Content-Type", fp.File.ContentType)
		}
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(fp.File.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
