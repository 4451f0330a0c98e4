package media

import (
	"encoding/json"
	"fmt"

	"github.com/MontseAlvarez09/Alojamientos/internal/domain"
)

// The backend is not consistent about how it stores images. A cover can
// arrive as a {mimeType,data} object, as that object JSON-encoded into a
// string, or as a bare base64 string from the oldest rows. Galleries are
// JSON arrays of base64 strings, except one legacy variant that encodes
// the array a second time as a string. Decoding is total: malformed
// input yields nil / empty, never an error.

// DecodeCover normalizes any of the cover representations. Unknown or
// empty input returns nil.
func DecodeCover(v any) *domain.Imagen {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		data, _ := t["data"].(string)
		mime, _ := t["mimeType"].(string)
		if data == "" {
			return nil
		}
		if mime == "" {
			mime = "image/jpeg"
		}
		return &domain.Imagen{MimeType: mime, Data: data}
	case string:
		if t == "" {
			return nil
		}
		var obj struct {
			MimeType string `json:"mimeType"`
			Data     string `json:"data"`
		}
		if err := json.Unmarshal([]byte(t), &obj); err == nil && obj.Data != "" {
			if obj.MimeType == "" {
				obj.MimeType = "image/jpeg"
			}
			return &domain.Imagen{MimeType: obj.MimeType, Data: obj.Data}
		}
		// legacy rows store the raw base64 payload directly
		return &domain.Imagen{MimeType: "image/jpeg", Data: t}
	default:
		return nil
	}
}

// DecodeGallery normalizes a gallery field to a slice of base64 strings,
// preserving server order. Any input it cannot make sense of decodes to
// an empty slice.
func DecodeGallery(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return []string{}
		}
		var arr []string
		if err := json.Unmarshal([]byte(t), &arr); err != nil {
			return []string{}
		}
		if arr == nil {
			return []string{}
		}
		return arr
	default:
		return []string{}
	}
}

// DataURI renders an image the way the views embed it.
func DataURI(img domain.Imagen) string {
	return fmt.Sprintf("data:%s;base64,%s", img.MimeType, img.Data)
}
