// Package schema describes each backend collection once (endpoint,
// encoding, fields, validators, image slots) so a single editor
// implementation can drive all of them instead of one copy per screen.
package schema

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/MontseAlvarez09/Alojamientos/internal/adapters/backend"
	"github.com/MontseAlvarez09/Alojamientos/internal/domain"
	"github.com/MontseAlvarez09/Alojamientos/internal/form"
)

// Reference is a related collection the editor needs loaded, e.g. the
// hotel list behind a cuarto's hotel selector. DefaultFor names the
// field seeded with the first reference entry's id on create.
type Reference struct {
	Name       string
	Resource   string
	DefaultFor string
}

// Item is one decoded list entry, editor-shaped: scalar fields as the
// form holds them, the gallery in server order, the cover separate.
type Item struct {
	ID      int64
	Fields  map[string]string
	Gallery []string
	Cover   *domain.Imagen
	Label   string
}

type Schema struct {
	Resource  string // collection path under the API base
	Title     string
	Multipart bool
	Fields    []form.FieldSpec
	Images    form.ImageConfig

	// ImmutableOnEdit lists fields the editor refuses to change once a
	// record exists (the cuarto's hotel selector is disabled on edit).
	ImmutableOnEdit []string

	// EditOverrides are forced onto the draft when editing starts;
	// content entities always come back as "activo".
	EditOverrides map[string]string

	References []Reference

	Decode func(map[string]any) Item
}

func (s Schema) NewStore() *form.Store {
	return form.NewStore(s.Fields, s.Images)
}

// SeedEdit populates the store from a fetched item.
func (s Schema) SeedEdit(st *form.Store, it Item) {
	st.Seed(it.ID, it.Fields, it.Gallery)
	for name, v := range s.EditOverrides {
		st.SetField(name, v)
	}
}

func (s Schema) Immutable(name string) bool {
	for _, f := range s.ImmutableOnEdit {
		if f == name {
			return true
		}
	}
	return false
}

// BuildPayload assembles the submit body from the draft: the full field
// set (whole-record replace), the removal index set when existing
// gallery images were dropped, and every pending attachment.
func (s Schema) BuildPayload(st *form.Store) backend.Payload {
	if !s.Multipart {
		obj := make(map[string]any, len(s.Fields))
		for _, f := range s.Fields {
			obj[f.Name] = jsonValue(f.Name, st.Value(f.Name))
		}
		return backend.Payload{JSON: obj}
	}

	var p backend.Payload
	for _, f := range s.Fields {
		p.Values = append(p.Values, backend.FormValue{Name: f.Name, Value: st.Value(f.Name)})
	}
	if s.Images.RemoveCoverField != "" {
		p.Values = append(p.Values, backend.FormValue{
			Name:  s.Images.RemoveCoverField,
			Value: strconv.FormatBool(st.RemoveCover()),
		})
	}
	if s.Images.RemovalField != "" {
		if removed := st.RemovedOrdinals(); len(removed) > 0 {
			b, _ := json.Marshal(removed)
			p.Values = append(p.Values, backend.FormValue{Name: s.Images.RemovalField, Value: string(b)})
		}
	}
	for _, att := range st.Pending() {
		p.Files = append(p.Files, backend.FilePart{Field: s.Images.GalleryField, File: att})
	}
	if c := st.Cover(); c != nil {
		p.Files = append(p.Files, backend.FilePart{Field: s.Images.CoverField, File: *c})
	}
	return p
}

// jsonValue keeps foreign keys numeric in JSON bodies, the way the
// screens sent the ids they got from reference selects.
func jsonValue(name, v string) any {
	if strings.HasPrefix(name, "id_") || strings.HasPrefix(name, "idtipo") {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return v
}

/********** defensive map lookups for backend payloads **********/

// fieldStr returns the first present alias as a string; numbers are
// formatted the way the form would hold them.
func fieldStr(m map[string]any, aliases ...string) string {
	for _, k := range aliases {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(v)
		case json.Number:
			return v.String()
		}
	}
	return ""
}

func fieldI64(m map[string]any, aliases ...string) int64 {
	for _, k := range aliases {
		switch v := m[k].(type) {
		case float64:
			return int64(v)
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return n
			}
		case json.Number:
			if n, err := v.Int64(); err == nil {
				return n
			}
		}
	}
	return 0
}
