package form

import (
	"github.com/MontseAlvarez09/Alojamientos/internal/media"
)

// ImageConfig names the multipart fields a resource uses for its
// attachments. Empty strings mean the resource has no such field.
type ImageConfig struct {
	CoverField       string // e.g. "imagen", "logo", "imagenhabitacion"
	GalleryField     string // e.g. "imagenes"
	RemoveCoverField string // e.g. "removeImage"
	RemovalField     string // e.g. "imagesToRemove"
}

// Store holds the draft entity being created or edited: field values,
// the gallery already on the server, and pending attachments. One store
// is owned by one controller; there is no concurrent writer.
type Store struct {
	fields []FieldSpec
	images ImageConfig

	values      map[string]string
	editing     int64 // 0 => create mode
	baseline    int   // existing gallery size when the editor was seeded
	existing    []media.Existing
	pending     []media.Attachment
	cover       *media.Attachment
	removeCover bool
	previews    []*media.Preview
}

func NewStore(fields []FieldSpec, images ImageConfig) *Store {
	s := &Store{fields: fields, images: images}
	s.seedDefaults()
	return s
}

func (s *Store) seedDefaults() {
	s.values = make(map[string]string, len(s.fields))
	for _, f := range s.fields {
		s.values[f.Name] = f.Default
	}
	s.editing = 0
	s.baseline = 0
	s.existing = nil
	s.pending = nil
	s.cover = nil
	s.removeCover = false
}

func (s *Store) spec(name string) *FieldSpec {
	for i := range s.fields {
		if s.fields[i].Name == name {
			return &s.fields[i]
		}
	}
	return nil
}

// Seed loads an entity for editing. Field values are copied verbatim;
// the server gallery is split into "existing" entries tagged with the
// ordinals they held in the response.
func (s *Store) Seed(id int64, values map[string]string, gallery []string) {
	s.seedDefaults()
	s.editing = id
	for name, v := range values {
		if s.spec(name) != nil {
			s.values[name] = v
		}
	}
	s.existing = media.TagExisting(gallery)
	s.baseline = len(gallery)
}

// Reset returns to create-mode defaults and releases any previews the
// closing editor still holds.
func (s *Store) Reset() {
	for _, p := range s.previews {
		p.Release()
	}
	s.previews = nil
	s.seedDefaults()
}

// SetField stores a value after running the field's input filter.
// Rejected or unknown input leaves the draft untouched and reports
// false, matching the silent behavior of the screens.
func (s *Store) SetField(name, value string) bool {
	f := s.spec(name)
	if f == nil {
		return false
	}
	if f.Accept != nil && !f.Accept(value) {
		return false
	}
	s.values[name] = value
	return true
}

// ApplyDefault sets a late-bound default (e.g. the first reference
// entity's id once the reference list loads) without clobbering a value
// the user already chose.
func (s *Store) ApplyDefault(name, value string) {
	if f := s.spec(name); f != nil && s.values[name] == "" {
		s.values[name] = value
	}
}

func (s *Store) Value(name string) string { return s.values[name] }

// Values returns a copy of the current draft fields.
func (s *Store) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

func (s *Store) Editing() int64 { return s.editing }
func (s *Store) IsEdit() bool   { return s.editing != 0 }

// Validate runs the submit-time gate: required fields plus per-field
// format validators. The result maps field name to message; an empty
// map means the draft may be submitted.
func (s *Store) Validate() map[string]string {
	errs := make(map[string]string)
	for _, f := range s.fields {
		v := s.values[f.Name]
		if f.Required && v == "" {
			errs[f.Name] = "campo requerido"
			continue
		}
		if f.Validate != nil {
			if msg := f.Validate(v); msg != "" {
				errs[f.Name] = msg
			}
		}
	}
	return errs
}

// ---- images ----

func (s *Store) AddImages(atts ...media.Attachment) {
	if s.images.GalleryField == "" {
		return
	}
	s.pending = append(s.pending, atts...)
}

func (s *Store) SetCover(att media.Attachment) {
	if s.images.CoverField == "" {
		return
	}
	s.cover = &att
	s.removeCover = false
}

// MarkRemoveCover flags the stored cover for deletion and drops any
// staged replacement, like the removeImage checkbox does.
func (s *Store) MarkRemoveCover() {
	s.removeCover = true
	s.cover = nil
}

// RemoveExisting drops a server-side image from the draft by its load
// ordinal. No network call happens here; the server learns about it via
// the removal set at submit.
func (s *Store) RemoveExisting(ordinal int) {
	kept := s.existing[:0]
	for _, e := range s.existing {
		if e.Ordinal != ordinal {
			kept = append(kept, e)
		}
	}
	s.existing = kept
}

// RemoveNew discards a staged upload that never reached the server.
func (s *Store) RemoveNew(i int) {
	if i < 0 || i >= len(s.pending) {
		return
	}
	s.pending = append(s.pending[:i], s.pending[i+1:]...)
}

func (s *Store) Existing() []media.Existing  { return s.existing }
func (s *Store) Pending() []media.Attachment { return s.pending }
func (s *Store) Cover() *media.Attachment    { return s.cover }
func (s *Store) RemoveCover() bool           { return s.removeCover }

// RemovedOrdinals computes the removal set relative to the seeded
// baseline.
func (s *Store) RemovedOrdinals() []int {
	return media.RemovedOrdinals(s.baseline, s.existing)
}

// TrackPreview registers a transient preview to be released on Reset.
func (s *Store) TrackPreview(p *media.Preview) {
	s.previews = append(s.previews, p)
}
