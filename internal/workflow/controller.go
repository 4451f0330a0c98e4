// Package workflow orchestrates the resource-editor lifecycle every
// management screen shares: load list, open a draft, mutate it, submit,
// refetch, surface errors. One controller instance owns one resource's
// list cache and form store; there is no concurrent writer.
package workflow

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/MontseAlvarez09/Alojamientos/internal/adapters/backend"
	"github.com/MontseAlvarez09/Alojamientos/internal/form"
	"github.com/MontseAlvarez09/Alojamientos/internal/media"
	"github.com/MontseAlvarez09/Alojamientos/internal/schema"
)

type State int

const (
	Idle State = iota
	Creating
	Editing
	Submitting
	ConfirmingDelete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case ConfirmingDelete:
		return "confirming-delete"
	}
	return "unknown"
}

var (
	ErrEditorClosed = errors.New("workflow: no editor open")
	ErrBusy         = errors.New("workflow: a submit is already in flight")
	ErrValidation   = errors.New("workflow: validation failed")
	ErrBadState     = errors.New("workflow: operation not allowed in this state")
	ErrNotInList    = errors.New("workflow: record not in the loaded list")
)

// ResourceClient is the slice of the backend client the controller
// needs; satisfied by *backend.Client.
type ResourceClient interface {
	List(ctx context.Context, resource string) ([]map[string]any, error)
	Create(ctx context.Context, resource string, p backend.Payload) (map[string]any, error)
	Update(ctx context.Context, resource string, id int64, p backend.Payload) (map[string]any, error)
	Remove(ctx context.Context, resource string, id int64) error
}

type Controller struct {
	sch    schema.Schema
	client ResourceClient
	store  *form.Store
	list   *ListCache
	refs   map[string]*ListCache
	log    zerolog.Logger

	state         State
	banner        string
	fieldErrs     map[string]string
	pendingDelete int64
}

func New(sch schema.Schema, client ResourceClient, log zerolog.Logger) *Controller {
	c := &Controller{
		sch:    sch,
		client: client,
		store:  sch.NewStore(),
		list:   NewListCache(sch.Resource, sch.Decode),
		refs:   map[string]*ListCache{},
		log:    log.With().Str("resource", sch.Resource).Logger(),
	}
	for _, ref := range sch.References {
		c.refs[ref.Name] = NewListCache(ref.Resource, schemaFor(ref.Resource).Decode)
	}
	return c
}

func schemaFor(resource string) schema.Schema {
	if s, ok := schema.ByName(resource); ok {
		return s
	}
	// reference-only collections (tipohabitacion) have no editor schema;
	// a minimal decoder is enough for a selector
	return schema.Schema{
		Resource: resource,
		Decode: func(m map[string]any) schema.Item {
			return schema.Item{ID: genericID(m), Label: genericLabel(m)}
		},
	}
}

func genericID(m map[string]any) int64 {
	if v, ok := m["id"].(float64); ok {
		return int64(v)
	}
	return 0
}

func genericLabel(m map[string]any) string {
	for _, k := range []string{"nombre", "tipo", "titulo"} {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Load fetches the collection and every reference collection. Called on
// mount and again after each successful mutation.
func (c *Controller) Load(ctx context.Context) error {
	if err := c.list.Refresh(ctx, c.client); err != nil {
		c.banner = userMessage(err, "Error al cargar "+c.sch.Resource+". Intente de nuevo.")
		return err
	}
	for name, ref := range c.refs {
		if err := ref.Refresh(ctx, c.client); err != nil {
			c.banner = userMessage(err, "Error al cargar "+name+". Intente de nuevo.")
			return err
		}
	}
	c.banner = ""
	return nil
}

func (c *Controller) State() State                  { return c.state }
func (c *Controller) Items() []schema.Item          { return c.list.Items() }
func (c *Controller) Reference(n string) []schema.Item {
	if ref, ok := c.refs[n]; ok {
		return ref.Items()
	}
	return nil
}
func (c *Controller) Banner() string                { return c.banner }
func (c *Controller) DismissBanner()                { c.banner = "" }
func (c *Controller) FieldErrors() map[string]string { return c.fieldErrs }
func (c *Controller) Draft() *form.Store            { return c.store }

// OpenCreate opens an empty draft with schema defaults, including the
// first reference entry as the default foreign key.
func (c *Controller) OpenCreate() error {
	if c.state != Idle {
		return ErrBadState
	}
	c.store.Reset()
	c.applyReferenceDefaults()
	c.fieldErrs = nil
	c.state = Creating
	return nil
}

// OpenEdit seeds the draft from the cached list entry.
func (c *Controller) OpenEdit(id int64) error {
	if c.state != Idle {
		return ErrBadState
	}
	it, ok := c.list.Get(id)
	if !ok {
		return ErrNotInList
	}
	c.sch.SeedEdit(c.store, it)
	c.fieldErrs = nil
	c.state = Editing
	return nil
}

func (c *Controller) applyReferenceDefaults() {
	for _, ref := range c.sch.References {
		if ref.DefaultFor == "" {
			continue
		}
		if items := c.Reference(ref.Name); len(items) > 0 {
			c.store.ApplyDefault(ref.DefaultFor, strconv.FormatInt(items[0].ID, 10))
		}
	}
}

// SetField updates the draft, refusing immutable fields while editing.
func (c *Controller) SetField(name, value string) bool {
	if c.state != Creating && c.state != Editing {
		return false
	}
	if c.state == Editing && c.sch.Immutable(name) {
		return false
	}
	return c.store.SetField(name, value)
}

func (c *Controller) AttachGallery(paths ...string) error {
	if c.state != Creating && c.state != Editing {
		return ErrEditorClosed
	}
	for _, p := range paths {
		att, err := media.LoadAttachment(p)
		if err != nil {
			return err
		}
		c.store.AddImages(att)
	}
	return nil
}

func (c *Controller) AttachCover(path string) error {
	if c.state != Creating && c.state != Editing {
		return ErrEditorClosed
	}
	att, err := media.LoadAttachment(path)
	if err != nil {
		return err
	}
	c.store.SetCover(att)
	return nil
}

func (c *Controller) RemoveCoverImage() {
	if c.state == Creating || c.state == Editing {
		c.store.MarkRemoveCover()
	}
}

func (c *Controller) RemoveExistingImage(ordinal int) {
	if c.state == Editing {
		c.store.RemoveExisting(ordinal)
	}
}

func (c *Controller) RemoveNewImage(i int) {
	if c.state == Creating || c.state == Editing {
		c.store.RemoveNew(i)
	}
}

// Cancel abandons the draft without touching the server.
func (c *Controller) Cancel() {
	if c.state == Creating || c.state == Editing {
		c.store.Reset()
		c.fieldErrs = nil
		c.state = Idle
	}
}

// Submit runs the validation gate, fires the create or update, then
// refetches the list and closes the editor. While the request is in
// flight the controller refuses a second submit so a double click
// cannot fire twice.
func (c *Controller) Submit(ctx context.Context) error {
	switch c.state {
	case Creating, Editing:
	case Submitting:
		return ErrBusy
	default:
		return ErrEditorClosed
	}

	if errs := c.store.Validate(); len(errs) > 0 {
		c.fieldErrs = errs
		return ErrValidation
	}
	c.fieldErrs = nil

	prev := c.state
	c.state = Submitting
	payload := c.sch.BuildPayload(c.store)

	var err error
	if c.store.IsEdit() {
		_, err = c.client.Update(ctx, c.sch.Resource, c.store.Editing(), payload)
	} else {
		_, err = c.client.Create(ctx, c.sch.Resource, payload)
	}
	if err != nil {
		// whole-record replace: a failed call left the server unchanged
		c.state = prev
		c.banner = userMessage(err, "No se pudo guardar. Intente de nuevo.")
		c.log.Warn().Err(err).Bool("edit", c.store.IsEdit()).Msg("submit failed")
		return err
	}

	c.store.Reset()
	c.state = Idle
	if err := c.list.Refresh(ctx, c.client); err != nil {
		c.banner = userMessage(err, "Error al recargar la lista.")
		return err
	}
	c.banner = ""
	return nil
}

// RequestDelete gates the irreversible delete behind a confirmation.
func (c *Controller) RequestDelete(id int64) error {
	if c.state != Idle {
		return ErrBadState
	}
	if _, ok := c.list.Get(id); !ok {
		return ErrNotInList
	}
	c.pendingDelete = id
	c.state = ConfirmingDelete
	return nil
}

// CancelDelete abandons the confirmation; declining is a no-op, not an
// error.
func (c *Controller) CancelDelete() {
	if c.state == ConfirmingDelete {
		c.pendingDelete = 0
		c.state = Idle
	}
}

// ConfirmDelete issues the DELETE and refetches the list.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	if c.state != ConfirmingDelete {
		return ErrBadState
	}
	id := c.pendingDelete
	c.pendingDelete = 0
	c.state = Idle

	if err := c.client.Remove(ctx, c.sch.Resource, id); err != nil {
		c.banner = userMessage(err, "Error al eliminar. Verifique las dependencias o intente de nuevo.")
		c.log.Warn().Err(err).Int64("id", id).Msg("delete failed")
		return err
	}
	if err := c.list.Refresh(ctx, c.client); err != nil {
		c.banner = userMessage(err, "Error al recargar la lista.")
		return err
	}
	c.banner = ""
	return nil
}

// userMessage prefers whatever the server said over the generic text.
func userMessage(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
