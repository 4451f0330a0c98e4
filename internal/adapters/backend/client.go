// Package backend is the REST client for the remote Alojamientos API:
// one collection endpoint per resource, JSON for content entities,
// multipart for anything carrying binary attachments.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/MontseAlvarez09/Alojamientos/internal/adapters/observability"
	"github.com/MontseAlvarez09/Alojamientos/internal/session"
)

var (
	ErrNotFound     = errors.New("backend: not found")
	ErrUnauthorized = errors.New("backend: unauthorized")
	ErrForbidden    = errors.New("backend: forbidden")
)

// APIError is any other non-2xx answer. Message prefers whatever the
// server said over a generic fallback, so the controller can show it
// verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
}

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
	ses  *session.Session
}

// New builds a client for the given API base (".../api"). Every call is
// a single round trip: the workflow never retries on its own, a failed
// mutation waits for the user to act again.
func New(base string, ses *session.Session, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
		ses:  ses,
	}
}

// List fetches a whole collection, e.g. List(ctx, "hoteles").
func (c *Client) List(ctx context.Context, resource string) ([]map[string]any, error) {
	var out []map[string]any
	if err := c.do(ctx, http.MethodGet, c.url(resource, 0), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPath fetches a sub-collection by raw path, e.g. "cuartos/hotel/7".
func (c *Client) ListPath(ctx context.Context, path string) ([]map[string]any, error) {
	var out []map[string]any
	if err := c.do(ctx, http.MethodGet, c.base+"/"+strings.TrimLeft(path, "/"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, resource string, id int64) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, c.url(resource, id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, resource string, p Payload) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodPost, c.url(resource, 0), &p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the whole record; the backend has no PATCH.
func (c *Client) Update(ctx context.Context, resource string, id int64, p Payload) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodPut, c.url(resource, id), &p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Remove(ctx context.Context, resource string, id int64) error {
	return c.do(ctx, http.MethodDelete, c.url(resource, id), nil, nil)
}

func (c *Client) url(resource string, id int64) string {
	u := c.base + "/" + strings.Trim(resource, "/")
	if id != 0 {
		u += "/" + strconv.FormatInt(id, 10)
	}
	return u
}

func (c *Client) do(ctx context.Context, method, url string, p *Payload, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	contentType := ""
	if p != nil {
		var err error
		body, contentType, err = p.encode()
		if err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "alojamientos-admin/1.0")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if u, ok := c.ses.CurrentUser(); ok {
		req.Header.Set("X-Id-Usuario", strconv.FormatInt(u.ID, 10))
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("backend", method, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("backend", method, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			io.Copy(io.Discard, resp.Body)
			return nil
		}
		// Some mutations answer with a plain message instead of the
		// entity; the caller refetches the list either way, so a body
		// that is not the expected JSON is not an error.
		b, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
		if err != nil {
			return err
		}
		if len(strings.TrimSpace(string(b))) == 0 {
			return nil
		}
		_ = json.Unmarshal(b, out)
		return nil

	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return ErrForbidden

	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Message: serverMessage(resp.StatusCode, b)}
	}
}

// serverMessage digs the human-readable message out of an error body.
func serverMessage(status int, body []byte) string {
	t := strings.TrimSpace(string(body))
	if t == "" {
		return http.StatusText(status)
	}
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, k := range []string{"message", "error", "detail"} {
			if s, ok := obj[k].(string); ok && s != "" {
				return s
			}
		}
	}
	var s string
	if err := json.Unmarshal(body, &s); err == nil && s != "" {
		return s
	}
	return t
}
