package workflow

import (
	"context"

	"github.com/MontseAlvarez09/Alojamientos/internal/schema"
)

// ListCache is the page's snapshot of one collection. It is replaced
// wholesale after every successful mutation; nothing patches it in
// place. Between a mutation succeeding and the refetch landing the
// snapshot is stale, which the screens accept.
type ListCache struct {
	resource string
	decode   func(map[string]any) schema.Item
	items    []schema.Item
	byID     map[int64]schema.Item
}

func NewListCache(resource string, decode func(map[string]any) schema.Item) *ListCache {
	return &ListCache{resource: resource, decode: decode, byID: map[int64]schema.Item{}}
}

// Refresh refetches the entire collection and swaps the snapshot.
func (l *ListCache) Refresh(ctx context.Context, client ResourceClient) error {
	raw, err := client.List(ctx, l.resource)
	if err != nil {
		return err
	}
	items := make([]schema.Item, 0, len(raw))
	byID := make(map[int64]schema.Item, len(raw))
	for _, m := range raw {
		it := l.decode(m)
		items = append(items, it)
		byID[it.ID] = it
	}
	l.items = items
	l.byID = byID
	return nil
}

func (l *ListCache) Items() []schema.Item { return l.items }

func (l *ListCache) Get(id int64) (schema.Item, bool) {
	it, ok := l.byID[id]
	return it, ok
}

func (l *ListCache) Len() int { return len(l.items) }
