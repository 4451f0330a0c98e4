package media

import "sort"

// Existing is an image already persisted server-side. Ordinal is the
// position the image held in the server response when the editor was
// seeded; it follows the image around even when the editor filters the
// list, so the removal set never depends on current slice positions.
type Existing struct {
	Ordinal int
	Data    string
}

// TagExisting stamps a freshly fetched gallery with its ordinals.
func TagExisting(gallery []string) []Existing {
	out := make([]Existing, len(gallery))
	for i, data := range gallery {
		out[i] = Existing{Ordinal: i, Data: data}
	}
	return out
}

// RemovedOrdinals computes the removal set sent alongside an update:
// every original ordinal no longer present among the kept images. The
// result is sorted ascending; empty when nothing was removed.
func RemovedOrdinals(baseline int, kept []Existing) []int {
	retained := make(map[int]bool, len(kept))
	for _, e := range kept {
		retained[e.Ordinal] = true
	}
	removed := make([]int, 0)
	for i := 0; i < baseline; i++ {
		if !retained[i] {
			removed = append(removed, i)
		}
	}
	sort.Ints(removed)
	return removed
}
