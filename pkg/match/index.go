package match

import (
	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/host"
)

// Index holds the matches of one view: those in the visible ranges, and a
// lazily computed list for the whole document.
type Index struct {
	catalog format.Catalog
	doc     host.Document

	version uint64
	visible []Match

	full        []Match
	fullVersion uint64
	fullValid   bool
}

// NewIndex returns an empty index recognising with catalog.
func NewIndex(catalog format.Catalog) *Index {
	return &Index{catalog: catalog}
}

// SetCatalog switches the catalog. Cached results are dropped; call Refresh
// to recompute.
func (x *Index) SetCatalog(catalog format.Catalog) {
	x.catalog = catalog
	x.fullValid = false
}

// Catalog returns the catalog in use.
func (x *Index) Catalog() format.Catalog { return x.catalog }

// Refresh recomputes the visible matches of doc.
func (x *Index) Refresh(doc host.Document) {
	x.doc = doc
	x.version = doc.Version()
	x.visible = RecognizeRanges(doc.VisibleRanges(), x.catalog)
}

// Stale reports whether doc changed since the last Refresh.
func (x *Index) Stale(doc host.Document) bool {
	return x.doc == nil || x.version != doc.Version()
}

// Visible returns the matches in the visible ranges, sorted by Start.
func (x *Index) Visible() []Match { return x.visible }

// All returns the matches of the whole document, recomputing them when the
// document version moved.
func (x *Index) All() []Match {
	if x.doc == nil {
		return nil
	}
	if v := x.doc.Version(); !x.fullValid || x.fullVersion != v {
		x.full = Recognize(x.doc.Text(), 0, x.catalog)
		x.fullVersion = v
		x.fullValid = true
	}
	return x.full
}

// At returns the match a cursor at offset is on. A match with a character
// at offset wins over one that ends there, so of two adjacent matches the
// second is picked at their boundary.
func (x *Index) At(offset int) (Match, bool) {
	if m, ok := x.find(func(m Match) bool { return m.Covers(offset) }); ok {
		return m, true
	}
	return x.find(func(m Match) bool { return m.End == offset })
}

func (x *Index) find(on func(Match) bool) (Match, bool) {
	for _, m := range x.visible {
		if on(m) {
			return m, true
		}
	}
	for _, m := range x.All() {
		if on(m) {
			return m, true
		}
	}
	return Match{}, false
}

// Span returns the match whose span is exactly [start, end).
func (x *Index) Span(start, end int) (Match, bool) {
	m, ok := x.SameStart(start)
	if !ok || m.End != end {
		return Match{}, false
	}
	return m, true
}

// SameStart returns the match starting at start, if any.
func (x *Index) SameStart(start int) (Match, bool) {
	for _, m := range x.visible {
		if m.Start == start {
			return m, true
		}
	}
	for _, m := range x.All() {
		if m.Start == start {
			return m, true
		}
	}
	return Match{}, false
}

// After returns the first match starting after offset.
func (x *Index) After(offset int) (Match, bool) {
	for _, m := range x.All() {
		if m.Start > offset {
			return m, true
		}
	}
	return Match{}, false
}

// Before returns the last match ending before offset.
func (x *Index) Before(offset int) (Match, bool) {
	all := x.All()
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].End < offset {
			return all[i], true
		}
	}
	return Match{}, false
}
