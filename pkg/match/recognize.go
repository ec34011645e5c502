package match

import (
	"sort"
	"unicode/utf8"

	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/host"
)

// Recognize finds every value in text. base is the absolute offset of the
// first rune of text. Specs are tried in catalog order and a candidate that
// overlaps an accepted match is dropped, as is one that names an impossible
// value. The result is sorted by Start.
func Recognize(text string, base int, catalog format.Catalog) []Match {
	var accepted []Match
	offsets := newRuneOffsets(text)

	for _, spec := range catalog.Specs() {
		for _, loc := range spec.Pattern.FindAllStringIndex(text, -1) {
			start, end := base+offsets.at(loc[0]), base+offsets.at(loc[1])
			if overlapsAny(accepted, start, end) {
				continue
			}
			raw := text[loc[0]:loc[1]]
			value, user, err := spec.Read(raw)
			if err != nil {
				continue
			}
			accepted = append(accepted, Match{
				Start:      start,
				End:        end,
				Raw:        raw,
				Spec:       spec,
				UserFormat: user,
				Value:      value,
			})
		}
	}

	sort.Slice(accepted, func(i, j int) bool { return accepted[i].Start < accepted[j].Start })
	return accepted
}

// RecognizeRanges runs Recognize over each range and merges the results.
func RecognizeRanges(ranges []host.Range, catalog format.Catalog) []Match {
	var all []Match
	for _, r := range ranges {
		for _, m := range Recognize(r.Text, r.Start, catalog) {
			if !overlapsAny(all, m.Start, m.End) {
				all = append(all, m)
			}
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Start < all[j].Start })
	return all
}

func overlapsAny(ms []Match, start, end int) bool {
	for _, m := range ms {
		if m.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// runeOffsets maps byte offsets of a string to rune offsets.
type runeOffsets struct {
	ascii bool
	runes []int
}

func newRuneOffsets(s string) runeOffsets {
	if utf8.RuneCountInString(s) == len(s) {
		return runeOffsets{ascii: true}
	}
	runes := make([]int, len(s)+1)
	n := 0
	for i := range s {
		runes[i] = n
		n++
	}
	runes[len(s)] = n
	return runeOffsets{runes: runes}
}

func (r runeOffsets) at(b int) int {
	if r.ascii {
		return b
	}
	return r.runes[b]
}
