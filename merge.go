// Forward-only merge of two position-sorted site collections

package main

// Merger pairs sites from a driving collection with same-position sites
// in a lookup collection. Both collections must already be sorted
// chromosome-major, start-minor under the same chromosome order, and
// Match must be called with driving sites in that order; the merge
// trusts the ordering and never re-checks it.
//
// The cursor into the lookup collection only moves forward, so a full
// traversal of the driving collection costs O(|A| + |B|) comparisons in
// total
type Merger struct {
	b       []Site
	j       int
	natural bool
}

// NewMerger returns a Merger over the lookup collection b. Set natural
// when the collections are ordered with natural chromosome names
func NewMerger(b []Site, natural bool) *Merger {
	return &Merger{b: b, natural: natural}
}

// Match returns the lookup-side site at the same chromosome and start
// coordinate as a, if one exists at or beyond the cursor. Only the first
// candidate not preceding a is considered, so duplicate positions in the
// lookup collection beyond the cursor are never consulted. Once the
// lookup collection is exhausted no further matches are possible
func (m *Merger) Match(a Site) (Site, bool) {
	for m.j < len(m.b) && siteLess(m.b[m.j], a, m.natural) {
		m.j++
	}
	if m.j == len(m.b) {
		return Site{}, false
	}
	b := m.b[m.j]
	if b.Chrom == a.Chrom && b.Start == a.Start {
		return b, true
	}
	return Site{}, false
}
