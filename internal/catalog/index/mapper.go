package index

import (
	"sort"
	"strings"
	"unicode/utf8"

	"painting_estimator_backend/internal/shared/surface"
)

// Method names the mapping stage that produced a Match.
type Method string

const (
	MethodExact        Method = "exact"
	MethodSurfaceFuzzy Method = "surface_fuzzy"
	MethodFuzzy        Method = "fuzzy"
	MethodNone         Method = "none"
)

// Confidence per mapping stage.
const (
	ConfidenceExact        = 1.0
	ConfidenceSurfaceFuzzy = 0.7
	ConfidenceFuzzy        = 0.5
)

// Score tiers for fuzzy matching.
const (
	scoreExact            = 100
	scorePrefix           = 80
	scoreSubstring        = 50
	scoreSynonymSubstring = 40
	minContainmentRunes   = 4
	maxCandidates         = 5
)

// Candidate is a ranked alternative offered for disambiguation.
type Candidate struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Match is the result of resolving a phrase. Record is nil when nothing in the
// catalog matched well enough; Confidence is 0 then and Candidates is empty.
type Match struct {
	Phrase     string       `json:"phrase"`
	Record     *Record      `json:"record"`
	Confidence float64      `json:"confidence"`
	Method     Method       `json:"method"`
	Surface    surface.Type `json:"surface,omitempty"`
	Candidates []Candidate  `json:"candidates"`
}

// Found reports whether the match carries a catalog record.
func (m Match) Found() bool {
	return m.Record != nil
}

// Mapper resolves task phrases to catalog records. It only ever returns
// records taken from its index.
type Mapper struct {
	index *Index
}

// NewMapper creates a mapper over ix.
func NewMapper(ix *Index) *Mapper {
	return &Mapper{index: ix}
}

// Index returns the catalog the mapper resolves against.
func (m *Mapper) Index() *Index {
	return m.index
}

// Resolve maps phrase to at most one catalog record. Stages run in order and
// the first hit wins: exact name or synonym, fuzzy within the surface named in
// the phrase, fuzzy over the whole catalog.
func (m *Mapper) Resolve(phrase string) Match {
	p := Normalize(phrase)
	detected := surface.Detect(p)
	none := Match{Phrase: phrase, Method: MethodNone, Surface: detected, Candidates: []Candidate{}}
	if p == "" || m.index == nil {
		return none
	}

	if positions := m.index.byPhrase[p]; len(positions) > 0 {
		best := positions[0]
		for _, i := range positions {
			if detected != surface.Unknown && m.index.records[i].Surface == detected {
				best = i
				break
			}
		}
		ranked := make([]scored, 0, len(positions))
		for _, i := range positions {
			ranked = append(ranked, scored{pos: i, score: scoreExact})
		}
		return m.guard(none, best, ConfidenceExact, MethodExact, ranked)
	}

	if detected != surface.Unknown {
		if ranked := m.rank(p, m.index.bySurface[detected]); len(ranked) > 0 {
			return m.guard(none, ranked[0].pos, ConfidenceSurfaceFuzzy, MethodSurfaceFuzzy, ranked)
		}
	}

	all := make([]int, len(m.index.records))
	for i := range all {
		all[i] = i
	}
	if ranked := m.rank(p, all); len(ranked) > 0 {
		return m.guard(none, ranked[0].pos, ConfidenceFuzzy, MethodFuzzy, ranked)
	}
	return none
}

type scored struct {
	pos   int
	score int
	gap   int
}

// guard builds the match for the record at pos, re-checking that the record
// still resolves by id in the index. Anything else degrades to no match.
func (m *Mapper) guard(none Match, pos int, confidence float64, method Method, ranked []scored) Match {
	if pos < 0 || pos >= len(m.index.records) {
		return none
	}
	rec := m.index.records[pos]
	if at, ok := m.index.byID[strings.ToLower(strings.TrimSpace(rec.ID))]; !ok || at != pos {
		return none
	}

	candidates := make([]Candidate, 0, min(len(ranked), maxCandidates))
	for _, s := range ranked {
		if len(candidates) == maxCandidates {
			break
		}
		r := m.index.records[s.pos]
		candidates = append(candidates, Candidate{ID: r.ID, Name: r.Name, Score: s.score})
	}

	return Match{
		Phrase:     none.Phrase,
		Record:     &rec,
		Confidence: confidence,
		Method:     method,
		Surface:    none.Surface,
		Candidates: candidates,
	}
}

// rank scores the records at positions against p and returns the hits best
// first. Equal scores prefer the record whose name or synonym is closest in
// length to p, then catalog order.
func (m *Mapper) rank(p string, positions []int) []scored {
	var hits []scored
	for _, i := range positions {
		r := m.index.records[i]
		if s := score(p, r); s > 0 {
			hits = append(hits, scored{pos: i, score: s, gap: lengthGap(p, r)})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].score != hits[b].score {
			return hits[a].score > hits[b].score
		}
		return hits[a].gap < hits[b].gap
	})
	return hits
}

// lengthGap is the smallest rune length difference between p and the name or
// any synonym of r.
func lengthGap(p string, r Record) int {
	n := utf8.RuneCountInString(p)
	gap := abs(n - utf8.RuneCountInString(Normalize(r.Name)))
	for _, syn := range r.SynonymList() {
		gap = min(gap, abs(n-utf8.RuneCountInString(syn)))
	}
	return gap
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// score rates how well phrase p matches r by name (exact, prefix, substring)
// or by synonym substring. Containment needs at least four letters on the
// shorter side so words like "tak" do not pull in every compound.
func score(p string, r Record) int {
	name := Normalize(r.Name)
	id := strings.ToLower(strings.TrimSpace(r.ID))
	switch {
	case p == name || p == id:
		return scoreExact
	case name != "" && (strings.HasPrefix(name, p) || strings.HasPrefix(p, name)) && shortestRunes(p, name) >= minContainmentRunes:
		return scorePrefix
	case name != "" && contains(p, name):
		return scoreSubstring
	}
	for _, syn := range r.SynonymList() {
		if contains(p, syn) {
			return scoreSynonymSubstring
		}
	}
	return 0
}

func contains(a, b string) bool {
	if shortestRunes(a, b) < minContainmentRunes {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func shortestRunes(a, b string) int {
	return min(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
}
