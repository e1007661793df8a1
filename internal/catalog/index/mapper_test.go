package index

import (
	"testing"

	"painting_estimator_backend/internal/shared/surface"
)

func TestResolveExactSynonymOfEveryRecord(t *testing.T) {
	ix := mustIndex(t)
	mapper := NewMapper(ix)

	for _, rec := range ix.Records() {
		phrases := append([]string{rec.Name}, rec.SynonymList()...)
		for _, phrase := range phrases {
			m := mapper.Resolve(phrase)
			if !m.Found() || m.Record.ID != rec.ID {
				t.Fatalf("expected %q to resolve to %s, got %+v", phrase, rec.ID, m.Record)
			}
			if m.Confidence != ConfidenceExact || m.Method != MethodExact {
				t.Fatalf("expected exact confidence for %q, got %v (%s)", phrase, m.Confidence, m.Method)
			}
		}
	}
}

func TestResolveNoMatchReturnsNothing(t *testing.T) {
	mapper := NewMapper(mustIndex(t))

	for _, phrase := range []string{"byta elementet", "", "   ", "sätta upp hyllor"} {
		m := mapper.Resolve(phrase)
		if m.Record != nil {
			t.Fatalf("expected no record for %q, got %s", phrase, m.Record.ID)
		}
		if m.Confidence != 0 || m.Method != MethodNone {
			t.Fatalf("expected zero confidence for %q, got %v (%s)", phrase, m.Confidence, m.Method)
		}
		if m.Candidates == nil || len(m.Candidates) != 0 {
			t.Fatalf("expected empty candidate list for %q, got %v", phrase, m.Candidates)
		}
	}
}

func TestResolveSurfaceFilteredFuzzy(t *testing.T) {
	mapper := NewMapper(mustIndex(t))

	m := mapper.Resolve("måla väggarna i hallen")
	if !m.Found() || m.Record.ID != "MALA-VAGG" {
		t.Fatalf("expected MALA-VAGG, got %+v", m.Record)
	}
	if m.Confidence != ConfidenceSurfaceFuzzy || m.Method != MethodSurfaceFuzzy {
		t.Fatalf("expected surface-filtered confidence, got %v (%s)", m.Confidence, m.Method)
	}
}

func TestResolveUnfilteredFuzzy(t *testing.T) {
	mapper := NewMapper(mustIndex(t))

	m := mapper.Resolve("måla")
	if !m.Found() {
		t.Fatal("expected a fuzzy match for a bare action")
	}
	if m.Confidence != ConfidenceFuzzy || m.Method != MethodFuzzy {
		t.Fatalf("expected unfiltered confidence, got %v (%s)", m.Confidence, m.Method)
	}
	if m.Record.ID != "MALA-TAK" {
		t.Fatalf("expected the prefix hit closest in length, got %s", m.Record.ID)
	}
	// four name prefixes at 80, then "grundmåla tak" by substring at 50
	if len(m.Candidates) != 5 {
		t.Fatalf("expected 5 candidates, got %d", len(m.Candidates))
	}
	if m.Candidates[0].Score != scorePrefix || m.Candidates[4].Score != scoreSubstring || m.Candidates[4].ID != "GRUND-TAK" {
		t.Fatalf("unexpected candidate ranking: %+v", m.Candidates)
	}
}

func TestResolveTieBreaksOnLength(t *testing.T) {
	ix, err := NewIndex([]Record{
		{ID: "GRUND-VAGG", Name: "Grundmåla väggar", Unit: UnitArea, Surface: surface.Wall, Synonyms: "grundmåla väggar; grundmålning väggar"},
		{ID: "MALA-FASAD-VAGG", Name: "Måla väggar utvändigt", Unit: UnitArea, Surface: surface.Wall, Synonyms: "måla väggar utvändigt"},
		{ID: "MALA-VAGG", Name: "Måla väggar", Unit: UnitArea, Surface: surface.Wall, Synonyms: "måla väggar; väggmålning"},
		{ID: "MALA-TAK", Name: "Måla tak", Unit: UnitArea, Surface: surface.Ceiling, Synonyms: "måla tak"},
		{ID: "GRUND-TAK", Name: "Grundmåla tak", Unit: UnitArea, Surface: surface.Ceiling, Synonyms: "grundmåla tak"},
	})
	if err != nil {
		t.Fatalf("expected index to build, got %v", err)
	}
	mapper := NewMapper(ix)

	tests := []struct {
		phrase string
		want   string
	}{
		{"måla", "MALA-TAK"},
		{"måla väg", "MALA-VAGG"},
		{"grundmåla", "GRUND-TAK"},
		{"målning", "MALA-VAGG"},
	}
	for _, tc := range tests {
		t.Run(tc.phrase, func(t *testing.T) {
			m := mapper.Resolve(tc.phrase)
			if !m.Found() || m.Record.ID != tc.want {
				t.Fatalf("expected %s, got %+v", tc.want, m.Record)
			}
		})
	}
}

func TestResolveNeverReturnsForeignIDs(t *testing.T) {
	ix := mustIndex(t)
	mapper := NewMapper(ix)

	phrases := []string{
		"måla väggar", "måla taket två lager", "spackla", "lack", "golv",
		"grundmåla", "slipa golvet", "måla om allt", "tak", "väggmålning i köket",
	}
	for _, phrase := range phrases {
		m := mapper.Resolve(phrase)
		if m.Record != nil && !ix.Contains(m.Record.ID) {
			t.Fatalf("mapper returned unknown id %q for %q", m.Record.ID, phrase)
		}
		for _, c := range m.Candidates {
			if !ix.Contains(c.ID) {
				t.Fatalf("candidate %q for %q is not in the catalog", c.ID, phrase)
			}
		}
		if len(m.Candidates) > maxCandidates {
			t.Fatalf("expected at most %d candidates, got %d", maxCandidates, len(m.Candidates))
		}
	}
}

func TestResolveOnEmptyIndex(t *testing.T) {
	ix, err := NewIndex(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m := NewMapper(ix).Resolve("måla väggar"); m.Found() {
		t.Fatal("expected no match on an empty catalog")
	}
}
