package risk

import (
	"testing"

	"paradecast/internal/models"
)

func TestResolveAlternativesExternalPassThrough(t *testing.T) {
	external := &models.PlanB{
		Provenance: "gpt-4o-mini",
		Alternatives: []models.Alternative{
			{Title: "A"}, {Title: "B"}, {Title: "C"}, {Title: "D"},
		},
	}
	got := ResolveAlternatives(models.ActivityHike, []models.Condition{models.ConditionHot}, external)
	if got.Provenance != "gpt-4o-mini" {
		t.Errorf("Provenance = %q, want collaborator label", got.Provenance)
	}
	if len(got.Alternatives) != 3 {
		t.Fatalf("len = %d, want truncation to 3", len(got.Alternatives))
	}
	if got.Alternatives[0].Title != "A" || got.Alternatives[2].Title != "C" {
		t.Errorf("alternatives reordered: %+v", got.Alternatives)
	}
}

func TestResolveAlternativesCatalog(t *testing.T) {
	got := ResolveAlternatives(models.ActivityHike, []models.Condition{models.ConditionHot}, nil)
	if got.Provenance != CatalogProvenance {
		t.Errorf("Provenance = %q, want %q", got.Provenance, CatalogProvenance)
	}
	if len(got.Alternatives) == 0 {
		t.Fatal("alternatives empty for covered (hike, hot)")
	}
	if len(got.Alternatives) > 3 {
		t.Errorf("len = %d, want at most 3", len(got.Alternatives))
	}
}

func TestResolveAlternativesConcatenatesAllConditions(t *testing.T) {
	// Both (hike, wet) and (hike, hot) have coverage; the pool concatenates
	// every requested condition, not just the triggering one.
	got := ResolveAlternatives(models.ActivityHike,
		[]models.Condition{models.ConditionWet, models.ConditionHot}, nil)
	if len(got.Alternatives) != 3 {
		t.Fatalf("len = %d, want 3 (2 wet entries + hot entries, capped)", len(got.Alternatives))
	}
	// wet entries come first because wet was requested first
	if got.Alternatives[0].Title != "Museum and covered arcade walk" {
		t.Errorf("first alternative = %q, want wet catalog entry first", got.Alternatives[0].Title)
	}
}

func TestResolveAlternativesGeneralFallback(t *testing.T) {
	// (surf, hot) and (surf, uv) have no catalog entries.
	got := ResolveAlternatives(models.ActivitySurf,
		[]models.Condition{models.ConditionHot, models.ConditionUV}, nil)
	if got.Provenance != GeneralProvenance {
		t.Errorf("Provenance = %q, want %q", got.Provenance, GeneralProvenance)
	}
	if len(got.Alternatives) != 3 {
		t.Errorf("len = %d, want the fixed 3-entry general list", len(got.Alternatives))
	}
}

func TestDedupeTruncate(t *testing.T) {
	in := []models.Alternative{
		{Title: "A", Description: "first"},
		{Title: "B"},
		{Title: "A", Description: "duplicate"},
		{Title: "C"},
		{Title: "D"},
	}
	out := dedupeTruncate(in)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if out[0].Description != "first" {
		t.Error("first occurrence of duplicate title should win")
	}
	if out[0].Title != "A" || out[1].Title != "B" || out[2].Title != "C" {
		t.Errorf("titles = %q %q %q, want A B C", out[0].Title, out[1].Title, out[2].Title)
	}
}
