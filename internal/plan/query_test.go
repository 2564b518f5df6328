package plan

import (
	"testing"
)

func listingPlans() []StudyPlan {
	return []StudyPlan{
		{
			ID: "a", Title: "Plano de Estudo: Cálculo", Subject: "Cálculo Integral",
			Tags: []string{"Cálculo"}, CreatedAt: "2026-03-01T10:00:00Z", ExamDate: "2026-03-20",
		},
		{
			ID: "b", Title: "Plano de Estudo: História", Subject: "História do Brasil",
			Tags: []string{"História"}, CreatedAt: "2026-03-02T10:00:00Z", ExamDate: "2026-03-10",
		},
		{
			ID: "c", Title: "Plano de Estudo: Química", Subject: "Química Orgânica",
			Tags: []string{"Química"}, CreatedAt: "2026-03-02T10:00:00Z", ExamDate: "2026-03-15",
		},
	}
}

// ============================================================
// Filter
// ============================================================

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	got := Filter(listingPlans(), "")
	if len(got) != 3 {
		t.Fatalf("expected all 3 plans, got %d", len(got))
	}
}

func TestFilterByTitle(t *testing.T) {
	got := Filter(listingPlans(), "cálculo")
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected plan a, got %v", ids(got))
	}
}

func TestFilterBySubject(t *testing.T) {
	got := Filter(listingPlans(), "brasil")
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("expected plan b, got %v", ids(got))
	}
}

func TestFilterByTagOnly(t *testing.T) {
	plans := listingPlans()
	// A tag that appears in neither title nor subject.
	plans[2].Tags = append(plans[2].Tags, "vestibular")

	got := Filter(plans, "VESTIBULAR")
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("expected plan c via tag match, got %v", ids(got))
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	got := Filter(listingPlans(), "QUÍMICA")
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("expected plan c, got %v", ids(got))
	}
}

func TestFilterNoMatch(t *testing.T) {
	got := Filter(listingPlans(), "geografia")
	if len(got) != 0 {
		t.Fatalf("expected no plans, got %v", ids(got))
	}
}

// ============================================================
// Sort
// ============================================================

func TestSortRecent(t *testing.T) {
	got := Sort(listingPlans(), SortRecent)
	// b and c share a createdAt; stable sort keeps b before c.
	want := []string{"b", "c", "a"}
	if !equalIDs(got, want) {
		t.Fatalf("expected order %v, got %v", want, ids(got))
	}
}

func TestSortRecentStableOnTies(t *testing.T) {
	plans := listingPlans()
	// Make all timestamps equal: output must keep input order.
	for i := range plans {
		plans[i].CreatedAt = "2026-03-01T10:00:00Z"
	}
	got := Sort(plans, SortRecent)
	if !equalIDs(got, []string{"a", "b", "c"}) {
		t.Fatalf("tie broke input order: %v", ids(got))
	}
}

func TestSortExam(t *testing.T) {
	got := Sort(listingPlans(), SortExam)
	want := []string{"b", "c", "a"}
	if !equalIDs(got, want) {
		t.Fatalf("expected order %v, got %v", want, ids(got))
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	plans := listingPlans()
	Sort(plans, SortExam)
	if !equalIDs(plans, []string{"a", "b", "c"}) {
		t.Fatalf("input mutated: %v", ids(plans))
	}
}

func TestSortInvalidTimestampsSortAsZero(t *testing.T) {
	plans := listingPlans()
	plans[0].CreatedAt = "garbage"
	got := Sort(plans, SortRecent)
	// The unparseable timestamp sinks to the end under recent-first.
	if got[len(got)-1].ID != "a" {
		t.Fatalf("expected a last, got %v", ids(got))
	}
}

func ids(plans []StudyPlan) []string {
	out := make([]string, len(plans))
	for i, p := range plans {
		out[i] = p.ID
	}
	return out
}

func equalIDs(plans []StudyPlan, want []string) bool {
	if len(plans) != len(want) {
		return false
	}
	for i, p := range plans {
		if p.ID != want[i] {
			return false
		}
	}
	return true
}
