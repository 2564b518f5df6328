package plan

import (
	"sort"
	"strings"
	"time"
)

// SortMode selects how a plan listing is ordered.
type SortMode int

const (
	// SortRecent orders by creation time, newest first.
	SortRecent SortMode = iota
	// SortExam orders by exam date, soonest first.
	SortExam
)

// Label returns the display name for the sort mode.
func (m SortMode) Label() string {
	switch m {
	case SortRecent:
		return "Mais recentes"
	case SortExam:
		return "Próxima prova"
	}
	return "?"
}

// Filter returns the plans whose title, subject or any tag contains the
// query, case-insensitively. An empty query matches everything.
func Filter(plans []StudyPlan, query string) []StudyPlan {
	q := strings.ToLower(query)

	var out []StudyPlan
	for _, p := range plans {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Subject), q) ||
			anyTagContains(p.Tags, q) {
			out = append(out, p)
		}
	}
	return out
}

func anyTagContains(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// Sort returns a sorted copy of plans. The sort is stable, so plans with
// equal keys keep their input order. Timestamps that fail to parse sort as
// the zero time.
func Sort(plans []StudyPlan, mode SortMode) []StudyPlan {
	out := make([]StudyPlan, len(plans))
	copy(out, plans)

	switch mode {
	case SortExam:
		sort.SliceStable(out, func(i, j int) bool {
			return parseDate(out[i].ExamDate).Before(parseDate(out[j].ExamDate))
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return parseStamp(out[j].CreatedAt).Before(parseStamp(out[i].CreatedAt))
		})
	}
	return out
}

func parseDate(s string) time.Time {
	t, _ := time.Parse(isoDate, s)
	return t
}

func parseStamp(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
