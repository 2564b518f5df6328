package tui

import (
	"fmt"

	"github.com/sadopc/estudai/internal/plan"
)

// viewState represents the currently active view.
type viewState int

const (
	viewGenerate viewState = iota
	viewPlans
	viewCalendar
	viewStats
)

var viewNames = []string{"Gerar", "Planos", "Calendário", "Estatísticas"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// planGeneratedMsg delivers a finished generation. seq identifies which
// request produced it so a superseded in-flight generation can be dropped.
type planGeneratedMsg struct {
	seq       int
	generated plan.Generated
}

type planSavedMsg struct {
	plan plan.StudyPlan
}

type planDeletedMsg struct{}

type plansDataMsg struct {
	plans []plan.StudyPlan
}

type exportDoneMsg struct {
	path string
}

// storeChangedMsg signals that the store mutated and the data views need
// fresh plans.
type storeChangedMsg struct{}

// --- Helpers ---

func formatMinutes(mins int) string {
	if mins >= 60 {
		return fmt.Sprintf("%dh%02d", mins/60, mins%60)
	}
	return fmt.Sprintf("%d min", mins)
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
