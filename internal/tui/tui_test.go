package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/estudai/internal/plan"
	"github.com/sadopc/estudai/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var testToday = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func savedPlan(t *testing.T, s *store.Store, id, subject, examDate, createdAt string) plan.StudyPlan {
	t.Helper()
	req := plan.Request{
		Subject:   subject,
		ExamDate:  examDate,
		DailyTime: 60,
		Level:     plan.LevelIntermediario,
	}
	p := plan.Promote(plan.Generate(req, testToday), id, testToday)
	p.CreatedAt = createdAt
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}
	return p
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// ============================================================
// Root app
// ============================================================

func TestAppDeliversGenerationToInactiveView(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s)
	a.generate.state = generateStateWorking
	a.generate.formActive = false
	a.generate.genSeq = 1
	a.activeView = viewPlans

	gen := plan.Generate(plan.Request{Subject: "Física", ExamDate: "2026-03-12", DailyTime: 60}, testToday)
	model, _ := a.Update(planGeneratedMsg{seq: 1, generated: gen})
	a = model.(App)

	if a.generate.state != generateStateReview {
		t.Fatal("generation finished on another tab must still reach the review pane")
	}
	if a.generate.generated.Subject != "Física" {
		t.Fatalf("wrong plan delivered: %q", a.generate.generated.Subject)
	}
}

func TestAppPlanDataReachesAllViews(t *testing.T) {
	s := newTestStore(t)
	savedPlan(t, s, "a", "Cálculo", "2026-03-12", "2026-03-01T10:00:00Z")

	a := NewApp(s)
	model, _ := a.Update(plansDataMsg{plans: s.Plans()})
	a = model.(App)

	if len(a.plans.plans) != 1 {
		t.Fatal("plans view not refreshed")
	}
	if len(a.calendar.plans) != 1 {
		t.Fatal("calendar view not refreshed")
	}
	if len(a.stats.plans) != 1 {
		t.Fatal("stats view not refreshed")
	}
}

func TestAppSubscriptionSignalsStoreChange(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s)

	// Mutating the store queues exactly one pending notification.
	savedPlan(t, s, "a", "Cálculo", "2026-03-12", "2026-03-01T10:00:00Z")
	if msg := a.waitForChange()(); msg != (storeChangedMsg{}) {
		t.Fatalf("unexpected message: %#v", msg)
	}

	model, cmd := a.Update(storeChangedMsg{})
	a = model.(App)
	if cmd == nil {
		t.Fatal("store change must trigger a refresh")
	}
}

// ============================================================
// Generate view
// ============================================================

func TestGenerateLastWriteWins(t *testing.T) {
	s := newTestStore(t)
	g := newGenerateModel(s)
	g.state = generateStateWorking
	g.formActive = false
	g.genSeq = 2

	stale := plan.Generate(plan.Request{Subject: "Antigo", ExamDate: "2026-03-05", DailyTime: 30}, testToday)
	g, _ = g.update(planGeneratedMsg{seq: 1, generated: stale})
	if g.state != generateStateWorking {
		t.Fatal("stale result must not leave the working state")
	}

	fresh := plan.Generate(plan.Request{Subject: "Novo", ExamDate: "2026-03-05", DailyTime: 30}, testToday)
	g, _ = g.update(planGeneratedMsg{seq: 2, generated: fresh})
	if g.state != generateStateReview {
		t.Fatal("current result should open the review")
	}
	if g.generated.Subject != "Novo" {
		t.Fatalf("displayed plan is not the latest: %q", g.generated.Subject)
	}
}

func TestGenerateRegenerateSupersedes(t *testing.T) {
	s := newTestStore(t)
	g := newGenerateModel(s)
	g.state = generateStateReview
	g.formActive = false
	g.lastReq = plan.Request{Subject: "Cálculo", ExamDate: "2026-03-12", DailyTime: 60, Level: plan.LevelIniciante}
	g.delay = 0
	seqBefore := g.genSeq

	g, cmd := g.update(keyRune('r'))
	if g.state != generateStateWorking {
		t.Fatal("regenerate should re-enter the working state")
	}
	if g.genSeq != seqBefore+1 {
		t.Fatalf("regenerate must bump the sequence: %d -> %d", seqBefore, g.genSeq)
	}
	if cmd == nil {
		t.Fatal("regenerate must issue a generation command")
	}
}

func TestGenerateSavePromotesPlan(t *testing.T) {
	s := newTestStore(t)
	g := newGenerateModel(s)
	g.state = generateStateReview
	g.formActive = false
	g.generated = plan.Generate(plan.Request{
		Subject: "Química Orgânica", ExamDate: "2026-03-12", DailyTime: 60, Level: plan.LevelAvancado,
	}, testToday)

	g, _ = g.update(keyRune('s'))

	plans := s.Plans()
	if len(plans) != 1 {
		t.Fatalf("expected 1 saved plan, got %d", len(plans))
	}
	p := plans[0]
	if p.ID == "" {
		t.Fatal("saved plan must have an id")
	}
	if p.CreatedAt == "" {
		t.Fatal("saved plan must have a creation timestamp")
	}
	if len(p.Tags) != 1 || p.Tags[0] != "Química" {
		t.Fatalf("tags not derived from subject: %v", p.Tags)
	}
	if g.state != generateStateForm {
		t.Fatal("saving should return to a fresh form")
	}
}

func TestGenerateDiscardReturnsToForm(t *testing.T) {
	s := newTestStore(t)
	g := newGenerateModel(s)
	g.state = generateStateReview
	g.formActive = false

	g, _ = g.update(tea.KeyMsg{Type: tea.KeyEsc})
	if g.state != generateStateForm || !g.formActive {
		t.Fatal("esc should discard the review and rebuild the form")
	}
	if len(s.Plans()) != 0 {
		t.Fatal("discard must not save anything")
	}
}

func TestRequestFromFormClampsDailyTime(t *testing.T) {
	s := newTestStore(t)
	g := newGenerateModel(s)

	*g.formSubject = "Física"
	*g.formExamDate = "2026-03-12"

	*g.formDailyTime = "5"
	if got := g.requestFromForm().DailyTime; got != 15 {
		t.Fatalf("expected clamp to 15, got %d", got)
	}

	*g.formDailyTime = "9999"
	if got := g.requestFromForm().DailyTime; got != 480 {
		t.Fatalf("expected clamp to 480, got %d", got)
	}

	*g.formDailyTime = "abc"
	if got := g.requestFromForm().DailyTime; got != 60 {
		t.Fatalf("expected fallback to 60, got %d", got)
	}
}

// ============================================================
// Plans view
// ============================================================

func TestPlansVisibleFilterAndSort(t *testing.T) {
	s := newTestStore(t)
	savedPlan(t, s, "a", "Cálculo", "2026-03-20", "2026-03-01T10:00:00Z")
	savedPlan(t, s, "b", "História", "2026-03-10", "2026-03-02T10:00:00Z")

	p := newPlansModel(s)
	p, _ = p.update(plansDataMsg{plans: s.Plans()})

	visible := p.visible()
	if len(visible) != 2 || visible[0].ID != "b" {
		t.Fatalf("default sort should be recent-first, got %v", idsOf(visible))
	}

	p.sortMode = plan.SortExam
	visible = p.visible()
	if visible[0].ID != "b" || visible[1].ID != "a" {
		t.Fatalf("exam sort wrong: %v", idsOf(visible))
	}

	p.query = "cálculo"
	visible = p.visible()
	if len(visible) != 1 || visible[0].ID != "a" {
		t.Fatalf("filter wrong: %v", idsOf(visible))
	}
}

func TestPlansSearchCapturesInput(t *testing.T) {
	s := newTestStore(t)
	savedPlan(t, s, "a", "Cálculo", "2026-03-20", "2026-03-01T10:00:00Z")

	p := newPlansModel(s)
	p, _ = p.update(plansDataMsg{plans: s.Plans()})

	p, _ = p.update(keyRune('/'))
	if !p.capturesInput() {
		t.Fatal("search mode should capture input")
	}

	p, _ = p.update(keyRune('x'))
	if p.query != "x" {
		t.Fatalf("typed rune not reflected in query: %q", p.query)
	}

	p, _ = p.update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.searching {
		t.Fatal("esc should leave search mode")
	}
	if p.query != "x" {
		t.Fatal("leaving search mode should keep the query")
	}
}

func TestPlansDeleteRequiresConfirmation(t *testing.T) {
	s := newTestStore(t)
	savedPlan(t, s, "a", "Cálculo", "2026-03-20", "2026-03-01T10:00:00Z")

	p := newPlansModel(s)
	p, _ = p.update(plansDataMsg{plans: s.Plans()})

	p, _ = p.update(keyRune('d'))
	if !p.confirmingDelete {
		t.Fatal("delete should ask for confirmation")
	}

	// Anything but yes cancels.
	p, _ = p.update(keyRune('n'))
	if p.confirmingDelete {
		t.Fatal("n should cancel")
	}
	if len(s.Plans()) != 1 {
		t.Fatal("cancelled delete removed the plan")
	}

	p, _ = p.update(keyRune('d'))
	p, cmd := p.update(keyRune('s'))
	if cmd == nil {
		t.Fatal("confirmed delete should emit a message")
	}
	if len(s.Plans()) != 0 {
		t.Fatal("confirmed delete did not remove the plan")
	}
}

func TestPlansViewerToggleTask(t *testing.T) {
	s := newTestStore(t)
	saved := savedPlan(t, s, "a", "Cálculo", "2026-03-20", "2026-03-01T10:00:00Z")

	p := newPlansModel(s)
	p, _ = p.update(plansDataMsg{plans: s.Plans()})
	p, _ = p.update(tea.KeyMsg{Type: tea.KeyEnter})
	if !p.viewing || p.viewed.ID != saved.ID {
		t.Fatal("enter should open the viewer")
	}

	p, _ = p.update(tea.KeyMsg{Type: tea.KeySpace})
	got, _ := s.Get("a")
	if !got.Schedule[0].Tasks[0].Completed {
		t.Fatal("space should mark the selected task completed")
	}
}

// ============================================================
// Calendar view
// ============================================================

func TestCalendarSelectableSkipsEmptyDays(t *testing.T) {
	s := newTestStore(t)
	// 10 days of schedule starting 2026-03-02, exam on 2026-03-12.
	savedPlan(t, s, "a", "Cálculo", "2026-03-12", "2026-03-01T10:00:00Z")

	c := newCalendarModel(s)
	c.year, c.month = 2026, time.March
	c, _ = c.update(plansDataMsg{plans: s.Plans()})

	days := c.selectable()
	// Days 2–11 have tasks; day 12 is the exam.
	if len(days) != 11 {
		t.Fatalf("expected 11 selectable days, got %d (%v)", len(days), days)
	}
	if days[0] != 2 || days[len(days)-1] != 12 {
		t.Fatalf("unexpected selectable range: %v", days)
	}
}

func TestCalendarEnterOpensDetail(t *testing.T) {
	s := newTestStore(t)
	savedPlan(t, s, "a", "Cálculo", "2026-03-12", "2026-03-01T10:00:00Z")

	c := newCalendarModel(s)
	c.year, c.month = 2026, time.March
	c, _ = c.update(plansDataMsg{plans: s.Plans()})

	c, _ = c.update(tea.KeyMsg{Type: tea.KeyEnter})
	if c.detail == nil {
		t.Fatal("enter on a non-empty day should open the detail")
	}
	if c.detail.Date != "2026-03-02" {
		t.Fatalf("unexpected detail date: %s", c.detail.Date)
	}

	c, _ = c.update(tea.KeyMsg{Type: tea.KeyEsc})
	if c.detail != nil {
		t.Fatal("esc should close the detail")
	}
}

func TestCalendarEnterOnEmptyMonthIsNoop(t *testing.T) {
	s := newTestStore(t)

	c := newCalendarModel(s)
	c.year, c.month = 2026, time.March
	c, _ = c.update(plansDataMsg{plans: s.Plans()})

	c, _ = c.update(tea.KeyMsg{Type: tea.KeyEnter})
	if c.detail != nil {
		t.Fatal("empty days are not selectable")
	}
}

func TestCalendarMonthNavigation(t *testing.T) {
	s := newTestStore(t)
	c := newCalendarModel(s)
	c.year, c.month = 2026, time.January

	c, _ = c.update(tea.KeyMsg{Type: tea.KeyLeft})
	if c.year != 2025 || c.month != time.December {
		t.Fatalf("expected Dec 2025, got %s %d", c.month, c.year)
	}

	c, _ = c.update(tea.KeyMsg{Type: tea.KeyRight})
	if c.year != 2026 || c.month != time.January {
		t.Fatalf("expected Jan 2026, got %s %d", c.month, c.year)
	}
}

// ============================================================
// Stats view
// ============================================================

func TestStatsTypeMinutes(t *testing.T) {
	s := newTestStore(t)
	savedPlan(t, s, "a", "Cálculo", "2026-03-12", "2026-03-01T10:00:00Z")

	// 60 min/day split into 2 tasks of 30: day 0 is resumo + exercicio.
	got := typeMinutes(s.Plans(), "2026-03-02")
	if got[plan.TaskResumo] != 30 || got[plan.TaskExercicio] != 30 {
		t.Fatalf("unexpected split: %v", got)
	}
}

func TestStatsWindowNavigation(t *testing.T) {
	s := newTestStore(t)
	m := newStatsModel(s)
	m.now = func() time.Time { return testToday }

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.offset != 0 {
		t.Fatal("cannot navigate before the current window")
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyRight})
	if m.offset != 1 {
		t.Fatalf("expected offset 1, got %d", m.offset)
	}

	from, to := m.dateRange()
	if !from.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected window start: %s", from)
	}
	if days := int(to.Sub(from).Hours() / 24); days != statsWindowDays {
		t.Fatalf("expected %d-day window, got %d", statsWindowDays, days)
	}
}

func idsOf(plans []plan.StudyPlan) []string {
	out := make([]string, len(plans))
	for i, p := range plans {
		out[i] = p.ID
	}
	return out
}
