package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/estudai/internal/export"
	"github.com/sadopc/estudai/internal/plan"
	"github.com/sadopc/estudai/internal/store"
)

var weekDaysPT = []string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

var monthsShortPT = []string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

type calendarModel struct {
	store  *store.Store
	width  int
	height int

	plans []plan.StudyPlan
	year  int
	month time.Month

	// cursor indexes into selectable() — the month's non-empty days.
	cursor int

	detail *plan.DaySummary

	now func() time.Time
}

func newCalendarModel(s *store.Store) calendarModel {
	now := time.Now()
	return calendarModel{
		store: s,
		year:  now.Year(),
		month: now.Month(),
		now:   time.Now,
	}
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c calendarModel) detailOpen() bool {
	return c.detail != nil
}

func (c calendarModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return plansDataMsg{plans: c.store.Plans()}
	}
}

// daySummary aggregates one day of the displayed month across all plans.
func (c calendarModel) daySummary(day int) plan.DaySummary {
	date := plan.ISODate(time.Date(c.year, c.month, day, 0, 0, 0, 0, time.UTC))
	return plan.Day(c.plans, date)
}

// selectable lists the days of the month that have tasks or an exam.
// Empty days cannot be selected.
func (c calendarModel) selectable() []int {
	var days []int
	for day := 1; day <= daysInMonth(c.year, c.month); day++ {
		if !c.daySummary(day).Empty() {
			days = append(days, day)
		}
	}
	return days
}

func (c calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case plansDataMsg:
		c.plans = msg.plans
		if c.cursor >= len(c.selectable()) {
			c.cursor = max(0, len(c.selectable())-1)
		}
		return c, nil

	case tea.KeyMsg:
		if c.detail != nil {
			if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Enter) {
				c.detail = nil
			}
			return c, nil
		}

		switch {
		case key.Matches(msg, keys.Left):
			c.month--
			if c.month < time.January {
				c.month = time.December
				c.year--
			}
			c.cursor = 0
		case key.Matches(msg, keys.Right):
			c.month++
			if c.month > time.December {
				c.month = time.January
				c.year++
			}
			c.cursor = 0
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < len(c.selectable())-1 {
				c.cursor++
			}
		case key.Matches(msg, keys.Enter):
			days := c.selectable()
			if c.cursor < len(days) {
				sum := c.daySummary(days[c.cursor])
				c.detail = &sum
			}
		}
	}
	return c, nil
}

func (c calendarModel) view() string {
	w := c.width - 4

	if c.detail != nil {
		return c.renderDetail(w)
	}

	header := titleStyle.Render("Calendário") + "  " +
		highlightStyle.Render(fmt.Sprintf("%s de %d", monthsShortPT[c.month-1], c.year))

	if len(c.plans) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("Calendário vazio. Crie um plano de estudo para ver suas tarefas e provas."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")
	rows = append(rows, c.renderGrid())
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ● com tarefas   ")+errorStyle.Render("● dia da prova"))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ←/→: mês  ↑/↓: dia  enter: detalhes"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (c calendarModel) renderGrid() string {
	var header []string
	for _, wd := range weekDaysPT {
		header = append(header, mutedStyle.Width(6).Align(lipgloss.Center).Render(wd))
	}

	today := plan.ISODate(c.now())
	selected := -1
	if days := c.selectable(); c.cursor < len(days) {
		selected = days[c.cursor]
	}

	var lines []string
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	firstWeekday := int(time.Date(c.year, c.month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	total := daysInMonth(c.year, c.month)

	cells := make([]string, 0, 7)
	for i := 0; i < firstWeekday; i++ {
		cells = append(cells, calendarDayStyle.Render(""))
	}

	for day := 1; day <= total; day++ {
		sum := c.daySummary(day)
		date := plan.ISODate(time.Date(c.year, c.month, day, 0, 0, 0, 0, time.UTC))

		label := fmt.Sprintf("%d", day)
		if date == today {
			label = "[" + label + "]"
		}

		style := calendarDayStyle
		switch {
		case day == selected:
			style = calendarCursorStyle
		case sum.Exam:
			style = calendarExamDayStyle
		case len(sum.Tasks) > 0:
			style = calendarTaskDayStyle
		case sum.Empty():
			style = calendarDayStyle.Foreground(colorSubtle)
		}
		cells = append(cells, style.Render(label))

		if len(cells) == 7 {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = cells[:0]
		}
	}
	if len(cells) > 0 {
		for len(cells) < 7 {
			cells = append(cells, calendarDayStyle.Render(""))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return strings.Join(lines, "\n")
}

func (c calendarModel) renderDetail(w int) string {
	sum := *c.detail

	var rows []string
	rows = append(rows, titleStyle.Render(export.LongDate(sum.Date)))
	rows = append(rows, "")

	if sum.Exam {
		rows = append(rows, errorStyle.Render("Prova: "+strings.Join(sum.ExamSubjects, ", ")))
		rows = append(rows, "")
	}

	rows = append(rows, mutedStyle.Render("Tempo total: "+formatMinutes(sum.TotalMinutes)))
	rows = append(rows, "")

	if len(sum.Tasks) == 0 {
		rows = append(rows, mutedStyle.Render("  Sem tarefas neste dia."))
	}
	for _, task := range sum.Tasks {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(task.Type.Color())).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %s (%s)", dot, task.Title, task.Duration))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  esc: voltar"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
