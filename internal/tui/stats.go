package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/estudai/internal/plan"
	"github.com/sadopc/estudai/internal/store"
)

// statsWindowDays is how many upcoming days the workload chart covers.
const statsWindowDays = 14

type statsModel struct {
	store  *store.Store
	width  int
	height int

	plans  []plan.StudyPlan
	offset int // weeks ahead of today (0 = current window)

	chart barchart.Model

	now func() time.Time
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 12),
		now:   time.Now,
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return plansDataMsg{plans: s.store.Plans()}
	}
}

func (s statsModel) dateRange() (time.Time, time.Time) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start = start.AddDate(0, 0, 7*s.offset)
	return start, start.AddDate(0, 0, statsWindowDays)
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case plansDataMsg:
		s.plans = msg.plans
		s.buildChart()
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if s.offset > 0 {
				s.offset--
				s.buildChart()
			}
		case key.Matches(msg, keys.Right):
			s.offset++
			s.buildChart()
		}
	}
	return s, nil
}

// typeMinutes splits one day's scheduled minutes per task type, parsed
// from each task's duration label.
func typeMinutes(plans []plan.StudyPlan, date string) map[plan.TaskType]float64 {
	out := make(map[plan.TaskType]float64)
	for _, task := range plan.Day(plans, date).Tasks {
		out[task.Type] += float64(durationMinutes(task.Duration))
	}
	return out
}

func durationMinutes(label string) int {
	n := 0
	for i := 0; i < len(label) && label[i] >= '0' && label[i] <= '9'; i++ {
		n = n*10 + int(label[i]-'0')
	}
	return n
}

func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if s.height > 30 {
		chartHeight = 16
	}

	s.chart = barchart.New(chartWidth, chartHeight)

	from, to := s.dateRange()

	taskTypes := []plan.TaskType{plan.TaskResumo, plan.TaskExercicio, plan.TaskRevisao, plan.TaskLeitura}

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		date := plan.ISODate(d)
		label := fmt.Sprintf("%02d", d.Day())

		perType := typeMinutes(s.plans, date)
		var values []barchart.BarValue
		for _, t := range taskTypes {
			mins := perType[t]
			if mins == 0 {
				continue
			}
			values = append(values, barchart.BarValue{
				Name:  t.Label(),
				Value: mins,
				Style: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color())),
			})
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsModel) view() string {
	w := s.width - 4

	from, to := s.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		from.Format("02/01"), to.AddDate(0, 0, -1).Format("02/01/2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Carga de Estudo"), "  ", dateLabel,
	)

	if len(s.plans) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("Sem planos salvos — nada para mostrar."),
		)
		return panelStyle.Width(w).Render(content)
	}

	chartView := s.chart.View()
	legend := s.renderLegend()
	tableView := s.renderTable(w)
	nav := mutedStyle.Render("  ←/→: semana")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", legend, "", tableView, "", nav,
		),
	)
}

func (s statsModel) renderLegend() string {
	taskTypes := []plan.TaskType{plan.TaskResumo, plan.TaskExercicio, plan.TaskRevisao, plan.TaskLeitura}
	var items []string
	for _, t := range taskTypes {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color())).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, t.Label()))
	}
	return "  " + strings.Join(items, "  ")
}

func (s statsModel) renderTable(w int) string {
	from, to := s.dateRange()

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-14s %8s %8s %6s", "Dia", "Tarefas", "Minutos", "Prova"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 40))))

	busy := 0
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		sum := plan.Day(s.plans, plan.ISODate(d))
		if sum.Empty() {
			continue
		}
		busy++
		exam := ""
		if sum.Exam {
			exam = errorStyle.Render("sim")
		}
		rows = append(rows, fmt.Sprintf("  %-14s %8d %8d %6s",
			d.Format("Mon 02/01"), len(sum.Tasks), sum.TotalMinutes, exam))
	}

	if busy == 0 {
		return mutedStyle.Render("  Nenhuma tarefa agendada neste período")
	}
	return strings.Join(rows, "\n")
}
