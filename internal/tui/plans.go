package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/estudai/internal/export"
	"github.com/sadopc/estudai/internal/plan"
	"github.com/sadopc/estudai/internal/store"
)

type plansModel struct {
	store  *store.Store
	width  int
	height int

	plans    []plan.StudyPlan
	query    string
	sortMode plan.SortMode
	cursor   int

	searching bool
	search    textinput.Model

	// Viewer state
	viewing    bool
	viewed     plan.StudyPlan
	dayCursor  int
	taskCursor int

	confirmingDelete bool
}

func newPlansModel(s *store.Store) plansModel {
	ti := textinput.New()
	ti.Placeholder = "Buscar por título, matéria ou tag..."
	ti.CharLimit = 64

	return plansModel{
		store:  s,
		search: ti,
	}
}

func (p *plansModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p plansModel) capturesInput() bool {
	return p.searching || p.viewing || p.confirmingDelete
}

func (p plansModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return plansDataMsg{plans: p.store.Plans()}
	}
}

// visible applies the search filter and sort mode over the stored order.
func (p plansModel) visible() []plan.StudyPlan {
	return plan.Sort(plan.Filter(p.plans, p.query), p.sortMode)
}

func (p plansModel) update(msg tea.Msg) (plansModel, tea.Cmd) {
	switch msg := msg.(type) {
	case plansDataMsg:
		p.plans = msg.plans
		if p.cursor >= len(p.visible()) {
			p.cursor = max(0, len(p.visible())-1)
		}
		if p.viewing {
			// Keep the open viewer in sync (e.g. after toggling a task).
			if updated, ok := p.store.Get(p.viewed.ID); ok {
				p.viewed = updated
			} else {
				p.viewing = false
			}
		}
		return p, nil

	case tea.KeyMsg:
		if p.searching {
			return p.updateSearch(msg)
		}
		if p.confirmingDelete {
			return p.updateConfirmDelete(msg)
		}
		if p.viewing {
			return p.updateViewer(msg)
		}
		return p.updateList(msg)
	}
	return p, nil
}

func (p plansModel) updateSearch(msg tea.KeyMsg) (plansModel, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		p.searching = false
		p.search.Blur()
		return p, nil
	}
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	p.query = p.search.Value()
	p.cursor = 0
	return p, cmd
}

func (p plansModel) updateConfirmDelete(msg tea.KeyMsg) (plansModel, tea.Cmd) {
	switch msg.String() {
	case "y", "s":
		p.confirmingDelete = false
		visible := p.visible()
		if p.cursor < len(visible) {
			id := visible[p.cursor].ID
			if err := p.store.Delete(id); err != nil {
				return p, func() tea.Msg {
					return statusMsg{text: "Erro ao excluir: " + err.Error(), isError: true}
				}
			}
			return p, func() tea.Msg { return planDeletedMsg{} }
		}
		return p, nil
	default:
		p.confirmingDelete = false
		return p, nil
	}
}

func (p plansModel) updateList(msg tea.KeyMsg) (plansModel, tea.Cmd) {
	visible := p.visible()

	switch {
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keys.Down):
		if p.cursor < len(visible)-1 {
			p.cursor++
		}
	case key.Matches(msg, keys.Search):
		p.searching = true
		p.search.Focus()
		return p, textinput.Blink
	case key.Matches(msg, keys.Sort):
		if p.sortMode == plan.SortRecent {
			p.sortMode = plan.SortExam
		} else {
			p.sortMode = plan.SortRecent
		}
		p.cursor = 0
	case key.Matches(msg, keys.Enter):
		if p.cursor < len(visible) {
			p.viewing = true
			p.viewed = visible[p.cursor]
			p.dayCursor = 0
			p.taskCursor = 0
		}
	case key.Matches(msg, keys.Delete):
		if len(visible) > 0 {
			p.confirmingDelete = true
		}
	case key.Matches(msg, keys.Export):
		if p.cursor < len(visible) {
			return p, exportCmd(visible[p.cursor])
		}
	}
	return p, nil
}

func (p plansModel) updateViewer(msg tea.KeyMsg) (plansModel, tea.Cmd) {
	tasks := 0
	if p.dayCursor < len(p.viewed.Schedule) {
		tasks = len(p.viewed.Schedule[p.dayCursor].Tasks)
	}

	switch {
	case key.Matches(msg, keys.Back):
		p.viewing = false
	case key.Matches(msg, keys.Left):
		if p.dayCursor > 0 {
			p.dayCursor--
			p.taskCursor = 0
		}
	case key.Matches(msg, keys.Right):
		if p.dayCursor < len(p.viewed.Schedule)-1 {
			p.dayCursor++
			p.taskCursor = 0
		}
	case key.Matches(msg, keys.Up):
		if p.taskCursor > 0 {
			p.taskCursor--
		}
	case key.Matches(msg, keys.Down):
		if p.taskCursor < tasks-1 {
			p.taskCursor++
		}
	case key.Matches(msg, keys.Toggle):
		if tasks > 0 {
			day := p.viewed.Schedule[p.dayCursor]
			done := day.Tasks[p.taskCursor].Completed
			if err := p.store.SetTaskCompleted(p.viewed.ID, p.dayCursor, p.taskCursor, !done); err != nil {
				return p, func() tea.Msg {
					return statusMsg{text: "Erro ao atualizar tarefa: " + err.Error(), isError: true}
				}
			}
			return p, p.refresh()
		}
	case key.Matches(msg, keys.Export):
		return p, exportCmd(p.viewed)
	}
	return p, nil
}

func exportCmd(p plan.StudyPlan) tea.Cmd {
	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			return statusMsg{text: "Erro ao exportar: " + err.Error(), isError: true}
		}
		path := filepath.Join(home, export.FileName(p))
		if err := export.WriteFile(p, path); err != nil {
			return statusMsg{text: "Erro ao exportar: " + err.Error(), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

func (p plansModel) view() string {
	if p.viewing {
		return p.renderViewer()
	}
	return p.renderList()
}

func (p plansModel) renderList() string {
	w := p.width - 4
	title := titleStyle.Render("Meus Planos")
	count := mutedStyle.Render(fmt.Sprintf("  %d %s", len(p.plans),
		plural(len(p.plans), "plano salvo", "planos salvos")))

	if len(p.plans) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Nenhum plano salvo. Crie seu primeiro plano na aba Gerar."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title+count)
	rows = append(rows, "")

	searchLine := mutedStyle.Render("  buscar: ") + p.search.View()
	if !p.searching && p.query == "" {
		searchLine = mutedStyle.Render("  /: buscar    o: ordenar (" + p.sortMode.Label() + ")")
	} else {
		searchLine += mutedStyle.Render("    o: ordenar (" + p.sortMode.Label() + ")")
	}
	rows = append(rows, searchLine)
	rows = append(rows, "")

	visible := p.visible()
	if len(visible) == 0 {
		rows = append(rows, mutedStyle.Render("  Nenhum resultado encontrado."))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	header := mutedStyle.Render(fmt.Sprintf("  %-2s %-32s %-12s %-10s %s", "", "Título", "Prova", "Nível", "Tags"))
	rows = append(rows, header)

	for i, pl := range visible {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		tags := strings.Join(pl.Tags, ", ")
		rows = append(rows, style.Render(fmt.Sprintf("%s%-32s %-12s %-10s",
			cursor, truncate(pl.Title, 32), pl.ExamDate, pl.Level.Label()))+mutedStyle.Render(" "+tags))
	}

	rows = append(rows, "")
	if p.confirmingDelete {
		rows = append(rows, errorStyle.Render("  Excluir plano de estudo? Esta ação não pode ser desfeita. (s/n)"))
	} else {
		rows = append(rows, mutedStyle.Render("  enter: abrir  d: excluir  e: exportar"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (p plansModel) renderViewer() string {
	w := p.width - 4
	pl := p.viewed

	var rows []string
	rows = append(rows, titleStyle.Render(pl.Title))
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("Prova: %s   Nível: %s   %d min/dia",
		pl.ExamDate, pl.Level.Label(), pl.DailyTime)))
	rows = append(rows, "")

	if len(pl.Schedule) == 0 {
		rows = append(rows, mutedStyle.Render("Cronograma vazio."))
	} else {
		day := pl.Schedule[p.dayCursor]
		rows = append(rows, highlightStyle.Render(export.LongDate(day.Date))+
			mutedStyle.Render(fmt.Sprintf("   (%d/%d)   %s", p.dayCursor+1, len(pl.Schedule), day.TotalTime)))
		rows = append(rows, "")

		if len(day.Tasks) == 0 {
			rows = append(rows, mutedStyle.Render("  Sem tarefas neste dia."))
		}
		for i, task := range day.Tasks {
			cursor := "  "
			style := normalItemStyle
			if i == p.taskCursor {
				cursor = "> "
				style = selectedItemStyle
			}
			check := "[ ]"
			if task.Completed {
				check = successStyle.Render("[x]")
			}
			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(task.Type.Color())).Render("●")
			rows = append(rows, style.Render(cursor)+check+" "+dot+" "+
				style.Render(task.Title)+mutedStyle.Render(" ("+task.Duration+")"))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ←/→: dia  ↑/↓: tarefa  space: concluir  e: exportar  esc: voltar"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
