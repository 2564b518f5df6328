package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/estudai/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView viewState
	showHelp   bool

	generate generateModel
	plans    plansModel
	calendar calendarModel
	stats    statsModel

	// changes coalesces store notifications; waitForChange turns each one
	// into a storeChangedMsg.
	changes chan struct{}

	help   help.Model
	status string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	changes := make(chan struct{}, 1)
	s.Subscribe(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	return App{
		store:      s,
		activeView: viewGenerate,
		generate:   newGenerateModel(s),
		plans:      newPlansModel(s),
		calendar:   newCalendarModel(s),
		stats:      newStatsModel(s),
		changes:    changes,
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.generate.Init(), a.waitForChange())
}

func (a App) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-a.changes
		return storeChangedMsg{}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.generate.setSize(a.width, contentHeight)
		a.plans.setSize(a.width, contentHeight)
		a.calendar.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// If a child view is capturing input (form or search), delegate first.
		if a.isInputActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewGenerate
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewPlans
			return a, a.plans.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewCalendar
			return a, a.calendar.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewStats
			return a, a.stats.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			return a, a.refreshCurrentView()
		}

	// Generation results and spinner ticks belong to the generate view
	// even when another tab is active; a plan finished mid tab-switch must
	// still land in the review pane.
	case planGeneratedMsg:
		var cmd tea.Cmd
		a.generate, cmd = a.generate.update(msg)
		return a, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.generate, cmd = a.generate.update(msg)
		return a, cmd

	// Fresh plan data goes to every data view so background views are
	// never stale when the user switches to them.
	case plansDataMsg:
		var pc, cc, sc tea.Cmd
		a.plans, pc = a.plans.update(msg)
		a.calendar, cc = a.calendar.update(msg)
		a.stats, sc = a.stats.update(msg)
		return a, tea.Batch(pc, cc, sc)

	case storeChangedMsg:
		return a, tea.Batch(a.plans.refresh(), a.waitForChange())

	case statusMsg:
		if msg.isError {
			a.status = errorStyle.Render(msg.text)
		} else {
			a.status = msg.text
		}
		return a, nil

	case planSavedMsg:
		// Mirror the original flow: after saving, jump to the listing.
		a.status = "Plano salvo!"
		a.activeView = viewPlans
		return a, a.plans.refresh()

	case planDeletedMsg:
		a.status = "Plano excluído"
		return a, a.plans.refresh()

	case exportDoneMsg:
		a.status = "Exportado para " + msg.path
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewGenerate:
		a.generate, cmd = a.generate.update(msg)
	case viewPlans:
		a.plans, cmd = a.plans.update(msg)
	case viewCalendar:
		a.calendar, cmd = a.calendar.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	}
	return a, cmd
}

func (a App) isInputActive() bool {
	switch a.activeView {
	case viewGenerate:
		return a.generate.capturesInput()
	case viewPlans:
		return a.plans.capturesInput()
	case viewCalendar:
		return a.calendar.detailOpen()
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewPlans:
		return a.plans.refresh()
	case viewCalendar:
		return a.calendar.refresh()
	case viewStats:
		return a.stats.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Carregando..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewGenerate:
		content = a.generate.view()
	case viewPlans:
		content = a.plans.view()
	case viewCalendar:
		content = a.calendar.view()
	case viewStats:
		content = a.stats.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("estudai")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)
	right := status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}
