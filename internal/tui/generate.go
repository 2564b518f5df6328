package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/sadopc/estudai/internal/plan"
	"github.com/sadopc/estudai/internal/store"
)

// studyStyles are the selectable study-style preferences. The value is
// what ends up in the generated summary.
var studyStyles = []huh.Option[string]{
	huh.NewOption("Resumos", "resumos"),
	huh.NewOption("Exercícios", "exercicios"),
	huh.NewOption("Revisão Ativa", "revisao-ativa"),
	huh.NewOption("Spaced Repetition", "spaced-repetition"),
}

type generateState int

const (
	generateStateForm generateState = iota
	generateStateWorking
	generateStateReview
)

type generateModel struct {
	store  *store.Store
	width  int
	height int

	state generateState

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formSubject     *string
	formExamDate    *string
	formDailyTime   *string
	formLevel       *plan.Level
	formPreferences *[]string
	formGoal        *string

	spinner spinner.Model

	// genSeq identifies the latest generation request. A regenerate issued
	// while another generation is in flight bumps it; stale results are
	// dropped so the display always shows the last request's outcome.
	genSeq    int
	delay     time.Duration
	now       func() time.Time
	lastReq   plan.Request
	generated plan.Generated
}

func newGenerateModel(s *store.Store) generateModel {
	subject, examDate, dailyTime, goal := "", "", "60", ""
	level := plan.LevelIntermediario
	prefs := []string{}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = selectedItemStyle

	m := generateModel{
		store:           s,
		formSubject:     &subject,
		formExamDate:    &examDate,
		formDailyTime:   &dailyTime,
		formLevel:       &level,
		formPreferences: &prefs,
		formGoal:        &goal,
		spinner:         sp,
		delay:           plan.GenerationDelay,
		now:             time.Now,
	}
	m.buildForm()
	return m
}

func (g *generateModel) setSize(w, h int) {
	g.width = w
	g.height = h
}

func (g generateModel) Init() tea.Cmd {
	if g.form != nil {
		return g.form.Init()
	}
	return nil
}

func (g generateModel) capturesInput() bool {
	return g.formActive || g.state == generateStateReview
}

func (g *generateModel) buildForm() {
	*g.formSubject = ""
	*g.formExamDate = ""
	*g.formDailyTime = "60"
	*g.formLevel = plan.LevelIntermediario
	*g.formPreferences = []string{}
	*g.formGoal = ""

	levelOptions := make([]huh.Option[plan.Level], len(plan.Levels))
	for i, l := range plan.Levels {
		levelOptions[i] = huh.NewOption(l.Label(), l)
	}

	today := plan.ISODate(g.now())

	g.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tema / Assunto Principal").
				Placeholder("Ex: Matemática - Cálculo Integral").
				Value(g.formSubject).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("informe o assunto")
					}
					return nil
				}),
			huh.NewInput().
				Title("Data da Prova").
				Placeholder("AAAA-MM-DD").
				Value(g.formExamDate).
				Validate(func(s string) error {
					d, err := time.Parse("2006-01-02", s)
					if err != nil {
						return fmt.Errorf("use o formato AAAA-MM-DD")
					}
					if d.Format("2006-01-02") < today {
						return fmt.Errorf("a data deve ser hoje ou depois")
					}
					return nil
				}),
			huh.NewInput().
				Title("Tempo Disponível por Dia (minutos)").
				Value(g.formDailyTime).
				Validate(func(s string) error {
					if _, err := strconv.Atoi(s); err != nil {
						return fmt.Errorf("informe um número de minutos")
					}
					return nil
				}),
			huh.NewSelect[plan.Level]().
				Title("Nível Atual").
				Options(levelOptions...).
				Value(g.formLevel),
			huh.NewMultiSelect[string]().
				Title("Preferências de Estudo").
				Options(studyStyles...).
				Value(g.formPreferences),
			huh.NewText().
				Title("Objetivo Final").
				Placeholder("Ex: Alcançar nota 9 na prova...").
				Value(g.formGoal),
		),
	).WithShowHelp(true).WithShowErrors(true)

	g.formActive = true
	g.state = generateStateForm
}

// requestFromForm assembles the validated request. The daily time is
// clamped to the 15–480 range here, before the generator ever sees it.
func (g generateModel) requestFromForm() plan.Request {
	dailyTime, err := strconv.Atoi(*g.formDailyTime)
	if err != nil {
		dailyTime = 60
	}
	if dailyTime < 15 {
		dailyTime = 15
	}
	if dailyTime > 480 {
		dailyTime = 480
	}

	prefs := make([]string, len(*g.formPreferences))
	copy(prefs, *g.formPreferences)

	return plan.Request{
		Subject:     strings.TrimSpace(*g.formSubject),
		ExamDate:    *g.formExamDate,
		DailyTime:   dailyTime,
		Level:       *g.formLevel,
		Preferences: prefs,
		Goal:        strings.TrimSpace(*g.formGoal),
	}
}

func (g generateModel) generateCmd(req plan.Request) tea.Cmd {
	seq := g.genSeq
	delay := g.delay
	now := g.now
	return func() tea.Msg {
		time.Sleep(delay)
		return planGeneratedMsg{seq: seq, generated: plan.Generate(req, now())}
	}
}

func (g generateModel) update(msg tea.Msg) (generateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if g.state == generateStateWorking {
			var cmd tea.Cmd
			g.spinner, cmd = g.spinner.Update(msg)
			return g, cmd
		}
		return g, nil

	case planGeneratedMsg:
		if msg.seq != g.genSeq {
			// A newer request superseded this one.
			return g, nil
		}
		g.generated = msg.generated
		g.state = generateStateReview
		g.formActive = false
		return g, func() tea.Msg {
			return statusMsg{text: "Plano gerado com sucesso!"}
		}

	case tea.KeyMsg:
		switch g.state {
		case generateStateReview:
			return g.updateReview(msg)
		case generateStateWorking:
			return g, nil
		}
	}

	if g.formActive && g.form != nil {
		return g.updateForm(msg)
	}
	return g, nil
}

func (g generateModel) updateForm(msg tea.Msg) (generateModel, tea.Cmd) {
	form, cmd := g.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.form = f
	}

	if g.form.State == huh.StateCompleted {
		g.formActive = false
		g.state = generateStateWorking
		g.genSeq++
		g.lastReq = g.requestFromForm()
		return g, tea.Batch(g.spinner.Tick, g.generateCmd(g.lastReq))
	}

	return g, cmd
}

func (g generateModel) updateReview(msg tea.KeyMsg) (generateModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Save):
		p := plan.Promote(g.generated, uuid.NewString(), g.now())
		if err := g.store.Save(p); err != nil {
			return g, func() tea.Msg {
				return statusMsg{text: "Erro ao salvar plano: " + err.Error(), isError: true}
			}
		}
		g.buildForm()
		formInit := g.form.Init()
		return g, tea.Batch(formInit, func() tea.Msg {
			return planSavedMsg{plan: p}
		})

	case key.Matches(msg, keys.Regenerate):
		g.state = generateStateWorking
		g.genSeq++
		return g, tea.Batch(g.spinner.Tick, g.generateCmd(g.lastReq))

	case key.Matches(msg, keys.Back):
		g.buildForm()
		return g, g.form.Init()
	}
	return g, nil
}

func (g generateModel) view() string {
	w := g.width - 4

	switch g.state {
	case generateStateWorking:
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Gerando seu plano de estudo..."),
			"",
			g.spinner.View()+" Nossa IA está criando um cronograma personalizado para você.",
		)
		return panelStyle.Width(w).Render(content)

	case generateStateReview:
		return g.renderReview(w)
	}

	title := titleStyle.Render("Gerar Plano de Estudo com IA")
	sub := mutedStyle.Render("Descreva sua prova e receba um cronograma dia a dia.")
	formView := ""
	if g.form != nil {
		formView = g.form.View()
	}
	content := lipgloss.JoinVertical(lipgloss.Left, title, sub, "", formView)
	return panelStyle.Width(w).Render(content)
}

func (g generateModel) renderReview(w int) string {
	gen := g.generated

	var rows []string
	rows = append(rows, titleStyle.Render(gen.Title))
	rows = append(rows, "")
	rows = append(rows, wrap(gen.Summary, w-6))
	rows = append(rows, "")

	rows = append(rows, highlightStyle.Render("Metas"))
	for i, goal := range gen.Goals {
		if goal == "" {
			continue
		}
		rows = append(rows, fmt.Sprintf("  %d. %s", i+1, goal))
	}
	rows = append(rows, "")

	rows = append(rows, highlightStyle.Render("Dicas"))
	for _, tip := range gen.Tips {
		rows = append(rows, "  • "+tip)
	}
	rows = append(rows, "")

	rows = append(rows, highlightStyle.Render(
		fmt.Sprintf("Cronograma (%d %s)", len(gen.Schedule), plural(len(gen.Schedule), "dia", "dias"))))
	shown := min(len(gen.Schedule), 3)
	for _, day := range gen.Schedule[:shown] {
		rows = append(rows, "  "+titleStyle.Render(day.Date)+mutedStyle.Render("  "+day.TotalTime))
		for _, task := range day.Tasks {
			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(task.Type.Color())).Render("●")
			rows = append(rows, fmt.Sprintf("    %s %s (%s)", dot, task.Title, task.Duration))
		}
	}
	if len(gen.Schedule) > shown {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  ... mais %d dias", len(gen.Schedule)-shown)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  s: salvar  r: gerar novamente  esc: descartar"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// wrap breaks text at word boundaries so the summary fits the panel.
func wrap(text string, width int) string {
	if width < 20 {
		width = 20
	}
	words := strings.Fields(text)
	var lines []string
	line := ""
	for _, word := range words {
		if line == "" {
			line = word
		} else if len(line)+1+len(word) <= width {
			line += " " + word
		} else {
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
