package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sadopc/estudai/internal/plan"
)

// ToMarkdown writes a plan as a human-readable Markdown document: header
// fields, summary, numbered goals, tips and one section per scheduled day.
func ToMarkdown(p plan.StudyPlan, w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "**Matéria:** %s\n", p.Subject)
	fmt.Fprintf(&b, "**Data da Prova:** %s\n", shortDate(p.ExamDate))
	fmt.Fprintf(&b, "**Nível:** %s\n", p.Level.Label())
	fmt.Fprintf(&b, "**Tempo Diário:** %d minutos\n\n", p.DailyTime)

	fmt.Fprintf(&b, "## Resumo\n%s\n\n", p.Summary)

	b.WriteString("## Metas\n")
	for i, g := range p.Goals {
		fmt.Fprintf(&b, "%d. %s\n", i+1, g)
	}
	b.WriteString("\n")

	b.WriteString("## Dicas\n")
	for _, t := range p.Tips {
		fmt.Fprintf(&b, "- %s\n", t)
	}
	b.WriteString("\n")

	b.WriteString("## Cronograma\n")
	for _, day := range p.Schedule {
		fmt.Fprintf(&b, "\n### %s\n", LongDate(day.Date))
		for _, task := range day.Tasks {
			fmt.Fprintf(&b, "- %s (%s)\n", task.Title, task.Duration)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFile exports a plan to the given path.
func WriteFile(p plan.StudyPlan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := ToMarkdown(p, f); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// FileName derives the export file name from a plan title:
// lowercased, spaces replaced with hyphens, .md extension.
func FileName(p plan.StudyPlan) string {
	name := strings.ToLower(strings.Join(strings.Fields(p.Title), "-"))
	if name == "" {
		name = "plano"
	}
	return name + ".md"
}

// Portuguese calendar names. The standard library only formats English
// dates, and no library in use here does locales.
var (
	weekdaysPT = [...]string{
		"domingo", "segunda-feira", "terça-feira", "quarta-feira",
		"quinta-feira", "sexta-feira", "sábado",
	}
	monthsPT = [...]string{
		"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
	}
)

// LongDate renders an ISO date as "segunda-feira, 2 de março". Dates that
// fail to parse are returned as-is.
func LongDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%s, %d de %s", weekdaysPT[t.Weekday()], t.Day(), monthsPT[t.Month()-1])
}

// shortDate renders an ISO date as dd/mm/yyyy.
func shortDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}
