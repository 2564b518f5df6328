package plan

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// GenerationDelay is the fixed latency simulating an AI backend. The
// generator itself is synchronous; callers sleep for this long before
// delivering the result.
const GenerationDelay = 2 * time.Second

// maxHorizonDays caps how many days a plan schedules, no matter how far
// away the exam is. Bounds output size.
const maxHorizonDays = 30

const maxTasksPerDay = 4

const isoDate = "2006-01-02"

// Generate produces a study plan from a request. It is pure and
// deterministic: the reference date is injected rather than read from the
// wall clock, and equal inputs yield equal plans. It never fails — an
// unparseable or past exam date degrades to an empty schedule, and the
// summary and goals are still rendered from the (possibly negative) day
// count.
func Generate(req Request, today time.Time) Generated {
	start := dateOnly(today)
	days := daysUntil(start, req.ExamDate)

	var schedule []DaySchedule
	for i := 0; i < minInt(days, maxHorizonDays); i++ {
		date := start.AddDate(0, 0, i)

		numTasks := minInt(req.DailyTime/30, maxTasksPerDay)
		var tasks []Task
		for j := 0; j < numTasks; j++ {
			typ := taskCycle[(i+j)%len(taskCycle)]
			tasks = append(tasks, Task{
				Title:    taskTitle(typ, i, j),
				Duration: fmt.Sprintf("%d min", req.DailyTime/numTasks),
				Type:     typ,
			})
		}

		schedule = append(schedule, DaySchedule{
			Date:  date.Format(isoDate),
			Tasks: tasks,
			// Always the requested budget, even when task durations
			// round down or the task cap leaves time unassigned.
			TotalTime: fmt.Sprintf("%d min", req.DailyTime),
		})
	}

	totalHours := int(math.Round(float64(days*req.DailyTime) / 60))
	summary := fmt.Sprintf(
		"Plano personalizado de %d dias para %s. Com %d minutos diários de estudo focado, você terá %d horas totais de preparação. O plano inclui %s conforme suas preferências.",
		days, req.Subject, req.DailyTime, totalHours, strings.Join(req.Preferences, ", "),
	)

	exercises := int(math.Round(float64(days) * req.Level.Multiplier() * 2))
	reviews := int(math.Ceil(float64(days) / 7))

	return Generated{
		Title:     "Plano de Estudo: " + req.Subject,
		Subject:   req.Subject,
		ExamDate:  req.ExamDate,
		Level:     req.Level,
		DailyTime: req.DailyTime,
		Summary:   summary,
		Schedule:  schedule,
		Goals: []string{
			fmt.Sprintf("Dominar os conceitos fundamentais de %s", req.Subject),
			fmt.Sprintf("Completar %d exercícios práticos", exercises),
			fmt.Sprintf("Fazer %d revisões semanais completas", reviews),
			req.Goal,
		},
		Tips: []string{
			"Use a técnica Pomodoro: 25 min de foco + 5 min de pausa",
			"Revise o conteúdo do dia anterior antes de começar",
			"Faça anotações em suas próprias palavras",
			"Pratique exercícios sem consultar o material primeiro",
			"Durma bem, especialmente na véspera da prova",
		},
	}
}

// taskTitle picks a title from the per-type template table. Only the first
// resumo template depends on the day index.
func taskTitle(t TaskType, dayIdx, taskIdx int) string {
	var titles [4]string
	switch t {
	case TaskResumo:
		titles = [4]string{
			fmt.Sprintf("Resumir capítulo %d", dayIdx+1),
			"Mapear conceitos principais",
			"Criar fichas de estudo",
			"Sintetizar teoria",
		}
	case TaskExercicio:
		titles = [4]string{
			"Resolver exercícios práticos",
			"Fazer questões de fixação",
			"Praticar problemas",
			"Simulado de exercícios",
		}
	case TaskRevisao:
		titles = [4]string{
			"Revisar conteúdo anterior",
			"Revisão ativa com perguntas",
			"Revisão espaçada",
			"Revisão geral",
		}
	case TaskLeitura:
		titles = [4]string{
			"Leitura do material base",
			"Estudar referências",
			"Ler capítulo novo",
			"Explorar material complementar",
		}
	}
	return titles[taskIdx%4]
}

// daysUntil counts calendar days from start (already date-only) to an ISO
// exam date. An unparseable date yields a large negative count, which the
// horizon cap turns into an empty schedule.
func daysUntil(start time.Time, examDate string) int {
	exam, err := time.Parse(isoDate, examDate)
	if err != nil {
		exam = time.Time{}
	}
	return int(exam.Sub(start).Hours() / 24)
}

// ISODate renders t's calendar day in the yyyy-mm-dd form used throughout
// schedules and exam dates.
func ISODate(t time.Time) string {
	return dateOnly(t).Format(isoDate)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
