package plan

import (
	"strings"
	"time"
)

// TaskType classifies a scheduled study task.
type TaskType string

const (
	TaskResumo    TaskType = "resumo"
	TaskExercicio TaskType = "exercicio"
	TaskRevisao   TaskType = "revisao"
	TaskLeitura   TaskType = "leitura"
)

// taskCycle is the fixed rotation used when distributing tasks over a day.
var taskCycle = []TaskType{TaskResumo, TaskExercicio, TaskRevisao, TaskLeitura}

// Label returns the display name for the task type.
func (t TaskType) Label() string {
	switch t {
	case TaskResumo:
		return "Resumo"
	case TaskExercicio:
		return "Exercício"
	case TaskRevisao:
		return "Revisão"
	case TaskLeitura:
		return "Leitura"
	}
	return string(t)
}

// Color returns the hex color used to render the task type.
func (t TaskType) Color() string {
	switch t {
	case TaskResumo:
		return "#6C63FF"
	case TaskExercicio:
		return "#2EC4B6"
	case TaskRevisao:
		return "#F39C12"
	case TaskLeitura:
		return "#3498DB"
	}
	return "#666666"
}

// Level is the user's self-reported proficiency.
type Level string

const (
	LevelIniciante     Level = "iniciante"
	LevelIntermediario Level = "intermediario"
	LevelAvancado      Level = "avancado"
)

// Levels lists all levels in form order.
var Levels = []Level{LevelIniciante, LevelIntermediario, LevelAvancado}

// Label returns the display name for the level.
func (l Level) Label() string {
	switch l {
	case LevelIniciante:
		return "Iniciante"
	case LevelIntermediario:
		return "Intermediário"
	case LevelAvancado:
		return "Avançado"
	}
	return string(l)
}

// Multiplier scales the exercise-count goal. It does not affect the
// schedule itself.
func (l Level) Multiplier() float64 {
	switch l {
	case LevelIniciante:
		return 1.0
	case LevelIntermediario:
		return 1.2
	case LevelAvancado:
		return 1.5
	}
	return 1.0
}

// Task is a single study activity within a day. Tasks are value objects;
// they exist only inside a DaySchedule.
type Task struct {
	Title     string   `json:"title"`
	Duration  string   `json:"duration"`
	Type      TaskType `json:"type"`
	Completed bool     `json:"completed"`
}

// DaySchedule holds the ordered tasks for one calendar day. Date is ISO
// (yyyy-mm-dd) and unique within a plan's schedule. TotalTime is the
// requested daily budget rendered as a label, not a sum of task durations.
type DaySchedule struct {
	Date      string `json:"date"`
	Tasks     []Task `json:"tasks"`
	TotalTime string `json:"totalTime"`
}

// StudyPlan is the persisted root aggregate. CreatedAt is RFC 3339 and set
// once when the plan is saved; Tags are derived from the subject at the
// same moment.
type StudyPlan struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Subject   string        `json:"subject"`
	ExamDate  string        `json:"examDate"`
	CreatedAt string        `json:"createdAt"`
	Level     Level         `json:"level"`
	DailyTime int           `json:"dailyTime"`
	Summary   string        `json:"summary"`
	Schedule  []DaySchedule `json:"schedule"`
	Goals     []string      `json:"goals"`
	Tips      []string      `json:"tips"`
	Tags      []string      `json:"tags"`
}

// Generated is a StudyPlan before it is saved: no ID, CreatedAt or Tags yet.
type Generated struct {
	Title     string
	Subject   string
	ExamDate  string
	Level     Level
	DailyTime int
	Summary   string
	Schedule  []DaySchedule
	Goals     []string
	Tips      []string
}

// Request describes what the user asked for. It is ephemeral and never
// persisted. The form collaborator validates required fields and clamps
// DailyTime to 15–480 before a Request reaches the generator.
type Request struct {
	Subject     string
	ExamDate    string // yyyy-mm-dd
	DailyTime   int    // minutes per day
	Level       Level
	Preferences []string
	Goal        string
}

// Promote turns a generated plan into a persistable StudyPlan, assigning
// its identity and deriving tags from the subject.
func Promote(g Generated, id string, createdAt time.Time) StudyPlan {
	return StudyPlan{
		ID:        id,
		Title:     g.Title,
		Subject:   g.Subject,
		ExamDate:  g.ExamDate,
		CreatedAt: createdAt.UTC().Format(time.RFC3339),
		Level:     g.Level,
		DailyTime: g.DailyTime,
		Summary:   g.Summary,
		Schedule:  g.Schedule,
		Goals:     g.Goals,
		Tips:      g.Tips,
		Tags:      DeriveTags(g.Subject),
	}
}

// DeriveTags computes a plan's tags from its subject: the first
// whitespace-separated word. Kept as an explicit derivation so display
// code never re-guesses it.
func DeriveTags(subject string) []string {
	fields := strings.Fields(subject)
	if len(fields) == 0 {
		return nil
	}
	return []string{fields[0]}
}
