package plan

import "strconv"

// DaySummary aggregates one calendar day across every stored plan.
type DaySummary struct {
	Date         string
	Tasks        []Task
	TotalMinutes int
	Exam         bool
	ExamSubjects []string
}

// Empty reports whether the day has nothing to show. Empty days are not
// selectable in the calendar.
func (d DaySummary) Empty() bool {
	return len(d.Tasks) == 0 && !d.Exam
}

// Day collects the given date's tasks across all plans, in plan-iteration
// order. TotalMinutes sums each contributing plan's declared TotalTime
// label (integer prefix), not the task durations, so the generator's
// rounding quirk carries through unchanged.
func Day(plans []StudyPlan, date string) DaySummary {
	sum := DaySummary{Date: date}

	for _, p := range plans {
		if p.ExamDate == date {
			sum.Exam = true
			sum.ExamSubjects = append(sum.ExamSubjects, p.Subject)
		}
		for _, day := range p.Schedule {
			if day.Date != date {
				continue
			}
			sum.Tasks = append(sum.Tasks, day.Tasks...)
			sum.TotalMinutes += labelMinutes(day.TotalTime)
		}
	}
	return sum
}

// labelMinutes parses the leading integer of a duration label like
// "60 min". Anything unparseable counts as zero.
func labelMinutes(label string) int {
	end := 0
	for end < len(label) && label[end] >= '0' && label[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(label[:end])
	if err != nil {
		return 0
	}
	return n
}
