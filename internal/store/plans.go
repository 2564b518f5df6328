package store

import (
	"encoding/json"
	"fmt"

	"github.com/sadopc/estudai/internal/plan"
)

// loadSnapshot reads the persisted collection. Corruption is deliberately
// treated the same as absence: the user gets an empty (but working) app
// instead of an error they cannot act on.
func (s *Store) loadSnapshot() []plan.StudyPlan {
	var value string
	err := s.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, snapshotKey).Scan(&value)
	if err != nil {
		return nil
	}

	var plans []plan.StudyPlan
	if err := json.Unmarshal([]byte(value), &plans); err != nil {
		return nil
	}
	return plans
}

// persist writes the full collection under the fixed key. Caller holds mu.
func (s *Store) persist() error {
	data, err := json.Marshal(s.plans)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO snapshots (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		snapshotKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// notify fires subscribers after a mutation. Caller must not hold mu.
func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Subscribe registers fn to run synchronously after every successful
// mutation. There is no unsubscribe; subscribers live as long as the store.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Plans returns a copy of the collection in insertion order.
func (s *Store) Plans() []plan.StudyPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]plan.StudyPlan, len(s.plans))
	copy(out, s.plans)
	return out
}

// Get returns the plan with the given id.
func (s *Store) Get(id string) (plan.StudyPlan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.plans {
		if p.ID == id {
			return p, true
		}
	}
	return plan.StudyPlan{}, false
}

// Save appends p to the collection and persists. The id must be assigned
// by the caller; the store does not check uniqueness.
func (s *Store) Save(p plan.StudyPlan) error {
	s.mu.Lock()
	s.plans = append(s.plans, p)
	err := s.persist()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// Delete removes the plan with the given id and persists. Deleting an
// unknown id is a no-op.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	removed := false
	for i, p := range s.plans {
		if p.ID == id {
			s.plans = append(s.plans[:i], s.plans[i+1:]...)
			removed = true
			break
		}
	}
	var err error
	if removed {
		err = s.persist()
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if removed {
		s.notify()
	}
	return nil
}

// Patch holds the top-level fields Update may replace. Nil fields are left
// alone; set fields replace the plan's value wholesale (the schedule is
// not deep-merged).
type Patch struct {
	Title    *string
	Summary  *string
	Schedule *[]plan.DaySchedule
	Goals    *[]string
	Tips     *[]string
	Tags     *[]string
}

// Update shallow-merges patch into the plan with the given id and
// persists. Updating an unknown id is a no-op.
func (s *Store) Update(id string, patch Patch) error {
	s.mu.Lock()
	found := false
	for i := range s.plans {
		if s.plans[i].ID != id {
			continue
		}
		found = true
		p := &s.plans[i]
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Summary != nil {
			p.Summary = *patch.Summary
		}
		if patch.Schedule != nil {
			p.Schedule = *patch.Schedule
		}
		if patch.Goals != nil {
			p.Goals = *patch.Goals
		}
		if patch.Tips != nil {
			p.Tips = *patch.Tips
		}
		if patch.Tags != nil {
			p.Tags = *patch.Tags
		}
		break
	}
	var err error
	if found {
		err = s.persist()
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if found {
		s.notify()
	}
	return nil
}

// SetTaskCompleted flips one task's completed flag, modeled as an update
// to the owning plan's schedule. Out-of-range indexes are a no-op.
func (s *Store) SetTaskCompleted(id string, dayIdx, taskIdx int, completed bool) error {
	p, ok := s.Get(id)
	if !ok {
		return nil
	}
	if dayIdx < 0 || dayIdx >= len(p.Schedule) {
		return nil
	}
	if taskIdx < 0 || taskIdx >= len(p.Schedule[dayIdx].Tasks) {
		return nil
	}

	schedule := make([]plan.DaySchedule, len(p.Schedule))
	copy(schedule, p.Schedule)
	tasks := make([]plan.Task, len(schedule[dayIdx].Tasks))
	copy(tasks, schedule[dayIdx].Tasks)
	tasks[taskIdx].Completed = completed
	schedule[dayIdx].Tasks = tasks

	return s.Update(id, Patch{Schedule: &schedule})
}
