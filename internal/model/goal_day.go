package model

import (
	"time"
)

// GoalDay numbers are 1-based and contiguous within a goal.
type GoalDay struct {
	ID          string     `db:"id" json:"id"`
	GoalID      string     `db:"goal_id" json:"goal_id"`
	DayNumber   int        `db:"day_number" json:"day_number"`
	Checklist   Checklist  `db:"checklist_json" json:"checklist"`
	Completed   bool       `db:"is_completed" json:"is_completed"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// SetCompleted keeps CompletedAt present exactly when the day is completed.
// An explicit timestamp wins over now.
func (d *GoalDay) SetCompleted(completed bool, at *time.Time, now time.Time) {
	d.Completed = completed
	switch {
	case !completed:
		d.CompletedAt = nil
	case at != nil:
		t := *at
		d.CompletedAt = &t
	default:
		d.CompletedAt = &now
	}
}
