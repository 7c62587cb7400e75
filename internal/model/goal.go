package model

import (
	"time"
)

const (
	GoalStatusInProgress = "in_progress"
	GoalStatusCompleted  = "completed"
	GoalStatusAbandoned  = "abandoned"
)

const (
	GoalTypeGeneric  = "generic"
	GoalTypeTemplate = "template"
)

var GoalStatuses = []string{GoalStatusInProgress, GoalStatusCompleted, GoalStatusAbandoned}

type Goal struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"user_id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Type        string     `db:"type" json:"type"`
	TemplateID  *string    `db:"template_id" json:"template_id,omitempty"`
	Status      string     `db:"status" json:"status"`
	DueDate     *time.Time `db:"due_date" json:"due_date,omitempty"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	Days        []*GoalDay `db:"-" json:"days"`
}
