package model

import (
	"time"
)

const (
	MilestoneTypeSacrament = "sacrament"
	MilestoneTypeSpiritual = "spiritual"
	MilestoneTypePersonal  = "personal"
)

const (
	MilestoneStatusPlanned    = "planned"
	MilestoneStatusInProgress = "in_progress"
	MilestoneStatusCompleted  = "completed"
)

var (
	MilestoneTypes    = []string{MilestoneTypeSacrament, MilestoneTypeSpiritual, MilestoneTypePersonal}
	MilestoneStatuses = []string{MilestoneStatusPlanned, MilestoneStatusInProgress, MilestoneStatusCompleted}
)

type Milestone struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"user_id"`
	Type        string     `db:"type" json:"type"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	IconKey     string     `db:"icon_key" json:"icon_key"`
	Status      string     `db:"status" json:"status"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// SetStatus moves the milestone to status. CompletedAt is present exactly
// when the milestone is completed; at wins over now.
func (m *Milestone) SetStatus(status string, at *time.Time, now time.Time) {
	m.Status = status
	switch {
	case status != MilestoneStatusCompleted:
		m.CompletedAt = nil
	case at != nil:
		t := at.UTC()
		m.CompletedAt = &t
	case m.CompletedAt == nil:
		m.CompletedAt = &now
	}
}
