package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
)

func ptr[T any](v T) *T {
	return &v
}

func TestCreateGoal(t *testing.T) {
	goals := newFixture(t).goalService()

	tests := []struct {
		name    string
		req     CreateGoalRequest
		wantErr error
		days    int
	}{
		{"generic without days", CreateGoalRequest{Title: "Pray daily"}, nil, 0},
		{"with empty days", CreateGoalRequest{Title: " Novena ", Days: 9}, nil, 9},
		{"missing title", CreateGoalRequest{Title: "   "}, domain.ErrValidation, 0},
		{"too many days", CreateGoalRequest{Title: "Year", Days: MaxGoalDays + 1}, domain.ErrValidation, 0},
		{"unknown type", CreateGoalRequest{Title: "x", Type: "habit"}, domain.ErrValidation, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal, err := goals.Create(context.Background(), "alice", tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if goal.Type != model.GoalTypeGeneric || goal.Status != model.GoalStatusInProgress {
				t.Errorf("Type/Status = %s/%s", goal.Type, goal.Status)
			}
			if len(goal.Days) != tt.days {
				t.Errorf("days = %d, want %d", len(goal.Days), tt.days)
			}
			if !goal.CreatedAt.Equal(testNow) {
				t.Errorf("CreatedAt = %v, want %v", goal.CreatedAt, testNow)
			}
		})
	}
}

func TestUpdateGoalStatus(t *testing.T) {
	goals := newFixture(t).goalService()
	ctx := context.Background()

	goal, err := goals.Create(ctx, "alice", CreateGoalRequest{Title: "Lent"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := goals.Update(ctx, "alice", goal.ID, UpdateGoalRequest{Status: ptr(model.GoalStatusCompleted)})
	if err != nil {
		t.Fatalf("Update(completed) error = %v", err)
	}
	if updated.CompletedAt == nil || !updated.CompletedAt.Equal(testNow) {
		t.Errorf("CompletedAt = %v, want %v", updated.CompletedAt, testNow)
	}

	updated, err = goals.Update(ctx, "alice", goal.ID, UpdateGoalRequest{Status: ptr(model.GoalStatusInProgress)})
	if err != nil {
		t.Fatalf("Update(in_progress) error = %v", err)
	}
	if updated.CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want nil", updated.CompletedAt)
	}

	_, err = goals.Update(ctx, "alice", goal.ID, UpdateGoalRequest{Status: ptr("paused")})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Update(paused) error = %v, want ErrValidation", err)
	}

	_, err = goals.Update(ctx, "bob", goal.ID, UpdateGoalRequest{Title: ptr("mine now")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update(other user) error = %v, want ErrNotFound", err)
	}

	stored, err := goals.ByID(ctx, "alice", goal.ID)
	if err != nil {
		t.Fatalf("ByID() error = %v", err)
	}
	if stored.Title != "Lent" || stored.Status != model.GoalStatusInProgress {
		t.Errorf("stored goal = %s/%s", stored.Title, stored.Status)
	}
}

func TestUpdateGoalCompletedAt(t *testing.T) {
	goals := newFixture(t).goalService()
	ctx := context.Background()
	explicit := time.Date(2025, 4, 2, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status string
		req    UpdateGoalRequest
		wantAt *time.Time
	}{
		{
			name:   "ignored on an in progress goal",
			status: model.GoalStatusInProgress,
			req:    UpdateGoalRequest{CompletedAt: &explicit},
		},
		{
			name:   "ignored when moving to abandoned",
			status: model.GoalStatusInProgress,
			req:    UpdateGoalRequest{Status: ptr(model.GoalStatusAbandoned), CompletedAt: &explicit},
		},
		{
			name:   "kept when completing",
			status: model.GoalStatusInProgress,
			req:    UpdateGoalRequest{Status: ptr(model.GoalStatusCompleted), CompletedAt: &explicit},
			wantAt: &explicit,
		},
		{
			name:   "corrects an already completed goal",
			status: model.GoalStatusCompleted,
			req:    UpdateGoalRequest{CompletedAt: &explicit},
			wantAt: &explicit,
		},
		{
			name:   "cleared when reopening",
			status: model.GoalStatusCompleted,
			req:    UpdateGoalRequest{Status: ptr(model.GoalStatusInProgress), CompletedAt: &explicit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal, err := goals.Create(ctx, "alice", CreateGoalRequest{Title: "Easter"})
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if tt.status != goal.Status {
				_, err = goals.Update(ctx, "alice", goal.ID, UpdateGoalRequest{Status: ptr(tt.status)})
				if err != nil {
					t.Fatalf("Update(status) error = %v", err)
				}
			}

			_, err = goals.Update(ctx, "alice", goal.ID, tt.req)
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}

			stored, err := goals.ByID(ctx, "alice", goal.ID)
			if err != nil {
				t.Fatalf("ByID() error = %v", err)
			}
			switch {
			case tt.wantAt == nil && stored.CompletedAt != nil:
				t.Errorf("CompletedAt = %v on a %s goal, want nil", stored.CompletedAt, stored.Status)
			case tt.wantAt != nil && (stored.CompletedAt == nil || !stored.CompletedAt.Equal(*tt.wantAt)):
				t.Errorf("CompletedAt = %v, want %v", stored.CompletedAt, *tt.wantAt)
			}
		})
	}
}

func TestDeleteGoal(t *testing.T) {
	f := newFixture(t)
	goals := f.goalService()
	ctx := context.Background()

	goal, err := goals.Create(ctx, "alice", CreateGoalRequest{Title: "Lent", Days: 3})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err = goals.Delete(ctx, "bob", goal.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete(other user) error = %v, want ErrNotFound", err)
	}

	err = goals.Delete(ctx, "alice", goal.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	_, err = goals.ByID(ctx, "alice", goal.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("ByID(deleted) error = %v, want ErrNotFound", err)
	}
	if n := f.count(t, "goal_days"); n != 0 {
		t.Errorf("goal days = %d, want 0", n)
	}
}

func TestToggleDay(t *testing.T) {
	f := newFixture(t)
	goals := f.goalService()
	ctx := context.Background()

	goal, err := goals.Create(ctx, "alice", CreateGoalRequest{Title: "Novena", Days: 2})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	day, err := goals.ToggleDay(ctx, "alice", goal.ID, 1)
	if err != nil {
		t.Fatalf("ToggleDay() error = %v", err)
	}
	if !day.Completed || day.CompletedAt == nil || !day.CompletedAt.Equal(testNow) {
		t.Errorf("after first toggle = %v/%v, want true/%v", day.Completed, day.CompletedAt, testNow)
	}

	days, err := goals.Days(ctx, "alice", goal.ID)
	if err != nil {
		t.Fatalf("Days() error = %v", err)
	}
	if !days[0].Completed || days[0].CompletedAt == nil || days[1].Completed {
		t.Errorf("persisted days = %+v, %+v", days[0], days[1])
	}

	day, err = goals.ToggleDay(ctx, "alice", goal.ID, 1)
	if err != nil {
		t.Fatalf("second ToggleDay() error = %v", err)
	}
	if day.Completed || day.CompletedAt != nil {
		t.Errorf("after second toggle = %v/%v, want false/nil", day.Completed, day.CompletedAt)
	}

	tests := []struct {
		name   string
		userID string
		goalID string
		day    int
	}{
		{"other user", "bob", goal.ID, 1},
		{"missing day", "alice", goal.ID, 3},
		{"day zero", "alice", goal.ID, 0},
		{"missing goal", "alice", "no-such-goal", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := goals.ToggleDay(ctx, tt.userID, tt.goalID, tt.day)
			if !errors.Is(err, domain.ErrNotFound) {
				t.Errorf("ToggleDay() error = %v, want ErrNotFound", err)
			}
		})
	}

	days, err = goals.Days(ctx, "alice", goal.ID)
	if err != nil {
		t.Fatalf("Days() error = %v", err)
	}
	if days[0].Completed {
		t.Error("failed toggle by another user changed the day")
	}
}

func TestUpdateDay(t *testing.T) {
	goals := newFixture(t).goalService()
	ctx := context.Background()

	goal, err := goals.Create(ctx, "alice", CreateGoalRequest{Title: "Advent", Days: 1})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	explicit := time.Date(2025, 4, 1, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		req           UpdateGoalDayRequest
		wantErr       error
		wantCompleted bool
		wantAt        *time.Time
		wantChecklist []string
	}{
		{
			name:          "checklist only",
			req:           UpdateGoalDayRequest{Checklist: &model.Checklist{"Light a candle"}},
			wantChecklist: []string{"Light a candle"},
		},
		{
			name:    "empty checklist item",
			req:     UpdateGoalDayRequest{Checklist: &model.Checklist{"ok", ""}},
			wantErr: domain.ErrValidation,
		},
		{
			name:          "complete uses clock",
			req:           UpdateGoalDayRequest{IsCompleted: ptr(true)},
			wantCompleted: true,
			wantAt:        &testNow,
			wantChecklist: []string{"Light a candle"},
		},
		{
			name:          "explicit timestamp",
			req:           UpdateGoalDayRequest{CompletedAt: &explicit},
			wantCompleted: true,
			wantAt:        &explicit,
			wantChecklist: []string{"Light a candle"},
		},
		{
			name:          "uncomplete clears timestamp",
			req:           UpdateGoalDayRequest{IsCompleted: ptr(false), CompletedAt: &explicit},
			wantChecklist: []string{"Light a candle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := goals.UpdateDay(ctx, "alice", goal.ID, 1, tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("UpdateDay() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateDay() error = %v", err)
			}
			if day.Completed != tt.wantCompleted {
				t.Errorf("Completed = %v, want %v", day.Completed, tt.wantCompleted)
			}
			switch {
			case tt.wantAt == nil && day.CompletedAt != nil:
				t.Errorf("CompletedAt = %v, want nil", day.CompletedAt)
			case tt.wantAt != nil && (day.CompletedAt == nil || !day.CompletedAt.Equal(*tt.wantAt)):
				t.Errorf("CompletedAt = %v, want %v", day.CompletedAt, *tt.wantAt)
			}
			if len(day.Checklist) != len(tt.wantChecklist) {
				t.Errorf("Checklist = %v, want %v", day.Checklist, tt.wantChecklist)
			}
		})
	}

	_, err = goals.UpdateDay(ctx, "bob", goal.ID, 1, UpdateGoalDayRequest{IsCompleted: ptr(true)})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateDay(other user) error = %v, want ErrNotFound", err)
	}
}
