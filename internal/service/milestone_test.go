package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
)

func TestCreateMilestone(t *testing.T) {
	milestones := newFixture(t).milestoneService()
	ctx := context.Background()
	explicit := time.Date(2019, 5, 26, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		req        CreateMilestoneRequest
		wantErr    error
		wantStatus string
		wantAt     *time.Time
	}{
		{
			name:    "unknown type",
			req:     CreateMilestoneRequest{Type: "civil", Title: "Wedding"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown status",
			req:     CreateMilestoneRequest{Type: model.MilestoneTypeSacrament, Title: "Wedding", Status: "done"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing title",
			req:     CreateMilestoneRequest{Type: model.MilestoneTypeSacrament},
			wantErr: domain.ErrValidation,
		},
		{
			name:       "planned by default",
			req:        CreateMilestoneRequest{Type: model.MilestoneTypeSacrament, Title: "Confirmation", CompletedAt: &explicit},
			wantStatus: model.MilestoneStatusPlanned,
		},
		{
			name:       "completed now",
			req:        CreateMilestoneRequest{Type: model.MilestoneTypeSpiritual, Title: "Retreat", Status: model.MilestoneStatusCompleted},
			wantStatus: model.MilestoneStatusCompleted,
			wantAt:     &testNow,
		},
		{
			name:       "completed on a past date",
			req:        CreateMilestoneRequest{Type: model.MilestoneTypeSacrament, Title: "First Communion", Status: model.MilestoneStatusCompleted, CompletedAt: &explicit},
			wantStatus: model.MilestoneStatusCompleted,
			wantAt:     &explicit,
		},
		{
			name:    "duplicate",
			req:     CreateMilestoneRequest{Type: model.MilestoneTypeSacrament, Title: "Confirmation"},
			wantErr: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			milestone, err := milestones.Create(ctx, "alice", tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}

			if milestone.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", milestone.Status, tt.wantStatus)
			}
			switch {
			case tt.wantAt == nil && milestone.CompletedAt != nil:
				t.Errorf("CompletedAt = %s, want nil", milestone.CompletedAt)
			case tt.wantAt != nil && (milestone.CompletedAt == nil || !milestone.CompletedAt.Equal(*tt.wantAt)):
				t.Errorf("CompletedAt = %v, want %s", milestone.CompletedAt, tt.wantAt)
			}
		})
	}
}

func TestUpdateMilestone(t *testing.T) {
	milestones := newFixture(t).milestoneService()
	ctx := context.Background()

	milestone, err := milestones.Create(ctx, "alice", CreateMilestoneRequest{
		Type:  model.MilestoneTypePersonal,
		Title: "Pilgrimage",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	steps := []struct {
		name       string
		req        UpdateMilestoneRequest
		wantStatus string
		wantDone   bool
	}{
		{"start", UpdateMilestoneRequest{Status: ptr(model.MilestoneStatusInProgress)}, model.MilestoneStatusInProgress, false},
		{"rename keeps status", UpdateMilestoneRequest{Title: ptr("Camino")}, model.MilestoneStatusInProgress, false},
		{"complete", UpdateMilestoneRequest{Status: ptr(model.MilestoneStatusCompleted)}, model.MilestoneStatusCompleted, true},
		{"describe keeps completion", UpdateMilestoneRequest{Description: ptr("Santiago")}, model.MilestoneStatusCompleted, true},
		{"reopen", UpdateMilestoneRequest{Status: ptr(model.MilestoneStatusPlanned)}, model.MilestoneStatusPlanned, false},
	}

	for _, step := range steps {
		updated, err := milestones.Update(ctx, "alice", milestone.ID, step.req)
		if err != nil {
			t.Fatalf("%s: Update() error = %v", step.name, err)
		}
		if updated.Status != step.wantStatus || (updated.CompletedAt != nil) != step.wantDone {
			t.Errorf("%s: status = %q, completed_at = %v", step.name, updated.Status, updated.CompletedAt)
		}
	}

	stored, err := milestones.ByID(ctx, "alice", milestone.ID)
	if err != nil {
		t.Fatalf("ByID() error = %v", err)
	}
	if stored.Title != "Camino" || stored.Description != "Santiago" || stored.Type != model.MilestoneTypePersonal {
		t.Errorf("stored = %+v", stored)
	}

	_, err = milestones.Update(ctx, "alice", milestone.ID, UpdateMilestoneRequest{Status: ptr("done")})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Update(bad status) error = %v, want ErrValidation", err)
	}

	_, err = milestones.Update(ctx, "bob", milestone.ID, UpdateMilestoneRequest{Title: ptr("Mine")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update(other user) error = %v, want ErrNotFound", err)
	}
}
