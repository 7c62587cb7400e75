package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
	"github.com/lumenfide/lumen/internal/repository"
)

type CreateMilestoneRequest struct {
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IconKey     string     `json:"icon_key"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (r CreateMilestoneRequest) Validate() error {
	return ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Type, ozzo.Required, ozzo.In(anySlice(model.MilestoneTypes)...)),
		ozzo.Field(&r.Title, ozzo.Required, ozzo.Length(1, 200)),
		ozzo.Field(&r.Description, ozzo.Length(0, 2000)),
		ozzo.Field(&r.IconKey, ozzo.Length(0, 64)),
		ozzo.Field(&r.Status, ozzo.In(anySlice(model.MilestoneStatuses)...)),
	)
}

// UpdateMilestoneRequest applies only the fields that are set. The type is
// fixed at creation.
type UpdateMilestoneRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	IconKey     *string    `json:"icon_key"`
	Status      *string    `json:"status"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (r UpdateMilestoneRequest) Validate() error {
	return ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Title, ozzo.NilOrNotEmpty, ozzo.Length(1, 200)),
		ozzo.Field(&r.Description, ozzo.Length(0, 2000)),
		ozzo.Field(&r.IconKey, ozzo.Length(0, 64)),
		ozzo.Field(&r.Status, ozzo.In(anySlice(model.MilestoneStatuses)...)),
	)
}

func anySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

type MilestoneService struct {
	milestoneRepository repository.MilestoneRepository
	now                 func() time.Time
}

func NewMilestoneService(milestoneRepository repository.MilestoneRepository) *MilestoneService {
	return &MilestoneService{
		milestoneRepository: milestoneRepository,
		now:                 time.Now,
	}
}

func (s *MilestoneService) Create(ctx context.Context, userID string, req CreateMilestoneRequest) (*model.Milestone, error) {
	req.Title = strings.TrimSpace(req.Title)
	err := req.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	status := req.Status
	if status == "" {
		status = model.MilestoneStatusPlanned
	}

	now := s.now().UTC()
	milestone := &model.Milestone{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		IconKey:     req.IconKey,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	milestone.SetStatus(status, req.CompletedAt, now)

	err = s.milestoneRepository.Create(ctx, milestone)
	if err != nil {
		return nil, err
	}

	slog.Info("milestone created", "milestone_id", milestone.ID, "user_id", userID, "type", milestone.Type)
	return milestone, nil
}

func (s *MilestoneService) ByID(ctx context.Context, userID, milestoneID string) (*model.Milestone, error) {
	return s.milestoneRepository.ByID(ctx, userID, milestoneID)
}

// Milestones lists the user's milestones, newest first.
func (s *MilestoneService) Milestones(ctx context.Context, userID string) ([]*model.Milestone, error) {
	return s.milestoneRepository.Milestones(ctx, userID)
}

func (s *MilestoneService) Update(ctx context.Context, userID, milestoneID string, req UpdateMilestoneRequest) (*model.Milestone, error) {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	err := req.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	milestone, err := s.milestoneRepository.ByID(ctx, userID, milestoneID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		milestone.Title = *req.Title
	}
	if req.Description != nil {
		milestone.Description = *req.Description
	}
	if req.IconKey != nil {
		milestone.IconKey = *req.IconKey
	}

	now := s.now().UTC()
	status := milestone.Status
	if req.Status != nil {
		status = *req.Status
	}
	milestone.SetStatus(status, req.CompletedAt, now)
	milestone.UpdatedAt = now

	err = s.milestoneRepository.Update(ctx, milestone)
	if err != nil {
		return nil, err
	}
	return milestone, nil
}

func (s *MilestoneService) Delete(ctx context.Context, userID, milestoneID string) error {
	err := s.milestoneRepository.Delete(ctx, userID, milestoneID)
	if err != nil {
		return err
	}

	slog.Info("milestone deleted", "milestone_id", milestoneID, "user_id", userID)
	return nil
}
