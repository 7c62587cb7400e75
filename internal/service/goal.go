package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
	"github.com/lumenfide/lumen/internal/repository"
)

// MaxGoalDays bounds the number of empty days a new goal may request.
const MaxGoalDays = 365

type CreateGoalRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	TemplateID  *string    `json:"template_id"`
	DueDate     *time.Time `json:"due_date"`
	Days        int        `json:"days"`
}

func (r CreateGoalRequest) Validate() error {
	return ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Title, ozzo.Required, ozzo.Length(1, 200)),
		ozzo.Field(&r.Description, ozzo.Length(0, 2000)),
		ozzo.Field(&r.Type, ozzo.In(model.GoalTypeGeneric, model.GoalTypeTemplate)),
		ozzo.Field(&r.Days, ozzo.Min(0), ozzo.Max(MaxGoalDays)),
	)
}

// UpdateGoalRequest applies only the fields that are set.
type UpdateGoalRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (r UpdateGoalRequest) Validate() error {
	return ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Title, ozzo.NilOrNotEmpty, ozzo.Length(1, 200)),
		ozzo.Field(&r.Description, ozzo.Length(0, 2000)),
		ozzo.Field(&r.Status, ozzo.In(model.GoalStatusInProgress, model.GoalStatusCompleted, model.GoalStatusAbandoned)),
	)
}

type UpdateGoalDayRequest struct {
	Checklist   *model.Checklist `json:"checklist"`
	IsCompleted *bool            `json:"is_completed"`
	CompletedAt *time.Time       `json:"completed_at"`
}

type GoalService struct {
	txManager      repository.TxManager
	goalRepository repository.GoalRepository
	dayRepository  repository.GoalDayRepository
	now            func() time.Time
}

func NewGoalService(
	txManager repository.TxManager,
	goalRepository repository.GoalRepository,
	dayRepository repository.GoalDayRepository,
) *GoalService {
	return &GoalService{
		txManager:      txManager,
		goalRepository: goalRepository,
		dayRepository:  dayRepository,
		now:            time.Now,
	}
}

func (s *GoalService) clock() time.Time {
	return s.now().UTC()
}

func (s *GoalService) Create(ctx context.Context, userID string, req CreateGoalRequest) (*model.Goal, error) {
	req.Title = strings.TrimSpace(req.Title)
	err := req.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	goalType := req.Type
	if goalType == "" {
		goalType = model.GoalTypeGeneric
	}

	now := s.clock()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Type:        goalType,
		TemplateID:  req.TemplateID,
		Status:      model.GoalStatusInProgress,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	checklists := make([]model.Checklist, req.Days)
	err = s.createWithDays(ctx, goal, checklists)
	if err != nil {
		return nil, err
	}

	slog.Info("goal created", "goal_id", goal.ID, "user_id", userID, "days", len(goal.Days))
	return goal, nil
}

// createWithDays persists the goal and one day per checklist, numbered from 1,
// in a single transaction.
func (s *GoalService) createWithDays(ctx context.Context, goal *model.Goal, checklists []model.Checklist) error {
	days := make([]*model.GoalDay, 0, len(checklists))

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		err := s.goalRepository.Create(ctx, goal)
		if err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}

		for i, checklist := range checklists {
			day := &model.GoalDay{
				ID:        uuid.New().String(),
				GoalID:    goal.ID,
				DayNumber: i + 1,
				Checklist: checklist.Clone(),
				CreatedAt: goal.CreatedAt,
			}

			err := s.dayRepository.Create(ctx, day)
			if err != nil {
				return err
			}
			days = append(days, day)
		}

		return nil
	})
	if err != nil {
		return err
	}

	goal.Days = days
	return nil
}

func (s *GoalService) ByID(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	goal, err := s.goalRepository.ByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.Days, err = s.dayRepository.Days(ctx, goal.ID)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) Goals(ctx context.Context, userID string) ([]*model.Goal, error) {
	goals, err := s.goalRepository.Goals(ctx, userID)
	if err != nil {
		return nil, err
	}

	goalIDs := make([]string, len(goals))
	for i, g := range goals {
		goalIDs[i] = g.ID
	}

	days, err := s.dayRepository.DaysForGoals(ctx, goalIDs)
	if err != nil {
		return nil, err
	}

	for _, g := range goals {
		g.Days = days[g.ID]
		if g.Days == nil {
			g.Days = []*model.GoalDay{}
		}
	}

	return goals, nil
}

func (s *GoalService) Update(ctx context.Context, userID, goalID string, req UpdateGoalRequest) (*model.Goal, error) {
	err := req.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Verify ownership
	goal, err := s.goalRepository.ByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	if req.Title != nil {
		goal.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.DueDate != nil {
		goal.DueDate = req.DueDate
	}
	if req.Status != nil && *req.Status != goal.Status {
		goal.Status = *req.Status
		if goal.Status == model.GoalStatusCompleted {
			goal.CompletedAt = &now
		} else {
			goal.CompletedAt = nil
		}
	}
	// completed_at is only kept on completed goals
	if req.CompletedAt != nil && goal.Status == model.GoalStatusCompleted {
		at := req.CompletedAt.UTC()
		goal.CompletedAt = &at
	}
	goal.UpdatedAt = now

	err = s.goalRepository.Update(ctx, goal)
	if err != nil {
		return nil, err
	}

	goal.Days, err = s.dayRepository.Days(ctx, goal.ID)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Delete removes the goal and all of its days.
func (s *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		// Verify ownership
		_, err := s.goalRepository.ByID(ctx, userID, goalID)
		if err != nil {
			return err
		}

		err = s.dayRepository.DeleteForGoal(ctx, goalID)
		if err != nil {
			return err
		}

		return s.goalRepository.Delete(ctx, userID, goalID)
	})
	if err != nil {
		return err
	}

	slog.Info("goal deleted", "goal_id", goalID, "user_id", userID)
	return nil
}

func (s *GoalService) Days(ctx context.Context, userID, goalID string) ([]*model.GoalDay, error) {
	// Verify ownership
	_, err := s.goalRepository.ByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	return s.dayRepository.Days(ctx, goalID)
}

// ToggleDay flips the completion state of one day of a goal owned by userID.
// A goal owned by someone else is reported as not found.
func (s *GoalService) ToggleDay(ctx context.Context, userID, goalID string, dayNumber int) (*model.GoalDay, error) {
	var day *model.GoalDay

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		_, err := s.goalRepository.ByID(ctx, userID, goalID)
		if err != nil {
			return err
		}

		err = s.dayRepository.Toggle(ctx, goalID, dayNumber)
		if err != nil {
			return err
		}

		day, err = s.dayRepository.Day(ctx, goalID, dayNumber)
		if err != nil {
			return err
		}

		day.SetCompleted(day.Completed, nil, s.clock())
		return s.dayRepository.Update(ctx, day)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("goal day toggled", "goal_id", goalID, "day", dayNumber, "completed", day.Completed)
	return day, nil
}

// UpdateDay applies explicit values to a day. completed_at follows the
// completion flag unless a timestamp is given for a completed day.
func (s *GoalService) UpdateDay(ctx context.Context, userID, goalID string, dayNumber int, req UpdateGoalDayRequest) (*model.GoalDay, error) {
	if req.Checklist != nil && slices.Contains(*req.Checklist, "") {
		return nil, fmt.Errorf("%w: checklist items must not be empty", domain.ErrValidation)
	}

	var day *model.GoalDay

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		_, err := s.goalRepository.ByID(ctx, userID, goalID)
		if err != nil {
			return err
		}

		day, err = s.dayRepository.Day(ctx, goalID, dayNumber)
		if err != nil {
			return err
		}

		if req.Checklist != nil {
			day.Checklist = req.Checklist.Clone()
		}

		completed := day.Completed
		if req.IsCompleted != nil {
			completed = *req.IsCompleted
		}
		if req.IsCompleted != nil || req.CompletedAt != nil {
			at := req.CompletedAt
			if at == nil && completed == day.Completed {
				at = day.CompletedAt
			}
			day.SetCompleted(completed, at, s.clock())
		}

		return s.dayRepository.Update(ctx, day)
	})
	if err != nil {
		return nil, err
	}

	return day, nil
}
