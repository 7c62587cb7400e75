package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
	"github.com/lumenfide/lumen/internal/repository"
	"github.com/lumenfide/lumen/internal/validation"
)

// GuideGoalDescription is the description of every goal created from a guide.
const GuideGoalDescription = "Checklist created from guide"

type GuideService struct {
	txManager       repository.TxManager
	guideRepository repository.GuideRepository
	goalService     *GoalService
}

func NewGuideService(
	txManager repository.TxManager,
	guideRepository repository.GuideRepository,
	goalService *GoalService,
) *GuideService {
	return &GuideService{
		txManager:       txManager,
		guideRepository: guideRepository,
		goalService:     goalService,
	}
}

func (s *GuideService) BySlug(ctx context.Context, slug, locale string) (*model.Guide, error) {
	display, err := displayLocale(locale)
	if err != nil {
		return nil, err
	}
	return s.guideRepository.BySlug(ctx, slug, display)
}

// ConvertToGoal creates a template goal for userID with one day per guide
// step, in step order. Every call creates a new goal.
func (s *GuideService) ConvertToGoal(ctx context.Context, guideID, userID string) (*model.Goal, error) {
	var goal *model.Goal

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		guide, err := s.guideRepository.WithSteps(ctx, guideID)
		if err != nil {
			return err
		}

		now := s.goalService.clock()
		templateID := guide.ID
		goal = &model.Goal{
			ID:          uuid.New().String(),
			UserID:      userID,
			Title:       guide.Slug,
			Description: GuideGoalDescription,
			Type:        model.GoalTypeTemplate,
			TemplateID:  &templateID,
			Status:      model.GoalStatusInProgress,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		checklists := make([]model.Checklist, len(guide.Steps))
		for i, step := range guide.Steps {
			checklists[i] = step.Checklist
		}

		return s.goalService.createWithDays(ctx, goal, checklists)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("guide converted to goal", "guide_id", guideID, "goal_id", goal.ID, "user_id", userID, "days", len(goal.Days))
	return goal, nil
}

// displayLocale canonicalises locale, defaulting to the display default.
func displayLocale(locale string) (string, error) {
	normalized, err := validation.NormalizeLocale(locale)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if normalized == "" {
		return model.DefaultLocale, nil
	}
	return normalized, nil
}
