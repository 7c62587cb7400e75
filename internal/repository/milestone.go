package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
)

var (
	ErrMilestoneNotFound = fmt.Errorf("milestone %w", domain.ErrNotFound)
)

const milestoneColumns = `id, user_id, type, title, description, icon_key, status, completed_at, created_at, updated_at`

type MilestoneRepository interface {
	Create(ctx context.Context, milestone *model.Milestone) error
	ByID(ctx context.Context, userID, milestoneID string) (*model.Milestone, error)
	Milestones(ctx context.Context, userID string) ([]*model.Milestone, error)
	Update(ctx context.Context, milestone *model.Milestone) error
	Delete(ctx context.Context, userID, milestoneID string) error
}

type milestoneRepository struct {
	db *sqlx.DB
}

func NewMilestoneRepository(db *sqlx.DB) MilestoneRepository {
	return &milestoneRepository{db: db}
}

// Create fails with domain.ErrConflict when the user already has a milestone
// of the same type and title.
func (r *milestoneRepository) Create(ctx context.Context, milestone *model.Milestone) error {
	query := `INSERT INTO milestones (` + milestoneColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := executor(ctx, r.db).ExecContext(ctx, query,
		milestone.ID,
		milestone.UserID,
		milestone.Type,
		milestone.Title,
		milestone.Description,
		milestone.IconKey,
		milestone.Status,
		milestone.CompletedAt,
		milestone.CreatedAt,
		milestone.UpdatedAt,
	)

	return conflict(err, "milestone")
}

func (r *milestoneRepository) ByID(ctx context.Context, userID, milestoneID string) (*model.Milestone, error) {
	milestone := &model.Milestone{}
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = $1 AND user_id = $2`

	err := sqlx.GetContext(ctx, executor(ctx, r.db), milestone, query, milestoneID, userID)
	if err != nil {
		return nil, notFound(err, ErrMilestoneNotFound)
	}

	return milestone, nil
}

func (r *milestoneRepository) Milestones(ctx context.Context, userID string) ([]*model.Milestone, error) {
	milestones := []*model.Milestone{}
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE user_id = $1 ORDER BY created_at DESC, id ASC`

	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &milestones, query, userID)
	if err != nil {
		return nil, err
	}

	return milestones, nil
}

func (r *milestoneRepository) Update(ctx context.Context, milestone *model.Milestone) error {
	query := `UPDATE milestones
	          SET title = $1, description = $2, icon_key = $3, status = $4, completed_at = $5, updated_at = $6
	          WHERE id = $7 AND user_id = $8`

	result, err := executor(ctx, r.db).ExecContext(ctx, query,
		milestone.Title,
		milestone.Description,
		milestone.IconKey,
		milestone.Status,
		milestone.CompletedAt,
		milestone.UpdatedAt,
		milestone.ID,
		milestone.UserID,
	)
	if err != nil {
		return conflict(err, "milestone")
	}

	return affected(result, ErrMilestoneNotFound)
}

func (r *milestoneRepository) Delete(ctx context.Context, userID, milestoneID string) error {
	query := `DELETE FROM milestones WHERE id = $1 AND user_id = $2`
	result, err := executor(ctx, r.db).ExecContext(ctx, query, milestoneID, userID)
	if err != nil {
		return err
	}

	return affected(result, ErrMilestoneNotFound)
}
