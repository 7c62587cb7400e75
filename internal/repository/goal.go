package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
)

var (
	ErrGoalNotFound = fmt.Errorf("goal %w", domain.ErrNotFound)
)

const goalColumns = `id, user_id, title, description, type, template_id, status,
	due_date, completed_at, created_at, updated_at`

type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	ByID(ctx context.Context, userID, goalID string) (*model.Goal, error)
	Goals(ctx context.Context, userID string) ([]*model.Goal, error)
	Update(ctx context.Context, goal *model.Goal) error
	Delete(ctx context.Context, userID, goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, title, description, type, template_id, status,
	          due_date, completed_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := executor(ctx, r.db).ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Type,
		goal.TemplateID,
		goal.Status,
		goal.DueDate,
		goal.CompletedAt,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

// ByID scopes the lookup to the owner, so another user's goal is not found.
func (r *goalRepository) ByID(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`

	err := sqlx.GetContext(ctx, executor(ctx, r.db), goal, query, goalID, userID)
	if err != nil {
		return nil, notFound(err, ErrGoalNotFound)
	}

	return goal, nil
}

func (r *goalRepository) Goals(ctx context.Context, userID string) ([]*model.Goal, error) {
	goals := []*model.Goal{}
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY created_at DESC, id ASC`

	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = $1, description = $2, status = $3, due_date = $4, completed_at = $5, updated_at = $6
	          WHERE id = $7 AND user_id = $8`

	result, err := executor(ctx, r.db).ExecContext(ctx, query,
		goal.Title,
		goal.Description,
		goal.Status,
		goal.DueDate,
		goal.CompletedAt,
		goal.UpdatedAt,
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) Delete(ctx context.Context, userID, goalID string) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	result, err := executor(ctx, r.db).ExecContext(ctx, query, goalID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
