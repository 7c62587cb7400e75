package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
)

var (
	ErrGoalDayNotFound = fmt.Errorf("goal day %w", domain.ErrNotFound)
)

const goalDayColumns = `id, goal_id, day_number, checklist_json, is_completed, completed_at, created_at`

type GoalDayRepository interface {
	Create(ctx context.Context, day *model.GoalDay) error
	Days(ctx context.Context, goalID string) ([]*model.GoalDay, error)
	DaysForGoals(ctx context.Context, goalIDs []string) (map[string][]*model.GoalDay, error)
	Day(ctx context.Context, goalID string, dayNumber int) (*model.GoalDay, error)
	Update(ctx context.Context, day *model.GoalDay) error
	Toggle(ctx context.Context, goalID string, dayNumber int) error
	DeleteForGoal(ctx context.Context, goalID string) error
}

type goalDayRepository struct {
	db *sqlx.DB
}

func NewGoalDayRepository(db *sqlx.DB) GoalDayRepository {
	return &goalDayRepository{db: db}
}

func (r *goalDayRepository) Create(ctx context.Context, day *model.GoalDay) error {
	query := `INSERT INTO goal_days (id, goal_id, day_number, checklist_json, is_completed, completed_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := executor(ctx, r.db).ExecContext(ctx, query,
		day.ID,
		day.GoalID,
		day.DayNumber,
		day.Checklist,
		day.Completed,
		day.CompletedAt,
		day.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create day %d: %w", day.DayNumber, conflict(err, "goal day"))
	}

	return nil
}

func (r *goalDayRepository) Days(ctx context.Context, goalID string) ([]*model.GoalDay, error) {
	days := []*model.GoalDay{}
	query := `SELECT ` + goalDayColumns + ` FROM goal_days WHERE goal_id = $1 ORDER BY day_number ASC`

	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &days, query, goalID)
	if err != nil {
		return nil, err
	}

	return days, nil
}

func (r *goalDayRepository) DaysForGoals(ctx context.Context, goalIDs []string) (map[string][]*model.GoalDay, error) {
	if len(goalIDs) == 0 {
		return map[string][]*model.GoalDay{}, nil
	}

	a := &args{}
	query := `SELECT ` + goalDayColumns + ` FROM goal_days WHERE goal_id IN (` + a.list(goalIDs) + `)
	          ORDER BY goal_id ASC, day_number ASC`

	var days []*model.GoalDay
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &days, query, a.values...)
	if err != nil {
		return nil, err
	}

	return groupBy(days, func(d *model.GoalDay) string { return d.GoalID }), nil
}

func (r *goalDayRepository) Day(ctx context.Context, goalID string, dayNumber int) (*model.GoalDay, error) {
	day := &model.GoalDay{}
	query := `SELECT ` + goalDayColumns + ` FROM goal_days WHERE goal_id = $1 AND day_number = $2`

	err := sqlx.GetContext(ctx, executor(ctx, r.db), day, query, goalID, dayNumber)
	if err != nil {
		return nil, notFound(err, ErrGoalDayNotFound)
	}

	return day, nil
}

func (r *goalDayRepository) Update(ctx context.Context, day *model.GoalDay) error {
	query := `UPDATE goal_days
	          SET checklist_json = $1, is_completed = $2, completed_at = $3
	          WHERE goal_id = $4 AND day_number = $5`

	result, err := executor(ctx, r.db).ExecContext(ctx, query,
		day.Checklist,
		day.Completed,
		day.CompletedAt,
		day.GoalID,
		day.DayNumber,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalDayNotFound
	}

	return nil
}

func (r *goalDayRepository) DeleteForGoal(ctx context.Context, goalID string) error {
	_, err := executor(ctx, r.db).ExecContext(ctx, `DELETE FROM goal_days WHERE goal_id = $1`, goalID)
	return err
}

// Toggle flips the completion flag in place. Callers running in a transaction
// hold the row from here on, so concurrent toggles of one day serialize.
func (r *goalDayRepository) Toggle(ctx context.Context, goalID string, dayNumber int) error {
	query := `UPDATE goal_days SET is_completed = NOT is_completed WHERE goal_id = $1 AND day_number = $2`

	result, err := executor(ctx, r.db).ExecContext(ctx, query, goalID, dayNumber)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalDayNotFound
	}

	return nil
}
