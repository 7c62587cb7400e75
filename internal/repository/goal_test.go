package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
	"github.com/lumenfide/lumen/internal/testutil"
)

func createGoal(t *testing.T, goals GoalRepository, days GoalDayRepository, userID string, checklists ...model.Checklist) *model.Goal {
	t.Helper()
	ctx := context.Background()

	goal := &model.Goal{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     "Lent",
		Type:      model.GoalTypeGeneric,
		Status:    model.GoalStatusInProgress,
		CreatedAt: created,
		UpdatedAt: created,
	}
	err := goals.Create(ctx, goal)
	if err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}

	for i, checklist := range checklists {
		err := days.Create(ctx, &model.GoalDay{
			ID:        uuid.New().String(),
			GoalID:    goal.ID,
			DayNumber: i + 1,
			Checklist: checklist,
			CreatedAt: created,
		})
		if err != nil {
			t.Fatalf("failed to create day %d: %v", i+1, err)
		}
	}
	return goal
}

func TestGoalOwnershipAndCascade(t *testing.T) {
	db := testutil.NewDB(t)
	goals := NewGoalRepository(db)
	days := NewGoalDayRepository(db)
	ctx := context.Background()

	goal := createGoal(t, goals, days, "alice", model.Checklist{"a"}, nil)

	_, err := goals.ByID(ctx, "bob", goal.ID)
	if !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("ByID(other user) error = %v, want ErrGoalNotFound", err)
	}

	err = goals.Delete(ctx, "alice", goal.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var remaining int
	err = db.GetContext(ctx, &remaining, `SELECT COUNT(*) FROM goal_days WHERE goal_id = $1`, goal.ID)
	if err != nil {
		t.Fatalf("count days: %v", err)
	}
	if remaining != 0 {
		t.Errorf("days after delete = %d, want 0", remaining)
	}
}

func TestGoalDayToggle(t *testing.T) {
	db := testutil.NewDB(t)
	goals := NewGoalRepository(db)
	days := NewGoalDayRepository(db)
	ctx := context.Background()

	goal := createGoal(t, goals, days, "alice", model.Checklist{"pray"}, model.Checklist{})

	for _, want := range []bool{true, false, true} {
		err := days.Toggle(ctx, goal.ID, 1)
		if err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
		day, err := days.Day(ctx, goal.ID, 1)
		if err != nil {
			t.Fatalf("Day() error = %v", err)
		}
		if day.Completed != want {
			t.Errorf("Completed = %v, want %v", day.Completed, want)
		}
	}

	second, err := days.Day(ctx, goal.ID, 2)
	if err != nil {
		t.Fatalf("Day(2) error = %v", err)
	}
	if second.Completed {
		t.Error("toggling day 1 changed day 2")
	}
	if second.Checklist == nil || len(second.Checklist) != 0 {
		t.Errorf("Day(2) checklist = %#v, want empty", second.Checklist)
	}

	err = days.Toggle(ctx, goal.ID, 3)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Toggle(missing day) error = %v, want ErrNotFound", err)
	}

	byGoal, err := days.DaysForGoals(ctx, []string{goal.ID})
	if err != nil {
		t.Fatalf("DaysForGoals() error = %v", err)
	}
	if len(byGoal[goal.ID]) != 2 {
		t.Errorf("DaysForGoals() = %d days, want 2", len(byGoal[goal.ID]))
	}
}

func TestFavorites(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()

	favorite := &model.Favorite{
		ID:         uuid.New().String(),
		UserID:     "alice",
		EntityType: model.ContentTypeSaint,
		EntityID:   "saint-1",
		CreatedAt:  created,
	}
	err := repo.Create(ctx, favorite)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	dup := *favorite
	dup.ID = uuid.New().String()
	err = repo.Create(ctx, &dup)
	if !errors.Is(err, ErrFavoriteExists) || !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Create(duplicate) error = %v, want ErrFavoriteExists", err)
	}

	other := dup
	other.ID = uuid.New().String()
	other.EntityType = model.ContentTypePrayer
	err = repo.Create(ctx, &other)
	if err != nil {
		t.Errorf("Create(same id, other type) error = %v", err)
	}

	list, err := repo.Favorites(ctx, "alice")
	if err != nil {
		t.Fatalf("Favorites() error = %v", err)
	}
	if len(list) != 2 {
		t.Errorf("Favorites() = %d, want 2", len(list))
	}

	err = repo.Delete(ctx, "alice", model.ContentTypeSaint, "saint-1")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	err = repo.Delete(ctx, "alice", model.ContentTypeSaint, "saint-1")
	if !errors.Is(err, ErrFavoriteNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrFavoriteNotFound", err)
	}
}
