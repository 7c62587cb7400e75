package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
)

var (
	ErrFavoriteNotFound = fmt.Errorf("favorite %w", domain.ErrNotFound)
	ErrFavoriteExists   = fmt.Errorf("favorite %w", domain.ErrConflict)
)

type FavoriteRepository interface {
	Create(ctx context.Context, favorite *model.Favorite) error
	Delete(ctx context.Context, userID string, entityType model.ContentType, entityID string) error
	Favorites(ctx context.Context, userID string) ([]*model.Favorite, error)
}

type favoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	query := `INSERT INTO favorites (id, user_id, entity_type, entity_id, created_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := executor(ctx, r.db).ExecContext(ctx, query,
		favorite.ID,
		favorite.UserID,
		favorite.EntityType,
		favorite.EntityID,
		favorite.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrFavoriteExists
	}

	return err
}

func (r *favoriteRepository) Delete(ctx context.Context, userID string, entityType model.ContentType, entityID string) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3`
	result, err := executor(ctx, r.db).ExecContext(ctx, query, userID, entityType, entityID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}

func (r *favoriteRepository) Favorites(ctx context.Context, userID string) ([]*model.Favorite, error) {
	favorites := []*model.Favorite{}
	query := `SELECT id, user_id, entity_type, entity_id, created_at FROM favorites
	          WHERE user_id = $1 ORDER BY created_at DESC, id ASC`

	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &favorites, query, userID)
	if err != nil {
		return nil, err
	}

	return favorites, nil
}
