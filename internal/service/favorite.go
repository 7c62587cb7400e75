package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
	"github.com/lumenfide/lumen/internal/repository"
)

type existsFunc func(ctx context.Context, id string) (bool, error)

type FavoriteService struct {
	favoriteRepository repository.FavoriteRepository
	exists             map[model.ContentType]existsFunc
}

func NewFavoriteService(
	favoriteRepository repository.FavoriteRepository,
	prayerRepository repository.PrayerRepository,
	saintRepository repository.SaintRepository,
	apparitionRepository repository.ApparitionRepository,
	guideRepository repository.GuideRepository,
	parishRepository repository.ParishRepository,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepository: favoriteRepository,
		exists: map[model.ContentType]existsFunc{
			model.ContentTypeGuide:   guideRepository.Exists,
			model.ContentTypeOurLady: apparitionRepository.Exists,
			model.ContentTypeParish:  parishRepository.Exists,
			model.ContentTypePrayer:  prayerRepository.Exists,
			model.ContentTypeSaint:   saintRepository.Exists,
		},
	}
}

// Save favorites an existing content item. Saving the same item twice is a conflict.
func (s *FavoriteService) Save(ctx context.Context, userID string, entityType model.ContentType, entityID string) (*model.Favorite, error) {
	exists, ok := s.exists[entityType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown content type %q", domain.ErrValidation, entityType)
	}

	found, err := exists(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%s %w", entityType, domain.ErrNotFound)
	}

	favorite := &model.Favorite{
		ID:         uuid.New().String(),
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now().UTC(),
	}

	err = s.favoriteRepository.Create(ctx, favorite)
	if err != nil {
		return nil, err
	}

	slog.Info("favorite saved", "user_id", userID, "type", entityType, "entity_id", entityID)
	return favorite, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID string, entityType model.ContentType, entityID string) error {
	if !entityType.Valid() {
		return fmt.Errorf("%w: unknown content type %q", domain.ErrValidation, entityType)
	}
	return s.favoriteRepository.Delete(ctx, userID, entityType, entityID)
}

func (s *FavoriteService) Favorites(ctx context.Context, userID string) ([]*model.Favorite, error) {
	return s.favoriteRepository.Favorites(ctx, userID)
}
