package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
	"github.com/lumenfide/lumen/internal/repository"
	"github.com/lumenfide/lumen/internal/validation"
)

// ContentListLimit caps list endpoints for prayers, saints, apparitions and parishes.
const ContentListLimit = 50

type ContentListQuery struct {
	Query      string
	Locale     string
	Category   string
	FeastMonth string
}

type ParishListQuery struct {
	City       string
	PostalCode string
	Country    string
}

// ContentService serves the reference content lists and detail lookups.
type ContentService struct {
	prayerRepository     repository.PrayerRepository
	saintRepository      repository.SaintRepository
	apparitionRepository repository.ApparitionRepository
	parishRepository     repository.ParishRepository
	now                  func() time.Time
}

func NewContentService(
	prayerRepository repository.PrayerRepository,
	saintRepository repository.SaintRepository,
	apparitionRepository repository.ApparitionRepository,
	parishRepository repository.ParishRepository,
) *ContentService {
	return &ContentService{
		prayerRepository:     prayerRepository,
		saintRepository:      saintRepository,
		apparitionRepository: apparitionRepository,
		parishRepository:     parishRepository,
		now:                  time.Now,
	}
}

func (s *ContentService) contentQuery(q ContentListQuery) (repository.ContentQuery, error) {
	locale, err := validation.NormalizeLocale(q.Locale)
	if err != nil {
		return repository.ContentQuery{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return repository.ContentQuery{
		Term:   strings.TrimSpace(q.Query),
		Locale: locale,
		Limit:  ContentListLimit,
	}, nil
}

func (s *ContentService) feastFilter(q ContentListQuery) (repository.FeastFilter, error) {
	cq, err := s.contentQuery(q)
	if err != nil {
		return repository.FeastFilter{}, err
	}

	filter := repository.FeastFilter{ContentQuery: cq}
	if strings.TrimSpace(q.FeastMonth) != "" {
		from, to, err := validation.FeastMonth(q.FeastMonth, s.now().UTC())
		if err != nil {
			return repository.FeastFilter{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		filter.FeastFrom = &from
		filter.FeastTo = &to
	}

	return filter, nil
}

func (s *ContentService) Prayers(ctx context.Context, q ContentListQuery) ([]*model.Prayer, error) {
	cq, err := s.contentQuery(q)
	if err != nil {
		return nil, err
	}

	return s.prayerRepository.Prayers(ctx, repository.PrayerFilter{
		ContentQuery: cq,
		Category:     strings.TrimSpace(q.Category),
	})
}

func (s *ContentService) Prayer(ctx context.Context, slug, locale string) (*model.Prayer, error) {
	display, err := displayLocale(locale)
	if err != nil {
		return nil, err
	}
	return s.prayerRepository.BySlug(ctx, slug, display)
}

func (s *ContentService) Saints(ctx context.Context, q ContentListQuery) ([]*model.Saint, error) {
	filter, err := s.feastFilter(q)
	if err != nil {
		return nil, err
	}
	return s.saintRepository.Saints(ctx, filter)
}

func (s *ContentService) Saint(ctx context.Context, slug, locale string) (*model.Saint, error) {
	display, err := displayLocale(locale)
	if err != nil {
		return nil, err
	}
	return s.saintRepository.BySlug(ctx, slug, display)
}

func (s *ContentService) Apparitions(ctx context.Context, q ContentListQuery) ([]*model.Apparition, error) {
	filter, err := s.feastFilter(q)
	if err != nil {
		return nil, err
	}
	return s.apparitionRepository.Apparitions(ctx, filter)
}

func (s *ContentService) Apparition(ctx context.Context, slug, locale string) (*model.Apparition, error) {
	display, err := displayLocale(locale)
	if err != nil {
		return nil, err
	}
	return s.apparitionRepository.BySlug(ctx, slug, display)
}

// Parishes filters by city, postal code and country. Coordinates are not used.
func (s *ContentService) Parishes(ctx context.Context, q ParishListQuery) ([]*model.Parish, error) {
	return s.parishRepository.Parishes(ctx, repository.ParishFilter{
		City:       strings.TrimSpace(q.City),
		PostalCode: strings.TrimSpace(q.PostalCode),
		Country:    strings.TrimSpace(q.Country),
		Limit:      ContentListLimit,
	})
}

func (s *ContentService) Parish(ctx context.Context, id string) (*model.Parish, error) {
	return s.parishRepository.ByID(ctx, id)
}
