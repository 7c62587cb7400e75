package service

import (
	"context"
	"fmt"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
	"github.com/lumenfide/lumen/internal/repository"
	"github.com/lumenfide/lumen/internal/validation"
	"golang.org/x/sync/errgroup"
)

// SearchCategoryLimit caps the number of results taken from each category.
const SearchCategoryLimit = 10

type SearchQuery struct {
	Term   string
	Type   string
	Locale string
}

func (q SearchQuery) Validate() error {
	return ozzo.ValidateStruct(&q,
		ozzo.Field(&q.Term, ozzo.Required.Error("search term is required")),
		ozzo.Field(&q.Type, ozzo.In(contentTypeValues()...).Error("unknown content type")),
		ozzo.Field(&q.Locale, validation.Locale),
	)
}

func contentTypeValues() []any {
	values := make([]any, len(model.ContentTypes))
	for i, t := range model.ContentTypes {
		values[i] = string(t)
	}
	return values
}

type categorySearch func(ctx context.Context, q repository.ContentQuery) ([]model.Content, error)

func contents[C model.Content](search func(context.Context, repository.ContentQuery) ([]C, error)) categorySearch {
	return func(ctx context.Context, q repository.ContentQuery) ([]model.Content, error) {
		items, err := search(ctx, q)
		if err != nil {
			return nil, err
		}

		out := make([]model.Content, len(items))
		for i, item := range items {
			out[i] = item
		}
		return out, nil
	}
}

type SearchService struct {
	categories map[model.ContentType]categorySearch
}

func NewSearchService(
	prayerRepository repository.PrayerRepository,
	saintRepository repository.SaintRepository,
	apparitionRepository repository.ApparitionRepository,
	guideRepository repository.GuideRepository,
	parishRepository repository.ParishRepository,
) *SearchService {
	return &SearchService{
		categories: map[model.ContentType]categorySearch{
			model.ContentTypeGuide:   contents(guideRepository.Search),
			model.ContentTypeOurLady: contents(apparitionRepository.Search),
			model.ContentTypeParish:  contents(parishRepository.Search),
			model.ContentTypePrayer:  contents(prayerRepository.Search),
			model.ContentTypeSaint:   contents(saintRepository.Search),
		},
	}
}

// Search queries every selected category concurrently and merges the results.
// A failure in any category fails the whole search.
func (s *SearchService) Search(ctx context.Context, q SearchQuery) (*model.SearchResponse, error) {
	q.Term = strings.TrimSpace(q.Term)
	q.Type = strings.ToLower(strings.TrimSpace(q.Type))

	err := q.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	locale, err := validation.NormalizeLocale(q.Locale)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	types := model.ContentTypes
	if q.Type != "" {
		types = []model.ContentType{model.ContentType(q.Type)}
	}

	query := repository.ContentQuery{
		Term:   q.Term,
		Locale: locale,
		Limit:  SearchCategoryLimit,
	}

	found := make([][]model.Content, len(types))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range types {
		search := s.categories[t]
		g.Go(func() error {
			items, err := search(gctx, query)
			if err != nil {
				return fmt.Errorf("search %s: %w", t, err)
			}
			if len(items) > SearchCategoryLimit {
				items = items[:SearchCategoryLimit]
			}
			found[i] = items
			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return nil, err
	}

	results := []model.SearchResult{}
	for _, items := range found {
		for _, item := range items {
			results = append(results, model.NewSearchResult(item))
		}
	}
	model.SortSearchResults(results)

	return &model.SearchResponse{
		Count:   len(results),
		Results: results,
	}, nil
}
