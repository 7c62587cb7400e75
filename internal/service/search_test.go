package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
	"github.com/lumenfide/lumen/internal/repository"
)

type failingSaints struct {
	repository.SaintRepository
}

func (failingSaints) Search(ctx context.Context, q repository.ContentQuery) ([]*model.Saint, error) {
	return nil, errors.New("connection reset")
}

func TestSearchValidation(t *testing.T) {
	svc := newFixture(t).searchService()

	tests := []struct {
		name  string
		query SearchQuery
	}{
		{"empty term", SearchQuery{Term: ""}},
		{"blank term", SearchQuery{Term: "   "}},
		{"unknown type", SearchQuery{Term: "mary", Type: "novena"}},
		{"malformed locale", SearchQuery{Term: "mary", Locale: "not a locale"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Search(context.Background(), tt.query)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Search() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestSearchMergesAndSorts(t *testing.T) {
	f := newFixture(t)
	f.prayer(t, "hail-mary", "Hail Mary")
	f.prayer(t, "magnificat", "Magnificat of Mary")
	f.saint(t, "mary-magdalene", "Mary Magdalene")
	f.apparition(t, "our-lady-of-fatima", "Our Lady of Fatima, Mary")
	f.parish(t, "st-mary-cork", "St Mary", "Cork")
	f.guide(t, "marian-consecration")

	got, err := f.searchService().Search(context.Background(), SearchQuery{Term: "MAR"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := []struct {
		typ   model.ContentType
		title string
	}{
		{model.ContentTypeGuide, "marian-consecration"},
		{model.ContentTypeOurLady, "Our Lady of Fatima, Mary"},
		{model.ContentTypeParish, "St Mary"},
		{model.ContentTypePrayer, "Hail Mary"},
		{model.ContentTypePrayer, "Magnificat of Mary"},
		{model.ContentTypeSaint, "Mary Magdalene"},
	}
	if got.Count != len(want) || len(got.Results) != len(want) {
		t.Fatalf("Search() count = %d, results = %d, want %d", got.Count, len(got.Results), len(want))
	}
	for i, w := range want {
		r := got.Results[i]
		if r.Type != w.typ || r.Title != w.title {
			t.Errorf("result %d = (%s, %q), want (%s, %q)", i, r.Type, r.Title, w.typ, w.title)
		}
	}

	again, err := f.searchService().Search(context.Background(), SearchQuery{Term: "mar"})
	if err != nil {
		t.Fatalf("Search() second call error = %v", err)
	}
	for i := range got.Results {
		if got.Results[i].Item.ContentID() != again.Results[i].Item.ContentID() {
			t.Fatalf("result %d differs between identical searches", i)
		}
	}
}

func TestSearchCapsEachCategory(t *testing.T) {
	f := newFixture(t)
	for i := range 12 {
		f.prayer(t, fmt.Sprintf("rosary-%02d", i), fmt.Sprintf("Rosary %02d", i))
	}
	f.saint(t, "dominic", "Dominic of the Rosary")

	got, err := f.searchService().Search(context.Background(), SearchQuery{Term: "rosary"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	perType := map[model.ContentType]int{}
	for _, r := range got.Results {
		perType[r.Type]++
	}
	if perType[model.ContentTypePrayer] != SearchCategoryLimit {
		t.Errorf("prayers = %d, want %d", perType[model.ContentTypePrayer], SearchCategoryLimit)
	}
	if perType[model.ContentTypeSaint] != 1 {
		t.Errorf("saints = %d, want 1", perType[model.ContentTypeSaint])
	}
	if got.Count != SearchCategoryLimit+1 {
		t.Errorf("Count = %d, want %d", got.Count, SearchCategoryLimit+1)
	}
}

func TestSearchTypeFilter(t *testing.T) {
	f := newFixture(t)
	f.prayer(t, "hail-mary", "Hail Mary")
	f.saint(t, "mary-magdalene", "Mary Magdalene")

	got, err := f.searchService().Search(context.Background(), SearchQuery{Term: "mary", Type: "Saint"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if got.Count != 1 || got.Results[0].Type != model.ContentTypeSaint {
		t.Errorf("Search(type=saint) = %+v, want only the saint", got.Results)
	}
}

func TestSearchLocale(t *testing.T) {
	f := newFixture(t)
	f.prayer(t, "hail-mary", "Hail Mary",
		model.PrayerLocale{Locale: "en", Title: "Hail Mary", BodyHTML: "<p>full of grace</p>"},
		model.PrayerLocale{Locale: "pt", Title: "Ave Maria", BodyHTML: "<p>cheia de graça</p>"},
	)
	f.saint(t, "therese", "Thérèse",
		model.SaintLocale{Locale: "fr", Name: "Thérèse de Lisieux", BiographyHTML: "<p>graça e rosas</p>"},
	)

	tests := []struct {
		name   string
		query  SearchQuery
		titles []string
	}{
		{"default display locale is en", SearchQuery{Term: "graça"}, []string{"Hail Mary", "Thérèse"}},
		{"locale narrows and selects display", SearchQuery{Term: "graça", Locale: "PT"}, []string{"Ave Maria", "Thérèse"}},
		{"record in locale that does not match excludes", SearchQuery{Term: "cheia", Locale: "en"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.searchService().Search(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(got.Results) != len(tt.titles) {
				t.Fatalf("Search() = %d results, want %d", len(got.Results), len(tt.titles))
			}
			for i, title := range tt.titles {
				if got.Results[i].Title != title {
					t.Errorf("result %d title = %q, want %q", i, got.Results[i].Title, title)
				}
			}
		})
	}
}

func TestSearchFailsWhenAnyCategoryFails(t *testing.T) {
	f := newFixture(t)
	f.prayer(t, "hail-mary", "Hail Mary")

	svc := NewSearchService(f.prayers, failingSaints{f.saints}, f.apparitions, f.guides, f.parishes)
	got, err := svc.Search(context.Background(), SearchQuery{Term: "mary"})
	if err == nil {
		t.Fatalf("Search() = %+v, want error", got)
	}
	if errors.Is(err, domain.ErrValidation) {
		t.Errorf("Search() error = %v, want a storage error", err)
	}

	// Filtering to a healthy category still works.
	got, err = svc.Search(context.Background(), SearchQuery{Term: "mary", Type: "prayer"})
	if err != nil {
		t.Fatalf("Search(type=prayer) error = %v", err)
	}
	if got.Count != 1 {
		t.Errorf("Search(type=prayer) count = %d, want 1", got.Count)
	}
}
