package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lumenfide/lumen/internal/markdown"
	"github.com/lumenfide/lumen/internal/model"
	"github.com/lumenfide/lumen/internal/repository"
	"github.com/lumenfide/lumen/internal/testutil"
)

var testNow = time.Date(2025, 4, 20, 9, 30, 0, 0, time.UTC)

type fixture struct {
	db          *sqlx.DB
	tx          repository.TxManager
	prayers     repository.PrayerRepository
	saints      repository.SaintRepository
	apparitions repository.ApparitionRepository
	guides      repository.GuideRepository
	parishes    repository.ParishRepository
	goals       repository.GoalRepository
	days        repository.GoalDayRepository
	favorites   repository.FavoriteRepository
	journal     repository.JournalRepository
	milestones  repository.MilestoneRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	return &fixture{
		db:          db,
		tx:          repository.NewTxManager(db),
		prayers:     repository.NewPrayerRepository(db),
		saints:      repository.NewSaintRepository(db),
		apparitions: repository.NewApparitionRepository(db),
		guides:      repository.NewGuideRepository(db),
		parishes:    repository.NewParishRepository(db),
		goals:       repository.NewGoalRepository(db),
		days:        repository.NewGoalDayRepository(db),
		favorites:   repository.NewFavoriteRepository(db),
		journal:     repository.NewJournalRepository(db),
		milestones:  repository.NewMilestoneRepository(db),
	}
}

func (f *fixture) searchService() *SearchService {
	return NewSearchService(f.prayers, f.saints, f.apparitions, f.guides, f.parishes)
}

func (f *fixture) goalService() *GoalService {
	s := NewGoalService(f.tx, f.goals, f.days)
	s.now = func() time.Time { return testNow }
	return s
}

func (f *fixture) journalService() *JournalService {
	s := NewJournalService(f.journal, markdown.NewParser())
	s.now = func() time.Time { return testNow }
	return s
}

func (f *fixture) milestoneService() *MilestoneService {
	s := NewMilestoneService(f.milestones)
	s.now = func() time.Time { return testNow }
	return s
}

func (f *fixture) guideService(goals *GoalService) *GuideService {
	return NewGuideService(f.tx, f.guides, goals)
}

func (f *fixture) prayer(t *testing.T, slug, title string, locales ...model.PrayerLocale) *model.Prayer {
	t.Helper()
	p := &model.Prayer{ID: uuid.New().String(), Slug: slug, Title: title, CreatedAt: testNow, Locales: locales}
	err := f.prayers.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("failed to create prayer %s: %v", slug, err)
	}
	return p
}

func (f *fixture) saint(t *testing.T, slug, name string, locales ...model.SaintLocale) *model.Saint {
	t.Helper()
	s := &model.Saint{ID: uuid.New().String(), Slug: slug, Name: name, CreatedAt: testNow, Locales: locales}
	err := f.saints.Create(context.Background(), s)
	if err != nil {
		t.Fatalf("failed to create saint %s: %v", slug, err)
	}
	return s
}

func (f *fixture) apparition(t *testing.T, slug, name string) *model.Apparition {
	t.Helper()
	a := &model.Apparition{ID: uuid.New().String(), Slug: slug, Name: name, CreatedAt: testNow}
	err := f.apparitions.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("failed to create apparition %s: %v", slug, err)
	}
	return a
}

func (f *fixture) parish(t *testing.T, slug, name, city string) *model.Parish {
	t.Helper()
	p := &model.Parish{ID: uuid.New().String(), Slug: slug, Name: name, City: city, CreatedAt: testNow}
	err := f.parishes.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("failed to create parish %s: %v", slug, err)
	}
	return p
}

// guide creates a guide with one step per checklist, positions from 1.
func (f *fixture) guide(t *testing.T, slug string, checklists ...model.Checklist) *model.Guide {
	t.Helper()
	g := &model.Guide{
		ID:        uuid.New().String(),
		Slug:      slug,
		CreatedAt: testNow,
		Locales:   []model.GuideLocale{{Locale: "en", Title: slug}},
	}
	for i, checklist := range checklists {
		g.Steps = append(g.Steps, &model.Step{
			ID:        uuid.New().String(),
			Position:  i + 1,
			Checklist: checklist,
		})
	}
	err := f.guides.Create(context.Background(), g)
	if err != nil {
		t.Fatalf("failed to create guide %s: %v", slug, err)
	}
	return g
}

func (f *fixture) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	err := f.db.Get(&n, "SELECT COUNT(*) FROM "+table)
	if err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
