package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
)

var (
	ErrGuideNotFound = fmt.Errorf("guide %w", domain.ErrNotFound)
)

var guideTable = localizedTable{
	root:        "guides",
	rootColumns: "r.id, r.slug, r.title, r.created_at",
	baseColumn:  "title",
	locales:     "guide_locales",
	owner:       "guide_id",
	textColumns: []string{"title", "intro_html"},
	localeCols:  "guide_id, locale, title, intro_html",
}

var stepLocaleTable = localizedTable{
	locales:    "guide_step_locales",
	owner:      "step_id",
	localeCols: "step_id, locale, title, body_html",
}

type GuideRepository interface {
	Search(ctx context.Context, q ContentQuery) ([]*model.Guide, error)
	BySlug(ctx context.Context, slug, locale string) (*model.Guide, error)
	// WithSteps loads a guide and its steps in persisted order, without locales.
	WithSteps(ctx context.Context, id string) (*model.Guide, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, guide *model.Guide) error
}

type guideRepository struct {
	db *sqlx.DB
}

func NewGuideRepository(db *sqlx.DB) GuideRepository {
	return &guideRepository{db: db}
}

func (r *guideRepository) Search(ctx context.Context, q ContentQuery) ([]*model.Guide, error) {
	db := executor(ctx, r.db)

	guides, err := search[model.Guide](ctx, db, guideTable, q)
	if err != nil {
		return nil, err
	}

	err = r.attachLocales(ctx, db, guides, q.DisplayLocale())
	if err != nil {
		return nil, err
	}
	return guides, nil
}

func (r *guideRepository) BySlug(ctx context.Context, slug, locale string) (*model.Guide, error) {
	db := executor(ctx, r.db)

	guide := &model.Guide{}
	query := `SELECT id, slug, title, created_at FROM guides WHERE slug = $1`
	err := sqlx.GetContext(ctx, db, guide, query, slug)
	if err != nil {
		return nil, notFound(err, ErrGuideNotFound)
	}

	err = r.attachLocales(ctx, db, []*model.Guide{guide}, locale)
	if err != nil {
		return nil, err
	}

	guide.Steps, err = r.steps(ctx, db, guide.ID)
	if err != nil {
		return nil, err
	}

	stepIDs := make([]string, len(guide.Steps))
	for i, s := range guide.Steps {
		stepIDs[i] = s.ID
	}

	rows, err := localesFor[model.StepLocale](ctx, db, stepLocaleTable, stepIDs, locale)
	if err != nil {
		return nil, err
	}

	byStep := groupBy(rows, func(l model.StepLocale) string { return l.StepID })
	for _, s := range guide.Steps {
		s.Locales = byStep[s.ID]
		if s.Locales == nil {
			s.Locales = []model.StepLocale{}
		}
	}

	return guide, nil
}

func (r *guideRepository) WithSteps(ctx context.Context, id string) (*model.Guide, error) {
	db := executor(ctx, r.db)

	guide := &model.Guide{}
	query := `SELECT id, slug, title, created_at FROM guides WHERE id = $1`
	err := sqlx.GetContext(ctx, db, guide, query, id)
	if err != nil {
		return nil, notFound(err, ErrGuideNotFound)
	}

	guide.Steps, err = r.steps(ctx, db, guide.ID)
	if err != nil {
		return nil, err
	}
	return guide, nil
}

func (r *guideRepository) steps(ctx context.Context, db sqlx.QueryerContext, guideID string) ([]*model.Step, error) {
	steps := []*model.Step{}
	query := `SELECT id, guide_id, position, checklist_json FROM guide_steps
	          WHERE guide_id = $1 ORDER BY position ASC, id ASC`
	err := sqlx.SelectContext(ctx, db, &steps, query, guideID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guide steps: %w", err)
	}
	return steps, nil
}

func (r *guideRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, executor(ctx, r.db), "guides", id)
}

func (r *guideRepository) Create(ctx context.Context, guide *model.Guide) error {
	db := executor(ctx, r.db)

	query := `INSERT INTO guides (id, slug, title, created_at) VALUES ($1, $2, $3, $4)`
	_, err := db.ExecContext(ctx, query, guide.ID, guide.Slug, guide.Title, guide.CreatedAt)
	if err != nil {
		return conflict(err, "guide")
	}

	for _, l := range guide.Locales {
		query := `INSERT INTO guide_locales (guide_id, locale, title, intro_html) VALUES ($1, $2, $3, $4)`
		_, err := db.ExecContext(ctx, query, guide.ID, l.Locale, l.Title, l.IntroHTML)
		if err != nil {
			return fmt.Errorf("failed to create guide locale %s: %w", l.Locale, conflict(err, "guide locale"))
		}
	}

	for _, s := range guide.Steps {
		s.GuideID = guide.ID
		query := `INSERT INTO guide_steps (id, guide_id, position, checklist_json) VALUES ($1, $2, $3, $4)`
		_, err := db.ExecContext(ctx, query, s.ID, s.GuideID, s.Position, s.Checklist)
		if err != nil {
			return fmt.Errorf("failed to create guide step %d: %w", s.Position, err)
		}

		for _, l := range s.Locales {
			query := `INSERT INTO guide_step_locales (step_id, locale, title, body_html) VALUES ($1, $2, $3, $4)`
			_, err := db.ExecContext(ctx, query, s.ID, l.Locale, l.Title, l.BodyHTML)
			if err != nil {
				return fmt.Errorf("failed to create step locale %s: %w", l.Locale, err)
			}
		}
	}
	return nil
}

func (r *guideRepository) attachLocales(ctx context.Context, db sqlx.QueryerContext, guides []*model.Guide, locale string) error {
	rows, err := localesFor[model.GuideLocale](ctx, db, guideTable, ids(guides), locale)
	if err != nil {
		return err
	}

	byGuide := groupBy(rows, func(l model.GuideLocale) string { return l.GuideID })
	for _, g := range guides {
		g.Locales = byGuide[g.ID]
		if g.Locales == nil {
			g.Locales = []model.GuideLocale{}
		}
	}
	return nil
}
