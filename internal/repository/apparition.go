package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
)

var (
	ErrApparitionNotFound = fmt.Errorf("apparition %w", domain.ErrNotFound)
)

var apparitionTable = localizedTable{
	root:        "apparitions",
	rootColumns: "r.id, r.slug, r.name, r.feast_date, r.created_at",
	baseColumn:  "name",
	locales:     "apparition_locales",
	owner:       "apparition_id",
	textColumns: []string{"name", "biography_html"},
	localeCols:  "apparition_id, locale, name, biography_html",
}

type ApparitionRepository interface {
	Search(ctx context.Context, q ContentQuery) ([]*model.Apparition, error)
	Apparitions(ctx context.Context, filter FeastFilter) ([]*model.Apparition, error)
	BySlug(ctx context.Context, slug, locale string) (*model.Apparition, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, apparition *model.Apparition) error
}

type apparitionRepository struct {
	db *sqlx.DB
}

func NewApparitionRepository(db *sqlx.DB) ApparitionRepository {
	return &apparitionRepository{db: db}
}

func (r *apparitionRepository) Search(ctx context.Context, q ContentQuery) ([]*model.Apparition, error) {
	db := executor(ctx, r.db)

	apparitions, err := search[model.Apparition](ctx, db, apparitionTable, q)
	if err != nil {
		return nil, err
	}

	err = r.attachLocales(ctx, db, apparitions, q.DisplayLocale())
	if err != nil {
		return nil, err
	}
	return apparitions, nil
}

func (r *apparitionRepository) Apparitions(ctx context.Context, filter FeastFilter) ([]*model.Apparition, error) {
	db := executor(ctx, r.db)
	a := &args{}

	query := fmt.Sprintf(`SELECT %s FROM apparitions r WHERE %s
	          ORDER BY r.feast_date IS NULL, r.feast_date ASC, r.slug ASC LIMIT %s`,
		apparitionTable.rootColumns, filter.where(apparitionTable, a), a.add(filter.Limit))

	apparitions := []*model.Apparition{}
	err := sqlx.SelectContext(ctx, db, &apparitions, query, a.values...)
	if err != nil {
		return nil, err
	}

	err = r.attachLocales(ctx, db, apparitions, filter.DisplayLocale())
	if err != nil {
		return nil, err
	}
	return apparitions, nil
}

func (r *apparitionRepository) BySlug(ctx context.Context, slug, locale string) (*model.Apparition, error) {
	db := executor(ctx, r.db)

	apparition := &model.Apparition{}
	query := `SELECT id, slug, name, feast_date, created_at FROM apparitions WHERE slug = $1`
	err := sqlx.GetContext(ctx, db, apparition, query, slug)
	if err != nil {
		return nil, notFound(err, ErrApparitionNotFound)
	}

	err = r.attachLocales(ctx, db, []*model.Apparition{apparition}, locale)
	if err != nil {
		return nil, err
	}
	return apparition, nil
}

func (r *apparitionRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, executor(ctx, r.db), "apparitions", id)
}

func (r *apparitionRepository) Create(ctx context.Context, apparition *model.Apparition) error {
	db := executor(ctx, r.db)

	query := `INSERT INTO apparitions (id, slug, name, feast_date, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := db.ExecContext(ctx, query, apparition.ID, apparition.Slug, apparition.Name, apparition.FeastDate, apparition.CreatedAt)
	if err != nil {
		return conflict(err, "apparition")
	}

	for _, l := range apparition.Locales {
		query := `INSERT INTO apparition_locales (apparition_id, locale, name, biography_html) VALUES ($1, $2, $3, $4)`
		_, err := db.ExecContext(ctx, query, apparition.ID, l.Locale, l.Name, l.BiographyHTML)
		if err != nil {
			return fmt.Errorf("failed to create apparition locale %s: %w", l.Locale, conflict(err, "apparition locale"))
		}
	}
	return nil
}

func (r *apparitionRepository) attachLocales(ctx context.Context, db sqlx.QueryerContext, apparitions []*model.Apparition, locale string) error {
	rows, err := localesFor[model.ApparitionLocale](ctx, db, apparitionTable, ids(apparitions), locale)
	if err != nil {
		return err
	}

	byApparition := groupBy(rows, func(l model.ApparitionLocale) string { return l.ApparitionID })
	for _, ap := range apparitions {
		ap.Locales = byApparition[ap.ID]
		if ap.Locales == nil {
			ap.Locales = []model.ApparitionLocale{}
		}
	}
	return nil
}
