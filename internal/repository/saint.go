package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
)

var (
	ErrSaintNotFound = fmt.Errorf("saint %w", domain.ErrNotFound)
)

var saintTable = localizedTable{
	root:        "saints",
	rootColumns: "r.id, r.slug, r.name, r.feast_date, r.created_at",
	baseColumn:  "name",
	locales:     "saint_locales",
	owner:       "saint_id",
	textColumns: []string{"name", "biography_html"},
	localeCols:  "saint_id, locale, name, biography_html",
}

// FeastFilter lists feast-dated content. FeastFrom is inclusive, FeastTo exclusive.
type FeastFilter struct {
	ContentQuery
	FeastFrom *time.Time
	FeastTo   *time.Time
}

// where builds the list conditions shared by saints and apparitions.
func (f FeastFilter) where(t localizedTable, a *args) string {
	conditions := []string{"1 = 1"}
	if f.Term != "" {
		conditions = append(conditions, t.matchClause(f.Term, f.Locale, a))
	}
	if f.FeastFrom != nil {
		conditions = append(conditions, "r.feast_date >= "+a.add(*f.FeastFrom))
	}
	if f.FeastTo != nil {
		conditions = append(conditions, "r.feast_date < "+a.add(*f.FeastTo))
	}
	return strings.Join(conditions, " AND ")
}

type SaintRepository interface {
	Search(ctx context.Context, q ContentQuery) ([]*model.Saint, error)
	Saints(ctx context.Context, filter FeastFilter) ([]*model.Saint, error)
	BySlug(ctx context.Context, slug, locale string) (*model.Saint, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, saint *model.Saint) error
}

type saintRepository struct {
	db *sqlx.DB
}

func NewSaintRepository(db *sqlx.DB) SaintRepository {
	return &saintRepository{db: db}
}

func (r *saintRepository) Search(ctx context.Context, q ContentQuery) ([]*model.Saint, error) {
	db := executor(ctx, r.db)

	saints, err := search[model.Saint](ctx, db, saintTable, q)
	if err != nil {
		return nil, err
	}

	err = r.attachLocales(ctx, db, saints, q.DisplayLocale())
	if err != nil {
		return nil, err
	}
	return saints, nil
}

func (r *saintRepository) Saints(ctx context.Context, filter FeastFilter) ([]*model.Saint, error) {
	db := executor(ctx, r.db)
	a := &args{}

	query := fmt.Sprintf(`SELECT %s FROM saints r WHERE %s
	          ORDER BY r.feast_date IS NULL, r.feast_date ASC, r.slug ASC LIMIT %s`,
		saintTable.rootColumns, filter.where(saintTable, a), a.add(filter.Limit))

	saints := []*model.Saint{}
	err := sqlx.SelectContext(ctx, db, &saints, query, a.values...)
	if err != nil {
		return nil, err
	}

	err = r.attachLocales(ctx, db, saints, filter.DisplayLocale())
	if err != nil {
		return nil, err
	}
	return saints, nil
}

func (r *saintRepository) BySlug(ctx context.Context, slug, locale string) (*model.Saint, error) {
	db := executor(ctx, r.db)

	saint := &model.Saint{}
	query := `SELECT id, slug, name, feast_date, created_at FROM saints WHERE slug = $1`
	err := sqlx.GetContext(ctx, db, saint, query, slug)
	if err != nil {
		return nil, notFound(err, ErrSaintNotFound)
	}

	err = r.attachLocales(ctx, db, []*model.Saint{saint}, locale)
	if err != nil {
		return nil, err
	}
	return saint, nil
}

func (r *saintRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, executor(ctx, r.db), "saints", id)
}

func (r *saintRepository) Create(ctx context.Context, saint *model.Saint) error {
	db := executor(ctx, r.db)

	query := `INSERT INTO saints (id, slug, name, feast_date, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := db.ExecContext(ctx, query, saint.ID, saint.Slug, saint.Name, saint.FeastDate, saint.CreatedAt)
	if err != nil {
		return conflict(err, "saint")
	}

	for _, l := range saint.Locales {
		query := `INSERT INTO saint_locales (saint_id, locale, name, biography_html) VALUES ($1, $2, $3, $4)`
		_, err := db.ExecContext(ctx, query, saint.ID, l.Locale, l.Name, l.BiographyHTML)
		if err != nil {
			return fmt.Errorf("failed to create saint locale %s: %w", l.Locale, conflict(err, "saint locale"))
		}
	}
	return nil
}

func (r *saintRepository) attachLocales(ctx context.Context, db sqlx.QueryerContext, saints []*model.Saint, locale string) error {
	rows, err := localesFor[model.SaintLocale](ctx, db, saintTable, ids(saints), locale)
	if err != nil {
		return err
	}

	bySaint := groupBy(rows, func(l model.SaintLocale) string { return l.SaintID })
	for _, s := range saints {
		s.Locales = bySaint[s.ID]
		if s.Locales == nil {
			s.Locales = []model.SaintLocale{}
		}
	}
	return nil
}
