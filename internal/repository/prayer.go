package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
)

var (
	ErrPrayerNotFound = fmt.Errorf("prayer %w", domain.ErrNotFound)
)

var prayerTable = localizedTable{
	root:        "prayers",
	rootColumns: "r.id, r.slug, r.title, r.category_id, r.created_at",
	baseColumn:  "title",
	locales:     "prayer_locales",
	owner:       "prayer_id",
	textColumns: []string{"title", "body_html"},
	localeCols:  "prayer_id, locale, title, body_html",
}

// PrayerFilter lists prayers. Term and Category are optional.
type PrayerFilter struct {
	ContentQuery
	Category string
}

type PrayerRepository interface {
	Search(ctx context.Context, q ContentQuery) ([]*model.Prayer, error)
	Prayers(ctx context.Context, filter PrayerFilter) ([]*model.Prayer, error)
	BySlug(ctx context.Context, slug, locale string) (*model.Prayer, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, prayer *model.Prayer) error
	UpsertCategory(ctx context.Context, category *model.PrayerCategory) error
}

type prayerRepository struct {
	db *sqlx.DB
}

func NewPrayerRepository(db *sqlx.DB) PrayerRepository {
	return &prayerRepository{db: db}
}

func (r *prayerRepository) Search(ctx context.Context, q ContentQuery) ([]*model.Prayer, error) {
	db := executor(ctx, r.db)

	prayers, err := search[model.Prayer](ctx, db, prayerTable, q)
	if err != nil {
		return nil, err
	}

	err = r.attachLocales(ctx, db, prayers, q.DisplayLocale())
	if err != nil {
		return nil, err
	}
	return prayers, nil
}

func (r *prayerRepository) Prayers(ctx context.Context, filter PrayerFilter) ([]*model.Prayer, error) {
	db := executor(ctx, r.db)
	a := &args{}

	conditions := []string{"1 = 1"}
	if filter.Term != "" {
		conditions = append(conditions, prayerTable.matchClause(filter.Term, filter.Locale, a))
	}
	if filter.Category != "" {
		conditions = append(conditions, "r.category_id IN (SELECT id FROM prayer_categories WHERE slug = "+a.add(filter.Category)+")")
	}

	query := fmt.Sprintf(`SELECT %s FROM prayers r WHERE %s ORDER BY r.created_at DESC, r.id ASC LIMIT %s`,
		prayerTable.rootColumns, strings.Join(conditions, " AND "), a.add(filter.Limit))

	prayers := []*model.Prayer{}
	err := sqlx.SelectContext(ctx, db, &prayers, query, a.values...)
	if err != nil {
		return nil, err
	}

	err = r.attachLocales(ctx, db, prayers, filter.DisplayLocale())
	if err != nil {
		return nil, err
	}
	return prayers, nil
}

func (r *prayerRepository) BySlug(ctx context.Context, slug, locale string) (*model.Prayer, error) {
	db := executor(ctx, r.db)

	prayer := &model.Prayer{}
	query := `SELECT id, slug, title, category_id, created_at FROM prayers WHERE slug = $1`
	err := sqlx.GetContext(ctx, db, prayer, query, slug)
	if err != nil {
		return nil, notFound(err, ErrPrayerNotFound)
	}

	err = r.attachLocales(ctx, db, []*model.Prayer{prayer}, locale)
	if err != nil {
		return nil, err
	}
	return prayer, nil
}

func (r *prayerRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, executor(ctx, r.db), "prayers", id)
}

func (r *prayerRepository) Create(ctx context.Context, prayer *model.Prayer) error {
	db := executor(ctx, r.db)

	query := `INSERT INTO prayers (id, slug, title, category_id, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := db.ExecContext(ctx, query, prayer.ID, prayer.Slug, prayer.Title, prayer.CategoryID, prayer.CreatedAt)
	if err != nil {
		return conflict(err, "prayer")
	}

	for _, l := range prayer.Locales {
		query := `INSERT INTO prayer_locales (prayer_id, locale, title, body_html) VALUES ($1, $2, $3, $4)`
		_, err := db.ExecContext(ctx, query, prayer.ID, l.Locale, l.Title, l.BodyHTML)
		if err != nil {
			return fmt.Errorf("failed to create prayer locale %s: %w", l.Locale, conflict(err, "prayer locale"))
		}
	}
	return nil
}

// UpsertCategory inserts the category if its slug is new and fills in the id.
func (r *prayerRepository) UpsertCategory(ctx context.Context, category *model.PrayerCategory) error {
	db := executor(ctx, r.db)

	query := `INSERT INTO prayer_categories (id, slug, name) VALUES ($1, $2, $3) ON CONFLICT (slug) DO NOTHING`
	_, err := db.ExecContext(ctx, query, category.ID, category.Slug, category.Name)
	if err != nil {
		return err
	}

	return sqlx.GetContext(ctx, db, &category.ID, `SELECT id FROM prayer_categories WHERE slug = $1`, category.Slug)
}

func (r *prayerRepository) attachLocales(ctx context.Context, db sqlx.QueryerContext, prayers []*model.Prayer, locale string) error {
	rows, err := localesFor[model.PrayerLocale](ctx, db, prayerTable, ids(prayers), locale)
	if err != nil {
		return err
	}

	byPrayer := groupBy(rows, func(l model.PrayerLocale) string { return l.PrayerID })
	for _, p := range prayers {
		p.Locales = byPrayer[p.ID]
		if p.Locales == nil {
			p.Locales = []model.PrayerLocale{}
		}
	}
	return nil
}
