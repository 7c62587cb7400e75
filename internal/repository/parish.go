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
	ErrParishNotFound = fmt.Errorf("parish %w", domain.ErrNotFound)
)

const parishColumns = `id, slug, name, address, city, region, country, postal_code,
	latitude, longitude, phone, website, created_at`

// ParishFilter lists parishes. City and Country match case-insensitively.
type ParishFilter struct {
	City       string
	PostalCode string
	Country    string
	Limit      int
}

type ParishRepository interface {
	Search(ctx context.Context, q ContentQuery) ([]*model.Parish, error)
	Parishes(ctx context.Context, filter ParishFilter) ([]*model.Parish, error)
	ByID(ctx context.Context, id string) (*model.Parish, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, parish *model.Parish) error
}

type parishRepository struct {
	db *sqlx.DB
}

func NewParishRepository(db *sqlx.DB) ParishRepository {
	return &parishRepository{db: db}
}

// Search ignores the locale: parishes carry no localized records.
func (r *parishRepository) Search(ctx context.Context, q ContentQuery) ([]*model.Parish, error) {
	a := &args{}
	pattern := containsPattern(q.Term)

	clauses := make([]string, 0, 4)
	for _, col := range []string{"name", "city", "region", "country"} {
		clauses = append(clauses, likeClause(col, a.add(pattern)))
	}

	query := fmt.Sprintf(`SELECT %s FROM parishes WHERE %s ORDER BY name ASC, id ASC LIMIT %s`,
		parishColumns, strings.Join(clauses, " OR "), a.add(q.Limit))

	parishes := []*model.Parish{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &parishes, query, a.values...)
	if err != nil {
		return nil, fmt.Errorf("search parishes: %w", err)
	}
	return parishes, nil
}

func (r *parishRepository) Parishes(ctx context.Context, filter ParishFilter) ([]*model.Parish, error) {
	a := &args{}

	conditions := []string{"1 = 1"}
	if filter.City != "" {
		conditions = append(conditions, "LOWER(city) = "+a.add(strings.ToLower(filter.City)))
	}
	if filter.PostalCode != "" {
		conditions = append(conditions, "postal_code = "+a.add(filter.PostalCode))
	}
	if filter.Country != "" {
		conditions = append(conditions, "LOWER(country) = "+a.add(strings.ToLower(filter.Country)))
	}

	query := fmt.Sprintf(`SELECT %s FROM parishes WHERE %s ORDER BY name ASC, id ASC LIMIT %s`,
		parishColumns, strings.Join(conditions, " AND "), a.add(filter.Limit))

	parishes := []*model.Parish{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &parishes, query, a.values...)
	if err != nil {
		return nil, err
	}
	return parishes, nil
}

func (r *parishRepository) ByID(ctx context.Context, id string) (*model.Parish, error) {
	parish := &model.Parish{}
	query := `SELECT ` + parishColumns + ` FROM parishes WHERE id = $1`

	err := sqlx.GetContext(ctx, executor(ctx, r.db), parish, query, id)
	if err != nil {
		return nil, notFound(err, ErrParishNotFound)
	}
	return parish, nil
}

func (r *parishRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, executor(ctx, r.db), "parishes", id)
}

func (r *parishRepository) Create(ctx context.Context, parish *model.Parish) error {
	query := `INSERT INTO parishes (id, slug, name, address, city, region, country, postal_code,
	          latitude, longitude, phone, website, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := executor(ctx, r.db).ExecContext(ctx, query,
		parish.ID,
		parish.Slug,
		parish.Name,
		parish.Address,
		parish.City,
		parish.Region,
		parish.Country,
		parish.PostalCode,
		parish.Latitude,
		parish.Longitude,
		parish.Phone,
		parish.Website,
		parish.CreatedAt,
	)
	return conflict(err, "parish")
}
