package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
)

// ContentQuery selects content items by a free-text term.
// An empty Locale matches localized records in any locale.
type ContentQuery struct {
	Term   string
	Locale string
	Limit  int
}

// DisplayLocale is the locale whose records are attached for display.
func (q ContentQuery) DisplayLocale() string {
	if q.Locale == "" {
		return model.DefaultLocale
	}
	return q.Locale
}

// args numbers placeholders as they are added, so no $N is bound twice.
type args struct {
	values []any
}

func (a *args) add(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

func (a *args) list(values []string) string {
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = a.add(v)
	}
	return strings.Join(placeholders, ", ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive substring LIKE pattern.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

func likeClause(column, placeholder string) string {
	return fmt.Sprintf(`LOWER(%s) LIKE %s ESCAPE '\'`, column, placeholder)
}

// localizedTable describes a root content table and its per-locale table.
type localizedTable struct {
	root        string
	rootColumns string
	baseColumn  string
	locales     string
	owner       string
	textColumns []string
	localeCols  string
}

// matchClause matches items whose slug or base title contains the term, or
// whose localized text does. With a locale, only that locale's record counts
// unless the item has no record in it, then any locale counts.
func (t localizedTable) matchClause(term, locale string, a *args) string {
	pattern := containsPattern(term)

	clauses := []string{
		likeClause("r.slug", a.add(pattern)),
		likeClause("r."+t.baseColumn, a.add(pattern)),
	}

	text := make([]string, len(t.textColumns))
	for i, col := range t.textColumns {
		text[i] = likeClause("l."+col, a.add(pattern))
	}

	localized := fmt.Sprintf("EXISTS (SELECT 1 FROM %s l WHERE l.%s = r.id AND (%s)",
		t.locales, t.owner, strings.Join(text, " OR "))
	if locale != "" {
		localized += fmt.Sprintf(" AND (l.locale = %s OR NOT EXISTS (SELECT 1 FROM %s l2 WHERE l2.%s = r.id AND l2.locale = %s))",
			a.add(locale), t.locales, t.owner, a.add(locale))
	}
	localized += ")"

	clauses = append(clauses, localized)
	return "(" + strings.Join(clauses, " OR ") + ")"
}

// search returns up to q.Limit roots matching q, ordered by slug then id.
func search[T any](ctx context.Context, db sqlx.QueryerContext, t localizedTable, q ContentQuery) ([]*T, error) {
	a := &args{}
	where := t.matchClause(q.Term, q.Locale, a)
	query := fmt.Sprintf(`SELECT %s FROM %s r WHERE %s ORDER BY r.slug ASC, r.id ASC LIMIT %s`,
		t.rootColumns, t.root, where, a.add(q.Limit))

	var rows []*T
	err := sqlx.SelectContext(ctx, db, &rows, query, a.values...)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", t.root, err)
	}
	return rows, nil
}

// localesFor loads the records of one locale for the given owners.
func localesFor[L any](ctx context.Context, db sqlx.QueryerContext, t localizedTable, ownerIDs []string, locale string) ([]L, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}

	a := &args{}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s IN (%s) AND locale = %s`,
		t.localeCols, t.locales, t.owner, a.list(ownerIDs), a.add(locale))

	var rows []L
	err := sqlx.SelectContext(ctx, db, &rows, query, a.values...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", t.locales, err)
	}
	return rows, nil
}

// groupBy indexes rows by owner id, preserving order within each owner.
func groupBy[L any](rows []L, owner func(L) string) map[string][]L {
	out := make(map[string][]L, len(rows))
	for _, row := range rows {
		out[owner(row)] = append(out[owner(row)], row)
	}
	return out
}

func ids[C model.Content](items []C) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ContentID()
	}
	return out
}

// notFound maps sql.ErrNoRows to the given sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}

// isUniqueViolation matches both SQLite and Postgres unique constraint errors.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func conflict(err error, what string) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%s %w", what, domain.ErrConflict)
	}
	return err
}

func exists(ctx context.Context, db sqlx.QueryerContext, table, id string) (bool, error) {
	var found bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table)
	err := sqlx.GetContext(ctx, db, &found, query, id)
	if err != nil {
		return false, err
	}
	return found, nil
}

// affected maps an update or delete that touched no rows to sentinel.
func affected(result sql.Result, sentinel error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sentinel
	}
	return nil
}
