package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
)

var (
	ErrJournalEntryNotFound = fmt.Errorf("journal entry %w", domain.ErrNotFound)
)

const journalColumns = `id, user_id, title, body_markdown, body_html, is_saved, is_favorite, created_at, updated_at`

type JournalRepository interface {
	Create(ctx context.Context, entry *model.JournalEntry) error
	ByID(ctx context.Context, userID, entryID string) (*model.JournalEntry, error)
	Entries(ctx context.Context, userID string) ([]*model.JournalEntry, error)
	Update(ctx context.Context, entry *model.JournalEntry) error
	Delete(ctx context.Context, userID, entryID string) error
}

type journalRepository struct {
	db *sqlx.DB
}

func NewJournalRepository(db *sqlx.DB) JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) Create(ctx context.Context, entry *model.JournalEntry) error {
	query := `INSERT INTO journal_entries (` + journalColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := executor(ctx, r.db).ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Title,
		entry.BodyMarkdown,
		entry.BodyHTML,
		entry.IsSaved,
		entry.IsFavorite,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	return err
}

// ByID scopes the lookup to the owner, so another user's entry is not found.
func (r *journalRepository) ByID(ctx context.Context, userID, entryID string) (*model.JournalEntry, error) {
	entry := &model.JournalEntry{}
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE id = $1 AND user_id = $2`

	err := sqlx.GetContext(ctx, executor(ctx, r.db), entry, query, entryID, userID)
	if err != nil {
		return nil, notFound(err, ErrJournalEntryNotFound)
	}

	return entry, nil
}

func (r *journalRepository) Entries(ctx context.Context, userID string) ([]*model.JournalEntry, error) {
	entries := []*model.JournalEntry{}
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE user_id = $1 ORDER BY created_at DESC, id ASC`

	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &entries, query, userID)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *journalRepository) Update(ctx context.Context, entry *model.JournalEntry) error {
	query := `UPDATE journal_entries
	          SET title = $1, body_markdown = $2, body_html = $3, is_saved = $4, is_favorite = $5, updated_at = $6
	          WHERE id = $7 AND user_id = $8`

	result, err := executor(ctx, r.db).ExecContext(ctx, query,
		entry.Title,
		entry.BodyMarkdown,
		entry.BodyHTML,
		entry.IsSaved,
		entry.IsFavorite,
		entry.UpdatedAt,
		entry.ID,
		entry.UserID,
	)
	if err != nil {
		return err
	}

	return affected(result, ErrJournalEntryNotFound)
}

func (r *journalRepository) Delete(ctx context.Context, userID, entryID string) error {
	query := `DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`
	result, err := executor(ctx, r.db).ExecContext(ctx, query, entryID, userID)
	if err != nil {
		return err
	}

	return affected(result, ErrJournalEntryNotFound)
}
