package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/markdown"
	"github.com/lumenfide/lumen/internal/model"
	"github.com/lumenfide/lumen/internal/repository"
)

const maxJournalBody = 50000

type CreateJournalEntryRequest struct {
	Title        string `json:"title"`
	BodyMarkdown string `json:"body_markdown"`
	IsSaved      *bool  `json:"is_saved"`
	IsFavorite   *bool  `json:"is_favorite"`
}

func (r CreateJournalEntryRequest) Validate() error {
	return ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Title, ozzo.Required, ozzo.Length(1, 200)),
		ozzo.Field(&r.BodyMarkdown, ozzo.Required, ozzo.Length(1, maxJournalBody)),
	)
}

// UpdateJournalEntryRequest applies only the fields that are set.
type UpdateJournalEntryRequest struct {
	Title        *string `json:"title"`
	BodyMarkdown *string `json:"body_markdown"`
	IsSaved      *bool   `json:"is_saved"`
	IsFavorite   *bool   `json:"is_favorite"`
}

func (r UpdateJournalEntryRequest) Validate() error {
	return ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Title, ozzo.NilOrNotEmpty, ozzo.Length(1, 200)),
		ozzo.Field(&r.BodyMarkdown, ozzo.NilOrNotEmpty, ozzo.Length(1, maxJournalBody)),
	)
}

type JournalService struct {
	journalRepository repository.JournalRepository
	parser            *markdown.Parser
	now               func() time.Time
}

func NewJournalService(journalRepository repository.JournalRepository, parser *markdown.Parser) *JournalService {
	return &JournalService{
		journalRepository: journalRepository,
		parser:            parser,
		now:               time.Now,
	}
}

func (s *JournalService) render(body string) (string, error) {
	html, err := s.parser.Parse([]byte(body))
	if err != nil {
		return "", fmt.Errorf("failed to render journal body: %w", err)
	}
	return string(html), nil
}

func (s *JournalService) Create(ctx context.Context, userID string, req CreateJournalEntryRequest) (*model.JournalEntry, error) {
	req.Title = strings.TrimSpace(req.Title)
	err := req.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	html, err := s.render(req.BodyMarkdown)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	entry := &model.JournalEntry{
		ID:           uuid.New().String(),
		UserID:       userID,
		Title:        req.Title,
		BodyMarkdown: req.BodyMarkdown,
		BodyHTML:     html,
		IsSaved:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.IsSaved != nil {
		entry.IsSaved = *req.IsSaved
	}
	if req.IsFavorite != nil {
		entry.IsFavorite = *req.IsFavorite
	}

	err = s.journalRepository.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}

	slog.Info("journal entry created", "entry_id", entry.ID, "user_id", userID)
	return entry, nil
}

func (s *JournalService) ByID(ctx context.Context, userID, entryID string) (*model.JournalEntry, error) {
	return s.journalRepository.ByID(ctx, userID, entryID)
}

// Entries lists the user's entries, newest first.
func (s *JournalService) Entries(ctx context.Context, userID string) ([]*model.JournalEntry, error) {
	return s.journalRepository.Entries(ctx, userID)
}

func (s *JournalService) Update(ctx context.Context, userID, entryID string, req UpdateJournalEntryRequest) (*model.JournalEntry, error) {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	err := req.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	entry, err := s.journalRepository.ByID(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.BodyMarkdown != nil {
		entry.BodyMarkdown = *req.BodyMarkdown
		entry.BodyHTML, err = s.render(entry.BodyMarkdown)
		if err != nil {
			return nil, err
		}
	}
	if req.IsSaved != nil {
		entry.IsSaved = *req.IsSaved
	}
	if req.IsFavorite != nil {
		entry.IsFavorite = *req.IsFavorite
	}
	entry.UpdatedAt = s.now().UTC()

	err = s.journalRepository.Update(ctx, entry)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *JournalService) Delete(ctx context.Context, userID, entryID string) error {
	err := s.journalRepository.Delete(ctx, userID, entryID)
	if err != nil {
		return err
	}

	slog.Info("journal entry deleted", "entry_id", entryID, "user_id", userID)
	return nil
}
