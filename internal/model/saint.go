package model

import "time"

type Saint struct {
	ID        string        `db:"id" json:"id"`
	Slug      string        `db:"slug" json:"slug"`
	Name      string        `db:"name" json:"name"`
	FeastDate *time.Time    `db:"feast_date" json:"feast_date,omitempty"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	Locales   []SaintLocale `db:"-" json:"locales"`
}

type SaintLocale struct {
	SaintID       string `db:"saint_id" json:"-"`
	Locale        string `db:"locale" json:"locale"`
	Name          string `db:"name" json:"name"`
	BiographyHTML string `db:"biography_html" json:"biography_html"`
}

func (s *Saint) ContentType() ContentType { return ContentTypeSaint }
func (s *Saint) ContentID() string        { return s.ID }
func (s *Saint) ContentSlug() string      { return s.Slug }

func (s *Saint) DisplayTitle() string {
	var localized string
	if len(s.Locales) > 0 {
		localized = s.Locales[0].Name
	}
	return firstNonEmpty(localized, s.Name, s.Slug)
}
