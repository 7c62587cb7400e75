package model

import "time"

type Prayer struct {
	ID         string         `db:"id" json:"id"`
	Slug       string         `db:"slug" json:"slug"`
	Title      string         `db:"title" json:"title"`
	CategoryID *string        `db:"category_id" json:"category_id,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	Locales    []PrayerLocale `db:"-" json:"locales"`
}

type PrayerLocale struct {
	PrayerID string `db:"prayer_id" json:"-"`
	Locale   string `db:"locale" json:"locale"`
	Title    string `db:"title" json:"title"`
	BodyHTML string `db:"body_html" json:"body_html"`
}

func (p *Prayer) ContentType() ContentType { return ContentTypePrayer }
func (p *Prayer) ContentID() string        { return p.ID }
func (p *Prayer) ContentSlug() string      { return p.Slug }

func (p *Prayer) DisplayTitle() string {
	var localized string
	if len(p.Locales) > 0 {
		localized = p.Locales[0].Title
	}
	return firstNonEmpty(localized, p.Title, p.Slug)
}

type PrayerCategory struct {
	ID   string `db:"id" json:"id"`
	Slug string `db:"slug" json:"slug"`
	Name string `db:"name" json:"name"`
}
