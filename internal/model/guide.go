package model

import "time"

type Guide struct {
	ID        string        `db:"id" json:"id"`
	Slug      string        `db:"slug" json:"slug"`
	Title     string        `db:"title" json:"title"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	Locales   []GuideLocale `db:"-" json:"locales"`
	Steps     []*Step       `db:"-" json:"steps,omitempty"`
}

type GuideLocale struct {
	GuideID   string `db:"guide_id" json:"-"`
	Locale    string `db:"locale" json:"locale"`
	Title     string `db:"title" json:"title"`
	IntroHTML string `db:"intro_html" json:"intro_html"`
}

// Step belongs to exactly one guide. Position defines the persisted order.
type Step struct {
	ID        string       `db:"id" json:"id"`
	GuideID   string       `db:"guide_id" json:"guide_id"`
	Position  int          `db:"position" json:"position"`
	Checklist Checklist    `db:"checklist_json" json:"checklist"`
	Locales   []StepLocale `db:"-" json:"locales"`
}

type StepLocale struct {
	StepID   string `db:"step_id" json:"-"`
	Locale   string `db:"locale" json:"locale"`
	Title    string `db:"title" json:"title"`
	BodyHTML string `db:"body_html" json:"body_html"`
}

func (g *Guide) ContentType() ContentType { return ContentTypeGuide }
func (g *Guide) ContentID() string        { return g.ID }
func (g *Guide) ContentSlug() string      { return g.Slug }

func (g *Guide) DisplayTitle() string {
	var localized string
	if len(g.Locales) > 0 {
		localized = g.Locales[0].Title
	}
	return firstNonEmpty(localized, g.Title, g.Slug)
}
