package model

import "time"

// Apparition is a Marian apparition or devotion, tagged "ourlady".
type Apparition struct {
	ID        string             `db:"id" json:"id"`
	Slug      string             `db:"slug" json:"slug"`
	Name      string             `db:"name" json:"name"`
	FeastDate *time.Time         `db:"feast_date" json:"feast_date,omitempty"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	Locales   []ApparitionLocale `db:"-" json:"locales"`
}

type ApparitionLocale struct {
	ApparitionID  string `db:"apparition_id" json:"-"`
	Locale        string `db:"locale" json:"locale"`
	Name          string `db:"name" json:"name"`
	BiographyHTML string `db:"biography_html" json:"biography_html"`
}

func (a *Apparition) ContentType() ContentType { return ContentTypeOurLady }
func (a *Apparition) ContentID() string        { return a.ID }
func (a *Apparition) ContentSlug() string      { return a.Slug }

func (a *Apparition) DisplayTitle() string {
	var localized string
	if len(a.Locales) > 0 {
		localized = a.Locales[0].Name
	}
	return firstNonEmpty(localized, a.Name, a.Slug)
}
