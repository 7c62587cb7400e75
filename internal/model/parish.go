package model

import "time"

// Parish has no localized records; its name is the display title.
type Parish struct {
	ID         string    `db:"id" json:"id"`
	Slug       string    `db:"slug" json:"slug"`
	Name       string    `db:"name" json:"name"`
	Address    string    `db:"address" json:"address"`
	City       string    `db:"city" json:"city"`
	Region     string    `db:"region" json:"region"`
	Country    string    `db:"country" json:"country"`
	PostalCode string    `db:"postal_code" json:"postal_code"`
	Latitude   *float64  `db:"latitude" json:"latitude,omitempty"`
	Longitude  *float64  `db:"longitude" json:"longitude,omitempty"`
	Phone      string    `db:"phone" json:"phone,omitempty"`
	Website    string    `db:"website" json:"website,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

func (p *Parish) ContentType() ContentType { return ContentTypeParish }
func (p *Parish) ContentID() string        { return p.ID }
func (p *Parish) ContentSlug() string      { return p.Slug }

func (p *Parish) DisplayTitle() string {
	return firstNonEmpty(p.Name, p.Slug)
}
