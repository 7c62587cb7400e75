package model

import "time"

type Favorite struct {
	ID         string      `db:"id" json:"id"`
	UserID     string      `db:"user_id" json:"user_id"`
	EntityType ContentType `db:"entity_type" json:"entity_type"`
	EntityID   string      `db:"entity_id" json:"entity_id"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
}
