package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ContentType tags every content item and favorite.
type ContentType string

const (
	ContentTypeGuide   ContentType = "guide"
	ContentTypeOurLady ContentType = "ourlady"
	ContentTypeParish  ContentType = "parish"
	ContentTypePrayer  ContentType = "prayer"
	ContentTypeSaint   ContentType = "saint"
)

// ContentTypes lists all content types in lexicographic order.
var ContentTypes = []ContentType{
	ContentTypeGuide,
	ContentTypeOurLady,
	ContentTypeParish,
	ContentTypePrayer,
	ContentTypeSaint,
}

// DefaultLocale is used to pick display records when no locale is requested.
const DefaultLocale = "en"

func (t ContentType) Valid() bool {
	for _, ct := range ContentTypes {
		if ct == t {
			return true
		}
	}
	return false
}

func (t ContentType) String() string {
	return string(t)
}

// Content is implemented by every searchable entity.
type Content interface {
	ContentType() ContentType
	ContentID() string
	ContentSlug() string
	// DisplayTitle is the localized title if loaded, else the base title, else the slug.
	DisplayTitle() string
}

// Checklist is an ordered list of task strings stored as a JSON array.
type Checklist []string

func (c Checklist) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(c))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *Checklist) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = Checklist{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("checklist: unsupported type %T", src)
	}

	if len(raw) == 0 {
		*c = Checklist{}
		return nil
	}

	var items []string
	err := json.Unmarshal(raw, &items)
	if err != nil {
		return fmt.Errorf("checklist: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	*c = items
	return nil
}

// MarshalJSON encodes a nil checklist as an empty array.
func (c Checklist) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(c))
}

// Clone returns a copy that never aliases the receiver.
func (c Checklist) Clone() Checklist {
	out := make(Checklist, len(c))
	copy(out, c)
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
