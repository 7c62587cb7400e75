package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestChecklistStorage(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want []string
	}{
		{"null", nil, []string{}},
		{"empty string", "", []string{}},
		{"json null", "null", []string{}},
		{"text", `["Pray","Fast"]`, []string{"Pray", "Fast"}},
		{"bytes", []byte(`["Give alms"]`), []string{"Give alms"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Checklist
			err := c.Scan(tt.src)
			if err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if c == nil {
				t.Fatal("Scan() left a nil checklist")
			}
			if len(c) != len(tt.want) {
				t.Fatalf("Scan() = %v, want %v", c, tt.want)
			}
			for i := range c {
				if c[i] != tt.want[i] {
					t.Errorf("item %d = %q, want %q", i, c[i], tt.want[i])
				}
			}
		})
	}

	var bad Checklist
	if err := bad.Scan(42); err == nil {
		t.Error("Scan(int) error = nil")
	}

	var empty Checklist
	v, err := empty.Value()
	if err != nil || v != "[]" {
		t.Errorf("nil Value() = %v, %v, want []", v, err)
	}

	b, err := json.Marshal(struct {
		Checklist Checklist `json:"checklist"`
	}{})
	if err != nil || string(b) != `{"checklist":[]}` {
		t.Errorf("json = %s, %v", b, err)
	}
}

func TestChecklistClone(t *testing.T) {
	original := Checklist{"Pray"}
	clone := original.Clone()
	clone[0] = "Fast"
	if original[0] != "Pray" {
		t.Error("Clone() aliases the original")
	}
	if Checklist(nil).Clone() == nil {
		t.Error("Clone(nil) = nil, want empty")
	}
}

func TestGoalDaySetCompleted(t *testing.T) {
	now := time.Date(2025, 4, 20, 9, 0, 0, 0, time.UTC)
	explicit := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		completed bool
		at        *time.Time
		want      *time.Time
	}{
		{"completed uses now", true, nil, &now},
		{"completed with explicit time", true, &explicit, &explicit},
		{"not completed clears", false, nil, nil},
		{"not completed ignores explicit time", false, &explicit, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := &GoalDay{CompletedAt: &explicit}
			day.SetCompleted(tt.completed, tt.at, now)

			if day.Completed != tt.completed {
				t.Errorf("Completed = %v, want %v", day.Completed, tt.completed)
			}
			switch {
			case tt.want == nil && day.CompletedAt != nil:
				t.Errorf("CompletedAt = %v, want nil", day.CompletedAt)
			case tt.want != nil && (day.CompletedAt == nil || !day.CompletedAt.Equal(*tt.want)):
				t.Errorf("CompletedAt = %v, want %v", day.CompletedAt, *tt.want)
			}
		})
	}
}

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		name string
		item Content
		want string
	}{
		{"localized", &Prayer{Slug: "pater", Title: "Our Father", Locales: []PrayerLocale{{Title: "Pai Nosso"}}}, "Pai Nosso"},
		{"empty localized falls back", &Saint{Slug: "joseph", Name: "Joseph", Locales: []SaintLocale{{Name: ""}}}, "Joseph"},
		{"base field", &Apparition{Slug: "fatima", Name: "Our Lady of Fatima"}, "Our Lady of Fatima"},
		{"slug", &Guide{Slug: "advent"}, "advent"},
		{"parish name", &Parish{Slug: "st-anne", Name: "St Anne"}, "St Anne"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.DisplayTitle(); got != tt.want {
				t.Errorf("DisplayTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSortSearchResults(t *testing.T) {
	results := []SearchResult{
		NewSearchResult(&Saint{ID: "1", Slug: "agnes", Name: "Agnes"}),
		NewSearchResult(&Prayer{ID: "2", Slug: "b", Title: "Same"}),
		NewSearchResult(&Prayer{ID: "3", Slug: "a", Title: "Same"}),
		NewSearchResult(&Guide{ID: "4", Slug: "zeal", Title: "Zeal"}),
		NewSearchResult(&Prayer{ID: "5", Slug: "z", Title: "Angelus"}),
	}
	SortSearchResults(results)

	want := []string{"4", "5", "3", "2", "1"}
	for i, id := range want {
		if results[i].Item.ContentID() != id {
			t.Errorf("position %d = %s, want %s", i, results[i].Item.ContentID(), id)
		}
	}
}

func TestContentTypeValid(t *testing.T) {
	for _, ct := range ContentTypes {
		if !ct.Valid() {
			t.Errorf("%s.Valid() = false", ct)
		}
	}
	if ContentType("journal").Valid() {
		t.Error("journal.Valid() = true")
	}
}
