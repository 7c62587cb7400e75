package seed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/model"
	"github.com/lumenfide/lumen/internal/repository"
	"github.com/lumenfide/lumen/internal/testutil"
)

func file(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(strings.TrimLeft(s, "\n"))}
}

var content = fstest.MapFS{
	"prayers/hail-mary.md": file(`
---
title: Hail Mary
category: Marian prayers
---
Hail Mary, **full of grace**.
`),
	"prayers/hail-mary.pt.md": file(`
---
locale: pt
title: Ave Maria
---
Ave Maria, cheia de graça.
`),
	"saints/joseph.md": file(`
---
name: Joseph
feast: "2025-03-19"
---
Spouse of Mary.
`),
	"ourladies/fatima.md": file(`
---
slug: our-lady-of-fatima
name: Our Lady of Fatima
feast: "2025-05-13"
---
Apparitions in 1917.
`),
	"guides/first-saturdays.md": file(`
---
title: First Saturdays
steps:
  - title: Confession
    body: Go to *confession*.
    checklist: [Examine conscience, Confess]
  - title: Communion
  - title: Rosary
    checklist: [Pray five decades]
---
Five first Saturdays of reparation.
`),
	"guides/first-saturdays.fr.md": file(`
---
slug: first-saturdays
locale: fr
title: Premiers samedis
steps:
  - title: Confession
  - title: Communion
---
Cinq premiers samedis.
`),
	"parishes.yaml": file(`
- name: Sé de Lisboa
  city: Lisbon
  country: Portugal
- slug: st-patricks
  name: St Patrick's
  city: Dublin
  country: Ireland
  latitude: 53.3395
  longitude: -6.2714
`),
}

func newImporter(t *testing.T) (*Importer, repository.PrayerRepository, repository.GuideRepository, repository.ParishRepository) {
	t.Helper()
	db := testutil.NewDB(t)
	prayers := repository.NewPrayerRepository(db)
	guides := repository.NewGuideRepository(db)
	parishes := repository.NewParishRepository(db)
	importer := NewImporter(
		repository.NewTxManager(db),
		prayers,
		repository.NewSaintRepository(db),
		repository.NewApparitionRepository(db),
		guides,
		parishes,
	)
	return importer, prayers, guides, parishes
}

func TestImport(t *testing.T) {
	importer, prayers, guides, parishes := newImporter(t)
	ctx := context.Background()

	report, err := importer.Import(ctx, content)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	for contentType, want := range map[model.ContentType]int{
		model.ContentTypePrayer:  1,
		model.ContentTypeSaint:   1,
		model.ContentTypeOurLady: 1,
		model.ContentTypeGuide:   1,
		model.ContentTypeParish:  2,
	} {
		if report.Created[contentType] != want {
			t.Errorf("created %s = %d, want %d", contentType, report.Created[contentType], want)
		}
	}

	prayer, err := prayers.BySlug(ctx, "hail-mary", "pt")
	if err != nil {
		t.Fatalf("BySlug(hail-mary) error = %v", err)
	}
	if prayer.Title != "Hail Mary" || prayer.DisplayTitle() != "Ave Maria" {
		t.Errorf("prayer titles = %q / %q", prayer.Title, prayer.DisplayTitle())
	}
	if prayer.CategoryID == nil {
		t.Error("prayer has no category")
	}

	en, err := prayers.BySlug(ctx, "hail-mary", "en")
	if err != nil {
		t.Fatalf("BySlug(en) error = %v", err)
	}
	if !strings.Contains(en.Locales[0].BodyHTML, "<strong>full of grace</strong>") {
		t.Errorf("body = %q, want rendered markdown", en.Locales[0].BodyHTML)
	}
	if strings.Contains(en.Locales[0].BodyHTML, "category") {
		t.Errorf("body contains front matter: %q", en.Locales[0].BodyHTML)
	}

	guide, err := guides.BySlug(ctx, "first-saturdays", "fr")
	if err != nil {
		t.Fatalf("BySlug(guide) error = %v", err)
	}
	if len(guide.Steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(guide.Steps))
	}
	if len(guide.Steps[0].Checklist) != 2 || len(guide.Steps[1].Checklist) != 0 {
		t.Errorf("checklists = %v, %v", guide.Steps[0].Checklist, guide.Steps[1].Checklist)
	}
	if len(guide.Steps[2].Locales) != 0 {
		t.Errorf("third step has fr locale %+v, want none", guide.Steps[2].Locales)
	}
	if guide.DisplayTitle() != "Premiers samedis" {
		t.Errorf("guide title = %q", guide.DisplayTitle())
	}

	list, err := parishes.Parishes(ctx, repository.ParishFilter{Limit: 10})
	if err != nil {
		t.Fatalf("Parishes() error = %v", err)
	}
	gotSlugs := map[string]bool{}
	for _, p := range list {
		gotSlugs[p.Slug] = true
	}
	if !gotSlugs["se-de-lisboa-lisbon"] || !gotSlugs["st-patricks"] {
		t.Errorf("parish slugs = %v", gotSlugs)
	}

	again, err := importer.Import(ctx, content)
	if err != nil {
		t.Fatalf("second Import() error = %v", err)
	}
	for _, contentType := range model.ContentTypes {
		if again.Created[contentType] != 0 {
			t.Errorf("second import created %d %s", again.Created[contentType], contentType)
		}
		if again.Skipped[contentType] != report.Created[contentType] {
			t.Errorf("second import skipped %d %s, want %d", again.Skipped[contentType], contentType, report.Created[contentType])
		}
	}
}

func TestImportRejectsMalformedFiles(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"bad feast", fstest.MapFS{"saints/x.md": file("---\nname: X\nfeast: March\n---\nbody\n")}},
		{"bad locale", fstest.MapFS{"prayers/x.md": file("---\nlocale: \"??\"\ntitle: X\n---\nbody\n")}},
		{"duplicate locale", fstest.MapFS{
			"prayers/a.md": file("---\nslug: same\ntitle: A\n---\n"),
			"prayers/b.md": file("---\nslug: same\ntitle: B\n---\n"),
		}},
		{"parish without name", fstest.MapFS{"parishes.yaml": file("- city: Rome\n")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			importer, _, _, _ := newImporter(t)
			_, err := importer.Import(context.Background(), tt.fsys)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Import() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Notre-Dame de Lourdes", "notre-dame-de-lourdes"},
		{"São João Batista", "sao-joao-batista"},
		{"  St. Mary's  ", "st-mary-s"},
		{"Thérèse of Lisieux", "therese-of-lisieux"},
		{"rosary", "rosary"},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
