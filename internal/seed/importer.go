package seed

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/markdown"
	"github.com/lumenfide/lumen/internal/model"
	"github.com/lumenfide/lumen/internal/repository"
	"github.com/lumenfide/lumen/internal/validation"
	"gopkg.in/yaml.v3"
)

const (
	ParishFile  = "parishes.yaml"
	feastLayout = "2006-01-02"
)

// Directories holding one markdown file per slug and locale.
var contentDirs = map[model.ContentType]string{
	model.ContentTypePrayer:  "prayers",
	model.ContentTypeSaint:   "saints",
	model.ContentTypeOurLady: "ourladies",
	model.ContentTypeGuide:   "guides",
}

// Report counts items per content type. Skipped items already existed.
type Report struct {
	Created map[model.ContentType]int
	Skipped map[model.ContentType]int
}

func newReport() *Report {
	return &Report{
		Created: map[model.ContentType]int{},
		Skipped: map[model.ContentType]int{},
	}
}

// Importer loads a content directory into the repositories. Each item is
// written in its own transaction so a rerun skips what is already there.
type Importer struct {
	txManager            repository.TxManager
	prayerRepository     repository.PrayerRepository
	saintRepository      repository.SaintRepository
	apparitionRepository repository.ApparitionRepository
	guideRepository      repository.GuideRepository
	parishRepository     repository.ParishRepository
	parser               *markdown.Parser
	now                  func() time.Time
}

func NewImporter(
	txManager repository.TxManager,
	prayerRepository repository.PrayerRepository,
	saintRepository repository.SaintRepository,
	apparitionRepository repository.ApparitionRepository,
	guideRepository repository.GuideRepository,
	parishRepository repository.ParishRepository,
) *Importer {
	return &Importer{
		txManager:            txManager,
		prayerRepository:     prayerRepository,
		saintRepository:      saintRepository,
		apparitionRepository: apparitionRepository,
		guideRepository:      guideRepository,
		parishRepository:     parishRepository,
		parser:               markdown.NewParser(),
		now:                  time.Now,
	}
}

// document is one markdown file: front matter plus the rendered body.
type document struct {
	Slug     string     `yaml:"slug"`
	Locale   string     `yaml:"locale"`
	Title    string     `yaml:"title"`
	Name     string     `yaml:"name"`
	Category string     `yaml:"category"`
	Feast    string     `yaml:"feast"`
	Steps    []stepMeta `yaml:"steps"`

	file string
	html string
}

type stepMeta struct {
	Title     string   `yaml:"title"`
	Body      string   `yaml:"body"`
	Checklist []string `yaml:"checklist"`
}

func (d *document) heading() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// item groups the locale documents sharing one slug. The first document is
// the base: the "en" file when present, otherwise the first file read.
type item struct {
	slug string
	docs []*document
}

func (it *item) base() *document {
	return it.docs[0]
}

type parishEntry struct {
	Slug       string   `yaml:"slug"`
	Name       string   `yaml:"name"`
	Address    string   `yaml:"address"`
	City       string   `yaml:"city"`
	Region     string   `yaml:"region"`
	Country    string   `yaml:"country"`
	PostalCode string   `yaml:"postal_code"`
	Latitude   *float64 `yaml:"latitude"`
	Longitude  *float64 `yaml:"longitude"`
	Phone      string   `yaml:"phone"`
	Website    string   `yaml:"website"`
}

// Import reads every content directory and the parish file from fsys.
// Missing directories are ignored. Malformed files abort the import.
func (im *Importer) Import(ctx context.Context, fsys fs.FS) (*Report, error) {
	report := newReport()

	for _, contentType := range model.ContentTypes {
		if contentType == model.ContentTypeParish {
			err := im.importParishes(ctx, fsys, report)
			if err != nil {
				return report, err
			}
			continue
		}

		items, err := im.load(fsys, contentDirs[contentType])
		if err != nil {
			return report, err
		}

		for _, it := range items {
			err := im.txManager.ExecTx(ctx, func(ctx context.Context) error {
				return im.create(ctx, contentType, it)
			})
			switch {
			case errors.Is(err, domain.ErrConflict):
				report.Skipped[contentType]++
				slog.Debug("seed item exists, skipping", "type", contentType, "slug", it.slug)
			case err != nil:
				return report, fmt.Errorf("failed to import %s %s: %w", contentType, it.slug, err)
			default:
				report.Created[contentType]++
			}
		}
	}

	slog.Info("seed import finished", "created", report.Created, "skipped", report.Skipped)
	return report, nil
}

func (im *Importer) create(ctx context.Context, contentType model.ContentType, it *item) error {
	switch contentType {
	case model.ContentTypePrayer:
		return im.createPrayer(ctx, it)
	case model.ContentTypeSaint:
		return im.createSaint(ctx, it)
	case model.ContentTypeOurLady:
		return im.createApparition(ctx, it)
	case model.ContentTypeGuide:
		return im.createGuide(ctx, it)
	}
	return fmt.Errorf("unsupported content type %q", contentType)
}

// load parses dir/*.md and groups the documents by slug in file order.
func (im *Importer) load(fsys fs.FS, dir string) ([]*item, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}

	var items []*item
	bySlug := map[string]*item{}
	for _, file := range files {
		doc, err := im.parse(fsys, file)
		if err != nil {
			return nil, err
		}

		it, ok := bySlug[doc.Slug]
		if !ok {
			it = &item{slug: doc.Slug}
			bySlug[doc.Slug] = it
			items = append(items, it)
		}

		for _, other := range it.docs {
			if other.Locale == doc.Locale {
				return nil, fmt.Errorf("%s: duplicate locale %q for %s (see %s): %w",
					file, doc.Locale, doc.Slug, other.file, domain.ErrValidation)
			}
		}

		if doc.Locale == model.DefaultLocale {
			it.docs = append([]*document{doc}, it.docs...)
		} else {
			it.docs = append(it.docs, doc)
		}
	}
	return items, nil
}

// parse renders one file. The slug defaults to the file name up to its first
// dot ("rosary.pt.md" -> "rosary") and the locale defaults to "en".
func (im *Importer) parse(fsys fs.FS, file string) (*document, error) {
	source, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, err
	}

	doc := &document{file: file}
	html, err := im.parser.Render(source, doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	doc.html = string(html)

	if doc.Slug == "" {
		name := path.Base(file)
		doc.Slug, _, _ = strings.Cut(name, ".")
	}
	doc.Slug = Slugify(doc.Slug)
	if doc.Slug == "" {
		return nil, fmt.Errorf("%s: empty slug: %w", file, domain.ErrValidation)
	}

	locale, err := validation.NormalizeLocale(doc.Locale)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", file, err, domain.ErrValidation)
	}
	if locale == "" {
		locale = model.DefaultLocale
	}
	doc.Locale = locale

	return doc, nil
}

func (im *Importer) createPrayer(ctx context.Context, it *item) error {
	base := it.base()
	prayer := &model.Prayer{
		ID:        uuid.New().String(),
		Slug:      it.slug,
		Title:     base.heading(),
		CreatedAt: im.now().UTC(),
	}

	if base.Category != "" {
		category := &model.PrayerCategory{
			ID:   uuid.New().String(),
			Slug: Slugify(base.Category),
			Name: titleFromSlug(Slugify(base.Category)),
		}
		err := im.prayerRepository.UpsertCategory(ctx, category)
		if err != nil {
			return fmt.Errorf("failed to upsert category: %w", err)
		}
		prayer.CategoryID = &category.ID
	}

	for _, doc := range it.docs {
		prayer.Locales = append(prayer.Locales, model.PrayerLocale{
			Locale:   doc.Locale,
			Title:    doc.heading(),
			BodyHTML: doc.html,
		})
	}

	return im.prayerRepository.Create(ctx, prayer)
}

func (im *Importer) createSaint(ctx context.Context, it *item) error {
	base := it.base()
	feast, err := parseFeast(base)
	if err != nil {
		return err
	}

	saint := &model.Saint{
		ID:        uuid.New().String(),
		Slug:      it.slug,
		Name:      base.heading(),
		FeastDate: feast,
		CreatedAt: im.now().UTC(),
	}
	for _, doc := range it.docs {
		saint.Locales = append(saint.Locales, model.SaintLocale{
			Locale:        doc.Locale,
			Name:          doc.heading(),
			BiographyHTML: doc.html,
		})
	}

	return im.saintRepository.Create(ctx, saint)
}

func (im *Importer) createApparition(ctx context.Context, it *item) error {
	base := it.base()
	feast, err := parseFeast(base)
	if err != nil {
		return err
	}

	apparition := &model.Apparition{
		ID:        uuid.New().String(),
		Slug:      it.slug,
		Name:      base.heading(),
		FeastDate: feast,
		CreatedAt: im.now().UTC(),
	}
	for _, doc := range it.docs {
		apparition.Locales = append(apparition.Locales, model.ApparitionLocale{
			Locale:        doc.Locale,
			Name:          doc.heading(),
			BiographyHTML: doc.html,
		})
	}

	return im.apparitionRepository.Create(ctx, apparition)
}

// createGuide takes the step list and checklists from the base document.
// Other locales contribute titles and bodies for the steps they list.
func (im *Importer) createGuide(ctx context.Context, it *item) error {
	base := it.base()
	guide := &model.Guide{
		ID:        uuid.New().String(),
		Slug:      it.slug,
		Title:     base.heading(),
		CreatedAt: im.now().UTC(),
	}

	for i, meta := range base.Steps {
		guide.Steps = append(guide.Steps, &model.Step{
			ID:        uuid.New().String(),
			Position:  i + 1,
			Checklist: model.Checklist(meta.Checklist).Clone(),
		})
	}

	for _, doc := range it.docs {
		guide.Locales = append(guide.Locales, model.GuideLocale{
			Locale:    doc.Locale,
			Title:     doc.heading(),
			IntroHTML: doc.html,
		})

		for i, meta := range doc.Steps {
			if i >= len(guide.Steps) {
				break
			}
			body, err := im.parser.Parse([]byte(meta.Body))
			if err != nil {
				return fmt.Errorf("%s: step %d: %w", doc.file, i+1, err)
			}
			guide.Steps[i].Locales = append(guide.Steps[i].Locales, model.StepLocale{
				Locale:   doc.Locale,
				Title:    meta.Title,
				BodyHTML: string(body),
			})
		}
	}

	return im.guideRepository.Create(ctx, guide)
}

func (im *Importer) importParishes(ctx context.Context, fsys fs.FS, report *Report) error {
	source, err := fs.ReadFile(fsys, ParishFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var entries []parishEntry
	err = yaml.Unmarshal(source, &entries)
	if err != nil {
		return fmt.Errorf("%s: %w", ParishFile, err)
	}

	for i, entry := range entries {
		if strings.TrimSpace(entry.Name) == "" {
			return fmt.Errorf("%s: entry %d has no name: %w", ParishFile, i+1, domain.ErrValidation)
		}

		slug := entry.Slug
		if slug == "" {
			slug = entry.Name + " " + entry.City
		}

		parish := &model.Parish{
			ID:         uuid.New().String(),
			Slug:       Slugify(slug),
			Name:       entry.Name,
			Address:    entry.Address,
			City:       entry.City,
			Region:     entry.Region,
			Country:    entry.Country,
			PostalCode: entry.PostalCode,
			Latitude:   entry.Latitude,
			Longitude:  entry.Longitude,
			Phone:      entry.Phone,
			Website:    entry.Website,
			CreatedAt:  im.now().UTC(),
		}

		err := im.txManager.ExecTx(ctx, func(ctx context.Context) error {
			return im.parishRepository.Create(ctx, parish)
		})
		switch {
		case errors.Is(err, domain.ErrConflict):
			report.Skipped[model.ContentTypeParish]++
		case err != nil:
			return fmt.Errorf("failed to import parish %s: %w", parish.Slug, err)
		default:
			report.Created[model.ContentTypeParish]++
		}
	}
	return nil
}

func parseFeast(doc *document) (*time.Time, error) {
	if doc.Feast == "" {
		return nil, nil
	}
	feast, err := time.Parse(feastLayout, doc.Feast)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid feast date %q: %w", doc.file, doc.Feast, domain.ErrValidation)
	}
	return &feast, nil
}
