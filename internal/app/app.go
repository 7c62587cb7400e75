package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lumenfide/lumen/internal/cache"
	"github.com/lumenfide/lumen/internal/config"
	"github.com/lumenfide/lumen/internal/db"
	"github.com/lumenfide/lumen/internal/markdown"
	"github.com/lumenfide/lumen/internal/repository"
	"github.com/lumenfide/lumen/internal/seed"
	"github.com/lumenfide/lumen/internal/service"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	Cache            *cache.Redis
	AuthService      *service.AuthService
	SearchService    *service.SearchService
	ContentService   *service.ContentService
	GuideService     *service.GuideService
	GoalService      *service.GoalService
	FavoriteService  *service.FavoriteService
	JournalService   *service.JournalService
	MilestoneService *service.MilestoneService
	Importer         *seed.Importer
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(ctx, cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	if cfg.MigrateOnStart {
		err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Cache (optional)
	var redisCache *cache.Redis
	if cfg.RedisURL != "" {
		redisCache, err = cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			// Serve uncached rather than refusing to start
			slog.Warn("cache disabled", "error", err)
			redisCache = nil
		}
	}

	a := Wire(cfg, database)
	a.Cache = redisCache
	return a, nil
}

// Wire builds repositories and services on an open database.
func Wire(cfg *config.Config, database *sqlx.DB) *App {
	// Repositories
	txManager := repository.NewTxManager(database)
	prayerRepository := repository.NewPrayerRepository(database)
	saintRepository := repository.NewSaintRepository(database)
	apparitionRepository := repository.NewApparitionRepository(database)
	guideRepository := repository.NewGuideRepository(database)
	parishRepository := repository.NewParishRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	goalDayRepository := repository.NewGoalDayRepository(database)
	favoriteRepository := repository.NewFavoriteRepository(database)
	journalRepository := repository.NewJournalRepository(database)
	milestoneRepository := repository.NewMilestoneRepository(database)

	// Services
	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiry)
	searchService := service.NewSearchService(
		prayerRepository,
		saintRepository,
		apparitionRepository,
		guideRepository,
		parishRepository,
	)
	contentService := service.NewContentService(
		prayerRepository,
		saintRepository,
		apparitionRepository,
		parishRepository,
	)
	goalService := service.NewGoalService(txManager, goalRepository, goalDayRepository)
	guideService := service.NewGuideService(txManager, guideRepository, goalService)
	favoriteService := service.NewFavoriteService(
		favoriteRepository,
		prayerRepository,
		saintRepository,
		apparitionRepository,
		guideRepository,
		parishRepository,
	)

	journalService := service.NewJournalService(journalRepository, markdown.NewParser())
	milestoneService := service.NewMilestoneService(milestoneRepository)

	importer := seed.NewImporter(
		txManager,
		prayerRepository,
		saintRepository,
		apparitionRepository,
		guideRepository,
		parishRepository,
	)

	return &App{
		Cfg:              cfg,
		DB:               database,
		AuthService:      authService,
		SearchService:    searchService,
		ContentService:   contentService,
		GuideService:     guideService,
		GoalService:      goalService,
		FavoriteService:  favoriteService,
		JournalService:   journalService,
		MilestoneService: milestoneService,
		Importer:         importer,
	}
}

func (a *App) Close() error {
	if a.Cache != nil {
		err := a.Cache.Close()
		if err != nil {
			slog.Error("failed to close cache", "error", err)
		}
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
