package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/templui/studytrack/internal/auth"
	"github.com/templui/studytrack/internal/config"
	"github.com/templui/studytrack/internal/db"
	"github.com/templui/studytrack/internal/docstore"
	"github.com/templui/studytrack/internal/middleware"
	"github.com/templui/studytrack/internal/repository"
	"github.com/templui/studytrack/internal/session"
)

type App struct {
	Cfg                *config.Config
	DB                 *sqlx.DB // nil unless the sql backend is used
	Store              docstore.Store
	GoalRepository     repository.GoalRepository
	ActivityRepository repository.ActivityRepository
	Sessions           *session.Manager
	Tokens             *auth.TokenIssuer
	Limiter            *middleware.RateLimiter
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Cfg: cfg}

	// Document store
	switch cfg.DocstoreBackend {
	case config.BackendS3:
		store, err := docstore.NewS3Store(ctx, docstore.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 document store: %w", err)
		}
		a.Store = store
	case config.BackendMemory:
		a.Store = docstore.NewMemoryStore()
	default:
		database, err := db.Open(cfg.DBDriver, cfg.DBConnection)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.DB = database
		a.Store = docstore.NewSQLStore(database)
	}

	// Repositories
	a.GoalRepository = repository.NewGoalRepository(a.Store)
	a.ActivityRepository = repository.NewActivityRepository(a.Store)

	// Sessions
	a.Sessions = session.NewManager(a.GoalRepository, a.ActivityRepository, cfg.SessionIdleTimeout)

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize token issuer: %w", err)
	}
	a.Tokens = tokens

	// Mutations are rate limited per user
	a.Limiter = middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)

	return a, nil
}

func (a *App) Close() error {
	if a.Sessions != nil {
		a.Sessions.Close()
	}
	if a.DB != nil {
		return db.Close(a.DB)
	}
	return nil
}
