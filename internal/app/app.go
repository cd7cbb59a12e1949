package app

import (
	"context"
	"errors"

	"github.com/edupath/edupath-backend/internal/auth"
	"github.com/edupath/edupath-backend/internal/cache"
	"github.com/edupath/edupath-backend/internal/config"
	"github.com/edupath/edupath-backend/internal/logger"
	"github.com/edupath/edupath-backend/internal/model"
	"github.com/edupath/edupath-backend/internal/repository"
	"github.com/edupath/edupath-backend/internal/store"
)

// App is the application container (immutable dependencies + lifecycle
// context). It is not a request context; handlers use gin's request context.
type App struct {
	Config    *config.Config
	Courses   repository.Store[*model.Course]
	BlogPosts repository.Store[*model.BlogPost]
	Store     *store.Store
	Cache     cache.Cache
	Auth      *auth.Service

	BaseCtx context.Context
	Cancel  context.CancelFunc
}

func New(cfg *config.Config, courses repository.Store[*model.Course], blogPosts repository.Store[*model.BlogPost],
	st *store.Store, c cache.Cache, authSvc *auth.Service) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if courses == nil || blogPosts == nil {
		return nil, errors.New("resource store is nil")
	}
	if st == nil {
		return nil, errors.New("state store is nil")
	}
	if authSvc == nil {
		return nil, errors.New("auth service is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:    cfg,
		Courses:   courses,
		BlogPosts: blogPosts,
		Store:     st,
		Cache:     c,
		Auth:      authSvc,
		BaseCtx:   ctx,
		Cancel:    cancel,
	}, nil
}

func (a *App) Shutdown() {
	if a == nil {
		return
	}
	if a.Cancel != nil {
		a.Cancel()
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			logger.WithComponent("app").Warnf("cache close: %v", err)
		}
	}
}

// StartWatchers starts the seed-file watcher when configured. Edits to the
// seed file re-seed the store's testimonial collection; the persisted
// collections are left alone, Mongo is their source of truth.
func (a *App) StartWatchers() error {
	if !a.Config.Seed.Watch || a.Config.Seed.FilePath == "" {
		return nil
	}

	return repository.StartSeedWatcher(a.BaseCtx, a.Config.Seed.FilePath, func(data *repository.SeedData) {
		a.Store.SeedTestimonials(data.Testimonials)
	})
}
