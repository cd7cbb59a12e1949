package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"syscall"

	"github.com/enrichman/httpgrace"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edupath/edupath-backend/internal/api/middleware"
	route "github.com/edupath/edupath-backend/internal/api/route"
	appctx "github.com/edupath/edupath-backend/internal/app"
	"github.com/edupath/edupath-backend/internal/auth"
	"github.com/edupath/edupath-backend/internal/cache"
	"github.com/edupath/edupath-backend/internal/config"
	"github.com/edupath/edupath-backend/internal/logger"
	"github.com/edupath/edupath-backend/internal/model"
	"github.com/edupath/edupath-backend/internal/repository"
	"github.com/edupath/edupath-backend/internal/store"
)

func main() {
	// A .env file is optional; the deployment environment usually provides
	// MONGO_URI and PORT directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithComponent("main").Fatalf("configuration error: %v", err)
	}

	// Set log level from configuration
	logLevel, err := logrus.ParseLevel(cfg.Misc.LogLevel)
	if err != nil {
		logger.WithComponent("main").Warnf("invalid log level '%s', using 'info': %v", cfg.Misc.LogLevel, err)
		logLevel = logrus.InfoLevel
	}
	logger.Logger.SetLevel(logLevel)
	logger.WithComponent("main").Debugf("log level set to: %s", logLevel.String())
	logger.WithComponent("main").Infof("App will run on port: %d", cfg.Server.Port)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		cancel()
		logger.WithComponent("main").Fatalf("cannot connect to mongo: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		cancel()
		logger.WithComponent("main").Fatalf("cannot reach mongo at %s: %v", cfg.Mongo.URI, err)
	}
	cancel()
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.WithComponent("main").Warnf("mongo disconnect: %v", err)
		}
	}()

	db := client.Database(cfg.Mongo.Database)
	courses := repository.NewMongo(db, "courses", "course",
		func() *model.Course { return &model.Course{} })
	blogPosts := repository.NewMongo(db, "blogposts", "blogpost",
		func() *model.BlogPost { return &model.BlogPost{} }, "slug")

	if err := bootstrapData(cfg, courses, blogPosts); err != nil {
		logger.WithComponent("main").Fatalf("cannot bootstrap data: %v", err)
	}

	users, err := auth.SeedUsers()
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot seed admin users: %v", err)
	}
	authSvc := auth.NewService(users, cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)

	cacheStore, err := cache.New(context.Background(), cfg.Cache)
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot init cache: %v", err)
	}

	stateStore := store.New()
	seed, err := repository.LoadSeedFile(cfg.Seed.FilePath)
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot load seed file: %v", err)
	}
	stateStore.SeedTestimonials(seed.Testimonials)

	app, err := appctx.New(cfg, courses, blogPosts, stateStore, cacheStore, authSvc)
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot init app: %v", err)
	}
	defer app.Shutdown()

	if err := app.StartWatchers(); err != nil {
		logger.WithComponent("main").Fatalf("cannot start watchers: %v", err)
	}

	gin.SetMode(cfg.Misc.GinMode)
	gin.DefaultWriter = logger.Logger.Writer()
	gin.DefaultErrorWriter = logger.Logger.Writer()

	r := gin.New()
	r.Use(middleware.Honeybadger(logger.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	route.SetupRoutes(r, app)

	srv := createGraceHttpServer(app.BaseCtx, "main-server", cfg.Server, r)
	if err := srv.ListenAndServe(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithComponent("main").Fatal(err)
	}
}

// bootstrapData creates the indexes and seeds the persisted collections when
// they are empty. Re-running against a populated database is a no-op.
func bootstrapData(cfg *config.Config, courses *repository.Mongo[*model.Course], blogPosts *repository.Mongo[*model.BlogPost]) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	if err := courses.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("course indexes: %w", err)
	}
	if err := blogPosts.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("blogpost indexes: %w", err)
	}

	seed, err := repository.LoadSeedFile(cfg.Seed.FilePath)
	if err != nil {
		return fmt.Errorf("load seed file: %w", err)
	}
	if err := courses.EnsureSeeded(ctx, seed.Courses); err != nil {
		return fmt.Errorf("seed courses: %w", err)
	}
	if err := blogPosts.EnsureSeeded(ctx, seed.BlogPosts); err != nil {
		return fmt.Errorf("seed blogposts: %w", err)
	}
	return nil
}

func createGraceHttpServer(ctx context.Context, name string, serverConfig config.ServerConfig, r *gin.Engine) *httpgrace.Server {
	slogLogger := slog.New(slog.NewTextHandler(logger.Logger.Writer(), nil))

	srv := httpgrace.NewServer(r,
		httpgrace.WithTimeout(serverConfig.ShutDownTimeout),
		httpgrace.WithSignals(syscall.SIGTERM, syscall.SIGINT),
		httpgrace.WithLogger(slogLogger),
		httpgrace.WithBeforeShutdown(func() {
			logger.WithComponent("http").Infof("Shutting down %s server....", name)
		}),
		httpgrace.WithServerOptions(
			httpgrace.WithReadTimeout(serverConfig.ReadTimeout),
			httpgrace.WithWriteTimeout(serverConfig.WriteTimeout),
			httpgrace.WithIdleTimeout(serverConfig.IdleTimeout),
			func(srv *http.Server) {
				srv.BaseContext = func(_ net.Listener) context.Context {
					return ctx
				}
			},
			func(srv *http.Server) {
				srv.ErrorLog = log.New(logger.Logger.Writer(), fmt.Sprintf("[%s] ", name), log.LstdFlags)
			},
		),
	)
	return srv
}
