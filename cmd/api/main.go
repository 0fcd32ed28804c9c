package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"news-portal/internal/common/pagination"
	"news-portal/internal/config"
	mongoRepo "news-portal/internal/infra/adapter/persistence/mongodb"
	pgRepo "news-portal/internal/infra/adapter/persistence/postgres"
	"news-portal/internal/infra/db"
	"news-portal/internal/infra/media"
	"news-portal/internal/observability/logging"
	"news-portal/internal/observability/tracing"
	"news-portal/internal/repository"
	authservice "news-portal/internal/service/auth"
	artUC "news-portal/internal/usecase/article"
	envcfg "news-portal/pkg/config"

	hhttp "news-portal/internal/handler/http"
	harticle "news-portal/internal/handler/http/article"
	hauth "news-portal/internal/handler/http/auth"
	"news-portal/internal/handler/http/middleware"
	"news-portal/internal/handler/http/requestid"

	_ "news-portal/docs" // swagger docs
)

// @title           News Portal API
// @version         1.0
// @description     ニュース記事の公開・管理 REST API
// @description     記事の CRUD、画像・動画・音声メディアの管理、JWT クッキー認証を提供します。

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
// @description ログイン時に発行される HttpOnly クッキー。CLI などは "Authorization: Bearer {token}" も使用できます。

func main() {
	if err := envcfg.LoadDotEnv(os.Getenv("APP_ENV"), ".env"); err != nil {
		slog.Error("failed to load environment file", slog.Any("error", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	shutdownTracing := tracing.InitProvider("news-portal-api", cfg.Version)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := openStorage(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Error("failed to open storage", slog.String("driver", cfg.StorageDriver), slog.Any("error", err))
		os.Exit(1)
	}
	defer store.close(logger)

	handler, err := setupServer(cfg, store, logger)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(logger, cfg, handler)
}

// storage bundles the repositories of the selected driver and its health check.
type storage struct {
	articles repository.ArticleRepository
	users    repository.UserRepository
	check    hhttp.Checker
	close    func(*slog.Logger)
}

func openStorage(ctx context.Context, cfg *config.App, logger *slog.Logger) (*storage, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		if err := db.MigrateUp(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		database, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &storage{
			articles: pgRepo.NewArticleRepo(database),
			users:    pgRepo.NewUserRepo(database),
			check:    hhttp.SQLCheck{DB: database},
			close:    func(l *slog.Logger) { closeSQL(l, database) },
		}, nil
	default:
		client, err := db.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		database := client.Database(cfg.MongoDatabase)
		articles := mongoRepo.NewArticleRepo(database)
		users := mongoRepo.NewUserRepo(database)
		if err := articles.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		if err := users.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		logger.Info("mongo repositories ready", slog.String("database", cfg.MongoDatabase))
		return &storage{
			articles: articles,
			users:    users,
			check:    hhttp.PingCheck{Pinger: db.MongoPinger{Client: client}},
			close:    func(l *slog.Logger) { disconnectMongo(l, client) },
		}, nil
	}
}

func closeSQL(logger *slog.Logger, database *sql.DB) {
	if err := database.Close(); err != nil {
		logger.Error("failed to close database", slog.Any("error", err))
	}
}

func disconnectMongo(logger *slog.Logger, client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("failed to disconnect mongo", slog.Any("error", err))
	}
}

// setupServer wires services, routes and the middleware chain.
func setupServer(cfg *config.App, store *storage, logger *slog.Logger) (http.Handler, error) {
	cloud, err := media.NewCloudinaryStore(media.CloudinaryConfig{
		URL:       cfg.Media.CloudinaryURL,
		CloudName: cfg.Media.CloudName,
		APIKey:    cfg.Media.APIKey,
		APISecret: cfg.Media.APISecret,
	})
	if err != nil {
		return nil, err
	}
	gateway := media.NewGuarded(cloud, media.GuardOptions{
		RatePerSecond: cfg.Media.RatePerSecond,
		Burst:         cfg.Media.Burst,
	})

	tokens := authservice.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	guard := authservice.NewGuard(tokens, store.users)
	authSvc := authservice.NewService(store.users, tokens, authservice.Options{
		MinPasswordLength: cfg.Auth.MinPasswordLength,
		Production:        cfg.IsProduction(),
	})
	artSvc := artUC.NewService(store.articles, gateway, media.ExtractPublicID)

	proxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	ips := middleware.ClientIP{Proxies: proxies}

	mux := http.NewServeMux()

	hauth.Register(mux, authSvc, guard, hauth.CookieConfig{
		Name:   cfg.Auth.CookieName,
		TTL:    cfg.Auth.CookieTTL,
		Secure: cfg.IsProduction(),
	}, middleware.RateLimit(cfg.Auth.LoginPerMinute, time.Minute, ips))

	harticle.Register(mux, artSvc, guard, harticle.Config{
		Pagination:  pagination.LoadFromEnv(),
		MaxFileSize: cfg.Media.MaxFileSize,
		CookieName:  cfg.Auth.CookieName,
		Feed: harticle.FeedConfig{
			Title:       "News Portal",
			Description: "Latest articles",
			BaseURL:     cfg.PublicURL,
		},
	}, logger)

	checks := map[string]hhttp.Checker{
		"database": store.check,
		"media":    hhttp.BreakerCheck{State: gateway.BreakerState},
	}
	mux.Handle("GET /health", &hhttp.HealthHandler{Checks: checks, Version: cfg.Version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Checks: map[string]hhttp.Checker{"database": store.check}})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 3 ファイル分のアップロードを許容する
	maxBody := 3*cfg.Media.MaxFileSize + 1<<20

	logger.Info("routes registered",
		slog.String("storage", cfg.StorageDriver),
		slog.Any("cors_origins", cfg.CORSOrigins),
		slog.Int("login_per_minute", cfg.Auth.LoginPerMinute),
		slog.Duration("request_timeout", cfg.RequestTimeout))

	// Recover → Request ID → Logging → CORS → Body Limit → Metrics → Timeout → Tracing → mux
	return hhttp.Chain(mux,
		hhttp.Recover(logger),
		requestid.Middleware,
		hhttp.Logging(logger),
		middleware.CORS(cfg.CORSOrigins),
		hhttp.LimitRequestBody(maxBody),
		hhttp.MetricsMiddleware,
		hhttp.Timeout(cfg.RequestTimeout),
		tracing.Middleware,
	), nil
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg *config.App, handler http.Handler) {
	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris 対策
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("env", cfg.Env),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
