// Package app wires the service together and runs the HTTP server until the
// context is cancelled.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/shortly/internal/adapter/repository/postgres"
	"github.com/vadimbarashkov/shortly/internal/config"
	"github.com/vadimbarashkov/shortly/internal/usecase"
	"github.com/vadimbarashkov/shortly/pkg/password"
	"github.com/vadimbarashkov/shortly/pkg/shortcode"
	"github.com/vadimbarashkov/shortly/pkg/token"
	"golang.org/x/sync/errgroup"

	delivery "github.com/vadimbarashkov/shortly/internal/adapter/delivery/http"
	pgpkg "github.com/vadimbarashkov/shortly/pkg/postgres"
)

func newLogger(cfg *config.Config) *httplog.Logger {
	return httplog.NewLogger("shortly", httplog.Options{
		LogLevel:        cfg.Log.SlogLevel(),
		JSON:            cfg.Env == config.EnvProd,
		Concise:         cfg.Env != config.EnvProd,
		Tags:            map[string]string{"env": cfg.Env},
		QuietDownRoutes: []string{"/ping"},
		QuietDownPeriod: 10 * time.Second,
	})
}

func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	logger := newLogger(cfg)

	db, err := pgpkg.New(
		ctx,
		cfg.Postgres.DSN(),
		pgpkg.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
		pgpkg.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		pgpkg.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
		pgpkg.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	if err := pgpkg.RunMigrations(cfg.Postgres.MigrationsPath, cfg.Postgres.DSN()); err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	urlRepo := postgres.NewURLRepository(db)
	userRepo := postgres.NewUserRepository(db)

	hasher := password.NewHasher(cfg.Password.BcryptCost)
	accessSigner := token.NewSigner(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiration)
	refreshSigner := token.NewSigner(cfg.JWT.RefreshSecret, cfg.JWT.RefreshExpiration)

	urlUseCase := usecase.NewURLUseCase(urlRepo, shortcode.NewGenerator(cfg.ShortCodeLength))
	userUseCase := usecase.NewUserUseCase(userRepo, hasher)
	authUseCase := usecase.NewAuthUseCase(userRepo, hasher, accessSigner, refreshSigner)

	router := delivery.NewRouter(logger, cfg.BaseURL, urlUseCase, userUseCase, authUseCase)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        router,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", "addr", server.Addr, "env", cfg.Env)

		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		logger.Info("shutting down server")

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
