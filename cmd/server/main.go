package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/harshcode1/BetterMind-sub000/internal/auth"
	"github.com/harshcode1/BetterMind-sub000/internal/config"
	"github.com/harshcode1/BetterMind-sub000/internal/handler"
	"github.com/harshcode1/BetterMind-sub000/internal/middleware"
	"github.com/harshcode1/BetterMind-sub000/internal/model"
	"github.com/harshcode1/BetterMind-sub000/internal/store"
)

const migrationsDir = "db/migrations"

func main() {
	root := &cobra.Command{
		Use:          "bettermind-server",
		Short:        "BetterMind scheduling and access-control API",
		SilenceUsage: true,
		RunE:         func(cmd *cobra.Command, args []string) error { return serve() },
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE:  func(cmd *cobra.Command, args []string) error { return serve() },
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			RunE:  func(cmd *cobra.Command, args []string) error { return migrateOnly() },
		},
	)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(env string) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := newLogger(cfg.Env)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	log.Info().Msg("connected to postgres")

	if err := applyMigrations(ctx, pool, log); err != nil {
		return err
	}

	st := store.New(pool)
	tokens := auth.NewTokenService(cfg.JWTSecret)

	if err := seedAdmin(ctx, st, cfg, log); err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.Logger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))
	e.Use(middleware.EdgeFilter(tokens))

	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rl.Stop()
	h := handler.New(st, tokens, log)
	h.Routes(e, rl)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server")
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func migrateOnly() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := newLogger(cfg.Env)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer pool.Close()

	return applyMigrations(ctx, pool, log)
}

func applyMigrations(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, f := range files {
		sql, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", f, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply migration %s: %w", f, err)
		}
		log.Info().Str("file", f).Msg("migration applied")
	}
	return nil
}

// seedAdmin provisions the administrative account from config when it does
// not exist yet. Admins are never self-registered.
func seedAdmin(ctx context.Context, st *store.Store, cfg *config.Config, log zerolog.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	if _, err := st.UserByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	u := &model.User{
		ID:           uuid.New().String(),
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         model.RoleAdmin,
	}
	if err := st.CreateUser(ctx, u); err != nil {
		return err
	}
	log.Info().Str("email", cfg.AdminEmail).Msg("admin account seeded")
	return nil
}
