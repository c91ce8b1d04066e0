// Ledgerbot - message-based ledger tracker for Discord
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/ashureev/ledgerbot/internal/api"
	"github.com/ashureev/ledgerbot/internal/bot"
	"github.com/ashureev/ledgerbot/internal/config"
	"github.com/ashureev/ledgerbot/internal/console"
	"github.com/ashureev/ledgerbot/internal/discord"
	"github.com/ashureev/ledgerbot/internal/middleware"
	"github.com/ashureev/ledgerbot/internal/store"
	"github.com/ashureev/ledgerbot/web"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	level.Set(cfg.LogLevel)

	slog.Info("Starting bot", "platform", cfg.Platform, "port", cfg.Port, "timezone", cfg.Location.String())

	// Optional archive of finished entries.
	var archive store.Archive
	if cfg.ArchivePath != "" {
		sqlite, err := store.NewSQLiteArchive(cfg.ArchivePath)
		if err != nil {
			slog.Error("Failed to initialize archive", "error", err)
			os.Exit(1)
		}
		defer func() {
			if closeErr := sqlite.Close(); closeErr != nil {
				slog.Error("Failed to close archive", "error", closeErr)
			}
		}()

		if err := sqlite.Ping(context.Background()); err != nil {
			slog.Error("Archive health check failed", "error", err)
			os.Exit(1)
		}
		archive = sqlite
		slog.Info("Archive connected", "path", cfg.ArchivePath)
	}

	sessions := store.NewMemory(store.MemoryConfig{
		TTL:      cfg.Sessions.TTL,
		Capacity: cfg.Sessions.Capacity,
	})
	if cfg.Sessions.Unbounded() {
		slog.Warn("Session retention is unbounded; set SESSION_TTL or SESSION_CAPACITY to cap memory use")
	}

	ctrl := bot.NewController(sessions, bot.Options{
		Archive:  archive,
		Location: cfg.Location,
		Logger:   logger,
	})

	// Setup router.
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Group(func(r chi.Router) {
		r.Use(middleware.CORS(cfg.AllowedOrigins))
		api.NewHandler(sessions, archive).RegisterRoutes(r)
	})

	var hub *console.Hub
	if cfg.Platform == config.PlatformConsole {
		hub = console.NewHub()
		r.Get("/ws/console", console.NewHandler(hub, ctrl, cfg.AllowedOrigins...).ServeHTTP)
		r.Handle("/console/*", http.StripPrefix("/console", web.ConsoleHandler()))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/console/", http.StatusFound)
		})
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // console websockets are long-lived
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	evicted := store.StartEvictionWorker(ctx, sessions, cfg.Sessions.TTL, cfg.Sessions.SweepInterval)
	g.Go(func() error {
		<-evicted
		return nil
	})

	g.Go(func() error {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down gracefully...")

		if hub != nil {
			hub.CloseAll()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Platform == config.PlatformDiscord {
		gateway, err := discord.NewGateway(cfg.DiscordToken, cfg.GuildID, ctrl, logger)
		if err != nil {
			slog.Error("Failed to initialize Discord gateway", "error", err)
			os.Exit(1)
		}
		g.Go(func() error {
			return gateway.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("Bot stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Bot stopped successfully")
}
