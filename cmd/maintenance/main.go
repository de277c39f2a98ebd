// Command maintenance runs the time-based housekeeping passes once: stay
// packages whose validity ended are expired, and pool tickets for past dates
// are expired. Intended to be invoked from the platform's scheduler.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/palmbay/resort/api/internal/config"
	"github.com/palmbay/resort/api/internal/database"
	"github.com/palmbay/resort/api/internal/events"
	"github.com/palmbay/resort/api/internal/repository"
	"github.com/palmbay/resort/api/internal/service"
)

func main() {
	runPackages := flag.Bool("packages", true, "Expire stay packages past their validity")
	runTickets := flag.Bool("tickets", true, "Expire pool tickets for past dates")
	asOf := flag.String("as-of", "", "Run as of this RFC 3339 instant (default: now)")
	flag.Parse()

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	now := time.Now().UTC()
	if *asOf != "" {
		now, err = time.Parse(time.RFC3339, *asOf)
		if err != nil {
			slog.Error("invalid -as-of instant", slog.String("error", err.Error()))
			os.Exit(1)
		}
		now = now.UTC()
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	var emitter events.Emitter = events.NopEmitter{}
	if cfg.Events.Enabled {
		emitter = events.NewAMQPEmitter(cfg.Events.AMQPURL, cfg.Events.Queue)
	}
	activity := &service.ActivityRecorder{Logger: logger, Emitter: emitter}

	if *runPackages {
		svc := service.NewPackageService(service.PackageServiceConfig{
			Repo:     repository.NewPackageRepository(db),
			Activity: activity,
		})
		expired, err := svc.ExpirePackages(ctx, now)
		if err != nil {
			slog.Error("package expiry failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("package expiry pass finished", slog.Int("expired", len(expired)))
	}

	if *runTickets {
		svc := service.NewPoolService(service.PoolServiceConfig{
			Repo:     repository.NewPoolRepository(db),
			Activity: activity,
		})
		expired, err := svc.ExpireTickets(ctx, now.Format("2006-01-02"))
		if err != nil {
			slog.Error("ticket expiry failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("ticket expiry pass finished", slog.Int("expired", expired))
	}
}
