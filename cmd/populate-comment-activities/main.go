// Command populate-comment-activities backfills the activity feed with one
// Comment activity per bounty or fulfillment a stored comment belongs to.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"bounties-api/internal/config"
	"bounties-api/internal/metrics"
	"bounties-api/internal/repository"
	"bounties-api/internal/service/activity"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := config.NewLogger(cfg, os.Stderr)

	if err := run(cfg, log); err != nil {
		attrs := []interface{}{slog.String("error", err.Error())}
		var runErr *activity.RunError
		if errors.As(err, &runErr) {
			attrs = append(attrs, slog.String("stack", string(runErr.Stack)))
		}
		log.Error("populate comment activities failed", attrs...)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		return err
	}
	if redis != nil {
		defer redis.Close()
	} else {
		log.Warn("REDIS_URL not set, running without the populate lock")
	}

	repos := repository.NewRepositories(db)
	svc := activity.NewService(
		repos.Comment,
		repos.Bounty,
		repos.Fulfillment,
		repos.Activity,
		redis,
		cfg.PopulateLock,
		metrics.Nop{},
		log,
	)

	created, err := svc.PopulateFromComments(ctx)
	if err != nil {
		log.Error("run aborted", slog.Int("activities_created", created))
		return err
	}

	log.Info("comment activities populated", slog.Int("activities_created", created))
	return nil
}
