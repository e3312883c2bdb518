package service

import (
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"bounties-api/internal/config"
	"bounties-api/internal/metrics"
	"bounties-api/internal/pkg/emailcatalog"
	"bounties-api/internal/repository"
	"bounties-api/internal/service/activity"
	"bounties-api/internal/service/auth"
	"bounties-api/internal/service/listcache"
	"bounties-api/internal/service/notification"
	"bounties-api/internal/service/transaction"
	"bounties-api/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Activity     activity.Service
	Notification notification.Service
	Transaction  transaction.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config, recorder metrics.Recorder, logger *slog.Logger) (*Services, error) {
	catalog, err := emailcatalog.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load email catalog: %w", err)
	}

	validate := validator.New()
	cache := listcache.New(redis, cfg.ListCacheTTL, recorder)

	var store user.ObjectStore
	if minioClient != nil {
		store = minioClient
	}

	return &Services{
		Auth:         auth.NewService(cfg.JWTSecret),
		User:         user.NewService(repos.User, store, catalog, validate, cfg),
		Activity:     activity.NewService(repos.Comment, repos.Bounty, repos.Fulfillment, repos.Activity, redis, cfg.PopulateLock, recorder, logger),
		Notification: notification.NewService(repos.Notification, cache, recorder),
		Transaction:  transaction.NewService(repos.Transaction, repos.User, cache, validate, recorder),
	}, nil
}
