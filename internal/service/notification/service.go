package notification

import (
	"context"
	"fmt"

	"bounties-api/internal/authz"
	"bounties-api/internal/domain"
	"bounties-api/internal/metrics"
	"bounties-api/internal/repository"
	"bounties-api/internal/service/listcache"
)

type Service interface {
	// List returns the unviewed notifications of one category for address,
	// newest first.
	List(ctx context.Context, address string, category domain.NotificationCategory, params domain.PaginationParams) (domain.PaginatedResponse[domain.DashboardNotification], error)
	CountUnviewed(ctx context.Context, address string, category domain.NotificationCategory) (int64, error)
	MarkViewed(ctx context.Context, id int64, caller authz.Caller) error
	MarkAllViewed(ctx context.Context, address string, category domain.NotificationCategory, caller authz.Caller) (int64, error)
}

type service struct {
	notifRepo repository.NotificationRepository
	cache     *listcache.Cache
	metrics   metrics.Recorder
}

func NewService(notifRepo repository.NotificationRepository, cache *listcache.Cache, recorder metrics.Recorder) Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &service{
		notifRepo: notifRepo,
		cache:     cache,
		metrics:   recorder,
	}
}

func cachePrefix(address string) string {
	return fmt.Sprintf("notifications:%s:", address)
}

func (s *service) List(ctx context.Context, address string, category domain.NotificationCategory, params domain.PaginationParams) (domain.PaginatedResponse[domain.DashboardNotification], error) {
	address, err := domain.NormalizeIdentity(address)
	if err != nil {
		return domain.PaginatedResponse[domain.DashboardNotification]{}, err
	}
	params.Validate()

	cacheKey := s.cache.Key(ctx, cachePrefix(address), string(category), params.Key())
	var result domain.PaginatedResponse[domain.DashboardNotification]
	if s.cache.Get(ctx, cacheKey, &result) {
		return result, nil
	}

	filter := domain.NotificationFilter{OwnerAddress: address, Category: category, Viewed: false}
	notifications, total, err := s.notifRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.DashboardNotification]{}, err
	}

	result = domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total)
	s.cache.Set(ctx, cacheKey, result)

	return result, nil
}

func (s *service) CountUnviewed(ctx context.Context, address string, category domain.NotificationCategory) (int64, error) {
	address, err := domain.NormalizeIdentity(address)
	if err != nil {
		return 0, err
	}
	return s.notifRepo.Count(ctx, domain.NotificationFilter{OwnerAddress: address, Category: category, Viewed: false})
}

func (s *service) MarkViewed(ctx context.Context, id int64, caller authz.Caller) error {
	if err := authz.Authorize(authz.MarkNotificationViewed, caller, "", true); err != nil {
		return err
	}

	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.Check(authz.ObjectOwner, caller, notif.OwnerAddress); err != nil {
		return err
	}

	if err := s.notifRepo.MarkViewed(ctx, id); err != nil {
		return fmt.Errorf("failed to mark notification %d viewed: %w", id, err)
	}

	if err := s.invalidate(ctx, notif.OwnerAddress); err != nil {
		return err
	}
	s.metrics.MarkedViewed("notification", "single", 1)
	return nil
}

func (s *service) MarkAllViewed(ctx context.Context, address string, category domain.NotificationCategory, caller authz.Caller) (int64, error) {
	address, err := domain.NormalizeIdentity(address)
	if err != nil {
		return 0, err
	}

	if err := authz.Authorize(authz.MarkAllNotificationsViewed, caller, address, false); err != nil {
		return 0, err
	}

	rows, err := s.notifRepo.MarkAllViewed(ctx, address, category)
	if err != nil {
		return 0, fmt.Errorf("failed to mark %s notifications viewed: %w", category, err)
	}

	if err := s.invalidate(ctx, address); err != nil {
		return 0, err
	}
	s.metrics.MarkedViewed("notification", "all", rows)
	return rows, nil
}

// invalidate must succeed before a mark is reported done; otherwise a
// cached page could still list the marked rows.
func (s *service) invalidate(ctx context.Context, address string) error {
	if err := s.cache.Invalidate(ctx, cachePrefix(address)); err != nil {
		return fmt.Errorf("failed to invalidate notification cache for %s: %w", address, err)
	}
	return nil
}
