package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bounties-api/internal/domain"
)

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) GetByID(ctx context.Context, id int64) (*domain.DashboardNotification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardNotification), args.Error(1)
}

func (m *NotificationRepository) List(ctx context.Context, filter domain.NotificationFilter, params domain.PaginationParams) ([]domain.DashboardNotification, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.DashboardNotification), args.Get(1).(int64), args.Error(2)
}

func (m *NotificationRepository) Count(ctx context.Context, filter domain.NotificationFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) MarkViewed(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *NotificationRepository) MarkAllViewed(ctx context.Context, ownerAddress string, category domain.NotificationCategory) (int64, error) {
	args := m.Called(ctx, ownerAddress, category)
	return args.Get(0).(int64), args.Error(1)
}
