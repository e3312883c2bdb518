package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bounties-api/internal/domain"
)

type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *TransactionRepository) List(ctx context.Context, filter domain.TransactionFilter, params domain.PaginationParams) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *TransactionRepository) MarkViewed(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TransactionRepository) MarkAllViewed(ctx context.Context, ownerAddress string) (int64, error) {
	args := m.Called(ctx, ownerAddress)
	return args.Get(0).(int64), args.Error(1)
}
