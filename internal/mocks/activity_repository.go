package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bounties-api/internal/domain"
)

type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}
