package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type OwnerRepository struct {
	mock.Mock
}

func (m *OwnerRepository) FindByComment(ctx context.Context, commentID int64) (int64, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(int64), args.Error(1)
}
