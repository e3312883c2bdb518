package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bounties-api/internal/domain"
)

type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) ListAll(ctx context.Context) ([]domain.Comment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}
