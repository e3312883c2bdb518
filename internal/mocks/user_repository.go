package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bounties-api/internal/domain"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetByPublicAddress(ctx context.Context, address string) (*domain.User, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) SetProfileImage(ctx context.Context, userID int64, url string) error {
	args := m.Called(ctx, userID, url)
	return args.Error(0)
}

func (m *UserRepository) ListSkills(ctx context.Context, userID int64) ([]domain.Skill, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Skill), args.Error(1)
}

func (m *UserRepository) ClearSkills(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *UserRepository) FindSkillByNormalizedName(ctx context.Context, normalized string) (*domain.Skill, error) {
	args := m.Called(ctx, normalized)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Skill), args.Error(1)
}

func (m *UserRepository) CreateSkill(ctx context.Context, skill *domain.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}

func (m *UserRepository) AttachSkill(ctx context.Context, userID, skillID int64) error {
	args := m.Called(ctx, userID, skillID)
	return args.Error(0)
}

func (m *UserRepository) ListLanguages(ctx context.Context, userID int64) ([]domain.Language, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Language), args.Error(1)
}

func (m *UserRepository) ClearLanguages(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *UserRepository) FindLanguageByNormalizedName(ctx context.Context, normalized string) (*domain.Language, error) {
	args := m.Called(ctx, normalized)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Language), args.Error(1)
}

func (m *UserRepository) AttachLanguage(ctx context.Context, userID, languageID int64) error {
	args := m.Called(ctx, userID, languageID)
	return args.Error(0)
}

func (m *UserRepository) GetSettings(ctx context.Context, settingsID int64) (*domain.Settings, error) {
	args := m.Called(ctx, settingsID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *UserRepository) CreateSettings(ctx context.Context, userID int64, settings *domain.Settings) error {
	args := m.Called(ctx, userID, settings)
	return args.Error(0)
}

func (m *UserRepository) UpdateSettings(ctx context.Context, settings *domain.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}
