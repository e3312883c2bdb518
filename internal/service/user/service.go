package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"bounties-api/internal/authz"
	"bounties-api/internal/config"
	"bounties-api/internal/domain"
	"bounties-api/internal/pkg/emailcatalog"
	"bounties-api/internal/repository"
)

var (
	ErrStorageUnavailable = fmt.Errorf("%w: object storage is not configured", domain.ErrUnavailable)
	ErrUnsupportedImage   = fmt.Errorf("%w: profile image must be a png, jpeg, gif or webp up to 5MB", domain.ErrInvalidInput)
)

const maxProfileImageSize = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// ObjectStore is the part of the MinIO client used for profile images.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// SettingsView is a settings row plus what the email sender derives from it.
type SettingsView struct {
	domain.Settings
	AcceptedEmailSettings         []int    `json:"accepted_email_settings"`
	ReadableAcceptedEmailSettings []string `json:"readable_accepted_email_settings"`
}

type Service interface {
	GetProfile(ctx context.Context, address string) (*domain.User, error)
	UpdateProfile(ctx context.Context, address string, caller authz.Caller, input domain.UpdateProfileInput) (*domain.User, error)
	GetSettings(ctx context.Context, address string, caller authz.Caller) (*SettingsView, error)
	UpdateEmailSettings(ctx context.Context, address string, caller authz.Caller, emails domain.EmailOptions) (*SettingsView, error)
	UploadProfileImage(ctx context.Context, address string, caller authz.Caller, image domain.ProfileImage, reader io.Reader) (string, error)
}

type service struct {
	userRepo repository.UserRepository
	store    ObjectStore
	catalog  *emailcatalog.Catalog
	validate *validator.Validate
	cfg      *config.Config
}

func NewService(userRepo repository.UserRepository, store ObjectStore, catalog *emailcatalog.Catalog, validate *validator.Validate, cfg *config.Config) Service {
	if validate == nil {
		validate = validator.New()
	}
	return &service{
		userRepo: userRepo,
		store:    store,
		catalog:  catalog,
		validate: validate,
		cfg:      cfg,
	}
}

func (s *service) GetProfile(ctx context.Context, address string) (*domain.User, error) {
	address, err := domain.NormalizeIdentity(address)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByPublicAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	if err := s.loadTags(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, address string, caller authz.Caller, input domain.UpdateProfileInput) (*domain.User, error) {
	user, err := s.authorizedUser(ctx, authz.UpdateProfile, address, caller)
	if err != nil {
		return nil, err
	}

	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Email = input.Email
	user.Organization = input.Organization
	user.Website = input.Website
	user.Twitter = input.Twitter
	user.Github = input.Github
	user.Linkedin = input.Linkedin
	user.Dribble = input.Dribble
	user.GithubUsername = input.GithubUsername

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if input.Skills != nil {
		if err := s.replaceSkills(ctx, user.ID, input.Skills); err != nil {
			return nil, err
		}
	}
	if input.Languages != nil {
		if err := s.replaceLanguages(ctx, user.ID, input.Languages); err != nil {
			return nil, err
		}
	}

	if err := s.loadTags(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// replaceSkills creates skills nobody used before.
func (s *service) replaceSkills(ctx context.Context, userID int64, names []string) error {
	if err := s.userRepo.ClearSkills(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear skills: %w", err)
	}

	for _, name := range names {
		normalized := domain.NormalizeTagName(name)
		if normalized == "" {
			continue
		}

		skill, err := s.userRepo.FindSkillByNormalizedName(ctx, normalized)
		if errors.Is(err, domain.ErrNotFound) {
			skill = &domain.Skill{Name: strings.TrimSpace(name)}
			err = s.userRepo.CreateSkill(ctx, skill)
		}
		if err != nil {
			return fmt.Errorf("failed to resolve skill %q: %w", name, err)
		}

		if err := s.userRepo.AttachSkill(ctx, userID, skill.ID); err != nil {
			return fmt.Errorf("failed to attach skill %q: %w", name, err)
		}
	}
	return nil
}

// replaceLanguages only attaches languages already in the table.
func (s *service) replaceLanguages(ctx context.Context, userID int64, names []string) error {
	if err := s.userRepo.ClearLanguages(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear languages: %w", err)
	}

	for _, name := range names {
		normalized := domain.NormalizeTagName(name)
		if normalized == "" {
			continue
		}

		language, err := s.userRepo.FindLanguageByNormalizedName(ctx, normalized)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to resolve language %q: %w", name, err)
		}

		if err := s.userRepo.AttachLanguage(ctx, userID, language.ID); err != nil {
			return fmt.Errorf("failed to attach language %q: %w", name, err)
		}
	}
	return nil
}

func (s *service) GetSettings(ctx context.Context, address string, caller authz.Caller) (*SettingsView, error) {
	user, err := s.authorizedUser(ctx, authz.GetSettings, address, caller)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsFor(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.view(settings), nil
}

// UpdateEmailSettings replaces each group present in emails; a nil group
// keeps its stored values.
func (s *service) UpdateEmailSettings(ctx context.Context, address string, caller authz.Caller, emails domain.EmailOptions) (*SettingsView, error) {
	user, err := s.authorizedUser(ctx, authz.UpdateSettings, address, caller)
	if err != nil {
		return nil, err
	}

	if err := s.catalog.Validate(emails); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	settings, err := s.settingsFor(ctx, user)
	if err != nil {
		return nil, err
	}

	if emails.Issuer != nil {
		settings.Emails.Issuer = emails.Issuer
	}
	if emails.Both != nil {
		settings.Emails.Both = emails.Both
	}
	if emails.Fulfiller != nil {
		settings.Emails.Fulfiller = emails.Fulfiller
	}

	if err := s.userRepo.UpdateSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return s.view(settings), nil
}

func (s *service) settingsFor(ctx context.Context, user *domain.User) (*domain.Settings, error) {
	if user.SettingsID != nil {
		return s.userRepo.GetSettings(ctx, *user.SettingsID)
	}

	settings := &domain.Settings{Emails: s.catalog.Defaults()}
	if err := s.userRepo.CreateSettings(ctx, user.ID, settings); err != nil {
		return nil, fmt.Errorf("failed to create settings: %w", err)
	}
	user.SettingsID = &settings.ID
	return settings, nil
}

func (s *service) view(settings *domain.Settings) *SettingsView {
	codes := s.catalog.AcceptedCodes(settings.Emails)
	if codes == nil {
		codes = []int{}
	}
	names := settings.Emails.Enabled()
	if names == nil {
		names = []string{}
	}
	return &SettingsView{
		Settings:                      *settings,
		AcceptedEmailSettings:         codes,
		ReadableAcceptedEmailSettings: names,
	}
}

func (s *service) UploadProfileImage(ctx context.Context, address string, caller authz.Caller, image domain.ProfileImage, reader io.Reader) (string, error) {
	user, err := s.authorizedUser(ctx, authz.UploadProfileImage, address, caller)
	if err != nil {
		return "", err
	}

	if s.store == nil {
		return "", ErrStorageUnavailable
	}
	if !allowedImageTypes[image.MimeType] || image.Size <= 0 || image.Size > maxProfileImageSize {
		return "", ErrUnsupportedImage
	}

	storagePath := fmt.Sprintf("profiles/%s/%s", user.PublicAddress, uuid.New().String())
	_, err = s.store.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, image.Size, minio.PutObjectOptions{
		ContentType: image.MimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	publicURL := s.getPublicURL(storagePath)
	if err := s.userRepo.SetProfileImage(ctx, user.ID, publicURL); err != nil {
		_ = s.store.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return "", err
	}
	return publicURL, nil
}

func (s *service) getPublicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, (&url.URL{Path: storagePath}).EscapedPath())
}

func (s *service) authorizedUser(ctx context.Context, op authz.Operation, address string, caller authz.Caller) (*domain.User, error) {
	address, err := domain.NormalizeIdentity(address)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(op, caller, address, false); err != nil {
		return nil, err
	}
	return s.userRepo.GetByPublicAddress(ctx, address)
}

func (s *service) loadTags(ctx context.Context, user *domain.User) error {
	skills, err := s.userRepo.ListSkills(ctx, user.ID)
	if err != nil {
		return err
	}
	languages, err := s.userRepo.ListLanguages(ctx, user.ID)
	if err != nil {
		return err
	}

	if skills == nil {
		skills = []domain.Skill{}
	}
	if languages == nil {
		languages = []domain.Language{}
	}
	user.Skills = skills
	user.Languages = languages
	return nil
}
