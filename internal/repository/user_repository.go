package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"bounties-api/internal/domain"
)

type UserRepository interface {
	GetByPublicAddress(ctx context.Context, address string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	SetProfileImage(ctx context.Context, userID int64, url string) error

	ListSkills(ctx context.Context, userID int64) ([]domain.Skill, error)
	ClearSkills(ctx context.Context, userID int64) error
	FindSkillByNormalizedName(ctx context.Context, normalized string) (*domain.Skill, error)
	CreateSkill(ctx context.Context, skill *domain.Skill) error
	AttachSkill(ctx context.Context, userID, skillID int64) error

	ListLanguages(ctx context.Context, userID int64) ([]domain.Language, error)
	ClearLanguages(ctx context.Context, userID int64) error
	FindLanguageByNormalizedName(ctx context.Context, normalized string) (*domain.Language, error)
	AttachLanguage(ctx context.Context, userID, languageID int64) error

	GetSettings(ctx context.Context, settingsID int64) (*domain.Settings, error)
	CreateSettings(ctx context.Context, userID int64, settings *domain.Settings) error
	UpdateSettings(ctx context.Context, settings *domain.Settings) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByPublicAddress(ctx context.Context, address string) (*domain.User, error) {
	var user domain.User
	query := `
		SELECT id, public_address, nonce, profile_hash, name, email, organization, profile_image,
			website, twitter, github, linkedin, dribble, github_username, settings_id, created_at, updated_at
		FROM users WHERE public_address = $1`

	err := r.db.GetContext(ctx, &user, query, address)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = :name, email = :email, organization = :organization, website = :website,
			twitter = :twitter, github = :github, linkedin = :linkedin, dribble = :dribble,
			github_username = :github_username, updated_at = NOW()
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, user)
	return err
}

func (r *userRepository) SetProfileImage(ctx context.Context, userID int64, url string) error {
	query := `UPDATE users SET profile_image = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, userID, url)
	return err
}

func (r *userRepository) ListSkills(ctx context.Context, userID int64) ([]domain.Skill, error) {
	var skills []domain.Skill
	query := `
		SELECT s.id, s.name, s.normalized_name
		FROM skills s
		INNER JOIN user_skills us ON us.skill_id = s.id
		WHERE us.user_id = $1
		ORDER BY s.name`
	err := r.db.SelectContext(ctx, &skills, query, userID)
	return skills, err
}

func (r *userRepository) ClearSkills(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_skills WHERE user_id = $1`, userID)
	return err
}

func (r *userRepository) FindSkillByNormalizedName(ctx context.Context, normalized string) (*domain.Skill, error) {
	var skill domain.Skill
	query := `SELECT id, name, normalized_name FROM skills WHERE normalized_name = $1 ORDER BY id LIMIT 1`

	err := r.db.GetContext(ctx, &skill, query, normalized)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *userRepository) CreateSkill(ctx context.Context, skill *domain.Skill) error {
	skill.NormalizedName = domain.NormalizeTagName(skill.Name)
	query := `INSERT INTO skills (name, normalized_name) VALUES ($1, $2) RETURNING id`
	return r.db.QueryRowxContext(ctx, query, skill.Name, skill.NormalizedName).Scan(&skill.ID)
}

func (r *userRepository) AttachSkill(ctx context.Context, userID, skillID int64) error {
	query := `INSERT INTO user_skills (user_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, userID, skillID)
	return err
}

func (r *userRepository) ListLanguages(ctx context.Context, userID int64) ([]domain.Language, error) {
	var languages []domain.Language
	query := `
		SELECT l.id, l.name, l.normalized_name, l.native_name
		FROM languages l
		INNER JOIN user_languages ul ON ul.language_id = l.id
		WHERE ul.user_id = $1
		ORDER BY l.name`
	err := r.db.SelectContext(ctx, &languages, query, userID)
	return languages, err
}

func (r *userRepository) ClearLanguages(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_languages WHERE user_id = $1`, userID)
	return err
}

func (r *userRepository) FindLanguageByNormalizedName(ctx context.Context, normalized string) (*domain.Language, error) {
	var language domain.Language
	query := `SELECT id, name, normalized_name, native_name FROM languages WHERE normalized_name = $1 ORDER BY id LIMIT 1`

	err := r.db.GetContext(ctx, &language, query, normalized)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &language, nil
}

func (r *userRepository) AttachLanguage(ctx context.Context, userID, languageID int64) error {
	query := `INSERT INTO user_languages (user_id, language_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, userID, languageID)
	return err
}

func (r *userRepository) GetSettings(ctx context.Context, settingsID int64) (*domain.Settings, error) {
	var settings domain.Settings
	err := r.db.GetContext(ctx, &settings, `SELECT id, emails FROM settings WHERE id = $1`, settingsID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// CreateSettings inserts the settings row and links it to the user in one
// transaction.
func (r *userRepository) CreateSettings(ctx context.Context, userID int64, settings *domain.Settings) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.QueryRowxContext(ctx, `INSERT INTO settings (emails) VALUES ($1) RETURNING id`, settings.Emails).Scan(&settings.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET settings_id = $2 WHERE id = $1`, userID, settings.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *userRepository) UpdateSettings(ctx context.Context, settings *domain.Settings) error {
	_, err := r.db.ExecContext(ctx, `UPDATE settings SET emails = $2 WHERE id = $1`, settings.ID, settings.Emails)
	return err
}
