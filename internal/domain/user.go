package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             int64     `json:"id" db:"id"`
	PublicAddress  string    `json:"public_address" db:"public_address"`
	Nonce          uuid.UUID `json:"nonce" db:"nonce"`
	ProfileHash    string    `json:"profile_hash" db:"profile_hash"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Organization   string    `json:"organization" db:"organization"`
	ProfileImage   string    `json:"profile_image" db:"profile_image"`
	Website        string    `json:"website" db:"website"`
	Twitter        string    `json:"twitter" db:"twitter"`
	Github         string    `json:"github" db:"github"`
	Linkedin       string    `json:"linkedin" db:"linkedin"`
	Dribble        string    `json:"dribble" db:"dribble"`
	GithubUsername string    `json:"github_username" db:"github_username"`
	SettingsID     *int64    `json:"-" db:"settings_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	Skills    []Skill    `json:"skills"`
	Languages []Language `json:"languages"`
}

type Skill struct {
	ID             int64  `json:"id" db:"id"`
	Name           string `json:"name" db:"name"`
	NormalizedName string `json:"normalized_name" db:"normalized_name"`
}

type Language struct {
	ID             int64  `json:"id" db:"id"`
	Name           string `json:"name" db:"name"`
	NormalizedName string `json:"normalized_name" db:"normalized_name"`
	NativeName     string `json:"native_name" db:"native_name"`
}

// NormalizeTagName is the lookup key shared by skills and languages.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type UpdateProfileInput struct {
	Name           string   `json:"name" validate:"max=128"`
	Email          string   `json:"email" validate:"omitempty,email,max=128"`
	Organization   string   `json:"organization" validate:"max=128"`
	Website        string   `json:"website" validate:"max=128"`
	Twitter        string   `json:"twitter" validate:"max=128"`
	Github         string   `json:"github" validate:"max=128"`
	Linkedin       string   `json:"linkedin" validate:"max=128"`
	Dribble        string   `json:"dribble" validate:"max=128"`
	GithubUsername string   `json:"github_username" validate:"max=128"`
	Skills         []string `json:"skills" validate:"dive,max=128"`
	Languages      []string `json:"languages" validate:"dive,max=128"`
}

type ProfileImage struct {
	FileName string
	Size     int64
	MimeType string
}
