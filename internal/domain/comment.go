package domain

import "time"

type Comment struct {
	ID          int64     `json:"id" db:"id"`
	Text        string    `json:"text" db:"text"`
	UserID      int64     `json:"user_id" db:"user_id"`
	CommunityID *int64    `json:"community_id" db:"community_id"`
	Created     time.Time `json:"created" db:"created"`
}
