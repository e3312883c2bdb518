package domain

import "time"

type ActivityEventType string

const (
	ActivityComment ActivityEventType = "Comment"
)

// Activity is an append-only feed row. Rows derived from a comment reference
// exactly one of BountyID or FulfillmentID.
type Activity struct {
	ID            int64             `json:"id" db:"id"`
	EventType     ActivityEventType `json:"event_type" db:"event_type"`
	BountyID      *int64            `json:"bounty_id" db:"bounty_id"`
	FulfillmentID *int64            `json:"fulfillment_id" db:"fulfillment_id"`
	CommentID     *int64            `json:"comment_id" db:"comment_id"`
	Date          time.Time         `json:"date" db:"date"`
	UserID        int64             `json:"user_id" db:"user_id"`
	CommunityID   *int64            `json:"community_id" db:"community_id"`
}

func NewBountyCommentActivity(c Comment, bountyID int64) *Activity {
	a := newCommentActivity(c)
	a.BountyID = &bountyID
	return a
}

func NewFulfillmentCommentActivity(c Comment, fulfillmentID int64) *Activity {
	a := newCommentActivity(c)
	a.FulfillmentID = &fulfillmentID
	return a
}

func newCommentActivity(c Comment) *Activity {
	commentID := c.ID
	return &Activity{
		EventType:   ActivityComment,
		CommentID:   &commentID,
		Date:        c.Created,
		UserID:      c.UserID,
		CommunityID: c.CommunityID,
	}
}
