package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrMultipleOwners is returned when a comment is linked to more than one
// bounty (or more than one fulfillment).
var ErrMultipleOwners = errors.New("comment has more than one owner of the same kind")

type Repositories struct {
	User         UserRepository
	Comment      CommentRepository
	Bounty       OwnerRepository
	Fulfillment  OwnerRepository
	Activity     ActivityRepository
	Notification NotificationRepository
	Transaction  TransactionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Comment:      NewCommentRepository(db),
		Bounty:       NewBountyRepository(db),
		Fulfillment:  NewFulfillmentRepository(db),
		Activity:     NewActivityRepository(db),
		Notification: NewNotificationRepository(db),
		Transaction:  NewTransactionRepository(db),
	}
}
