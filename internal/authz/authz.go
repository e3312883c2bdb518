// Package authz decides which checks guard each operation and evaluates
// them. Route middleware applies Authenticated and IdentityMatches; services
// apply ObjectOwner once the target record is loaded.
package authz

import (
	"bounties-api/internal/domain"
)

type CheckKind int

const (
	Authenticated CheckKind = iota + 1
	IdentityMatches
	ObjectOwner
)

func (k CheckKind) String() string {
	switch k {
	case Authenticated:
		return "authenticated"
	case IdentityMatches:
		return "identity_matches"
	case ObjectOwner:
		return "object_owner"
	default:
		return "unknown"
	}
}

type Operation string

const (
	ListTransactions          Operation = "list_transactions"
	CreateTransaction         Operation = "create_transaction"
	MarkTransactionViewed     Operation = "mark_transaction_viewed"
	MarkAllTransactionsViewed Operation = "mark_all_transactions_viewed"

	ListNotifications          Operation = "list_notifications"
	CountNotifications         Operation = "count_notifications"
	MarkNotificationViewed     Operation = "mark_notification_viewed"
	MarkAllNotificationsViewed Operation = "mark_all_notifications_viewed"

	GetProfile         Operation = "get_profile"
	UpdateProfile      Operation = "update_profile"
	GetSettings        Operation = "get_settings"
	UpdateSettings     Operation = "update_settings"
	UploadProfileImage Operation = "upload_profile_image"
)

var requiredChecks = map[Operation][]CheckKind{
	ListTransactions:          nil,
	CreateTransaction:         {Authenticated, IdentityMatches},
	MarkTransactionViewed:     {Authenticated, ObjectOwner},
	MarkAllTransactionsViewed: {Authenticated, IdentityMatches},

	ListNotifications:          nil,
	CountNotifications:         nil,
	MarkNotificationViewed:     {Authenticated, ObjectOwner},
	MarkAllNotificationsViewed: {Authenticated, IdentityMatches},

	GetProfile:         nil,
	UpdateProfile:      {Authenticated, IdentityMatches},
	GetSettings:        {Authenticated, IdentityMatches},
	UpdateSettings:     {Authenticated, IdentityMatches},
	UploadProfileImage: {Authenticated, IdentityMatches},
}

// RequiredChecks lists the checks for op in evaluation order. Unknown
// operations require authentication.
func RequiredChecks(op Operation) []CheckKind {
	checks, ok := requiredChecks[op]
	if !ok {
		return []CheckKind{Authenticated}
	}
	out := make([]CheckKind, len(checks))
	copy(out, checks)
	return out
}

func Requires(op Operation, kind CheckKind) bool {
	for _, k := range RequiredChecks(op) {
		if k == kind {
			return true
		}
	}
	return false
}

// Caller is the authenticated identity of a request; the zero value is an
// anonymous caller.
type Caller struct {
	Address string
}

func (c Caller) IsAuthenticated() bool {
	return c.Address != ""
}

// Check evaluates one check. target is the path identity for
// IdentityMatches and the record owner's address for ObjectOwner; both are
// expected in normalized form.
func Check(kind CheckKind, caller Caller, target string) error {
	if !caller.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}

	switch kind {
	case Authenticated:
		return nil
	case IdentityMatches, ObjectOwner:
		if target == "" || caller.Address != target {
			return domain.ErrForbidden
		}
		return nil
	default:
		return domain.ErrForbidden
	}
}

// Authorize runs every check op requires that can be evaluated with target.
// ObjectOwner is skipped when skipOwner is set, for boundaries that do not
// have the record yet.
func Authorize(op Operation, caller Caller, target string, skipOwner bool) error {
	for _, kind := range RequiredChecks(op) {
		if kind == ObjectOwner && skipOwner {
			continue
		}
		if err := Check(kind, caller, target); err != nil {
			return err
		}
	}
	return nil
}
