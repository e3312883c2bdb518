package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bounties-api/internal/domain"
)

func TestRequiredChecks(t *testing.T) {
	assert.Empty(t, RequiredChecks(ListTransactions))
	assert.Empty(t, RequiredChecks(ListNotifications))
	assert.Equal(t, []CheckKind{Authenticated, IdentityMatches}, RequiredChecks(MarkAllNotificationsViewed))
	assert.Equal(t, []CheckKind{Authenticated, ObjectOwner}, RequiredChecks(MarkNotificationViewed))
	assert.Equal(t, []CheckKind{Authenticated, ObjectOwner}, RequiredChecks(MarkTransactionViewed))
	assert.Equal(t, []CheckKind{Authenticated, IdentityMatches}, RequiredChecks(CreateTransaction))
	assert.Equal(t, []CheckKind{Authenticated}, RequiredChecks(Operation("something_new")))
}

func TestRequiredChecks_ReturnsCopy(t *testing.T) {
	checks := RequiredChecks(CreateTransaction)
	checks[0] = ObjectOwner

	assert.Equal(t, Authenticated, RequiredChecks(CreateTransaction)[0])
}

func TestCheck(t *testing.T) {
	caller := Caller{Address: "0xabc"}

	assert.ErrorIs(t, Check(Authenticated, Caller{}, ""), domain.ErrUnauthenticated)
	assert.NoError(t, Check(Authenticated, caller, ""))
	assert.NoError(t, Check(IdentityMatches, caller, "0xabc"))
	assert.ErrorIs(t, Check(IdentityMatches, caller, "0xdef"), domain.ErrForbidden)
	assert.ErrorIs(t, Check(ObjectOwner, caller, ""), domain.ErrForbidden)
	assert.ErrorIs(t, Check(CheckKind(99), caller, "0xabc"), domain.ErrForbidden)
}

func TestAuthorize(t *testing.T) {
	caller := Caller{Address: "0xabc"}

	assert.NoError(t, Authorize(ListTransactions, Caller{}, "0xabc", false))
	assert.ErrorIs(t, Authorize(MarkAllNotificationsViewed, Caller{}, "0xabc", false), domain.ErrUnauthenticated)
	assert.ErrorIs(t, Authorize(MarkAllNotificationsViewed, caller, "0xdef", false), domain.ErrForbidden)
	assert.NoError(t, Authorize(MarkNotificationViewed, caller, "", true))
	assert.ErrorIs(t, Authorize(MarkNotificationViewed, caller, "0xdef", false), domain.ErrForbidden)
}

func TestCheckKind_String(t *testing.T) {
	assert.Equal(t, "object_owner", ObjectOwner.String())
	assert.Equal(t, "unknown", CheckKind(0).String())
}
