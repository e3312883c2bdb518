package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bounties-api/internal/domain"
	"bounties-api/internal/mocks"
	"bounties-api/internal/repository"
)

type fixture struct {
	comments     *mocks.CommentRepository
	bounties     *mocks.OwnerRepository
	fulfillments *mocks.OwnerRepository
	activities   *mocks.ActivityRepository
	svc          Service
}

func newFixture() *fixture {
	f := &fixture{
		comments:     new(mocks.CommentRepository),
		bounties:     new(mocks.OwnerRepository),
		fulfillments: new(mocks.OwnerRepository),
		activities:   new(mocks.ActivityRepository),
	}
	f.svc = NewService(f.comments, f.bounties, f.fulfillments, f.activities, nil, time.Minute, nil, nil)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.comments.AssertExpectations(t)
	f.bounties.AssertExpectations(t)
	f.fulfillments.AssertExpectations(t)
	f.activities.AssertExpectations(t)
}

func bountyActivity(commentID, bountyID int64) interface{} {
	return mock.MatchedBy(func(a *domain.Activity) bool {
		return a.EventType == domain.ActivityComment &&
			a.BountyID != nil && *a.BountyID == bountyID &&
			a.FulfillmentID == nil &&
			a.CommentID != nil && *a.CommentID == commentID
	})
}

func fulfillmentActivity(commentID, fulfillmentID int64) interface{} {
	return mock.MatchedBy(func(a *domain.Activity) bool {
		return a.EventType == domain.ActivityComment &&
			a.FulfillmentID != nil && *a.FulfillmentID == fulfillmentID &&
			a.BountyID == nil &&
			a.CommentID != nil && *a.CommentID == commentID
	})
}

func TestPopulateFromComments(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2019, 3, 1, 12, 0, 0, 0, time.UTC)
	community := int64(4)

	t.Run("Bounty Comment", func(t *testing.T) {
		f := newFixture()
		comment := domain.Comment{ID: 1, UserID: 10, CommunityID: &community, Created: created}

		f.comments.On("ListAll", ctx).Return([]domain.Comment{comment}, nil).Once()
		f.bounties.On("FindByComment", ctx, int64(1)).Return(int64(100), nil).Once()
		f.fulfillments.On("FindByComment", ctx, int64(1)).Return(int64(0), domain.ErrNotFound).Once()
		f.activities.On("Create", ctx, mock.MatchedBy(func(a *domain.Activity) bool {
			return *a.BountyID == 100 && *a.CommentID == 1 && a.UserID == 10 &&
				a.Date.Equal(created) && a.CommunityID != nil && *a.CommunityID == community
		})).Return(nil).Once()

		n, err := f.svc.PopulateFromComments(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, n)
		f.assertExpectations(t)
	})

	t.Run("Fulfillment Comment", func(t *testing.T) {
		f := newFixture()

		f.comments.On("ListAll", ctx).Return([]domain.Comment{{ID: 2, UserID: 11}}, nil).Once()
		f.bounties.On("FindByComment", ctx, int64(2)).Return(int64(0), domain.ErrNotFound).Once()
		f.fulfillments.On("FindByComment", ctx, int64(2)).Return(int64(200), nil).Once()
		f.activities.On("Create", ctx, fulfillmentActivity(2, 200)).Return(nil).Once()

		n, err := f.svc.PopulateFromComments(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, n)
		f.assertExpectations(t)
	})

	t.Run("Orphan Comment", func(t *testing.T) {
		f := newFixture()

		f.comments.On("ListAll", ctx).Return([]domain.Comment{{ID: 3}}, nil).Once()
		f.bounties.On("FindByComment", ctx, int64(3)).Return(int64(0), domain.ErrNotFound).Once()
		f.fulfillments.On("FindByComment", ctx, int64(3)).Return(int64(0), domain.ErrNotFound).Once()

		n, err := f.svc.PopulateFromComments(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 0, n)
		f.activities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("Comment On Bounty And Fulfillment", func(t *testing.T) {
		f := newFixture()

		f.comments.On("ListAll", ctx).Return([]domain.Comment{{ID: 4}}, nil).Once()
		f.bounties.On("FindByComment", ctx, int64(4)).Return(int64(100), nil).Once()
		f.fulfillments.On("FindByComment", ctx, int64(4)).Return(int64(200), nil).Once()
		f.activities.On("Create", ctx, bountyActivity(4, 100)).Return(nil).Once()
		f.activities.On("Create", ctx, fulfillmentActivity(4, 200)).Return(nil).Once()

		n, err := f.svc.PopulateFromComments(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 2, n)
		f.assertExpectations(t)
	})

	t.Run("Mixed Comments", func(t *testing.T) {
		f := newFixture()

		f.comments.On("ListAll", ctx).Return([]domain.Comment{{ID: 1}, {ID: 2}, {ID: 3}}, nil).Once()
		f.bounties.On("FindByComment", ctx, int64(1)).Return(int64(100), nil).Once()
		f.bounties.On("FindByComment", ctx, int64(2)).Return(int64(0), domain.ErrNotFound).Once()
		f.bounties.On("FindByComment", ctx, int64(3)).Return(int64(0), domain.ErrNotFound).Once()
		f.fulfillments.On("FindByComment", ctx, int64(1)).Return(int64(0), domain.ErrNotFound).Once()
		f.fulfillments.On("FindByComment", ctx, int64(2)).Return(int64(200), nil).Once()
		f.fulfillments.On("FindByComment", ctx, int64(3)).Return(int64(0), domain.ErrNotFound).Once()
		f.activities.On("Create", ctx, bountyActivity(1, 100)).Return(nil).Once()
		f.activities.On("Create", ctx, fulfillmentActivity(2, 200)).Return(nil).Once()

		n, err := f.svc.PopulateFromComments(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 2, n)
		f.assertExpectations(t)
	})
}

func TestPopulateFromComments_Failures(t *testing.T) {
	ctx := context.Background()
	storageErr := errors.New("connection refused")

	t.Run("Listing Fails", func(t *testing.T) {
		f := newFixture()
		f.comments.On("ListAll", ctx).Return(nil, storageErr).Once()

		n, err := f.svc.PopulateFromComments(ctx)

		assert.ErrorIs(t, err, storageErr)
		assert.Equal(t, 0, n)
	})

	t.Run("Lookup Fails After Progress", func(t *testing.T) {
		f := newFixture()

		f.comments.On("ListAll", ctx).Return([]domain.Comment{{ID: 1}, {ID: 2}, {ID: 3}}, nil).Once()
		f.bounties.On("FindByComment", ctx, int64(1)).Return(int64(100), nil).Once()
		f.fulfillments.On("FindByComment", ctx, int64(1)).Return(int64(0), domain.ErrNotFound).Once()
		f.activities.On("Create", ctx, bountyActivity(1, 100)).Return(nil).Once()
		f.bounties.On("FindByComment", ctx, int64(2)).Return(int64(0), storageErr).Once()

		n, err := f.svc.PopulateFromComments(ctx)

		assert.ErrorIs(t, err, storageErr)
		assert.Equal(t, 1, n)
		f.bounties.AssertNotCalled(t, "FindByComment", ctx, int64(3))
		f.fulfillments.AssertNotCalled(t, "FindByComment", ctx, int64(2))
	})

	t.Run("Several Owners Aborts", func(t *testing.T) {
		f := newFixture()

		f.comments.On("ListAll", ctx).Return([]domain.Comment{{ID: 5}}, nil).Once()
		f.bounties.On("FindByComment", ctx, int64(5)).Return(int64(0), repository.ErrMultipleOwners).Once()

		_, err := f.svc.PopulateFromComments(ctx)

		assert.ErrorIs(t, err, repository.ErrMultipleOwners)
	})

	t.Run("Insert Fails", func(t *testing.T) {
		f := newFixture()

		f.comments.On("ListAll", ctx).Return([]domain.Comment{{ID: 6}}, nil).Once()
		f.bounties.On("FindByComment", ctx, int64(6)).Return(int64(0), domain.ErrNotFound).Once()
		f.fulfillments.On("FindByComment", ctx, int64(6)).Return(int64(300), nil).Once()
		f.activities.On("Create", ctx, fulfillmentActivity(6, 300)).Return(storageErr).Once()

		n, err := f.svc.PopulateFromComments(ctx)

		assert.ErrorIs(t, err, storageErr)
		assert.Equal(t, 0, n)
	})

	t.Run("Abort Carries Stack", func(t *testing.T) {
		f := newFixture()
		f.comments.On("ListAll", ctx).Return(nil, storageErr).Once()

		_, err := f.svc.PopulateFromComments(ctx)

		var runErr *RunError
		require.True(t, errors.As(err, &runErr))
		assert.NotEmpty(t, runErr.Stack)
		assert.Contains(t, string(runErr.Stack), "PopulateFromComments")
		assert.ErrorIs(t, err, storageErr)
	})
}

func newLockedFixture(t *testing.T) (*fixture, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	f := newFixture()
	f.svc = NewService(f.comments, f.bounties, f.fulfillments, f.activities, client, time.Minute, nil, nil)
	return f, mr
}

func TestPopulateFromComments_Lock(t *testing.T) {
	ctx := context.Background()

	t.Run("Released After Run", func(t *testing.T) {
		f, mr := newLockedFixture(t)
		f.comments.On("ListAll", ctx).Return([]domain.Comment{}, nil).Once()

		_, err := f.svc.PopulateFromComments(ctx)

		require.NoError(t, err)
		assert.False(t, mr.Exists(populateLockKey))
	})

	t.Run("Held Lock Rejects Second Run", func(t *testing.T) {
		f, mr := newLockedFixture(t)
		require.NoError(t, mr.Set(populateLockKey, "another-run"))

		n, err := f.svc.PopulateFromComments(ctx)

		assert.ErrorIs(t, err, ErrAlreadyRunning)
		assert.Equal(t, 0, n)
		f.comments.AssertNotCalled(t, "ListAll", mock.Anything)
		got, _ := mr.Get(populateLockKey)
		assert.Equal(t, "another-run", got)
	})

	t.Run("Expired Lock Taken Over Is Not Released", func(t *testing.T) {
		f, mr := newLockedFixture(t)
		f.comments.On("ListAll", ctx).Run(func(mock.Arguments) {
			mr.FastForward(2 * time.Minute)
			require.NoError(t, mr.Set(populateLockKey, "next-run"))
		}).Return([]domain.Comment{}, nil).Once()

		_, err := f.svc.PopulateFromComments(ctx)

		require.NoError(t, err)
		got, err := mr.Get(populateLockKey)
		require.NoError(t, err)
		assert.Equal(t, "next-run", got)
	})

	t.Run("Lock Stored With TTL", func(t *testing.T) {
		f, mr := newLockedFixture(t)
		f.comments.On("ListAll", ctx).Run(func(mock.Arguments) {
			assert.True(t, mr.Exists(populateLockKey))
			assert.Equal(t, time.Minute, mr.TTL(populateLockKey))
		}).Return([]domain.Comment{}, nil).Once()

		_, err := f.svc.PopulateFromComments(ctx)

		require.NoError(t, err)
	})
}
