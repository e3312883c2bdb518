package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailOptions_Enabled(t *testing.T) {
	opts := EmailOptions{
		Issuer:    map[string]bool{"FulfillmentSubmitted": true, "BountyExpired": false},
		Both:      map[string]bool{"CommentReceived": true},
		Fulfiller: map[string]bool{"FulfillmentAccepted": true, "CommentReceived": false},
	}

	// fulfiller overrides both for the shared key
	assert.Equal(t, []string{"FulfillmentAccepted", "FulfillmentSubmitted"}, opts.Enabled())
}

func TestEmailOptions_ScanValue(t *testing.T) {
	opts := EmailOptions{Both: map[string]bool{"CommentReceived": true}}

	raw, err := opts.Value()
	require.NoError(t, err)

	var scanned EmailOptions
	require.NoError(t, scanned.Scan(raw))
	assert.True(t, scanned.Both["CommentReceived"])

	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned.Both)

	assert.Error(t, scanned.Scan(42))
}

func TestNewCommentActivity(t *testing.T) {
	community := int64(3)
	c := Comment{ID: 7, UserID: 11, CommunityID: &community}

	bounty := NewBountyCommentActivity(c, 5)
	assert.Equal(t, ActivityComment, bounty.EventType)
	assert.Equal(t, int64(5), *bounty.BountyID)
	assert.Nil(t, bounty.FulfillmentID)
	assert.Equal(t, int64(7), *bounty.CommentID)
	assert.Equal(t, int64(11), bounty.UserID)

	fulfillment := NewFulfillmentCommentActivity(c, 9)
	assert.Nil(t, fulfillment.BountyID)
	assert.Equal(t, int64(9), *fulfillment.FulfillmentID)
	assert.Equal(t, &community, fulfillment.CommunityID)
}
