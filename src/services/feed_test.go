package services

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/logging"
	"github.com/theleywin/Backend-DevTinder/src/models"
	"github.com/theleywin/Backend-DevTinder/src/store/storetest"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{1, 10, 1, 10},
		{0, 10, 1, 10},
		{-3, 10, 1, 10},
		{2, 0, 2, 10},
		{2, -1, 2, 10},
		{1, 50, 1, 50},
		{1, 51, 1, 50},
		{1, 100, 1, 50},
		{math.MaxInt, 10, MaxPage, 10},
		{MaxPage + 1, 50, MaxPage, 50},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%d", tt.page, tt.size), func(t *testing.T) {
			p, s := NormalizePage(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, p)
			assert.Equal(t, tt.wantSize, s)
		})
	}
}

func TestFeed_ExcludesEveryRelatedUserAndSelf(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	v := e.user(t, "viewer", 0)

	var related []string
	statuses := []models.ConnectionStatus{
		models.ConnectionStatusPending,
		models.ConnectionStatus("interested"),
		models.ConnectionStatusAccepted,
		models.ConnectionStatusRejected,
		models.ConnectionStatusIgnored,
	}
	for i, status := range statuses {
		out := e.user(t, fmt.Sprintf("out%d", i), 10+i)
		in := e.user(t, fmt.Sprintf("in%d", i), 20+i)
		storetest.SeedRequest(t, e.st, v.ID, out.ID, status, 2*i)
		storetest.SeedRequest(t, e.st, in.ID, v.ID, status, 2*i+1)
		related = append(related, out.ID, in.ID)
	}
	free1 := e.user(t, "free1", 30)
	free2 := e.user(t, "free2", 31)

	got, err := e.feed.ComputeFeed(ctx, v.ID, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, []string{free1.ID, free2.ID}, profileIDs(got))
	for _, id := range append(related, v.ID) {
		assert.NotContains(t, profileIDs(got), id)
	}
}

func TestFeed_PaginatesInCreationOrder(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	v := e.user(t, "viewer", 0)

	var ids []string
	for i := 0; i < 25; i++ {
		ids = append(ids, e.user(t, fmt.Sprintf("u%02d", i), i+1).ID)
	}

	page1, err := e.feed.ComputeFeed(ctx, v.ID, 1, 10)
	require.NoError(t, err)
	page2, err := e.feed.ComputeFeed(ctx, v.ID, 2, 10)
	require.NoError(t, err)
	page3, err := e.feed.ComputeFeed(ctx, v.ID, 3, 10)
	require.NoError(t, err)
	page4, err := e.feed.ComputeFeed(ctx, v.ID, 4, 10)
	require.NoError(t, err)

	assert.Equal(t, ids[0:10], profileIDs(page1))
	assert.Equal(t, ids[10:20], profileIDs(page2))
	assert.Equal(t, ids[20:25], profileIDs(page3))
	assert.NotNil(t, page4)
	assert.Empty(t, page4)

	clamped, err := e.feed.ComputeFeed(ctx, v.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, ids[0:10], profileIDs(clamped))
}

func TestFeed_HugePageIsEmpty(t *testing.T) {
	e := newEnv(t)
	v := e.user(t, "viewer", 0)
	for i := 0; i < 3; i++ {
		e.user(t, fmt.Sprintf("u%d", i), i+1)
	}

	for _, page := range []int{math.MaxInt/10 + 2, math.MaxInt} {
		for _, size := range []int{10, 50, 100} {
			got, err := e.feed.ComputeFeed(context.Background(), v.ID, page, size)
			require.NoError(t, err)
			assert.Empty(t, got, "page %d size %d", page, size)
		}
	}
}

func TestFeed_PageSizeIsCappedAt50(t *testing.T) {
	e := newEnv(t)
	v := e.user(t, "viewer", 0)
	for i := 0; i < 60; i++ {
		e.user(t, fmt.Sprintf("u%02d", i), i+1)
	}

	got, err := e.feed.ComputeFeed(context.Background(), v.ID, 1, 100)
	require.NoError(t, err)
	assert.Len(t, got, 50)
}

func TestFeed_Scenarios(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "a", 0)
	b := e.user(t, "b", 1)
	c := e.user(t, "c", 2)

	req, err := e.ledger.SendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)

	feedA, err := e.feed.ComputeFeed(ctx, a.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, profileIDs(feedA))

	feedB, err := e.feed.ComputeFeed(ctx, b.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, profileIDs(feedB))

	_, err = e.ledger.Respond(ctx, req.ID, b.ID, "accepted")
	require.NoError(t, err)

	connsA, err := e.aggregator.ListAcceptedConnections(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, profileIDs(connsA))

	connsB, err := e.aggregator.ListAcceptedConnections(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, profileIDs(connsB))

	feedA, err = e.feed.ComputeFeed(ctx, a.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, profileIDs(feedA))

	feedC, err := e.feed.ComputeFeed(ctx, c.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, profileIDs(feedC))
}

func TestFeed_RejectedStaysExcluded(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "a", 0)
	b := e.user(t, "b", 1)

	req, err := e.ledger.SendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = e.ledger.Respond(ctx, req.ID, b.ID, "rejected")
	require.NoError(t, err)

	for _, viewer := range []string{a.ID, b.ID} {
		got, err := e.feed.ComputeFeed(ctx, viewer, 1, 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestFeed_PassesViewerAndPagingToStore(t *testing.T) {
	var gotViewer string
	var gotOffset, gotLimit int
	users := &fakeUsers{listDiscoverable: func(_ context.Context, viewerID string, offset, limit int) ([]models.User, error) {
		gotViewer, gotOffset, gotLimit = viewerID, offset, limit
		return nil, nil
	}}
	f := NewFeedResolver(users, logging.Discard())

	got, err := f.ComputeFeed(context.Background(), "v", 3, 100)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "v", gotViewer)
	assert.Equal(t, 100, gotOffset)
	assert.Equal(t, 50, gotLimit)
}

func TestFeed_StoreFailure(t *testing.T) {
	users := &fakeUsers{listDiscoverable: func(context.Context, string, int, int) ([]models.User, error) {
		return nil, errBoom
	}}
	f := NewFeedResolver(users, logging.Discard())

	_, err := f.ComputeFeed(context.Background(), "v", 1, 10)
	assert.ErrorIs(t, err, common.ErrUnexpected)
}
