package services

import (
	"context"
	"math"

	"github.com/theleywin/Backend-DevTinder/src/logging"
	"github.com/theleywin/Backend-DevTinder/src/metrics"
	"github.com/theleywin/Backend-DevTinder/src/models"
	"github.com/theleywin/Backend-DevTinder/src/store"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50

	// MaxPage keeps (page-1)*size within an int for every allowed size.
	MaxPage = math.MaxInt / MaxPageSize
)

// NormalizePage clamps paging input: page below 1 becomes 1, pages above
// MaxPage are capped, a non-positive size becomes DefaultPageSize and sizes
// above MaxPageSize are capped.
func NormalizePage(page, size int) (int, int) {
	switch {
	case page < 1:
		page = 1
	case page > MaxPage:
		page = MaxPage
	}
	switch {
	case size <= 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	return page, size
}

// FeedResolver lists the users a viewer can still discover: everyone except
// the viewer and anyone sharing a connection request with them, whatever
// its status.
type FeedResolver struct {
	users store.UserRepository
	log   logging.Logger
}

func NewFeedResolver(users store.UserRepository, log logging.Logger) *FeedResolver {
	return &FeedResolver{users: users, log: log.With("module", "feed")}
}

func (f *FeedResolver) ComputeFeed(ctx context.Context, viewerID string, page, size int) ([]models.PublicProfile, error) {
	page, size = NormalizePage(page, size)

	users, err := f.users.ListDiscoverable(ctx, viewerID, (page-1)*size, size)
	if err != nil {
		return nil, unexpected("list feed users", err)
	}

	out := make([]models.PublicProfile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	metrics.RecordFeedPage(len(out))
	f.log.Debug(ctx, "feed computed", "viewer", viewerID, "page", page, "size", size, "returned", len(out))
	return out, nil
}
