package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/models"
	"github.com/theleywin/Backend-DevTinder/src/store"
)

// Aggregator derives the viewer-relative views of the ledger: pending
// requests, accepted connections and the state of a single pair.
type Aggregator struct {
	users store.UserRepository
	conns store.ConnectionRepository
}

func NewAggregator(users store.UserRepository, conns store.ConnectionRepository) *Aggregator {
	return &Aggregator{users: users, conns: conns}
}

// ListReceivedPending returns pending requests addressed to viewerID,
// newest first, each with the sender's public profile.
func (a *Aggregator) ListReceivedPending(ctx context.Context, viewerID string) ([]models.PendingRequest, error) {
	reqs, err := a.conns.ListByReceiver(ctx, viewerID, models.PendingStatuses())
	if err != nil {
		return nil, unexpected("list received requests", err)
	}
	return a.pendingWith(ctx, viewerID, reqs)
}

// ListSentPending returns pending requests viewerID sent, newest first,
// each with the receiver's public profile.
func (a *Aggregator) ListSentPending(ctx context.Context, viewerID string) ([]models.PendingRequest, error) {
	reqs, err := a.conns.ListBySender(ctx, viewerID, models.PendingStatuses())
	if err != nil {
		return nil, unexpected("list sent requests", err)
	}
	return a.pendingWith(ctx, viewerID, reqs)
}

func (a *Aggregator) pendingWith(ctx context.Context, viewerID string, reqs []models.ConnectionRequest) ([]models.PendingRequest, error) {
	profiles, err := a.profiles(ctx, viewerID, reqs)
	if err != nil {
		return nil, err
	}
	out := make([]models.PendingRequest, 0, len(reqs))
	for _, r := range reqs {
		p, ok := profiles[r.CounterParty(viewerID)]
		if !ok {
			continue
		}
		out = append(out, models.PendingRequest{
			ID:        r.ID,
			User:      p,
			Status:    string(r.Status.Canonical()),
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}

// ListAcceptedConnections returns the other party of every accepted record
// involving viewerID, in creation order. Users that no longer exist are
// skipped.
func (a *Aggregator) ListAcceptedConnections(ctx context.Context, viewerID string) ([]models.PublicProfile, error) {
	reqs, err := a.conns.ListAccepted(ctx, viewerID)
	if err != nil {
		return nil, unexpected("list connections", err)
	}
	profiles, err := a.profiles(ctx, viewerID, reqs)
	if err != nil {
		return nil, err
	}
	out := make([]models.PublicProfile, 0, len(reqs))
	for _, r := range reqs {
		if p, ok := profiles[r.CounterParty(viewerID)]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Status reports how viewerID relates to otherID.
func (a *Aggregator) Status(ctx context.Context, viewerID, otherID string) (models.Relation, error) {
	if viewerID == otherID {
		return models.Relation{}, fmt.Errorf("%w: no relation with yourself", common.ErrInvalidOperation)
	}
	if _, err := a.users.FindByID(ctx, otherID); err != nil {
		return models.Relation{}, lookupErr("find user", err)
	}

	r, err := a.conns.FindBetween(ctx, viewerID, otherID)
	if errors.Is(err, common.ErrNotFound) {
		return models.Relation{State: models.RelationNone}, nil
	}
	if err != nil {
		return models.Relation{}, unexpected("find request", err)
	}

	rel := models.Relation{RequestID: r.ID}
	switch r.Status.Canonical() {
	case models.ConnectionStatusPending:
		rel.State = models.RelationPendingReceived
		if r.SenderID == viewerID {
			rel.State = models.RelationPendingSent
		}
	case models.ConnectionStatusAccepted:
		rel.State = models.RelationAccepted
	case models.ConnectionStatusRejected:
		rel.State = models.RelationRejected
	default:
		rel.State = models.RelationIgnored
	}
	return rel, nil
}

// profiles loads the public profile of every counter-party in reqs.
func (a *Aggregator) profiles(ctx context.Context, viewerID string, reqs []models.ConnectionRequest) (map[string]models.PublicProfile, error) {
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.CounterParty(viewerID))
	}
	users, err := a.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, unexpected("load profiles", err)
	}
	out := make(map[string]models.PublicProfile, len(users))
	for _, u := range users {
		out[u.ID] = u.Public()
	}
	return out, nil
}
