package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/logging"
	"github.com/theleywin/Backend-DevTinder/src/metrics"
	"github.com/theleywin/Backend-DevTinder/src/models"
	"github.com/theleywin/Backend-DevTinder/src/store"
)

// AcceptanceNotifier is told when a request is accepted.
type AcceptanceNotifier interface {
	NotifyConnectionAccepted(ctx context.Context, recipientID, acceptedByID string) error
}

// Ledger owns the lifecycle of connection requests. It is the only writer
// of ConnectionRequest records.
type Ledger struct {
	users    store.UserRepository
	conns    store.ConnectionRepository
	notifier AcceptanceNotifier
	log      logging.Logger
}

func NewLedger(users store.UserRepository, conns store.ConnectionRepository, notifier AcceptanceNotifier, log logging.Logger) *Ledger {
	return &Ledger{users: users, conns: conns, notifier: notifier, log: log.With("module", "ledger")}
}

// SendRequest records a pending request from senderID to receiverID.
func (l *Ledger) SendRequest(ctx context.Context, senderID, receiverID string) (req *models.ConnectionRequest, err error) {
	defer func() { metrics.RecordLedgerOperation("send", err) }()

	if senderID == receiverID {
		return nil, fmt.Errorf("%w: cannot send a connection request to yourself", common.ErrInvalidOperation)
	}
	for _, id := range []string{senderID, receiverID} {
		if _, err := l.users.FindByID(ctx, id); err != nil {
			return nil, lookupErr("find user", err)
		}
	}

	existing, err := l.conns.FindBetween(ctx, senderID, receiverID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: request %s already links these users", common.ErrConflict, existing.ID)
	case !errors.Is(err, common.ErrNotFound):
		return nil, unexpected("find existing request", err)
	}

	req = &models.ConnectionRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.ConnectionStatusPending,
	}
	// The unique pair key turns a racing duplicate into ErrConflict here.
	if err := l.conns.Create(ctx, req); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, err
		}
		return nil, unexpected("create request", err)
	}

	l.log.Info(ctx, "connection request sent", "request_id", req.ID, "sender", senderID, "receiver", receiverID)
	return req, nil
}

// Respond applies the receiver's decision to a pending request. Anything
// that is not a pending request addressed to viewerID is ErrNotFound.
func (l *Ledger) Respond(ctx context.Context, requestID, viewerID, decision string) (req *models.ConnectionRequest, err error) {
	defer func() { metrics.RecordLedgerOperation("respond", err) }()

	status, ok := models.ParseDecision(decision)
	if !ok {
		return nil, fmt.Errorf("%w: status %q is not allowed", common.ErrInvalidOperation, decision)
	}

	req, err = l.conns.Respond(ctx, requestID, viewerID, status)
	if err != nil {
		return nil, lookupErr("respond to request", err)
	}
	l.log.Info(ctx, "connection request answered", "request_id", req.ID, "status", req.Status)

	if status == models.ConnectionStatusAccepted && l.notifier != nil {
		if nerr := l.notifier.NotifyConnectionAccepted(ctx, req.SenderID, viewerID); nerr != nil {
			l.log.Warn(ctx, "failed to create acceptance notification", "request_id", req.ID, "error", nerr)
		}
	}
	return req, nil
}

func unexpected(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrUnexpected, op, err)
}

// lookupErr passes ErrNotFound through and wraps everything else.
func lookupErr(op string, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return err
	}
	return unexpected(op, err)
}
