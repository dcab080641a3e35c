package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/logging"
	"github.com/theleywin/Backend-DevTinder/src/models"
)

func TestLedger_SendRequest(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "a", 0)
	b := e.user(t, "b", 1)

	req, err := e.ledger.SendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, req.SenderID)
	assert.Equal(t, b.ID, req.ReceiverID)
	assert.Equal(t, models.ConnectionStatusPending, req.Status)

	stored, err := e.st.Connections().FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusPending, stored.Status)
}

func TestLedger_SendRequest_SymmetricConflict(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "a", 0)
	b := e.user(t, "b", 1)

	_, err := e.ledger.SendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)

	_, err = e.ledger.SendRequest(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, common.ErrConflict)

	_, err = e.ledger.SendRequest(ctx, b.ID, a.ID)
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestLedger_SendRequest_NeverReopens(t *testing.T) {
	for _, decision := range []string{"accepted", "rejected"} {
		t.Run(decision, func(t *testing.T) {
			e := newEnv(t)
			ctx := context.Background()
			a := e.user(t, "a", 0)
			b := e.user(t, "b", 1)

			req, err := e.ledger.SendRequest(ctx, a.ID, b.ID)
			require.NoError(t, err)
			_, err = e.ledger.Respond(ctx, req.ID, b.ID, decision)
			require.NoError(t, err)

			_, err = e.ledger.SendRequest(ctx, a.ID, b.ID)
			assert.ErrorIs(t, err, common.ErrConflict)
			_, err = e.ledger.SendRequest(ctx, b.ID, a.ID)
			assert.ErrorIs(t, err, common.ErrConflict)
		})
	}
}

func TestLedger_SendRequest_SelfIsInvalidEvenForUnknownUser(t *testing.T) {
	e := newEnv(t)
	a := e.user(t, "a", 0)

	_, err := e.ledger.SendRequest(context.Background(), a.ID, a.ID)
	assert.ErrorIs(t, err, common.ErrInvalidOperation)

	_, err = e.ledger.SendRequest(context.Background(), "ghost", "ghost")
	assert.ErrorIs(t, err, common.ErrInvalidOperation)
}

func TestLedger_SendRequest_UnknownUsers(t *testing.T) {
	e := newEnv(t)
	a := e.user(t, "a", 0)

	_, err := e.ledger.SendRequest(context.Background(), a.ID, "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = e.ledger.SendRequest(context.Background(), "ghost", a.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLedger_SendRequest_ConcurrentOppositeDirections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "a", 0)
	b := e.user(t, "b", 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, pair := range [][2]string{{a.ID, b.ID}, {b.ID, a.ID}} {
		wg.Add(1)
		go func(i int, from, to string) {
			defer wg.Done()
			_, errs[i] = e.ledger.SendRequest(ctx, from, to)
		}(i, pair[0], pair[1])
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, common.ErrConflict)
	}
	assert.Equal(t, 1, ok)

	all, err := e.st.Connections().ListInvolving(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLedger_SendRequest_RacingInsertIsConflict(t *testing.T) {
	conns := &fakeConns{
		findBetween: func(context.Context, string, string) (*models.ConnectionRequest, error) {
			return nil, common.ErrNotFound
		},
		create: func(context.Context, *models.ConnectionRequest) error {
			return common.ErrConflict
		},
	}
	l := NewLedger(&fakeUsers{findByID: anyUser}, conns, nil, logging.Discard())

	_, err := l.SendRequest(context.Background(), "a", "b")
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestLedger_SendRequest_StoreFailures(t *testing.T) {
	tests := []struct {
		name  string
		users *fakeUsers
		conns *fakeConns
	}{
		{
			name: "user lookup",
			users: &fakeUsers{findByID: func(context.Context, string) (*models.User, error) {
				return nil, errBoom
			}},
			conns: &fakeConns{},
		},
		{
			name:  "existing lookup",
			users: &fakeUsers{findByID: anyUser},
			conns: &fakeConns{findBetween: func(context.Context, string, string) (*models.ConnectionRequest, error) {
				return nil, errBoom
			}},
		},
		{
			name:  "insert",
			users: &fakeUsers{findByID: anyUser},
			conns: &fakeConns{
				findBetween: func(context.Context, string, string) (*models.ConnectionRequest, error) {
					return nil, common.ErrNotFound
				},
				create: func(context.Context, *models.ConnectionRequest) error { return errBoom },
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger(tt.users, tt.conns, nil, logging.Discard())
			_, err := l.SendRequest(context.Background(), "a", "b")
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrUnexpected)
			assert.ErrorIs(t, err, errBoom)
		})
	}
}

func TestLedger_Respond(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "a", 0)
	b := e.user(t, "b", 1)
	c := e.user(t, "c", 2)

	req, err := e.ledger.SendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)

	_, err = e.ledger.Respond(ctx, req.ID, b.ID, "maybe")
	assert.ErrorIs(t, err, common.ErrInvalidOperation)
	_, err = e.ledger.Respond(ctx, req.ID, b.ID, "pending")
	assert.ErrorIs(t, err, common.ErrInvalidOperation)

	_, err = e.ledger.Respond(ctx, req.ID, a.ID, "accepted")
	assert.ErrorIs(t, err, common.ErrNotFound, "sender cannot accept")
	_, err = e.ledger.Respond(ctx, req.ID, c.ID, "accepted")
	assert.ErrorIs(t, err, common.ErrNotFound, "third party cannot accept")
	_, err = e.ledger.Respond(ctx, "missing", b.ID, "accepted")
	assert.ErrorIs(t, err, common.ErrNotFound)

	got, err := e.ledger.Respond(ctx, req.ID, b.ID, "accepted")
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusAccepted, got.Status)

	_, err = e.ledger.Respond(ctx, req.ID, b.ID, "rejected")
	assert.ErrorIs(t, err, common.ErrNotFound, "a request is answered at most once")

	notes, err := e.notes.List(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationTypeConnectionAccepted, notes[0].Type)
	require.NotNil(t, notes[0].RelatedUser)
	assert.Equal(t, b.ID, notes[0].RelatedUser.ID)
}

func TestLedger_Respond_RejectDoesNotNotify(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "a", 0)
	b := e.user(t, "b", 1)

	req, err := e.ledger.SendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	got, err := e.ledger.Respond(ctx, req.ID, b.ID, "rejected")
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusRejected, got.Status)

	notes, err := e.notes.List(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestLedger_Respond_ConcurrentAnswersOneWins(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "a", 0)
	b := e.user(t, "b", 1)
	req, err := e.ledger.SendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)

	decisions := []string{"accepted", "rejected", "accepted", "rejected"}
	errs := make([]error, len(decisions))
	var wg sync.WaitGroup
	for i, d := range decisions {
		wg.Add(1)
		go func(i int, d string) {
			defer wg.Done()
			_, errs[i] = e.ledger.Respond(ctx, req.ID, b.ID, d)
		}(i, d)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, common.ErrNotFound)
	}
	assert.Equal(t, 1, ok)
}

func TestLedger_Respond_NotificationFailureIsNotFatal(t *testing.T) {
	conns := &fakeConns{
		respond: func(_ context.Context, id, receiverID string, status models.ConnectionStatus) (*models.ConnectionRequest, error) {
			return &models.ConnectionRequest{ID: id, SenderID: "a", ReceiverID: receiverID, Status: status}, nil
		},
	}
	notifier := &failingNotifier{}
	l := NewLedger(&fakeUsers{}, conns, notifier, logging.Discard())

	got, err := l.Respond(context.Background(), "r1", "b", "accepted")
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusAccepted, got.Status)
	assert.Equal(t, 1, notifier.calls)
}

func TestLedger_Respond_StoreFailure(t *testing.T) {
	conns := &fakeConns{
		respond: func(context.Context, string, string, models.ConnectionStatus) (*models.ConnectionRequest, error) {
			return nil, errBoom
		},
	}
	l := NewLedger(&fakeUsers{}, conns, nil, logging.Discard())

	_, err := l.Respond(context.Background(), "r1", "b", "rejected")
	assert.True(t, errors.Is(err, common.ErrUnexpected))
}
