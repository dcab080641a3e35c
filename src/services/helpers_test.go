package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/theleywin/Backend-DevTinder/src/lib"
	"github.com/theleywin/Backend-DevTinder/src/logging"
	"github.com/theleywin/Backend-DevTinder/src/models"
	"github.com/theleywin/Backend-DevTinder/src/store"
	"github.com/theleywin/Backend-DevTinder/src/store/sqlstore"
	"github.com/theleywin/Backend-DevTinder/src/store/storetest"
)

var errBoom = errors.New("boom")

type env struct {
	st         *sqlstore.Store
	ledger     *Ledger
	aggregator *Aggregator
	feed       *FeedResolver
	users      *UserService
	notes      *NotificationService
	creds      *lib.Credentials
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st := storetest.NewSQLite(t)
	log := logging.Discard()
	creds := lib.NewCredentials("test-secret", time.Hour, bcrypt.MinCost)
	notes := NewNotificationService(st.Notifications(), st.Users(), log)
	return &env{
		st:         st,
		ledger:     NewLedger(st.Users(), st.Connections(), notes, log),
		aggregator: NewAggregator(st.Users(), st.Connections()),
		feed:       NewFeedResolver(st.Users(), log),
		users:      NewUserService(st.Users(), creds, lib.NewValidator(), log),
		notes:      notes,
		creds:      creds,
	}
}

func (e *env) user(t *testing.T, name string, n int) *models.User {
	t.Helper()
	return storetest.SeedUser(t, e.st, name, n)
}

func profileIDs(ps []models.PublicProfile) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

// fakeUsers and fakeConns embed the interface so tests only override what
// they exercise; anything else panics.
type fakeUsers struct {
	store.UserRepository
	findByID         func(ctx context.Context, id string) (*models.User, error)
	findByEmail      func(ctx context.Context, email string) (*models.User, error)
	findByIDs        func(ctx context.Context, ids []string) ([]models.User, error)
	listDiscoverable func(ctx context.Context, viewerID string, offset, limit int) ([]models.User, error)
	create           func(ctx context.Context, u *models.User) error
	update           func(ctx context.Context, u *models.User) error
	delete           func(ctx context.Context, id string) error
}

func (f *fakeUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	return f.findByID(ctx, id)
}
func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.findByEmail(ctx, email)
}
func (f *fakeUsers) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	return f.findByIDs(ctx, ids)
}
func (f *fakeUsers) ListDiscoverable(ctx context.Context, viewerID string, offset, limit int) ([]models.User, error) {
	return f.listDiscoverable(ctx, viewerID, offset, limit)
}
func (f *fakeUsers) Create(ctx context.Context, u *models.User) error { return f.create(ctx, u) }
func (f *fakeUsers) Update(ctx context.Context, u *models.User) error { return f.update(ctx, u) }
func (f *fakeUsers) Delete(ctx context.Context, id string) error      { return f.delete(ctx, id) }

type fakeConns struct {
	store.ConnectionRepository
	findBetween  func(ctx context.Context, a, b string) (*models.ConnectionRequest, error)
	create       func(ctx context.Context, r *models.ConnectionRequest) error
	respond      func(ctx context.Context, id, receiverID string, status models.ConnectionStatus) (*models.ConnectionRequest, error)
	listReceived func(ctx context.Context, receiverID string, statuses []string) ([]models.ConnectionRequest, error)
}

func (f *fakeConns) FindBetween(ctx context.Context, a, b string) (*models.ConnectionRequest, error) {
	return f.findBetween(ctx, a, b)
}
func (f *fakeConns) Create(ctx context.Context, r *models.ConnectionRequest) error {
	return f.create(ctx, r)
}
func (f *fakeConns) Respond(ctx context.Context, id, receiverID string, status models.ConnectionStatus) (*models.ConnectionRequest, error) {
	return f.respond(ctx, id, receiverID, status)
}
func (f *fakeConns) ListByReceiver(ctx context.Context, receiverID string, statuses []string) ([]models.ConnectionRequest, error) {
	return f.listReceived(ctx, receiverID, statuses)
}

func anyUser(_ context.Context, id string) (*models.User, error) {
	return &models.User{ID: id}, nil
}

type failingNotifier struct{ calls int }

func (f *failingNotifier) NotifyConnectionAccepted(context.Context, string, string) error {
	f.calls++
	return errBoom
}
