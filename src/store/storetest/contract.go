package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/models"
	"github.com/theleywin/Backend-DevTinder/src/store"
)

// RunContract runs the behaviour every store backend must share. open must
// return an empty, migrated store.
func RunContract(t *testing.T, open func(t *testing.T) store.Store) {
	t.Run("users", func(t *testing.T) { testUsers(t, open(t)) })
	t.Run("user delete cascades", func(t *testing.T) { testUserDelete(t, open(t)) })
	t.Run("list discoverable", func(t *testing.T) { testListDiscoverable(t, open(t)) })
	t.Run("pair uniqueness", func(t *testing.T) { testPairUniqueness(t, open(t)) })
	t.Run("concurrent create", func(t *testing.T) { testConcurrentCreate(t, open(t)) })
	t.Run("respond", func(t *testing.T) { testRespond(t, open(t)) })
	t.Run("listings", func(t *testing.T) { testListings(t, open(t)) })
	t.Run("notifications", func(t *testing.T) { testNotifications(t, open(t)) })
}

func testUsers(t *testing.T, st store.Store) {
	ctx := context.Background()
	users := st.Users()

	ada := SeedUser(t, st, "ada", 0)
	require.NotEmpty(t, ada.ID)

	got, err := users.FindByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", got.FirstName)
	assert.Equal(t, []string{"go"}, got.Skills)

	got, err = users.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, got.ID)

	_, err = users.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = users.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, common.ErrNotFound)

	dup := &models.User{FirstName: "other", Email: "ada@example.com", Password: "x"}
	assert.ErrorIs(t, users.Create(ctx, dup), common.ErrConflict)

	got.Bio = "compilers"
	got.Skills = []string{"go", "sql"}
	require.NoError(t, users.Update(ctx, got))
	got, err = users.FindByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "compilers", got.Bio)
	assert.Equal(t, []string{"go", "sql"}, got.Skills)

	bob := SeedUser(t, st, "bob", 1)
	bob.Email = "ada@example.com"
	assert.ErrorIs(t, users.Update(ctx, bob), common.ErrConflict)

	ghost := &models.User{ID: "ghost", FirstName: "ghost", Email: "ghost@example.com"}
	assert.ErrorIs(t, users.Update(ctx, ghost), common.ErrNotFound)

	list, err := users.FindByIDs(ctx, []string{ada.ID, bob.ID, "missing"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = users.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func testUserDelete(t *testing.T, st store.Store) {
	ctx := context.Background()
	a := SeedUser(t, st, "a", 0)
	b := SeedUser(t, st, "b", 1)
	c := SeedUser(t, st, "c", 2)

	SeedRequest(t, st, a.ID, b.ID, models.ConnectionStatusAccepted, 0)
	SeedRequest(t, st, c.ID, a.ID, models.ConnectionStatusPending, 1)
	keep := SeedRequest(t, st, b.ID, c.ID, models.ConnectionStatusPending, 2)
	require.NoError(t, st.Notifications().Create(ctx, &models.Notification{
		RecipientID: b.ID, Type: models.NotificationTypeConnectionAccepted, RelatedUserID: a.ID,
	}))

	require.NoError(t, st.Users().Delete(ctx, a.ID))
	assert.ErrorIs(t, st.Users().Delete(ctx, a.ID), common.ErrNotFound)

	_, err := st.Users().FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	involving, err := st.Connections().ListInvolving(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, involving)

	_, err = st.Connections().FindByID(ctx, keep.ID)
	assert.NoError(t, err)

	notes, err := st.Notifications().ListByRecipient(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func testListDiscoverable(t *testing.T, st store.Store) {
	ctx := context.Background()
	var ids []string
	// inserted out of order: created_at decides the order, not insertion
	for i, n := range []int{3, 0, 4, 1, 2} {
		u := SeedUser(t, st, string(rune('a'+i)), n)
		ids = append(ids, u.ID)
	}
	// ids by creation minute: 0->ids[1], 1->ids[3], 2->ids[4], 3->ids[0], 4->ids[2]
	ordered := []string{ids[1], ids[3], ids[4], ids[0], ids[2]}
	v := SeedUser(t, st, "viewer", 5)
	users := st.Users()

	page, err := users.ListDiscoverable(ctx, v.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, ordered[0:2], userIDs(page))

	page, err = users.ListDiscoverable(ctx, v.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, ordered[2:4], userIDs(page))

	page, err = users.ListDiscoverable(ctx, v.ID, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, ordered[4:], userIDs(page))

	page, err = users.ListDiscoverable(ctx, v.ID, 6, 2)
	require.NoError(t, err)
	assert.Empty(t, page)

	SeedRequest(t, st, v.ID, ordered[1], models.ConnectionStatusRejected, 0)
	SeedRequest(t, st, ordered[3], v.ID, models.ConnectionStatus("interested"), 1)

	page, err = users.ListDiscoverable(ctx, v.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{ordered[0], ordered[2], ordered[4]}, userIDs(page))

	page, err = users.ListDiscoverable(ctx, ordered[0], 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{ordered[1], ordered[2], ordered[3], ordered[4], v.ID}, userIDs(page))

	page, err = users.ListDiscoverable(ctx, ordered[1], 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{ordered[0], ordered[2], ordered[3], ordered[4]}, userIDs(page))
}

func testPairUniqueness(t *testing.T, st store.Store) {
	ctx := context.Background()
	a := SeedUser(t, st, "a", 0)
	b := SeedUser(t, st, "b", 1)

	first := SeedRequest(t, st, a.ID, b.ID, models.ConnectionStatusPending, 0)
	assert.Equal(t, models.PairKey(a.ID, b.ID), first.PairKey)

	err := st.Connections().Create(ctx, &models.ConnectionRequest{SenderID: a.ID, ReceiverID: b.ID, Status: models.ConnectionStatusPending})
	assert.ErrorIs(t, err, common.ErrConflict)

	err = st.Connections().Create(ctx, &models.ConnectionRequest{SenderID: b.ID, ReceiverID: a.ID, Status: models.ConnectionStatusPending})
	assert.ErrorIs(t, err, common.ErrConflict, "reverse direction must collide too")

	for _, pair := range [][2]string{{a.ID, b.ID}, {b.ID, a.ID}} {
		got, err := st.Connections().FindBetween(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
	}

	_, err = st.Connections().FindBetween(ctx, a.ID, "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func testConcurrentCreate(t *testing.T, st store.Store) {
	ctx := context.Background()
	a := SeedUser(t, st, "a", 0)
	b := SeedUser(t, st, "b", 1)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			from, to := a.ID, b.ID
			if i%2 == 1 {
				from, to = to, from
			}
			errs[i] = st.Connections().Create(ctx, &models.ConnectionRequest{
				SenderID: from, ReceiverID: to, Status: models.ConnectionStatusPending,
			})
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.True(t, errors.Is(err, common.ErrConflict), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, ok)
}

func testRespond(t *testing.T, st store.Store) {
	ctx := context.Background()
	a := SeedUser(t, st, "a", 0)
	b := SeedUser(t, st, "b", 1)
	c := SeedUser(t, st, "c", 2)
	conns := st.Connections()

	req := SeedRequest(t, st, a.ID, b.ID, models.ConnectionStatusPending, 0)

	_, err := conns.Respond(ctx, req.ID, a.ID, models.ConnectionStatusAccepted)
	assert.ErrorIs(t, err, common.ErrNotFound, "sender cannot respond")

	_, err = conns.Respond(ctx, "missing", b.ID, models.ConnectionStatusAccepted)
	assert.ErrorIs(t, err, common.ErrNotFound)

	got, err := conns.Respond(ctx, req.ID, b.ID, models.ConnectionStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusAccepted, got.Status)
	assert.Equal(t, a.ID, got.SenderID)

	_, err = conns.Respond(ctx, req.ID, b.ID, models.ConnectionStatusRejected)
	assert.ErrorIs(t, err, common.ErrNotFound, "second response must fail")

	stored, err := conns.FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusAccepted, stored.Status)

	legacy := SeedRequest(t, st, c.ID, b.ID, models.ConnectionStatus("interested"), 1)
	got, err = conns.Respond(ctx, legacy.ID, b.ID, models.ConnectionStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusRejected, got.Status)
}

func testListings(t *testing.T, st store.Store) {
	ctx := context.Background()
	v := SeedUser(t, st, "viewer", 0)
	a := SeedUser(t, st, "a", 1)
	b := SeedUser(t, st, "b", 2)
	c := SeedUser(t, st, "c", 3)
	d := SeedUser(t, st, "d", 4)
	conns := st.Connections()

	inOld := SeedRequest(t, st, a.ID, v.ID, models.ConnectionStatusPending, 0)
	inNew := SeedRequest(t, st, b.ID, v.ID, models.ConnectionStatus("interested"), 5)
	acc1 := SeedRequest(t, st, v.ID, c.ID, models.ConnectionStatusAccepted, 1)
	out := SeedRequest(t, st, v.ID, d.ID, models.ConnectionStatusPending, 2)
	acc2 := SeedRequest(t, st, a.ID, d.ID, models.ConnectionStatusAccepted, 3)

	received, err := conns.ListByReceiver(ctx, v.ID, models.PendingStatuses())
	require.NoError(t, err)
	assert.Equal(t, []string{inNew.ID, inOld.ID}, requestIDs(received))

	sent, err := conns.ListBySender(ctx, v.ID, models.PendingStatuses())
	require.NoError(t, err)
	assert.Equal(t, []string{out.ID}, requestIDs(sent))

	accepted, err := conns.ListAccepted(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{acc1.ID}, requestIDs(accepted))

	accepted, err = conns.ListAccepted(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{acc2.ID}, requestIDs(accepted))

	involving, err := conns.ListInvolving(ctx, v.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{inOld.ID, inNew.ID, acc1.ID, out.ID}, requestIDs(involving))

	none, err := conns.ListByReceiver(ctx, c.ID, models.PendingStatuses())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func testNotifications(t *testing.T, st store.Store) {
	ctx := context.Background()
	a := SeedUser(t, st, "a", 0)
	b := SeedUser(t, st, "b", 1)
	notes := st.Notifications()

	older := &models.Notification{RecipientID: a.ID, Type: models.NotificationTypeConnectionAccepted, RelatedUserID: b.ID, CreatedAt: Base}
	newer := &models.Notification{RecipientID: a.ID, Type: models.NotificationTypeConnectionAccepted, RelatedUserID: b.ID, CreatedAt: Base.Add(time.Second)}
	require.NoError(t, notes.Create(ctx, older))
	require.NoError(t, notes.Create(ctx, newer))

	list, err := notes.ListByRecipient(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.False(t, list[0].Read)

	_, err = notes.MarkRead(ctx, older.ID, b.ID)
	assert.ErrorIs(t, err, common.ErrNotFound, "foreign notification")

	read, err := notes.MarkRead(ctx, older.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	assert.ErrorIs(t, notes.Delete(ctx, older.ID, b.ID), common.ErrNotFound)
	require.NoError(t, notes.Delete(ctx, older.ID, a.ID))
	assert.ErrorIs(t, notes.Delete(ctx, older.ID, a.ID), common.ErrNotFound)

	list, err = notes.ListByRecipient(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func userIDs(us []models.User) []string {
	out := make([]string, 0, len(us))
	for _, u := range us {
		out = append(out, u.ID)
	}
	return out
}

func requestIDs(rs []models.ConnectionRequest) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}
