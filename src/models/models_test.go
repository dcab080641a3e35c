package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairKey_IsDirectionFree(t *testing.T) {
	assert.Equal(t, PairKey("a", "b"), PairKey("b", "a"))
	assert.Equal(t, "a:b", PairKey("b", "a"))
	assert.NotEqual(t, PairKey("a", "b"), PairKey("a", "c"))
}

func TestConnectionRequest_BeforeCreate(t *testing.T) {
	r := &ConnectionRequest{SenderID: "z", ReceiverID: "m"}
	require.NoError(t, r.BeforeCreate(nil))

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "m:z", r.PairKey)

	r2 := &ConnectionRequest{ID: "fixed", SenderID: "m", ReceiverID: "z"}
	require.NoError(t, r2.BeforeCreate(nil))
	assert.Equal(t, "fixed", r2.ID)
	assert.Equal(t, r.PairKey, r2.PairKey)
}

func TestConnectionRequest_CounterParty(t *testing.T) {
	r := ConnectionRequest{SenderID: "a", ReceiverID: "b"}
	assert.Equal(t, "b", r.CounterParty("a"))
	assert.Equal(t, "a", r.CounterParty("b"))
}

func TestConnectionStatus_LegacyInterestedIsPending(t *testing.T) {
	assert.Equal(t, ConnectionStatusPending, ConnectionStatus("interested").Canonical())
	assert.True(t, ConnectionStatus("interested").IsPending())
	assert.True(t, ConnectionStatusPending.IsPending())
	assert.False(t, ConnectionStatusAccepted.IsPending())
	assert.ElementsMatch(t, []string{"pending", "interested"}, PendingStatuses())
}

func TestParseDecision(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"accepted", true},
		{"rejected", true},
		{"pending", false},
		{"ignored", false},
		{"interested", false},
		{"ACCEPTED", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDecision(tt.in)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, ConnectionStatus(tt.in), got)
			}
		})
	}
}

func TestUser_PublicHidesCredentials(t *testing.T) {
	u := User{ID: "1", FirstName: "Ada", Email: "ada@example.com", Password: "hash", Gender: "female"}
	p := u.Public()

	assert.Equal(t, "1", p.ID)
	assert.Equal(t, "Ada", p.FirstName)
	assert.Equal(t, []string{}, p.Skills)
	assert.Equal(t, "female", p.Gender)
}

func TestProfilePatch_Apply(t *testing.T) {
	name := "  Grace "
	email := " Grace@Example.COM "
	gender := "Female"
	skills := []string{"go"}
	p := ProfilePatch{FirstName: &name, Email: &email, Gender: &gender, Skills: &skills}
	require.False(t, p.Empty())

	u := &User{FirstName: "Old", LastName: "Keep", Email: "old@example.com"}
	p.Apply(u)

	assert.Equal(t, "Grace", u.FirstName)
	assert.Equal(t, "Keep", u.LastName)
	assert.Equal(t, "grace@example.com", u.Email)
	assert.Equal(t, "female", u.Gender)
	assert.Equal(t, []string{"go"}, u.Skills)

	assert.True(t, ProfilePatch{}.Empty())
}
