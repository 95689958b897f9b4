package chat

import (
	"context"
	"testing"

	"careflow/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *RedisSessionStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisSessionStore(client, 0)
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state := &models.SessionState{
		SessionID:           "abc",
		AwaitingPatientInfo: true,
		PendingBooking:      &models.Slot{SlotID: "slot_001", ProviderName: "Cardiologist"},
	}
	state.AppendTurn("hi", "hello")

	require.NoError(t, store.Set(ctx, "abc", state))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, state.SessionID, got.SessionID)
	assert.True(t, got.AwaitingPatientInfo)
	require.NotNil(t, got.PendingBooking)
	assert.Equal(t, "slot_001", got.PendingBooking.SlotID)
	assert.Len(t, got.History, 2)
}

func TestSessionStoreUnknownSessionIsFresh(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Get(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Equal(t, "never-seen", got.SessionID)
	assert.Empty(t, got.History)
	assert.Nil(t, got.PendingBooking)
}

func TestSessionStoreClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state := &models.SessionState{SessionID: "abc"}
	state.AppendTurn("hi", "hello")
	require.NoError(t, store.Set(ctx, "abc", state))
	require.NoError(t, store.Clear(ctx, "abc"))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, got.History)
}

func TestSessionHistoryTrimming(t *testing.T) {
	state := &models.SessionState{SessionID: "abc"}
	for i := 0; i < 20; i++ {
		state.AppendTurn("question", "answer")
	}
	assert.Len(t, state.History, models.MaxHistoryTurns*2)
}
