package draftstore

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/itp-onboarding/internal/domain/onboarding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProspectID = "a1b2c3d4-e5f6-7890-abcd-ef1234567890"

func sampleDraft() onboarding.Draft {
	yes := true
	return onboarding.Draft{
		ProspectID:          testProspectID,
		ArrivalDate:         "2026-03-01",
		ArrivalTime:         "14:30",
		ArrivalAirport:      "CGN",
		NeedsPickup:         true,
		EquipmentSize:       "M",
		SchengenLast180Days: &yes,
		SchengenDaysSpent:   "12",
		PassportPath:        testProspectID + "/passport_1.pdf",
		Step:                3,
		SavedAt:             time.Date(2026, 2, 20, 9, 30, 0, 0, time.UTC),
	}
}

func TestRedisStore_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleDraft()))
	assert.True(t, mr.Exists("onboarding:draft:"+testProspectID))
	assert.Equal(t, time.Hour, mr.TTL("onboarding:draft:"+testProspectID))

	got, ok, err := store.Load(ctx, testProspectID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleDraft().Step, got.Step)
	assert.Equal(t, "M", got.EquipmentSize)
	require.NotNil(t, got.SchengenLast180Days)
	assert.True(t, *got.SchengenLast180Days)
	assert.True(t, sampleDraft().SavedAt.Equal(got.SavedAt))

	require.NoError(t, store.Clear(ctx, testProspectID))
	_, ok, err = store.Load(ctx, testProspectID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_ExpiresWithTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleDraft()))
	mr.FastForward(2 * time.Minute)

	_, ok, err := store.Load(ctx, testProspectID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_CorruptPayload(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 0)
	require.NoError(t, mr.Set("onboarding:draft:"+testProspectID, "{not json"))

	_, _, err := store.Load(context.Background(), testProspectID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode draft")
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}), time.Hour)
	mr.Close()

	err := store.Save(context.Background(), sampleDraft())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save draft")
}

func TestRedisStore_RejectsAnonymousDraft(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)

	err := store.Save(context.Background(), onboarding.Draft{})
	assert.True(t, errors.Is(err, onboarding.ErrInvalidDraft))
}

func TestNewRedisClient(t *testing.T) {
	_, err := NewRedisClient("redis://localhost:6379/0")
	require.NoError(t, err)

	_, err = NewRedisClient("localhost:6379")
	assert.Error(t, err)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	_, ok, err := store.Load(ctx, testProspectID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, sampleDraft()))
	got, ok, err := store.Load(ctx, testProspectID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "14:30", got.ArrivalTime)

	require.NoError(t, store.Clear(ctx, testProspectID))
	_, ok, _ = store.Load(ctx, testProspectID)
	assert.False(t, ok)
}
