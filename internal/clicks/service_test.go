package clicks

import (
	"context"
	"fmt"
	"testing"

	redisclient "github.com/bentolink/bentolink-backend/pkg/redis"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeBuffer struct {
	counts map[string]int64
}

func newFakeBuffer() *fakeBuffer {
	return &fakeBuffer{counts: map[string]int64{}}
}

func (f *fakeBuffer) BufferClick(_ context.Context, cardID string, n int64) error {
	f.counts[cardID] += n
	return nil
}

func (f *fakeBuffer) DrainClicks(_ context.Context, _ int) ([]redisclient.PendingClick, error) {
	out := make([]redisclient.PendingClick, 0, len(f.counts))
	for cardID, count := range f.counts {
		out = append(out, redisclient.PendingClick{CardID: cardID, Count: count})
	}
	f.counts = map[string]int64{}
	return out, nil
}

type fakeCards struct {
	counts   map[uuid.UUID]int64
	profiles map[uuid.UUID]uuid.UUID
	failFor  map[uuid.UUID]bool
}

func newFakeCards() *fakeCards {
	return &fakeCards{
		counts:   map[uuid.UUID]int64{},
		profiles: map[uuid.UUID]uuid.UUID{},
		failFor:  map[uuid.UUID]bool{},
	}
}

func (f *fakeCards) IncrementClicks(_ context.Context, cardID uuid.UUID, n int64) (int64, error) {
	if f.failFor[cardID] {
		return 0, fmt.Errorf("write failed for %s", cardID)
	}
	if _, ok := f.profiles[cardID]; !ok {
		return 0, nil
	}
	f.counts[cardID] += n
	return 1, nil
}

func (f *fakeCards) ProfileIDByCard(_ context.Context, cardID uuid.UUID) (uuid.UUID, error) {
	profileID, ok := f.profiles[cardID]
	if !ok {
		return uuid.Nil, gorm.ErrRecordNotFound
	}
	return profileID, nil
}

type fakeProfiles struct {
	counts map[uuid.UUID]int64
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{counts: map[uuid.UUID]int64{}}
}

func (f *fakeProfiles) IncrementClicks(_ context.Context, id uuid.UUID, n int64) error {
	f.counts[id] += n
	return nil
}

func newTestClickService(t *testing.T) (Service, *fakeBuffer, *fakeCards, *fakeProfiles) {
	t.Helper()
	buffer := newFakeBuffer()
	cards := newFakeCards()
	profiles := newFakeProfiles()
	svc, err := NewService(ServiceParams{
		Buffer:   buffer,
		Cards:    cards,
		Profiles: profiles,
	})
	require.NoError(t, err)
	return svc, buffer, cards, profiles
}

func TestTrackBuffersWithoutTouchingCounters(t *testing.T) {
	svc, buffer, cards, profiles := newTestClickService(t)
	cardID := uuid.New()

	require.NoError(t, svc.Track(context.Background(), cardID))
	require.NoError(t, svc.Track(context.Background(), cardID))

	assert.Equal(t, int64(2), buffer.counts[cardID.String()])
	assert.Empty(t, cards.counts)
	assert.Empty(t, profiles.counts)
}

func TestFlushAppliesCardAndProfileCounters(t *testing.T) {
	svc, _, cards, profiles := newTestClickService(t)
	ctx := context.Background()

	profileID := uuid.New()
	cardA := uuid.New()
	cardB := uuid.New()
	cards.profiles[cardA] = profileID
	cards.profiles[cardB] = profileID

	require.NoError(t, svc.Track(ctx, cardA))
	require.NoError(t, svc.Track(ctx, cardA))
	require.NoError(t, svc.Track(ctx, cardB))

	flushed, err := svc.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, flushed)
	assert.Equal(t, int64(2), cards.counts[cardA])
	assert.Equal(t, int64(1), cards.counts[cardB])
	assert.Equal(t, int64(3), profiles.counts[profileID])
}

func TestFlushDropsDeletedCards(t *testing.T) {
	svc, _, cards, profiles := newTestClickService(t)
	ctx := context.Background()

	// Card is unknown to the store: click was buffered, card deleted since.
	require.NoError(t, svc.Track(ctx, uuid.New()))

	flushed, err := svc.Flush(ctx)
	require.NoError(t, err)
	assert.Zero(t, flushed)
	assert.Empty(t, cards.counts)
	assert.Empty(t, profiles.counts)
}

func TestFlushCollectsPerCounterFailures(t *testing.T) {
	svc, _, cards, profiles := newTestClickService(t)
	ctx := context.Background()

	profileID := uuid.New()
	good := uuid.New()
	bad := uuid.New()
	cards.profiles[good] = profileID
	cards.profiles[bad] = profileID
	cards.failFor[bad] = true

	require.NoError(t, svc.Track(ctx, good))
	require.NoError(t, svc.Track(ctx, bad))

	flushed, err := svc.Flush(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, flushed)
	assert.Equal(t, int64(1), cards.counts[good])
	assert.Equal(t, int64(1), profiles.counts[profileID])
}

func TestFlushEmptyBufferSucceeds(t *testing.T) {
	svc, _, _, _ := newTestClickService(t)

	flushed, err := svc.Flush(context.Background())
	require.NoError(t, err)
	assert.Zero(t, flushed)
}
