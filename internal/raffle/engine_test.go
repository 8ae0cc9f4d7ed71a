package raffle

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photobooth-backend/internal/models"
)

var errAlreadyDrawn = errors.New("raffle entry already drawn")

type memRaffleStore struct {
	entries map[uuid.UUID]*models.RaffleEntry
	winners []models.RaffleWinner
}

func newMemRaffleStore(entryCount int) *memRaffleStore {
	store := &memRaffleStore{entries: make(map[uuid.UUID]*models.RaffleEntry)}
	for i := 0; i < entryCount; i++ {
		entry := &models.RaffleEntry{
			ID:           uuid.New(),
			OrderID:      uuid.New(),
			CustomerName: fmt.Sprintf("Customer %d", i+1),
			Grade:        "Grade 6",
			Section:      "Sampaguita",
			RaffleNumber: 1,
		}
		store.entries[entry.ID] = entry
	}
	return store
}

func (s *memRaffleStore) ActiveEntries(ctx context.Context) ([]models.RaffleEntry, error) {
	var out []models.RaffleEntry
	for _, entry := range s.entries {
		if !entry.IsWinner {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func (s *memRaffleStore) MarkEntryWinner(ctx context.Context, entryID uuid.UUID) (*models.RaffleEntry, error) {
	entry, ok := s.entries[entryID]
	if !ok || entry.IsWinner {
		return nil, errAlreadyDrawn
	}
	now := time.Now()
	entry.IsWinner = true
	entry.WonAt = &now
	copied := *entry
	return &copied, nil
}

func (s *memRaffleStore) CreateRaffleWinner(ctx context.Context, winner *models.RaffleWinner) (*models.RaffleWinner, error) {
	winner.ID = uuid.New()
	s.winners = append(s.winners, *winner)
	return winner, nil
}

func TestDrawMarksDistinctWinners(t *testing.T) {
	const poolSize = 10
	const draws = 6

	store := newMemRaffleStore(poolSize)
	engine := NewEngineWithSource(store, rand.NewSource(42))

	for i := 0; i < draws; i++ {
		winner, err := engine.Draw(context.Background(), nil)
		require.NoError(t, err)
		require.NotNil(t, winner)
	}

	winners := 0
	for _, entry := range store.entries {
		if entry.IsWinner {
			winners++
			require.NotNil(t, entry.WonAt)
		}
	}
	assert.Equal(t, draws, winners)
	require.Len(t, store.winners, draws)

	// Each winner row references a distinct entry.
	seen := make(map[uuid.UUID]bool)
	for _, winner := range store.winners {
		assert.False(t, seen[winner.EntryID], "entry %s drawn twice", winner.EntryID)
		seen[winner.EntryID] = true
	}
}

func TestDrawExhaustsPool(t *testing.T) {
	store := newMemRaffleStore(3)
	engine := NewEngineWithSource(store, rand.NewSource(7))

	for i := 0; i < 3; i++ {
		_, err := engine.Draw(context.Background(), nil)
		require.NoError(t, err)
	}

	_, err := engine.Draw(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoEntries)
}

func TestDrawEmptyPool(t *testing.T) {
	store := newMemRaffleStore(0)
	engine := NewEngine(store)

	_, err := engine.Draw(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoEntries)
	assert.Empty(t, store.winners)
}

func TestDrawPropagatesGuardConflict(t *testing.T) {
	store := newMemRaffleStore(1)
	engine := NewEngineWithSource(store, rand.NewSource(1))

	// Another process marks the only entry between pool read and mark. The
	// stale wrapper keeps serving the entry as un-drawn, modeling the race.
	for _, entry := range store.entries {
		entry.IsWinner = true
	}
	engine = NewEngineWithSource(&staleStore{inner: store}, rand.NewSource(1))

	_, err := engine.Draw(context.Background(), nil)
	require.ErrorIs(t, err, errAlreadyDrawn)
	assert.Empty(t, store.winners, "no winner row when the guarded mark fails")
}

// staleStore serves a pool snapshot that ignores is_winner, modeling a racer
// that marked the entry after the pool was read.
type staleStore struct {
	inner *memRaffleStore
}

func (s *staleStore) ActiveEntries(ctx context.Context) ([]models.RaffleEntry, error) {
	var out []models.RaffleEntry
	for _, entry := range s.inner.entries {
		snapshot := *entry
		snapshot.IsWinner = false
		out = append(out, snapshot)
	}
	return out, nil
}

func (s *staleStore) MarkEntryWinner(ctx context.Context, entryID uuid.UUID) (*models.RaffleEntry, error) {
	return s.inner.MarkEntryWinner(ctx, entryID)
}

func (s *staleStore) CreateRaffleWinner(ctx context.Context, winner *models.RaffleWinner) (*models.RaffleWinner, error) {
	return s.inner.CreateRaffleWinner(ctx, winner)
}
