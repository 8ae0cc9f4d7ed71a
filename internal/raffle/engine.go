package raffle

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"photobooth-backend/internal/models"
)

var ErrNoEntries = errors.New("no raffle entries left to draw")

// Store is the persistence surface the draw needs; the Postgres client in
// internal/store implements it.
type Store interface {
	ActiveEntries(ctx context.Context) ([]models.RaffleEntry, error)
	// MarkEntryWinner must refuse an entry that already won.
	MarkEntryWinner(ctx context.Context, entryID uuid.UUID) (*models.RaffleEntry, error)
	CreateRaffleWinner(ctx context.Context, winner *models.RaffleWinner) (*models.RaffleWinner, error)
}

// Engine draws raffle winners. The winning index is picked before anything
// is persisted; the wheel animation clients show afterwards is cosmetic.
type Engine struct {
	store Store
	rng   *rand.Rand
}

func NewEngine(store Store) *Engine {
	return &Engine{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewEngineWithSource pins the randomness, for tests.
func NewEngineWithSource(store Store, src rand.Source) *Engine {
	return &Engine{store: store, rng: rand.New(src)}
}

// Draw selects one un-drawn entry uniformly at random, marks it as winner
// and records the corresponding raffle_winners row. The guarded mark in the
// store makes drawing the same entry twice impossible.
func (e *Engine) Draw(ctx context.Context, prizeDetails *string) (*models.RaffleWinner, error) {
	entries, err := e.store.ActiveEntries(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	picked := entries[e.rng.Intn(len(entries))]

	marked, err := e.store.MarkEntryWinner(ctx, picked.ID)
	if err != nil {
		return nil, err
	}

	wonAt := time.Now()
	if marked.WonAt != nil {
		wonAt = *marked.WonAt
	}

	winner, err := e.store.CreateRaffleWinner(ctx, &models.RaffleWinner{
		EntryID:      marked.ID,
		OrderID:      marked.OrderID,
		CustomerName: marked.CustomerName,
		Grade:        marked.Grade,
		Section:      marked.Section,
		WonAt:        wonAt,
		PrizeDetails: prizeDetails,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("customer", winner.CustomerName).
		Int("raffle_number", marked.RaffleNumber).
		Msg("raffle winner drawn")

	return winner, nil
}
