package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/roster"
)

var (
	ErrStateCorrupted = errors.New("stored tournament state is corrupted")
	// ErrStateNotSaved означает, что upsert не затронул ни одной строки.
	ErrStateNotSaved = errors.New("tournament state row was not written")
)

// StateRepository хранит единственный снимок турнира. Load на пустом
// хранилище возвращает новый снимок по умолчанию.
type StateRepository interface {
	Load(ctx context.Context) (*models.TournamentState, error)
	Save(ctx context.Context, state *models.TournamentState) error
}

func decodeState(data []byte, defaultCapacity int) (*models.TournamentState, error) {
	state := &models.TournamentState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStateCorrupted, err)
	}
	state.Normalize(defaultCapacity)
	roster.Reconcile(state)
	return state, nil
}

func encodeState(state *models.TournamentState) ([]byte, error) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode tournament state: %w", err)
	}
	return data, nil
}
