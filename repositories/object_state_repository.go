package repositories

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/storage"
)

type objectStateRepository struct {
	store           storage.ObjectStore
	key             string
	defaultCapacity int
}

// NewObjectStateRepository хранит снимок одним JSON-объектом в ObjectStore (R2/S3).
func NewObjectStateRepository(store storage.ObjectStore, key string, defaultCapacity int) StateRepository {
	return &objectStateRepository{store: store, key: key, defaultCapacity: defaultCapacity}
}

func (r *objectStateRepository) Load(ctx context.Context) (*models.TournamentState, error) {
	body, err := r.store.Download(ctx, r.key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return models.NewTournamentState(r.defaultCapacity), nil
		}
		return nil, fmt.Errorf("failed to load tournament state object %s: %w", r.key, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tournament state object %s: %w", r.key, err)
	}
	return decodeState(data, r.defaultCapacity)
}

func (r *objectStateRepository) Save(ctx context.Context, state *models.TournamentState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	if err := r.store.Upload(ctx, r.key, "application/json", bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save tournament state object %s: %w", r.key, err)
	}
	return nil
}
