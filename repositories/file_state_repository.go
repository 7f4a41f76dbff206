package repositories

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Dosada05/tournament-bracket/models"
)

type fileStateRepository struct {
	path            string
	defaultCapacity int
}

// NewFileStateRepository хранит снимок в JSON-файле. Запись атомарна:
// сначала временный файл, затем rename.
func NewFileStateRepository(path string, defaultCapacity int) StateRepository {
	return &fileStateRepository{path: path, defaultCapacity: defaultCapacity}
}

func (r *fileStateRepository) Load(ctx context.Context) (*models.TournamentState, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			state := models.NewTournamentState(r.defaultCapacity)
			if err := r.Save(ctx, state); err != nil {
				return nil, err
			}
			return state, nil
		}
		return nil, fmt.Errorf("failed to read state file %s: %w", r.path, err)
	}
	return decodeState(data, r.defaultCapacity)
}

func (r *fileStateRepository) Save(ctx context.Context, state *models.TournamentState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // после успешного rename файла уже нет

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close state file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("failed to replace state file %s: %w", r.path, err)
	}
	return nil
}
