package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/lib/pq"
)

// stateRowID - ключ единственной строки со снимком турнира.
const stateRowID = "default"

type sqlDialect struct {
	name   string
	schema string
	load   string
	save   string
}

var postgresDialect = sqlDialect{
	name: "postgres",
	schema: `
		CREATE TABLE IF NOT EXISTS tournament_state (
			id         TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	load: `SELECT data FROM tournament_state WHERE id = $1`,
	save: `
		INSERT INTO tournament_state (id, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
}

var sqliteDialect = sqlDialect{
	name: "sqlite",
	schema: `
		CREATE TABLE IF NOT EXISTS tournament_state (
			id         TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	load: `SELECT data FROM tournament_state WHERE id = ?`,
	save: `
		INSERT INTO tournament_state (id, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
}

// SQLStateRepository хранит снимок одной строкой таблицы tournament_state.
type SQLStateRepository struct {
	db              *sql.DB
	dialect         sqlDialect
	defaultCapacity int
}

func NewPostgresStateRepository(db *sql.DB, defaultCapacity int) *SQLStateRepository {
	return &SQLStateRepository{db: db, dialect: postgresDialect, defaultCapacity: defaultCapacity}
}

func NewSQLiteStateRepository(db *sql.DB, defaultCapacity int) *SQLStateRepository {
	return &SQLStateRepository{db: db, dialect: sqliteDialect, defaultCapacity: defaultCapacity}
}

// EnsureSchema создает таблицу снимка, если ее нет.
func (r *SQLStateRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.dialect.schema); err != nil {
		return fmt.Errorf("failed to create %s tournament_state table: %w", r.dialect.name, err)
	}
	return nil
}

func (r *SQLStateRepository) Load(ctx context.Context) (*models.TournamentState, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, r.dialect.load, stateRowID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NewTournamentState(r.defaultCapacity), nil
		}
		return nil, fmt.Errorf("failed to load tournament state (%s): %w", r.dialect.name, err)
	}
	return decodeState(data, r.defaultCapacity)
}

func (r *SQLStateRepository) Save(ctx context.Context, state *models.TournamentState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	// Строкой, а не []byte: lib/pq передает []byte как bytea, что несовместимо с JSONB.
	result, err := r.db.ExecContext(ctx, r.dialect.save, stateRowID, string(data))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("failed to save tournament state: postgres error %s (%s): %w", pqErr.Code, pqErr.Code.Name(), err)
		}
		return fmt.Errorf("failed to save tournament state (%s): %w", r.dialect.name, err)
	}
	return checkAffectedRows(result, ErrStateNotSaved)
}
