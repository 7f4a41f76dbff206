package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/repositories"
)

// Broadcaster рассылает обновления подписчикам (WebSocket hub).
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// mutation изменяет снимок и возвращает тип события для рассылки.
// Пустое событие означает, что снимок не изменился и сохранять его не нужно.
type mutation func(state *models.TournamentState) (event string, err error)

// StateRunner выполняет цикл load → mutate → save под одной блокировкой,
// чтобы параллельные запросы не затирали изменения друг друга.
type StateRunner struct {
	mu     sync.Mutex
	repo   repositories.StateRepository
	hub    Broadcaster
	logger *slog.Logger
}

func NewStateRunner(repo repositories.StateRepository, hub Broadcaster, logger *slog.Logger) *StateRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateRunner{repo: repo, hub: hub, logger: logger}
}

// Run применяет fn к копии загруженного снимка. При ошибке fn возвращается
// исходный снимок без изменений, а хранилище не трогается.
func (r *StateRunner) Run(ctx context.Context, op string, fn mutation) (*models.TournamentState, error) {
	return r.RunThen(ctx, op, fn, nil)
}

// RunThen как Run, но после сохранения вызывает then, пока блокировка еще
// удерживается: ни одно другое изменение не попадет между fn и then.
// Ошибка then не отменяет уже сохраненный снимок.
func (r *StateRunner) RunThen(ctx context.Context, op string, fn mutation, then func(*models.TournamentState) error) (*models.TournamentState, error) {
	state, event, err := r.run(ctx, op, fn, then)
	if event != "" {
		r.publish(event, state)
	}
	return state, err
}

func (r *StateRunner) run(ctx context.Context, op string, fn mutation, then func(*models.TournamentState) error) (*models.TournamentState, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loaded, err := r.repo.Load(ctx)
	if err != nil {
		r.logger.Error("failed to load tournament state", slog.String("op", op), slog.Any("error", err))
		return nil, "", fmt.Errorf("%w: %w", ErrStorage, err)
	}

	working := loaded.Clone()
	event, err := fn(working)
	if err != nil {
		r.logger.Info("operation rejected", slog.String("op", op), slog.Any("error", err))
		return loaded, "", err
	}
	if event == "" {
		return working, "", runThen(then, working)
	}

	if err := r.repo.Save(ctx, working); err != nil {
		r.logger.Error("failed to save tournament state", slog.String("op", op), slog.Any("error", err))
		return nil, "", fmt.Errorf("%w: %w", ErrStorage, err)
	}
	r.logger.Info("tournament state saved",
		slog.String("op", op),
		slog.String("event", event),
		slog.Int("teams", len(working.Teams)),
		slog.Int("waitlist", len(working.Waitlist)),
		slog.Int("rounds", len(working.Bracket.Rounds)),
	)
	return working, event, runThen(then, working)
}

func runThen(then func(*models.TournamentState) error, state *models.TournamentState) error {
	if then == nil {
		return nil
	}
	return then(state)
}

func (r *StateRunner) publish(event string, state *models.TournamentState) {
	if r.hub == nil {
		return
	}
	r.hub.BroadcastToRoom(brackets.BracketRoom, brackets.WebSocketMessage{
		Type:    event,
		Payload: state,
		RoomID:  brackets.BracketRoom,
	})
}

func requireAdmin(logger *slog.Logger, actor models.Actor, op string) error {
	if actor.IsAdmin() {
		return nil
	}
	logger.Warn("admin operation denied", slog.String("op", op), slog.String("role", string(actor.Role)))
	return ErrForbiddenOperation
}
