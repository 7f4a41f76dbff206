package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/roster"
)

type TournamentService interface {
	GetRoster(ctx context.Context) (*RosterView, error)
	AdmitTeam(ctx context.Context, input AdmitTeamInput) (*AdmitTeamResult, error)
	RemoveTeam(ctx context.Context, actor models.Actor, index int) (*RosterView, error)
	RemoveWaitlistedTeam(ctx context.Context, actor models.Actor, index int) (*RosterView, error)
	SetCapacity(ctx context.Context, actor models.Actor, capacity int) (*RosterView, error)
	SetMode(ctx context.Context, actor models.Actor, mode models.TournamentMode) (*RosterView, error)
	ClearTournament(ctx context.Context, actor models.Actor) (*RosterView, error)
}

type AdmitTeamInput struct {
	Name    string   `json:"name"`
	Players []string `json:"players,omitempty"`
}

type AdmitTeamResult struct {
	Placement roster.Placement `json:"placement"`
	Roster    *RosterView      `json:"roster"`
}

type tournamentService struct {
	runner *StateRunner
	logger *slog.Logger
}

func NewTournamentService(runner *StateRunner, logger *slog.Logger) TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		runner: runner,
		logger: logger.With(slog.String("service", "tournament")),
	}
}

func rosterResult(state *models.TournamentState, err error) (*RosterView, error) {
	if state == nil {
		return nil, err
	}
	return NewRosterView(state), err
}

func (s *tournamentService) GetRoster(ctx context.Context) (*RosterView, error) {
	return rosterResult(s.runner.Run(ctx, "get_roster", func(state *models.TournamentState) (string, error) {
		return "", nil
	}))
}

func (s *tournamentService) AdmitTeam(ctx context.Context, input AdmitTeamInput) (*AdmitTeamResult, error) {
	var placement roster.Placement
	state, err := s.runner.Run(ctx, "admit_team", func(state *models.TournamentState) (string, error) {
		p, err := roster.Admit(state, models.Team{Name: input.Name, Players: input.Players})
		if err != nil {
			return "", err
		}
		placement = p
		return brackets.MessageRosterUpdated, nil
	})
	view, err := rosterResult(state, err)
	if view == nil {
		return nil, err
	}
	if err == nil {
		s.logger.Info("team admitted", slog.String("team", input.Name), slog.String("placement", string(placement)))
	}
	return &AdmitTeamResult{Placement: placement, Roster: view}, err
}

func (s *tournamentService) RemoveTeam(ctx context.Context, actor models.Actor, index int) (*RosterView, error) {
	if err := requireAdmin(s.logger, actor, "remove_team"); err != nil {
		return nil, err
	}
	return rosterResult(s.runner.Run(ctx, "remove_team", func(state *models.TournamentState) (string, error) {
		removed, err := roster.Remove(state, index)
		if err != nil {
			return "", err
		}
		s.logger.Info("team removed", slog.String("team", removed.Name), slog.Int("index", index))
		return brackets.MessageRosterUpdated, nil
	}))
}

func (s *tournamentService) RemoveWaitlistedTeam(ctx context.Context, actor models.Actor, index int) (*RosterView, error) {
	if err := requireAdmin(s.logger, actor, "remove_waitlisted_team"); err != nil {
		return nil, err
	}
	return rosterResult(s.runner.Run(ctx, "remove_waitlisted_team", func(state *models.TournamentState) (string, error) {
		removed, err := roster.RemoveWaitlisted(state, index)
		if err != nil {
			return "", err
		}
		s.logger.Info("waitlisted team removed", slog.String("team", removed.Name), slog.Int("index", index))
		return brackets.MessageRosterUpdated, nil
	}))
}

func (s *tournamentService) SetCapacity(ctx context.Context, actor models.Actor, capacity int) (*RosterView, error) {
	if err := requireAdmin(s.logger, actor, "set_capacity"); err != nil {
		return nil, err
	}
	return rosterResult(s.runner.Run(ctx, "set_capacity", func(state *models.TournamentState) (string, error) {
		changed, err := roster.SetCapacity(state, capacity)
		if err != nil || !changed {
			return "", err
		}
		return brackets.MessageRosterUpdated, nil
	}))
}

func (s *tournamentService) SetMode(ctx context.Context, actor models.Actor, mode models.TournamentMode) (*RosterView, error) {
	if err := requireAdmin(s.logger, actor, "set_mode"); err != nil {
		return nil, err
	}
	return rosterResult(s.runner.Run(ctx, "set_mode", func(state *models.TournamentState) (string, error) {
		if !brackets.IsSupportedMode(mode) {
			return "", fmt.Errorf("%w: %q", brackets.ErrUnsupportedMode, mode)
		}
		if state.Mode == mode {
			return "", nil
		}
		state.Mode = mode
		state.InvalidateBracket()
		return brackets.MessageRosterUpdated, nil
	}))
}

// ClearTournament удаляет все команды и сетку, сохраняя вместимость и режим.
func (s *tournamentService) ClearTournament(ctx context.Context, actor models.Actor) (*RosterView, error) {
	if err := requireAdmin(s.logger, actor, "clear_tournament"); err != nil {
		return nil, err
	}
	return rosterResult(s.runner.Run(ctx, "clear_tournament", func(state *models.TournamentState) (string, error) {
		cleared := models.NewTournamentState(state.Max)
		cleared.Mode = state.Mode
		*state = *cleared
		return brackets.MessageRosterUpdated, nil
	}))
}
