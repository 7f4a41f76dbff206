package services

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/models"
)

type BracketService interface {
	// GetBracket возвращает сетку, генерируя первый раунд, если ростер только что заполнился.
	GetBracket(ctx context.Context) (*BracketView, error)
	SubmitScore(ctx context.Context, input SubmitScoreInput) (*BracketView, error)
	ResetBracket(ctx context.Context, actor models.Actor) (*BracketView, error)
	// Subscribe строит снимок ростера и сетки и передает его в join под той же
	// блокировкой, что и все изменения. Обновление, сохраненное после снимка,
	// будет разослано уже после возврата из join.
	Subscribe(ctx context.Context, join func(*Snapshot) error) error
}

type SubmitScoreInput struct {
	Round  int `json:"round"`
	Match  int `json:"match"`
	Score1 int `json:"score1"`
	Score2 int `json:"score2"`
}

type bracketService struct {
	runner *StateRunner
	rng    *rand.Rand
	logger *slog.Logger
}

// NewBracketService принимает источник случайности для жеребьевки.
// rng используется только внутри StateRunner.Run, то есть под блокировкой.
func NewBracketService(runner *StateRunner, rng *rand.Rand, logger *slog.Logger) BracketService {
	if rng == nil {
		rng = brackets.NewSeededRand()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &bracketService{
		runner: runner,
		rng:    rng,
		logger: logger.With(slog.String("service", "bracket")),
	}
}

func bracketResult(state *models.TournamentState, err error) (*BracketView, error) {
	if state == nil {
		return nil, err
	}
	return NewBracketView(state), err
}

func (s *bracketService) GetBracket(ctx context.Context) (*BracketView, error) {
	return bracketResult(s.runner.Run(ctx, "get_bracket", s.ensureBracket))
}

func (s *bracketService) Subscribe(ctx context.Context, join func(*Snapshot) error) error {
	_, err := s.runner.RunThen(ctx, "subscribe", s.ensureBracket, func(state *models.TournamentState) error {
		return join(NewSnapshot(state))
	})
	return err
}

// ensureBracket генерирует первый раунд для полного ростера и сбрасывает
// сетку, если ростер перестал быть полным.
func (s *bracketService) ensureBracket(state *models.TournamentState) (string, error) {
	if len(state.Teams) != state.Max {
		if state.Bracket.IsEmpty() {
			return "", nil
		}
		// Сетка без полного ростера не имеет смысла - сбрасываем.
		state.InvalidateBracket()
		return brackets.MessageBracketUpdated, nil
	}

	generator, err := brackets.NewGenerator(state.Mode, s.rng)
	if err != nil {
		return "", err
	}
	built, err := generator.Generate(state)
	if err != nil || !built {
		return "", err
	}
	s.logger.Info("bracket generated",
		slog.String("generator", generator.GetName()),
		slog.Int("teams", len(state.Teams)),
		slog.Int("matches", len(state.Bracket.Rounds[0])),
	)
	return brackets.MessageBracketUpdated, nil
}

func (s *bracketService) SubmitScore(ctx context.Context, input SubmitScoreInput) (*BracketView, error) {
	return bracketResult(s.runner.Run(ctx, "submit_score", func(state *models.TournamentState) (string, error) {
		if err := brackets.SubmitScore(state, input.Round, input.Match, input.Score1, input.Score2); err != nil {
			return "", err
		}
		brackets.AdvanceIfRoundComplete(state)

		if state.Winner != "" {
			s.logger.Info("tournament finished", slog.String("winner", state.Winner))
			return brackets.MessageTournamentFinished, nil
		}
		return brackets.MessageBracketUpdated, nil
	}))
}

func (s *bracketService) ResetBracket(ctx context.Context, actor models.Actor) (*BracketView, error) {
	if err := requireAdmin(s.logger, actor, "reset_bracket"); err != nil {
		return nil, err
	}
	return bracketResult(s.runner.Run(ctx, "reset_bracket", func(state *models.TournamentState) (string, error) {
		if state.Bracket.IsEmpty() && state.Winner == "" {
			return "", nil
		}
		state.InvalidateBracket()
		return brackets.MessageBracketUpdated, nil
	}))
}
