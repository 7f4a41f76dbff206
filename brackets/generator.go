package brackets

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"

	"github.com/Dosada05/tournament-bracket/models"
)

type BracketGenerator interface {
	// Generate строит первый раунд, если ростер полон и сетки еще нет.
	// Возвращает true, если сетка была (пере)построена.
	Generate(state *models.TournamentState) (bool, error)

	GetName() string
}

// NewGenerator выбирает генератор по режиму турнира.
func NewGenerator(mode models.TournamentMode, rng *rand.Rand) (BracketGenerator, error) {
	switch mode {
	case models.ModeSingle, "":
		return NewSingleEliminationGenerator(rng), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}
}

// IsSupportedMode сообщает, есть ли генератор для режима.
func IsSupportedMode(mode models.TournamentMode) bool {
	return mode == models.ModeSingle
}

// NewSeededRand возвращает источник со случайным зерном из crypto/rand.
func NewSeededRand() *rand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewChaCha8(seed))
}
