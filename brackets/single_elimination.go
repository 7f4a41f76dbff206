package brackets

import (
	"math/rand/v2"

	"github.com/Dosada05/tournament-bracket/models"
)

type SingleEliminationGenerator struct {
	rng *rand.Rand
}

// NewSingleEliminationGenerator создает генератор с заданным источником случайности.
// При rng == nil используется случайное зерно.
func NewSingleEliminationGenerator(rng *rand.Rand) *SingleEliminationGenerator {
	if rng == nil {
		rng = NewSeededRand()
	}
	return &SingleEliminationGenerator{rng: rng}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

func (g *SingleEliminationGenerator) Generate(state *models.TournamentState) (bool, error) {
	if len(state.Teams) != state.Max {
		return false, ErrRosterNotFull
	}
	if !state.Bracket.IsEmpty() && !state.IsBracketStale() {
		return false, nil
	}

	names := models.TeamNames(state.Teams)
	g.rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})

	state.Bracket = models.Bracket{Rounds: []models.Round{PairTeams(names)}}
	state.Winner = ""
	state.TeamSignature = models.TeamSignature(state.Teams)

	AdvanceIfRoundComplete(state)
	return true, nil
}

// PairTeams разбивает команды на пары по порядку. Последняя команда при нечетном
// количестве играет с BYE и сразу проходит дальше.
func PairTeams(names []string) models.Round {
	round := make(models.Round, 0, (len(names)+1)/2)
	for i := 0; i < len(names); i += 2 {
		m := models.Match{Team1: names[i], Team2: models.ByeTeam}
		if i+1 < len(names) {
			m.Team2 = names[i+1]
		}
		if m.Team2 == models.ByeTeam {
			m.Winner = m.Team1
		}
		round = append(round, m)
	}
	return round
}
