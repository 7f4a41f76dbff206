package brackets

import (
	"fmt"

	"github.com/Dosada05/tournament-bracket/models"
)

// SubmitScore записывает счет матча и определяет победителя. Ничьи отклоняются.
// Если матч уже был сыгран и победитель поменялся, все последующие раунды
// удаляются, а победитель турнира сбрасывается.
func SubmitScore(state *models.TournamentState, roundIndex, matchIndex, score1, score2 int) error {
	if state.Bracket.IsEmpty() {
		return ErrBracketNotGenerated
	}
	if roundIndex < 0 || roundIndex >= len(state.Bracket.Rounds) {
		return fmt.Errorf("%w: round %d", ErrMatchNotFound, roundIndex)
	}
	round := state.Bracket.Rounds[roundIndex]
	if matchIndex < 0 || matchIndex >= len(round) {
		return fmt.Errorf("%w: round %d match %d", ErrMatchNotFound, roundIndex, matchIndex)
	}
	if score1 < 0 || score2 < 0 {
		return ErrNegativeScore
	}
	if score1 == score2 {
		return ErrTiedScore
	}

	m := &round[matchIndex]
	if !m.IsPlayable() {
		return fmt.Errorf("%w: round %d match %d", ErrMatchNotPlayable, roundIndex, matchIndex)
	}

	winner := m.Team2
	if score1 > score2 {
		winner = m.Team1
	}
	previous := m.Winner

	m.Score1 = &score1
	m.Score2 = &score2
	m.Winner = winner

	if previous != "" && previous != winner {
		state.Bracket.Rounds = state.Bracket.Rounds[:roundIndex+1]
		state.Winner = ""
	}
	return nil
}

// AdvanceIfRoundComplete строит следующий раунд из победителей последнего
// завершенного раунда либо объявляет победителя турнира. Повторный вызов без
// новых результатов ничего не меняет.
func AdvanceIfRoundComplete(state *models.TournamentState) bool {
	advanced := false
	for state.Winner == "" && !state.Bracket.IsEmpty() {
		last := state.Bracket.Rounds[len(state.Bracket.Rounds)-1]
		if !last.IsComplete() {
			break
		}

		winners := last.Winners()
		if len(winners) == 1 {
			state.Winner = winners[0]
			return true
		}
		state.Bracket.Rounds = append(state.Bracket.Rounds, PairTeams(winners))
		advanced = true
	}
	return advanced
}
