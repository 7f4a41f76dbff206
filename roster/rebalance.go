package roster

import "github.com/Dosada05/tournament-bracket/models"

// Rebalance приводит ростер к вместимости capacity. Лишний хвост ростера уходит
// в начало листа ожидания с сохранением порядка, свободные места заполняются
// из головы листа ожидания (FIFO). Входные слайсы не изменяются.
func Rebalance(teams, waitlist []models.Team, capacity int) ([]models.Team, []models.Team) {
	switch {
	case len(teams) > capacity:
		overflow := teams[capacity:]
		newWaitlist := make([]models.Team, 0, len(overflow)+len(waitlist))
		newWaitlist = append(newWaitlist, overflow...)
		newWaitlist = append(newWaitlist, waitlist...)
		newTeams := append([]models.Team(nil), teams[:capacity]...)
		return newTeams, newWaitlist

	case len(teams) < capacity && len(waitlist) > 0:
		n := capacity - len(teams)
		if n > len(waitlist) {
			n = len(waitlist)
		}
		newTeams := make([]models.Team, 0, len(teams)+n)
		newTeams = append(newTeams, teams...)
		newTeams = append(newTeams, waitlist[:n]...)
		newWaitlist := append([]models.Team{}, waitlist[n:]...)
		return newTeams, newWaitlist

	default:
		return append([]models.Team{}, teams...), append([]models.Team{}, waitlist...)
	}
}

// Reconcile чинит загруженный снимок, в котором ростер больше вместимости
// или лист ожидания не пуст при свободных местах. Такие файлы оставляла
// старая версия, менявшая max без перераспределения. Возвращает true, если
// снимок изменился.
func Reconcile(state *models.TournamentState) bool {
	over := len(state.Teams) > state.Max
	under := len(state.Teams) < state.Max && len(state.Waitlist) > 0
	if !over && !under {
		return false
	}
	RebalanceState(state)
	return true
}

// RebalanceState применяет Rebalance к снимку и безусловно сбрасывает сетку:
// любое изменение вместимости или состава обнуляет прогресс турнира.
func RebalanceState(state *models.TournamentState) {
	state.Teams, state.Waitlist = Rebalance(state.Teams, state.Waitlist, state.Max)
	state.InvalidateBracket()
}
