package roster

import (
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-bracket/models"
)

// Placement показывает, куда попала команда при регистрации.
type Placement string

const (
	PlacementRoster   Placement = "roster"
	PlacementWaitlist Placement = "waitlist"
)

// Admit регистрирует команду: в ростер, пока есть места, иначе в лист ожидания.
// Имена уникальны в пределах ростера и листа ожидания без учета регистра.
func Admit(state *models.TournamentState, team models.Team) (Placement, error) {
	team.Name = strings.TrimSpace(team.Name)
	if team.Name == "" {
		return "", ErrTeamNameRequired
	}
	if models.TeamKey(team.Name) == models.TeamKey(models.ByeTeam) {
		return "", ErrTeamNameReserved
	}
	if Contains(state, team.Name) {
		return "", fmt.Errorf("%w: %q", ErrTeamNameConflict, team.Name)
	}
	team.Players = cleanPlayers(team.Players)

	if len(state.Teams) < state.Max {
		state.Teams = append(state.Teams, team)
		state.InvalidateBracket()
		return PlacementRoster, nil
	}
	state.Waitlist = append(state.Waitlist, team)
	return PlacementWaitlist, nil
}

// Remove удаляет команду из ростера по индексу и перебалансирует ростер,
// продвигая команды из листа ожидания. Сетка сбрасывается.
func Remove(state *models.TournamentState, index int) (models.Team, error) {
	if index < 0 || index >= len(state.Teams) {
		return models.Team{}, fmt.Errorf("%w: %d (roster size %d)", ErrIndexOutOfRange, index, len(state.Teams))
	}
	removed := state.Teams[index]

	teams := make([]models.Team, 0, len(state.Teams)-1)
	teams = append(teams, state.Teams[:index]...)
	teams = append(teams, state.Teams[index+1:]...)
	state.Teams = teams

	RebalanceState(state)
	return removed, nil
}

// RemoveWaitlisted удаляет команду из листа ожидания. Состав ростера не меняется,
// поэтому сетка остается прежней.
func RemoveWaitlisted(state *models.TournamentState, index int) (models.Team, error) {
	if index < 0 || index >= len(state.Waitlist) {
		return models.Team{}, fmt.Errorf("%w: %d (waitlist size %d)", ErrIndexOutOfRange, index, len(state.Waitlist))
	}
	removed := state.Waitlist[index]

	waitlist := make([]models.Team, 0, len(state.Waitlist)-1)
	waitlist = append(waitlist, state.Waitlist[:index]...)
	waitlist = append(waitlist, state.Waitlist[index+1:]...)
	state.Waitlist = waitlist
	return removed, nil
}

// SetCapacity меняет вместимость. Возвращает false, если значение не изменилось.
func SetCapacity(state *models.TournamentState, capacity int) (bool, error) {
	if capacity < models.MinCapacity {
		return false, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	if capacity == state.Max {
		return false, nil
	}
	state.Max = capacity
	RebalanceState(state)
	return true, nil
}

// Contains проверяет, зарегистрирована ли команда с таким именем.
func Contains(state *models.TournamentState, name string) bool {
	key := models.TeamKey(name)
	for _, t := range state.Teams {
		if models.TeamKey(t.Name) == key {
			return true
		}
	}
	for _, t := range state.Waitlist {
		if models.TeamKey(t.Name) == key {
			return true
		}
	}
	return false
}

func cleanPlayers(players []string) []string {
	if len(players) == 0 {
		return nil
	}
	out := make([]string, 0, len(players))
	for _, p := range players {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
