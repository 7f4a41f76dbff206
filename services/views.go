package services

import "github.com/Dosada05/tournament-bracket/models"

type RosterView struct {
	Teams     []models.Team         `json:"teams"`
	Waitlist  []models.Team         `json:"waitlist"`
	Max       int                   `json:"max"`
	Mode      models.TournamentMode `json:"mode"`
	Full      bool                  `json:"full"`
	OpenSlots int                   `json:"open_slots"`
}

type BracketView struct {
	// Ready ложно, пока ростер не заполнен и сетка не может быть построена.
	Ready       bool                  `json:"ready"`
	TeamsNeeded int                   `json:"teams_needed"`
	Mode        models.TournamentMode `json:"mode"`
	Rounds      []models.Round        `json:"rounds"`
	Winner      string                `json:"winner,omitempty"`
}

func NewRosterView(state *models.TournamentState) *RosterView {
	open := state.Max - len(state.Teams)
	if open < 0 {
		open = 0
	}
	return &RosterView{
		Teams:     state.Teams,
		Waitlist:  state.Waitlist,
		Max:       state.Max,
		Mode:      state.Mode,
		Full:      state.IsFull(),
		OpenSlots: open,
	}
}

func NewBracketView(state *models.TournamentState) *BracketView {
	needed := state.Max - len(state.Teams)
	if needed < 0 {
		needed = 0
	}
	rounds := state.Bracket.Rounds
	if rounds == nil {
		rounds = []models.Round{}
	}
	return &BracketView{
		Ready:       !state.Bracket.IsEmpty(),
		TeamsNeeded: needed,
		Mode:        state.Mode,
		Rounds:      rounds,
		Winner:      state.Winner,
	}
}

// Snapshot - первое сообщение подписчика: ростер и сетка из одного снимка.
type Snapshot struct {
	Roster  *RosterView  `json:"roster"`
	Bracket *BracketView `json:"bracket"`
}

func NewSnapshot(state *models.TournamentState) *Snapshot {
	return &Snapshot{Roster: NewRosterView(state), Bracket: NewBracketView(state)}
}
