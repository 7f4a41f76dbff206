package models

type Match struct {
	Team1  string `json:"team1"`
	Team2  string `json:"team2"`
	Score1 *int   `json:"score1,omitempty"`
	Score2 *int   `json:"score2,omitempty"`
	Winner string `json:"winner,omitempty"`
}

func (m Match) IsBye() bool {
	return m.Team1 == ByeTeam || m.Team2 == ByeTeam
}

func (m Match) IsDecided() bool {
	return m.Winner != ""
}

// IsPlayable сообщает, можно ли вносить счет: обе команды известны и это не bye.
func (m Match) IsPlayable() bool {
	return m.Team1 != "" && m.Team2 != "" && !m.IsBye()
}

type Round []Match

// IsComplete истинно, когда у каждого матча раунда есть победитель.
func (r Round) IsComplete() bool {
	if len(r) == 0 {
		return false
	}
	for _, m := range r {
		if !m.IsDecided() {
			return false
		}
	}
	return true
}

func (r Round) Winners() []string {
	winners := make([]string, 0, len(r))
	for _, m := range r {
		winners = append(winners, m.Winner)
	}
	return winners
}

type Bracket struct {
	Rounds []Round `json:"rounds"`
}

func (b Bracket) IsEmpty() bool {
	return len(b.Rounds) == 0
}
