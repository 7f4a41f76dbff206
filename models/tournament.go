package models

// TournamentMode задает формат турнира. Реализован только ModeSingle.
type TournamentMode string

const (
	ModeSingle TournamentMode = "single"

	DefaultCapacity = 8
	MinCapacity     = 2
)

// TournamentState - весь сохраняемый снимок турнира. Его целиком загружают,
// изменяют и сохраняют в рамках одного запроса.
type TournamentState struct {
	Teams         []Team         `json:"teams"`
	Waitlist      []Team         `json:"waitlist"`
	Max           int            `json:"max"`
	Mode          TournamentMode `json:"mode"`
	Bracket       Bracket        `json:"bracket"`
	Winner        string         `json:"winner,omitempty"`
	TeamSignature string         `json:"team_signature"`
}

func NewTournamentState(capacity int) *TournamentState {
	if capacity < MinCapacity {
		capacity = DefaultCapacity
	}
	return &TournamentState{
		Teams:    []Team{},
		Waitlist: []Team{},
		Max:      capacity,
		Mode:     ModeSingle,
		Bracket:  Bracket{Rounds: []Round{}},
	}
}

// Normalize приводит загруженный снимок к рабочему виду: nil-слайсы, режим и
// некорректная вместимость из старых файлов. Состав ростера не трогает.
func (s *TournamentState) Normalize(defaultCapacity int) {
	if s.Teams == nil {
		s.Teams = []Team{}
	}
	if s.Waitlist == nil {
		s.Waitlist = []Team{}
	}
	if s.Bracket.Rounds == nil {
		s.Bracket.Rounds = []Round{}
	}
	// Других режимов нет: пустой или неизвестный режим из старых файлов считается single.
	if s.Mode != ModeSingle {
		s.Mode = ModeSingle
	}
	if s.Max < MinCapacity {
		s.Max = defaultCapacity
		if s.Max < MinCapacity {
			s.Max = DefaultCapacity
		}
	}
}

func (s *TournamentState) IsFull() bool {
	return len(s.Teams) >= s.Max
}

// InvalidateBracket сбрасывает сетку и победителя.
func (s *TournamentState) InvalidateBracket() {
	s.Bracket = Bracket{Rounds: []Round{}}
	s.Winner = ""
	s.TeamSignature = TeamSignature(s.Teams)
}

// IsBracketStale сообщает, что сетка построена для другого состава.
func (s *TournamentState) IsBracketStale() bool {
	return !s.Bracket.IsEmpty() && s.TeamSignature != TeamSignature(s.Teams)
}

// Clone возвращает глубокую копию снимка.
func (s *TournamentState) Clone() *TournamentState {
	c := *s
	c.Teams = cloneTeams(s.Teams)
	c.Waitlist = cloneTeams(s.Waitlist)
	c.Bracket.Rounds = make([]Round, len(s.Bracket.Rounds))
	for i, r := range s.Bracket.Rounds {
		round := make(Round, len(r))
		for j, m := range r {
			round[j] = m
			if m.Score1 != nil {
				v := *m.Score1
				round[j].Score1 = &v
			}
			if m.Score2 != nil {
				v := *m.Score2
				round[j].Score2 = &v
			}
		}
		c.Bracket.Rounds[i] = round
	}
	return &c
}

func cloneTeams(teams []Team) []Team {
	out := make([]Team, len(teams))
	for i, t := range teams {
		out[i] = Team{Name: t.Name}
		if t.Players != nil {
			out[i].Players = append([]string(nil), t.Players...)
		}
	}
	return out
}
