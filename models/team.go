package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ByeTeam занимает пустой слот пары при нечетном числе команд.
const ByeTeam = "BYE"

type Team struct {
	Name    string   `json:"name"`
	Players []string `json:"players,omitempty"`
}

// UnmarshalJSON принимает как объект, так и строку с именем команды
// (старый формат data.json хранил команды строками).
func (t *Team) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		t.Name = name
		t.Players = nil
		return nil
	}

	type plain Team
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("team must be a string or an object: %w", err)
	}
	*t = Team(p)
	return nil
}

// TeamKey нормализует имя команды для сравнения.
func TeamKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func TeamNames(teams []Team) []string {
	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.Name
	}
	return names
}

// TeamSignature строит отпечаток состава ростера, не зависящий от порядка.
func TeamSignature(teams []Team) string {
	keys := make([]string, len(teams))
	for i, t := range teams {
		keys[i] = TeamKey(t.Name)
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}
