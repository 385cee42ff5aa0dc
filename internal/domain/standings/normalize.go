package standings

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Normalize converts one raw standings record into a TeamStanding. It
// accepts both the current API shape (nested "team" object, "league" and
// "division" as objects or bare strings, "leagueRecord" win/loss
// fallback) and the legacy flat shape ("teamId"/"team_id", "w"/"wins").
// A record missing any required field is dropped, reported through the
// second return; malformed input is never an error.
func Normalize(record map[string]any) (TeamStanding, bool) {
	if record == nil {
		return TeamStanding{}, false
	}

	var s TeamStanding

	if teamObj, ok := record["team"].(map[string]any); ok {
		id, idOK := intField(teamObj, "id")
		name, nameOK := stringField(teamObj, "name")
		if idOK {
			s.TeamID = id
		}
		if nameOK {
			s.TeamName = name
		}
	}
	if s.TeamID == 0 {
		if id, ok := firstInt(record, "teamId", "team_id", "id"); ok {
			s.TeamID = id
		}
	}
	if s.TeamName == "" {
		if name, ok := firstString(record, "teamName", "team_name", "name"); ok {
			s.TeamName = name
		}
	}

	s.League = nameOf(record["league"])
	s.Division = nameOf(record["division"])

	wins, winsOK := firstInt(record, "wins", "w")
	losses, lossesOK := firstInt(record, "losses", "l")
	if !winsOK || !lossesOK {
		if lr, ok := record["leagueRecord"].(map[string]any); ok {
			wins, winsOK = intField(lr, "wins")
			losses, lossesOK = intField(lr, "losses")
		}
	}
	s.Wins = int(wins)
	s.Losses = int(losses)

	if s.TeamID == 0 || s.TeamName == "" || s.League == "" || s.Division == "" || !winsOK || !lossesOK {
		return TeamStanding{}, false
	}
	return s, true
}

// NormalizeAll drops invalid records silently and keeps input order.
func NormalizeAll(records []map[string]any) []TeamStanding {
	out := make([]TeamStanding, 0, len(records))
	for _, r := range records {
		if s, ok := Normalize(r); ok {
			out = append(out, s)
		}
	}
	return out
}

// nameOf unwraps a league/division value that may arrive as a
// {"name": ...} object or a bare string.
func nameOf(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		if name, ok := stringField(t, "name"); ok {
			return name
		}
	}
	return ""
}

func firstInt(m map[string]any, keys ...string) (int64, bool) {
	for _, k := range keys {
		if v, ok := intField(m, k); ok {
			return v, true
		}
	}
	return 0, false
}

func firstString(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := stringField(m, k); ok {
			return v, true
		}
	}
	return "", false
}

func intField(m map[string]any, key string) (int64, bool) {
	switch t := m[key].(type) {
	case float64:
		return int64(t), true
	case int:
		return int64(t), true
	case int64:
		return t, true
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return n, err == nil
	}
	return 0, false
}

func stringField(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	s = strings.TrimSpace(s)
	return s, ok && s != ""
}
