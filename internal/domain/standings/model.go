// Package standings models league standings snapshots and normalizes the
// payload shapes the upstream API has shipped over time.
package standings

// TeamStanding is one club's validated win/loss record with its league
// and division placement. Values are immutable once normalized.
type TeamStanding struct {
	TeamID   int64
	TeamName string
	League   string
	Division string
	Wins     int
	Losses   int
}

func (s TeamStanding) GamesPlayed() int {
	return s.Wins + s.Losses
}

// WinPct returns wins over games played, 0 when no games have been
// played.
func (s TeamStanding) WinPct() float64 {
	gp := s.GamesPlayed()
	if gp == 0 {
		return 0.0
	}
	return float64(s.Wins) / float64(gp)
}

// GamesBack is the standard standings deficit of s behind leader:
// ((Lw-Tw)+(Tl-Ll))/2. Negative when s is actually ahead.
func (s TeamStanding) GamesBack(leader TeamStanding) float64 {
	return (float64(leader.Wins-s.Wins) + float64(s.Losses-leader.Losses)) / 2.0
}
