package usecase

import (
	"context"
	"math"
	"sort"

	"github.com/dugoutlabs/dugout/internal/domain/standings"
	"github.com/dugoutlabs/dugout/internal/domain/team"
	"github.com/dugoutlabs/dugout/internal/platform/cache"
	"github.com/dugoutlabs/dugout/internal/platform/logging"
)

const (
	divisionSigmoidScale = 1.5
	wildcardSigmoidScale = 3.0
	wildcardSlots        = 3

	// Probability assigned to a wildcard holder when every candidate in
	// the league fits in a slot, so there is no team to measure a cushion
	// against.
	wildcardUncontested = 0.8

	standingsCacheKey = "standings:current"
)

// OddsService estimates a team's postseason qualification odds from the
// current standings. It is a heuristic, not a simulation: division and
// wildcard chances are each read off a logistic curve over games-back
// distances, then combined.
type OddsService struct {
	provider StandingsProvider
	cache    *cache.Store
	log      *logging.Logger
}

func NewOddsService(provider StandingsProvider, store *cache.Store, log *logging.Logger) *OddsService {
	if log == nil {
		log = logging.Default()
	}
	return &OddsService{
		provider: provider,
		cache:    store,
		log:      log,
	}
}

// Estimate returns the team's odds as an integer percent in [0,100].
// ok is false when the team is absent from the standings or standings
// cannot be obtained at all; no error escapes.
func (s *OddsService) Estimate(ctx context.Context, ref team.Ref) (int, bool) {
	records, err := s.fetchStandings(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "standings unavailable for odds", "error", err)
		return 0, false
	}
	return s.EstimateFrom(ref, records)
}

// EstimateFrom runs the estimate against pre-fetched raw standings
// records, bypassing the provider and cache.
func (s *OddsService) EstimateFrom(ref team.Ref, records []map[string]any) (int, bool) {
	all := standings.NormalizeAll(records)

	subject, ok := locate(all, ref)
	if !ok {
		return 0, false
	}

	var leaguePeers, divisionPeers []standings.TeamStanding
	for _, t := range all {
		if t.League != subject.League {
			continue
		}
		leaguePeers = append(leaguePeers, t)
		if t.Division == subject.Division {
			divisionPeers = append(divisionPeers, t)
		}
	}

	pDiv := divisionProbability(subject, divisionPeers)
	pWC := wildcardProbability(subject, leaguePeers, isDivisionLeader(subject, divisionPeers))

	overall := 1.0 - (1.0-pDiv)*(1.0-pWC)
	if overall < 0 {
		overall = 0
	}
	if overall > 1 {
		overall = 1
	}
	return int(math.Round(overall * 100.0)), true
}

func (s *OddsService) fetchStandings(ctx context.Context) ([]map[string]any, error) {
	if s.provider == nil {
		return nil, ErrDependencyUnavailable
	}
	load := func(ctx context.Context) (any, error) {
		return s.provider.FetchStandings(ctx)
	}
	if s.cache == nil {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return v.([]map[string]any), nil
	}
	v, err := s.cache.GetOrLoad(ctx, standingsCacheKey, load)
	if err != nil {
		return nil, err
	}
	return v.([]map[string]any), nil
}

func locate(all []standings.TeamStanding, ref team.Ref) (standings.TeamStanding, bool) {
	for _, t := range all {
		if ref.Matches(t.TeamID, t.TeamName) {
			return t, true
		}
	}
	return standings.TeamStanding{}, false
}

// rank orders teams best first by (win pct, raw wins).
func rank(teams []standings.TeamStanding) []standings.TeamStanding {
	out := append([]standings.TeamStanding(nil), teams...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].WinPct(), out[j].WinPct()
		if pi != pj {
			return pi > pj
		}
		return out[i].Wins > out[j].Wins
	})
	return out
}

func isDivisionLeader(subject standings.TeamStanding, divisionPeers []standings.TeamStanding) bool {
	ranked := rank(divisionPeers)
	return len(ranked) > 0 && ranked[0].TeamID == subject.TeamID
}

func divisionProbability(subject standings.TeamStanding, divisionPeers []standings.TeamStanding) float64 {
	ranked := rank(divisionPeers)
	if len(ranked) == 0 {
		return 0.0
	}
	if ranked[0].TeamID == subject.TeamID {
		if len(ranked) == 1 {
			return 1.0
		}
		gamesAhead := ranked[1].GamesBack(subject)
		return sigmoid(gamesAhead, divisionSigmoidScale)
	}
	return sigmoid(-subject.GamesBack(ranked[0]), divisionSigmoidScale)
}

func wildcardProbability(subject standings.TeamStanding, leaguePeers []standings.TeamStanding, subjectLeadsDivision bool) float64 {
	// A division leader does not occupy a wildcard slot.
	if subjectLeadsDivision {
		return 0.0
	}

	leaders := map[int64]bool{}
	byDivision := map[string][]standings.TeamStanding{}
	for _, t := range leaguePeers {
		byDivision[t.Division] = append(byDivision[t.Division], t)
	}
	for _, div := range byDivision {
		ranked := rank(div)
		if len(ranked) > 0 {
			leaders[ranked[0].TeamID] = true
		}
	}

	var candidates []standings.TeamStanding
	for _, t := range leaguePeers {
		if !leaders[t.TeamID] {
			candidates = append(candidates, t)
		}
	}
	ranked := rank(candidates)

	idx := -1
	for i, t := range ranked {
		if t.TeamID == subject.TeamID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0.0
	}

	if idx < wildcardSlots {
		if len(ranked) <= wildcardSlots {
			return wildcardUncontested
		}
		firstOut := ranked[wildcardSlots]
		cushion := firstOut.GamesBack(subject)
		return sigmoid(cushion, wildcardSigmoidScale)
	}

	lastIn := ranked[wildcardSlots-1]
	deficit := subject.GamesBack(lastIn)
	return sigmoid(-deficit, wildcardSigmoidScale)
}

func sigmoid(distance, scale float64) float64 {
	if scale < 1e-6 {
		scale = 1e-6
	}
	return 1.0 / (1.0 + math.Exp(-distance/scale))
}
