package stats

// PitchingLine holds the counting stats a box score reports for one
// pitcher in one game. Outs is the canonical workload measure; convert
// feed notation through the innings codec before building one of these.
type PitchingLine struct {
	Outs       int
	Hits       int
	Runs       int
	EarnedRuns int
	Walks      int
	Strikeouts int
	HomeRuns   int
	BattersHit int
}

// PitchingDerived is the rate and score block computed from a PitchingLine.
type PitchingDerived struct {
	InningsPitched float64
	InningsText    string
	ERA            float64
	WHIP           float64
	StrikeoutsPer9 float64
	GameScore      float64
	RawGameScore   float64
}

// Weighted single-game pitching score. Innings eaten and strikeouts earn,
// damage allowed costs; anchors map a blown short start near -10 raw to 0
// and a dominant complete game near 40 raw to 100.
const (
	pitchingWeightInning    = 6.0
	pitchingWeightStrikeout = 2.0
	pitchingWeightEarnedRun = -4.0
	pitchingWeightHit       = -2.0
	pitchingWeightWalk      = -1.0
	pitchingWeightHomeRun   = -3.0

	pitchingScoreFloor = -10.0
	pitchingScoreCeil  = 40.0
)

// DerivePitching computes rate stats and the single-game score for one
// pitching line. A pitcher with zero outs recorded gets all rates as
// exactly 0 rather than infinity.
func DerivePitching(line PitchingLine) PitchingDerived {
	ip := InningsFloatFromOuts(line.Outs)

	d := PitchingDerived{
		InningsPitched: ip,
		InningsText:    InningsStringFromOuts(line.Outs),
	}

	// Rates and the score use the exact thirds value; the rounded
	// InningsPitched is display only.
	var exact float64
	if line.Outs > 0 {
		exact = float64(line.Outs) / 3.0
		d.ERA = round2(float64(line.EarnedRuns) * 9.0 / exact)
		d.WHIP = round2(float64(line.Walks+line.Hits) / exact)
		d.StrikeoutsPer9 = round2(float64(line.Strikeouts) * 9.0 / exact)
	}

	// A homer costs its own weight instead of the plain-hit weight, so it
	// is subtracted out of the hits term first.
	raw := pitchingWeightInning*exact +
		pitchingWeightStrikeout*float64(line.Strikeouts) +
		pitchingWeightEarnedRun*float64(line.EarnedRuns) +
		pitchingWeightHit*float64(line.Hits-line.HomeRuns) +
		pitchingWeightWalk*float64(line.Walks) +
		pitchingWeightHomeRun*float64(line.HomeRuns)

	d.RawGameScore = round2(raw)
	d.GameScore = to100(raw, pitchingScoreFloor, pitchingScoreCeil)
	return d
}
