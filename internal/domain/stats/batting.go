package stats

// BattingLine holds the counting stats a box score reports for one batter
// in one game.
type BattingLine struct {
	AtBats      int
	Hits        int
	Doubles     int
	Triples     int
	HomeRuns    int
	Walks       int
	HitByPitch  int
	SacFlies    int
	StolenBases int
	RBI         int
	Runs        int
}

// BattingDerived is the rate and score block computed from a BattingLine.
type BattingDerived struct {
	Average      float64
	OnBase       float64
	Slugging     float64
	OPS          float64
	Singles      int
	TotalBases   int
	GameScore    float64
	RawGameScore float64
}

// Weighted single-game batting score. Weights favor power and baserunning
// over empty contact; anchors map a quiet 0-for-4 to 0 and a monster game
// near 20 raw points to 100.
const (
	battingWeightHomeRun = 5.0
	battingWeightExtra   = 3.0
	battingWeightOnBase  = 2.0
	battingWeightSingle  = 1.0
	battingWeightRBI     = 2.0
	battingWeightRun     = 1.0

	battingScoreFloor = 0.0
	battingScoreCeil  = 20.0
)

// DeriveBatting computes rate stats and the single-game score for one
// batting line. Zero-denominator rates come back as exactly 0.
func DeriveBatting(line BattingLine) BattingDerived {
	singles := line.Hits - line.Doubles - line.Triples - line.HomeRuns
	if singles < 0 {
		singles = 0
	}
	totalBases := singles + 2*line.Doubles + 3*line.Triples + 4*line.HomeRuns

	d := BattingDerived{
		Singles:    singles,
		TotalBases: totalBases,
	}

	if line.AtBats > 0 {
		d.Average = round3(float64(line.Hits) / float64(line.AtBats))
		d.Slugging = round3(float64(totalBases) / float64(line.AtBats))
	}

	// Plate appearances approximated from the counts a box score carries.
	pa := line.AtBats + line.Walks + line.HitByPitch + line.SacFlies
	if pa > 0 {
		d.OnBase = round3(float64(line.Hits+line.Walks+line.HitByPitch) / float64(pa))
	}
	d.OPS = round3(d.OnBase + d.Slugging)

	raw := battingWeightHomeRun*float64(line.HomeRuns) +
		battingWeightExtra*float64(line.Doubles+line.Triples) +
		battingWeightOnBase*float64(line.Walks+line.HitByPitch+line.StolenBases) +
		battingWeightSingle*float64(singles) +
		battingWeightRBI*float64(line.RBI) +
		battingWeightRun*float64(line.Runs)

	d.RawGameScore = round2(raw)
	d.GameScore = to100(raw, battingScoreFloor, battingScoreCeil)
	return d
}

// to100 rescales a raw score onto 0..100 against fixed anchors, clamping
// outliers to the edges.
func to100(raw, floor, ceil float64) float64 {
	if ceil <= floor {
		return 50.0
	}
	scaled := (raw - floor) / (ceil - floor) * 100.0
	if scaled < 0 {
		return 0.0
	}
	if scaled > 100 {
		return 100.0
	}
	return round2(scaled)
}
