package stats

import "testing"

func TestDerivePitching_WorkedExample(t *testing.T) {
	t.Parallel()

	d := DerivePitching(PitchingLine{
		Outs:       20,
		Hits:       5,
		EarnedRuns: 2,
		Walks:      1,
		Strikeouts: 7,
		HomeRuns:   1,
	})

	if d.InningsText != "6.2" {
		t.Fatalf("innings text = %q, want 6.2", d.InningsText)
	}
	if d.InningsPitched != 6.67 {
		t.Fatalf("innings = %v, want 6.67", d.InningsPitched)
	}
	// 6*(20/3) + 2*7 - 4*2 - 2*(5-1) - 1*1 - 3*1
	if d.RawGameScore != 34.0 {
		t.Fatalf("raw score = %v, want 34.0", d.RawGameScore)
	}
	if d.GameScore != 88.0 {
		t.Fatalf("score = %v, want 88.0", d.GameScore)
	}
}

func TestDerivePitching_RateStats(t *testing.T) {
	t.Parallel()

	d := DerivePitching(PitchingLine{Outs: 27, Hits: 6, EarnedRuns: 3, Walks: 2, Strikeouts: 9})
	if d.ERA != 3.0 {
		t.Fatalf("era = %v, want 3.0", d.ERA)
	}
	if d.WHIP != 0.89 {
		t.Fatalf("whip = %v, want 0.89", d.WHIP)
	}
	if d.StrikeoutsPer9 != 9.0 {
		t.Fatalf("k/9 = %v, want 9.0", d.StrikeoutsPer9)
	}
}

func TestDerivePitching_ZeroOuts(t *testing.T) {
	t.Parallel()

	d := DerivePitching(PitchingLine{EarnedRuns: 3, Hits: 4, Walks: 2})
	if d.ERA != 0.0 || d.WHIP != 0.0 || d.StrikeoutsPer9 != 0.0 {
		t.Fatalf("expected zero rates with zero outs, got %+v", d)
	}
	if d.InningsText != "0.0" {
		t.Fatalf("innings text = %q, want 0.0", d.InningsText)
	}
}
