package stats

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Baseball writes partial innings in thirds: the digit after the decimal
// point counts outs, so "6.2" means six innings plus two outs, not 6.2
// innings. Outs are the canonical representation; the string and decimal
// forms are lossy encodings converted through here.

var inningsStringRe = regexp.MustCompile(`^\s*(\d+)(?:\.(\d))?\s*$`)

// OutsFromInningsString parses baseball-fraction notation ("6.2") into an
// outs count. A fractional digit of 3-9 is not valid notation and is
// clamped to 2. Invalid or empty input yields 0; this never fails.
func OutsFromInningsString(s string) int {
	m := inningsStringRe.FindStringSubmatch(s)
	if m == nil {
		// Some feeds carry a true decimal here ("6.67"); fall back to the
		// decimal-thirds reading.
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		return OutsFromInningsNumber(f)
	}

	whole, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}

	frac := 0
	if m[2] != "" {
		frac, err = strconv.Atoi(m[2])
		if err != nil {
			return 0
		}
		if frac > 2 {
			frac = 2
		}
	}

	return whole*3 + frac
}

// OutsFromInningsNumber converts a decimal innings count (6.67 meaning six
// and two thirds) into outs. This is a different encoding from the
// baseball-fraction string form and must not be fed strings like "6.2".
func OutsFromInningsNumber(f float64) int {
	outs := int(math.Round(f * 3.0))
	if outs < 0 {
		return 0
	}
	return outs
}

// InningsStringFromOuts renders outs in baseball-fraction notation.
// Negative outs is a caller error and renders as "0.0".
func InningsStringFromOuts(outs int) string {
	if outs < 0 {
		return "0.0"
	}
	return strconv.Itoa(outs/3) + "." + strconv.Itoa(outs%3)
}

// InningsFloatFromOuts returns the true decimal innings value, for rate
// stats that divide by innings pitched.
func InningsFloatFromOuts(outs int) float64 {
	if outs <= 0 {
		return 0.0
	}
	return round2(float64(outs) / 3.0)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
