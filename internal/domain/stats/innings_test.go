package stats

import "testing"

func TestInningsStringFromOuts_FixedPoints(t *testing.T) {
	t.Parallel()

	cases := []struct {
		outs int
		want string
	}{
		{0, "0.0"},
		{1, "0.1"},
		{2, "0.2"},
		{3, "1.0"},
		{20, "6.2"},
		{27, "9.0"},
		{-4, "0.0"},
	}
	for _, tc := range cases {
		if got := InningsStringFromOuts(tc.outs); got != tc.want {
			t.Fatalf("InningsStringFromOuts(%d) = %q, want %q", tc.outs, got, tc.want)
		}
	}
}

func TestOutsFromInningsString_RoundTrip(t *testing.T) {
	t.Parallel()

	for outs := 0; outs <= 81; outs++ {
		got := OutsFromInningsString(InningsStringFromOuts(outs))
		if got != outs {
			t.Fatalf("round trip broke at %d outs: got %d", outs, got)
		}
	}
}

func TestOutsFromInningsString_ClampsBadFraction(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"6.3", "6.7", "6.9"} {
		if got := OutsFromInningsString(s); got != 20 {
			t.Fatalf("OutsFromInningsString(%q) = %d, want 20", s, got)
		}
	}
}

func TestOutsFromInningsString_GarbageIsZero(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "abc", "-", "."} {
		if got := OutsFromInningsString(s); got != 0 {
			t.Fatalf("OutsFromInningsString(%q) = %d, want 0", s, got)
		}
	}
}

func TestOutsFromInningsNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{6.67, 20},
		{6.33, 19},
		{9.0, 27},
		{-1.0, 0},
	}
	for _, tc := range cases {
		if got := OutsFromInningsNumber(tc.in); got != tc.want {
			t.Fatalf("OutsFromInningsNumber(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestInningsFloatFromOuts(t *testing.T) {
	t.Parallel()

	if got := InningsFloatFromOuts(20); got != 6.67 {
		t.Fatalf("InningsFloatFromOuts(20) = %v, want 6.67", got)
	}
	if got := InningsFloatFromOuts(0); got != 0.0 {
		t.Fatalf("InningsFloatFromOuts(0) = %v, want 0", got)
	}
}
