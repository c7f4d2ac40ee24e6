package report

import "testing"

func TestGrowth(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		prior    float64
		expected float64
	}{
		{name: "both zero", current: 0, prior: 0, expected: 0},
		{name: "gained from nothing", current: 5, prior: 0, expected: 100},
		{name: "doubled", current: 100, prior: 50, expected: 100},
		{name: "halved", current: 50, prior: 100, expected: -50},
		{name: "lost everything", current: 0, prior: 80, expected: -100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Growth(tc.current, tc.prior); got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}
