package report

// Growth returns the percentage change from prior to current. A zero prior
// yields 100 when anything was gained and 0 otherwise, so the function is
// total and never divides by zero.
func Growth(current, prior float64) float64 {
	if prior == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - prior) / prior * 100
}
