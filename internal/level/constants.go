package level

// Network level curve constants.
// XP for level N = N * (XPPerLevelSquared*N + XPLinearTerm)
const (
	XPPerLevelSquared = 1250.0
	XPLinearTerm      = 8750.0

	// curveOffset and curveShift rewrite the inverse as floor(sqrt(xp/1250 + 12.25) - 3.5)
	curveOffset = 12.25
	curveShift  = 3.5
)
