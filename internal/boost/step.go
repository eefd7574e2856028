package boost

import "math"

// #region step-functions

// signedStep maps a net tailwind/headwind score to a discrete boost
// fraction. Negative bands use inclusive bounds, positive bands exclusive,
// so a score sitting exactly on a positive boundary takes the higher band.
func signedStep(score float64) float64 {
	switch {
	case score <= -1.00:
		return -0.30
	case score <= -0.70:
		return -0.20
	case score <= -0.35:
		return -0.10
	case score < 0.35:
		return 0.0
	case score < 0.60:
		return 0.10
	case score < 0.80:
		return 0.20
	case score < 1.00:
		return 0.30
	case score < 1.20:
		return 0.40
	case score < 1.40:
		return 0.50
	default:
		return 0.60 // 50%+
	}
}

// competitorStep is the narrower band table for the competitor category,
// which accumulates signed contributions directly instead of separate
// tailwind/headwind sums.
func competitorStep(net float64) float64 {
	switch {
	case net <= -0.80:
		return -0.30
	case net <= -0.50:
		return -0.20
	case net <= -0.20:
		return -0.10
	case net < 0.20:
		return 0.0
	case net < 0.50:
		return 0.10
	case net < 0.80:
		return 0.20
	default:
		return 0.30
	}
}

// #endregion step-functions

// #region rounding

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

// #endregion rounding
