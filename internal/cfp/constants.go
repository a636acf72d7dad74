package cfp

// Fixed model constants.  Every rating in the pipeline derives from the
// game log plus these values; there is no external score adjustment.
const (
	// HFAPoints is the points subtracted from a home team's margin before
	// it is used in rating math (55 Elo points ≈ 3.75 points).
	HFAPoints = 3.75

	// MOVCap clips adjusted margins to four touchdowns to keep blowouts
	// from dominating the margin-based systems.
	MOVCap = 28.0

	// EloBaseRating is every team's rating before week one.
	EloBaseRating = 1505.0

	// EloHFABonus is the rating bonus given to the home team of a
	// non-neutral game when computing expected score.
	EloHFABonus = 55.0

	// EloKFactor scales per-game Elo updates.
	EloKFactor = 85.0

	// EloScale is the logistic scale of the Elo expected-score curve.
	EloScale = 400.0

	// EloMOVScale is the logistic scale of the margin-of-victory multiplier.
	EloMOVScale = 17.0
)

// adjustedMargin applies the home-field adjustment and the MOV cap to a home
// margin.  Neutral-site games get no adjustment, only the cap.
func adjustedMargin(homeMargin float64, neutral bool) float64 {
	if !neutral {
		homeMargin -= HFAPoints
	}
	return clip(homeMargin, -MOVCap, MOVCap)
}

func clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
