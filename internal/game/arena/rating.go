// Package arena implements player-versus-player challenges and the rating
// exchange that follows them.
package arena

// Rating tiers: the closer two ratings are, the more points change hands.
const (
	closeDiff  = 50
	nearDiff   = 150
	farDiff    = 300
	closeDelta = 30
	nearDelta  = 20
	farDelta   = 10
	minDelta   = 5
)

// PointsDelta returns the rating changes of A and B after a decided match.
// The exchange is zero-sum; ratings have no floor or ceiling.
//
// Formula: diff = |a - b|; delta = 30 (diff<50), 20 (<150), 10 (<300), else 5.
func PointsDelta(ratingA, ratingB int32, aWon bool) (deltaA, deltaB int32) {
	delta := pointsFor(int64(ratingA) - int64(ratingB))
	if aWon {
		return delta, -delta
	}
	return -delta, delta
}

func pointsFor(diff int64) int32 {
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff < closeDiff:
		return closeDelta
	case diff < nearDiff:
		return nearDelta
	case diff < farDiff:
		return farDelta
	default:
		return minDelta
	}
}
