package engine

// TurnFor maps a 1-based overall pick number onto (round, participant index)
// under snake order: odd rounds visit 0..n-1, even rounds n-1..0. Total and
// invertible for all pick numbers >= 1.
func TurnFor(pickNumber, n int) (round, participant int) {
	round = (pickNumber-1)/n + 1
	pos := (pickNumber - 1) % n
	if round%2 == 0 {
		return round, n - 1 - pos
	}
	return round, pos
}

// PickNumberFor is the inverse of TurnFor.
func PickNumberFor(round, participant, n int) int {
	pos := participant
	if round%2 == 0 {
		pos = n - 1 - participant
	}
	return (round-1)*n + pos + 1
}
