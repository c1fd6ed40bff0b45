package aggregator

// Threshold returns the number of signatures a set of n relayers needs
// for quorum. It rounds down, so three relayers need a single signature
// and an empty set needs none.
func Threshold(n int) int {
	return n * 66 / 100
}

// hasQuorum reports whether signed signatures satisfy the threshold of n relayers
func hasQuorum(signed, n int) bool {
	return signed >= Threshold(n)
}

// crossesQuorum reports whether moving from prev to signed signatures is
// the first step that holds quorum. With a zero threshold the first
// accepted signature is the crossing.
func crossesQuorum(prev, signed, n int) bool {
	if !hasQuorum(signed, n) {
		return false
	}

	return prev == 0 || !hasQuorum(prev, n)
}
