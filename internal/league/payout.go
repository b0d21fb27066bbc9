package league

import "sort"

// PayoutTable maps a finishing position to its prize. Tied golfers share a position.
type PayoutTable map[int]float64

// Lookup returns the prize for a position, or 0 when the position does not pay
func (p PayoutTable) Lookup(position int) float64 {
	if p == nil {
		return 0
	}
	return p[position]
}

// Positions returns the paying positions in ascending order
func (p PayoutTable) Positions() []int {
	positions := make([]int, 0, len(p))
	for pos := range p {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return positions
}

// Winner returns the prize for first place
func (p PayoutTable) Winner() float64 {
	return p.Lookup(1)
}

// Total returns the sum of all listed prizes
func (p PayoutTable) Total() float64 {
	var total float64
	for _, prize := range p {
		total += prize
	}
	return total
}

// PayoutFromObservations infers a payout table from the prizes a results article
// already lists. Only positive prizes at real positions are used, and the first golfer
// seen at a position sets its prize.
func PayoutFromObservations(players []PlayerObservation) PayoutTable {
	payout := make(PayoutTable)
	for _, p := range players {
		if p.Prize <= 0 || !p.Placed() {
			continue
		}
		if _, exists := payout[p.Position]; !exists {
			payout[p.Position] = p.Prize
		}
	}
	return payout
}
