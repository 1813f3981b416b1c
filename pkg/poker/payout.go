package poker

import (
	"errors"
	"fmt"
	"sort"
)

// Payout settles a finished hand and returns the chips won per username.
// Each side pot is contested only by the players who contributed to it. The
// sum of the payouts always equals the pot; a mismatch is an engine fault.
func (h *Hand) Payout() (map[string]int, []string, error) {
	s := h.State
	if !s.Done {
		return nil, nil, errors.New("the hand is not over")
	}

	contenders := make([]int, 0, len(s.Seats))
	for i, seat := range s.Seats {
		if !seat.Folded {
			contenders = append(contenders, i)
		}
	}

	if len(contenders) == 0 {
		return nil, nil, errors.New("no contenders remain")
	}

	payouts := make(map[string]int)
	var events []string

	if len(contenders) == 1 {
		// everyone else folded; no hands are revealed or evaluated
		seat := s.Seats[contenders[0]]
		payouts[seat.Username] = s.Pot
		events = append(events, fmt.Sprintf("%s wins %d (everyone else folded)", seat.Username, s.Pot))
		return payouts, events, nil
	}

	scores := make(map[int]int16, len(contenders))
	for _, i := range contenders {
		seat := s.Seats[i]
		hole, ok := h.HoleCards[seat.Username]
		if !ok {
			return nil, nil, fmt.Errorf("no hole cards for %s", seat.Username)
		}

		scores[i] = bestSeven(hole, s.Community)
		payouts[seat.Username] = 0
		events = append(events, fmt.Sprintf("%s shows %s %s (%s)",
			seat.Username, hole[0], hole[1], describeSeven(hole, s.Community)))
	}

	for _, p := range h.pots(contenders) {
		winners := bestOf(p.eligible, scores)
		// pay left of the dealer first so odd chips land on the earliest seat
		sort.Slice(winners, func(a, b int) bool {
			return s.seatOrder(winners[a]) < s.seatOrder(winners[b])
		})

		share := p.amount / len(winners)
		odd := p.amount % len(winners)
		for wi, index := range winners {
			won := share
			if wi < odd {
				won++
			}

			seat := s.Seats[index]
			payouts[seat.Username] += won
			events = append(events, fmt.Sprintf("%s wins %d with a %s",
				seat.Username, won, describeSeven(h.HoleCards[seat.Username], s.Community)))
		}
	}

	total := 0
	for _, won := range payouts {
		total += won
	}

	if total != s.Pot {
		return nil, nil, fmt.Errorf("%w: paid %d from a pot of %d", ErrConservation, total, s.Pot)
	}

	return payouts, events, nil
}

type sidePot struct {
	amount   int
	eligible []int
}

// pots slices the pot at each distinct all-in contribution level. Chips folded
// in above the top contender level stay in the final pot.
func (h *Hand) pots(contenders []int) []sidePot {
	s := h.State

	levels := make([]int, 0, len(contenders))
	seen := make(map[int]bool)
	maxContributed := 0
	for _, seat := range s.Seats {
		if seat.Contributed > maxContributed {
			maxContributed = seat.Contributed
		}
	}
	for _, i := range contenders {
		c := s.Seats[i].Contributed
		if !seen[c] {
			seen[c] = true
			levels = append(levels, c)
		}
	}
	sort.Ints(levels)

	pots := make([]sidePot, 0, len(levels))
	prev := 0
	for li, level := range levels {
		capAmount := level
		if li == len(levels)-1 {
			capAmount = maxContributed
		}

		amount := 0
		for _, seat := range s.Seats {
			c := seat.Contributed
			if c > capAmount {
				c = capAmount
			}
			if c > prev {
				amount += c - prev
			}
		}

		eligible := make([]int, 0, len(contenders))
		for _, i := range contenders {
			if s.Seats[i].Contributed >= level {
				eligible = append(eligible, i)
			}
		}

		prev = capAmount
		if amount == 0 {
			continue
		}

		pots = append(pots, sidePot{amount: amount, eligible: eligible})
	}

	return pots
}

// bestOf returns the seat indices holding the best score among eligible seats
func bestOf(eligible []int, scores map[int]int16) []int {
	var winners []int
	var best int16
	for _, i := range eligible {
		score := scores[i]
		if len(winners) == 0 || score > best {
			winners = []int{i}
			best = score
		} else if score == best {
			winners = append(winners, i)
		}
	}

	return winners
}

// seatOrder ranks a seat by its distance left of the dealer
func (s *State) seatOrder(index int) int {
	n := len(s.Seats)
	return ((index - s.Dealer - 1) + n) % n
}
