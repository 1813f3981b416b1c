package poker

// Round is a betting street
type Round string

// round constants
const (
	RoundPreFlop  Round = "pre-flop"
	RoundFlop     Round = "flop"
	RoundTurn     Round = "turn"
	RoundRiver    Round = "river"
	RoundShowdown Round = "showdown"
)

func (r Round) next() Round {
	switch r {
	case RoundPreFlop:
		return RoundFlop
	case RoundFlop:
		return RoundTurn
	case RoundTurn:
		return RoundRiver
	case RoundRiver:
		return RoundShowdown
	}

	return RoundShowdown
}

// communityCardCount is how many community cards are dealt entering the round
func (r Round) communityCardCount() int {
	switch r {
	case RoundFlop:
		return 3
	case RoundTurn, RoundRiver:
		return 1
	}

	return 0
}
