package poker

import (
	"errors"
	"fmt"

	"cardroom-server/pkg/deck"
)

// Seat is a player's slot in the turn order along with their per-hand transient state
type Seat struct {
	Username    string `json:"username"`
	Stack       int    `json:"stack"`
	CurrentBet  int    `json:"currentBet"`
	Contributed int    `json:"contributed"`
	Folded      bool   `json:"folded"`
	AllIn       bool   `json:"allIn"`

	// acted is reset at the start of a betting round and whenever the target bet changes
	acted bool
}

func (s *Seat) canAct() bool {
	return !s.Folded && !s.AllIn
}

// State is the shared, hole-card-free state of a single hand
type State struct {
	Seats      []*Seat      `json:"seats"`
	Community  []*deck.Card `json:"community"`
	Round      Round        `json:"round"`
	Pot        int          `json:"pot"`
	TargetBet  int          `json:"targetBet"`
	WhoseTurn  int          `json:"whoseTurn"` // seat index; -1 once the hand is done
	Done       bool         `json:"done"`
	Dealer     int          `json:"dealerPosition"`
	SmallBlind int          `json:"smallBlind"` // seat index
	BigBlind   int          `json:"bigBlind"`   // seat index

	// blind is the big blind amount, which doubles as the minimum raise increment
	blind     int
	chipTotal int
	deck      *deck.Deck
}

// Hand pairs the shared state with the private hole cards
type Hand struct {
	State     *State
	HoleCards map[string][2]*deck.Card
}

// NewHand posts the blinds, deals two hole cards to each seat, and waits on the
// first player after the big blind. A stack below a blind posts all-in.
func NewHand(config Config, usernames []string, stacks []int) (*Hand, error) {
	d := deck.New()
	d.Shuffle()

	return newHand(config, usernames, stacks, d)
}

func newHand(config Config, usernames []string, stacks []int, d *deck.Deck) (*Hand, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if len(usernames) < 2 {
		return nil, errors.New("there must be at least two players")
	}

	if len(usernames) != len(stacks) {
		return nil, errors.New("usernames and stacks must be the same length")
	}

	n := len(usernames)
	seats := make([]*Seat, n)
	chipTotal := 0
	for i, username := range usernames {
		if stacks[i] <= 0 {
			return nil, fmt.Errorf("cannot seat %s without chips", username)
		}

		seats[i] = &Seat{Username: username, Stack: stacks[i]}
		chipTotal += stacks[i]
	}

	dealer := config.DealerPosition % n
	s := &State{
		Seats:      seats,
		Community:  make([]*deck.Card, 0, 5),
		Round:      RoundPreFlop,
		WhoseTurn:  -1,
		Dealer:     dealer,
		SmallBlind: (dealer + 1) % n,
		BigBlind:   (dealer + 2) % n,
		blind:      config.BigBlind,
		chipTotal:  chipTotal,
		deck:       d,
	}

	s.commit(seats[s.SmallBlind], config.SmallBlind)
	s.commit(seats[s.BigBlind], config.BigBlind)
	s.TargetBet = config.BigBlind

	holeCards := make(map[string][2]*deck.Card, n)
	for i := 0; i < 2; i++ {
		for _, seat := range seats {
			card, err := d.Draw()
			if err != nil {
				return nil, err
			}

			hole := holeCards[seat.Username]
			hole[i] = card
			holeCards[seat.Username] = hole
		}
	}

	h := &Hand{State: s, HoleCards: holeCards}

	s.WhoseTurn = s.nextEligible(s.BigBlind + 1)
	if s.WhoseTurn < 0 {
		// the blinds put everyone all-in; run the board out
		if _, err := s.closeBettingRound(); err != nil {
			return nil, err
		}
	}

	if err := s.checkConservation(); err != nil {
		return nil, err
	}

	return h, nil
}

// Step applies a single action for the named player.
// A RuleError leaves the state untouched; any other error is fatal to the hand.
func (h *Hand) Step(username string, act Action) ([]string, error) {
	s := h.State
	if s.Done {
		return nil, ErrHandDone
	}

	seat := s.Seats[s.WhoseTurn]
	if seat.Username != username {
		return nil, newRuleError("it is not %s's turn", username)
	}

	if err := act.Validate(); err != nil {
		return nil, err
	}

	var events []string
	switch act.Type {
	case ActionFold:
		seat.Folded = true
		events = append(events, fmt.Sprintf("%s folds", seat.Username))
	case ActionCall:
		if s.TargetBet <= seat.CurrentBet {
			events = append(events, fmt.Sprintf("%s checks", seat.Username))
			break
		}

		paid := s.commit(seat, s.TargetBet)
		if seat.AllIn {
			events = append(events, fmt.Sprintf("%s calls %d and is all in", seat.Username, paid))
		} else {
			events = append(events, fmt.Sprintf("%s calls %d", seat.Username, paid))
		}
	case ActionRaise:
		if act.Amount <= s.TargetBet {
			return nil, newRuleError("raise to %d must exceed the current bet of %d", act.Amount, s.TargetBet)
		}

		amount := act.Amount
		if maxBet := seat.CurrentBet + seat.Stack; amount >= maxBet {
			// all-in sizing is clamped, never rejected
			amount = maxBet
		} else if amount-s.TargetBet < s.blind {
			return nil, newRuleError("raise to %d is below the minimum raise of %d", act.Amount, s.TargetBet+s.blind)
		}

		s.commit(seat, amount)
		if amount > s.TargetBet {
			s.TargetBet = amount
			for _, other := range s.Seats {
				if other != seat {
					other.acted = false
				}
			}

			events = append(events, fmt.Sprintf("%s raises to %d", seat.Username, amount))
		} else {
			// the all-in fell short of the target; it stands as an undercall
			events = append(events, fmt.Sprintf("%s is all in for %d", seat.Username, seat.CurrentBet))
		}
	}

	seat.acted = true

	if s.contenderCount() == 1 {
		// single survivor: the hand ends without further cards or a showdown
		s.sweepBets()
		s.Done = true
		s.WhoseTurn = -1
	} else if s.bettingRoundComplete() {
		roundEvents, err := s.closeBettingRound()
		if err != nil {
			return nil, err
		}

		events = append(events, roundEvents...)
	} else {
		s.WhoseTurn = s.nextEligible(s.WhoseTurn + 1)
		if s.WhoseTurn < 0 {
			return nil, errors.New("no seat can act in an unfinished betting round")
		}
	}

	if err := s.checkConservation(); err != nil {
		return nil, err
	}

	return events, nil
}

// Clone returns a snapshot of the shared state that is safe to hand to another
// goroutine. The deck does not travel with the clone.
func (s *State) Clone() *State {
	clone := *s
	clone.Seats = make([]*Seat, len(s.Seats))
	for i, seat := range s.Seats {
		copied := *seat
		clone.Seats[i] = &copied
	}

	clone.Community = append([]*deck.Card(nil), s.Community...)
	clone.deck = nil
	return &clone
}

// commit moves a seat's bet for the round up to amount, clamping to all-in,
// and returns the chips actually added
func (s *State) commit(seat *Seat, amount int) int {
	add := amount - seat.CurrentBet
	if add >= seat.Stack {
		add = seat.Stack
		seat.AllIn = true
	}

	seat.Stack -= add
	seat.CurrentBet += add
	seat.Contributed += add
	return add
}

// nextEligible returns the index of the first seat at or after from that can
// still act, or -1 if no seat can
func (s *State) nextEligible(from int) int {
	n := len(s.Seats)
	for i := 0; i < n; i++ {
		index := (from + i) % n
		if s.Seats[index].canAct() {
			return index
		}
	}

	return -1
}

func (s *State) contenderCount() int {
	count := 0
	for _, seat := range s.Seats {
		if !seat.Folded {
			count++
		}
	}

	return count
}

// bettingRoundComplete returns true once every seat still able to act has both
// acted since the last raise and matched the target bet
func (s *State) bettingRoundComplete() bool {
	for _, seat := range s.Seats {
		if !seat.canAct() {
			continue
		}

		if !seat.acted || seat.CurrentBet != s.TargetBet {
			return false
		}
	}

	return true
}

// sweepBets moves the round's bets into the pot and resets the round state
func (s *State) sweepBets() {
	for _, seat := range s.Seats {
		s.Pot += seat.CurrentBet
		seat.CurrentBet = 0
		seat.acted = false
	}

	s.TargetBet = 0
}

// closeBettingRound sweeps the bets and advances the street, dealing community
// cards as needed. If no seat can act (everyone is all-in), it keeps dealing
// until the showdown.
func (s *State) closeBettingRound() ([]string, error) {
	var events []string
	for {
		s.sweepBets()

		if s.Round == RoundRiver {
			s.Round = RoundShowdown
			s.Done = true
			s.WhoseTurn = -1
			events = append(events, "betting is complete, heading to showdown")
			return events, nil
		}

		s.Round = s.Round.next()

		dealt := make([]*deck.Card, 0, 3)
		for i := 0; i < s.Round.communityCardCount(); i++ {
			card, err := s.deck.Draw()
			if err != nil {
				return nil, err
			}

			s.Community = append(s.Community, card)
			dealt = append(dealt, card)
		}

		events = append(events, fmt.Sprintf("dealing the %s: %s", s.Round, deck.CardsToString(dealt)))

		if s.WhoseTurn = s.nextEligible(s.Dealer + 1); s.WhoseTurn >= 0 {
			return events, nil
		}
	}
}

// checkConservation verifies that no chips were created or destroyed
func (s *State) checkConservation() error {
	total := s.Pot
	for _, seat := range s.Seats {
		total += seat.Stack + seat.CurrentBet
	}

	if total != s.chipTotal {
		return fmt.Errorf("%w: have %d, want %d", ErrConservation, total, s.chipTotal)
	}

	return nil
}
