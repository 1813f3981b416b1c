package poker

import (
	"testing"

	"cardroom-server/pkg/deck"
)

// testDeck returns a deck with the named cards on top, in order, and the rest
// of the deck behind them
func testDeck(t *testing.T, cards string) *deck.Deck {
	t.Helper()

	top := deck.CardsFromString(cards)
	onTop := make(map[string]bool, len(top))
	for _, card := range top {
		key := deck.CardToString(card)
		if onTop[key] {
			t.Fatalf("duplicate card in test deck: %s", key)
		}

		onTop[key] = true
	}

	d := deck.New()
	rest := make([]*deck.Card, 0, 52-len(top))
	for _, card := range d.Cards {
		if !onTop[deck.CardToString(card)] {
			rest = append(rest, card)
		}
	}

	d.Cards = append(top, rest...)
	return d
}

// testHand builds a hand with a stacked deck
func testHand(t *testing.T, config Config, usernames []string, stacks []int, cards string) *Hand {
	t.Helper()

	h, err := newHand(config, usernames, stacks, testDeck(t, cards))
	if err != nil {
		t.Fatalf("could not create hand: %v", err)
	}

	return h
}

func chipTotal(s *State) int {
	total := s.Pot
	for _, seat := range s.Seats {
		total += seat.Stack + seat.CurrentBet
	}

	return total
}
