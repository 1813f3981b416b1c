package poker

import (
	"cardroom-server/pkg/deck"

	evaluator "github.com/paulhankin/poker"
)

// toEvalCard converts a deck card to the evaluator's representation.
// The evaluator ranks aces as 1; our deck ranks them as 14.
func toEvalCard(c *deck.Card) evaluator.Card {
	var s evaluator.Suit
	switch c.Suit {
	case deck.Clubs:
		s = evaluator.Club
	case deck.Diamonds:
		s = evaluator.Diamond
	case deck.Hearts:
		s = evaluator.Heart
	case deck.Spades:
		s = evaluator.Spade
	}

	rank := c.Rank
	if rank == deck.Ace {
		rank = 1
	}

	card, err := evaluator.MakeCard(s, evaluator.Rank(rank))
	if err != nil {
		panic(err)
	}

	return card
}

// bestSeven scores the best five-card hand from two hole cards plus the community.
// Higher scores beat lower scores.
func bestSeven(hole [2]*deck.Card, community []*deck.Card) int16 {
	var cards [7]evaluator.Card
	cards[0] = toEvalCard(hole[0])
	cards[1] = toEvalCard(hole[1])
	for i, c := range community {
		cards[2+i] = toEvalCard(c)
	}

	return evaluator.Eval7(&cards)
}

// describeSeven returns a human-readable description of the best hand
func describeSeven(hole [2]*deck.Card, community []*deck.Card) string {
	cards := make([]evaluator.Card, 0, 7)
	cards = append(cards, toEvalCard(hole[0]), toEvalCard(hole[1]))
	for _, c := range community {
		cards = append(cards, toEvalCard(c))
	}

	desc, err := evaluator.Describe(cards)
	if err != nil {
		return "unknown hand"
	}

	return desc
}
