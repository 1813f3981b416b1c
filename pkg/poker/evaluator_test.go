package poker

import (
	"testing"

	"cardroom-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func hole(t *testing.T, cards string) [2]*deck.Card {
	t.Helper()

	parsed := deck.CardsFromString(cards)
	if len(parsed) != 2 {
		t.Fatalf("expected two cards, got %d", len(parsed))
	}

	return [2]*deck.Card{parsed[0], parsed[1]}
}

func TestBestSeven(t *testing.T) {
	a := assert.New(t)

	community := deck.CardsFromString("2c,7h,9s,3d,6h")

	aces := bestSeven(hole(t, "14s,14d"), community)
	kings := bestSeven(hole(t, "13s,13d"), community)
	aceHigh := bestSeven(hole(t, "14h,10c"), community)

	a.Greater(aces, kings)
	a.Greater(kings, aceHigh)
}

func TestBestSeven_flushBeatsStraight(t *testing.T) {
	a := assert.New(t)

	community := deck.CardsFromString("2h,7h,9h,10s,11d")

	flush := bestSeven(hole(t, "4h,8h"), community)
	straight := bestSeven(hole(t, "12c,13c"), community)

	a.Greater(flush, straight)
}

func TestBestSeven_acePlaysHighAndLow(t *testing.T) {
	a := assert.New(t)

	// wheel: A-2-3-4-5
	wheel := bestSeven(hole(t, "14s,2d"), deck.CardsFromString("3c,4h,5s,9d,13h"))
	pair := bestSeven(hole(t, "9s,6d"), deck.CardsFromString("3c,4h,5s,9d,13h"))

	a.Greater(wheel, pair)
}

func TestDescribeSeven(t *testing.T) {
	a := assert.New(t)

	desc := describeSeven(hole(t, "14s,14d"), deck.CardsFromString("2c,7h,9s,3d,6h"))
	a.NotEmpty(desc)
	a.NotEqual("unknown hand", desc)
}
