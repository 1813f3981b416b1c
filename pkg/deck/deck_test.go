package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	a := assert.New(t)

	d := New()
	a.Equal(52, len(d.Cards))
	a.Equal(&Card{Rank: 2, Suit: Clubs}, d.Cards[0])
	a.Equal(&Card{Rank: Ace, Suit: Spades}, d.Cards[51])
}

func TestDeck_Shuffle(t *testing.T) {
	a := assert.New(t)

	d := New()
	unshuffled := d.HashCode()

	d.Shuffle()
	a.NotEqual(unshuffled, d.HashCode())
	a.Equal(52, len(d.Cards))
}

func TestDeck_Shuffle_deterministic(t *testing.T) {
	a := assert.New(t)

	d1 := New()
	d1.SetSeed(42)
	d1.Shuffle()

	d2 := New()
	d2.SetSeed(42)
	d2.Shuffle()

	a.Equal(d1.HashCode(), d2.HashCode())
}

func TestDeck_Draw(t *testing.T) {
	a := assert.New(t)

	d := New()
	first := d.Cards[0]

	card, err := d.Draw()
	a.NoError(err)
	a.Equal(first, card)
	a.Equal(51, d.CardsLeft())
	a.True(d.CanDraw(51))
	a.False(d.CanDraw(52))

	for d.CardsLeft() > 0 {
		_, err := d.Draw()
		a.NoError(err)
	}

	card, err = d.Draw()
	a.Equal(ErrEndOfDeck, err)
	a.Nil(card)
}
