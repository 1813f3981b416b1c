package poker

import (
	"testing"

	"cardroom-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func twoPlayerConfig() Config {
	config := DefaultConfig()
	// with two seats, the dealer posts the big blind
	config.DealerPosition = 1
	return config
}

func TestNewHand(t *testing.T) {
	a := assert.New(t)

	h := testHand(t, twoPlayerConfig(), []string{"alice", "bob"}, []int{1000, 1000},
		"2c,3c,4c,5c")
	s := h.State

	// alice is the small blind, bob the big blind
	a.Equal(0, s.SmallBlind)
	a.Equal(1, s.BigBlind)
	a.Equal(50, s.Seats[0].CurrentBet)
	a.Equal(100, s.Seats[1].CurrentBet)
	a.Equal(950, s.Seats[0].Stack)
	a.Equal(900, s.Seats[1].Stack)
	a.Equal(100, s.TargetBet)
	a.Equal(RoundPreFlop, s.Round)
	a.Equal(0, s.WhoseTurn)
	a.False(s.Done)

	// cards are dealt one at a time around the table
	a.Equal("2c,4c", holeString(h, "alice"))
	a.Equal("3c,5c", holeString(h, "bob"))

	a.Equal(2000, chipTotal(s))
}

func holeString(h *Hand, username string) string {
	hole := h.HoleCards[username]
	return deck.CardsToString([]*deck.Card{hole[0], hole[1]})
}

func TestNewHand_errors(t *testing.T) {
	a := assert.New(t)

	_, err := NewHand(DefaultConfig(), []string{"alice"}, []int{1000})
	a.EqualError(err, "there must be at least two players")

	_, err = NewHand(DefaultConfig(), []string{"alice", "bob"}, []int{1000})
	a.EqualError(err, "usernames and stacks must be the same length")

	_, err = NewHand(DefaultConfig(), []string{"alice", "bob"}, []int{1000, 0})
	a.EqualError(err, "cannot seat bob without chips")

	badConfig := DefaultConfig()
	badConfig.SmallBlind = 0
	_, err = NewHand(badConfig, []string{"alice", "bob"}, []int{1000, 1000})
	a.Error(err)
}

func TestNewHand_shortStackPostsAllIn(t *testing.T) {
	a := assert.New(t)

	h := testHand(t, twoPlayerConfig(), []string{"alice", "bob"}, []int{30, 1000}, "")
	s := h.State

	a.Equal(30, s.Seats[0].CurrentBet)
	a.True(s.Seats[0].AllIn)
	a.Equal(0, s.Seats[0].Stack)
	a.Equal(1030, chipTotal(s))

	// only bob can act
	a.Equal(1, s.WhoseTurn)
}

// two-player hand: a call then a check closes the pre-flop round
func TestHand_Step_callAndCheck(t *testing.T) {
	a := assert.New(t)

	h := testHand(t, twoPlayerConfig(), []string{"alice", "bob"}, []int{1000, 1000}, "")
	s := h.State

	events, err := h.Step("alice", Action{Type: ActionCall})
	a.NoError(err)
	a.Equal([]string{"alice calls 50"}, events)
	a.Equal(RoundPreFlop, s.Round)
	a.Equal(1, s.WhoseTurn)

	events, err = h.Step("bob", Action{Type: ActionCall})
	a.NoError(err)
	a.Equal("bob checks", events[0])
	a.Contains(events[1], "dealing the flop")

	a.Equal(RoundFlop, s.Round)
	a.Equal(3, len(s.Community))
	a.Equal(200, s.Pot)
	a.Equal(0, s.TargetBet)
	a.Equal(0, s.WhoseTurn)
	a.Equal(2000, chipTotal(s))
}

func TestHand_Step_outOfTurn(t *testing.T) {
	a := assert.New(t)

	h := testHand(t, twoPlayerConfig(), []string{"alice", "bob"}, []int{1000, 1000}, "")

	_, err := h.Step("bob", Action{Type: ActionCall})
	a.EqualError(err, "it is not bob's turn")
	a.True(IsRuleError(err))

	// state untouched
	a.Equal(0, h.State.WhoseTurn)
	a.Equal(900, h.State.Seats[1].Stack)
}

func TestHand_Step_minRaise(t *testing.T) {
	a := assert.New(t)

	h := testHand(t, twoPlayerConfig(), []string{"alice", "bob"}, []int{1000, 1000}, "")

	_, err := h.Step("alice", Action{Type: ActionRaise, Amount: 150})
	a.EqualError(err, "raise to 150 is below the minimum raise of 200")
	a.True(IsRuleError(err))
	a.Equal(50, h.State.Seats[0].CurrentBet)

	_, err = h.Step("alice", Action{Type: ActionRaise, Amount: 100})
	a.EqualError(err, "raise to 100 must exceed the current bet of 100")

	events, err := h.Step("alice", Action{Type: ActionRaise, Amount: 200})
	a.NoError(err)
	a.Equal([]string{"alice raises to 200"}, events)
	a.Equal(200, h.State.TargetBet)
	a.Equal(800, h.State.Seats[0].Stack)

	// the raise re-opens the action for bob
	a.Equal(1, h.State.WhoseTurn)
}

func TestHand_Step_allInClamp(t *testing.T) {
	a := assert.New(t)

	h := testHand(t, twoPlayerConfig(), []string{"alice", "bob"}, []int{1000, 1000}, "")
	s := h.State

	// a raise beyond the stack becomes exactly all-in
	events, err := h.Step("alice", Action{Type: ActionRaise, Amount: 5000})
	a.NoError(err)
	a.Equal([]string{"alice raises to 1000"}, events)
	a.Equal(1000, s.TargetBet)
	a.Equal(0, s.Seats[0].Stack)
	a.True(s.Seats[0].AllIn)
	a.Equal(2000, chipTotal(s))
}

func TestHand_Step_callClampedToAllIn(t *testing.T) {
	a := assert.New(t)

	h := testHand(t, twoPlayerConfig(), []string{"alice", "bob"}, []int{400, 400}, "")
	s := h.State

	_, err := h.Step("alice", Action{Type: ActionRaise, Amount: 1000})
	a.NoError(err)
	a.Equal(400, s.TargetBet)

	events, err := h.Step("bob", Action{Type: ActionCall})
	a.NoError(err)
	a.Equal("bob calls 300 and is all in", events[0])
	a.True(s.Seats[1].AllIn)
	a.Equal(0, s.Seats[1].Stack)

	// no one is left to act; the board runs out to showdown
	a.True(s.Done)
	a.Equal(RoundShowdown, s.Round)
	a.Equal(5, len(s.Community))
	a.Equal(-1, s.WhoseTurn)
	a.Equal(800, chipTotal(s))
}

func TestHand_Step_singleSurvivor(t *testing.T) {
	a := assert.New(t)

	h := testHand(t, twoPlayerConfig(), []string{"alice", "bob"}, []int{1000, 1000}, "")
	s := h.State

	events, err := h.Step("alice", Action{Type: ActionFold})
	a.NoError(err)
	a.Equal([]string{"alice folds"}, events)

	a.True(s.Done)
	a.Equal(-1, s.WhoseTurn)
	a.Equal(150, s.Pot)
	a.NotEqual(RoundShowdown, s.Round)
	a.Equal(0, len(s.Community))

	_, err = h.Step("bob", Action{Type: ActionCall})
	a.Equal(ErrHandDone, err)
	a.True(IsRuleError(err))
}

func TestHand_Step_turnValidity(t *testing.T) {
	a := assert.New(t)

	config := DefaultConfig()
	h := testHand(t, config, []string{"alice", "bob", "carol", "dave"}, []int{1000, 1000, 1000, 1000}, "")
	s := h.State

	// dealer 0: bob is the small blind, carol the big blind, dave first to act
	a.Equal(3, s.WhoseTurn)

	actions := []struct {
		username string
		action   Action
	}{
		{"dave", Action{Type: ActionCall}},
		{"alice", Action{Type: ActionRaise, Amount: 300}},
		{"bob", Action{Type: ActionFold}},
		{"carol", Action{Type: ActionCall}},
		{"dave", Action{Type: ActionCall}},
	}

	for _, step := range actions {
		_, err := h.Step(step.username, step.action)
		a.NoError(err)

		if s.Done {
			break
		}

		turn := s.Seats[s.WhoseTurn]
		a.True(turn.canAct(), "whoseTurn must be able to act after %s %s", step.username, step.action)
	}

	a.Equal(RoundFlop, s.Round)
	a.Equal(950, s.Pot)
	a.Equal(4000, chipTotal(s))
}

func TestHand_Step_foldedPlayerSkipped(t *testing.T) {
	a := assert.New(t)

	h := testHand(t, DefaultConfig(), []string{"alice", "bob", "carol"}, []int{1000, 1000, 1000}, "")
	s := h.State

	// dealer 0: bob small blind, carol big blind, alice first
	a.Equal(0, s.WhoseTurn)

	_, err := h.Step("alice", Action{Type: ActionFold})
	a.NoError(err)
	a.Equal(1, s.WhoseTurn)

	_, err = h.Step("bob", Action{Type: ActionCall})
	a.NoError(err)

	_, err = h.Step("carol", Action{Type: ActionCall})
	a.NoError(err)

	// alice's blind-free fold keeps her chips out, but the blinds are in the pot
	a.Equal(RoundFlop, s.Round)
	a.Equal(200, s.Pot)
	a.Equal(1, s.WhoseTurn)

	_, err = h.Step("alice", Action{Type: ActionCall})
	a.EqualError(err, "it is not alice's turn")
}

func TestHand_Step_undercallAllIn(t *testing.T) {
	a := assert.New(t)

	h := testHand(t, twoPlayerConfig(), []string{"alice", "bob"}, []int{80, 1000}, "")
	s := h.State

	// alice cannot even match the big blind; her raise stands as an all-in undercall
	events, err := h.Step("alice", Action{Type: ActionRaise, Amount: 500})
	a.NoError(err)
	a.Equal([]string{"alice is all in for 80"}, events)
	a.Equal(100, s.TargetBet)
	a.True(s.Seats[0].AllIn)

	// bob still has the option to act behind the undercall
	a.False(s.Done)
	a.Equal(1, s.WhoseTurn)

	events, err = h.Step("bob", Action{Type: ActionCall})
	a.NoError(err)
	a.Equal("bob checks", events[0])
	a.Equal(RoundFlop, s.Round)
	a.Equal(180, s.Pot)

	// bob is the only player with chips in play; he checks the board down
	for _, round := range []Round{RoundTurn, RoundRiver, RoundShowdown} {
		_, err = h.Step("bob", Action{Type: ActionCall})
		a.NoError(err)
		a.Equal(round, s.Round)
	}

	a.True(s.Done)
	a.Equal(1080, chipTotal(s))
}
