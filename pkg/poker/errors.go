package poker

import (
	"errors"
	"fmt"
)

// RuleError is an error for an action that violates the rules of the hand.
// The hand state is guaranteed to be unchanged when a RuleError is returned.
type RuleError string

func (e RuleError) Error() string {
	return string(e)
}

func newRuleError(format string, a ...interface{}) RuleError {
	return RuleError(fmt.Sprintf(format, a...))
}

// IsRuleError returns true if the error is a rejected action rather than an engine fault
func IsRuleError(err error) bool {
	var re RuleError
	return errors.As(err, &re)
}

// ErrHandDone is an error when an action is attempted on a finished hand
var ErrHandDone = RuleError("the hand is over")

// ErrConservation is an error when the chip total across stacks, bets, and pot changed.
// It indicates a defect in the engine and is fatal to the hand.
var ErrConservation = errors.New("chip conservation violated")
