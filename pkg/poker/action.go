package poker

import "fmt"

// ActionType identifies a player action
type ActionType string

// action type constants
const (
	ActionFold  ActionType = "fold"
	ActionCall  ActionType = "call"
	ActionRaise ActionType = "raise"
)

// Action is a single player decision.
// For a raise, Amount is the new total bet for the round, not the increment.
type Action struct {
	Type   ActionType `json:"type"`
	Amount int        `json:"amount,omitempty"`
}

// Validate ensures the action is well-formed
func (a Action) Validate() error {
	switch a.Type {
	case ActionFold, ActionCall:
		return nil
	case ActionRaise:
		if a.Amount <= 0 {
			return newRuleError("raise amount must be greater than zero")
		}

		return nil
	}

	return newRuleError("unknown action: %s", a.Type)
}

func (a Action) String() string {
	if a.Type == ActionRaise {
		return fmt.Sprintf("raise to %d", a.Amount)
	}

	return string(a.Type)
}
