package room

import (
	"cardroom-server/pkg/deck"
	"cardroom-server/pkg/directory"
	"cardroom-server/pkg/poker"
)

// Phase is the room lifecycle phase
type Phase string

// phase constants
const (
	PhasePending  Phase = "pending"
	PhaseActive   Phase = "active"
	PhaseFinished Phase = "finished"
)

// message type constants for the inbound wire format
const (
	MessageTypeAction   = "action"
	MessageTypeJoinGame = "join-game"
)

// ClientMessage is a message from a connected client
type ClientMessage struct {
	Type     string        `json:"type"`
	Action   *poker.Action `json:"action,omitempty"`
	Username string        `json:"username,omitempty"`
}

// update type constants for the lastUpdates feed
const (
	UpdateTypeGameStarted  = "game-started"
	UpdateTypeAction       = "action"
	UpdateTypePlayerJoined = "player-joined"
	UpdateTypePlayerLeft   = "player-left"
	UpdateTypeGameEnded    = "game-ended"
	UpdateTypeEngineLog    = "engine-log"
)

// end-of-hand reasons
const (
	ReasonShowdown = "showdown"
	ReasonFold     = "fold"
	ReasonSystem   = "system"
)

// UpdateMessage is a single entry in the lastUpdates feed. Exactly the fields
// for its Type are set. Entries are delivered at most once; they are cleared
// after each broadcast and never replayed.
type UpdateMessage struct {
	Type    string                 `json:"type"`
	Action  *poker.Action          `json:"action,omitempty"`
	Player  *directory.PlayerInfo  `json:"player,omitempty"`
	Players []directory.PlayerInfo `json:"players,omitempty"`
	Payouts map[string]int         `json:"payouts,omitempty"`
	Reason  string                 `json:"reason,omitempty"`
	Message string                 `json:"message,omitempty"`
}

// StateMessage is the full post-mutation snapshot sent to a single client.
// Hand carries the recipient's own hole cards; nobody ever receives another
// player's cards.
type StateMessage struct {
	GameState   *poker.State              `json:"gameState"`
	Hand        []*deck.Card              `json:"hand"`
	InGame      []directory.PlayerInfo    `json:"inGamePlayers"`
	Spectators  []directory.SpectatorInfo `json:"spectatorPlayers"`
	Username    string                    `json:"username,omitempty"`
	Config      poker.Config              `json:"config"`
	State       phaseState                `json:"state"`
	RoundCount  int                       `json:"roundCount"`
	Stacks      map[string]int            `json:"stacks"`
	ClientID    string                    `json:"clientId"`
	LastUpdates []UpdateMessage           `json:"lastUpdates"`
}

type phaseState struct {
	GamePhase Phase `json:"gamePhase"`
}

// ErrorMessage is an error acknowledgement sent to a single client
type ErrorMessage struct {
	Error string `json:"error"`
}
