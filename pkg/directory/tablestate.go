package directory

import (
	"cardroom-server/pkg/poker"
)

// Version is the table state schema version. Bump this when making breaking
// changes so consumers don't try to render an incompatible summary.
const Version = 1

// GameType is the only game this server deals
const GameType = "texas-hold-em"

// PlayerInfo is a seated player's public identity
type PlayerInfo struct {
	PlayerID string `json:"playerId"`
	Username string `json:"username"`
}

// SpectatorInfo is a spectator's connection identity
type SpectatorInfo struct {
	PlayerID string `json:"playerId"`
}

// TableState is the hole-card-free projection of a room published to the directory
type TableState struct {
	ID         string          `json:"id"`
	Spectators []SpectatorInfo `json:"spectatorPlayers"`
	InGame     []PlayerInfo    `json:"inGamePlayers"`
	Config     poker.Config    `json:"config"`
	GameState  *poker.State    `json:"gameState"`
	Stacks     map[string]int  `json:"stacks"`
	Round      int             `json:"round"`
	GameType   string          `json:"gameType"`
	Status     string          `json:"gameStatus"`
	Version    int             `json:"version"`
}

// Occupants returns the number of connected parties in the room
func (t TableState) Occupants() int {
	return len(t.Spectators) + len(t.InGame)
}

// Compatible returns true if the summary was produced with our schema version.
// Consumers must refuse to render incompatible summaries.
func (t TableState) Compatible() bool {
	return t.Version == Version
}
