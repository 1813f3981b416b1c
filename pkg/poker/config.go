package poker

import (
	"errors"
	"fmt"
)

// Config are the per-room game parameters.
// Only DealerPosition changes after room creation (it rotates between hands).
type Config struct {
	DefaultStack   int  `json:"defaultStack"`
	SmallBlind     int  `json:"smallBlind"`
	BigBlind       int  `json:"bigBlind"`
	DealerPosition int  `json:"dealerPosition"`
	MaxHands       int  `json:"maxRounds"`
	Timeout        int  `json:"timeout"` // per-turn timeout in milliseconds
	MinPlayers     int  `json:"minPlayers"`
	MaxPlayers     int  `json:"maxPlayers"`
	AutoStart      bool `json:"autoStart"`
}

// DefaultConfig returns the house-standard configuration
func DefaultConfig() Config {
	return Config{
		DefaultStack:   1000,
		SmallBlind:     50,
		BigBlind:       100,
		DealerPosition: 0,
		MaxHands:       100,
		Timeout:        30000,
		MinPlayers:     2,
		MaxPlayers:     8,
		AutoStart:      true,
	}
}

// Validate ensures the configuration can run a game
func (c Config) Validate() error {
	if c.SmallBlind <= 0 {
		return errors.New("small blind must be greater than zero")
	}

	if c.BigBlind <= c.SmallBlind {
		return errors.New("big blind must be greater than the small blind")
	}

	if c.DefaultStack < c.BigBlind {
		return fmt.Errorf("default stack must be at least the big blind (%d)", c.BigBlind)
	}

	if c.MinPlayers < 2 {
		return errors.New("there must be at least two players")
	}

	if c.MaxPlayers < c.MinPlayers {
		return errors.New("max players must not be less than min players")
	}

	if c.MaxHands <= 0 {
		return errors.New("max hands must be greater than zero")
	}

	if c.Timeout <= 0 {
		return errors.New("timeout must be greater than zero")
	}

	return nil
}
