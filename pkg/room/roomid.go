package room

import (
	"fmt"
	"strconv"
	"strings"

	"cardroom-server/pkg/poker"
)

// ParseRoomID derives the room's game configuration from its id. Everything
// after the first "-" is treated as a list of key=value overrides, e.g.
// "holdem-bigBlind=200-timeout=15000". Unknown keys and tokens without "=" are
// ignored so arbitrary room names still work; a recognized key with a value
// that won't parse is an error and the room must not be created.
func ParseRoomID(id string) (poker.Config, error) {
	config := poker.DefaultConfig()

	parts := strings.Split(id, "-")
	for _, part := range parts[1:] {
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}

		switch key {
		case "defaultStack":
			if err := parseInt(key, value, &config.DefaultStack); err != nil {
				return config, err
			}
		case "smallBlind":
			if err := parseInt(key, value, &config.SmallBlind); err != nil {
				return config, err
			}
		case "bigBlind":
			if err := parseInt(key, value, &config.BigBlind); err != nil {
				return config, err
			}
		case "dealerPosition":
			if err := parseInt(key, value, &config.DealerPosition); err != nil {
				return config, err
			}
		case "maxRounds":
			if err := parseInt(key, value, &config.MaxHands); err != nil {
				return config, err
			}
		case "timeout":
			if err := parseInt(key, value, &config.Timeout); err != nil {
				return config, err
			}
		case "minPlayers":
			if err := parseInt(key, value, &config.MinPlayers); err != nil {
				return config, err
			}
		case "maxPlayers":
			if err := parseInt(key, value, &config.MaxPlayers); err != nil {
				return config, err
			}
		case "autoStart":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return config, fmt.Errorf("room id option %s has a bad value: %s", key, value)
			}

			config.AutoStart = enabled
		}
	}

	if err := config.Validate(); err != nil {
		return config, err
	}

	return config, nil
}

func parseInt(key, value string, dest *int) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("room id option %s has a bad value: %s", key, value)
	}

	*dest = n
	return nil
}
