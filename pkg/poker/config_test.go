package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	a := assert.New(t)

	a.NoError(DefaultConfig().Validate())

	runTest := func(t *testing.T, expectedError string, mutate func(c *Config)) {
		t.Helper()

		config := DefaultConfig()
		mutate(&config)
		assert.EqualError(t, config.Validate(), expectedError)
	}

	runTest(t, "small blind must be greater than zero", func(c *Config) {
		c.SmallBlind = 0
	})

	runTest(t, "big blind must be greater than the small blind", func(c *Config) {
		c.BigBlind = c.SmallBlind
	})

	runTest(t, "default stack must be at least the big blind (100)", func(c *Config) {
		c.DefaultStack = 99
	})

	runTest(t, "there must be at least two players", func(c *Config) {
		c.MinPlayers = 1
	})

	runTest(t, "max players must not be less than min players", func(c *Config) {
		c.MaxPlayers = 1
	})

	runTest(t, "max hands must be greater than zero", func(c *Config) {
		c.MaxHands = 0
	})

	runTest(t, "timeout must be greater than zero", func(c *Config) {
		c.Timeout = 0
	})

	a.True(DefaultConfig().AutoStart)
}
