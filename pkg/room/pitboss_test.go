package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPitBoss_connectAndTeardown(t *testing.T) {
	a := assert.New(t)

	fd := &fakeDirectory{}
	p := NewPitBoss(fd)
	p.StartShift()

	c1 := NewClient(nil, "lobby")
	c2 := NewClient(nil, "lobby")
	p.ClientConnected(c1)
	p.ClientConnected(c2)

	// both clients land in the same session and get a snapshot
	a.Eventually(func() bool {
		return len(drain(c1)) > 0 && len(drain(c2)) > 0
	}, time.Second, time.Millisecond*10)

	p.ClientDisconnected(c1)
	p.ClientDisconnected(c2)

	// the last client out tears the room down
	a.Eventually(func() bool {
		return fd.wasRemoved("lobby")
	}, time.Second, time.Millisecond*10)
}

func TestPitBoss_rejectsBadRoomID(t *testing.T) {
	a := assert.New(t)

	p := NewPitBoss(&fakeDirectory{})
	p.StartShift()

	c := NewClient(nil, "lobby-bigBlind=huge")
	p.ClientConnected(c)

	select {
	case reason := <-c.Close:
		a.Equal("room id option bigBlind has a bad value: huge", reason)
	case <-time.After(time.Second):
		t.Fatal("expected the client to be closed")
	}

	var errMsg ErrorMessage
	found := false
	for _, msg := range drain(c) {
		if em, ok := msg.(ErrorMessage); ok {
			errMsg = em
			found = true
		}
	}

	a.True(found)
	a.Equal("room id option bigBlind has a bad value: huge", errMsg.Error)
}
