package room

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"cardroom-server/internal/config"
	"cardroom-server/pkg/deck"
	"cardroom-server/pkg/directory"
	"cardroom-server/pkg/poker"

	"github.com/sirupsen/logrus"
)

// tickInterval is how often the run loop scans for idle players
const tickInterval = time.Millisecond * 50

// seatedPlayer binds a durable username to the connection currently driving it.
// The seat survives a disconnect; the connection id goes stale until the player
// reclaims the seat from a new connection.
type seatedPlayer struct {
	Username string
	ConnID   string
}

type inboundMessage struct {
	client  *Client
	message *ClientMessage
}

// Session is responsible for running the games in a single room. All game
// state is owned by the run loop; connections only exchange messages with it.
type Session struct {
	pitBoss *PitBoss
	roomID  string
	config  poker.Config
	dir     directory.Client

	clients map[*Client]bool
	lock    sync.RWMutex

	seated     []*seatedPlayer
	stacks     map[string]int
	hand       *poker.Hand
	phase      Phase
	roundCount int
	lastActed  map[string]time.Time
	queued     []UpdateMessage

	inbound       chan inboundMessage
	execInRunLoop chan func()
	close         chan bool

	tick       time.Duration
	startDelay time.Duration
	startAt    time.Time
}

// NewSession creates a new session for the room. The room id doubles as the
// game configuration; an invalid configuration means no session.
// This is called from a blocking state, so it needs to return quickly.
func NewSession(pitBoss *PitBoss, roomID string, dir directory.Client) (*Session, error) {
	cfg, err := ParseRoomID(roomID)
	if err != nil {
		return nil, err
	}

	s := &Session{
		pitBoss:       pitBoss,
		roomID:        roomID,
		config:        cfg,
		dir:           dir,
		clients:       make(map[*Client]bool),
		stacks:        make(map[string]int),
		phase:         PhasePending,
		lastActed:     make(map[string]time.Time),
		inbound:       make(chan inboundMessage, 256),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
		tick:          tickInterval,
		startDelay:    time.Duration(config.Instance().Room.StartGameDelay) * time.Second,
	}

	return s, nil
}

// Clients will return a slice of connected (at the time) clients
func (s *Session) Clients() []*Client {
	s.lock.RLock()
	defer s.lock.RUnlock()

	clients := make([]*Client, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (s *Session) StartShift() {
	go s.runLoop()
}

// EndShift is called when the session is no longer needed
func (s *Session) EndShift() {
	close(s.close)
}

func (s *Session) runLoop() {
	log := logrus.WithField("room", s.roomID)
	log.Debug("creating session run loop")

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case in := <-s.inbound:
			s.handleMessage(in.client, in.message)
		case fn := <-s.execInRunLoop:
			fn()
		case <-ticker.C:
			s.enforceTimeout()
			s.maybeDelayedStart()
		case <-s.close:
			log.Debug("terminating session run loop")
			s.dir.Remove(s.roomID)
			return
		}
	}
}

// AddClient adds a client as a spectator
// This method must return quickly
func (s *Session) AddClient(client *Client) {
	s.lock.Lock()
	client.session = s
	s.clients[client] = true
	s.lock.Unlock()

	s.execInRunLoop <- func() {
		s.broadcast()
	}
}

// RemoveClient removes a client. A seat bound to the connection is kept with a
// stale connection id so the player can reclaim it later.
// This method must return quickly
func (s *Session) RemoveClient(client *Client) (lastClient bool) {
	s.lock.Lock()
	delete(s.clients, client)
	nClients := len(s.clients)
	s.lock.Unlock()

	if nClients == 0 {
		return true
	}

	s.execInRunLoop <- func() {
		left := &directory.PlayerInfo{PlayerID: client.ID}
		if seat := s.seatByConn(client.ID); seat != nil {
			left.Username = seat.Username
		}

		s.queue(UpdateMessage{Type: UpdateTypePlayerLeft, Player: left})
		s.broadcast()
	}

	return false
}

// ReceivedMessage is called when a client sends a message to the server
func (s *Session) ReceivedMessage(c *Client, msg *ClientMessage) {
	s.inbound <- inboundMessage{client: c, message: msg}
}

// NOTE: must only be called from the run loop
func (s *Session) handleMessage(c *Client, msg *ClientMessage) {
	switch msg.Type {
	case MessageTypeJoinGame:
		s.handleJoin(c, msg.Username)
	case MessageTypeAction:
		if msg.Action == nil {
			c.Send(ErrorMessage{Error: "an action is required"})
			return
		}

		s.handleAction(c, *msg.Action)
	default:
		logrus.WithFields(logrus.Fields{
			"client": c.String(),
			"type":   msg.Type,
		}).Warn("unknown message type")
		c.Send(ErrorMessage{Error: fmt.Sprintf("unknown message type: %s", msg.Type)})
	}
}

// NOTE: must only be called from the run loop
func (s *Session) handleJoin(c *Client, username string) {
	if username == "" {
		c.Send(ErrorMessage{Error: "a username is required"})
		return
	}

	if seat := s.seatByConn(c.ID); seat != nil {
		if seat.Username != username {
			c.Send(ErrorMessage{Error: fmt.Sprintf("you are already seated as %s", seat.Username)})
		}

		return
	}

	if seat := s.seatByUsername(username); seat != nil {
		if s.connected(seat.ConnID) {
			c.Send(ErrorMessage{Error: fmt.Sprintf("the username %s is already taken", username)})
			return
		}

		// the previous connection is gone; hand the seat to this one
		logrus.WithFields(logrus.Fields{
			"room":     s.roomID,
			"username": username,
			"conn":     c.ID,
		}).Debug("seat reclaimed")
		seat.ConnID = c.ID
		s.broadcast()
		return
	}

	if s.phase == PhaseActive {
		c.Send(ErrorMessage{Error: "you cannot join while a hand is in progress"})
		return
	}

	if s.phase == PhaseFinished {
		c.Send(ErrorMessage{Error: "this game is over"})
		return
	}

	if len(s.seated) >= s.config.MaxPlayers {
		c.Send(ErrorMessage{Error: "the room is full"})
		return
	}

	s.seated = append(s.seated, &seatedPlayer{Username: username, ConnID: c.ID})
	if _, found := s.stacks[username]; !found {
		s.stacks[username] = s.config.DefaultStack
	}

	s.queue(UpdateMessage{
		Type:   UpdateTypePlayerJoined,
		Player: &directory.PlayerInfo{PlayerID: c.ID, Username: username},
	})

	if s.config.AutoStart {
		s.maybeStartHand()
	}

	s.broadcast()
}

// NOTE: must only be called from the run loop
func (s *Session) handleAction(c *Client, act poker.Action) {
	seat := s.seatByConn(c.ID)
	if seat == nil {
		c.Send(ErrorMessage{Error: "you are not seated"})
		return
	}

	if s.hand == nil {
		c.Send(ErrorMessage{Error: "no hand is in progress"})
		return
	}

	if s.applyAction(seat.Username, act, c) {
		s.broadcast()
	}
}

// applyAction runs a single action through the engine and settles the hand if
// it finished. A rejected action is surfaced to the acting client (when there
// is one) and changes nothing. The return value reports whether the room
// state changed.
// NOTE: must only be called from the run loop
func (s *Session) applyAction(username string, act poker.Action, c *Client) bool {
	events, err := s.hand.Step(username, act)
	if err != nil {
		if poker.IsRuleError(err) {
			logrus.WithFields(logrus.Fields{
				"room":     s.roomID,
				"username": username,
				"action":   act.String(),
			}).WithError(err).Debug("action rejected")

			if c != nil {
				c.Send(ErrorMessage{Error: err.Error()})
			}

			return false
		}

		logrus.WithField("room", s.roomID).WithError(err).Error("engine fault, aborting the hand")
		s.abortHand()
		return true
	}

	s.lastActed[username] = time.Now()

	update := UpdateMessage{Type: UpdateTypeAction, Action: &act}
	if seat := s.seatByUsername(username); seat != nil {
		update.Player = &directory.PlayerInfo{PlayerID: seat.ConnID, Username: username}
	}

	s.queue(update)
	for _, event := range events {
		s.queue(UpdateMessage{Type: UpdateTypeEngineLog, Message: event})
	}

	if s.hand.State.Done {
		s.settleHand()
	}

	return true
}

// maybeStartHand deals a new hand if the room is able to play one. Seats
// without chips sit the hand out.
// NOTE: must only be called from the run loop
func (s *Session) maybeStartHand() {
	if s.phase != PhasePending || s.hand != nil || s.roundCount >= s.config.MaxHands {
		return
	}

	usernames := make([]string, 0, len(s.seated))
	stacks := make([]int, 0, len(s.seated))
	players := make([]directory.PlayerInfo, 0, len(s.seated))
	for _, seat := range s.seated {
		if s.stacks[seat.Username] <= 0 {
			continue
		}

		usernames = append(usernames, seat.Username)
		stacks = append(stacks, s.stacks[seat.Username])
		players = append(players, directory.PlayerInfo{PlayerID: seat.ConnID, Username: seat.Username})
	}

	if len(usernames) < s.config.MinPlayers {
		return
	}

	// give late arrivals a window before the first deal
	if s.startDelay > 0 {
		if s.startAt.IsZero() {
			s.startAt = time.Now().Add(s.startDelay)
			return
		}

		if time.Now().Before(s.startAt) {
			return
		}
	}

	s.startAt = time.Time{}

	hand, err := poker.NewHand(s.config, usernames, stacks)
	if err != nil {
		logrus.WithField("room", s.roomID).WithError(err).Error("could not start a hand")
		return
	}

	s.hand = hand
	s.phase = PhaseActive
	s.queue(UpdateMessage{Type: UpdateTypeGameStarted, Players: players})

	now := time.Now()
	for _, username := range usernames {
		s.lastActed[username] = now
	}
}

// settleHand pays out the pot, folds the result into the stack ledger, rotates
// the dealer button, and starts the next hand if the room allows it
// NOTE: must only be called from the run loop
func (s *Session) settleHand() {
	reason := ReasonFold
	if s.hand.State.Round == poker.RoundShowdown {
		reason = ReasonShowdown
	}

	payouts, events, err := s.hand.Payout()
	if err != nil {
		logrus.WithField("room", s.roomID).WithError(err).Error("could not pay out the hand")
		s.abortHand()
		return
	}

	handSeats := len(s.hand.State.Seats)

	for _, event := range events {
		s.queue(UpdateMessage{Type: UpdateTypeEngineLog, Message: event})
	}

	for _, seat := range s.hand.State.Seats {
		s.stacks[seat.Username] = seat.Stack + payouts[seat.Username]
	}

	s.queue(UpdateMessage{Type: UpdateTypeGameEnded, Payouts: payouts, Reason: reason})

	s.hand = nil
	s.phase = PhasePending
	s.roundCount++

	// rotate over the seats that were dealt in; seats sitting out with an
	// empty stack must not absorb the button
	s.config.DealerPosition = (s.config.DealerPosition + 1) % handSeats

	if s.roundCount >= s.config.MaxHands {
		s.phase = PhaseFinished
		return
	}

	if s.config.AutoStart {
		s.maybeStartHand()
	}
}

// abortHand discards the hand without a payout. The stack ledger still holds
// the pre-hand stacks, so no chips are won or lost.
// NOTE: must only be called from the run loop
func (s *Session) abortHand() {
	s.hand = nil
	s.phase = PhasePending
	s.queue(UpdateMessage{Type: UpdateTypeGameEnded, Reason: ReasonSystem})
}

// maybeDelayedStart deals the pending hand once the start window has elapsed
// NOTE: must only be called from the run loop
func (s *Session) maybeDelayedStart() {
	if s.phase != PhasePending || s.startAt.IsZero() || time.Now().Before(s.startAt) {
		return
	}

	s.maybeStartHand()
	if s.hand != nil {
		s.broadcast()
	} else {
		// the room lost its quorum during the window; re-arm on the next join
		s.startAt = time.Time{}
	}
}

// enforceTimeout forces a fold (or a check/call when nothing is owed) on a
// player who sat on their turn too long. Only the acting player's clock runs;
// everyone else is re-armed on every tick.
// NOTE: must only be called from the run loop
func (s *Session) enforceTimeout() {
	if s.hand == nil {
		return
	}

	state := s.hand.State
	if state.Done || state.WhoseTurn < 0 {
		return
	}

	seat := state.Seats[state.WhoseTurn]
	now := time.Now()
	for _, p := range s.seated {
		if _, found := s.lastActed[p.Username]; p.Username != seat.Username || !found {
			s.lastActed[p.Username] = now
		}
	}

	timeout := time.Duration(s.config.Timeout) * time.Millisecond
	if now.Sub(s.lastActed[seat.Username]) < timeout {
		return
	}

	act := poker.Action{Type: poker.ActionCall}
	if seat.CurrentBet < state.TargetBet {
		act.Type = poker.ActionFold
	}

	logrus.WithFields(logrus.Fields{
		"room":     s.roomID,
		"username": seat.Username,
		"action":   act.String(),
	}).Warn("forcing an action for an idle player")

	if s.applyAction(seat.Username, act, nil) {
		s.broadcast()
	}
}

// queue appends an entry to the lastUpdates feed for the next broadcast
// NOTE: must only be called from the run loop
func (s *Session) queue(update UpdateMessage) {
	s.queued = append(s.queued, update)
}

// broadcast sends every client its own view of the room and pushes the public
// summary to the directory. The update queue is cleared so entries are
// delivered at most once.
// NOTE: must only be called from the run loop
func (s *Session) broadcast() {
	var public *poker.State
	if s.hand != nil {
		public = s.hand.State.Clone()
	}

	inGame := s.playerInfo()
	spectators := s.spectatorInfo()
	stacks := make(map[string]int, len(s.stacks))
	for username, stack := range s.stacks {
		stacks[username] = stack
	}

	updates := s.queued
	s.queued = nil

	for _, client := range s.Clients() {
		msg := StateMessage{
			GameState:   public,
			InGame:      inGame,
			Spectators:  spectators,
			Config:      s.config,
			State:       phaseState{GamePhase: s.phase},
			RoundCount:  s.roundCount,
			Stacks:      stacks,
			ClientID:    client.ID,
			LastUpdates: updates,
		}

		if seat := s.seatByConn(client.ID); seat != nil {
			msg.Username = seat.Username
			if s.hand != nil {
				if hole, found := s.hand.HoleCards[seat.Username]; found {
					msg.Hand = []*deck.Card{hole[0], hole[1]}
				}
			}
		}

		if !client.Send(msg) {
			logrus.WithField("client", client.String()).Warn("send buffer full, dropping state message")
		}
	}

	s.dir.Update(s.roomID, directory.TableState{
		Spectators: spectators,
		InGame:     inGame,
		Config:     s.config,
		GameState:  public,
		Stacks:     stacks,
		Round:      s.roundCount,
		GameType:   directory.GameType,
		Status:     string(s.phase),
		Version:    directory.Version,
	})
}

// NOTE: must only be called from the run loop
func (s *Session) playerInfo() []directory.PlayerInfo {
	players := make([]directory.PlayerInfo, len(s.seated))
	for i, seat := range s.seated {
		players[i] = directory.PlayerInfo{PlayerID: seat.ConnID, Username: seat.Username}
	}

	return players
}

// NOTE: must only be called from the run loop
func (s *Session) spectatorInfo() []directory.SpectatorInfo {
	spectators := make([]directory.SpectatorInfo, 0)
	for _, client := range s.Clients() {
		if s.seatByConn(client.ID) == nil {
			spectators = append(spectators, directory.SpectatorInfo{PlayerID: client.ID})
		}
	}

	sort.Slice(spectators, func(i, j int) bool {
		return spectators[i].PlayerID < spectators[j].PlayerID
	})

	return spectators
}

func (s *Session) seatByConn(connID string) *seatedPlayer {
	for _, seat := range s.seated {
		if seat.ConnID == connID {
			return seat
		}
	}

	return nil
}

func (s *Session) seatByUsername(username string) *seatedPlayer {
	for _, seat := range s.seated {
		if seat.Username == username {
			return seat
		}
	}

	return nil
}

func (s *Session) connected(connID string) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	for client := range s.clients {
		if client.ID == connID {
			return true
		}
	}

	return false
}
