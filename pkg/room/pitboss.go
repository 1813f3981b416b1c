package room

import (
	"cardroom-server/pkg/directory"

	"github.com/sirupsen/logrus"
)

// PitBoss is responsible for dispatching clients to rooms
type PitBoss struct {
	dir        directory.Client
	sessions   map[string]*Session
	connect    chan *Client
	disconnect chan *Client
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(dir directory.Client) *PitBoss {
	return &PitBoss{
		dir:        dir,
		sessions:   make(map[string]*Session),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			logrus.WithField("client", client.String()).Debug("client connected")
			session, found := p.sessions[client.RoomID]
			if !found {
				var err error
				session, err = NewSession(p, client.RoomID, p.dir)
				if err != nil {
					logrus.WithField("room", client.RoomID).WithError(err).Warn("rejecting room")
					client.Send(ErrorMessage{Error: err.Error()})
					go func() {
						client.Close <- err.Error()
					}()
					continue
				}

				session.StartShift()
				p.sessions[client.RoomID] = session
			}

			session.AddClient(client)
		case client := <-p.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")
			session, found := p.sessions[client.RoomID]
			if !found {
				logrus.WithField("room", client.RoomID).WithField("type", "exception").Error("room not found")
				continue
			}

			if session.RemoveClient(client) {
				session.EndShift()
				delete(p.sessions, client.RoomID)
			}
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
