package room

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a single websocket connection to a room
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// ID is the volatile per-connection identity. It is minted on connect and
	// never survives a reconnect.
	ID string

	// RoomID is the room the client connected to
	RoomID string

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	// send is a channel for sending messages to the client
	send chan interface{}

	session *Session
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, roomID string) *Client {
	return &Client{
		Conn:   conn,
		ID:     uuid.New().String(),
		RoomID: roomID,
		Close:  make(chan string),
		send:   make(chan interface{}, 256),
	}
}

// Send queues a message for the web client. It returns false if the client's
// buffer is full.
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the connection and room
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.ID, c.RoomID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *ClientMessage) {
	if c.session == nil {
		logrus.WithField("msg", msg).Warn("received message, but session not found")
		return
	}

	c.session.ReceivedMessage(c, msg)
}
