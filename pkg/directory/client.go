package directory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Client publishes room summaries to the directory. Pushes are
// fire-and-forget: a failed push only affects listing freshness, never the
// room itself, and is not retried until the room's next state change.
type Client interface {
	// Update upserts the room's summary
	Update(id string, state TableState)

	// Remove deletes the room's summary
	Remove(id string)
}

// actions accepted by the directory update endpoint
const (
	ActionUpdate = "update"
	ActionCreate = "create"
	ActionDelete = "delete"
)

// UpdateRequest is the directory protocol payload
type UpdateRequest struct {
	Action     string      `json:"action"`
	ID         string      `json:"id"`
	TableState *TableState `json:"tableState,omitempty"`
}

// HTTPClient publishes summaries to a remote directory over HTTP
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient returns a client that POSTs to the directory at baseURL
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: time.Second * 5,
		},
	}
}

// Update implements Client
func (c *HTTPClient) Update(id string, state TableState) {
	go c.post(UpdateRequest{Action: ActionUpdate, ID: id, TableState: &state})
}

// Remove implements Client
func (c *HTTPClient) Remove(id string) {
	go c.post(UpdateRequest{Action: ActionDelete, ID: id})
}

func (c *HTTPClient) post(payload UpdateRequest) {
	body, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).Error("could not encode directory push")
		return
	}

	resp, err := c.client.Post(c.baseURL+"/directory", "application/json", bytes.NewReader(body))
	if err != nil {
		logrus.WithError(err).WithField("room", payload.ID).Warn("could not push to directory")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"room":       payload.ID,
			"statusCode": resp.StatusCode,
		}).Warn(fmt.Sprintf("directory push rejected: %s", resp.Status))
	}
}

// LocalClient publishes summaries to an in-process directory
type LocalClient struct {
	directory *Directory
}

// NewLocalClient returns a client backed by the provided directory
func NewLocalClient(d *Directory) *LocalClient {
	return &LocalClient{directory: d}
}

// Update implements Client
func (c *LocalClient) Update(id string, state TableState) {
	go c.directory.Update(id, state)
}

// Remove implements Client
func (c *LocalClient) Remove(id string) {
	go c.directory.Remove(id)
}
