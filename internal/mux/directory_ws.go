package mux

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// getDirectoryWS streams the full room listing to the client after every
// directory change
func (m *Mux) getDirectoryWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		sub := m.directory.Subscribe()
		defer func() {
			m.directory.Unsubscribe(sub)
			_ = conn.Close()
		}()

		go func() {
			ticker := time.NewTicker(pingPeriod)
			defer func() {
				ticker.Stop()
				_ = conn.Close()
			}()

			for {
				select {
				case <-ticker.C:
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						return
					}
				case listing, ok := <-sub.C:
					if !ok {
						return
					}

					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteJSON(listing); err != nil {
						logrus.WithError(err).Error("could not write listing")
						return
					}
				}
			}
		}()

		// the read loop only exists to notice the client going away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
