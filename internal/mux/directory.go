package mux

import (
	"errors"
	"fmt"
	"net/http"

	"cardroom-server/pkg/directory"

	gmux "github.com/gorilla/mux"
)

func (m *Mux) getDirectory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := directory.Filter{
			GameType: r.FormValue("gameType"),
			Status:   r.FormValue("gameStatus"),
		}

		writeJSON(w, http.StatusOK, m.directory.List(filter))
	}
}

func (m *Mux) getDirectoryID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, found := m.directory.Get(gmux.Vars(r)["id"])
		if !found {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}

func (m *Mux) postDirectory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload directory.UpdateRequest
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.ID == "" {
			writeJSONError(w, http.StatusBadRequest, errors.New("an id is required"))
			return
		}

		switch payload.Action {
		case directory.ActionUpdate, directory.ActionCreate:
			if payload.TableState == nil {
				writeJSONError(w, http.StatusBadRequest, errors.New("a tableState is required"))
				return
			}

			if !payload.TableState.Compatible() {
				writeJSONError(w, http.StatusBadRequest,
					fmt.Errorf("incompatible table state version: have %d, want %d", payload.TableState.Version, directory.Version))
				return
			}

			m.directory.Update(payload.ID, *payload.TableState)
		case directory.ActionDelete:
			m.directory.Remove(payload.ID)
		default:
			writeJSONError(w, http.StatusBadRequest, fmt.Errorf("unknown action: %s", payload.Action))
			return
		}

		writeOK(w)
	}
}

func (m *Mux) deleteDirectory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.directory.Clear()
		writeOK(w)
	}
}
