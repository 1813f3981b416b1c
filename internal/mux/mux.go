package mux

import (
	"errors"
	"net/http"
	"strings"

	"cardroom-server/internal/jwt"
	"cardroom-server/pkg/directory"
	"cardroom-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version   string
	pitBoss   *room.PitBoss
	directory *directory.Directory

	// store for testing purposes
	adminRouter *gmux.Router
}

// NewMux returns a new HTTP mux. A nil directory means this node does not host
// the directory service and the directory endpoints are not registered.
func NewMux(version string, dir *directory.Directory, push directory.Client) *Mux {
	pitBoss := room.NewPitBoss(push)
	pitBoss.StartShift()

	this := &Mux{
		Router:    gmux.NewRouter(),
		version:   version,
		pitBoss:   pitBoss,
		directory: dir,
	}

	this.adminRouter = this.Router.NewRoute().Subrouter()
	this.adminRouter.Use(this.adminMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodGet).Path("/room/{id}/ws").Handler(this.getRoomIDWS())

		if dir != nil {
			r.Methods(http.MethodGet).Path("/directory").Handler(this.getDirectory())
			r.Methods(http.MethodGet).Path("/directory/ws").Handler(this.getDirectoryWS())
			r.Methods(http.MethodGet).Path("/directory/{id}").Handler(this.getDirectoryID())
			r.Methods(http.MethodPost).Path("/directory").Handler(this.postDirectory())
		}
	}

	// requires admin access
	if dir != nil {
		r := this.adminRouter
		r.Methods(http.MethodDelete).Path("/directory").Handler(this.deleteDirectory())
	}

	return this
}

func (m *Mux) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !jwt.Loaded() {
			writeJSONError(w, http.StatusForbidden, errors.New("admin endpoints are disabled"))
			return
		}

		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		subject, err := jwt.ValidSubject(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		if subject != "admin" {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
