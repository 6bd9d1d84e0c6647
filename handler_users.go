package userrecords

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/theoremus-urban-solutions/user-records-api/records"
)

// CreateRoutes registers the user endpoints on routes. Literal paths are
// registered before their {id} siblings so they win the match.
func (a *API) CreateRoutes(routes *mux.Router) {
	get := []string{http.MethodGet, http.MethodHead}

	routes.Path("/users").HandlerFunc(a.handleList(records.Basic, FormatJSON)).Methods(get...)
	routes.Path("/users/details").HandlerFunc(a.handleList(records.Detailed, FormatJSON)).Methods(get...)
	routes.Path("/users/details/soap").HandlerFunc(a.handleList(records.Detailed, FormatSOAP)).Methods(get...)
	routes.Path("/users/details/soap/{id}").HandlerFunc(a.handleItem(records.Detailed, FormatSOAP)).Methods(get...)
	routes.Path("/users/details/{id}").HandlerFunc(a.handleItem(records.Detailed, FormatJSON)).Methods(get...)
	routes.Path("/users/{id}").HandlerFunc(a.handleItem(records.Basic, FormatJSON)).Methods(get...)
}

// GET /users, /users/details, /users/details/soap
func (a *API) handleList(set string, format Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, a.GetAll(r.Context(), set, format))
	}
}

// GET /users/{id}, /users/details/{id}, /users/details/soap/{id}
func (a *API) handleItem(set string, format Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		writeResponse(w, a.GetByID(r.Context(), set, id, format))
	}
}

func writeResponse(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.Status)
	if _, err := w.Write(resp.Body); err != nil {
		log.Debug().Err(err).Msg("error writing response")
	}
}
