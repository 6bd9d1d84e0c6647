package userrecords

import (
	"net/http"

	"github.com/theoremus-urban-solutions/user-records-api/formatter"
)

type endpointPair struct {
	GetAll  string `json:"getAll"`
	GetByID string `json:"getById"`
}

type indexEndpoints struct {
	BasicUsers        endpointPair `json:"basicUsers"`
	DetailedUsers     endpointPair `json:"detailedUsers"`
	DetailedUsersSOAP endpointPair `json:"detailedUsersSOAP"`
}

type indexResponse struct {
	Message   string         `json:"message"`
	Endpoints indexEndpoints `json:"endpoints"`
}

var index = indexResponse{
	Message: "Welcome to the User API",
	Endpoints: indexEndpoints{
		BasicUsers: endpointPair{
			GetAll:  "GET /api/users",
			GetByID: "GET /api/users/:id",
		},
		DetailedUsers: endpointPair{
			GetAll:  "GET /api/users/details",
			GetByID: "GET /api/users/details/:id",
		},
		DetailedUsersSOAP: endpointPair{
			GetAll:  "GET /api/users/details/soap",
			GetByID: "GET /api/users/details/soap/:id",
		},
	},
}

// GET /
func (a *API) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, index)
}

// handleNotFound answers every unmatched path or method
func (a *API) handleNotFound(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusNotFound, formatter.RouteError{
		Error:   "Route not found",
		Message: "Cannot " + r.Method + " " + requestURI(r),
	})
}
