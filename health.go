package userrecords

import (
	"net/http"

	"github.com/theoremus-urban-solutions/user-records-api/formatter"
)

type healthResponse struct {
	Status      string   `json:"status"`
	Collections []string `json:"collections"`
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:      "ok",
		Collections: a.records.Names(),
	}
	a.writeJSON(w, http.StatusOK, resp)
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := a.rb.BuildJSON(v)
	if err != nil {
		writeResponse(w, a.internalJSON(err))
		return
	}
	writeResponse(w, Response{Status: status, ContentType: formatter.JSONContentType, Body: body})
}
