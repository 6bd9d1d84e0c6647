package userrecords

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/theoremus-urban-solutions/user-records-api/formatter"
	"github.com/theoremus-urban-solutions/user-records-api/records"
)

// Format selects the response representation
type Format string

const (
	FormatJSON Format = "json"
	FormatSOAP Format = "soap"
)

// Response is a rendered status, content type and body
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// messages holds the user-facing error texts of one record set
type messages struct {
	listFailed string
	itemFailed string
	notFound   string
}

var setMessages = map[string]messages{
	records.Basic: {
		listFailed: "Failed to retrieve users",
		itemFailed: "Failed to retrieve user",
		notFound:   "User with ID %d does not exist",
	},
	records.Detailed: {
		listFailed: "Failed to retrieve detailed users",
		itemFailed: "Failed to retrieve detailed user",
		notFound:   "Detailed user with ID %d does not exist",
	},
}

func messagesFor(set string) messages {
	if m, ok := setMessages[set]; ok {
		return m
	}
	return setMessages[records.Basic]
}

// API renders lookups into responses. It is shared by the HTTP handlers and the
// oneshot CLI mode.
type API struct {
	records *records.Service
	rb      *formatter.ResponseBuilder
}

// NewAPI creates an API over a lookup service and a response builder
func NewAPI(svc *records.Service, rb *formatter.ResponseBuilder) *API {
	return &API{records: svc, rb: rb}
}

// GetAll renders a whole record set
func (a *API) GetAll(ctx context.Context, set string, format Format) Response {
	msgs := messagesFor(set)
	c, err := a.records.Collection(ctx, set)
	if format == FormatSOAP {
		if err != nil {
			return a.fault(http.StatusInternalServerError, formatter.Fault{
				Code:   formatter.FaultServer,
				String: "Internal server error",
				Detail: err.Error(),
			})
		}
		return Response{Status: http.StatusOK, ContentType: formatter.SOAPContentType, Body: a.rb.BuildUsersSOAP(c)}
	}
	if err != nil {
		return a.jsonError(http.StatusInternalServerError, msgs.listFailed, err.Error())
	}
	body, err := a.rb.BuildCollectionJSON(c)
	if err != nil {
		return a.internalJSON(err)
	}
	return Response{Status: http.StatusOK, ContentType: formatter.JSONContentType, Body: body}
}

// GetByID renders a single record. rawID is parsed with records.ParseID.
func (a *API) GetByID(ctx context.Context, set, rawID string, format Format) Response {
	msgs := messagesFor(set)
	id, err := records.ParseID(rawID)
	if err != nil {
		if format == FormatSOAP {
			return a.fault(http.StatusBadRequest, formatter.Fault{
				Code:   formatter.FaultClient,
				String: "Invalid user ID",
				Detail: err.Error(),
			})
		}
		return a.jsonError(http.StatusBadRequest, "Invalid user ID", err.Error())
	}

	r, err := a.records.ByID(ctx, set, id)
	switch {
	case err == nil:
	case errors.Is(err, records.ErrNotFound):
		detail := fmt.Sprintf(msgs.notFound, id)
		if format == FormatSOAP {
			return a.fault(http.StatusNotFound, formatter.Fault{
				Code:   formatter.FaultServer,
				String: "User not found",
				Detail: detail,
			})
		}
		return a.jsonError(http.StatusNotFound, "User not found", detail)
	default:
		if format == FormatSOAP {
			return a.fault(http.StatusInternalServerError, formatter.Fault{
				Code:   formatter.FaultServer,
				String: "Internal server error",
				Detail: err.Error(),
			})
		}
		return a.jsonError(http.StatusInternalServerError, msgs.itemFailed, err.Error())
	}

	if format == FormatSOAP {
		return Response{Status: http.StatusOK, ContentType: formatter.SOAPContentType, Body: a.rb.BuildUserSOAP(r)}
	}
	body, err := a.rb.BuildRecordJSON(r)
	if err != nil {
		return a.internalJSON(err)
	}
	return Response{Status: http.StatusOK, ContentType: formatter.JSONContentType, Body: body}
}

func (a *API) fault(status int, f formatter.Fault) Response {
	return Response{Status: status, ContentType: formatter.SOAPContentType, Body: a.rb.BuildFaultSOAP(f)}
}

func (a *API) jsonError(status int, title, message string) Response {
	body, err := a.rb.BuildErrorJSON(title, message)
	if err != nil {
		return a.internalJSON(err)
	}
	return Response{Status: status, ContentType: formatter.JSONContentType, Body: body}
}

// internalJSON is the last resort when an envelope cannot be encoded
func (a *API) internalJSON(err error) Response {
	log.Error().Err(err).Msg("error encoding response")
	body, encErr := a.rb.BuildJSON(formatter.RouteError{Error: "Internal server error", Message: err.Error()})
	if encErr != nil {
		body = []byte(`{"error":"Internal server error"}`)
	}
	return Response{Status: http.StatusInternalServerError, ContentType: formatter.JSONContentType, Body: body}
}
