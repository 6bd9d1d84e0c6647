package formatter

import (
	"bytes"
	"encoding/json"

	"github.com/theoremus-urban-solutions/user-records-api/records"
)

// JSONContentType is sent with every JSON body
const JSONContentType = "application/json"

// ResponseBuilder builds response bodies for both output modes
type ResponseBuilder struct {
	xml *Serializer
}

// Options configures a ResponseBuilder
type Options struct {
	EscapeXML bool
}

// NewResponseBuilder creates a new response builder
func NewResponseBuilder(opts Options) *ResponseBuilder {
	return &ResponseBuilder{xml: NewSerializer(opts.EscapeXML)}
}

type collectionEnvelope struct {
	Success bool               `json:"success"`
	Count   int                `json:"count"`
	Data    records.Collection `json:"data"`
}

type recordEnvelope struct {
	Success bool           `json:"success"`
	Data    records.Record `json:"data"`
}

// ErrorEnvelope is the JSON body of a failed lookup
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RouteError is the JSON body for unmatched routes and unexpected failures
type RouteError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// BuildCollectionJSON serializes {"success":true,"count":N,"data":[...]}
func (rb *ResponseBuilder) BuildCollectionJSON(c records.Collection) ([]byte, error) {
	if c == nil {
		c = records.Collection{}
	}
	return rb.BuildJSON(collectionEnvelope{Success: true, Count: len(c), Data: c})
}

// BuildRecordJSON serializes {"success":true,"data":{...}}
func (rb *ResponseBuilder) BuildRecordJSON(r records.Record) ([]byte, error) {
	return rb.BuildJSON(recordEnvelope{Success: true, Data: r})
}

// BuildErrorJSON serializes {"success":false,"error":title,"message":message}
func (rb *ResponseBuilder) BuildErrorJSON(title, message string) ([]byte, error) {
	return rb.BuildJSON(ErrorEnvelope{Success: false, Error: title, Message: message})
}

// BuildJSON serializes v compactly without HTML escaping
func (rb *ResponseBuilder) BuildJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
