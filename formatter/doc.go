// Package formatter renders user records as JSON envelopes or SOAP/XML documents.
//
// This package is organized into:
// - json.go: JSON envelopes ({success, count, data} and error bodies)
// - xml.go: the recursive value-tree to XML serializer
// - wrapper.go: SOAP envelopes and faults built around the serializer
//
// XML is written by hand for precise control over layout and whitespace.
package formatter
