package formatter

import (
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/user-records-api/records"
)

// SOAPContentType is sent with every SOAP body, faults included
const SOAPContentType = "application/soap+xml; charset=utf-8"

// Fault codes
const (
	FaultClient = "soap:Client"
	FaultServer = "soap:Server"
)

const (
	xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
	envelopeOpen   = `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">` + "\n" +
		"  <soap:Body>\n"
	envelopeClose = "  </soap:Body>\n" +
		"</soap:Envelope>"

	userIndent      = "      "
	listUserIndent  = "        "
	listFieldIndent = "          "
)

// Fault is the content of a <soap:Fault> body
type Fault struct {
	Code   string
	String string
	Detail string
}

// BuildUserSOAP wraps one record in GetUserResponse/User
func (rb *ResponseBuilder) BuildUserSOAP(r records.Record) []byte {
	var b strings.Builder
	b.WriteString(xmlDeclaration)
	b.WriteString(envelopeOpen)
	b.WriteString("    <GetUserResponse>\n")
	rb.xml.WriteElement(&b, "User", r.Fields(), userIndent, userIndent)
	b.WriteString("    </GetUserResponse>\n")
	b.WriteString(envelopeClose)
	return []byte(b.String())
}

// BuildUsersSOAP wraps a record set in GetAllUsersResponse/Users, one User
// element per record.
func (rb *ResponseBuilder) BuildUsersSOAP(c records.Collection) []byte {
	var b strings.Builder
	b.WriteString(xmlDeclaration)
	b.WriteString(envelopeOpen)
	b.WriteString("    <GetAllUsersResponse>\n")
	b.WriteString(`      <Users count="`)
	b.WriteString(strconv.Itoa(len(c)))
	b.WriteString("\">\n")
	for _, r := range c {
		rb.xml.WriteElement(&b, "User", r.Fields(), listUserIndent, listFieldIndent)
	}
	b.WriteString("      </Users>\n")
	b.WriteString("    </GetAllUsersResponse>\n")
	b.WriteString(envelopeClose)
	return []byte(b.String())
}

// BuildFaultSOAP renders a SOAP fault envelope
func (rb *ResponseBuilder) BuildFaultSOAP(f Fault) []byte {
	text := func(s string) string {
		if rb.xml.Escape {
			return xmlEscape(s)
		}
		return s
	}
	var b strings.Builder
	b.WriteString(xmlDeclaration)
	b.WriteString(envelopeOpen)
	b.WriteString("    <soap:Fault>\n")
	b.WriteString("      <faultcode>")
	b.WriteString(f.Code)
	b.WriteString("</faultcode>\n")
	b.WriteString("      <faultstring>")
	b.WriteString(text(f.String))
	b.WriteString("</faultstring>\n")
	b.WriteString("      <detail>")
	b.WriteString(text(f.Detail))
	b.WriteString("</detail>\n")
	b.WriteString("    </soap:Fault>\n")
	b.WriteString(envelopeClose)
	return []byte(b.String())
}
