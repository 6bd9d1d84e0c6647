package formatter

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/theoremus-urban-solutions/user-records-api/records"
)

func TestBuildUserSOAP(t *testing.T) {
	rb := NewResponseBuilder(Options{})
	rec := records.Record(`{"id":1,"name":"Alice","tags":["x","y"],"address":{"city":"X"},"manager":null,"phones":[{"type":"home"}]}`)

	got := string(rb.BuildUserSOAP(rec))
	want := `<?xml version="1.0" encoding="UTF-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <GetUserResponse>
      <User>
      <id>1</id>
      <name>Alice</name>
      <tags>
        <item>x</item>
        <item>y</item>
      </tags>
      <address>
        <city>X</city>
      </address>
      <manager />
      <phones>
        <item>
          <type>home</type>
        </item>
      </phones>
      </User>
    </GetUserResponse>
  </soap:Body>
</soap:Envelope>`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildUserSOAP_IsWellFormed(t *testing.T) {
	rb := NewResponseBuilder(Options{})
	body := rb.BuildUserSOAP(records.Record(`{"id":2,"address":{"city":"Y"},"roles":["a"]}`))

	var env struct {
		Body struct {
			Response struct {
				User struct {
					ID   int    `xml:"id"`
					City string `xml:"address>city"`
				} `xml:"User"`
			} `xml:"GetUserResponse"`
		} `xml:"Body"`
	}
	if err := xml.Unmarshal(body, &env); err != nil {
		t.Fatalf("envelope should parse as XML: %v", err)
	}
	if env.Body.Response.User.ID != 2 || env.Body.Response.User.City != "Y" {
		t.Errorf("unexpected parsed user: %+v", env.Body.Response.User)
	}
}

func TestBuildUsersSOAP(t *testing.T) {
	rb := NewResponseBuilder(Options{})
	c := records.Collection{
		records.Record(`{"id":1,"name":"Alice"}`),
		records.Record(`{"id":2,"roles":["admin"]}`),
	}

	got := string(rb.BuildUsersSOAP(c))
	want := `<?xml version="1.0" encoding="UTF-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <GetAllUsersResponse>
      <Users count="2">
        <User>
          <id>1</id>
          <name>Alice</name>
        </User>
        <User>
          <id>2</id>
          <roles>
            <item>admin</item>
          </roles>
        </User>
      </Users>
    </GetAllUsersResponse>
  </soap:Body>
</soap:Envelope>`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildUsersSOAP_Empty(t *testing.T) {
	rb := NewResponseBuilder(Options{})
	got := string(rb.BuildUsersSOAP(records.Collection{}))
	if !strings.Contains(got, "      <Users count=\"0\">\n      </Users>\n") {
		t.Errorf("unexpected empty list body:\n%s", got)
	}
}

func TestBuildFaultSOAP(t *testing.T) {
	rb := NewResponseBuilder(Options{})
	got := string(rb.BuildFaultSOAP(Fault{
		Code:   FaultServer,
		String: "User not found",
		Detail: "Detailed user with ID 999 does not exist",
	}))
	want := `<?xml version="1.0" encoding="UTF-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <soap:Fault>
      <faultcode>soap:Server</faultcode>
      <faultstring>User not found</faultstring>
      <detail>Detailed user with ID 999 does not exist</detail>
    </soap:Fault>
  </soap:Body>
</soap:Envelope>`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildFaultSOAP_Escape(t *testing.T) {
	f := Fault{Code: FaultServer, String: "Internal server error", Detail: "a < b"}

	raw := string(NewResponseBuilder(Options{}).BuildFaultSOAP(f))
	if !strings.Contains(raw, "<detail>a < b</detail>") {
		t.Errorf("detail should be verbatim by default:\n%s", raw)
	}
	escaped := string(NewResponseBuilder(Options{EscapeXML: true}).BuildFaultSOAP(f))
	if !strings.Contains(escaped, "<detail>a &lt; b</detail>") {
		t.Errorf("detail should be escaped when enabled:\n%s", escaped)
	}
}
