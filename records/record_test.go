package records

import (
	"encoding/json"
	"testing"
)

func TestParseCollection(t *testing.T) {
	c, err := ParseCollection([]byte(`[{"id":1,"name":"Alice"}, {"id":2,"name":"Bob"}]`))
	if err != nil {
		t.Fatalf("ParseCollection: %v", err)
	}
	if len(c) != 2 {
		t.Fatalf("expected 2 records, got %d", len(c))
	}
	if string(c[0]) != `{"id":1,"name":"Alice"}` {
		t.Errorf("record should keep its raw JSON, got %s", c[0])
	}
}

func TestParseCollection_Empty(t *testing.T) {
	c, err := ParseCollection([]byte(`[]`))
	if err != nil {
		t.Fatalf("ParseCollection: %v", err)
	}
	if c == nil || len(c) != 0 {
		t.Errorf("expected empty non-nil collection, got %#v", c)
	}
}

func TestParseCollection_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "invalid JSON", input: `[{"id":1,`},
		{name: "object root", input: `{"id":1}`},
		{name: "scalar element", input: `[{"id":1}, 2]`},
		{name: "empty document", input: ``},
		{name: "duplicate key", input: `[{"id":1,"name":"a","name":"b"}]`},
		{name: "duplicate nested key", input: `[{"id":1,"address":{"city":"X","city":"Y"}}]`},
		{name: "duplicate key in array item", input: `[{"id":1,"phones":[{"type":"a","type":"b"}]}]`},
		{name: "duplicate escaped key", input: `[{"id":1,"n":1,"\u006e":2}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCollection([]byte(tt.input)); err == nil {
				t.Errorf("expected error for %q", tt.input)
			}
		})
	}
}

func TestRecord_ID(t *testing.T) {
	tests := []struct {
		name   string
		record string
		want   float64
		wantOK bool
	}{
		{name: "number", record: `{"id":7}`, want: 7, wantOK: true},
		{name: "string id", record: `{"id":"7"}`, wantOK: false},
		{name: "missing", record: `{"name":"x"}`, wantOK: false},
		{name: "null", record: `{"id":null}`, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Record(tt.record).ID()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ID() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCollection_Find(t *testing.T) {
	c, err := ParseCollection([]byte(`[{"id":"1","v":"string"},{"id":1,"v":"first"},{"id":1,"v":"second"},{"id":2.5}]`))
	if err != nil {
		t.Fatalf("ParseCollection: %v", err)
	}

	r, ok := c.Find(1)
	if !ok {
		t.Fatal("expected id 1 to be found")
	}
	if string(r) != `{"id":1,"v":"first"}` {
		t.Errorf("expected first numeric match, got %s", r)
	}

	if _, ok := c.Find(2); ok {
		t.Error("2 must not match 2.5")
	}
	if _, ok := c.Find(99); ok {
		t.Error("99 must not be found")
	}
}

func TestRecord_MarshalKeepsFieldOrder(t *testing.T) {
	r := Record(`{"zeta":1,"alpha":{"b":2,"a":1}}`)
	out, err := json.Marshal(struct {
		Data Record `json:"data"`
	}{Data: r})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"data":{"zeta":1,"alpha":{"b":2,"a":1}}}`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestParseCollection_DuplicateKeyMessage(t *testing.T) {
	_, err := ParseCollection([]byte(`[{"id":1},{"id":2,"name":"a","name":"b"}]`))
	if err == nil || err.Error() != `record 1 has duplicate key "name"` {
		t.Errorf("unexpected error %v", err)
	}
}

func TestParseCollection_SameKeyInSiblings(t *testing.T) {
	c, err := ParseCollection([]byte(`[{"id":1,"a":{"id":2},"b":[{"id":3},{"id":4}]}]`))
	if err != nil {
		t.Fatalf("keys repeated across objects are allowed: %v", err)
	}
	if len(c) != 1 {
		t.Errorf("expected 1 record, got %d", len(c))
	}
}
