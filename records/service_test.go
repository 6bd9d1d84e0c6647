package records

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theoremus-urban-solutions/user-records-api/config"
)

const basicFixture = `[
  {"id": 1, "name": "Alice"},
  {"id": 2, "name": "Bob"}
]`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func newTestService(t *testing.T, basicPath string) *Service {
	t.Helper()
	svc, err := NewServiceFromConfig(config.DataConfig{
		BasicUsers:    basicPath,
		DetailedUsers: basicPath,
	})
	if err != nil {
		t.Fatalf("NewServiceFromConfig: %v", err)
	}
	return svc
}

func TestService_Collection(t *testing.T) {
	svc := newTestService(t, writeFixture(t, "basicUsers.json", basicFixture))

	c, err := svc.Collection(context.Background(), Basic)
	if err != nil {
		t.Fatalf("Collection: %v", err)
	}
	if len(c) != 2 {
		t.Errorf("expected 2 records, got %d", len(c))
	}
}

func TestService_ByID_Found(t *testing.T) {
	svc := newTestService(t, writeFixture(t, "basicUsers.json", basicFixture))

	for _, id := range []int64{1, 2} {
		r, err := svc.ByID(context.Background(), Basic, id)
		if err != nil {
			t.Fatalf("ByID(%d): %v", id, err)
		}
		got, ok := r.ID()
		if !ok || got != float64(id) {
			t.Errorf("ByID(%d) returned record with id %v", id, got)
		}
	}
}

func TestService_ByID_NotFound(t *testing.T) {
	svc := newTestService(t, writeFixture(t, "basicUsers.json", basicFixture))

	_, err := svc.ByID(context.Background(), Basic, 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if IsDataSource(err) {
		t.Error("a missing record must not be a data source error")
	}
}

func TestService_Lookup(t *testing.T) {
	svc := newTestService(t, writeFixture(t, "basicUsers.json", basicFixture))

	r, err := svc.Lookup(context.Background(), Basic, "2.9")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if id, _ := r.ID(); id != 2 {
		t.Errorf("expected id 2, got %v", id)
	}

	if _, err := svc.Lookup(context.Background(), Basic, "abc"); !IsInvalidIdentifier(err) {
		t.Errorf("expected InvalidIdentifierError, got %v", err)
	}
}

func TestService_DataSourceErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "basicUsers.json") },
		},
		{
			name: "invalid JSON",
			path: func(t *testing.T) string { return writeFixture(t, "basicUsers.json", "{not json") },
		},
		{
			name: "not an array",
			path: func(t *testing.T) string { return writeFixture(t, "basicUsers.json", `{"id":1}`) },
		},
		{
			name: "duplicate key",
			path: func(t *testing.T) string {
				return writeFixture(t, "basicUsers.json", `[{"id":1,"name":"a","name":"b"}]`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.path(t))

			_, err := svc.Collection(context.Background(), Basic)
			if !IsDataSource(err) {
				t.Fatalf("expected DataSourceError, got %v", err)
			}
			if !strings.HasPrefix(err.Error(), "Failed to read data from basicUsers.json: ") {
				t.Errorf("unexpected message %q", err.Error())
			}

			_, err = svc.ByID(context.Background(), Basic, 1)
			if !IsDataSource(err) || errors.Is(err, ErrNotFound) {
				t.Errorf("ByID should surface the data source error, got %v", err)
			}
		})
	}
}

func TestService_UnknownSet(t *testing.T) {
	svc := NewService(map[string]Source{})
	if _, err := svc.Collection(context.Background(), "archived"); !IsDataSource(err) {
		t.Errorf("expected DataSourceError for unknown set, got %v", err)
	}
}

func TestService_ReadsFreshEveryCall(t *testing.T) {
	path := writeFixture(t, "basicUsers.json", basicFixture)
	svc := newTestService(t, path)

	if _, err := svc.ByID(context.Background(), Basic, 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected id 3 to be missing, got %v", err)
	}
	if err := os.WriteFile(path, []byte(`[{"id":3,"name":"Carol"}]`), 0644); err != nil {
		t.Fatalf("rewrite fixture: %v", err)
	}
	if _, err := svc.ByID(context.Background(), Basic, 3); err != nil {
		t.Errorf("expected the rewritten file to be read, got %v", err)
	}
}

func TestService_Names(t *testing.T) {
	svc := newTestService(t, writeFixture(t, "basicUsers.json", basicFixture))
	got := strings.Join(svc.Names(), ",")
	if got != "basic,detailed" {
		t.Errorf("Names() = %s", got)
	}
}
