package document

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"menu-builder-api/menuerrors"
	"menu-builder-api/models"
)

func TestExportFormat(t *testing.T) {
	s, id := newTestStore(t)
	addBurger(t, s, id)

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	data, err := s.Export(now)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var file struct {
		Sections   []json.RawMessage `json:"sections"`
		ExportDate string            `json:"exportDate"`
		Version    string            `json:"version"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if file.Version != "1.0" {
		t.Fatalf("version = %q", file.Version)
	}
	if file.ExportDate != "2026-08-30T12:00:00Z" {
		t.Fatalf("exportDate = %q, want ISO8601", file.ExportDate)
	}
	if len(file.Sections) != 1 {
		t.Fatalf("sections = %d", len(file.Sections))
	}
}

// Item fields must serialize as an object whose key order follows the
// column order — that ordering is the observable contract.
func TestExportItemKeyOrder(t *testing.T) {
	s, id := newTestStore(t)
	addBurger(t, s, id)
	if err := s.ReorderColumns(id, 2, 0); err != nil {
		t.Fatalf("ReorderColumns: %v", err)
	}

	data, err := s.Export(time.Now())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	body := string(data)
	price := strings.Index(body, `"Price"`)
	name := strings.Index(body, `"Item Name"`)
	desc := strings.Index(body, `"Description"`)
	if price == -1 || name == -1 || desc == -1 {
		t.Fatalf("missing keys in export: %s", body)
	}
	if !(price < name && name < desc) {
		t.Fatalf("item keys out of column order in export: %s", body)
	}
}

func TestImportRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "nonsense"},
		{name: "no sections", input: `{"exportDate":"2026-01-01T00:00:00Z","version":"1.0"}`},
		{name: "sections not array", input: `{"sections":{"id":1}}`},
		{name: "sections null", input: `{"sections":null}`},
		{name: "bad section shape", input: `{"sections":[{"id":"not-a-number"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, id := newTestStore(t)
			addBurger(t, s, id)
			before := s.Document().Clone()

			err := s.Import([]byte(tt.input))
			var ve *menuerrors.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(s.Document().Sections) != len(before.Sections) {
				t.Fatal("rejected import must not mutate the document")
			}
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s, id := newTestStore(t)
	addBurger(t, s, id)
	data, err := s.Export(time.Now())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := NewStore(&models.MenuDocument{})
	if err := dst.Import(data); err != nil {
		t.Fatalf("Import: %v", err)
	}
	sec := dst.Document().SectionByID(id)
	if sec == nil {
		t.Fatal("imported section missing")
	}
	if got := sec.Items[0].Value("Item Name"); got != "Burger" {
		t.Fatalf("imported item value = %q", got)
	}
	// The counter must keep clear of imported ids so new sections never
	// collide
	newID, err := dst.AddSection("After", models.SectionTypeCustom, []string{"X"}, nil)
	if err != nil {
		t.Fatalf("AddSection: %v", err)
	}
	if newID <= id {
		t.Fatalf("new id %d collides with imported id %d", newID, id)
	}
}
