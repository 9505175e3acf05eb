package document

import (
	"errors"
	"reflect"
	"testing"

	"menu-builder-api/menuerrors"
	"menu-builder-api/models"
)

func TestReorderSections(t *testing.T) {
	s := NewStore(&models.MenuDocument{})
	for _, name := range []string{"A", "B", "C"} {
		if _, err := s.AddSection(name, models.SectionTypeCustom, []string{"X"}, nil); err != nil {
			t.Fatalf("AddSection %s: %v", name, err)
		}
	}

	if err := s.ReorderSections(0, 2); err != nil {
		t.Fatalf("ReorderSections: %v", err)
	}
	var names []string
	for _, sec := range s.Document().Sections {
		names = append(names, sec.Name)
	}
	if !reflect.DeepEqual(names, []string{"B", "C", "A"}) {
		t.Fatalf("section order = %v", names)
	}
}

func TestReorderNoOpOnEqualIndexes(t *testing.T) {
	s, id := newTestStore(t)
	addBurger(t, s, id)
	before := s.Document().Clone()

	if err := s.ReorderSections(0, 0); err != nil {
		t.Fatalf("ReorderSections: %v", err)
	}
	if err := s.ReorderColumns(id, 1, 1); err != nil {
		t.Fatalf("ReorderColumns: %v", err)
	}
	if err := s.ReorderItems(id, 0, 0); err != nil {
		t.Fatalf("ReorderItems: %v", err)
	}
	if !reflect.DeepEqual(before, s.Document().Clone()) {
		t.Fatal("equal-index reorders must not change the document")
	}
}

func TestReorderOutOfRange(t *testing.T) {
	s, id := newTestStore(t)
	addBurger(t, s, id)
	tests := []struct {
		name string
		op   func() error
	}{
		{name: "sections", op: func() error { return s.ReorderSections(0, 5) }},
		{name: "columns", op: func() error { return s.ReorderColumns(id, -1, 2) }},
		{name: "items", op: func() error { return s.ReorderItems(id, 0, 3) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op()
			var ve *menuerrors.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

// Moving Price to the front must reorder the title columns to match the new
// column positions while keeping the auto-included price column.
func TestReorderColumnsResortsTitleColumns(t *testing.T) {
	s, id := newTestStore(t)
	addBurger(t, s, id)

	if err := s.ReorderColumns(id, 2, 0); err != nil {
		t.Fatalf("ReorderColumns: %v", err)
	}
	sec := s.Document().SectionByID(id)
	if !reflect.DeepEqual(sec.Columns, []string{"Price", "Item Name", "Description"}) {
		t.Fatalf("columns = %v", sec.Columns)
	}
	if !reflect.DeepEqual(sec.TitleColumns, []string{"Price", "Item Name"}) {
		t.Fatalf("titleColumns = %v", sec.TitleColumns)
	}
}

func TestReorderColumnsPreservesColumnSet(t *testing.T) {
	s, id := newTestStore(t)
	before := append([]string(nil), s.Document().SectionByID(id).Columns...)

	if err := s.ReorderColumns(id, 0, 2); err != nil {
		t.Fatalf("ReorderColumns: %v", err)
	}
	after := s.Document().SectionByID(id).Columns
	if len(after) != len(before) {
		t.Fatalf("column count changed: %v -> %v", before, after)
	}
	for _, col := range before {
		found := false
		for _, c := range after {
			if c == col {
				found = true
			}
		}
		if !found {
			t.Fatalf("column %q lost in reorder", col)
		}
	}
}

// Item field order can drift from the schema (a rename keeps position but an
// older draft may interleave differently). Reordering must rebuild each item
// from the current column list, not splice keys positionally.
func TestReorderColumnsRebuildsDriftedItems(t *testing.T) {
	s, id := newTestStore(t)
	addBurger(t, s, id)
	// Drift: the new column's field lands at the end of the item while it
	// sits in the middle of nothing — then reorder and check realignment.
	if err := s.AddColumn(id, "Calories"); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	if err := s.UpdateItem(id, 0, "Calories", "650"); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	// Move Calories between Item Name and Description
	if err := s.ReorderColumns(id, 3, 1); err != nil {
		t.Fatalf("ReorderColumns: %v", err)
	}
	sec := s.Document().SectionByID(id)
	wantCols := []string{"Item Name", "Calories", "Description", "Price"}
	if !reflect.DeepEqual(sec.Columns, wantCols) {
		t.Fatalf("columns = %v", sec.Columns)
	}
	item := sec.Items[0]
	var fieldOrder []string
	for _, f := range item.Fields {
		fieldOrder = append(fieldOrder, f.Column)
	}
	if !reflect.DeepEqual(fieldOrder, wantCols) {
		t.Fatalf("item field order = %v, want %v", fieldOrder, wantCols)
	}
	if got := item.Value("Calories"); got != "650" {
		t.Fatalf("value lost in rebuild, got %q", got)
	}
	if got := item.Value("Price"); got != "$9.99" {
		t.Fatalf("value lost in rebuild, got %q", got)
	}
}

func TestReorderItems(t *testing.T) {
	s, id := newTestStore(t)
	for _, name := range []string{"Burger", "Fries", "Shake"} {
		if _, err := s.AddItem(id, map[string]string{"Item Name": name}); err != nil {
			t.Fatalf("AddItem %s: %v", name, err)
		}
	}

	if err := s.ReorderItems(id, 2, 0); err != nil {
		t.Fatalf("ReorderItems: %v", err)
	}
	var names []string
	for _, item := range s.Document().SectionByID(id).Items {
		names = append(names, item.Value("Item Name"))
	}
	if !reflect.DeepEqual(names, []string{"Shake", "Burger", "Fries"}) {
		t.Fatalf("item order = %v", names)
	}
}
