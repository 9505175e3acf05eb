package document

import (
	"errors"
	"reflect"
	"testing"

	"menu-builder-api/menuerrors"
	"menu-builder-api/models"
)

func newTestStore(t *testing.T) (*Store, int) {
	t.Helper()
	doc := &models.MenuDocument{ID: "m1", Name: "Joe's", Status: models.StatusDraft}
	s := NewStore(doc)
	id, err := s.AddSection("Food Items", models.SectionTypeFood,
		[]string{"Item Name", "Description", "Price"}, []string{"Item Name"})
	if err != nil {
		t.Fatalf("AddSection: %v", err)
	}
	return s, id
}

func addBurger(t *testing.T, s *Store, sectionID int) {
	t.Helper()
	_, err := s.AddItem(sectionID, map[string]string{
		"Item Name":   "Burger",
		"Description": "Beef patty",
		"Price":       "$9.99",
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
}

func TestAddSectionValidation(t *testing.T) {
	tests := []struct {
		name        string
		sectionName string
		sectionType string
		columns     []string
		titleCols   []string
	}{
		{name: "empty name", sectionName: "", sectionType: models.SectionTypeFood, columns: []string{"A"}},
		{name: "blank name", sectionName: "   ", sectionType: models.SectionTypeFood, columns: []string{"A"}},
		{name: "no columns", sectionName: "Drinks", sectionType: models.SectionTypeDrinks, columns: nil},
		{name: "empty column name", sectionName: "Drinks", sectionType: models.SectionTypeDrinks, columns: []string{"A", ""}},
		{name: "duplicate columns", sectionName: "Drinks", sectionType: models.SectionTypeDrinks, columns: []string{"A", "A"}},
		{name: "bad type", sectionName: "Drinks", sectionType: "bogus", columns: []string{"A"}},
		{name: "title not a column", sectionName: "Drinks", sectionType: models.SectionTypeDrinks, columns: []string{"A"}, titleCols: []string{"B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(&models.MenuDocument{})
			_, err := s.AddSection(tt.sectionName, tt.sectionType, tt.columns, tt.titleCols)
			var ve *menuerrors.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(s.Document().Sections) != 0 {
				t.Fatal("rejected AddSection must not mutate the document")
			}
		})
	}
}

func TestSectionIDsMonotonic(t *testing.T) {
	s := NewStore(&models.MenuDocument{})
	id1, _ := s.AddSection("A", models.SectionTypeCustom, []string{"X"}, nil)
	id2, _ := s.AddSection("B", models.SectionTypeCustom, []string{"X"}, nil)
	if err := s.DeleteSection(id2); err != nil {
		t.Fatalf("DeleteSection: %v", err)
	}
	id3, _ := s.AddSection("C", models.SectionTypeCustom, []string{"X"}, nil)
	if id1 != 1 || id2 != 2 || id3 != 3 {
		t.Fatalf("ids must be monotonic and never reused, got %d %d %d", id1, id2, id3)
	}
}

func TestDeleteSectionIdempotent(t *testing.T) {
	s, id := newTestStore(t)
	if err := s.DeleteSection(id); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := s.DeleteSection(id); err != nil {
		t.Fatalf("second delete must be a no-op, got %v", err)
	}
}

func TestPriceColumnAutoIncluded(t *testing.T) {
	s, id := newTestStore(t)
	sec := s.Document().SectionByID(id)
	// No item populates Price yet, so the explicit selection stands alone
	if got := sec.TitleColumns; !reflect.DeepEqual(got, []string{"Item Name"}) {
		t.Fatalf("before populating price: titleColumns = %v", got)
	}

	addBurger(t, s, id)
	if got := sec.TitleColumns; !reflect.DeepEqual(got, []string{"Item Name", "Price"}) {
		t.Fatalf("populated price column must be auto-included, got %v", got)
	}

	// Once included, the selection is sticky: the invariant only requires
	// that a populated price column is never missing
	if err := s.UpdateItem(id, 0, "Price", "  "); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if got := sec.TitleColumns; !reflect.DeepEqual(got, []string{"Item Name", "Price"}) {
		t.Fatalf("titleColumns after blanking price = %v", got)
	}
}

func TestTitleColumnsOrderTracksColumns(t *testing.T) {
	s, id := newTestStore(t)
	addBurger(t, s, id)
	err := s.UpdateSection(id, SectionPatch{TitleColumns: []string{"Price", "Item Name"}})
	if err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}
	sec := s.Document().SectionByID(id)
	// Selection order is normalized to column order
	if got := sec.TitleColumns; !reflect.DeepEqual(got, []string{"Item Name", "Price"}) {
		t.Fatalf("titleColumns must follow column order, got %v", got)
	}
}

func TestAddItemDefaultsAllColumns(t *testing.T) {
	s, id := newTestStore(t)
	idx, err := s.AddItem(id, nil)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	item := s.Document().SectionByID(id).Items[idx]
	if len(item.Fields) != 3 {
		t.Fatalf("expected a field per column, got %d", len(item.Fields))
	}
	for _, f := range item.Fields {
		if f.Value != "" {
			t.Fatalf("field %q must default to empty, got %q", f.Column, f.Value)
		}
	}
}

func TestDuplicateItemInsertsAfterOriginal(t *testing.T) {
	s, id := newTestStore(t)
	addBurger(t, s, id)
	if _, err := s.AddItem(id, map[string]string{"Item Name": "Fries"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	idx, err := s.DuplicateItem(id, 0)
	if err != nil {
		t.Fatalf("DuplicateItem: %v", err)
	}
	if idx != 1 {
		t.Fatalf("copy must land right after the original, got index %d", idx)
	}
	sec := s.Document().SectionByID(id)
	if len(sec.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(sec.Items))
	}
	if got := sec.Items[1].Value("Item Name"); got != "Burger" {
		t.Fatalf("copy must preserve values, got %q", got)
	}
	if got := sec.Items[2].Value("Item Name"); got != "Fries" {
		t.Fatalf("later items must shift, got %q", got)
	}

	// The copy is independent of the original
	if err := s.UpdateItem(id, 1, "Item Name", "Cheeseburger"); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if got := sec.Items[0].Value("Item Name"); got != "Burger" {
		t.Fatalf("editing the copy must not touch the original, got %q", got)
	}
}

func TestAddColumnBackfillsItems(t *testing.T) {
	s, id := newTestStore(t)
	addBurger(t, s, id)
	if err := s.AddColumn(id, "Calories"); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	item := s.Document().SectionByID(id).Items[0]
	v, ok := item.Get("Calories")
	if !ok || v != "" {
		t.Fatalf("new column must be back-filled empty, got %q ok=%v", v, ok)
	}
}

func TestAddColumnDuplicateRejected(t *testing.T) {
	s, id := newTestStore(t)
	err := s.AddColumn(id, "Price")
	var dup *menuerrors.DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateNameError, got %v", err)
	}
	if got := len(s.Document().SectionByID(id).Columns); got != 3 {
		t.Fatalf("rejected add must not mutate columns, got %d", got)
	}
}

func TestRenameColumn(t *testing.T) {
	s, id := newTestStore(t)
	addBurger(t, s, id)

	t.Run("collision rejected", func(t *testing.T) {
		err := s.RenameColumn(id, "Item Name", "Price")
		var dup *menuerrors.DuplicateNameError
		if !errors.As(err, &dup) {
			t.Fatalf("expected DuplicateNameError, got %v", err)
		}
		if got := s.Document().SectionByID(id).Items[0].Value("Item Name"); got != "Burger" {
			t.Fatalf("rejected rename must not touch items, got %q", got)
		}
	})

	t.Run("unknown column", func(t *testing.T) {
		err := s.RenameColumn(id, "Nope", "Whatever")
		if !menuerrors.IsNotFound(err) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})

	t.Run("successful rename moves values", func(t *testing.T) {
		if err := s.RenameColumn(id, "Item Name", "Dish"); err != nil {
			t.Fatalf("RenameColumn: %v", err)
		}
		sec := s.Document().SectionByID(id)
		if !reflect.DeepEqual(sec.Columns, []string{"Dish", "Description", "Price"}) {
			t.Fatalf("columns = %v", sec.Columns)
		}
		item := sec.Items[0]
		if got := item.Value("Dish"); got != "Burger" {
			t.Fatalf("value must survive under the new key, got %q", got)
		}
		if _, ok := item.Get("Item Name"); ok {
			t.Fatal("old key must be gone")
		}
		// Title selection follows the rename
		if !reflect.DeepEqual(sec.TitleColumns, []string{"Dish", "Price"}) {
			t.Fatalf("titleColumns = %v", sec.TitleColumns)
		}
	})
}

func TestDeleteColumn(t *testing.T) {
	s, id := newTestStore(t)
	addBurger(t, s, id)

	if err := s.DeleteColumn(id, "Description"); err != nil {
		t.Fatalf("DeleteColumn: %v", err)
	}
	sec := s.Document().SectionByID(id)
	if !reflect.DeepEqual(sec.Columns, []string{"Item Name", "Price"}) {
		t.Fatalf("columns = %v", sec.Columns)
	}
	if _, ok := sec.Items[0].Get("Description"); ok {
		t.Fatal("deleted column must be removed from every item")
	}
}

func TestDeleteLastColumnRejected(t *testing.T) {
	s := NewStore(&models.MenuDocument{})
	id, _ := s.AddSection("Solo", models.SectionTypeCustom, []string{"Only"}, nil)
	if _, err := s.AddItem(id, map[string]string{"Only": "x"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	before := s.Document().SectionByID(id).Clone()

	err := s.DeleteColumn(id, "Only")
	var last *menuerrors.LastColumnError
	if !errors.As(err, &last) {
		t.Fatalf("expected LastColumnError, got %v", err)
	}
	after := s.Document().SectionByID(id)
	if !reflect.DeepEqual(before, after.Clone()) {
		t.Fatal("rejected delete must leave the section unchanged")
	}
}

func TestUnknownSectionErrors(t *testing.T) {
	s := NewStore(&models.MenuDocument{})
	ops := map[string]func() error{
		"UpdateSection": func() error { return s.UpdateSection(99, SectionPatch{}) },
		"AddItem":       func() error { _, err := s.AddItem(99, nil); return err },
		"UpdateItem":    func() error { return s.UpdateItem(99, 0, "A", "v") },
		"DeleteItem":    func() error { return s.DeleteItem(99, 0) },
		"DuplicateItem": func() error { _, err := s.DuplicateItem(99, 0); return err },
		"AddColumn":     func() error { return s.AddColumn(99, "A") },
		"RenameColumn":  func() error { return s.RenameColumn(99, "A", "B") },
		"DeleteColumn":  func() error { return s.DeleteColumn(99, "A") },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			if err := op(); !menuerrors.IsNotFound(err) {
				t.Fatalf("expected NotFoundError, got %v", err)
			}
		})
	}
}

func TestRepairDuplicateSectionIDs(t *testing.T) {
	doc := &models.MenuDocument{
		Sections: []models.Section{
			{ID: 7, Name: "A", Type: models.SectionTypeCustom, Columns: []string{"X"}},
			{ID: 7, Name: "B", Type: models.SectionTypeCustom, Columns: []string{"X"}},
			{ID: 2, Name: "C", Type: models.SectionTypeCustom, Columns: []string{"X"}},
		},
		SectionCounter: 7,
	}
	s := NewStore(doc)

	if !s.RepairDuplicateSectionIDs() {
		t.Fatal("expected repair to fire on duplicate ids")
	}
	wantIDs := []int{1, 2, 3}
	for i, sec := range doc.Sections {
		if sec.ID != wantIDs[i] {
			t.Fatalf("section %d: id = %d, want %d", i, sec.ID, wantIDs[i])
		}
	}
	if doc.SectionCounter != 3 {
		t.Fatalf("counter = %d, want 3", doc.SectionCounter)
	}

	// Idempotent: a second run changes nothing
	if s.RepairDuplicateSectionIDs() {
		t.Fatal("second repair must be a no-op")
	}
	for i, sec := range doc.Sections {
		if sec.ID != wantIDs[i] {
			t.Fatalf("after second run, section %d: id = %d", i, sec.ID)
		}
	}
}

func TestRepairLeavesHealthyDocumentAlone(t *testing.T) {
	s, _ := newTestStore(t)
	if s.RepairDuplicateSectionIDs() {
		t.Fatal("repair must not fire without duplicates")
	}
}
