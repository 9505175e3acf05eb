package document

import (
	"menu-builder-api/menuerrors"
	"menu-builder-api/models"
)

// ReorderSections moves one section within the document's section list.
// Equal indexes are a no-op.
func (s *Store) ReorderSections(oldIndex, newIndex int) error {
	if oldIndex == newIndex {
		return nil
	}
	n := len(s.doc.Sections)
	if oldIndex < 0 || oldIndex >= n || newIndex < 0 || newIndex >= n {
		return menuerrors.Validationf("section index out of range (%d -> %d of %d)", oldIndex, newIndex, n)
	}
	s.doc.Sections = moveSlice(s.doc.Sections, oldIndex, newIndex)
	return nil
}

// ReorderColumns moves a column within a section's schema, re-sorts the
// title columns to match the new positions and rebuilds every item so its
// field order follows the column order.
func (s *Store) ReorderColumns(sectionID, oldIndex, newIndex int) error {
	sec := s.doc.SectionByID(sectionID)
	if sec == nil {
		return sectionNotFound(sectionID)
	}
	if oldIndex == newIndex {
		return nil
	}
	n := len(sec.Columns)
	if oldIndex < 0 || oldIndex >= n || newIndex < 0 || newIndex >= n {
		return menuerrors.Validationf("column index out of range (%d -> %d of %d)", oldIndex, newIndex, n)
	}
	sec.Columns = moveSlice(sec.Columns, oldIndex, newIndex)
	normalizeTitleColumns(sec)

	// Rebuild each item from the current column list instead of splicing
	// keys positionally; an item's field order may have drifted from the
	// schema (e.g. after a column add), so a positional swap would corrupt it.
	for i := range sec.Items {
		rebuilt := make([]models.Field, 0, len(sec.Columns))
		for _, col := range sec.Columns {
			rebuilt = append(rebuilt, models.Field{Column: col, Value: sec.Items[i].Value(col)})
		}
		sec.Items[i].Fields = rebuilt
	}
	return nil
}

// ReorderItems moves one item within a section. Equal indexes are a no-op.
func (s *Store) ReorderItems(sectionID, oldIndex, newIndex int) error {
	sec := s.doc.SectionByID(sectionID)
	if sec == nil {
		return sectionNotFound(sectionID)
	}
	if oldIndex == newIndex {
		return nil
	}
	n := len(sec.Items)
	if oldIndex < 0 || oldIndex >= n || newIndex < 0 || newIndex >= n {
		return menuerrors.Validationf("item index out of range (%d -> %d of %d)", oldIndex, newIndex, n)
	}
	sec.Items = moveSlice(sec.Items, oldIndex, newIndex)
	return nil
}

// moveSlice moves the element at from to position to, shifting the rest
func moveSlice[T any](s []T, from, to int) []T {
	elem := s[from]
	s = append(s[:from], s[from+1:]...)
	s = append(s, elem)
	copy(s[to+1:], s[to:len(s)-1])
	s[to] = elem
	return s
}
