// Package document implements the in-memory menu document store and its
// structural invariants. Every operation is synchronous and atomic: it either
// applies fully or rejects with a typed error, leaving prior state untouched.
package document

import (
	"sort"
	"strconv"
	"strings"

	"menu-builder-api/menuerrors"
	"menu-builder-api/models"
)

// Store owns one MenuDocument and is the only mutation path for it
type Store struct {
	doc *models.MenuDocument
}

// NewStore wraps an existing document. Invariants are normalized on load so
// a document from an older or corrupted draft still satisfies them.
func NewStore(doc *models.MenuDocument) *Store {
	s := &Store{doc: doc}
	for i := range doc.Sections {
		normalizeTitleColumns(&doc.Sections[i])
	}
	if max := maxSectionID(doc.Sections); doc.SectionCounter < max {
		doc.SectionCounter = max
	}
	return s
}

// Document returns the underlying document. Callers must treat it as
// read-only; all mutation goes through Store methods.
func (s *Store) Document() *models.MenuDocument {
	return s.doc
}

// SectionPatch carries the updatable section fields; nil means leave as-is
type SectionPatch struct {
	Name         *string
	Type         *string
	TitleColumns []string
}

// AddSection creates a section and returns its assigned id
func (s *Store) AddSection(name, sectionType string, columns, titleColumns []string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, menuerrors.Validationf("section name must not be empty")
	}
	if len(columns) == 0 {
		return 0, menuerrors.Validationf("section must have at least one column")
	}
	if !models.IsValidSectionType(sectionType) {
		return 0, menuerrors.Validationf("unknown section type %q", sectionType)
	}
	if err := validateColumns(columns); err != nil {
		return 0, err
	}
	if err := validateSubset(titleColumns, columns); err != nil {
		return 0, err
	}

	s.doc.SectionCounter++
	section := models.Section{
		ID:           s.doc.SectionCounter,
		Name:         name,
		Type:         sectionType,
		Columns:      append([]string(nil), columns...),
		TitleColumns: append([]string(nil), titleColumns...),
		Items:        []models.Item{},
	}
	normalizeTitleColumns(&section)
	s.doc.Sections = append(s.doc.Sections, section)
	return section.ID, nil
}

// UpdateSection applies a patch to an existing section
func (s *Store) UpdateSection(id int, patch SectionPatch) error {
	sec := s.doc.SectionByID(id)
	if sec == nil {
		return sectionNotFound(id)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return menuerrors.Validationf("section name must not be empty")
	}
	if patch.Type != nil && !models.IsValidSectionType(*patch.Type) {
		return menuerrors.Validationf("unknown section type %q", *patch.Type)
	}
	if patch.TitleColumns != nil {
		if err := validateSubset(patch.TitleColumns, sec.Columns); err != nil {
			return err
		}
	}

	if patch.Name != nil {
		sec.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Type != nil {
		sec.Type = *patch.Type
	}
	if patch.TitleColumns != nil {
		sec.TitleColumns = append([]string(nil), patch.TitleColumns...)
	}
	normalizeTitleColumns(sec)
	return nil
}

// DeleteSection removes a section. Deleting an absent id is not an error.
func (s *Store) DeleteSection(id int) error {
	for i := range s.doc.Sections {
		if s.doc.Sections[i].ID == id {
			s.doc.Sections = append(s.doc.Sections[:i], s.doc.Sections[i+1:]...)
			return nil
		}
	}
	return nil
}

// AddItem appends an item to a section. Fields default to "" for every
// current column; values fills in any matching columns.
func (s *Store) AddItem(sectionID int, values map[string]string) (int, error) {
	sec := s.doc.SectionByID(sectionID)
	if sec == nil {
		return 0, sectionNotFound(sectionID)
	}
	item := models.Item{Fields: make([]models.Field, 0, len(sec.Columns))}
	for _, col := range sec.Columns {
		item.Fields = append(item.Fields, models.Field{Column: col, Value: values[col]})
	}
	sec.Items = append(sec.Items, item)
	normalizeTitleColumns(sec)
	return len(sec.Items) - 1, nil
}

// UpdateItem sets one field of one item
func (s *Store) UpdateItem(sectionID, index int, column, value string) error {
	sec := s.doc.SectionByID(sectionID)
	if sec == nil {
		return sectionNotFound(sectionID)
	}
	if index < 0 || index >= len(sec.Items) {
		return itemNotFound(index)
	}
	if !containsColumn(sec.Columns, column) {
		return menuerrors.Validationf("unknown column %q", column)
	}
	sec.Items[index].Set(column, value)
	normalizeTitleColumns(sec)
	return nil
}

// DeleteItem removes one item from a section
func (s *Store) DeleteItem(sectionID, index int) error {
	sec := s.doc.SectionByID(sectionID)
	if sec == nil {
		return sectionNotFound(sectionID)
	}
	if index < 0 || index >= len(sec.Items) {
		return itemNotFound(index)
	}
	sec.Items = append(sec.Items[:index], sec.Items[index+1:]...)
	normalizeTitleColumns(sec)
	return nil
}

// DuplicateItem inserts a copy of an item immediately after the original,
// preserving all field values. Returns the index of the copy.
func (s *Store) DuplicateItem(sectionID, index int) (int, error) {
	sec := s.doc.SectionByID(sectionID)
	if sec == nil {
		return 0, sectionNotFound(sectionID)
	}
	if index < 0 || index >= len(sec.Items) {
		return 0, itemNotFound(index)
	}
	dup := sec.Items[index].Clone()
	sec.Items = append(sec.Items, models.Item{})
	copy(sec.Items[index+2:], sec.Items[index+1:])
	sec.Items[index+1] = dup
	return index + 1, nil
}

// AddColumn appends a column to a section's schema and back-fills the new
// field as "" on every existing item
func (s *Store) AddColumn(sectionID int, name string) error {
	sec := s.doc.SectionByID(sectionID)
	if sec == nil {
		return sectionNotFound(sectionID)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return menuerrors.Validationf("column name must not be empty")
	}
	if containsColumn(sec.Columns, name) {
		return &menuerrors.DuplicateNameError{Name: name}
	}
	sec.Columns = append(sec.Columns, name)
	for i := range sec.Items {
		sec.Items[i].Set(name, "")
	}
	normalizeTitleColumns(sec)
	return nil
}

// RenameColumn renames a column, moving every item's value to the new key
func (s *Store) RenameColumn(sectionID int, oldName, newName string) error {
	sec := s.doc.SectionByID(sectionID)
	if sec == nil {
		return sectionNotFound(sectionID)
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return menuerrors.Validationf("column name must not be empty")
	}
	if oldName == newName {
		return nil
	}
	if !containsColumn(sec.Columns, oldName) {
		return &menuerrors.NotFoundError{Resource: "column", ID: oldName}
	}
	if containsColumn(sec.Columns, newName) {
		return &menuerrors.DuplicateNameError{Name: newName}
	}
	for i, col := range sec.Columns {
		if col == oldName {
			sec.Columns[i] = newName
		}
	}
	for i, col := range sec.TitleColumns {
		if col == oldName {
			sec.TitleColumns[i] = newName
		}
	}
	for i := range sec.Items {
		sec.Items[i].Rename(oldName, newName)
	}
	normalizeTitleColumns(sec)
	return nil
}

// DeleteColumn removes a column and its field from every item. The last
// remaining column of a section cannot be deleted.
func (s *Store) DeleteColumn(sectionID int, name string) error {
	sec := s.doc.SectionByID(sectionID)
	if sec == nil {
		return sectionNotFound(sectionID)
	}
	if !containsColumn(sec.Columns, name) {
		return &menuerrors.NotFoundError{Resource: "column", ID: name}
	}
	if len(sec.Columns) == 1 {
		return &menuerrors.LastColumnError{Section: sec.Name}
	}
	for i, col := range sec.Columns {
		if col == name {
			sec.Columns = append(sec.Columns[:i], sec.Columns[i+1:]...)
			break
		}
	}
	for i, col := range sec.TitleColumns {
		if col == name {
			sec.TitleColumns = append(sec.TitleColumns[:i], sec.TitleColumns[i+1:]...)
			break
		}
	}
	for i := range sec.Items {
		sec.Items[i].Remove(name)
	}
	normalizeTitleColumns(sec)
	return nil
}

// ── invariant helpers ───────────────────────────────────────────────────────

// normalizeTitleColumns re-establishes the title-column invariants for one
// section: titleColumns is a subset of columns, any populated price-named
// column is auto-included, and the ordering matches the column ordering.
func normalizeTitleColumns(sec *models.Section) {
	pos := make(map[string]int, len(sec.Columns))
	for i, col := range sec.Columns {
		pos[col] = i
	}

	seen := make(map[string]bool, len(sec.TitleColumns))
	keep := make([]string, 0, len(sec.TitleColumns))
	for _, col := range sec.TitleColumns {
		if _, ok := pos[col]; ok && !seen[col] {
			keep = append(keep, col)
			seen[col] = true
		}
	}
	for _, col := range sec.Columns {
		if models.IsPriceColumn(col) && !seen[col] && columnPopulated(sec, col) {
			keep = append(keep, col)
			seen[col] = true
		}
	}
	sort.SliceStable(keep, func(i, j int) bool {
		return pos[keep[i]] < pos[keep[j]]
	})
	sec.TitleColumns = keep
}

// columnPopulated reports whether any item carries a non-blank value for col
func columnPopulated(sec *models.Section, col string) bool {
	for i := range sec.Items {
		if strings.TrimSpace(sec.Items[i].Value(col)) != "" {
			return true
		}
	}
	return false
}

func validateColumns(columns []string) error {
	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if strings.TrimSpace(col) == "" {
			return menuerrors.Validationf("column names must not be empty")
		}
		if seen[col] {
			return menuerrors.Validationf("column names must be unique, got %q twice", col)
		}
		seen[col] = true
	}
	return nil
}

func validateSubset(titleColumns, columns []string) error {
	for _, col := range titleColumns {
		if !containsColumn(columns, col) {
			return menuerrors.Validationf("title column %q is not a column", col)
		}
	}
	return nil
}

func containsColumn(columns []string, name string) bool {
	for _, col := range columns {
		if col == name {
			return true
		}
	}
	return false
}

func maxSectionID(sections []models.Section) int {
	max := 0
	for _, s := range sections {
		if s.ID > max {
			max = s.ID
		}
	}
	return max
}

func sectionNotFound(id int) error {
	return &menuerrors.NotFoundError{Resource: "section", ID: strconv.Itoa(id)}
}

func itemNotFound(index int) error {
	return &menuerrors.NotFoundError{Resource: "item", ID: strconv.Itoa(index)}
}
