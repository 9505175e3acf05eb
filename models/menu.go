package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MenuStatus represents the lifecycle state of a menu document
type MenuStatus string

const (
	StatusDraft     MenuStatus = "draft"
	StatusPublished MenuStatus = "published"
)

// SectionType keys for the built-in section templates
const (
	SectionTypeFood     = "food"
	SectionTypeDrinks   = "drinks"
	SectionTypeWine     = "wine"
	SectionTypeDesserts = "desserts"
	SectionTypeSpecials = "specials"
	SectionTypeCustom   = "custom"
)

// ValidSectionTypes contains all accepted section template keys.
var ValidSectionTypes = []string{
	SectionTypeFood, SectionTypeDrinks, SectionTypeWine,
	SectionTypeDesserts, SectionTypeSpecials, SectionTypeCustom,
}

// IsValidSectionType checks if a section type key is valid
func IsValidSectionType(t string) bool {
	for _, v := range ValidSectionTypes {
		if v == t {
			return true
		}
	}
	return false
}

// StyleSettings holds look-and-feel settings for a menu. The core copies
// these verbatim; interpreting them is a rendering concern.
type StyleSettings struct {
	Logo       string `json:"logo,omitempty"`
	Background string `json:"background,omitempty"`
	Font       string `json:"font,omitempty"`
	Palette    string `json:"palette,omitempty"`
	Navigation string `json:"navigation,omitempty"`
}

// Field is a single named value on an item. Field order within an item is
// significant: it must track the owning section's column order.
type Field struct {
	Column string
	Value  string
}

// Item is an ordered record of column → value. It serializes as a JSON
// object whose key order follows the field order.
type Item struct {
	Fields []Field
}

// Get returns the value stored under a column, if present
func (it *Item) Get(column string) (string, bool) {
	for _, f := range it.Fields {
		if f.Column == column {
			return f.Value, true
		}
	}
	return "", false
}

// Value returns the value under a column, or "" if absent
func (it *Item) Value(column string) string {
	v, _ := it.Get(column)
	return v
}

// Set updates the value under a column, appending the field if absent
func (it *Item) Set(column, value string) {
	for i, f := range it.Fields {
		if f.Column == column {
			it.Fields[i].Value = value
			return
		}
	}
	it.Fields = append(it.Fields, Field{Column: column, Value: value})
}

// Remove deletes the field stored under a column
func (it *Item) Remove(column string) {
	for i, f := range it.Fields {
		if f.Column == column {
			it.Fields = append(it.Fields[:i], it.Fields[i+1:]...)
			return
		}
	}
}

// Rename moves a field's value to a new column name, keeping its position
func (it *Item) Rename(oldColumn, newColumn string) {
	for i, f := range it.Fields {
		if f.Column == oldColumn {
			it.Fields[i].Column = newColumn
			return
		}
	}
}

// Clone returns a deep copy of the item
func (it Item) Clone() Item {
	fields := make([]Field, len(it.Fields))
	copy(fields, it.Fields)
	return Item{Fields: fields}
}

// MarshalJSON writes the item as a JSON object with keys in field order
func (it Item) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range it.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Column)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object preserving its source key order
func (it *Item) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("item: expected JSON object, got %v", tok)
	}
	var fields []Field
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("item: expected string key, got %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("item: field %q: %w", key, err)
		}
		fields = append(fields, Field{Column: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	it.Fields = fields
	return nil
}

// Section is a named, typed group of menu items sharing a column schema
type Section struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Columns      []string `json:"columns"`
	TitleColumns []string `json:"titleColumns"`
	Items        []Item   `json:"items"`
}

// Clone returns a deep copy of the section
func (s Section) Clone() Section {
	out := s
	out.Columns = append([]string(nil), s.Columns...)
	out.TitleColumns = append([]string(nil), s.TitleColumns...)
	out.Items = make([]Item, len(s.Items))
	for i, it := range s.Items {
		out.Items[i] = it.Clone()
	}
	return out
}

// IsPriceColumn reports whether a column name counts as a price column
func IsPriceColumn(name string) bool {
	return strings.Contains(strings.ToLower(name), "price")
}

// IsDescriptionColumn reports whether a column name counts as a description column
func IsDescriptionColumn(name string) bool {
	return strings.Contains(strings.ToLower(name), "description")
}

// MenuDocument is the in-memory editing representation of one menu
type MenuDocument struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Sections          []Section     `json:"sections"`
	SectionCounter    int           `json:"sectionCounter"`
	Style             StyleSettings `json:"style"`
	PublishedSlug     string        `json:"publishedSlug,omitempty"`
	PublishedTitle    string        `json:"publishedTitle,omitempty"`
	PublishedSubtitle string        `json:"publishedSubtitle,omitempty"`
	Status            MenuStatus    `json:"status"`
}

// Clone returns a deep copy of the document
func (d *MenuDocument) Clone() *MenuDocument {
	out := *d
	out.Sections = make([]Section, len(d.Sections))
	for i, s := range d.Sections {
		out.Sections[i] = s.Clone()
	}
	return &out
}

// SectionByID returns the section with the given id, or nil
func (d *MenuDocument) SectionByID(id int) *Section {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i]
		}
	}
	return nil
}

// PublishedMenu is a published snapshot of a menu, exposed at a slug
type PublishedMenu struct {
	MenuID      string        `json:"menu_id"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Subtitle    string        `json:"subtitle"`
	Sections    []Section     `json:"sections"`
	Style       StyleSettings `json:"style"`
	PublishedAt time.Time     `json:"published_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
