// Package preview projects a menu document into surface-agnostic preview
// records. Project is pure: it reads the document and allocates fresh
// output, so every rendering surface refreshed from one call sees the same
// snapshot.
package preview

import (
	"strings"

	"menu-builder-api/models"
)

// PlaceholderText is the sentinel shown for items with no content
const PlaceholderText = "Empty Item"

// DataCell is one visible (non-title, non-description) field of an item
type DataCell struct {
	Value   string `json:"value"`
	IsPrice bool   `json:"is_price"`
}

// ItemPreview is the projected representation of one item
type ItemPreview struct {
	TitleText   string     `json:"title_text"`
	TitlePrice  string     `json:"title_price"`
	Description string     `json:"description"`
	DataRow     []DataCell `json:"data_row"`
	Placeholder bool       `json:"placeholder"`
}

// SectionPreview is the projected representation of one section
type SectionPreview struct {
	Name  string        `json:"name"`
	Items []ItemPreview `json:"items"`
}

// Project maps a document to its preview records
func Project(doc *models.MenuDocument) []SectionPreview {
	out := make([]SectionPreview, 0, len(doc.Sections))
	for i := range doc.Sections {
		sec := &doc.Sections[i]
		sp := SectionPreview{
			Name:  sec.Name,
			Items: make([]ItemPreview, 0, len(sec.Items)),
		}
		titleCols := effectiveTitleColumns(sec)
		descCol := descriptionColumn(sec)
		visibleCols := visibleColumns(sec, titleCols, descCol)
		for j := range sec.Items {
			sp.Items = append(sp.Items, projectItem(&sec.Items[j], titleCols, descCol, visibleCols))
		}
		out = append(out, sp)
	}
	return out
}

// effectiveTitleColumns resolves the title columns used for projection:
// the section's selection (or its first column when nothing is selected),
// with any unselected price-named column appended.
func effectiveTitleColumns(sec *models.Section) []string {
	cols := append([]string(nil), sec.TitleColumns...)
	if len(cols) == 0 && len(sec.Columns) > 0 {
		cols = append(cols, sec.Columns[0])
	}
	selected := make(map[string]bool, len(cols))
	for _, c := range cols {
		selected[c] = true
	}
	for _, c := range sec.Columns {
		if models.IsPriceColumn(c) && !selected[c] {
			cols = append(cols, c)
			selected[c] = true
		}
	}
	return cols
}

// descriptionColumn finds the first description-named column, or ""
func descriptionColumn(sec *models.Section) string {
	for _, c := range sec.Columns {
		if models.IsDescriptionColumn(c) {
			return c
		}
	}
	return ""
}

// visibleColumns is the column list minus title and description columns,
// preserving schema order
func visibleColumns(sec *models.Section, titleCols []string, descCol string) []string {
	title := make(map[string]bool, len(titleCols))
	for _, c := range titleCols {
		title[c] = true
	}
	out := make([]string, 0, len(sec.Columns))
	for _, c := range sec.Columns {
		if title[c] || c == descCol {
			continue
		}
		out = append(out, c)
	}
	return out
}

func projectItem(item *models.Item, titleCols []string, descCol string, visibleCols []string) ItemPreview {
	var titleParts, priceParts []string
	for _, col := range titleCols {
		val := item.Value(col)
		if strings.TrimSpace(val) == "" {
			continue
		}
		if models.IsPriceColumn(col) {
			priceParts = append(priceParts, val)
		} else {
			titleParts = append(titleParts, val)
		}
	}

	p := ItemPreview{
		TitleText:  strings.Join(titleParts, " "),
		TitlePrice: strings.Join(priceParts, " "),
	}
	if descCol != "" {
		p.Description = item.Value(descCol)
	}

	hasData := false
	row := make([]DataCell, 0, len(visibleCols))
	for _, col := range visibleCols {
		val := item.Value(col)
		if strings.TrimSpace(val) != "" {
			hasData = true
		}
		row = append(row, DataCell{Value: val, IsPrice: models.IsPriceColumn(col)})
	}

	if p.TitleText == "" && p.TitlePrice == "" && strings.TrimSpace(p.Description) == "" && !hasData {
		return ItemPreview{TitleText: PlaceholderText, Placeholder: true}
	}
	p.DataRow = row
	return p
}
