package document

import (
	"encoding/json"
	"time"

	"menu-builder-api/menuerrors"
	"menu-builder-api/models"
)

// ExportVersion is the file format version written by Export
const ExportVersion = "1.0"

// ExportFile is the on-disk interchange format for menu sections
type ExportFile struct {
	Sections   []models.Section `json:"sections"`
	ExportDate time.Time        `json:"exportDate"`
	Version    string           `json:"version"`
}

// Export serializes the document's sections to the interchange format
func (s *Store) Export(now time.Time) ([]byte, error) {
	file := ExportFile{
		Sections:   make([]models.Section, len(s.doc.Sections)),
		ExportDate: now.UTC(),
		Version:    ExportVersion,
	}
	for i, sec := range s.doc.Sections {
		file.Sections[i] = sec.Clone()
	}
	return json.Marshal(file)
}

// Import replaces the document's sections from an exported file. The input
// is rejected, with no mutation, unless "sections" is present and is a JSON
// array that parses cleanly. Section ids are repaired after import so a
// hand-edited file cannot introduce collisions.
func (s *Store) Import(data []byte) error {
	var probe struct {
		Sections json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return menuerrors.Validationf("import: not a JSON object: %v", err)
	}
	if len(probe.Sections) == 0 {
		return menuerrors.Validationf("import: missing sections")
	}
	trimmed := string(probe.Sections)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return menuerrors.Validationf("import: sections must be an array")
	}
	var sections []models.Section
	if err := json.Unmarshal(probe.Sections, &sections); err != nil {
		return menuerrors.Validationf("import: bad sections: %v", err)
	}

	s.doc.Sections = sections
	if s.doc.SectionCounter < maxSectionID(sections) {
		s.doc.SectionCounter = maxSectionID(sections)
	}
	s.RepairDuplicateSectionIDs()
	for i := range s.doc.Sections {
		normalizeTitleColumns(&s.doc.Sections[i])
	}
	return nil
}
