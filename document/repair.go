package document

// RepairDuplicateSectionIDs fixes a document whose sections share ids
// (seen after corrupted loads). When a collision exists, ids are reassigned
// sequentially 1..N in array order and the counter reset to N. Running it
// on a healthy document changes nothing, which makes the repair idempotent.
func (s *Store) RepairDuplicateSectionIDs() bool {
	seen := make(map[int]bool, len(s.doc.Sections))
	dup := false
	for _, sec := range s.doc.Sections {
		if seen[sec.ID] {
			dup = true
			break
		}
		seen[sec.ID] = true
	}
	if !dup {
		return false
	}
	for i := range s.doc.Sections {
		s.doc.Sections[i].ID = i + 1
	}
	s.doc.SectionCounter = len(s.doc.Sections)
	return true
}
