package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"menu-builder-api/document"
)

// ── Section Management ──────────────────────────────────────────────────────

type AddSectionRequest struct {
	Name         string   `json:"name" binding:"required"`
	Type         string   `json:"type" binding:"required"`
	Columns      []string `json:"columns" binding:"required"`
	TitleColumns []string `json:"title_columns"`
}

// AddSection appends a section to the menu document
func AddSection(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	var req AddSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var id int
	err := s.Apply(func(st *document.Store) error {
		var err error
		id, err = st.AddSection(req.Name, req.Type, req.Columns, req.TitleColumns)
		return err
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Section added", "section_id": id})
}

type UpdateSectionRequest struct {
	Name         *string  `json:"name"`
	Type         *string  `json:"type"`
	TitleColumns []string `json:"title_columns"`
}

// UpdateSection patches a section's name, type or title columns
func UpdateSection(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	sectionID, ok := intParam(c, "sectionId")
	if !ok {
		return
	}
	var req UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.Apply(func(st *document.Store) error {
		return st.UpdateSection(sectionID, document.SectionPatch{
			Name:         req.Name,
			Type:         req.Type,
			TitleColumns: req.TitleColumns,
		})
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Section updated"})
}

// DeleteSection removes a section (idempotent, confirmation required)
func DeleteSection(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	sectionID, ok := intParam(c, "sectionId")
	if !ok {
		return
	}
	if err := s.DeleteSection(sectionID, c.Query("confirmed") == "true"); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Section deleted"})
}

// ── Item Management ─────────────────────────────────────────────────────────

type AddItemRequest struct {
	Values map[string]string `json:"values"`
}

// AddItem appends an item to a section
func AddItem(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	sectionID, ok := intParam(c, "sectionId")
	if !ok {
		return
	}
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var index int
	err := s.Apply(func(st *document.Store) error {
		var err error
		index, err = st.AddItem(sectionID, req.Values)
		return err
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item added", "index": index})
}

type UpdateItemRequest struct {
	Column string `json:"column" binding:"required"`
	Value  string `json:"value"`
}

// UpdateItem sets one field of one item
func UpdateItem(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	sectionID, ok := intParam(c, "sectionId")
	if !ok {
		return
	}
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.Apply(func(st *document.Store) error {
		return st.UpdateItem(sectionID, index, req.Column, req.Value)
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item updated"})
}

// DeleteItem removes one item (confirmation required)
func DeleteItem(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	sectionID, ok := intParam(c, "sectionId")
	if !ok {
		return
	}
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	if err := s.DeleteItem(sectionID, index, c.Query("confirmed") == "true"); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// DuplicateItem inserts a copy of an item right after the original
func DuplicateItem(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	sectionID, ok := intParam(c, "sectionId")
	if !ok {
		return
	}
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	var newIndex int
	err := s.Apply(func(st *document.Store) error {
		var err error
		newIndex, err = st.DuplicateItem(sectionID, index)
		return err
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item duplicated", "index": newIndex})
}

// ── Column Management ───────────────────────────────────────────────────────

type AddColumnRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddColumn appends a column to a section's schema
func AddColumn(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	sectionID, ok := intParam(c, "sectionId")
	if !ok {
		return
	}
	var req AddColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.Apply(func(st *document.Store) error {
		return st.AddColumn(sectionID, req.Name)
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Column added"})
}

type RenameColumnRequest struct {
	OldName string `json:"old_name" binding:"required"`
	NewName string `json:"new_name" binding:"required"`
}

// RenameColumn renames a column across the section and all of its items
func RenameColumn(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	sectionID, ok := intParam(c, "sectionId")
	if !ok {
		return
	}
	var req RenameColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.Apply(func(st *document.Store) error {
		return st.RenameColumn(sectionID, req.OldName, req.NewName)
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Column renamed"})
}

// DeleteColumn removes a column from a section (confirmation required)
func DeleteColumn(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	sectionID, ok := intParam(c, "sectionId")
	if !ok {
		return
	}
	name := c.Param("column")
	if err := s.DeleteColumn(sectionID, name, c.Query("confirmed") == "true"); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Column deleted"})
}

// ── Reordering ──────────────────────────────────────────────────────────────

type ReorderRequest struct {
	OldIndex int `json:"old_index"`
	NewIndex int `json:"new_index"`
}

// ReorderSections moves a section within the document
func ReorderSections(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.Apply(func(st *document.Store) error {
		return st.ReorderSections(req.OldIndex, req.NewIndex)
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sections reordered"})
}

// ReorderColumns moves a column within a section, keeping title columns and
// item field order in sync
func ReorderColumns(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	sectionID, ok := intParam(c, "sectionId")
	if !ok {
		return
	}
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.Apply(func(st *document.Store) error {
		return st.ReorderColumns(sectionID, req.OldIndex, req.NewIndex)
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Columns reordered"})
}

// ReorderItems moves an item within a section
func ReorderItems(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	sectionID, ok := intParam(c, "sectionId")
	if !ok {
		return
	}
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.Apply(func(st *document.Store) error {
		return st.ReorderItems(sectionID, req.OldIndex, req.NewIndex)
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Items reordered"})
}

// intParam parses an integer route parameter, replying 400 on garbage
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return v, true
}
