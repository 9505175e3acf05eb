package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"menu-builder-api/middleware"
	"menu-builder-api/models"
)

// ── Menu Management ─────────────────────────────────────────────────────────

type CreateMenuRequest struct {
	Name  string               `json:"name" binding:"required"`
	Style models.StyleSettings `json:"style"`
}

// CreateMenu creates an empty draft menu owned by the caller
func CreateMenu(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc := &models.MenuDocument{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Sections: []models.Section{},
		Style:    req.Style,
		Status:   models.StatusDraft,
	}
	if err := Sessions.Gateway().CreateMenu(c.Request.Context(), ownerID, doc); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu created", "menu": doc})
}

// ListMyMenus returns summaries of the caller's menus
func ListMyMenus(c *gin.Context) {
	userID := middleware.GetUserID(c)
	menus, err := Sessions.Gateway().ListMenus(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(menus), "menus": menus})
}

// GetMenu returns the live document being edited
func GetMenu(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": s.Document()})
}

// DeleteMenu removes a menu and its published snapshots. Requires an
// explicit confirmed flag; without it nothing happens.
func DeleteMenu(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	if c.Query("confirmed") != "true" {
		c.JSON(http.StatusOK, gin.H{"message": "Not confirmed, menu left alone"})
		return
	}
	menuID := s.MenuID()
	Sessions.Drop(menuID)
	if err := Sessions.Gateway().DeleteMenu(c.Request.Context(), menuID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu deleted"})
}

// GetPreview projects the latest document state into preview records. Every
// rendering surface should draw from one response body.
func GetPreview(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"preview": s.Preview()})
}

// ExportMenu writes the sections in the interchange file format
func ExportMenu(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	data, err := s.Export()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=menu-export.json")
	c.Data(http.StatusOK, "application/json", data)
}

// ImportMenu replaces the sections from an uploaded interchange file
func ImportMenu(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.Import(data); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu imported", "menu": s.Document()})
}
