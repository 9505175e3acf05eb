package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"menu-builder-api/statemachine"
)

// ── Lifecycle ───────────────────────────────────────────────────────────────

// GetSaveStatus reports the session's lifecycle status and last save error
func GetSaveStatus(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	status, lastErr := s.Status()
	resp := gin.H{"status": status}
	if lastErr != nil {
		resp["last_error"] = lastErr.Error()
	}
	c.JSON(http.StatusOK, resp)
}

type PublishRequest struct {
	Slug     string `json:"slug" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Subtitle string `json:"subtitle"`
}

// PublishMenu validates the slug and publishes a snapshot of the menu
func PublishMenu(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := s.Publish(c.Request.Context(), req.Slug, req.Title, req.Subtitle)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu published", "menu_id": result.MenuID, "slug": result.Slug})
}

// DiscardToSaved reverts the document to the last persisted draft
func DiscardToSaved(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	if err := s.DiscardToSaved(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draft restored from last save", "menu": s.Document()})
}

// DiscardToPublished reverts the document to the last published snapshot
func DiscardToPublished(c *gin.Context) {
	s, ok := ownedSession(c)
	if !ok {
		return
	}
	if err := s.DiscardToPublished(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draft restored from published copy", "menu": s.Document()})
}

// GetStateMachineInfo returns the full lifecycle state machine for
// informational purposes
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "trigger": t.Trigger})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine": info,
		"states": []statemachine.LifecycleStatus{
			statemachine.StatusSaved,
			statemachine.StatusUnsaved,
			statemachine.StatusSaving,
			statemachine.StatusNeedsPublish,
		},
		"description": "Menu Draft/Publish Lifecycle State Machine",
	})
}
