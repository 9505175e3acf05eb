package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"menu-builder-api/models"
	"menu-builder-api/preview"
)

// GetPublishedMenu returns the published snapshot for a slug (public)
func GetPublishedMenu(c *gin.Context) {
	pub, err := Sessions.Gateway().GetPublished(c.Request.Context(), c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": pub})
}

// GetPublishedPreview projects a published snapshot into preview records so
// the public surface renders exactly like the editor preview (public)
func GetPublishedPreview(c *gin.Context) {
	pub, err := Sessions.Gateway().GetPublished(c.Request.Context(), c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	doc := &models.MenuDocument{
		Name:     pub.Title,
		Sections: pub.Sections,
		Style:    pub.Style,
		Status:   models.StatusPublished,
	}
	c.JSON(http.StatusOK, gin.H{
		"title":    pub.Title,
		"subtitle": pub.Subtitle,
		"preview":  preview.Project(doc),
	})
}

// CheckSlug reports whether a slug is free to publish under (public)
func CheckSlug(c *gin.Context) {
	available, err := Sessions.Gateway().CheckSlugAvailable(c.Request.Context(), c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slug": c.Param("slug"), "available": available})
}
