package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"menu-builder-api/config"
	"menu-builder-api/models"
)

// AdminGetAllUsers returns every registered user
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	config.DB.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminGetAllMenus returns every draft menu with its owner
func AdminGetAllMenus(c *gin.Context) {
	var menus []models.MenuRecord
	config.DB.Preload("Owner").Order("updated_at DESC").Find(&menus)
	c.JSON(http.StatusOK, gin.H{"count": len(menus), "menus": menus})
}

// AdminGetAllPublished returns every published snapshot record
func AdminGetAllPublished(c *gin.Context) {
	var published []models.PublishedMenuRecord
	config.DB.Order("updated_at DESC").Find(&published)
	c.JSON(http.StatusOK, gin.H{"count": len(published), "published": published})
}
