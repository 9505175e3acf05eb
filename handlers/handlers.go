package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"menu-builder-api/config"
	"menu-builder-api/menuerrors"
	"menu-builder-api/middleware"
	"menu-builder-api/models"
	"menu-builder-api/session"
)

// Sessions is the shared editing-session registry, set from main
var Sessions *session.Manager

// errStatus maps the core error taxonomy onto HTTP status codes
func errStatus(err error) int {
	var (
		validation *menuerrors.ValidationError
		duplicate  *menuerrors.DuplicateNameError
		lastCol    *menuerrors.LastColumnError
		notFound   *menuerrors.NotFoundError
		slugBad    *menuerrors.SlugInvalidError
		slugTaken  *menuerrors.SlugTakenError
		persist    *menuerrors.PersistenceError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &duplicate), errors.As(err, &lastCol):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &slugBad):
		return http.StatusUnprocessableEntity
	case errors.As(err, &slugTaken):
		return http.StatusConflict
	case errors.As(err, &persist):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(errStatus(err), gin.H{"error": err.Error()})
}

// ownedSession resolves the :menuId route param to a session, verifying the
// caller owns the menu. Admins bypass the ownership check.
func ownedSession(c *gin.Context) (*session.Session, bool) {
	menuID := c.Param("menuId")
	var rec models.MenuRecord
	if err := config.DB.First(&rec, "id = ?", menuID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
		return nil, false
	}
	if rec.OwnerID != middleware.GetUserID(c) && middleware.GetRole(c) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this menu"})
		return nil, false
	}
	s, err := Sessions.Get(c.Request.Context(), menuID)
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}
	return s, true
}
