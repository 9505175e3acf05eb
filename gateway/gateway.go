// Package gateway defines the persistence contract the editing core depends
// on, plus the gorm-backed implementation used in deployment. The core only
// ever sees the Gateway interface.
package gateway

import (
	"context"

	"menu-builder-api/models"
)

// PublishRequest carries everything needed to write a published snapshot
type PublishRequest struct {
	MenuID   string
	Slug     string
	Title    string
	Subtitle string
	Sections []models.Section
	Style    models.StyleSettings
}

// PublishResult reports where a successful publish landed
type PublishResult struct {
	MenuID string `json:"menu_id"`
	Slug   string `json:"slug"`
}

// Gateway is the persistence contract consumed by editing sessions.
// Implementations must return menuerrors.NotFoundError for missing rows and
// wrap I/O failures in menuerrors.PersistenceError.
type Gateway interface {
	CheckSlugAvailable(ctx context.Context, slug string) (bool, error)
	Publish(ctx context.Context, req PublishRequest) (*PublishResult, error)
	GetPublished(ctx context.Context, slug string) (*models.PublishedMenu, error)
	CreateMenu(ctx context.Context, ownerID uint, doc *models.MenuDocument) error
	LoadDraft(ctx context.Context, menuID string) (*models.MenuDocument, error)
	SaveDraft(ctx context.Context, menuID string, doc *models.MenuDocument) error
	ListMenus(ctx context.Context, userID uint) ([]models.MenuSummary, error)
	DeleteMenu(ctx context.Context, menuID string) error
}
