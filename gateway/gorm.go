package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"menu-builder-api/menuerrors"
	"menu-builder-api/models"
)

// GormGateway persists drafts and published snapshots through gorm
type GormGateway struct {
	db *gorm.DB
}

// NewGormGateway wraps a connected gorm DB
func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{db: db}
}

// publishedSnapshot is the JSON blob stored per published menu
type publishedSnapshot struct {
	Sections []models.Section     `json:"sections"`
	Style    models.StyleSettings `json:"style"`
}

// CheckSlugAvailable reports whether no published menu claims the slug
func (g *GormGateway) CheckSlugAvailable(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).
		Model(&models.PublishedMenuRecord{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, &menuerrors.PersistenceError{Op: "check slug", Err: err}
	}
	return count == 0, nil
}

// Publish writes or updates the published snapshot for a slug. PublishedAt
// is set once and preserved across updates; UpdatedAt is always refreshed.
func (g *GormGateway) Publish(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	blob, err := json.Marshal(publishedSnapshot{Sections: req.Sections, Style: req.Style})
	if err != nil {
		return nil, &menuerrors.PersistenceError{Op: "encode snapshot", Err: err}
	}

	now := time.Now().UTC()
	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.PublishedMenuRecord
		err := tx.Where("slug = ?", req.Slug).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&models.PublishedMenuRecord{
				Slug:        req.Slug,
				MenuID:      req.MenuID,
				Title:       req.Title,
				Subtitle:    req.Subtitle,
				Snapshot:    blob,
				PublishedAt: now,
				UpdatedAt:   now,
			}).Error
		case err != nil:
			return err
		case existing.MenuID != req.MenuID:
			return &menuerrors.SlugTakenError{Slug: req.Slug}
		default:
			return tx.Model(&existing).Updates(map[string]interface{}{
				"title":      req.Title,
				"subtitle":   req.Subtitle,
				"snapshot":   blob,
				"updated_at": now,
			}).Error
		}
	})
	if err != nil {
		var taken *menuerrors.SlugTakenError
		if errors.As(err, &taken) {
			return nil, taken
		}
		return nil, &menuerrors.PersistenceError{Op: "publish", Err: err}
	}
	return &PublishResult{MenuID: req.MenuID, Slug: req.Slug}, nil
}

// GetPublished loads the published snapshot for a slug
func (g *GormGateway) GetPublished(ctx context.Context, slug string) (*models.PublishedMenu, error) {
	var rec models.PublishedMenuRecord
	err := g.db.WithContext(ctx).Where("slug = ?", slug).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &menuerrors.NotFoundError{Resource: "published menu", ID: slug}
	}
	if err != nil {
		return nil, &menuerrors.PersistenceError{Op: "load published", Err: err}
	}
	var snap publishedSnapshot
	if err := json.Unmarshal(rec.Snapshot, &snap); err != nil {
		return nil, &menuerrors.PersistenceError{Op: "decode snapshot", Err: err}
	}
	return &models.PublishedMenu{
		MenuID:      rec.MenuID,
		Slug:        rec.Slug,
		Title:       rec.Title,
		Subtitle:    rec.Subtitle,
		Sections:    snap.Sections,
		Style:       snap.Style,
		PublishedAt: rec.PublishedAt,
		UpdatedAt:   rec.UpdatedAt,
	}, nil
}

// CreateMenu inserts a new draft row owned by a user
func (g *GormGateway) CreateMenu(ctx context.Context, ownerID uint, doc *models.MenuDocument) error {
	blob, err := json.Marshal(doc)
	if err != nil {
		return &menuerrors.PersistenceError{Op: "encode draft", Err: err}
	}
	rec := models.MenuRecord{
		ID:       doc.ID,
		OwnerID:  ownerID,
		Name:     doc.Name,
		Document: blob,
	}
	if err := g.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return &menuerrors.PersistenceError{Op: "create menu", Err: err}
	}
	return nil
}

// LoadDraft loads the last persisted draft document for a menu
func (g *GormGateway) LoadDraft(ctx context.Context, menuID string) (*models.MenuDocument, error) {
	var rec models.MenuRecord
	err := g.db.WithContext(ctx).Where("id = ?", menuID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &menuerrors.NotFoundError{Resource: "menu", ID: menuID}
	}
	if err != nil {
		return nil, &menuerrors.PersistenceError{Op: "load draft", Err: err}
	}
	var doc models.MenuDocument
	if err := json.Unmarshal(rec.Document, &doc); err != nil {
		return nil, &menuerrors.PersistenceError{Op: "decode draft", Err: err}
	}
	return &doc, nil
}

// SaveDraft overwrites the persisted draft document for a menu
func (g *GormGateway) SaveDraft(ctx context.Context, menuID string, doc *models.MenuDocument) error {
	blob, err := json.Marshal(doc)
	if err != nil {
		return &menuerrors.PersistenceError{Op: "encode draft", Err: err}
	}
	res := g.db.WithContext(ctx).
		Model(&models.MenuRecord{}).
		Where("id = ?", menuID).
		Updates(map[string]interface{}{"name": doc.Name, "document": blob})
	if res.Error != nil {
		return &menuerrors.PersistenceError{Op: "save draft", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &menuerrors.NotFoundError{Resource: "menu", ID: menuID}
	}
	return nil
}

// ListMenus returns summaries of the menus a user owns
func (g *GormGateway) ListMenus(ctx context.Context, userID uint) ([]models.MenuSummary, error) {
	var recs []models.MenuRecord
	err := g.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("updated_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, &menuerrors.PersistenceError{Op: "list menus", Err: err}
	}
	out := make([]models.MenuSummary, 0, len(recs))
	for _, rec := range recs {
		summary := models.MenuSummary{
			ID:        rec.ID,
			Name:      rec.Name,
			Status:    models.StatusDraft,
			UpdatedAt: rec.UpdatedAt,
		}
		var doc models.MenuDocument
		if err := json.Unmarshal(rec.Document, &doc); err == nil {
			summary.PublishedSlug = doc.PublishedSlug
			if doc.Status != "" {
				summary.Status = doc.Status
			}
		}
		out = append(out, summary)
	}
	return out, nil
}

// DeleteMenu removes a draft row and any published snapshots pointing at it
func (g *GormGateway) DeleteMenu(ctx context.Context, menuID string) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", menuID).Delete(&models.PublishedMenuRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", menuID).Delete(&models.MenuRecord{}).Error
	})
	if err != nil {
		return &menuerrors.PersistenceError{Op: "delete menu", Err: err}
	}
	return nil
}
