package models

import "time"

// MenuRecord is the persisted draft row. The document itself is stored as a
// JSON blob so the ordered-field item encoding survives round trips.
type MenuRecord struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	OwnerID   uint      `json:"owner_id" gorm:"index;not null"`
	Owner     User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name      string    `json:"name" gorm:"not null"`
	Document  []byte    `json:"-" gorm:"type:blob"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublishedMenuRecord is the persisted published snapshot, keyed by slug.
// PublishedAt is set on first publish and preserved across updates.
type PublishedMenuRecord struct {
	Slug        string    `json:"slug" gorm:"primaryKey"`
	MenuID      string    `json:"menu_id" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Subtitle    string    `json:"subtitle"`
	Snapshot    []byte    `json:"-" gorm:"type:blob"`
	PublishedAt time.Time `json:"published_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MenuSummary is the listing shape returned for a user's menus
type MenuSummary struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	PublishedSlug string     `json:"published_slug,omitempty"`
	Status        MenuStatus `json:"status"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
