package models

import "time"

// GalleryItem is a standalone showcase image.
type GalleryItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Image     string    `gorm:"not null" json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName keeps the historical table name.
func (GalleryItem) TableName() string {
	return "gallery"
}
