package models

// Product is a catalog entry. Image holds the media-host delivery URL; the
// server never stores image bytes.
type Product struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Category    string `gorm:"not null" json:"category"`
	Description string `gorm:"not null" json:"description"`
	Image       string `gorm:"not null" json:"image"`
}
