package model

import "time"

// Product is a fixed-catalog entry, stored in SQLite and seeded at startup.
type Product struct {
	ID          string  `gorm:"primaryKey;size:64;not null" json:"id"`
	Name        string  `gorm:"size:128;not null" json:"name"`
	Description string  `gorm:"size:512" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	ImageURL    string  `gorm:"size:256" json:"imageUrl"`
}

// WebhookEvent is an audit record of a verified provider event.
type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}
