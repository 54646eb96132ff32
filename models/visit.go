package models

import "time"

// Visit is one raw page-view event reported by the tracking beacon.
// Rows are append-only: written once by the track endpoint and only ever
// read back by the analytics aggregation.
type Visit struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"index;not null" json:"created_at"`
	Path        string    `gorm:"size:255;not null" json:"path"`
	UserAgent   string    `gorm:"size:512" json:"user_agent"`
	SessionID   string    `gorm:"size:128;index" json:"session_id"`
	DurationSec int       `gorm:"not null;default:0" json:"duration_sec"`
}
