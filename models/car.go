package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Moderation states for a listing.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// ValidStatus reports whether s is one of the known moderation states.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Car represents a single marketplace listing.
type Car struct {
	ID                string     `gorm:"primaryKey;size:36" json:"id"`
	Title             string     `gorm:"size:255;not null" json:"title"`
	Make              string     `gorm:"size:64;index;not null" json:"make"`
	Model             string     `gorm:"size:64;not null" json:"model"`
	Year              int        `gorm:"not null" json:"year"`
	Price             int64      `gorm:"not null" json:"price"`
	Mileage           int64      `gorm:"not null;default:0" json:"mileage"`
	Condition         string     `gorm:"size:16;index;not null" json:"condition"` // "new" | "used"
	Transmission      string     `gorm:"size:16" json:"transmission"`
	FuelType          string     `gorm:"size:16" json:"fuel_type"`
	Description       string     `gorm:"type:text" json:"description"`
	City              string     `gorm:"size:64" json:"city"`
	Featured          bool       `gorm:"default:false" json:"featured"`
	PicturesOnTheWay  bool       `gorm:"default:false" json:"pictures_on_the_way"`
	Status            string     `gorm:"size:16;index;default:'PENDING'" json:"status"`
	PostedDate        time.Time  `gorm:"index" json:"posted_date"`
	SellerID          string     `gorm:"size:36;index;not null" json:"seller_id"`
	Seller            Seller     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"seller"`
	Images            []CarImage `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// BeforeCreate assigns a fresh id and the posting timestamp.
func (c *Car) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.PostedDate.IsZero() {
		c.PostedDate = time.Now()
	}
	if c.Status == "" {
		c.Status = StatusPending
	}
	return nil
}

// CarImage is one uploaded photo attached to a listing, ordered by Sort.
type CarImage struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	CarID string `gorm:"size:36;index;not null" json:"car_id"`
	URL   string `gorm:"size:512;not null" json:"url"`
	Sort  int    `gorm:"not null;default:0" json:"sort"`
}

// Seller is the contact record behind one or more listings, keyed by email.
type Seller struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a fresh id when none was provided.
func (s *Seller) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
