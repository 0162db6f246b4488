package model

import (
	"encoding/json"
	"time"
)

const RoleAdmin = "admin"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Education string    `json:"education,omitempty"`
	Role      string    `gorm:"size:32;index" json:"role,omitempty"` // "admin" or empty
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Order struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Email string `gorm:"size:255;index" json:"email"`
	// opaque checkout payload (items, quantities); the store does not
	// interpret it beyond presence
	Items     json.RawMessage `json:"order"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

type Tool struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	Image             string    `json:"image,omitempty"`
	Description       string    `json:"description,omitempty"`
	MinOrderQuantity  int       `json:"minOrderQuantity"`
	AvailableQuantity int       `json:"availableQuantity"`
	Price             float64   `json:"price"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;index;not null" json:"email"`
	Name      string    `json:"name,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"-"`
}
