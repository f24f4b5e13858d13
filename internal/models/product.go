package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valid game types for GameProduct.
const (
	GameTypeSupercell = "supercell"
	GameTypeStreaming = "streaming"
	GameTypeLol       = "lol"
)

// GameProduct is a manually managed product for one of the non-Roblox game
// catalogs (Supercell, streaming services, League of Legends accounts).
// Deletion is hard: the row and its image files are removed.
type GameProduct struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Title           string          `gorm:"not null" json:"title"`
	Description     string          `gorm:"type:text" json:"description"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	GameType        string          `gorm:"type:varchar(50);index;not null" json:"game_type"`
	ImageURL        string          `json:"image_url"`
	ProfileImageURL string          `json:"profile_image_url"`
}

func (GameProduct) TableName() string {
	return "game_products"
}

// Roblox product types.
const (
	RobloxTypeRobux      = "robux"
	RobloxTypeBloxyfruit = "bloxyfruit"
)

// RobloxProduct covers both Robux packages and Bloxy Fruits items.
// Deletion is hard and removes the image file from disk.
type RobloxProduct struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Amount      int             `gorm:"default:1" json:"amount"`
	Type        string          `gorm:"type:varchar(50);index;default:'robux'" json:"type"`
	ImageURL    string          `json:"image_url"`
}

func (RobloxProduct) TableName() string {
	return "roblox_products"
}

// Extras product statuses. Extras are soft deleted: the row stays with
// status 'deleted' and the storefront only lists 'active' rows.
const (
	ExtrasStatusActive  = "active"
	ExtrasStatusDeleted = "deleted"
)

type ExtrasProduct struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string          `gorm:"type:varchar(100)" json:"category"`
	ImageURL    string          `json:"image_url"`
	Status      string          `gorm:"type:varchar(20);index;default:'active'" json:"status"`
}

func (ExtrasProduct) TableName() string {
	return "extras_products"
}
