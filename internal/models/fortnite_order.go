package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
)

// FortniteOrder is a customer order for a Fortnite shop item. The status
// starts at 'pending' and is terminal once 'completed' or 'failed'; the
// service layer rejects updates to terminal orders.
type FortniteOrder struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	UserID         *uint           `gorm:"index" json:"user_id"` // nil for guest checkout
	Username       string          `gorm:"not null" json:"username"`
	OfferID        string          `gorm:"not null" json:"offer_id"`
	ItemName       string          `gorm:"not null" json:"item_name"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	IsBundle       bool            `gorm:"default:false" json:"is_bundle"`
	Metadata       datatypes.JSON  `json:"metadata" swaggertype:"object"`
	Status         OrderStatus     `gorm:"type:varchar(20);index;default:'pending'" json:"status"`
	ErrorMessage   string          `gorm:"type:text" json:"error_message"`
	PaymentReceipt string          `gorm:"not null" json:"payment_receipt"`
}

func (FortniteOrder) TableName() string {
	return "fortnite_orders"
}
