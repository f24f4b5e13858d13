package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProofStatus string

const (
	ProofStatusPending  ProofStatus = "pending"
	ProofStatusApproved ProofStatus = "approved"
	ProofStatusRejected ProofStatus = "rejected"
)

// Store types a payment proof can belong to.
const (
	StoreTypeFortnite  = "fortnite"
	StoreTypeRoblox    = "roblox"
	StoreTypeSupercell = "supercell"
	StoreTypeStreaming = "streaming"
	StoreTypeLeague    = "leagueoflegends"
	StoreTypeExtras    = "extras"
)

// PaymentProof is an uploaded bank-transfer receipt awaiting admin review.
// Product fields are a denormalized snapshot: deleting the product later
// does not invalidate the proof.
type PaymentProof struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	UserID        *uint           `gorm:"index" json:"user_id"` // nil for guest submissions
	StoreType     string          `gorm:"type:varchar(50);index;not null" json:"store_type"`
	ProductID     string          `gorm:"not null" json:"product_id"`
	ProductName   string          `gorm:"not null" json:"product_name"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	GameAccountID string          `json:"game_account_id"`
	ProofImageURL string          `gorm:"not null" json:"proof_image_url"`
	Status        ProofStatus     `gorm:"type:varchar(20);index;default:'pending'" json:"status"`
	AdminNotes    string          `gorm:"type:text" json:"admin_notes"`
}

func (PaymentProof) TableName() string {
	return "payment_proofs"
}
