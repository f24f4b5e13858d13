package services

import (
	"errors"
	"time"

	"github.com/perezbrayan/tienda/internal/database"
	"github.com/perezbrayan/tienda/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProofNotFound      = errors.New("payment proof not found")
	ErrProofFinalized     = errors.New("payment proof has already been reviewed")
	ErrInvalidProofStatus = errors.New("invalid payment proof status")
	ErrGameAccountNeeded  = errors.New("game_account_id is required for this store type")
)

// Store types whose products are delivered to an in-game account, so the
// proof must say which account.
var gameAccountRequired = map[string]bool{
	models.StoreTypeRoblox:    true,
	models.StoreTypeSupercell: true,
	models.StoreTypeLeague:    true,
}

// GameAccountRequired reports whether a proof for the given store type must
// carry a game_account_id.
func GameAccountRequired(storeType string) bool {
	return gameAccountRequired[storeType]
}

type CreateProofInput struct {
	UserID        *uint
	StoreType     string
	ProductID     string
	ProductName   string
	Amount        decimal.Decimal
	GameAccountID string
	ProofImageURL string
}

// CreateProof inserts a pending proof record. The image must already be on
// disk; the caller deletes it if the insert fails.
func CreateProof(in CreateProofInput) (*models.PaymentProof, error) {
	if GameAccountRequired(in.StoreType) && in.GameAccountID == "" {
		return nil, ErrGameAccountNeeded
	}

	proof := &models.PaymentProof{
		UserID:        in.UserID,
		StoreType:     in.StoreType,
		ProductID:     in.ProductID,
		ProductName:   in.ProductName,
		Amount:        in.Amount,
		GameAccountID: in.GameAccountID,
		ProofImageURL: in.ProofImageURL,
		Status:        models.ProofStatusPending,
	}

	if err := database.DB.Create(proof).Error; err != nil {
		return nil, err
	}
	return proof, nil
}

func FindProofs() ([]models.PaymentProof, error) {
	var proofs []models.PaymentProof
	if err := database.DB.Order("created_at desc").Find(&proofs).Error; err != nil {
		return nil, err
	}
	return proofs, nil
}

func FindProofsByUser(userID uint) ([]models.PaymentProof, error) {
	var proofs []models.PaymentProof
	if err := database.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&proofs).Error; err != nil {
		return nil, err
	}
	return proofs, nil
}

func GetProofByID(id uint) (*models.PaymentProof, error) {
	var proof models.PaymentProof
	if err := database.DB.First(&proof, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProofNotFound
		}
		return nil, err
	}
	return &proof, nil
}

// UpdateProofStatus moves a pending proof to approved or rejected. The
// update is a compare-and-swap on status='pending': reviewing an already
// reviewed proof is rejected instead of silently overwriting the verdict.
func UpdateProofStatus(id uint, status models.ProofStatus, adminNotes string) (*models.PaymentProof, error) {
	if status != models.ProofStatusApproved && status != models.ProofStatusRejected {
		return nil, ErrInvalidProofStatus
	}

	if _, err := GetProofByID(id); err != nil {
		return nil, err
	}

	result := database.DB.Model(&models.PaymentProof{}).
		Where("id = ? AND status = ?", id, models.ProofStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"admin_notes": adminNotes,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrProofFinalized
	}

	return GetProofByID(id)
}
