package services

import (
	"testing"

	"github.com/perezbrayan/tienda/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func createTestProof(t *testing.T, storeType, gameAccountID string) *models.PaymentProof {
	t.Helper()
	proof, err := CreateProof(CreateProofInput{
		StoreType:     storeType,
		ProductID:     "42",
		ProductName:   "800 Robux",
		Amount:        decimal.NewFromFloat(9.99),
		GameAccountID: gameAccountID,
		ProofImageURL: "/uploads/payment_proofs/proof-1.png",
	})
	if err != nil {
		t.Fatalf("failed to create test proof: %v", err)
	}
	return proof
}

func TestCreateProofGameAccountRule(t *testing.T) {
	tests := []struct {
		name          string
		storeType     string
		gameAccountID string
		wantErr       error
	}{
		{"roblox without account", models.StoreTypeRoblox, "", ErrGameAccountNeeded},
		{"supercell without account", models.StoreTypeSupercell, "", ErrGameAccountNeeded},
		{"leagueoflegends without account", models.StoreTypeLeague, "", ErrGameAccountNeeded},
		{"roblox with account", models.StoreTypeRoblox, "builderman", nil},
		{"fortnite", models.StoreTypeFortnite, "", nil},
		{"streaming", models.StoreTypeStreaming, "", nil},
		{"extras", models.StoreTypeExtras, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestDB(t)

			proof, err := CreateProof(CreateProofInput{
				StoreType:     tt.storeType,
				ProductID:     "1",
				ProductName:   "item",
				Amount:        decimal.NewFromInt(5),
				GameAccountID: tt.gameAccountID,
				ProofImageURL: "/uploads/payment_proofs/p.png",
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, proof)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, models.ProofStatusPending, proof.Status)
			}
		})
	}
}

func TestUpdateProofStatusApprove(t *testing.T) {
	setupTestDB(t)
	proof := createTestProof(t, models.StoreTypeRoblox, "builderman")

	updated, err := UpdateProofStatus(proof.ID, models.ProofStatusApproved, "verified against the bank statement")
	assert.NoError(t, err)
	assert.Equal(t, models.ProofStatusApproved, updated.Status)
	assert.Equal(t, "verified against the bank statement", updated.AdminNotes)
}

func TestUpdateProofStatusTerminalIsRejected(t *testing.T) {
	setupTestDB(t)
	proof := createTestProof(t, models.StoreTypeFortnite, "")

	_, err := UpdateProofStatus(proof.ID, models.ProofStatusRejected, "blurry image")
	assert.NoError(t, err)

	_, err = UpdateProofStatus(proof.ID, models.ProofStatusApproved, "second look")
	assert.ErrorIs(t, err, ErrProofFinalized)

	reloaded, _ := GetProofByID(proof.ID)
	assert.Equal(t, models.ProofStatusRejected, reloaded.Status)
	assert.Equal(t, "blurry image", reloaded.AdminNotes)
}

func TestUpdateProofStatusValidation(t *testing.T) {
	setupTestDB(t)
	proof := createTestProof(t, models.StoreTypeFortnite, "")

	_, err := UpdateProofStatus(proof.ID, models.ProofStatusPending, "")
	assert.ErrorIs(t, err, ErrInvalidProofStatus)

	_, err = UpdateProofStatus(9999, models.ProofStatusApproved, "")
	assert.ErrorIs(t, err, ErrProofNotFound)
}

func TestFindProofsByUser(t *testing.T) {
	setupTestDB(t)

	userID := uint(7)
	_, err := CreateProof(CreateProofInput{
		UserID:        &userID,
		StoreType:     models.StoreTypeStreaming,
		ProductID:     "3",
		ProductName:   "Netflix 1 mes",
		Amount:        decimal.NewFromInt(15),
		ProofImageURL: "/uploads/payment_proofs/mine.png",
	})
	assert.NoError(t, err)
	createTestProof(t, models.StoreTypeFortnite, "") // guest proof

	mine, err := FindProofsByUser(userID)
	assert.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, models.StoreTypeStreaming, mine[0].StoreType)

	all, err := FindProofs()
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
