package paymentproofs

import "github.com/perezbrayan/tienda/internal/models"

type UpdateStatusRequest struct {
	Status     string `json:"status" binding:"required,oneof=approved rejected"`
	AdminNotes string `json:"admin_notes"`
}

type ProofListResponse struct {
	Proofs []models.PaymentProof `json:"proofs"`
}
