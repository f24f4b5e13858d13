package paymentproofs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/perezbrayan/tienda/internal/models"
	"github.com/perezbrayan/tienda/internal/services"
	"github.com/perezbrayan/tienda/internal/storage"
	"github.com/perezbrayan/tienda/internal/utils"
	"github.com/shopspring/decimal"
)

// Create godoc
// @Summary Submit a payment proof
// @Description Multipart form: store_type, product_id, product_name, amount, optional game_account_id, file proof_image. Works for guests; a valid bearer token attributes the proof to the caller.
// @Tags payment-proofs
// @Accept mpfd
// @Produce json
// @Success 201 {object} utils.Response{data=models.PaymentProof}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /payment-proofs [post]
func Create(c *gin.Context) {
	storeType := c.PostForm("store_type")
	productID := c.PostForm("product_id")
	productName := c.PostForm("product_name")
	if storeType == "" || productID == "" || productName == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "store_type, product_id and product_name are required"))
		return
	}

	amount, err := decimal.NewFromString(c.PostForm("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "amount must be a decimal number"))
		return
	}

	gameAccountID := c.PostForm("game_account_id")
	if services.GameAccountRequired(storeType) && gameAccountID == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "game_account_id is required for this store type"))
		return
	}

	file, err := c.FormFile("proof_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "proof_image is required"))
		return
	}

	// Every field is valid before anything touches disk.
	proofURL, err := storage.Default.Save(file, storage.CategoryPaymentProofs, "proof", storage.ProofImagePolicy)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrFileTooLarge) || errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrNoFile) {
			status = http.StatusBadRequest
		}
		c.JSON(status, utils.NewErrorResponse(status, err.Error()))
		return
	}

	proof, err := services.CreateProof(services.CreateProofInput{
		UserID:        currentUserID(c),
		StoreType:     storeType,
		ProductID:     productID,
		ProductName:   productName,
		Amount:        amount,
		GameAccountID: gameAccountID,
		ProofImageURL: proofURL,
	})
	if err != nil {
		// The insert failed after the file landed; clean it up.
		storage.Default.Remove(proofURL)
		if errors.Is(err, services.ErrGameAccountNeeded) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to save payment proof"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Payment proof submitted successfully", proof))
}

// ListAll godoc
// @Summary List every payment proof
// @Tags payment-proofs
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=ProofListResponse}
// @Failure 500 {object} utils.Response
// @Router /payment-proofs [get]
func ListAll(c *gin.Context) {
	proofs, err := services.FindProofs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch payment proofs"))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Payment proofs retrieved successfully", ProofListResponse{Proofs: proofs}))
}

// ListMine godoc
// @Summary List the caller's payment proofs
// @Tags payment-proofs
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=ProofListResponse}
// @Failure 401 {object} utils.Response
// @Router /payment-proofs/user [get]
func ListMine(c *gin.Context) {
	userID := currentUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Authentication required"))
		return
	}

	proofs, err := services.FindProofsByUser(*userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch payment proofs"))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Payment proofs retrieved successfully", ProofListResponse{Proofs: proofs}))
}

// UpdateStatus godoc
// @Summary Review a payment proof
// @Description Approve or reject a pending proof. Reviewing an already reviewed proof fails with 409.
// @Tags payment-proofs
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Proof ID"
// @Param input body UpdateStatusRequest true "Review verdict"
// @Success 200 {object} utils.Response{data=models.PaymentProof}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /payment-proofs/{id}/status [put]
func UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid proof ID"))
		return
	}

	var req UpdateStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	proof, err := services.UpdateProofStatus(uint(id), models.ProofStatus(req.Status), req.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProofNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Payment proof not found"))
		case errors.Is(err, services.ErrProofFinalized):
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
		case errors.Is(err, services.ErrInvalidProofStatus):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update payment proof"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Payment proof updated successfully", proof))
}

func currentUserID(c *gin.Context) *uint {
	v, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := v.(models.User)
	if !ok {
		return nil
	}
	id := user.ID
	return &id
}
