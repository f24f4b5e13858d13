package fortnite

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/perezbrayan/tienda/internal/models"
	"github.com/perezbrayan/tienda/internal/services"
	"github.com/perezbrayan/tienda/internal/storage"
	"github.com/perezbrayan/tienda/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CreateOrder godoc
// @Summary Create a Fortnite order
// @Description Multipart form: username, offer_id, item_name, price, optional is_bundle and metadata (JSON), file payment_receipt. Works for guests; a valid bearer token attributes the order to the caller.
// @Tags fortnite
// @Accept mpfd
// @Produce json
// @Success 201 {object} utils.Response{data=models.FortniteOrder}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /fortnite/orders [post]
func CreateOrder(c *gin.Context) {
	username := c.PostForm("username")
	offerID := c.PostForm("offer_id")
	itemName := c.PostForm("item_name")
	if username == "" || offerID == "" || itemName == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "username, offer_id and item_name are required"))
		return
	}

	price, err := decimal.NewFromString(c.PostForm("price"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "price must be a decimal number"))
		return
	}

	isBundle, _ := strconv.ParseBool(c.DefaultPostForm("is_bundle", "false"))

	var metadata datatypes.JSON
	if raw := c.PostForm("metadata"); raw != "" {
		if !json.Valid([]byte(raw)) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "metadata must be valid JSON"))
			return
		}
		metadata = datatypes.JSON(raw)
	}

	file, err := c.FormFile("payment_receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "payment_receipt is required"))
		return
	}

	// Every field is valid before anything touches disk.
	receiptURL, err := storage.Default.Save(file, storage.CategoryPaymentProofs, "receipt", storage.ProofImagePolicy)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrFileTooLarge) || errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrNoFile) {
			status = http.StatusBadRequest
		}
		c.JSON(status, utils.NewErrorResponse(status, err.Error()))
		return
	}

	order, err := services.CreateFortniteOrder(services.CreateFortniteOrderInput{
		UserID:         currentUserID(c),
		Username:       username,
		OfferID:        offerID,
		ItemName:       itemName,
		Price:          price,
		IsBundle:       isBundle,
		Metadata:       metadata,
		PaymentReceipt: receiptURL,
	})
	if err != nil {
		// The insert failed after the file landed; clean it up.
		storage.Default.Remove(receiptURL)
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create order"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Order created successfully", order))
}

// ListOrders godoc
// @Summary List every Fortnite order
// @Tags fortnite
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=OrderListResponse}
// @Failure 500 {object} utils.Response
// @Router /fortnite/orders [get]
func ListOrders(c *gin.Context) {
	orders, err := services.FindFortniteOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch orders"))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Orders retrieved successfully", OrderListResponse{Orders: orders}))
}

// ListMyOrders godoc
// @Summary List the caller's Fortnite orders
// @Tags fortnite
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=OrderListResponse}
// @Failure 401 {object} utils.Response
// @Router /fortnite/orders/user [get]
func ListMyOrders(c *gin.Context) {
	userID := currentUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Authentication required"))
		return
	}

	orders, err := services.FindFortniteOrdersByUser(*userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch orders"))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Orders retrieved successfully", OrderListResponse{Orders: orders}))
}

// UpdateStatus godoc
// @Summary Move an order to a terminal status
// @Description Completing an order delivers the gift first; if delivery fails the order stays pending and the failure detail is returned. Updating an already finalized order fails with 409.
// @Tags fortnite
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Order ID"
// @Param input body UpdateStatusRequest true "New status"
// @Success 200 {object} utils.Response{data=models.FortniteOrder}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 502 {object} utils.Response
// @Router /fortnite/orders/{id}/status [put]
func UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid order ID"))
		return
	}

	var req UpdateStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	order, err := services.UpdateFortniteOrderStatus(c.Request.Context(), uint(id), models.OrderStatus(req.Status), req.ErrorMessage)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Order not found"))
		case errors.Is(err, services.ErrOrderFinalized):
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
		case errors.Is(err, services.ErrInvalidOrderStatus):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		case errors.Is(err, services.ErrFulfillment):
			c.JSON(http.StatusBadGateway, utils.NewErrorResponse(http.StatusBadGateway, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update order"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Order updated successfully", order))
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
