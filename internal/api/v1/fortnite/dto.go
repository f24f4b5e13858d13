package fortnite

import "github.com/perezbrayan/tienda/internal/models"

type UpdateStatusRequest struct {
	Status       string `json:"status" binding:"required,oneof=completed failed"`
	ErrorMessage string `json:"error_message"`
}

type OrderListResponse struct {
	Orders []models.FortniteOrder `json:"orders"`
}
