package extras

import "github.com/perezbrayan/tienda/internal/models"

type ProductListResponse struct {
	Products []models.ExtrasProduct `json:"products"`
}
