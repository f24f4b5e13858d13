package games

import "github.com/perezbrayan/tienda/internal/models"

type ProductListResponse struct {
	Products []models.GameProduct `json:"products"`
}
