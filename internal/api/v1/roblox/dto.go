package roblox

import "github.com/perezbrayan/tienda/internal/models"

type ProductListResponse struct {
	Products []models.RobloxProduct `json:"products"`
}
