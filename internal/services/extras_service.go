package services

import (
	"errors"
	"time"

	"github.com/perezbrayan/tienda/internal/database"
	"github.com/perezbrayan/tienda/internal/models"
	"github.com/perezbrayan/tienda/internal/storage"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExtrasProductInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Category    string
	Status      string
	ImageURL    string
}

// FindActiveExtras lists the storefront view: soft-deleted rows excluded.
func FindActiveExtras() ([]models.ExtrasProduct, error) {
	var products []models.ExtrasProduct
	if err := database.DB.Where("status = ?", models.ExtrasStatusActive).Order("created_at desc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func CreateExtrasProduct(in ExtrasProductInput) (*models.ExtrasProduct, error) {
	product := &models.ExtrasProduct{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Status:      models.ExtrasStatusActive,
	}
	if err := database.DB.Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func UpdateExtrasProduct(id uint, in ExtrasProductInput) (*models.ExtrasProduct, error) {
	var existing models.ExtrasProduct
	if err := database.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Title != "" {
		updates["title"] = in.Title
	}
	if in.Description != "" {
		updates["description"] = in.Description
	}
	if !in.Price.IsZero() {
		updates["price"] = in.Price
	}
	if in.Category != "" {
		updates["category"] = in.Category
	}
	if in.Status != "" {
		updates["status"] = in.Status
	}
	if in.ImageURL != "" {
		updates["image_url"] = in.ImageURL
	}

	// Updates writes the new values back into existing, so grab the old
	// image path before it does.
	oldImage := existing.ImageURL
	if err := database.DB.Model(&existing).Updates(updates).Error; err != nil {
		return nil, err
	}

	if in.ImageURL != "" && oldImage != "" && oldImage != in.ImageURL && storage.Default != nil {
		storage.Default.Remove(oldImage)
	}

	var updated models.ExtrasProduct
	if err := database.DB.First(&updated, id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// SoftDeleteExtrasProduct flips the status to 'deleted'. The row and its
// image stay around; the storefront just stops listing it.
func SoftDeleteExtrasProduct(id uint) error {
	result := database.DB.Model(&models.ExtrasProduct{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.ExtrasStatusDeleted,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
