package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/perezbrayan/tienda/internal/database"
	"github.com/perezbrayan/tienda/internal/models"
	"github.com/perezbrayan/tienda/internal/storage"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const robloxProductsCacheKey = "roblox:products"

type RobloxProductInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Amount      int
	Type        string
	ImageURL    string
}

// FindRobloxProducts lists every Roblox product, newest first. Results are
// cached in redis for five minutes; admin writes invalidate the cache.
func FindRobloxProducts() ([]models.RobloxProduct, error) {
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, robloxProductsCacheKey).Result()
		if err == nil {
			var products []models.RobloxProduct
			if err := json.Unmarshal([]byte(val), &products); err == nil {
				return products, nil
			}
		}
	}

	var products []models.RobloxProduct
	if err := database.DB.Order("created_at desc").Find(&products).Error; err != nil {
		return nil, err
	}

	if database.RedisClient != nil {
		if data, err := json.Marshal(products); err == nil {
			database.RedisClient.Set(database.Ctx, robloxProductsCacheKey, data, 5*time.Minute)
		}
	}

	return products, nil
}

func FindRobloxProductsByType(productType string) ([]models.RobloxProduct, error) {
	var products []models.RobloxProduct
	if err := database.DB.Where("type = ?", productType).Order("created_at desc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func invalidateRobloxCache() {
	if database.RedisClient != nil {
		database.RedisClient.Del(database.Ctx, robloxProductsCacheKey)
	}
}

// CreateRobuxPackage creates a Robux product from just the amount and
// price; title and description are derived from the amount.
func CreateRobuxPackage(amount int, price decimal.Decimal, imageURL string) (*models.RobloxProduct, error) {
	product := &models.RobloxProduct{
		Title:       fmt.Sprintf("%d Robux", amount),
		Description: fmt.Sprintf("Paquete de %d Robux", amount),
		Price:       price,
		Amount:      amount,
		Type:        models.RobloxTypeRobux,
		ImageURL:    imageURL,
	}
	if err := database.DB.Create(product).Error; err != nil {
		return nil, err
	}
	invalidateRobloxCache()
	return product, nil
}

func CreateRobloxProduct(in RobloxProductInput) (*models.RobloxProduct, error) {
	if in.Amount <= 0 {
		in.Amount = 1
	}
	if in.Type == "" {
		in.Type = models.RobloxTypeRobux
	}

	product := &models.RobloxProduct{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Amount:      in.Amount,
		Type:        in.Type,
		ImageURL:    in.ImageURL,
	}
	if err := database.DB.Create(product).Error; err != nil {
		return nil, err
	}
	invalidateRobloxCache()
	return product, nil
}

// UpdateRobloxProduct applies a partial update; replacing the image deletes
// the previous file from disk.
func UpdateRobloxProduct(id uint, in RobloxProductInput) (*models.RobloxProduct, error) {
	var existing models.RobloxProduct
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
	if in.Amount > 0 {
		updates["amount"] = in.Amount
	}
	if in.Type != "" {
		updates["type"] = in.Type
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

	invalidateRobloxCache()

	var updated models.RobloxProduct
	if err := database.DB.First(&updated, id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteRobloxProduct hard deletes the row and removes the image file.
// Deleting a product with no image is a filesystem no-op.
func DeleteRobloxProduct(id uint) error {
	var product models.RobloxProduct
	if err := database.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := database.DB.Delete(&product).Error; err != nil {
		return err
	}

	if product.ImageURL != "" && storage.Default != nil {
		storage.Default.Remove(product.ImageURL)
	}

	invalidateRobloxCache()
	return nil
}
