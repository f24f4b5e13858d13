package services

import (
	"errors"

	"github.com/perezbrayan/tienda/internal/database"
	"github.com/perezbrayan/tienda/internal/models"
	"github.com/perezbrayan/tienda/internal/storage"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidGameType = errors.New("invalid game type")
)

var validGameTypes = map[string]bool{
	models.GameTypeSupercell: true,
	models.GameTypeStreaming: true,
	models.GameTypeLol:       true,
}

type GameProductInput struct {
	Title           string
	Description     string
	Price           decimal.Decimal
	GameType        string
	ImageURL        string
	ProfileImageURL string
}

func FindGameProducts(gameType string) ([]models.GameProduct, error) {
	var products []models.GameProduct
	if err := database.DB.Where("game_type = ?", gameType).Order("created_at desc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func CreateGameProduct(in GameProductInput) (*models.GameProduct, error) {
	if !validGameTypes[in.GameType] {
		return nil, ErrInvalidGameType
	}

	product := &models.GameProduct{
		Title:           in.Title,
		Description:     in.Description,
		Price:           in.Price,
		GameType:        in.GameType,
		ImageURL:        in.ImageURL,
		ProfileImageURL: in.ProfileImageURL,
	}
	if err := database.DB.Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateGameProduct applies a partial update. When a new image replaces an
// old one, the old file is removed from disk after the row is updated.
func UpdateGameProduct(id uint, in GameProductInput) (*models.GameProduct, error) {
	if in.GameType != "" && !validGameTypes[in.GameType] {
		return nil, ErrInvalidGameType
	}

	var existing models.GameProduct
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
	if in.GameType != "" {
		updates["game_type"] = in.GameType
	}
	if in.ImageURL != "" {
		updates["image_url"] = in.ImageURL
	}
	if in.ProfileImageURL != "" {
		updates["profile_image_url"] = in.ProfileImageURL
	}

	// Updates writes the new values back into existing, so grab the old
	// image paths before it does.
	oldImage := existing.ImageURL
	oldProfileImage := existing.ProfileImageURL
	if err := database.DB.Model(&existing).Updates(updates).Error; err != nil {
		return nil, err
	}

	if storage.Default != nil {
		if in.ImageURL != "" && oldImage != "" && oldImage != in.ImageURL {
			storage.Default.Remove(oldImage)
		}
		if in.ProfileImageURL != "" && oldProfileImage != "" && oldProfileImage != in.ProfileImageURL {
			storage.Default.Remove(oldProfileImage)
		}
	}

	var updated models.GameProduct
	if err := database.DB.First(&updated, id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteGameProduct removes the row and any image files. Game products are
// hard deleted.
func DeleteGameProduct(id uint) error {
	var product models.GameProduct
	if err := database.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := database.DB.Delete(&product).Error; err != nil {
		return err
	}

	if storage.Default != nil {
		storage.Default.Remove(product.ImageURL)
		storage.Default.Remove(product.ProfileImageURL)
	}
	return nil
}
