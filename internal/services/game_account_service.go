package services

import (
	"errors"
	"time"

	"github.com/perezbrayan/tienda/internal/database"
	"github.com/perezbrayan/tienda/internal/models"
	"gorm.io/gorm"
)

var (
	ErrGameAccountNotFound = errors.New("game account not found")
	ErrGameAccountExists   = errors.New("a game account for this game already exists")
)

// CreateGameAccount registers an in-game identifier for a user. One account
// per (user, game): a second registration for the same game is rejected.
func CreateGameAccount(userID uint, gameType, gameAccountID string) (*models.GameAccount, error) {
	var existing models.GameAccount
	err := database.DB.Where("user_id = ? AND game_type = ?", userID, gameType).First(&existing).Error
	if err == nil {
		return nil, ErrGameAccountExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	account := &models.GameAccount{
		UserID:        userID,
		GameType:      gameType,
		GameAccountID: gameAccountID,
	}
	if err := database.DB.Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func GetGameAccount(userID uint, gameType string) (*models.GameAccount, error) {
	var account models.GameAccount
	if err := database.DB.Where("user_id = ? AND game_type = ?", userID, gameType).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// UpdateGameAccount is scoped to the owner: another user's account ID reads
// as not found.
func UpdateGameAccount(userID, id uint, gameAccountID string) error {
	result := database.DB.Model(&models.GameAccount{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"game_account_id": gameAccountID,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGameAccountNotFound
	}
	return nil
}

func DeleteGameAccount(userID, id uint) error {
	result := database.DB.Where("user_id = ?", userID).Delete(&models.GameAccount{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGameAccountNotFound
	}
	return nil
}
