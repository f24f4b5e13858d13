package models

import "time"

// GameAccount is a saved in-game identifier a user registers for a specific
// game, used to route fulfillment. One account per (user, game).
type GameAccount struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	UserID        uint      `gorm:"uniqueIndex:idx_user_game;not null" json:"user_id"`
	GameType      string    `gorm:"type:varchar(50);uniqueIndex:idx_user_game;not null" json:"game_type"`
	GameAccountID string    `gorm:"not null" json:"game_account_id"`
}

func (GameAccount) TableName() string {
	return "game_accounts"
}
