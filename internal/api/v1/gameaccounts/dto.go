package gameaccounts

type CreateRequest struct {
	GameType      string `json:"game_type" binding:"required"`
	GameAccountID string `json:"game_account_id" binding:"required"`
}

type UpdateRequest struct {
	GameAccountID string `json:"game_account_id" binding:"required"`
}
