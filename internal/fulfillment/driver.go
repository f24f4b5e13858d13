package fulfillment

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// GiftRequest is the payload for a gift delivery. Field names follow the
// bot service's API.
type GiftRequest struct {
	Username string          `json:"username"`
	OfferID  string          `json:"offerId"`
	Price    decimal.Decimal `json:"price"`
	IsBundle bool            `json:"isBundle"`
	BotID    int             `json:"botId"`
}

// GiftResult carries the bot service's raw response for the admin to inspect.
type GiftResult struct {
	Raw json.RawMessage `json:"raw"`
}

// Driver is the interface a gift-delivery backend must implement.
// Delivery is at-least-once: a crash between a successful SendGift and the
// order-status write can cause a re-delivery attempt on retry.
type Driver interface {
	SendGift(ctx context.Context, req GiftRequest) (*GiftResult, error)
}
