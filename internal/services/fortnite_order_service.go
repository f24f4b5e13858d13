package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/perezbrayan/tienda/internal/database"
	"github.com/perezbrayan/tienda/internal/fulfillment"
	"github.com/perezbrayan/tienda/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderFinalized     = errors.New("order has already been completed or failed")
	ErrInvalidOrderStatus = errors.New("invalid order status for this operation")
	ErrFulfillment        = errors.New("gift delivery failed")
)

// GiftSender delivers the purchased item when an order is completed.
// Assigned at startup; tests swap in a fake.
var GiftSender fulfillment.Driver

// BotID identifies which bot account sends gifts.
var BotID = 1

type CreateFortniteOrderInput struct {
	UserID         *uint
	Username       string
	OfferID        string
	ItemName       string
	Price          decimal.Decimal
	IsBundle       bool
	Metadata       datatypes.JSON
	PaymentReceipt string
}

func CreateFortniteOrder(in CreateFortniteOrderInput) (*models.FortniteOrder, error) {
	order := &models.FortniteOrder{
		UserID:         in.UserID,
		Username:       in.Username,
		OfferID:        in.OfferID,
		ItemName:       in.ItemName,
		Price:          in.Price,
		IsBundle:       in.IsBundle,
		Metadata:       in.Metadata,
		Status:         models.OrderStatusPending,
		PaymentReceipt: in.PaymentReceipt,
	}

	if err := database.DB.Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func FindFortniteOrders() ([]models.FortniteOrder, error) {
	var orders []models.FortniteOrder
	if err := database.DB.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func FindFortniteOrdersByUser(userID uint) ([]models.FortniteOrder, error) {
	var orders []models.FortniteOrder
	if err := database.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func GetFortniteOrderByID(id uint) (*models.FortniteOrder, error) {
	var order models.FortniteOrder
	if err := database.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateFortniteOrderStatus moves a pending order to a terminal state.
// Completing an order sends the gift first; the status write only happens
// after the bot reports success, so a delivery failure leaves the order
// pending and the admin can retry. The write itself is a compare-and-swap
// on status='pending' so two concurrent updates cannot both win.
func UpdateFortniteOrderStatus(ctx context.Context, id uint, status models.OrderStatus, errorMessage string) (*models.FortniteOrder, error) {
	if status != models.OrderStatusCompleted && status != models.OrderStatusFailed {
		return nil, ErrInvalidOrderStatus
	}

	order, err := GetFortniteOrderByID(id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrOrderFinalized
	}

	if status == models.OrderStatusCompleted {
		if GiftSender == nil {
			return nil, fmt.Errorf("%w: no fulfillment driver configured", ErrFulfillment)
		}
		if _, err := GiftSender.SendGift(ctx, fulfillment.GiftRequest{
			Username: order.Username,
			OfferID:  order.OfferID,
			Price:    order.Price,
			IsBundle: order.IsBundle,
			BotID:    BotID,
		}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFulfillment, err)
		}
	}

	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if status == models.OrderStatusFailed {
		updates["error_message"] = errorMessage
	}

	result := database.DB.Model(&models.FortniteOrder{}).
		Where("id = ? AND status = ?", id, models.OrderStatusPending).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Lost a race with a concurrent update.
		return nil, ErrOrderFinalized
	}

	return GetFortniteOrderByID(id)
}
