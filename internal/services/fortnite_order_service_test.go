package services

import (
	"context"
	"errors"
	"testing"

	"github.com/perezbrayan/tienda/internal/fulfillment"
	"github.com/perezbrayan/tienda/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeGiftDriver struct {
	calls int
	last  fulfillment.GiftRequest
	err   error
}

func (f *fakeGiftDriver) SendGift(ctx context.Context, req fulfillment.GiftRequest) (*fulfillment.GiftResult, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &fulfillment.GiftResult{}, nil
}

func swapGiftSender(t *testing.T, d fulfillment.Driver) {
	t.Helper()
	prev := GiftSender
	GiftSender = d
	t.Cleanup(func() { GiftSender = prev })
}

func createTestOrder(t *testing.T) *models.FortniteOrder {
	t.Helper()
	order, err := CreateFortniteOrder(CreateFortniteOrderInput{
		Username:       "test_player",
		OfferID:        "offer-abc",
		ItemName:       "Galaxy Skin",
		Price:          decimal.NewFromFloat(24.99),
		IsBundle:       true,
		PaymentReceipt: "/uploads/payment_proofs/receipt-1.png",
	})
	if err != nil {
		t.Fatalf("failed to create test order: %v", err)
	}
	return order
}

func TestCreateFortniteOrderStartsPending(t *testing.T) {
	setupTestDB(t)

	order := createTestOrder(t)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Nil(t, order.UserID)
	assert.NotZero(t, order.ID)
}

func TestUpdateOrderStatusCompletedSendsGift(t *testing.T) {
	setupTestDB(t)
	driver := &fakeGiftDriver{}
	swapGiftSender(t, driver)

	order := createTestOrder(t)

	updated, err := UpdateFortniteOrderStatus(context.Background(), order.ID, models.OrderStatusCompleted, "")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)

	assert.Equal(t, 1, driver.calls)
	assert.Equal(t, "test_player", driver.last.Username)
	assert.Equal(t, "offer-abc", driver.last.OfferID)
	assert.True(t, driver.last.IsBundle)
	assert.Equal(t, BotID, driver.last.BotID)
}

func TestUpdateOrderStatusGiftFailureKeepsPending(t *testing.T) {
	setupTestDB(t)
	driver := &fakeGiftDriver{err: errors.New("bot unreachable")}
	swapGiftSender(t, driver)

	order := createTestOrder(t)

	_, err := UpdateFortniteOrderStatus(context.Background(), order.ID, models.OrderStatusCompleted, "")
	assert.ErrorIs(t, err, ErrFulfillment)

	reloaded, err := GetFortniteOrderByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, reloaded.Status)

	// Delivery recovers; the same order can be completed on retry.
	driver.err = nil
	updated, err := UpdateFortniteOrderStatus(context.Background(), order.ID, models.OrderStatusCompleted, "")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)
	assert.Equal(t, 2, driver.calls)
}

func TestUpdateOrderStatusFailedSkipsGift(t *testing.T) {
	setupTestDB(t)
	driver := &fakeGiftDriver{}
	swapGiftSender(t, driver)

	order := createTestOrder(t)

	updated, err := UpdateFortniteOrderStatus(context.Background(), order.ID, models.OrderStatusFailed, "payment never arrived")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusFailed, updated.Status)
	assert.Equal(t, "payment never arrived", updated.ErrorMessage)
	assert.Equal(t, 0, driver.calls)
}

func TestUpdateOrderStatusTerminalIsRejected(t *testing.T) {
	setupTestDB(t)
	driver := &fakeGiftDriver{}
	swapGiftSender(t, driver)

	order := createTestOrder(t)

	_, err := UpdateFortniteOrderStatus(context.Background(), order.ID, models.OrderStatusCompleted, "")
	assert.NoError(t, err)

	_, err = UpdateFortniteOrderStatus(context.Background(), order.ID, models.OrderStatusFailed, "changed my mind")
	assert.ErrorIs(t, err, ErrOrderFinalized)

	reloaded, _ := GetFortniteOrderByID(order.ID)
	assert.Equal(t, models.OrderStatusCompleted, reloaded.Status)
	assert.Equal(t, 1, driver.calls)
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	setupTestDB(t)
	swapGiftSender(t, &fakeGiftDriver{})

	order := createTestOrder(t)

	_, err := UpdateFortniteOrderStatus(context.Background(), order.ID, models.OrderStatusPending, "")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)

	_, err = UpdateFortniteOrderStatus(context.Background(), 9999, models.OrderStatusCompleted, "")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestFindFortniteOrdersByUser(t *testing.T) {
	setupTestDB(t)

	userID := uint(3)
	_, err := CreateFortniteOrder(CreateFortniteOrderInput{
		UserID:         &userID,
		Username:       "owner",
		OfferID:        "offer-1",
		ItemName:       "Pickaxe",
		Price:          decimal.NewFromInt(10),
		PaymentReceipt: "/uploads/payment_proofs/a.png",
	})
	assert.NoError(t, err)
	createTestOrder(t) // guest order, should not show up

	orders, err := FindFortniteOrdersByUser(userID)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "owner", orders[0].Username)

	all, err := FindFortniteOrders()
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
