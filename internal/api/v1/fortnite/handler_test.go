package fortnite_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	"github.com/perezbrayan/tienda/internal/api/v1/fortnite"
	"github.com/perezbrayan/tienda/internal/database"
	"github.com/perezbrayan/tienda/internal/fulfillment"
	"github.com/perezbrayan/tienda/internal/models"
	"github.com/perezbrayan/tienda/internal/services"
	"github.com/perezbrayan/tienda/internal/storage"
	"github.com/perezbrayan/tienda/internal/utils"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}

type stubDriver struct {
	calls int
	err   error
}

func (s *stubDriver) SendGift(ctx context.Context, req fulfillment.GiftRequest) (*fulfillment.GiftResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &fulfillment.GiftResult{}, nil
}

func setupTest(t *testing.T) (*gin.Engine, *stubDriver) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.FortniteOrder{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.DB = db

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	database.RedisClient = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	if err := storage.Init(t.TempDir()); err != nil {
		t.Fatalf("failed to init test storage: %v", err)
	}

	driver := &stubDriver{}
	prev := services.GiftSender
	services.GiftSender = driver
	t.Cleanup(func() { services.GiftSender = prev })

	router := gin.New()
	fortnite.RegisterRoutes(router.Group("/api"))
	return router, driver
}

func orderBody(t *testing.T, fields map[string]string, withReceipt bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		writer.WriteField(k, v)
	}
	if withReceipt {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="payment_receipt"; filename="receipt.png"`)
		header.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create multipart part: %v", err)
		}
		part.Write(pngBytes)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

func receiptFiles(t *testing.T) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(storage.Default.BaseDir, "payment_proofs", "*"))
	if err != nil {
		t.Fatalf("failed to glob uploads: %v", err)
	}
	return matches
}

func createOrder(t *testing.T, router *gin.Engine) models.FortniteOrder {
	t.Helper()
	body, contentType := orderBody(t, map[string]string{
		"username":  "ninja_fan_99",
		"offer_id":  "offer-abc",
		"item_name": "Galaxy Skin",
		"price":     "24.99",
		"is_bundle": "true",
		"metadata":  `{"image":"https://cdn.example/skin.png"}`,
	}, true)

	req, _ := http.NewRequest(http.MethodPost, "/api/fortnite/orders", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Data models.FortniteOrder `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateToken(1, "admin")
	if err != nil {
		t.Fatalf("failed to generate admin token: %v", err)
	}
	return token
}

func putStatus(t *testing.T, router *gin.Engine, orderID uint, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/api/fortnite/orders/%d/status", orderID), bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrder(t *testing.T) {
	router, _ := setupTest(t)

	order := createOrder(t, router)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, order.IsBundle)
	assert.Nil(t, order.UserID)
	assert.Len(t, receiptFiles(t), 1)
	assert.True(t, storage.Default.Exists(order.PaymentReceipt))
}

func TestCreateOrderMissingReceipt(t *testing.T) {
	router, _ := setupTest(t)

	body, contentType := orderBody(t, map[string]string{
		"username":  "ninja_fan_99",
		"offer_id":  "offer-abc",
		"item_name": "Galaxy Skin",
		"price":     "24.99",
	}, false)

	req, _ := http.NewRequest(http.MethodPost, "/api/fortnite/orders", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// No row and no file from the rejected submission.
	var count int64
	database.DB.Model(&models.FortniteOrder{}).Count(&count)
	assert.Zero(t, count)
	assert.Empty(t, receiptFiles(t))
}

func TestCreateOrderInvalidMetadata(t *testing.T) {
	router, _ := setupTest(t)

	body, contentType := orderBody(t, map[string]string{
		"username":  "ninja_fan_99",
		"offer_id":  "offer-abc",
		"item_name": "Galaxy Skin",
		"price":     "24.99",
		"metadata":  "{not json",
	}, true)

	req, _ := http.NewRequest(http.MethodPost, "/api/fortnite/orders", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, receiptFiles(t))
}

func TestCompleteOrderDeliversGift(t *testing.T) {
	router, driver := setupTest(t)
	order := createOrder(t, router)

	w := putStatus(t, router, order.ID, `{"status":"completed"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, driver.calls)

	var resp struct {
		Data models.FortniteOrder `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.OrderStatusCompleted, resp.Data.Status)

	// Already finalized: a second update conflicts and sends nothing.
	w = putStatus(t, router, order.ID, `{"status":"failed","error_message":"oops"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 1, driver.calls)
}

func TestCompleteOrderGiftFailure(t *testing.T) {
	router, driver := setupTest(t)
	order := createOrder(t, router)

	driver.err = errors.New("bot unreachable")
	w := putStatus(t, router, order.ID, `{"status":"completed"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// The order is still pending; the admin can retry once the bot is back.
	reloaded, err := services.GetFortniteOrderByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, reloaded.Status)

	driver.err = nil
	w = putStatus(t, router, order.ID, `{"status":"completed"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, driver.calls)
}

func TestUpdateStatusValidation(t *testing.T) {
	router, driver := setupTest(t)
	order := createOrder(t, router)

	w := putStatus(t, router, order.ID, `{"status":"pending"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = putStatus(t, router, 9999, `{"status":"completed"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, driver.calls)
}
