package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/perezbrayan/tienda/internal/database"
	"github.com/perezbrayan/tienda/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points database.DB at a fresh in-memory sqlite database named
// after the test, so tests never see each other's rows.
func setupTestDB(t *testing.T) {
	t.Helper()

	// Subtest names carry "/" and "#", which sqlite would parse as URI path
	// and fragment.
	name := strings.NewReplacer("/", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.GameProduct{},
		&models.RobloxProduct{},
		&models.ExtrasProduct{},
		&models.FortniteOrder{},
		&models.PaymentProof{},
		&models.GameAccount{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	database.DB = db
}

// setupTestRedis wires database.RedisClient to a miniredis instance.
func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	prev := database.RedisClient
	database.RedisClient = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { database.RedisClient = prev })

	return mr
}
