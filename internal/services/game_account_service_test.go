package services

import (
	"testing"

	"github.com/perezbrayan/tienda/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCreateGameAccountOnePerGame(t *testing.T) {
	setupTestDB(t)

	account, err := CreateGameAccount(1, models.StoreTypeRoblox, "builderman")
	assert.NoError(t, err)
	assert.NotZero(t, account.ID)

	_, err = CreateGameAccount(1, models.StoreTypeRoblox, "another_name")
	assert.ErrorIs(t, err, ErrGameAccountExists)

	// Same game for a different user, and a different game for the same
	// user, are both fine.
	_, err = CreateGameAccount(2, models.StoreTypeRoblox, "builderman")
	assert.NoError(t, err)
	_, err = CreateGameAccount(1, models.StoreTypeSupercell, "#2PP")
	assert.NoError(t, err)
}

func TestGetGameAccount(t *testing.T) {
	setupTestDB(t)

	_, err := CreateGameAccount(1, models.StoreTypeLeague, "Faker#KR1")
	assert.NoError(t, err)

	account, err := GetGameAccount(1, models.StoreTypeLeague)
	assert.NoError(t, err)
	assert.Equal(t, "Faker#KR1", account.GameAccountID)

	_, err = GetGameAccount(1, models.StoreTypeSupercell)
	assert.ErrorIs(t, err, ErrGameAccountNotFound)
}

func TestUpdateGameAccount(t *testing.T) {
	setupTestDB(t)

	account, err := CreateGameAccount(1, models.StoreTypeRoblox, "old_name")
	assert.NoError(t, err)

	assert.NoError(t, UpdateGameAccount(1, account.ID, "new_name"))

	reloaded, err := GetGameAccount(1, models.StoreTypeRoblox)
	assert.NoError(t, err)
	assert.Equal(t, "new_name", reloaded.GameAccountID)

	// Another user cannot touch it.
	assert.ErrorIs(t, UpdateGameAccount(2, account.ID, "stolen"), ErrGameAccountNotFound)
	assert.ErrorIs(t, UpdateGameAccount(1, 9999, "x"), ErrGameAccountNotFound)
}

func TestDeleteGameAccount(t *testing.T) {
	setupTestDB(t)

	account, err := CreateGameAccount(1, models.StoreTypeRoblox, "builderman")
	assert.NoError(t, err)

	assert.ErrorIs(t, DeleteGameAccount(2, account.ID), ErrGameAccountNotFound)
	assert.NoError(t, DeleteGameAccount(1, account.ID))
	assert.ErrorIs(t, DeleteGameAccount(1, account.ID), ErrGameAccountNotFound)

	// Deleting frees the (user, game) slot for a new registration.
	_, err = CreateGameAccount(1, models.StoreTypeRoblox, "fresh_start")
	assert.NoError(t, err)
}
