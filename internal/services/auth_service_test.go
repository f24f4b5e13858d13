package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	setupTestDB(t)

	first, err := RegisterUser("owner", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "admin", first.Role)

	second, err := RegisterUser("customer", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "user", second.Role)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	setupTestDB(t)

	_, err := RegisterUser("taken", "password123")
	assert.NoError(t, err)

	_, err = RegisterUser("taken", "otherpassword")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginUser(t *testing.T) {
	setupTestDB(t)

	registered, err := RegisterUser("customer", "password123")
	assert.NoError(t, err)

	token, user, err := LoginUser("customer", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)

	_, _, err = LoginUser("customer", "wrongpassword")
	assert.Error(t, err)

	_, _, err = LoginUser("nobody", "password123")
	assert.Error(t, err)
}
