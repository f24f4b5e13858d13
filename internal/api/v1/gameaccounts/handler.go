package gameaccounts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/perezbrayan/tienda/internal/models"
	"github.com/perezbrayan/tienda/internal/services"
	"github.com/perezbrayan/tienda/internal/utils"
)

// Create godoc
// @Summary Register a game account
// @Description One account per (user, game); a second registration for the same game fails with 409.
// @Tags game-accounts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body CreateRequest true "Game account"
// @Success 201 {object} utils.Response{data=models.GameAccount}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /game-accounts [post]
func Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	account, err := services.CreateGameAccount(user.ID, req.GameType, req.GameAccountID)
	if err != nil {
		if errors.Is(err, services.ErrGameAccountExists) {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create game account"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Game account created successfully", account))
}

// Get godoc
// @Summary Get the caller's account for a game
// @Tags game-accounts
// @Produce json
// @Security ApiKeyAuth
// @Param gameType path string true "Game type"
// @Success 200 {object} utils.Response{data=models.GameAccount}
// @Failure 404 {object} utils.Response
// @Router /game-accounts/{gameType} [get]
func Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	account, err := services.GetGameAccount(user.ID, c.Param("gameType"))
	if err != nil {
		if errors.Is(err, services.ErrGameAccountNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Game account not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch game account"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Game account retrieved successfully", account))
}

// Update godoc
// @Summary Update a game account
// @Tags game-accounts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Account ID"
// @Param input body UpdateRequest true "New in-game identifier"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /game-accounts/{id} [put]
func Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid account ID"))
		return
	}

	var req UpdateRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := services.UpdateGameAccount(user.ID, uint(id), req.GameAccountID); err != nil {
		if errors.Is(err, services.ErrGameAccountNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Game account not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update game account"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Game account updated successfully", nil))
}

// Delete godoc
// @Summary Delete a game account
// @Tags game-accounts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Account ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /game-accounts/{id} [delete]
func Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid account ID"))
		return
	}

	if err := services.DeleteGameAccount(user.ID, uint(id)); err != nil {
		if errors.Is(err, services.ErrGameAccountNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Game account not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete game account"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Game account deleted successfully", nil))
}

func currentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Authentication required"))
		return models.User{}, false
	}
	user, ok := v.(models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Authentication required"))
		return models.User{}, false
	}
	return user, true
}
