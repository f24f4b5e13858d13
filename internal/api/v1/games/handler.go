package games

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/perezbrayan/tienda/internal/services"
	"github.com/perezbrayan/tienda/internal/storage"
	"github.com/perezbrayan/tienda/internal/utils"
	"github.com/shopspring/decimal"
)

// ListByGameType godoc
// @Summary List products for a game
// @Tags game-products
// @Produce json
// @Param gameType path string true "Game type (supercell, streaming, lol)"
// @Success 200 {object} utils.Response{data=ProductListResponse}
// @Failure 500 {object} utils.Response
// @Router /products/games/{gameType} [get]
func ListByGameType(c *gin.Context) {
	products, err := services.FindGameProducts(c.Param("gameType"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch products"))
		return
	}

	for i := range products {
		if products[i].ImageURL == "" {
			products[i].ImageURL = storage.PlaceholderImage
		}
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Products retrieved successfully", ProductListResponse{Products: products}))
}

// Create godoc
// @Summary Create a game product
// @Description Multipart form with fields title, description, price, game_type and optional files image and profile_image
// @Tags game-products
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} utils.Response{data=models.GameProduct}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /products/games [post]
func Create(c *gin.Context) {
	title := c.PostForm("title")
	gameType := c.PostForm("game_type")
	if title == "" || gameType == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "title and game_type are required"))
		return
	}

	price, err := decimal.NewFromString(c.PostForm("price"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "price must be a decimal number"))
		return
	}

	imageURL, ok := saveOptionalImage(c, "image")
	if !ok {
		return
	}
	profileURL, ok := saveOptionalImage(c, "profile_image")
	if !ok {
		if imageURL != "" {
			storage.Default.Remove(imageURL)
		}
		return
	}

	product, err := services.CreateGameProduct(services.GameProductInput{
		Title:           title,
		Description:     c.PostForm("description"),
		Price:           price,
		GameType:        gameType,
		ImageURL:        imageURL,
		ProfileImageURL: profileURL,
	})
	if err != nil {
		// The row never landed; don't leave orphaned files behind.
		if storage.Default != nil {
			storage.Default.Remove(imageURL)
			storage.Default.Remove(profileURL)
		}
		if errors.Is(err, services.ErrInvalidGameType) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create product"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Product created successfully", product))
}

// Update godoc
// @Summary Update a game product
// @Tags game-products
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Product ID"
// @Success 200 {object} utils.Response{data=models.GameProduct}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /products/games/{id} [put]
func Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid product ID"))
		return
	}

	input := services.GameProductInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		GameType:    c.PostForm("game_type"),
	}
	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "price must be a decimal number"))
			return
		}
		input.Price = price
	}

	imageURL, ok := saveOptionalImage(c, "image")
	if !ok {
		return
	}
	input.ImageURL = imageURL

	profileURL, ok := saveOptionalImage(c, "profile_image")
	if !ok {
		if imageURL != "" {
			storage.Default.Remove(imageURL)
		}
		return
	}
	input.ProfileImageURL = profileURL

	product, err := services.UpdateGameProduct(uint(id), input)
	if err != nil {
		if storage.Default != nil {
			storage.Default.Remove(imageURL)
			storage.Default.Remove(profileURL)
		}
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Product not found"))
		case errors.Is(err, services.ErrInvalidGameType):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update product"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Product updated successfully", product))
}

// Delete godoc
// @Summary Delete a game product
// @Description Removes the row and its image files
// @Tags game-products
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Product ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /products/games/{id} [delete]
func Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid product ID"))
		return
	}

	if err := services.DeleteGameProduct(uint(id)); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete product"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Product deleted successfully", nil))
}

// saveOptionalImage stores the named multipart file if present. It writes the
// error response itself and reports ok=false when the upload is invalid.
func saveOptionalImage(c *gin.Context, field string) (string, bool) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", true // field absent, nothing to save
	}

	url, err := storage.Default.Save(file, storage.CategoryGames, field, storage.ProductImagePolicy)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrFileTooLarge) || errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrNoFile) {
			status = http.StatusBadRequest
		}
		c.JSON(status, utils.NewErrorResponse(status, err.Error()))
		return "", false
	}
	return url, true
}
