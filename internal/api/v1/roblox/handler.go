package roblox

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/perezbrayan/tienda/internal/models"
	"github.com/perezbrayan/tienda/internal/services"
	"github.com/perezbrayan/tienda/internal/storage"
	"github.com/perezbrayan/tienda/internal/utils"
	"github.com/shopspring/decimal"
)

// List godoc
// @Summary List Roblox products
// @Tags roblox
// @Produce json
// @Success 200 {object} utils.Response{data=ProductListResponse}
// @Failure 500 {object} utils.Response
// @Router /roblox/products [get]
func List(c *gin.Context) {
	products, err := services.FindRobloxProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch products"))
		return
	}
	fillPlaceholders(products)
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Products retrieved successfully", ProductListResponse{Products: products}))
}

// ListByType godoc
// @Summary List Roblox products by type
// @Tags roblox
// @Produce json
// @Param type path string true "Product type (robux, bloxyfruit)"
// @Success 200 {object} utils.Response{data=ProductListResponse}
// @Failure 500 {object} utils.Response
// @Router /roblox/products/type/{type} [get]
func ListByType(c *gin.Context) {
	products, err := services.FindRobloxProductsByType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch products"))
		return
	}
	fillPlaceholders(products)
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Products retrieved successfully", ProductListResponse{Products: products}))
}

// CreateRobux godoc
// @Summary Create a Robux package
// @Description Shorthand creation: title and description are derived from the amount
// @Tags roblox
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} utils.Response{data=models.RobloxProduct}
// @Failure 400 {object} utils.Response
// @Router /roblox/robux [post]
func CreateRobux(c *gin.Context) {
	amount, err := strconv.Atoi(c.PostForm("amount"))
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "amount must be a positive integer"))
		return
	}
	price, err := decimal.NewFromString(c.PostForm("price"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "price must be a decimal number"))
		return
	}

	imageURL, ok := saveOptionalImage(c)
	if !ok {
		return
	}

	product, err := services.CreateRobuxPackage(amount, price, imageURL)
	if err != nil {
		if storage.Default != nil {
			storage.Default.Remove(imageURL)
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create product"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Robux package created successfully", product))
}

// Create godoc
// @Summary Create a Roblox product
// @Tags roblox
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} utils.Response{data=models.RobloxProduct}
// @Failure 400 {object} utils.Response
// @Router /roblox/products [post]
func Create(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "title is required"))
		return
	}
	price, err := decimal.NewFromString(c.PostForm("price"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "price must be a decimal number"))
		return
	}
	amount, _ := strconv.Atoi(c.PostForm("amount"))

	imageURL, ok := saveOptionalImage(c)
	if !ok {
		return
	}

	product, err := services.CreateRobloxProduct(services.RobloxProductInput{
		Title:       title,
		Description: c.PostForm("description"),
		Price:       price,
		Amount:      amount,
		Type:        c.PostForm("type"),
		ImageURL:    imageURL,
	})
	if err != nil {
		if storage.Default != nil {
			storage.Default.Remove(imageURL)
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create product"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Product created successfully", product))
}

// Update godoc
// @Summary Update a Roblox product
// @Description Partial update; uploading a new image deletes the replaced file
// @Tags roblox
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Product ID"
// @Success 200 {object} utils.Response{data=models.RobloxProduct}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /roblox/products/{id} [put]
func Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid product ID"))
		return
	}

	input := services.RobloxProductInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Type:        c.PostForm("type"),
	}
	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "price must be a decimal number"))
			return
		}
		input.Price = price
	}
	if amountStr := c.PostForm("amount"); amountStr != "" {
		amount, err := strconv.Atoi(amountStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "amount must be an integer"))
			return
		}
		input.Amount = amount
	}

	imageURL, ok := saveOptionalImage(c)
	if !ok {
		return
	}
	input.ImageURL = imageURL

	product, err := services.UpdateRobloxProduct(uint(id), input)
	if err != nil {
		if storage.Default != nil {
			storage.Default.Remove(imageURL)
		}
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update product"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Product updated successfully", product))
}

// Delete godoc
// @Summary Delete a Roblox product
// @Description Removes the row and its image file
// @Tags roblox
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Product ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /roblox/products/{id} [delete]
func Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid product ID"))
		return
	}

	if err := services.DeleteRobloxProduct(uint(id)); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete product"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Product deleted successfully", nil))
}

func fillPlaceholders(products []models.RobloxProduct) {
	for i := range products {
		if products[i].ImageURL == "" {
			products[i].ImageURL = storage.PlaceholderImage
		}
	}
}

func saveOptionalImage(c *gin.Context) (string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", true
	}

	url, err := storage.Default.Save(file, storage.CategoryRoblox, "roblox", storage.ProductImagePolicy)
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
