package extras

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

// List godoc
// @Summary List active extras products
// @Description Soft-deleted products are excluded
// @Tags extras
// @Produce json
// @Success 200 {object} utils.Response{data=ProductListResponse}
// @Failure 500 {object} utils.Response
// @Router /extras/products [get]
func List(c *gin.Context) {
	products, err := services.FindActiveExtras()
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
// @Summary Create an extras product
// @Tags extras
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} utils.Response{data=models.ExtrasProduct}
// @Failure 400 {object} utils.Response
// @Router /extras/products [post]
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

	imageURL, ok := saveOptionalImage(c)
	if !ok {
		return
	}

	product, err := services.CreateExtrasProduct(services.ExtrasProductInput{
		Title:       title,
		Description: c.PostForm("description"),
		Price:       price,
		Category:    c.PostForm("category"),
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
// @Summary Update an extras product
// @Tags extras
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Product ID"
// @Success 200 {object} utils.Response{data=models.ExtrasProduct}
// @Failure 404 {object} utils.Response
// @Router /extras/products/{id} [put]
func Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid product ID"))
		return
	}

	input := services.ExtrasProductInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Status:      c.PostForm("status"),
	}
	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "price must be a decimal number"))
			return
		}
		input.Price = price
	}

	imageURL, ok := saveOptionalImage(c)
	if !ok {
		return
	}
	input.ImageURL = imageURL

	product, err := services.UpdateExtrasProduct(uint(id), input)
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
// @Summary Soft delete an extras product
// @Description Flips the status to 'deleted'; the row and its image remain
// @Tags extras
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Product ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /extras/products/{id} [delete]
func Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid product ID"))
		return
	}

	if err := services.SoftDeleteExtrasProduct(uint(id)); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete product"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Product deleted successfully", nil))
}

func saveOptionalImage(c *gin.Context) (string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", true
	}

	url, err := storage.Default.Save(file, storage.CategoryExtras, "extras", storage.ProductImagePolicy)
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
