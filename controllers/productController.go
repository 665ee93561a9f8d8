package controllers

import (
	"net/http"

	"classroom-tools/models"

	"github.com/gin-gonic/gin"
)

// CreateProduct handles creating a new product
func (h *Handler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.Store.CreateProduct(c.Request.Context(), product)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListProducts retrieves all products
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.Store.ListProducts(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct retrieves a product by code
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.Store.GetProduct(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct handles updating an existing product
func (h *Handler) UpdateProduct(c *gin.Context) {
	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, err)
		return
	}
	product, err := h.Store.UpdateProduct(c.Request.Context(), c.Param("code"), update)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.Store.DeleteProduct(c.Request.Context(), c.Param("code")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
