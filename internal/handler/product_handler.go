package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopmate/shopmate-bot/internal/service"
	"github.com/shopmate/shopmate-bot/internal/utils"
)

// ProductHandler handles catalog CRUD HTTP endpoints for the dashboard.
type ProductHandler struct {
	catalog *service.CatalogService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(catalog *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products := h.catalog.ListProducts(c.Request.Context())
	utils.Success(c, 200, "Products retrieved", products)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.catalog.AddProduct(c.Request.Context(), &req)
	if err != nil {
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "must not") {
			utils.Error(c, 400, "INVALID_REQUEST", err.Error())
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create product")
		return
	}

	utils.Success(c, 201, "Product created successfully", product)
}

// DeleteProduct handles DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	removed, err := h.catalog.RemoveProduct(c.Request.Context(), id)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete product")
		return
	}
	if !removed {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	c.Status(204)
}
