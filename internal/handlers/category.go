package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oma0256/store-manager-api/internal/middleware"
	"github.com/oma0256/store-manager-api/internal/service"
)

// CategoryHandler handles category HTTP requests.
type CategoryHandler struct {
	catalogService service.CatalogService
}

// NewCategoryHandler creates a new CategoryHandler instance.
func NewCategoryHandler(catalogService service.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalogService: catalogService}
}

// CategoryRequest represents the category create/update payload.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// List returns all categories.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Categories returned successfully",
		"categories": categories,
	})
}

// Create adds a product category. Store owner only.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "The category name is required")
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), middleware.CurrentUser(c), req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Successfully created product category",
		"category": category,
	})
}

// Update modifies a category. Store owner only.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "The category name is required")
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), middleware.CurrentUser(c), id, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Category updated successfully",
		"category": category,
	})
}

// Delete removes a category, detaching its products. Store owner only.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category has been deleted successfully"})
}
