package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oma0256/store-manager-api/internal/middleware"
	"github.com/oma0256/store-manager-api/internal/service"
)

// SaleHandler handles sale HTTP requests.
type SaleHandler struct {
	saleService service.SaleService
}

// NewSaleHandler creates a new SaleHandler instance.
func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// SaleRequest represents the sale creation payload.
type SaleRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int64 `json:"quantity" binding:"required"`
}

// List returns sales scoped by the caller's role. The reverted query
// parameter selects the reverted subset instead of the active ledger.
func (h *SaleHandler) List(c *gin.Context) {
	reverted := c.Query("reverted") == "true"

	sales, err := h.saleService.ListSales(c.Request.Context(), middleware.CurrentUser(c), reverted)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Sale records returned successfully",
		"sale_records": sales,
	})
}

// Get returns a single sale, enforcing ownership for attendants.
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Sale record returned successfully",
		"sale_record": sale,
	})
}

// Create records a sale. Store attendant only.
func (h *SaleHandler) Create(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "Product id and quantity fields are required")
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), middleware.CurrentUser(c), req.ProductID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Sale made successfully",
		"sale_record": sale,
	})
}

// Revert reverses a sale, restoring the product's stock. Store owner only.
func (h *SaleHandler) Revert(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	sale, err := h.saleService.RevertSale(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Sale reverted successfully",
		"sale_record": sale,
	})
}
