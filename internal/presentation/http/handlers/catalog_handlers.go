package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/catalog"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/logging"
)

// CatalogHandlers serves the storefront catalog document
type CatalogHandlers struct {
	productInfo *catalog.ProductInfo
	logger      *logging.ChanneledLogger
}

// NewCatalogHandlers creates catalog handlers with injected dependencies
func NewCatalogHandlers(productInfo *catalog.ProductInfo, logger *logging.ChanneledLogger) *CatalogHandlers {
	return &CatalogHandlers{
		productInfo: productInfo,
		logger:      logger,
	}
}

// GetProductInfo returns the full catalog document as loaded at startup
func (h *CatalogHandlers) GetProductInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.productInfo)
}
