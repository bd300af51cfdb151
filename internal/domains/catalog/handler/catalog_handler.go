package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/catalog/service"
	"storefront-backend/internal/domains/currency"
	"storefront-backend/internal/shared/response"
)

// Handler handles HTTP requests for the catalog read API.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// GetProduct handles GET /products/:slug?currency=usd
func (h *Handler) GetProduct(c *gin.Context) {
	slug := c.Param("slug")
	cur := c.Query("currency")

	product, err := h.service.GetProduct(c.Request.Context(), slug, cur)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrProductNotFound):
			response.NotFound(c, "Product not found")
		case errors.Is(err, currency.ErrUnsupportedCurrency):
			response.ErrorResponse(c, http.StatusBadRequest, "UNSUPPORTED_CURRENCY", err.Error())
		case errors.Is(err, currency.ErrRateSourceUnavailable):
			response.BadGateway(c, "Exchange rates are temporarily unavailable")
		default:
			response.InternalServerError(c, "Failed to get product")
		}
		return
	}

	response.Success(c, http.StatusOK, product)
}
