package order

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/currency"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateOrder handles POST /orders
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order request", err)
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), userID, req, middleware.GetCountry(c))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEmptyOrder):
			response.BadRequest(c, "Cart is empty")
		case errors.Is(err, model.ErrCartNotOrderable):
			response.ErrorResponse(c, http.StatusBadRequest, "CART_NOT_ORDERABLE", err.Error())
		case errors.Is(err, currency.ErrUnsupportedCurrency):
			response.ErrorResponse(c, http.StatusBadRequest, "UNSUPPORTED_CURRENCY", err.Error())
		case errors.Is(err, currency.ErrRateSourceUnavailable):
			response.BadGateway(c, "Exchange rates are temporarily unavailable")
		default:
			response.InternalServerError(c, "Failed to place order")
		}
		return
	}

	response.Success(c, http.StatusCreated, order)
}

// ListOrders handles GET /orders
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.service.ListOrders(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, "Failed to list orders")
		return
	}

	response.Success(c, http.StatusOK, orders)
}

// GetOrder handles GET /orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			response.NotFound(c, "Order not found")
			return
		}
		response.InternalServerError(c, "Failed to get order")
		return
	}

	response.Success(c, http.StatusOK, order)
}
