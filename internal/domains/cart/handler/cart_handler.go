package cart

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogModel "storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/cart/service"
	"storefront-backend/internal/domains/currency"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
)

// Handler handles HTTP requests for cart operations.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// GetCart handles GET /cart?currency=usd&country=SA
// Guests get an empty priced view; they price their local cart through
// POST /cart/price instead.
func (h *Handler) GetCart(c *gin.Context) {
	currencyCode := c.Query("currency")
	country := middleware.GetCountry(c)

	userID, authenticated := middleware.GetAuthenticatedUserID(c)

	var (
		cart *model.PricedCart
		err  error
	)
	if authenticated {
		cart, err = h.service.PriceUserCart(c.Request.Context(), userID, currencyCode, country)
	} else {
		cart, err = h.service.PriceLines(c.Request.Context(), model.Lines{}, currencyCode, country)
	}
	if err != nil {
		h.respondError(c, err, "Failed to get cart")
		return
	}

	response.Success(c, http.StatusOK, cart)
}

// PriceGuestCart handles POST /cart/price?currency=usd
// The posted payload is normalized into cart lines before pricing;
// entries without a slug or with a non-positive quantity are dropped.
func (h *Handler) PriceGuestCart(c *gin.Context) {
	var payload model.GuestCartPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := payload.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid cart payload", err)
		return
	}

	cart, err := h.service.PriceLines(c.Request.Context(), payload.Lines(), c.Query("currency"), middleware.GetCountry(c))
	if err != nil {
		h.respondError(c, err, "Failed to price cart")
		return
	}

	response.Success(c, http.StatusOK, cart)
}

// AddItem handles POST /cart/items?qty=2
func (h *Handler) AddItem(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", err)
		return
	}

	qty := 1
	if raw := c.Query("qty"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.BadRequest(c, "qty must be a non-negative integer")
			return
		}
		qty = parsed
	}

	resp, err := h.service.AddItem(c.Request.Context(), userID, req, qty)
	if err != nil {
		h.respondError(c, err, "Failed to add item to cart")
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// UpdateQuantity handles PUT /cart/items
func (h *Handler) UpdateQuantity(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", err)
		return
	}

	resp, err := h.service.UpdateQuantity(c.Request.Context(), userID, req)
	if err != nil {
		h.respondError(c, err, "Failed to update cart")
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// RemoveItem handles DELETE /cart/items/:slug
// An optional body scopes the removal to a variant/size selection.
func (h *Handler) RemoveItem(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.RemoveItemRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	resp, err := h.service.RemoveItem(c.Request.Context(), userID, c.Param("slug"), req)
	if err != nil {
		h.respondError(c, err, "Failed to remove item from cart")
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetItem handles GET /cart/items/:slug?color=Red&size=M
func (h *Handler) GetItem(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	line, err := h.service.GetLine(c.Request.Context(), userID, c.Param("slug"), c.Query("color"), c.Query("size"))
	if err != nil {
		h.respondError(c, err, "Failed to get cart item")
		return
	}

	response.Success(c, http.StatusOK, line)
}

// GetQuantity handles GET /cart/items/:slug/quantity?color=Red&size=M
func (h *Handler) GetQuantity(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	qty, err := h.service.GetQuantity(c.Request.Context(), userID, c.Param("slug"), c.Query("color"), c.Query("size"))
	if err != nil {
		h.respondError(c, err, "Failed to get quantity")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quantity": qty})
}

// MergeGuestCart handles POST /cart/merge
// Called once after login with the guest's local cart. Quantities for
// matching selections are added, capped by stock and the per-line
// limit; the client clears its local cart afterwards.
func (h *Handler) MergeGuestCart(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var payload model.GuestCartPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := payload.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid cart payload", err)
		return
	}

	merged, err := h.service.MergeGuestCart(c.Request.Context(), userID, payload.Lines())
	if err != nil {
		h.respondError(c, err, "Failed to merge cart")
		return
	}

	response.Success(c, http.StatusOK, model.CartResponse{
		Message: "Cart merged",
		Count:   len(merged),
		Cart:    merged,
	})
}

// ValidateCart handles POST /cart/validate?currency=usd&country=SA
// Prices the authenticated user's cart, or a posted guest payload, and
// reports the eligibility split plus stock problems without mutating
// anything.
func (h *Handler) ValidateCart(c *gin.Context) {
	var payload model.GuestCartPayload
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
		if err := payload.Validate(); err != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid cart payload", err)
			return
		}
	}

	lines := payload.Lines()
	if len(lines) == 0 {
		if userID, ok := middleware.GetAuthenticatedUserID(c); ok {
			loaded, err := h.service.GetLines(c.Request.Context(), userID)
			if err != nil {
				h.respondError(c, err, "Failed to validate cart")
				return
			}
			lines = loaded
		}
	}

	cart, err := h.service.PriceLines(c.Request.Context(), lines, c.Query("currency"), middleware.GetCountry(c))
	if err != nil {
		h.respondError(c, err, "Failed to validate cart")
		return
	}

	response.Success(c, http.StatusOK, cart)
}

// respondError maps domain errors to the response envelope.
func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	var stockErr *model.InsufficientStockError
	var limitErr *model.QuantityLimitError

	switch {
	case errors.Is(err, catalogModel.ErrProductNotFound):
		response.NotFound(c, "Product not found")
	case errors.Is(err, catalogModel.ErrVariantNotFound),
		errors.Is(err, catalogModel.ErrSizeNotFound),
		errors.Is(err, catalogModel.ErrSelectionNotFound):
		response.ErrorResponse(c, http.StatusBadRequest, "SELECTION_NOT_FOUND", err.Error())
	case errors.Is(err, model.ErrCartLineNotFound):
		response.NotFound(c, "Item not found in cart")
	case errors.As(err, &stockErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", stockErr.Error(), gin.H{"available": stockErr.Available})
	case errors.As(err, &limitErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "QUANTITY_LIMIT_EXCEEDED", limitErr.Error(), gin.H{"limit": limitErr.Limit})
	case errors.Is(err, currency.ErrUnsupportedCurrency):
		response.ErrorResponse(c, http.StatusBadRequest, "UNSUPPORTED_CURRENCY", err.Error())
	case errors.Is(err, currency.ErrRateSourceUnavailable):
		response.BadGateway(c, "Exchange rates are temporarily unavailable")
	default:
		response.InternalServerError(c, fallback)
	}
}
