package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type placeOrderRequest struct {
	UserID string `json:"userId"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, guard echo.MiddlewareFunc) {
	g := e.Group("/orders", guarded(guard)...)

	g.POST("", h.placeOrder)
	g.GET("", h.listOrders)
}

// カートから注文（Idempotency-Keyがあれば同じ注文を返す）
func (h *OrderHandler) placeOrder(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}
	userID, err := ownerID(c, req.UserID)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		UserID:         userID,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// userIdが無ければ、認証時は本人・未認証時は全件
func (h *OrderHandler) listOrders(c echo.Context) error {
	userID, err := ownerID(c, c.QueryParam("userId"))
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
