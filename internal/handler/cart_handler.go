package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type cartProductRequest struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	Image     string  `json:"image"`
}

type upsertCartRequest struct {
	UserID  string             `json:"userId"`
	Product cartProductRequest `json:"product"`
}

type setQuantityRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, guard echo.MiddlewareFunc) {
	g := e.Group("/cart", guarded(guard)...)

	g.GET("", h.getCart)
	g.POST("", h.upsertItem)
	g.PATCH("", h.setQuantity)
	g.DELETE("", h.removeItem)
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID, err := ownerID(c, c.QueryParam("userId"))
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// 同一商品は数量加算
func (h *CartHandler) upsertItem(c echo.Context) error {
	var req upsertCartRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}
	userID, err := ownerID(c, req.UserID)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.UpsertLineItem(c.Request().Context(), userID, usecase.CartItemInput{
		ProductID: req.Product.ProductID,
		Name:      req.Product.Name,
		Price:     req.Product.Price,
		Quantity:  req.Product.Quantity,
		Image:     req.Product.Image,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) setQuantity(c echo.Context) error {
	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}
	userID, err := ownerID(c, req.UserID)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.SetQuantity(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	userID, err := ownerID(c, c.QueryParam("userId"))
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.RemoveLineItem(c.Request().Context(), userID, c.QueryParam("productId"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
