package server

import (
	"github.com/labstack/echo/v4"
)

// guardがnilなら認証なし
func RegisterRoutes(e *echo.Echo, h Handlers, guard echo.MiddlewareFunc) {
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e, guard)
	h.Cart.RegisterRoutes(e, guard)
	h.Order.RegisterRoutes(e, guard)
}
