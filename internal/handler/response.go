package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorResponse{Error: usecase.CodeForStatus(status), Message: message})
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError {
			log.Ctx(c.Request().Context()).Error().Err(err).Msg("request failed")
		}
		return c.JSON(he.Status, ErrorResponse{Error: he.Code, Message: he.Message})
	}

	//500（詳細はログだけ）
	log.Ctx(c.Request().Context()).Error().Err(err).Msg("request failed")
	return errorJSON(c, http.StatusInternalServerError, "internal error")
}

// トークンがあるとき、userIdは本人（IDかemail）でなければならない。
// 保存キーはemailに揃える（省略時も本人）
func ownerID(c echo.Context, userID string) (string, error) {
	sub := middleware.UserID(c)
	if sub == "" {
		return userID, nil
	}

	email := middleware.UserEmail(c)
	owner := email
	if owner == "" {
		owner = sub
	}
	if userID == "" || userID == sub || userID == email {
		return owner, nil
	}
	return "", usecase.NewHTTPError(http.StatusForbidden, "userId does not match token")
}

// 認証ミドルウェア（nilなら付けない）
func guarded(guard echo.MiddlewareFunc) []echo.MiddlewareFunc {
	if guard == nil {
		return nil
	}
	return []echo.MiddlewareFunc{guard}
}
