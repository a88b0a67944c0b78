package middleware

import (
	"crypto/subtle"
	"net/http"

	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AdminGate закрывает служебные маршруты (принудительные переходы статуса).
// Ключ передается в заголовке X-Admin-Key; пустой ключ в конфиге означает,
// что маршруты недоступны вообще.
type AdminGate struct {
	apiKey string
	logger *zap.Logger
}

func NewAdminGate(apiKey string, logger *zap.Logger) *AdminGate {
	return &AdminGate{apiKey: apiKey, logger: logger}
}

func (g *AdminGate) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if g.apiKey == "" {
			return utils.ErrorResponse(c,
				apperrors.NewHttpError(http.StatusForbidden, "Служебные операции отключены", nil, nil),
				g.logger,
			)
		}

		supplied := c.Request().Header.Get("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(g.apiKey)) != 1 {
			g.logger.Warn("AdminGate: отклонен запрос со служебным маршрутом",
				zap.String("uri", c.Request().RequestURI),
			)
			return utils.ErrorResponse(c,
				apperrors.NewHttpError(http.StatusForbidden, "Недостаточно прав для служебной операции", nil, nil),
				g.logger,
			)
		}

		return next(c)
	}
}
