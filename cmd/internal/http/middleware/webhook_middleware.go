package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// NewWebhookSecretMiddleware only lets through requests carrying the secret
// registered with the webhook. An empty secret disables the check.
func NewWebhookSecretMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return next(c)
			}

			got := c.Request().Header.Get(SecretTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				log.Warnf("rejecting webhook call from %s without a valid secret", c.RealIP())
				return c.NoContent(http.StatusUnauthorized)
			}
			return next(c)
		}
	}
}
