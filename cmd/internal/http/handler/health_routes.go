package handler

import (
	"net/http"

	"excelbot/cmd/internal/contract"

	"github.com/labstack/echo/v4"
)

const aliveText = "I am alive! " + contract.BotName + " is running."

// Alive answers the uptime pinger of the hosting platform.
func Alive(c echo.Context) error {
	return c.String(http.StatusOK, aliveText)
}

func Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
