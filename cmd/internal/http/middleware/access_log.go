package middleware

import (
	"io"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// NewAccessLogger logs every request except those matched on one of the
// hidden route paths. The webhook route is hidden since its URI is the bot
// token. A nil out keeps echo's default output.
func NewAccessLogger(out io.Writer, hiddenPaths ...string) echo.MiddlewareFunc {
	hidden := make(map[string]struct{}, len(hiddenPaths))
	for _, p := range hiddenPaths {
		hidden[p] = struct{}{}
	}

	return echomw.LoggerWithConfig(echomw.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			_, ok := hidden[c.Path()]
			return ok
		},
		Output: out,
	})
}
