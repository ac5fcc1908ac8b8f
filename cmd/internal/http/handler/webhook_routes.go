package handler

import (
	"context"
	"crypto/subtle"
	"net/http"

	"excelbot/cmd/internal/contract"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type UpdateParser interface {
	ParseWebhook(r *http.Request) (contract.Update, bool, error)
}

type UpdateSink interface {
	Submit(ctx context.Context, upd contract.Update) error
}

// WebhookPath is the webhook route. Telegram calls it with the bot token as
// the only segment, which Receive compares itself: tokens contain ':' and
// cannot be registered as a static echo path.
const WebhookPath = "/:token"

type DefaultWebhookRoute struct {
	Token  string
	Parser UpdateParser
	Sink   UpdateSink
}

func NewWebhookRoute(token string, parser UpdateParser, sink UpdateSink) *DefaultWebhookRoute {
	return &DefaultWebhookRoute{Token: token, Parser: parser, Sink: sink}
}

// Receive queues a pushed update and acknowledges it right away. Telegram
// retries anything that is not answered with 2xx, so only malformed bodies
// and a stopping bot are refused.
func (w *DefaultWebhookRoute) Receive(c echo.Context) error {
	if subtle.ConstantTimeCompare([]byte(c.Param("token")), []byte(w.Token)) != 1 {
		return c.NoContent(http.StatusNotFound)
	}

	upd, ok, err := w.Parser.ParseWebhook(c.Request())
	if err != nil {
		log.Warnf("rejecting malformed webhook update: %v", err)
		return c.NoContent(http.StatusBadRequest)
	}

	if !ok {
		return c.NoContent(http.StatusOK)
	}

	if err := w.Sink.Submit(c.Request().Context(), upd); err != nil {
		log.Errorf("failed to queue update from user %d: %v", upd.From.ID, err)
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusOK)
}
