package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inakado/aspy-bot/internal/workflow"
	"github.com/inakado/aspy-bot/utils"
)

// UpdateParser decodes an inbound webhook request into a Telegram update.
type UpdateParser interface {
	ParseWebhookUpdate(r *http.Request) (*tgbotapi.Update, error)
}

// SetupRouter configures the Gin routes: the Telegram webhook endpoint plus
// health and metrics. Each decoded update is handled in its own goroutine
// so a slow conversation never blocks the webhook response.
func SetupRouter(bot UpdateParser, wf *workflow.Workflow) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	router.POST("/webhook", func(c *gin.Context) {
		update, err := bot.ParseWebhookUpdate(c.Request)
		if err != nil {
			utils.Warn("rejected malformed webhook update", map[string]any{"error": err.Error()})
			c.Status(400)
			return
		}
		go wf.HandleUpdate(context.Background(), *update)
		c.Status(200)
	})

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
