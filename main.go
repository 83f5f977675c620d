// Command aspy-bot is the Telegram front end for the auction web
// application: it registers bidders, arbitrates bids against the Baserow
// record store and notifies outbid leaders and the administrator.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/inakado/aspy-bot/internal/bidservice"
	"github.com/inakado/aspy-bot/internal/config"
	"github.com/inakado/aspy-bot/internal/repository"
	"github.com/inakado/aspy-bot/internal/server"
	"github.com/inakado/aspy-bot/internal/session"
	"github.com/inakado/aspy-bot/internal/telegram"
	"github.com/inakado/aspy-bot/internal/telemetry"
	"github.com/inakado/aspy-bot/internal/workflow"
	"github.com/inakado/aspy-bot/utils"
)

func main() {
	// Local dev convenience; production relies on real env.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("config load failed", map[string]any{"error": err.Error()})
	}
	utils.SetLevel(cfg.LogLevel)
	telemetry.Init()

	if !cfg.HasAdmin() {
		utils.Warn("ADMIN_TELEGRAM_ID not set, admin notifications disabled", nil)
	}

	store := repository.NewBaserowRepo(repository.BaserowConfig{
		BaseURL:      cfg.Baserow.BaseURL,
		Token:        cfg.Baserow.Token,
		UsersTable:   cfg.Baserow.UsersTable,
		LotsTable:    cfg.Baserow.LotsTable,
		BetsTable:    cfg.Baserow.BetsTable,
		ArtistsTable: cfg.Baserow.ArtistsTable,
		HTTPTimeout:  cfg.Baserow.HTTPTimeout,
	})

	sessions, cleanup := newSessionStore(cfg)
	defer cleanup()

	bot, err := telegram.NewBot(cfg.Telegram.Token)
	if err != nil {
		utils.Fatal("telegram init failed", map[string]any{"error": err.Error()})
	}

	bids := bidservice.NewBidService(store)
	wf := workflow.New(store, bids, sessions, bot, cfg.AdminTelegramID, cfg.WebAppURL)

	if cfg.Telegram.WebhookURL != "" {
		if err := bot.SetWebhook(cfg.Telegram.WebhookURL + "/webhook"); err != nil {
			utils.Fatal("webhook registration failed", map[string]any{"error": err.Error()})
		}
		utils.Info("running in webhook mode", map[string]any{"listen": cfg.Server.ListenAddr})
	} else {
		utils.Info("running in long-polling mode", map[string]any{"listen": cfg.Server.ListenAddr})
		go pollUpdates(bot, wf)
	}

	router := server.SetupRouter(bot, wf)
	if err := router.Run(cfg.Server.ListenAddr); err != nil {
		utils.Error("server stopped", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

// pollUpdates consumes the long-polling channel, one goroutine per update.
func pollUpdates(bot *telegram.Bot, wf *workflow.Workflow) {
	for update := range bot.UpdatesChan() {
		go wf.HandleUpdate(context.Background(), update)
	}
}

// newSessionStore picks Redis when configured, in-memory otherwise.
func newSessionStore(cfg *config.Config) (session.Store, func()) {
	if cfg.Redis.URL == "" {
		utils.Info("using in-memory session store", nil)
		return session.NewMemoryStore(), func() {}
	}

	store, err := session.NewRedisStore(context.Background(), cfg.Redis.URL)
	if err != nil {
		utils.Fatal("redis init failed", map[string]any{"error": err.Error()})
	}
	utils.Info("using redis session store", nil)
	return store, func() {
		if err := store.Close(); err != nil {
			utils.Error("error closing redis", map[string]any{"error": err.Error()})
		}
	}
}
