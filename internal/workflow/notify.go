package workflow

import (
	"context"
	"fmt"
	"strconv"

	model "github.com/inakado/aspy-bot/internal/models"
	"github.com/inakado/aspy-bot/internal/telegram"
	"github.com/inakado/aspy-bot/internal/telemetry"
	"github.com/inakado/aspy-bot/services/bot/helpers"
	"github.com/inakado/aspy-bot/utils"
)

// notifyOutbid tells the displaced leader their bet was beaten. Failures
// are logged only; the triggering commit already succeeded.
func (w *Workflow) notifyOutbid(ctx context.Context, formerLeaderRowID int, lot model.Lot, newAmount float64) {
	former, err := w.store.GetUser(ctx, formerLeaderRowID)
	if err != nil {
		utils.Error("cannot resolve outbid leader", map[string]any{"user_row": formerLeaderRowID, "error": err.Error()})
		telemetry.CountNotification("outbid", false)
		return
	}
	if former.TelegramID == 0 {
		utils.Error("outbid leader has no telegram id", map[string]any{"user_row": formerLeaderRowID})
		telemetry.CountNotification("outbid", false)
		return
	}

	// Lot names are free text; escape them so the markup survives.
	text := fmt.Sprintf(
		"♦️ Ваша ставка на лот *«%s»* перебита\\!\nНовая ставка: *%s ₽*",
		telegram.EscapeMarkdown(lot.Name),
		telegram.EscapeMarkdown(fmt.Sprintf("%.0f", newAmount)),
	)
	err = w.msgr.SendMarkdown(former.TelegramID, text, telegram.Button{
		Text:         helpers.ButtonRaiseBid,
		CallbackData: "raise_bet_" + strconv.Itoa(lot.ID),
	})
	if err != nil {
		utils.Error("outbid notification failed", map[string]any{"user_id": former.TelegramID, "error": err.Error()})
		telemetry.CountNotification("outbid", false)
		return
	}
	telemetry.CountNotification("outbid", true)
}

// notifyAdmin sends the bid summary to the configured administrator.
func (w *Workflow) notifyAdmin(lot model.Lot, amount float64, bidder model.User) {
	err := w.msgr.SendText(w.adminID, helpers.AdminBidSummary(lot, amount, bidder))
	if err != nil {
		utils.Error("admin notification failed", map[string]any{"admin_id": w.adminID, "error": err.Error()})
		telemetry.CountNotification("admin", false)
		return
	}
	telemetry.CountNotification("admin", true)
}

// notifyBidder confirms the accepted bet with a way back into the app.
func (w *Workflow) notifyBidder(chatID int64, amount float64) {
	err := w.msgr.SendText(chatID, helpers.BidAccepted(amount), telegram.Button{
		Text:      helpers.ButtonBackToApp,
		WebAppURL: w.webAppURL,
	})
	if err != nil {
		utils.Error("bidder confirmation failed", map[string]any{"chat_id": chatID, "error": err.Error()})
		telemetry.CountNotification("bidder", false)
		return
	}
	telemetry.CountNotification("bidder", true)
}
