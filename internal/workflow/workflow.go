// Package workflow drives a conversation from lot selection through amount
// intake, phone verification and bid commit, and dispatches the outcome
// notifications.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/inakado/aspy-bot/internal/auctionerrors"
	"github.com/inakado/aspy-bot/internal/bidservice"
	model "github.com/inakado/aspy-bot/internal/models"
	"github.com/inakado/aspy-bot/internal/repository"
	"github.com/inakado/aspy-bot/internal/session"
	"github.com/inakado/aspy-bot/internal/telegram"
	"github.com/inakado/aspy-bot/internal/telemetry"
	"github.com/inakado/aspy-bot/services/bot/helpers"
	"github.com/inakado/aspy-bot/utils"
)

const artistNameFallback = "Нет данных"

// Workflow routes inbound updates and owns the bid state machine.
type Workflow struct {
	store     repository.RecordStore
	bids      *bidservice.BidService
	sessions  session.Store
	msgr      telegram.Messenger
	adminID   int64
	webAppURL string
}

// New creates a Workflow. adminID zero disables the admin surface.
func New(store repository.RecordStore, bids *bidservice.BidService, sessions session.Store, msgr telegram.Messenger, adminID int64, webAppURL string) *Workflow {
	return &Workflow{
		store:     store,
		bids:      bids,
		sessions:  sessions,
		msgr:      msgr,
		adminID:   adminID,
		webAppURL: webAppURL,
	}
}

// HandleUpdate processes one inbound update. It is safe to call from a
// dedicated goroutine per update; a panic is confined to the conversation.
func (w *Workflow) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			utils.Error("recovered panic in update handler", map[string]any{"panic": fmt.Sprint(r)})
		}
	}()

	if telemetry.UpdatesReceived != nil {
		telemetry.UpdatesReceived.Inc()
	}
	cid := utils.GenerateID()

	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		utils.Info("callback received", map[string]any{
			"correlation_id": cid,
			"user_id":        cb.From.ID,
			"data":           cb.Data,
		})
		w.handleCallback(ctx, cb)
	case update.Message != nil:
		msg := update.Message
		utils.Info("message received", map[string]any{
			"correlation_id": cid,
			"chat_id":        msg.Chat.ID,
			"user_id":        msg.From.ID,
			"is_command":     msg.IsCommand(),
		})
		w.handleMessage(ctx, msg)
	}
}

func (w *Workflow) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			w.handleStart(ctx, msg)
		case "notify":
			w.handleNotify(msg)
		default:
			w.reply(msg.Chat.ID, helpers.ReplyUnknownInput)
		}
		return
	}
	w.handleText(ctx, msg)
}

// handleStart serves both the plain welcome and the bid deep link
// (/start bid_<lotID>_<amount>).
func (w *Workflow) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	payload := msg.CommandArguments()
	if !strings.HasPrefix(payload, "bid_") {
		err := w.msgr.SendText(msg.Chat.ID, helpers.ReplyWelcome, telegram.Button{
			Text:      helpers.ButtonOpenWebApp,
			WebAppURL: w.webAppURL,
		})
		if err != nil {
			utils.Error("failed to send welcome", map[string]any{"chat_id": msg.Chat.ID, "error": err.Error()})
		}
		return
	}

	lotID, suggestedRaw, err := parseDeepLink(payload)
	if err != nil {
		w.reply(msg.Chat.ID, helpers.ReplyBadDeepLink)
		return
	}
	w.startBid(ctx, msg.Chat.ID, msg.From, lotID, suggestedRaw)
}

func (w *Workflow) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if err := w.msgr.AnswerCallback(cb.ID); err != nil {
		utils.Warn("failed to answer callback", map[string]any{"error": err.Error()})
	}

	lotID, ok := parseRaiseCallback(cb.Data)
	if !ok {
		return
	}
	chatID := cb.From.ID
	if cb.Message != nil {
		chatID = cb.Message.Chat.ID
	}
	w.startBid(ctx, chatID, cb.From, lotID, "")
}

// startBid is the Idle -> AwaitingAmount transition: resolve the lot,
// register the user if unknown, present the lot card and open a session.
func (w *Workflow) startBid(ctx context.Context, chatID int64, from *tgbotapi.User, lotID int, suggestedRaw string) {
	lot, err := w.store.GetLot(ctx, lotID)
	if err != nil {
		utils.Warn("lot lookup failed", map[string]any{"lot_id": lotID, "error": err.Error()})
		w.reply(chatID, helpers.ReplyForError(err))
		return
	}

	if _, err := w.ensureRegistered(ctx, from); err != nil {
		utils.Error("user registration failed", map[string]any{"user_id": from.ID, "error": err.Error()})
		w.reply(chatID, helpers.ReplyRegistrationError)
		return
	}

	leader, err := w.bids.CurrentLeader(ctx, lot.ID, lot.InitialPrice)
	if err != nil {
		utils.Error("leader derivation failed", map[string]any{"lot_id": lot.ID, "error": err.Error()})
		w.reply(chatID, helpers.ReplyGenericError)
		return
	}

	var suggested float64
	if suggestedRaw != "" {
		if amount, err := parseAmount(suggestedRaw); err == nil && amount > leader.Amount {
			suggested = amount
		}
	}

	card := helpers.LotCard(lot, w.artistNames(ctx, lot.ArtistIDs), leader.Amount, suggested)
	if lot.ImageURL != "" {
		if err := w.msgr.SendPhoto(chatID, lot.ImageURL, card); err != nil {
			utils.Error("failed to send lot photo, falling back to text", map[string]any{
				"lot_id": lot.ID,
				"error":  err.Error(),
			})
			w.reply(chatID, card)
		}
	} else {
		w.reply(chatID, card)
	}

	if suggested > 0 {
		w.reply(chatID, helpers.ConfirmSuggestedPrompt(suggested))
	}

	s := &model.Session{
		ChatID:          chatID,
		UserID:          from.ID,
		LotID:           lot.ID,
		SuggestedAmount: suggested,
	}
	if err := w.sessions.Save(ctx, s); err != nil {
		utils.Error("failed to save session", map[string]any{"chat_id": chatID, "error": err.Error()})
	}
}

// handleText is the free-text intake: an amount while AwaitingAmount, or a
// phone number while AwaitingPhone.
func (w *Workflow) handleText(ctx context.Context, msg *tgbotapi.Message) {
	s, err := w.sessions.Get(ctx, msg.Chat.ID)
	if err != nil {
		utils.Error("failed to load session", map[string]any{"chat_id": msg.Chat.ID, "error": err.Error()})
		w.reply(msg.Chat.ID, helpers.ReplyGenericError)
		return
	}
	if s == nil || s.LotID == 0 {
		w.reply(msg.Chat.ID, helpers.ReplySessionExpired)
		return
	}
	if s.UserID != msg.From.ID {
		// Another user picked up the conversation: the stored session no
		// longer belongs to the actor.
		if err := w.sessions.Delete(ctx, msg.Chat.ID); err != nil {
			utils.Error("failed to delete session", map[string]any{"chat_id": msg.Chat.ID, "error": err.Error()})
		}
		w.reply(msg.Chat.ID, helpers.ReplySessionExpired)
		return
	}

	if s.AwaitingPhone {
		w.handlePhone(ctx, s, msg)
		return
	}
	w.handleAmount(ctx, s, msg)
}

// handleAmount validates the candidate amount against business rules and
// either opens the phone gate or commits immediately.
func (w *Workflow) handleAmount(ctx context.Context, s *model.Session, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	var amount float64
	if isConfirmToken(text) && s.SuggestedAmount > 0 {
		amount = s.SuggestedAmount
	} else {
		parsed, err := parseAmount(text)
		if err != nil {
			w.reply(s.ChatID, helpers.RetryAmountPrompt(s.SuggestedAmount))
			return
		}
		amount = parsed
	}

	lot, err := w.store.GetLot(ctx, s.LotID)
	if err != nil {
		utils.Warn("lot lookup failed during amount intake", map[string]any{"lot_id": s.LotID, "error": err.Error()})
		if errors.Is(err, auctionerrors.ErrLotNotFound) {
			if derr := w.sessions.Delete(ctx, s.ChatID); derr != nil {
				utils.Error("failed to delete session", map[string]any{"chat_id": s.ChatID, "error": derr.Error()})
			}
		}
		w.reply(s.ChatID, helpers.ReplyForError(err))
		return
	}

	bidder, err := w.store.FindUserByTelegramID(ctx, s.UserID)
	if err != nil {
		utils.Error("bidder lookup failed", map[string]any{"user_id": s.UserID, "error": err.Error()})
		w.reply(s.ChatID, helpers.ReplyGenericError)
		return
	}

	leader, err := w.bids.ValidateBid(ctx, lot, bidder.ID, amount)
	if err != nil {
		w.rejectBid(s.ChatID, lot.ID, err)
		return
	}

	s.Staged = true
	s.PreviousLeaderID = leader.UserID
	s.PreviousMax = leader.Amount
	s.BidAmount = amount

	if !bidder.HasPhone() {
		s.AwaitingPhone = true
		if err := w.sessions.Save(ctx, s); err != nil {
			utils.Error("failed to save session", map[string]any{"chat_id": s.ChatID, "error": err.Error()})
			w.reply(s.ChatID, helpers.ReplyGenericError)
			return
		}
		w.reply(s.ChatID, helpers.PromptPhone)
		return
	}

	if err := w.sessions.Save(ctx, s); err != nil {
		utils.Error("failed to save session", map[string]any{"chat_id": s.ChatID, "error": err.Error()})
	}
	w.commit(ctx, s, lot, bidder)
}

// handlePhone is the AwaitingPhone intake: strict format check, persist the
// number, then resume the staged commit.
func (w *Workflow) handlePhone(ctx context.Context, s *model.Session, msg *tgbotapi.Message) {
	phone := strings.TrimSpace(msg.Text)
	if !validPhone(phone) {
		w.reply(s.ChatID, helpers.ReplyInvalidPhone)
		return
	}

	bidder, err := w.store.FindUserByTelegramID(ctx, s.UserID)
	if err != nil {
		utils.Error("bidder lookup failed during phone capture", map[string]any{"user_id": s.UserID, "error": err.Error()})
		w.reply(s.ChatID, helpers.ReplyPhoneSaveError)
		return
	}
	if err := w.store.UpdateUserPhone(ctx, bidder.ID, phone); err != nil {
		utils.Error("failed to persist phone", map[string]any{"user_row": bidder.ID, "error": err.Error()})
		w.reply(s.ChatID, helpers.ReplyPhoneSaveError)
		return
	}
	bidder.PhoneNumber = phone

	// The phone is account state and survives regardless; the staged bid
	// must still be present to commit.
	if !s.Staged {
		if err := w.sessions.Delete(ctx, s.ChatID); err != nil {
			utils.Error("failed to delete session", map[string]any{"chat_id": s.ChatID, "error": err.Error()})
		}
		w.reply(s.ChatID, helpers.ReplySessionExpired)
		return
	}

	lot, err := w.store.GetLot(ctx, s.LotID)
	if err != nil {
		utils.Warn("lot lookup failed before commit", map[string]any{"lot_id": s.LotID, "error": err.Error()})
		if errors.Is(err, auctionerrors.ErrLotNotFound) {
			if derr := w.sessions.Delete(ctx, s.ChatID); derr != nil {
				utils.Error("failed to delete session", map[string]any{"chat_id": s.ChatID, "error": derr.Error()})
			}
		}
		w.reply(s.ChatID, helpers.ReplyForError(err))
		return
	}

	s.AwaitingPhone = false
	if err := w.sessions.Save(ctx, s); err != nil {
		utils.Error("failed to save session", map[string]any{"chat_id": s.ChatID, "error": err.Error()})
	}
	w.commit(ctx, s, lot, bidder)
}

// commit writes the bet and fans out the outcome notifications. On failure
// the staged fields stay in the session so the user can retry.
func (w *Workflow) commit(ctx context.Context, s *model.Session, lot model.Lot, bidder model.User) {
	created, displaced, err := w.bids.CommitBid(ctx, lot, bidder.ID, s.BidAmount)
	if err != nil {
		utils.Error("bid commit failed", map[string]any{
			"lot_id":  lot.ID,
			"user_id": bidder.ID,
			"amount":  s.BidAmount,
			"error":   err.Error(),
		})
		if errors.Is(err, auctionerrors.ErrUpstream) {
			telemetry.RejectBid("upstream")
			w.reply(s.ChatID, helpers.ReplyBetSaveError)
			return
		}
		w.rejectBid(s.ChatID, lot.ID, err)
		return
	}

	if telemetry.BidsCommitted != nil {
		telemetry.BidsCommitted.Inc()
	}
	utils.Info("bet committed", map[string]any{
		"bet_id":  created.ID,
		"lot_id":  lot.ID,
		"user_id": bidder.ID,
		"amount":  created.Amount,
	})

	if displaced.UserID != 0 && displaced.UserID != bidder.ID {
		w.notifyOutbid(ctx, displaced.UserID, lot, created.Amount)
	}
	if w.adminID != 0 {
		w.notifyAdmin(lot, created.Amount, bidder)
	}
	w.notifyBidder(s.ChatID, created.Amount)

	s.ClearStaged()
	if err := w.sessions.Save(ctx, s); err != nil {
		utils.Error("failed to save session after commit", map[string]any{"chat_id": s.ChatID, "error": err.Error()})
	}
}

// handleNotify is the admin direct-message command:
// /notify <user_id> <message...>
func (w *Workflow) handleNotify(msg *tgbotapi.Message) {
	if w.adminID == 0 || msg.From.ID != w.adminID {
		w.reply(msg.Chat.ID, helpers.ReplyAccessDenied)
		return
	}

	args := strings.Fields(msg.CommandArguments())
	if len(args) < 2 {
		w.reply(msg.Chat.ID, helpers.ReplyNotifyUsage)
		return
	}

	targetID, err := parseTargetID(args[0])
	if err != nil {
		w.reply(msg.Chat.ID, helpers.ReplyBadTargetID)
		return
	}

	text := strings.Join(args[1:], " ")
	if err := w.msgr.SendText(targetID, helpers.AdminForward(text)); err != nil {
		utils.Warn("admin direct message failed", map[string]any{"target": targetID, "error": err.Error()})
		w.reply(msg.Chat.ID, helpers.NotifyFailed(err))
		return
	}
	w.reply(msg.Chat.ID, helpers.NotifyDelivered(targetID))
}

// ensureRegistered returns the bidder row, creating it on first contact.
// The profile photo is captured best-effort.
func (w *Workflow) ensureRegistered(ctx context.Context, from *tgbotapi.User) (model.User, error) {
	user, err := w.store.FindUserByTelegramID(ctx, from.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, auctionerrors.ErrUserNotFound) {
		return model.User{}, err
	}

	photo, perr := w.msgr.ProfilePhotoFileID(from.ID)
	if perr != nil {
		utils.Warn("failed to fetch profile photo", map[string]any{"user_id": from.ID, "error": perr.Error()})
	}
	created, err := w.store.CreateUser(ctx, model.User{
		TelegramID:   from.ID,
		Username:     from.UserName,
		ProfileImage: photo,
	})
	if err != nil {
		return model.User{}, err
	}
	utils.Info("registered new user", map[string]any{"user_id": from.ID, "row_id": created.ID})
	return created, nil
}

// artistNames resolves each artist individually; a failed lookup degrades
// to a placeholder rather than failing the card.
func (w *Workflow) artistNames(ctx context.Context, ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		artist, err := w.store.GetArtist(ctx, id)
		if err != nil {
			utils.Warn("artist lookup failed", map[string]any{"artist_id": id, "error": err.Error()})
			names = append(names, artistNameFallback)
			continue
		}
		names = append(names, artist.DisplayName)
	}
	return names
}

func (w *Workflow) rejectBid(chatID int64, lotID int, err error) {
	reason := "invalid"
	switch {
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		reason = "too_low"
	case errors.Is(err, auctionerrors.ErrSelfOutbid):
		reason = "self_outbid"
	}
	telemetry.RejectBid(reason)
	utils.Info("bid rejected", map[string]any{"lot_id": lotID, "reason": reason, "error": err.Error()})
	w.reply(chatID, helpers.ReplyForError(err))
}

func (w *Workflow) reply(chatID int64, text string) {
	if err := w.msgr.SendText(chatID, text); err != nil {
		utils.Error("failed to send reply", map[string]any{"chat_id": chatID, "error": err.Error()})
	}
}
