// Package helpers holds the user-facing reply catalog and the single place
// where workflow errors are mapped to reply text.
package helpers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/inakado/aspy-bot/internal/auctionerrors"
	"github.com/inakado/aspy-bot/internal/bidservice"
	model "github.com/inakado/aspy-bot/internal/models"
)

// Fixed replies.
const (
	ReplyWelcome           = "Добро пожаловать! Для доступа к веб-приложению нажмите кнопку ниже:"
	ReplyLotNotFound       = "❌ Лот не найден"
	ReplyRegistrationError = "❌ Ошибка регистрации"
	ReplySessionExpired    = "❌ Сессия устарела. Начните заново."
	ReplyInvalidAmount     = "❌ Введите корректную сумму"
	ReplySelfOutbid        = "❌ Нельзя повышать свою ставку"
	ReplyInvalidPhone      = "❌ Неверный формат номера"
	ReplyPhoneSaveError    = "❌ Ошибка сохранения номера"
	ReplyBetSaveError      = "❌ Ошибка сохранения ставки"
	ReplyAccessDenied      = "❌ Доступ запрещен"
	ReplyGenericError      = "❌ Произошла ошибка"
	ReplyBadDeepLink       = "❌ Неверный формат ссылки"
	ReplyUnknownInput      = "Неизвестная команда. Откройте лот в приложении, чтобы сделать ставку."
	ReplyNotifyUsage       = "❌ Формат команды: /notify <user_id> <сообщение>"
	ReplyBadTargetID       = "❌ Неверный формат ID пользователя"

	PromptPhone = "📱 Введите номер телефона (79XXXXXXXXX):"

	ButtonOpenWebApp = "🌐 Открыть веб-приложение"
	ButtonBackToApp  = "🖼 Вернуться в приложение"
	ButtonRaiseBid   = "💰 Повысить ставку"
)

// ReplyForError maps the error taxonomy to user-facing text, once,
// centrally. Unknown errors collapse into the generic failure reply.
func ReplyForError(err error) string {
	var tooLow *bidservice.BidTooLowError
	switch {
	case errors.As(err, &tooLow):
		return fmt.Sprintf("📉 Ставка должна быть выше %.0f ₽", tooLow.Floor)
	case errors.Is(err, auctionerrors.ErrLotNotFound):
		return ReplyLotNotFound
	case errors.Is(err, auctionerrors.ErrSelfOutbid):
		return ReplySelfOutbid
	case errors.Is(err, auctionerrors.ErrInvalidAmount):
		return ReplyInvalidAmount
	case errors.Is(err, auctionerrors.ErrInvalidPhone):
		return ReplyInvalidPhone
	case errors.Is(err, auctionerrors.ErrSessionExpired):
		return ReplySessionExpired
	case errors.Is(err, auctionerrors.ErrAccessDenied):
		return ReplyAccessDenied
	default:
		return ReplyGenericError
	}
}

// LotCard renders the lot presentation shown when a user enters the bid flow.
func LotCard(lot model.Lot, artists []string, currentMax, suggested float64) string {
	author := strings.Join(artists, ", ")
	if author == "" {
		author = "Нет данных"
	}
	lotNumber := lot.LotNumber
	if lotNumber == "" {
		lotNumber = "Нет данных"
	}

	var suggestedLine string
	if suggested > 0 {
		suggestedLine = fmt.Sprintf("\nПредложенная ставка: %.0f ₽", suggested)
	}

	return fmt.Sprintf(
		"Автор: %s\nЛот: %s\nНомер: %s\n\nНачальная цена: %.0f ₽\nТекущая цена: %.0f ₽%s\n\nВведите сумму ставки:",
		author, lot.Name, lotNumber, lot.InitialPrice, currentMax, suggestedLine,
	)
}

// ConfirmSuggestedPrompt invites the user to accept the deep-link amount.
func ConfirmSuggestedPrompt(amount float64) string {
	return fmt.Sprintf("💡 Для подтверждения ставки %.0f ₽, просто отправьте её или введите другую сумму.", amount)
}

// RetryAmountPrompt is the rejection for unparseable amount input; it echoes
// the suggested amount when one exists.
func RetryAmountPrompt(suggested float64) string {
	if suggested > 0 {
		return fmt.Sprintf("❌ Введите корректную сумму или отправьте '%.0f' для подтверждения предложенной ставки", suggested)
	}
	return ReplyInvalidAmount
}

// BidAccepted confirms a committed bet.
func BidAccepted(amount float64) string {
	return fmt.Sprintf("✅ Ставка %.0f ₽ принята!\n\nМы сообщим, если вашу ставку перебьют или вы выиграете аукцион.", amount)
}

// AdminBidSummary renders the admin notification for a committed bet.
func AdminBidSummary(lot model.Lot, amount float64, bidder model.User) string {
	username := bidder.Username
	if username == "" {
		username = "нет"
	}
	phone := bidder.PhoneNumber
	if phone == "" {
		phone = "не указан"
	}
	lotNumber := lot.LotNumber
	if lotNumber == "" {
		lotNumber = "Нет данных"
	}
	return fmt.Sprintf(
		"🎉 Новая ставка!\n\nЛот: %s\nНомер лота: %s\nСтавка: %.0f ₽\nTG ID: %d\nUsername: @%s\nТелефон: %s",
		lot.Name, lotNumber, amount, bidder.TelegramID, username, phone,
	)
}

// AdminForward wraps an admin direct message before delivery.
func AdminForward(message string) string {
	return "🔔 Сообщение от администратора:\n\n" + message
}

// NotifyDelivered reports /notify success back to the admin caller.
func NotifyDelivered(targetID int64) string {
	return fmt.Sprintf("✅ Сообщение отправлено пользователю %d", targetID)
}

// NotifyFailed reports /notify delivery failure back to the admin caller.
func NotifyFailed(err error) string {
	return fmt.Sprintf("❌ Ошибка отправки: %v", err)
}
