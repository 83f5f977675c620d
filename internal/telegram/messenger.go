// Package telegram wraps the Telegram Bot API behind the Messenger
// interface so the workflow can be tested without the network.
package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

//go:generate mockgen -source=messenger.go -destination=mock_messenger.go -package=telegram

// Button describes an inline keyboard button. Exactly one of CallbackData
// or WebAppURL should be set.
type Button struct {
	Text         string
	CallbackData string
	WebAppURL    string
}

// Messenger delivers outbound messages to a chat.
type Messenger interface {
	SendText(chatID int64, text string, buttons ...Button) error
	// SendMarkdown sends MarkdownV2-formatted text. Dynamic content must be
	// escaped with EscapeMarkdown before interpolation.
	SendMarkdown(chatID int64, text string, buttons ...Button) error
	SendPhoto(chatID int64, photoURL, caption string) error
	// ProfilePhotoFileID returns the file ID of the user's current profile
	// photo, or empty when the user has none.
	ProfilePhotoFileID(userID int64) (string, error)
	AnswerCallback(callbackID string) error
}

// EscapeMarkdown escapes text for safe interpolation into MarkdownV2.
func EscapeMarkdown(text string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, text)
}
