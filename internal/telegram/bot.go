package telegram

import (
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/inakado/aspy-bot/utils"
)

// Bot implements Messenger over the Telegram Bot API and handles update
// intake in either webhook or long-polling mode.
type Bot struct {
	api *tgbotapi.BotAPI
}

// NewBot authorizes against the Bot API with the given token.
func NewBot(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: authorize bot: %w", err)
	}
	utils.Info("telegram bot authorized", map[string]any{"username": api.Self.UserName})
	return &Bot{api: api}, nil
}

// Username returns the authorized bot account name.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// SetWebhook registers url with Telegram so updates arrive over HTTP.
func (b *Bot) SetWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("telegram: build webhook config: %w", err)
	}
	if _, err := b.api.Request(wh); err != nil {
		return fmt.Errorf("telegram: set webhook: %w", err)
	}
	return nil
}

// ParseWebhookUpdate decodes an inbound webhook request into an update.
func (b *Bot) ParseWebhookUpdate(r *http.Request) (*tgbotapi.Update, error) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		return nil, fmt.Errorf("telegram: decode webhook update: %w", err)
	}
	return update, nil
}

// UpdatesChan starts long polling and returns the update channel.
func (b *Bot) UpdatesChan() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	u.AllowedUpdates = []string{tgbotapi.UpdateTypeMessage, tgbotapi.UpdateTypeCallbackQuery}
	return b.api.GetUpdatesChan(u)
}

func (b *Bot) SendText(chatID int64, text string, buttons ...Button) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup, ok := keyboard(buttons); ok {
		msg.ReplyMarkup = markup
	}
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("telegram: send text to %d: %w", chatID, err)
	}
	return nil
}

func (b *Bot) SendMarkdown(chatID int64, text string, buttons ...Button) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if markup, ok := keyboard(buttons); ok {
		msg.ReplyMarkup = markup
	}
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("telegram: send markdown to %d: %w", chatID, err)
	}
	return nil
}

func (b *Bot) SendPhoto(chatID int64, photoURL, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	if _, err := b.api.Send(photo); err != nil {
		return fmt.Errorf("telegram: send photo to %d: %w", chatID, err)
	}
	return nil
}

func (b *Bot) ProfilePhotoFileID(userID int64) (string, error) {
	photos, err := b.api.GetUserProfilePhotos(tgbotapi.UserProfilePhotosConfig{
		UserID: userID,
		Limit:  1,
	})
	if err != nil {
		return "", fmt.Errorf("telegram: get profile photos for %d: %w", userID, err)
	}
	if len(photos.Photos) == 0 || len(photos.Photos[0]) == 0 {
		return "", nil
	}
	sizes := photos.Photos[0]
	return sizes[len(sizes)-1].FileID, nil
}

func (b *Bot) AnswerCallback(callbackID string) error {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return fmt.Errorf("telegram: answer callback: %w", err)
	}
	return nil
}

// The library's keyboard helpers predate Bot API 6.0 web-app buttons, so
// the markup is built by hand with the wire field names. ReplyMarkup is an
// interface{} and anything JSON-marshallable goes through.
type webAppInfo struct {
	URL string `json:"url"`
}

type inlineButton struct {
	Text         string      `json:"text"`
	CallbackData string      `json:"callback_data,omitempty"`
	WebApp       *webAppInfo `json:"web_app,omitempty"`
}

type inlineKeyboard struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

func keyboard(buttons []Button) (inlineKeyboard, bool) {
	if len(buttons) == 0 {
		return inlineKeyboard{}, false
	}
	row := make([]inlineButton, 0, len(buttons))
	for _, btn := range buttons {
		b := inlineButton{Text: btn.Text}
		if btn.WebAppURL != "" {
			b.WebApp = &webAppInfo{URL: btn.WebAppURL}
		} else {
			b.CallbackData = btn.CallbackData
		}
		row = append(row, b)
	}
	return inlineKeyboard{InlineKeyboard: [][]inlineButton{row}}, true
}
