package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/inakado/aspy-bot/internal/bidservice"
	"github.com/inakado/aspy-bot/internal/repository"
	"github.com/inakado/aspy-bot/internal/session"
	"github.com/inakado/aspy-bot/internal/telegram"
	"github.com/inakado/aspy-bot/internal/workflow"
)

// jsonUpdateParser stands in for the bot in webhook decoding.
type jsonUpdateParser struct{}

func (jsonUpdateParser) ParseWebhookUpdate(r *http.Request) (*tgbotapi.Update, error) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		return nil, fmt.Errorf("decode webhook update: %w", err)
	}
	return &update, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	store := repository.NewMockRecordStore(ctrl)
	msgr := telegram.NewMockMessenger(ctrl)
	msgr.EXPECT().SendText(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes().Return(nil)

	wf := workflow.New(store, bidservice.NewBidService(store), session.NewMemoryStore(), msgr, 0, "https://aspyart.com")
	return SetupRouter(jsonUpdateParser{}, wf)
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRouter_WebhookAcceptsUpdate(t *testing.T) {
	router := newTestRouter(t)

	// An update without a message or callback is decoded and acknowledged
	// without touching the conversation state.
	update := tgbotapi.Update{UpdateID: 1}
	body, err := json.Marshal(update)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_WebhookRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader([]byte("not json"))))

	require.Equal(t, http.StatusBadRequest, w.Code)
}
