package integrationtests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/inakado/aspy-bot/internal/bidservice"
	"github.com/inakado/aspy-bot/internal/repository"
	"github.com/inakado/aspy-bot/internal/session"
	"github.com/inakado/aspy-bot/internal/telegram"
	"github.com/inakado/aspy-bot/internal/workflow"
)

const (
	usersTable   = 101
	lotsTable    = 102
	betsTable    = 103
	artistsTable = 104

	adminChatID = int64(99)
	webAppURL   = "https://aspyart.com"
)

// fakeRecordStore serves the record-store rows API from memory so the full
// bot stack can run against real HTTP.
type fakeRecordStore struct {
	mu     sync.Mutex
	tables map[int]map[int]map[string]any
	nextID map[int]int
	server *httptest.Server
}

func newFakeRecordStore(t *testing.T) *fakeRecordStore {
	t.Helper()
	f := &fakeRecordStore{
		tables: map[int]map[int]map[string]any{
			usersTable:   {},
			lotsTable:    {},
			betsTable:    {},
			artistsTable: {},
		},
		nextID: map[int]int{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeRecordStore) handle(w http.ResponseWriter, r *http.Request) {
	// /api/database/rows/table/<table>/[<row>/]
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 5 || parts[0] != "api" || parts[1] != "database" || parts[2] != "rows" || parts[3] != "table" {
		http.NotFound(w, r)
		return
	}
	tableID, err := strconv.Atoi(parts[4])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	rows, ok := f.tables[tableID]
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(parts) == 5 && r.Method == http.MethodGet:
		ids := make([]int, 0, len(rows))
		for id := range rows {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		results := make([]map[string]any, 0, len(rows))
		for _, id := range ids {
			results = append(results, rows[id])
		}
		writeJSON(w, map[string]any{"count": len(results), "next": nil, "previous": nil, "results": results})

	case len(parts) == 5 && r.Method == http.MethodPost:
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.nextID[tableID]++
		id := f.nextID[tableID]
		row := map[string]any{"id": id}
		for k, v := range payload {
			row[k] = f.linkify(tableID, k, v)
		}
		rows[id] = row
		writeJSON(w, row)

	case len(parts) == 6 && r.Method == http.MethodGet:
		rowID, _ := strconv.Atoi(parts[5])
		row, ok := rows[rowID]
		if !ok {
			http.Error(w, `{"error":"ERROR_ROW_DOES_NOT_EXIST"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, row)

	case len(parts) == 6 && r.Method == http.MethodPatch:
		rowID, _ := strconv.Atoi(parts[5])
		row, ok := rows[rowID]
		if !ok {
			http.Error(w, `{"error":"ERROR_ROW_DOES_NOT_EXIST"}`, http.StatusNotFound)
			return
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for k, v := range payload {
			row[k] = f.linkify(tableID, k, v)
		}
		writeJSON(w, row)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// linkify turns [id, id] link payloads into the [{id, value}] shape the
// rows API responds with.
func (f *fakeRecordStore) linkify(tableID int, field string, v any) any {
	if tableID != betsTable || (field != "User" && field != "Lot") {
		return v
	}
	ids, ok := v.([]any)
	if !ok {
		return v
	}
	refs := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, map[string]any{"id": int(id.(float64)), "value": ""})
	}
	return refs
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeRecordStore) addLot(id int, name, number, price string, artistIDs []int, imageURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	artists := make([]map[string]any, 0, len(artistIDs))
	for _, aid := range artistIDs {
		artists = append(artists, map[string]any{"id": aid, "value": ""})
	}
	row := map[string]any{"id": id, "Name": name, "LotNumber": number, "InitialPrice": price, "Artists": artists}
	if imageURL != "" {
		row["Image"] = []map[string]any{{"url": imageURL}}
	}
	f.tables[lotsTable][id] = row
	if id > f.nextID[lotsTable] {
		f.nextID[lotsTable] = id
	}
}

func (f *fakeRecordStore) addArtist(id int, displayName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[artistsTable][id] = map[string]any{"id": id, "displayName": displayName}
	if id > f.nextID[artistsTable] {
		f.nextID[artistsTable] = id
	}
}

func (f *fakeRecordStore) addUser(id int, telegramID int64, username, phone string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[usersTable][id] = map[string]any{
		"id":          id,
		"TelegramID":  strconv.FormatInt(telegramID, 10),
		"Username":    username,
		"PhoneNumber": phone,
	}
	if id > f.nextID[usersTable] {
		f.nextID[usersTable] = id
	}
}

func (f *fakeRecordStore) addBet(id, lotID, userID int, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[betsTable][id] = map[string]any{
		"id":       id,
		"BetValue": value,
		"Date":     time.Now().UTC().Format(time.RFC3339),
		"User":     []map[string]any{{"id": userID, "value": ""}},
		"Lot":      []map[string]any{{"id": lotID, "value": ""}},
	}
	if id > f.nextID[betsTable] {
		f.nextID[betsTable] = id
	}
}

func (f *fakeRecordStore) betRows() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int, 0, len(f.tables[betsTable]))
	for id := range f.tables[betsTable] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	rows := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, f.tables[betsTable][id])
	}
	return rows
}

func (f *fakeRecordStore) userRow(id int) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tables[usersTable][id]
}

// recordingMessenger captures outbound traffic instead of calling Telegram.
type outbound struct {
	Kind    string // "text", "markdown", "photo"
	ChatID  int64
	Text    string
	Buttons []telegram.Button
}

type recordingMessenger struct {
	mu   sync.Mutex
	sent []outbound
}

func (m *recordingMessenger) SendText(chatID int64, text string, buttons ...telegram.Button) error {
	m.record(outbound{Kind: "text", ChatID: chatID, Text: text, Buttons: buttons})
	return nil
}

func (m *recordingMessenger) SendMarkdown(chatID int64, text string, buttons ...telegram.Button) error {
	m.record(outbound{Kind: "markdown", ChatID: chatID, Text: text, Buttons: buttons})
	return nil
}

func (m *recordingMessenger) SendPhoto(chatID int64, photoURL, caption string) error {
	m.record(outbound{Kind: "photo", ChatID: chatID, Text: caption})
	return nil
}

func (m *recordingMessenger) ProfilePhotoFileID(userID int64) (string, error) {
	return "", nil
}

func (m *recordingMessenger) AnswerCallback(callbackID string) error {
	return nil
}

func (m *recordingMessenger) record(o outbound) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, o)
}

func (m *recordingMessenger) sentTo(chatID int64) []outbound {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []outbound
	for _, o := range m.sent {
		if o.ChatID == chatID {
			out = append(out, o)
		}
	}
	return out
}

// setupBot wires the full stack against the fake record store.
func setupBot(t *testing.T, store *fakeRecordStore) (*workflow.Workflow, *recordingMessenger) {
	t.Helper()

	repo := repository.NewBaserowRepo(repository.BaserowConfig{
		BaseURL:      store.server.URL,
		Token:        "integration-token",
		UsersTable:   usersTable,
		LotsTable:    lotsTable,
		BetsTable:    betsTable,
		ArtistsTable: artistsTable,
		HTTPTimeout:  5 * time.Second,
	})
	msgr := &recordingMessenger{}
	wf := workflow.New(repo, bidservice.NewBidService(repo), session.NewMemoryStore(), msgr, adminChatID, webAppURL)
	return wf, msgr
}

func commandUpdate(chatID, userID int64, username, text string) tgbotapi.Update {
	cmd := strings.Fields(text)[0]
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID, UserName: username},
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func textUpdate(chatID, userID int64, username, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 2,
		From:      &tgbotapi.User{ID: userID, UserName: username},
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
	}}
}

func callbackUpdate(chatID, userID int64, username, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb1",
		From:    &tgbotapi.User{ID: userID, UserName: username},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
		Data:    data,
	}}
}
