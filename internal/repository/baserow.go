package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/inakado/aspy-bot/internal/auctionerrors"
	model "github.com/inakado/aspy-bot/internal/models"
	"github.com/inakado/aspy-bot/utils"
)

const listPageSize = 100

// BaserowRepo implements RecordStore over the Baserow HTTP rows API.
// All requests use user_field_names=true so rows carry the original
// field names instead of field_NNN identifiers.
type BaserowRepo struct {
	baseURL      string
	token        string
	usersTable   int
	lotsTable    int
	betsTable    int
	artistsTable int
	client       *http.Client
}

// BaserowConfig carries the connection settings for NewBaserowRepo.
type BaserowConfig struct {
	BaseURL      string
	Token        string
	UsersTable   int
	LotsTable    int
	BetsTable    int
	ArtistsTable int
	HTTPTimeout  time.Duration
}

// NewBaserowRepo creates a record-store client with a bounded HTTP timeout.
func NewBaserowRepo(cfg BaserowConfig) *BaserowRepo {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BaserowRepo{
		baseURL:      cfg.BaseURL,
		token:        cfg.Token,
		usersTable:   cfg.UsersTable,
		lotsTable:    cfg.LotsTable,
		betsTable:    cfg.BetsTable,
		artistsTable: cfg.ArtistsTable,
		client:       &http.Client{Timeout: timeout},
	}
}

// reference is Baserow's link-row representation.
type reference struct {
	ID    int    `json:"id"`
	Value string `json:"value"`
}

// fileRef is Baserow's file-field representation (only the URL matters here).
type fileRef struct {
	URL string `json:"url"`
}

type listResponse struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  json.RawMessage `json:"results"`
}

type userRow struct {
	ID           int    `json:"id"`
	Username     string `json:"Username"`
	TelegramID   string `json:"TelegramID"`
	ProfileImage string `json:"ProfileImage"`
	PhoneNumber  string `json:"PhoneNumber"`
}

type lotRow struct {
	ID           int         `json:"id"`
	Name         string      `json:"Name"`
	LotNumber    string      `json:"LotNumber"`
	InitialPrice string      `json:"InitialPrice"`
	Artists      []reference `json:"Artists"`
	Image        []fileRef   `json:"Image"`
}

type artistRow struct {
	ID          int    `json:"id"`
	Name        string `json:"Name"`
	DisplayName string `json:"displayName"`
}

type betRow struct {
	ID       int         `json:"id"`
	BetValue string      `json:"BetValue"`
	Date     string      `json:"Date"`
	User     []reference `json:"User"`
	Lot      []reference `json:"Lot"`
}

// GetLot fetches a single lot row. A 404 maps to ErrLotNotFound.
func (r *BaserowRepo) GetLot(ctx context.Context, lotID int) (model.Lot, error) {
	var row lotRow
	if err := r.getRow(ctx, r.lotsTable, lotID, &row); err != nil {
		if isNotFound(err) {
			return model.Lot{}, fmt.Errorf("get lot %d: %w", lotID, auctionerrors.ErrLotNotFound)
		}
		return model.Lot{}, fmt.Errorf("get lot %d: %w", lotID, err)
	}
	return row.toModel(), nil
}

// GetArtist fetches a single artist row.
func (r *BaserowRepo) GetArtist(ctx context.Context, artistID int) (model.Artist, error) {
	var row artistRow
	if err := r.getRow(ctx, r.artistsTable, artistID, &row); err != nil {
		return model.Artist{}, fmt.Errorf("get artist %d: %w", artistID, err)
	}
	return row.toModel(), nil
}

// GetUser fetches a single user row by record-store ID.
func (r *BaserowRepo) GetUser(ctx context.Context, rowID int) (model.User, error) {
	var row userRow
	if err := r.getRow(ctx, r.usersTable, rowID, &row); err != nil {
		if isNotFound(err) {
			return model.User{}, fmt.Errorf("get user %d: %w", rowID, auctionerrors.ErrUserNotFound)
		}
		return model.User{}, fmt.Errorf("get user %d: %w", rowID, err)
	}
	return row.toModel(), nil
}

// FindUserByTelegramID scans the Users table for a matching Telegram ID.
// The store has no native filter for it in this design.
func (r *BaserowRepo) FindUserByTelegramID(ctx context.Context, telegramID int64) (model.User, error) {
	want := strconv.FormatInt(telegramID, 10)

	var found *userRow
	err := r.listRows(ctx, r.usersTable, func(results json.RawMessage) error {
		var rows []userRow
		if err := json.Unmarshal(results, &rows); err != nil {
			return fmt.Errorf("decode users page: %w", err)
		}
		for i := range rows {
			if rows[i].TelegramID == want {
				found = &rows[i]
				return errStopListing
			}
		}
		return nil
	})
	if err != nil {
		return model.User{}, fmt.Errorf("find user by telegram id %d: %w", telegramID, err)
	}
	if found == nil {
		return model.User{}, fmt.Errorf("find user by telegram id %d: %w", telegramID, auctionerrors.ErrUserNotFound)
	}
	return found.toModel(), nil
}

// CreateUser registers a new bidder row.
func (r *BaserowRepo) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	payload := map[string]any{
		"TelegramID":   strconv.FormatInt(user.TelegramID, 10),
		"Username":     user.Username,
		"ProfileImage": user.ProfileImage,
	}
	var row userRow
	if err := r.createRow(ctx, r.usersTable, payload, &row); err != nil {
		return model.User{}, fmt.Errorf("create user tg %d: %w", user.TelegramID, err)
	}
	return row.toModel(), nil
}

// UpdateUserPhone patches the phone number onto an existing user row.
func (r *BaserowRepo) UpdateUserPhone(ctx context.Context, rowID int, phone string) error {
	payload := map[string]any{"PhoneNumber": phone}
	if err := r.patchRow(ctx, r.usersTable, rowID, payload); err != nil {
		return fmt.Errorf("update phone for user %d: %w", rowID, err)
	}
	return nil
}

// ListBetsByLot returns every bet row linked to the lot. Amounts that fail
// to parse as positive numbers are kept but marked Invalid so the caller
// can log the data-quality warning.
func (r *BaserowRepo) ListBetsByLot(ctx context.Context, lotID int) ([]model.Bet, error) {
	var bets []model.Bet
	err := r.listRows(ctx, r.betsTable, func(results json.RawMessage) error {
		var rows []betRow
		if err := json.Unmarshal(results, &rows); err != nil {
			return fmt.Errorf("decode bets page: %w", err)
		}
		for _, row := range rows {
			if len(row.Lot) == 0 || row.Lot[0].ID != lotID {
				continue
			}
			bets = append(bets, row.toModel())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list bets for lot %d: %w", lotID, err)
	}
	return bets, nil
}

// CreateBet appends a new bet row. The amount travels as a string: the
// store keeps BetValue in a text field.
func (r *BaserowRepo) CreateBet(ctx context.Context, bet model.Bet) (model.Bet, error) {
	payload := map[string]any{
		"BetValue": strconv.FormatFloat(bet.Amount, 'f', -1, 64),
		"Date":     bet.Date.UTC().Format(time.RFC3339),
		"User":     []int{bet.UserID},
		"Lot":      []int{bet.LotID},
	}
	var row betRow
	if err := r.createRow(ctx, r.betsTable, payload, &row); err != nil {
		return model.Bet{}, fmt.Errorf("create bet on lot %d by user %d: %w", bet.LotID, bet.UserID, err)
	}
	return row.toModel(), nil
}

// --- row decoding ---

func (row userRow) toModel() model.User {
	tgID, _ := strconv.ParseInt(row.TelegramID, 10, 64)
	return model.User{
		ID:           row.ID,
		TelegramID:   tgID,
		Username:     row.Username,
		ProfileImage: row.ProfileImage,
		PhoneNumber:  row.PhoneNumber,
	}
}

func (row lotRow) toModel() model.Lot {
	price, err := strconv.ParseFloat(row.InitialPrice, 64)
	if err != nil {
		utils.Warn("lot has unparseable initial price", map[string]any{
			"lot_id": row.ID,
			"value":  row.InitialPrice,
		})
		price = 0
	}
	lot := model.Lot{
		ID:           row.ID,
		Name:         row.Name,
		LotNumber:    row.LotNumber,
		InitialPrice: price,
	}
	for _, ref := range row.Artists {
		lot.ArtistIDs = append(lot.ArtistIDs, ref.ID)
	}
	if len(row.Image) > 0 {
		lot.ImageURL = row.Image[0].URL
	}
	return lot
}

func (row artistRow) toModel() model.Artist {
	name := row.DisplayName
	if name == "" {
		name = row.Name
	}
	return model.Artist{ID: row.ID, DisplayName: name}
}

func (row betRow) toModel() model.Bet {
	bet := model.Bet{ID: row.ID, Raw: row.BetValue}
	if len(row.Lot) > 0 {
		bet.LotID = row.Lot[0].ID
	}
	if len(row.User) > 0 {
		bet.UserID = row.User[0].ID
	}
	if ts, err := time.Parse(time.RFC3339, row.Date); err == nil {
		bet.Date = ts
	}
	amount, err := strconv.ParseFloat(row.BetValue, 64)
	if err != nil || math.IsInf(amount, 0) || math.IsNaN(amount) || amount <= 0 || bet.UserID == 0 {
		bet.Invalid = true
		return bet
	}
	bet.Amount = amount
	return bet
}

// --- HTTP plumbing ---

// errStopListing short-circuits pagination once the caller found its row.
var errStopListing = errors.New("stop listing")

func isNotFound(err error) bool {
	var se statusError
	return errors.As(err, &se) && se.code == http.StatusNotFound
}

type statusError struct {
	code int
	body string
}

func (e statusError) Error() string {
	return fmt.Sprintf("%v: status %d: %s", auctionerrors.ErrUpstream, e.code, e.body)
}

func (e statusError) Unwrap() error {
	return auctionerrors.ErrUpstream
}

func (r *BaserowRepo) rowURL(tableID, rowID int) string {
	return fmt.Sprintf("%s/api/database/rows/table/%d/%d/?user_field_names=true", r.baseURL, tableID, rowID)
}

func (r *BaserowRepo) tableURL(tableID int) string {
	return fmt.Sprintf("%s/api/database/rows/table/%d/?user_field_names=true", r.baseURL, tableID)
}

func (r *BaserowRepo) getRow(ctx context.Context, tableID, rowID int, out any) error {
	return r.do(ctx, http.MethodGet, r.rowURL(tableID, rowID), nil, out)
}

func (r *BaserowRepo) createRow(ctx context.Context, tableID int, payload any, out any) error {
	return r.do(ctx, http.MethodPost, r.tableURL(tableID), payload, out)
}

func (r *BaserowRepo) patchRow(ctx context.Context, tableID, rowID int, payload any) error {
	return r.do(ctx, http.MethodPatch, r.rowURL(tableID, rowID), payload, nil)
}

// listRows walks every page of a table, handing each raw results array to
// the visitor. The visitor may return errStopListing to end early.
func (r *BaserowRepo) listRows(ctx context.Context, tableID int, visit func(results json.RawMessage) error) error {
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s&page=%d&size=%d", r.tableURL(tableID), page, listPageSize)
		var resp listResponse
		if err := r.do(ctx, http.MethodGet, url, nil, &resp); err != nil {
			return err
		}
		if err := visit(resp.Results); err != nil {
			if errors.Is(err, errStopListing) {
				return nil
			}
			return err
		}
		if resp.Next == nil || *resp.Next == "" {
			return nil
		}
	}
}

func (r *BaserowRepo) do(ctx context.Context, method, url string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+r.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", auctionerrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return statusError{code: resp.StatusCode, body: string(detail)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
