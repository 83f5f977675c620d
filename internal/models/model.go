package models

import "time"

// User represents a bidder registered in the record store.
// ID is the record-store row identifier; TelegramID is the chat-platform identity.
type User struct {
	ID           int    `json:"id"`
	TelegramID   int64  `json:"telegram_id"`
	Username     string `json:"username"`
	ProfileImage string `json:"profile_image"`
	PhoneNumber  string `json:"phone_number"`
}

// HasPhone reports whether the user has completed phone verification.
func (u User) HasPhone() bool {
	return u.PhoneNumber != ""
}

// Lot represents an auction item. Read-only from the bot's perspective.
type Lot struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	LotNumber    string  `json:"lot_number"`
	InitialPrice float64 `json:"initial_price"`
	ArtistIDs    []int   `json:"artist_ids"`
	ImageURL     string  `json:"image_url"`
}

// Artist represents a lot's author.
type Artist struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
}

// Bet represents a single bid record. Append-only; once created it is
// never mutated. The current leader for a lot is derived from the set of
// its bets, not stored.
type Bet struct {
	ID     int       `json:"id"`
	LotID  int       `json:"lot_id"`
	UserID int       `json:"user_id"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
	// Invalid marks a bet whose record-store amount failed to parse as a
	// positive number; Raw keeps the original string for the warning log.
	// Invalid bets are excluded from leader derivation.
	Invalid bool   `json:"-"`
	Raw     string `json:"-"`
}

// Session is the per-conversation transient workflow state.
type Session struct {
	ChatID          int64   `json:"chat_id"`
	UserID          int64   `json:"user_id"`
	LotID           int     `json:"lot_id"`
	SuggestedAmount float64 `json:"suggested_amount,omitempty"`
	AwaitingPhone   bool    `json:"awaiting_phone,omitempty"`

	// Staged bid fields, present only between successful validation and
	// commit. PreviousLeaderID is zero when the lot had no valid bets.
	Staged           bool    `json:"staged,omitempty"`
	PreviousLeaderID int     `json:"previous_leader_id,omitempty"`
	PreviousMax      float64 `json:"previous_max,omitempty"`
	BidAmount        float64 `json:"bid_amount,omitempty"`
}

// ClearStaged drops the staged bid fields and intake flags after a commit,
// keeping lot and user so the conversation can raise again.
func (s *Session) ClearStaged() {
	s.Staged = false
	s.PreviousLeaderID = 0
	s.PreviousMax = 0
	s.BidAmount = 0
	s.SuggestedAmount = 0
	s.AwaitingPhone = false
}
