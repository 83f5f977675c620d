// Package bidservice implements bid arbitration: deriving the current
// leader of a lot and validating and committing new bids against it.
package bidservice

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/inakado/aspy-bot/internal/auctionerrors"
	model "github.com/inakado/aspy-bot/internal/models"
	"github.com/inakado/aspy-bot/internal/repository"
	"github.com/inakado/aspy-bot/utils"
)

// BidService holds the bid arbitration logic for auction lots.
type BidService struct {
	store repository.RecordStore

	mu       sync.Mutex
	lotLocks map[int]*sync.Mutex
}

// NewBidService creates a new BidService instance.
func NewBidService(store repository.RecordStore) *BidService {
	return &BidService{
		store:    store,
		lotLocks: make(map[int]*sync.Mutex),
	}
}

// Leader is the derived state of a lot's bidding.
type Leader struct {
	Amount float64
	UserID int // zero when no valid bet exists
}

// BidTooLowError reports a rejected amount together with the floor the
// candidate had to exceed, so the reply layer can name it.
type BidTooLowError struct {
	Floor float64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("%v: current maximum is %.0f", auctionerrors.ErrBidTooLow, e.Floor)
}

func (e *BidTooLowError) Unwrap() error {
	return auctionerrors.ErrBidTooLow
}

// CurrentLeader returns the highest valid bid for a lot and its holder.
// Bets whose amount does not parse as a positive number are discarded with a
// data-quality warning. When no valid bet exists the lot's initial price is
// returned with a zero holder. Ties go to the bet encountered first; the
// record store guarantees no secondary ordering.
func (s *BidService) CurrentLeader(ctx context.Context, lotID int, initialPrice float64) (Leader, error) {
	bets, err := s.store.ListBetsByLot(ctx, lotID)
	if err != nil {
		return Leader{}, fmt.Errorf("service: failed to list bets for lot %d: %w", lotID, err)
	}

	var leader Leader
	for _, bet := range bets {
		if bet.Invalid {
			utils.Warn("discarding bet with invalid amount", map[string]any{
				"bet_id": bet.ID,
				"lot_id": lotID,
				"value":  bet.Raw,
			})
			continue
		}
		if leader.UserID == 0 || bet.Amount > leader.Amount {
			leader = Leader{Amount: bet.Amount, UserID: bet.UserID}
		}
	}
	if leader.UserID == 0 {
		return Leader{Amount: initialPrice}, nil
	}
	return leader, nil
}

// ValidateBid checks a candidate amount against business rules and returns
// the leader it was validated against, for staging in the session.
func (s *BidService) ValidateBid(ctx context.Context, lot model.Lot, bidderID int, amount float64) (Leader, error) {
	if amount <= 0 {
		return Leader{}, fmt.Errorf("service: %w - non-positive amount", auctionerrors.ErrInvalidAmount)
	}

	leader, err := s.CurrentLeader(ctx, lot.ID, lot.InitialPrice)
	if err != nil {
		return Leader{}, err
	}

	if amount <= leader.Amount {
		return Leader{}, fmt.Errorf("service: %w", &BidTooLowError{Floor: leader.Amount})
	}
	if leader.UserID != 0 && leader.UserID == bidderID {
		return Leader{}, fmt.Errorf("service: %w - user %d holds the lead on lot %d", auctionerrors.ErrSelfOutbid, bidderID, lot.ID)
	}

	return leader, nil
}

// CommitBid serializes the read-validate-write sequence per lot, re-checks
// the current maximum under the lock, and appends the bet. The returned
// leader is the one displaced at commit time (zero holder when the lot had
// no valid bets). Serialization is in-process only; a multi-process
// deployment must route a lot's bids to one worker.
func (s *BidService) CommitBid(ctx context.Context, lot model.Lot, bidderID int, amount float64) (model.Bet, Leader, error) {
	lock := s.lockFor(lot.ID)
	lock.Lock()
	defer lock.Unlock()

	displaced, err := s.ValidateBid(ctx, lot, bidderID, amount)
	if err != nil {
		return model.Bet{}, Leader{}, err
	}

	bet := model.Bet{
		LotID:  lot.ID,
		UserID: bidderID,
		Amount: amount,
		Date:   time.Now().UTC(),
	}
	created, err := s.store.CreateBet(ctx, bet)
	if err != nil {
		return model.Bet{}, Leader{}, fmt.Errorf("service: failed to record bet on lot %d by user %d: %w", lot.ID, bidderID, err)
	}

	return created, displaced, nil
}

func (s *BidService) lockFor(lotID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.lotLocks[lotID]
	if !ok {
		lock = &sync.Mutex{}
		s.lotLocks[lotID] = lock
	}
	return lock
}
