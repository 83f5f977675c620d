package workflow

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/inakado/aspy-bot/internal/auctionerrors"
)

// confirmTokens accept the suggested amount without retyping it.
var confirmTokens = map[string]struct{}{
	"подтвердить": {},
	"confirm":     {},
	"да":          {},
	"yes":         {},
}

func isConfirmToken(text string) bool {
	_, ok := confirmTokens[strings.ToLower(text)]
	return ok
}

// parseAmount accepts a decimal with comma or period as the fractional
// separator, strictly greater than zero. ParseFloat also accepts "inf" and
// "nan" spellings; a non-finite bid would become an undisplaceable leader,
// so those are rejected here.
func parseAmount(text string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	amount, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", auctionerrors.ErrInvalidAmount, text)
	}
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return 0, fmt.Errorf("%w: non-finite %q", auctionerrors.ErrInvalidAmount, text)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: non-positive %q", auctionerrors.ErrInvalidAmount, text)
	}
	return amount, nil
}

// validPhone accepts exactly 11 digits starting with "79".
func validPhone(phone string) bool {
	if len(phone) != 11 || !strings.HasPrefix(phone, "79") {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseDeepLink decodes a /start payload of the form bid_<lotID>_<amount>.
// The amount part is returned raw; whether it becomes a suggestion depends
// on the lot's current maximum.
func parseDeepLink(payload string) (lotID int, suggestedRaw string, err error) {
	parts := strings.Split(payload, "_")
	if len(parts) < 3 {
		return 0, "", fmt.Errorf("deep link %q: missing parts", payload)
	}
	lotID, err = strconv.Atoi(parts[1])
	if err != nil || lotID <= 0 {
		return 0, "", fmt.Errorf("deep link %q: bad lot id", payload)
	}
	return lotID, parts[2], nil
}

// parseRaiseCallback decodes a raise_bet_<lotID> button payload.
func parseRaiseCallback(data string) (int, bool) {
	const prefix = "raise_bet_"
	if !strings.HasPrefix(data, prefix) {
		return 0, false
	}
	lotID, err := strconv.Atoi(strings.TrimPrefix(data, prefix))
	if err != nil || lotID <= 0 {
		return 0, false
	}
	return lotID, true
}

// parseTargetID decodes the /notify target chat identifier.
func parseTargetID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("target id %q is not a chat id", arg)
	}
	return id, nil
}
