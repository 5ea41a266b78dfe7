package reconciler

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const msPerDay = int64(24 * 60 * 60 * 1000)

// ParseEpochMs converts a raw vendor timestamp into epoch milliseconds. The
// vendor sends these as JSON numbers or as numeric strings depending on the
// delivery path, so every shape is parsed explicitly before any arithmetic.
func ParseEpochMs(v any) (int64, error) {
	switch t := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: value absent", ErrInvalidTimestamp)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || t != math.Trunc(t) {
			return 0, fmt.Errorf("%w: %v is not a finite integer", ErrInvalidTimestamp, t)
		}
		return int64(t), nil
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, t.String())
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidTimestamp, v)
	}
}

// expectedDays infers the intended billing period from the vendor SKU naming
// convention. Unrecognized or empty product ids default to monthly.
func expectedDays(productID string) int64 {
	p := strings.ToLower(productID)
	if strings.Contains(p, "yearly") || strings.Contains(p, "annual") {
		return 365
	}
	return 30
}

// Sanitize validates a purchase/expiration window against the duration the
// product SKU implies. The vendor has been observed emitting expiration
// timestamps only minutes after purchase regardless of plan; when the window
// is more than a day short of the expected period, the expiration is rebuilt
// from the purchase time and the SKU-implied duration. Windows that are long
// enough pass through untouched, and a "too long" window is never corrected.
func Sanitize(purchasedAtMs, expirationAtMs int64, productID string) (int64, int64, bool) {
	days := expectedDays(productID)
	thresholdMs := days*msPerDay - msPerDay

	if expirationAtMs-purchasedAtMs < thresholdMs {
		return purchasedAtMs, purchasedAtMs + days*msPerDay, true
	}
	return purchasedAtMs, expirationAtMs, false
}
