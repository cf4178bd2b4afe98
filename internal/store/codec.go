package store

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Cell coercion is deterministic and total: reads never fail on malformed
// content. Missing or unparseable numbers decode to zero, booleans to false,
// timestamps to the zero time.

func DecodeDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func DecodeBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return b
}

func DecodeTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

func EncodeBool(b bool) string {
	return strconv.FormatBool(b)
}

func EncodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
