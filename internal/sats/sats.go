// Package sats converts between the integer base unit (satoshis) and its BTC
// display denomination. All arithmetic is integer; monetary values never
// touch floating point.
package sats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PerBTC is the number of sats in one BTC.
const PerBTC int64 = 100_000_000

// ErrInvalidAmount indicates a string that cannot be parsed as a BTC amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseBTC converts a decimal BTC string to sats. It accepts both dot and
// comma decimal separators, an optional leading sign, and at most 8
// fractional digits. "1.5" -> 150_000_000.
func ParseBTC(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > 8 {
		return 0, fmt.Errorf("%w: more than 8 decimal places", ErrInvalidAmount)
	}
	// ASCII digits only; unicode.IsDigit would accept digits the '0'-based
	// arithmetic below cannot value.
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}

	var whole int64
	for _, r := range intPart {
		d := int64(r - '0')
		if whole > (1<<63-1-d)/10 {
			return 0, fmt.Errorf("%w: overflow", ErrInvalidAmount)
		}
		whole = whole*10 + d
	}
	// Right-pad the fractional part to 8 digits.
	var frac int64
	for i := 0; i < 8; i++ {
		frac *= 10
		if i < len(fracPart) {
			frac += int64(fracPart[i] - '0')
		}
	}

	const maxWhole = (1<<63 - 1) / 100_000_000
	if whole > maxWhole || (whole == maxWhole && frac > (1<<63-1)%100_000_000) {
		return 0, fmt.Errorf("%w: overflow", ErrInvalidAmount)
	}

	total := whole*PerBTC + frac
	if negative {
		total = -total
	}
	return total, nil
}

// FormatBTC renders sats as a BTC decimal string with trailing fractional
// zeros trimmed. 150_000_000 -> "1.5", -1 -> "-0.00000001", 0 -> "0".
func FormatBTC(v int64) string {
	// Magnitude in uint64 so MinInt64 doesn't overflow on negation.
	sign := ""
	u := uint64(v)
	if v < 0 {
		sign = "-"
		u = -u
	}
	whole := u / uint64(PerBTC)
	frac := u % uint64(PerBTC)
	if frac == 0 {
		return fmt.Sprintf("%s%d", sign, whole)
	}
	fracStr := strings.TrimRight(fmt.Sprintf("%08d", frac), "0")
	return fmt.Sprintf("%s%d.%s", sign, whole, fracStr)
}

// FormatSats renders sats with thousands grouping for terminal display.
// 1234567 -> "1,234,567".
func FormatSats(v int64) string {
	sign := ""
	u := uint64(v)
	if v < 0 {
		sign = "-"
		u = -u
	}
	digits := strconv.FormatUint(u, 10)
	var b strings.Builder
	b.WriteString(sign)
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
