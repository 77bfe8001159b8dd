package catalog

// coerce.go converts messy source-cell strings into canonical values.
//
// Export files arrive with currency symbols, thousand separators,
// yes/no booleans and vendor-specific enum spellings. All coercion is
// lossy-tolerant: an unparseable value falls back to a zero value and
// the caller decides whether that counts as a recoverable row error.

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal parses a human-entered number, stripping currency
// symbols, thousand separators and accounting-style negative
// parentheses. The second return is false when nothing numeric remains.
func ParseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	for _, sym := range []string{"$", "€", "£", ","} {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.TrimSpace(s)
	if negative {
		s = "-" + s
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParsePrice normalizes a price cell to a plain decimal string.
// Returns "" when the cell holds no parseable number, so callers can
// distinguish "absent" from an explicit zero.
func ParsePrice(s string) string {
	d, ok := ParseDecimal(s)
	if !ok {
		return ""
	}
	return d.String()
}

// ParseBool interprets the boolean spellings that appear in catalog
// exports. Unrecognized values return the fallback.
func ParseBool(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1":
		return true
	case "false", "f", "no", "n", "0":
		return false
	default:
		return fallback
	}
}

// ParseInt parses an integer cell, tolerating decimal formatting
// ("12.0") and separators. Unparseable values default to 0; per the
// skip-and-count policy this is recoverable, never fatal.
func ParseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if d, ok := ParseDecimal(s); ok {
		return int(d.IntPart())
	}
	return 0
}

// ParseFloat parses a float cell with the same tolerance as ParseInt.
func ParseFloat(s string) float64 {
	d, ok := ParseDecimal(s)
	if !ok {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// ParseStatus maps source publication states onto the canonical enum.
// Anything explicitly unpublished becomes draft; the default is active.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "draft", "false", "hidden", "no", "0":
		return StatusDraft
	default:
		return StatusActive
	}
}

// ParseInventoryPolicy maps source oversell flags onto the canonical
// enum, defaulting to deny.
func ParseInventoryPolicy(s string) InventoryPolicy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "continue", "allow", "backorder", "notify":
		return InventoryPolicyContinue
	default:
		return InventoryPolicyDeny
	}
}

// ParseWeightUnit maps source weight units onto the canonical enum,
// defaulting to kilograms.
func ParseWeightUnit(s string) WeightUnit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "g", "grams":
		return WeightUnitGrams
	case "lb", "lbs", "pounds":
		return WeightUnitPounds
	case "oz", "ounces":
		return WeightUnitOunces
	default:
		return WeightUnitKilograms
	}
}

// SplitTags splits a delimited tag cell into trimmed, non-empty tags.
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
