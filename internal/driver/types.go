package driver

import "strings"

// #region context-key

// ContextKey identifies one unit of forecasting work:
// a SKU sold to a customer at a location on a date.
type ContextKey struct {
	SKU      string
	Customer string
	Location string
	AsOfDate string
}

// Normalize trims all fields and upper-cases the identifier fields.
// Dates are kept as-is (ISO YYYY-MM-DD expected).
func (k ContextKey) Normalize() ContextKey {
	return ContextKey{
		SKU:      strings.ToUpper(strings.TrimSpace(k.SKU)),
		Customer: strings.ToUpper(strings.TrimSpace(k.Customer)),
		Location: strings.ToUpper(strings.TrimSpace(k.Location)),
		AsOfDate: strings.TrimSpace(k.AsOfDate),
	}
}

// String renders the key for logs and audit rows.
func (k ContextKey) String() string {
	return k.SKU + "/" + k.Customer + "/" + k.Location + "/" + k.AsOfDate
}

// #endregion context-key

// #region provider

// Values maps driver names to raw values (float64, bool, or nil for
// recorded-but-null). Absent drivers are simply missing keys.
type Values map[string]any

// Notes maps driver names to short human-readable annotations.
type Notes map[string]string

// Provider supplies real-time demand driver data for a context key.
// Implementations must be read-only; an unknown key returns empty maps,
// never an error.
type Provider interface {
	Values(key ContextKey) Values
	Notes(key ContextKey) Notes
	Scenario(key ContextKey) string
}

// #endregion provider

// #region coercion

// Float interprets a raw driver value as a number.
// Returns false for nil, booleans, and anything non-numeric.
func Float(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}

// Bool interprets a raw driver value as a flag. String forms like
// "true"/"yes"/"1" are accepted; anything else returns false.
func Bool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "1", "yes", "y":
			return true, true
		case "false", "0", "no", "n":
			return false, true
		}
	}
	return false, false
}

// #endregion coercion
