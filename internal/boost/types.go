// Package boost computes per-category demand boosts from real-time driver
// signals and composes them into a capped total and a final forecast.
package boost

import "github.com/planflow/demand-planner/internal/driver"

// #region categories

// Category identifies one demand signal family.
type Category string

const (
	CategorySocial       Category = "social"
	CategoryMarketing    Category = "marketing"
	CategoryTradePromo   Category = "trade_promo"
	CategoryDigitalShelf Category = "digital_shelf"
	CategoryWeather      Category = "weather"
	CategoryCompetitor   Category = "competitor"
)

// Categories lists all boost categories in aggregation order.
func Categories() []Category {
	return []Category{
		CategorySocial,
		CategoryMarketing,
		CategoryTradePromo,
		CategoryDigitalShelf,
		CategoryWeather,
		CategoryCompetitor,
	}
}

// DisplayName is the long-form label used in narrations and audit rows.
func (c Category) DisplayName() string {
	switch c {
	case CategorySocial:
		return "Real Time Social Signals"
	case CategoryMarketing:
		return "Real Time Marketing Spend and Engagement Signals"
	case CategoryTradePromo:
		return "Real Time Trade Promo Signals"
	case CategoryDigitalShelf:
		return "Real Time Digital Shelf Analytics Signals"
	case CategoryWeather:
		return "Real Time Weather/Environment Signals"
	case CategoryCompetitor:
		return "Real Time Competitor Data"
	}
	return string(c)
}

// #endregion categories

// #region results

// CategoryResult is one calculator's output. Inputs records the coerced
// driver values that went into the score, nil for absent or malformed ones.
type CategoryResult struct {
	Category      Category
	BoostFraction float64
	NetScore      float64
	Inputs        map[string]any
}

// Caps bound the aggregate boost fraction.
type Caps struct {
	Min float64
	Max float64
}

// DefaultCaps bound the total at -30% and "+50%+" (0.60).
func DefaultCaps() Caps { return Caps{Min: -0.30, Max: 0.60} }

// Aggregate is the capped sum of all category boosts for one context.
type Aggregate struct {
	Key          driver.ContextKey
	RawTotal     float64
	ClampedTotal float64
	Caps         Caps
	Breakdown    map[Category]CategoryResult
}

// Forecast applies the clamped total boost to the statistical baseline.
type Forecast struct {
	Key           driver.ContextKey
	Baseline      float64
	TotalBoost    float64
	FinalForecast float64
	Boost         Aggregate
}

// #endregion results
