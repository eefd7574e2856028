package boost

import "github.com/planflow/demand-planner/internal/driver"

// #region aggregate

// Calculate runs every category calculator and clamps the summed boost.
func Calculate(key driver.ContextKey, values driver.Values) Aggregate {
	key = key.Normalize()
	breakdown := map[Category]CategoryResult{
		CategorySocial:       SocialSignal(values),
		CategoryMarketing:    MarketingSpend(values),
		CategoryTradePromo:   TradePromo(values),
		CategoryDigitalShelf: DigitalShelf(values),
		CategoryWeather:      WeatherEnvironment(values),
		CategoryCompetitor:   CompetitorData(values),
	}

	raw := 0.0
	for _, cat := range Categories() {
		raw += breakdown[cat].BoostFraction
	}
	raw = round4(raw)

	caps := DefaultCaps()
	clamped := raw
	if clamped < caps.Min {
		clamped = caps.Min
	} else if clamped > caps.Max {
		clamped = caps.Max
	}

	return Aggregate{
		Key:          key,
		RawTotal:     raw,
		ClampedTotal: round4(clamped),
		Caps:         caps,
		Breakdown:    breakdown,
	}
}

// #endregion aggregate

// #region forecast

// Compose turns the clamped aggregate boost and the statistical baseline
// into a final forecast. A missing or malformed baseline counts as zero.
func Compose(key driver.ContextKey, values driver.Values) Forecast {
	agg := Calculate(key, values)
	baseline, ok := driver.Float(values[driver.BaselineForecast])
	if !ok {
		baseline = 0
	}
	return Forecast{
		Key:           agg.Key,
		Baseline:      baseline,
		TotalBoost:    agg.ClampedTotal,
		FinalForecast: round2(baseline * (1.0 + agg.ClampedTotal)),
		Boost:         agg,
	}
}

// #endregion forecast

// PercentOf converts a boost fraction to a display percent, rounded to
// two decimals (0.30 -> 30.00).
func PercentOf(fraction float64) float64 { return round2(fraction * 100) }
