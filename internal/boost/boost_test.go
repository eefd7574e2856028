package boost

import (
	"math"
	"testing"

	"github.com/planflow/demand-planner/internal/driver"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// #region step-tests

func TestSignedStepBands(t *testing.T) {
	cases := []struct {
		score float64
		want  float64
	}{
		{-1.50, -0.30},
		{-1.00, -0.30},
		{-0.90, -0.20},
		{-0.70, -0.20},
		{-0.55, -0.10},
		{-0.35, -0.10},
		{-0.30, 0.0},
		{0.0, 0.0},
		{0.34, 0.0},
		{0.35, 0.10},
		{0.59, 0.10},
		{0.60, 0.20},
		{0.80, 0.30},
		{0.99, 0.30},
		{1.00, 0.40},
		{1.20, 0.50},
		{1.40, 0.60},
		{2.50, 0.60},
	}
	for _, c := range cases {
		if got := signedStep(c.score); !almostEqual(got, c.want) {
			t.Errorf("signedStep(%v) = %v, want %v", c.score, got, c.want)
		}
	}
}

func TestCompetitorStepBands(t *testing.T) {
	cases := []struct {
		net  float64
		want float64
	}{
		{-1.10, -0.30},
		{-0.80, -0.30},
		{-0.60, -0.20},
		{-0.50, -0.20},
		{-0.30, -0.10},
		{-0.20, -0.10},
		{-0.19, 0.0},
		{0.19, 0.0},
		{0.20, 0.10},
		{0.50, 0.20},
		{0.80, 0.30},
		{1.50, 0.30},
	}
	for _, c := range cases {
		if got := competitorStep(c.net); !almostEqual(got, c.want) {
			t.Errorf("competitorStep(%v) = %v, want %v", c.net, got, c.want)
		}
	}
}

// #endregion step-tests

// #region calculator-tests

func baseKey(date string) driver.ContextKey {
	return driver.ContextKey{SKU: "PONDS_SUPER_LIGHT_GEL_100G", Customer: "BLINKIT", Location: "BANGALORE", AsOfDate: date}
}

func TestSocialSignalSteadyDay(t *testing.T) {
	p := driver.NewStaticProvider()
	values := p.Values(baseKey(driver.DefaultAsOfDate))
	got := SocialSignal(values)
	// trend 0.18 (+0.25), sentiment 73 (+0.20), hashtags 1450 (+0.15),
	// influencer 26 (+0.15): net 0.75 lands in the 0.20 band.
	if !almostEqual(got.NetScore, 0.75) {
		t.Errorf("net = %v, want 0.75", got.NetScore)
	}
	if !almostEqual(got.BoostFraction, 0.20) {
		t.Errorf("boost = %v, want 0.20", got.BoostFraction)
	}
	if v, ok := got.Inputs[driver.SentimentScore].(float64); !ok || v != 73 {
		t.Errorf("recorded sentiment = %v", got.Inputs[driver.SentimentScore])
	}
}

func TestSocialSignalMissingDrivers(t *testing.T) {
	got := SocialSignal(driver.Values{})
	if got.NetScore != 0 || got.BoostFraction != 0 {
		t.Errorf("empty values: net=%v boost=%v, want zeros", got.NetScore, got.BoostFraction)
	}
	if got.Inputs[driver.TrendVelocity] != nil {
		t.Errorf("missing driver recorded as %v, want nil", got.Inputs[driver.TrendVelocity])
	}
}

func TestTradePromoNoLeverHeadwind(t *testing.T) {
	// No bundle, no flash, discount below 2%: the extra headwind applies
	// on top of the per-signal ones.
	values := driver.Values{
		driver.DiscountDepth:  0.0,
		driver.BundleActive:   false,
		driver.FlashSale:      false,
		driver.CartConversion: 0.01,
	}
	got := TradePromo(values)
	// discount (-0.10), cart in [0.01,0.02) (-0.08), no-lever (-0.10) = -0.28
	if !almostEqual(got.NetScore, -0.28) {
		t.Errorf("net = %v, want -0.28", got.NetScore)
	}
	if got.BoostFraction != 0 {
		t.Errorf("boost = %v, want 0 (above the -0.35 band)", got.BoostFraction)
	}
}

func TestTradePromoLeverHeadwindNeedsDiscountValue(t *testing.T) {
	// Without a discount reading at all, the no-lever headwind must not fire.
	got := TradePromo(driver.Values{driver.BundleActive: false, driver.FlashSale: false})
	if got.NetScore != 0 {
		t.Errorf("net = %v, want 0", got.NetScore)
	}
}

func TestCompetitorDataSignedAccumulation(t *testing.T) {
	values := driver.Values{
		driver.CompetitorGap:    35.0,
		driver.CompetitorOOS:    false,
		driver.CompetitorPromo:  0.35,
		driver.CompetitorLaunch: true,
	}
	got := CompetitorData(values)
	// gap >= 30 (-0.40), promo >= 0.30 (-0.45), launch (-0.25) = -1.10
	if !almostEqual(got.NetScore, -1.10) {
		t.Errorf("net = %v, want -1.10", got.NetScore)
	}
	if !almostEqual(got.BoostFraction, -0.30) {
		t.Errorf("boost = %v, want -0.30", got.BoostFraction)
	}
}

func TestCompetitorOOSAlone(t *testing.T) {
	got := CompetitorData(driver.Values{driver.CompetitorOOS: true})
	if !almostEqual(got.NetScore, 0.50) || !almostEqual(got.BoostFraction, 0.20) {
		t.Errorf("net=%v boost=%v, want 0.50/0.20", got.NetScore, got.BoostFraction)
	}
}

// #endregion calculator-tests

// #region aggregate-tests

func TestCalculateBearishClampsAtFloor(t *testing.T) {
	p := driver.NewStaticProvider()
	key := baseKey(driver.BearishDate)
	agg := Calculate(key, p.Values(key))
	// Category boosts on the bearish day: -0.10 -0.20 0 -0.20 -0.10 -0.30.
	if !almostEqual(agg.RawTotal, -0.90) {
		t.Errorf("raw total = %v, want -0.90", agg.RawTotal)
	}
	if !almostEqual(agg.ClampedTotal, -0.30) {
		t.Errorf("clamped = %v, want -0.30 floor", agg.ClampedTotal)
	}
	if len(agg.Breakdown) != 6 {
		t.Errorf("breakdown has %d categories, want 6", len(agg.Breakdown))
	}
}

func TestCalculateBullishClampsAtCeiling(t *testing.T) {
	p := driver.NewStaticProvider()
	key := baseKey(driver.DefaultAsOfDate)
	agg := Calculate(key, p.Values(key))
	// Steady day still sums past the 0.60 cap: 0.20+0.30+0+0.20+0.10+0.
	if !almostEqual(agg.RawTotal, 0.80) {
		t.Errorf("raw total = %v, want 0.80", agg.RawTotal)
	}
	if !almostEqual(agg.ClampedTotal, 0.60) {
		t.Errorf("clamped = %v, want 0.60 ceiling", agg.ClampedTotal)
	}
}

func TestCalculateWithinCaps(t *testing.T) {
	p := driver.NewStaticProvider()
	key := driver.ContextKey{SKU: "DOVE_HAIR_FALL_RESCUE_650ML", Customer: "BLINKIT", Location: "BANGALORE", AsOfDate: driver.DefaultAsOfDate}
	agg := Calculate(key, p.Values(key))
	if !almostEqual(agg.RawTotal, 0.20) {
		t.Errorf("raw total = %v, want 0.20", agg.RawTotal)
	}
	if !almostEqual(agg.ClampedTotal, 0.20) {
		t.Errorf("clamped = %v, want raw passthrough", agg.ClampedTotal)
	}
}

func TestComposeAppliesBoostToBaseline(t *testing.T) {
	p := driver.NewStaticProvider()
	key := baseKey(driver.BearishDate)
	fc := Compose(key, p.Values(key))
	if fc.Baseline != 85 {
		t.Errorf("baseline = %v, want 85", fc.Baseline)
	}
	if !almostEqual(fc.TotalBoost, -0.30) {
		t.Errorf("total boost = %v, want -0.30", fc.TotalBoost)
	}
	if !almostEqual(fc.FinalForecast, 59.5) {
		t.Errorf("forecast = %v, want 59.50", fc.FinalForecast)
	}
}

func TestComposeMissingBaselineDefaultsToZero(t *testing.T) {
	fc := Compose(driver.ContextKey{SKU: "X", Customer: "Y", Location: "Z", AsOfDate: "2026-01-01"}, driver.Values{})
	if fc.Baseline != 0 || fc.FinalForecast != 0 {
		t.Errorf("baseline=%v forecast=%v, want zeros", fc.Baseline, fc.FinalForecast)
	}
}

func TestComposeRoundsForecast(t *testing.T) {
	// Manufacture a +10% total: one category at 0.10, the rest neutral.
	values := driver.Values{
		driver.BaselineForecast: 33.33,
		driver.MaxTemperature:   27.0,  // +0.15
		driver.HumidityIndex:    0.55,  // +0.06
		driver.UVIndex:          4.5,   // +0.08
		driver.AQI:              110.0, // +0.06 -> net 0.35 -> boost 0.10
	}
	fc := Compose(driver.ContextKey{SKU: "A", Customer: "B", Location: "C", AsOfDate: "2026-01-01"}, values)
	if !almostEqual(fc.TotalBoost, 0.10) {
		t.Fatalf("total boost = %v, want 0.10", fc.TotalBoost)
	}
	if !almostEqual(fc.FinalForecast, 36.66) {
		t.Errorf("forecast = %v, want 36.66", fc.FinalForecast)
	}
}

func TestPercentOf(t *testing.T) {
	if got := PercentOf(0.305); !almostEqual(got, 30.5) {
		t.Errorf("PercentOf(0.305) = %v", got)
	}
	if got := PercentOf(-0.30); !almostEqual(got, -30) {
		t.Errorf("PercentOf(-0.30) = %v", got)
	}
}

// #endregion aggregate-tests
