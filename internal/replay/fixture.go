package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/planflow/demand-planner/internal/critic"
	"github.com/planflow/demand-planner/internal/driver"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string        `json:"description"`
	Thresholds  FixtureBounds `json:"thresholds"`
	Cases       []FixtureCase `json:"cases"`
}

// FixtureBounds mirrors critic.Thresholds with JSON tags.
type FixtureBounds struct {
	Upper float64 `json:"upper"`
	Lower float64 `json:"lower"`
}

// FixtureCase is one recorded context plus the outcome it must produce.
type FixtureCase struct {
	SKUID      string          `json:"sku_id"`
	CustomerID string          `json:"customer_id"`
	LocationID string          `json:"location_id"`
	AsOfDate   string          `json:"as_of_date"`
	Expected   FixtureExpected `json:"expected"`
}

// FixtureExpected captures the outcome a case must reproduce.
type FixtureExpected struct {
	Scenario      string  `json:"scenario"`
	TotalBoost    float64 `json:"total_boost_fraction"`
	FinalForecast float64 `json:"final_demand_forecast"`
	Decision      string  `json:"critic_decision"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// Key converts a fixture case to a domain context key.
func (c *FixtureCase) Key() driver.ContextKey {
	return driver.ContextKey{
		SKU:      c.SKUID,
		Customer: c.CustomerID,
		Location: c.LocationID,
		AsOfDate: c.AsOfDate,
	}.Normalize()
}

// ToThresholds converts fixture bounds to domain thresholds, falling
// back to the defaults when the fixture leaves them zero.
func (b FixtureBounds) ToThresholds() critic.Thresholds {
	if b.Upper == 0 && b.Lower == 0 {
		return critic.DefaultThresholds()
	}
	return critic.Thresholds{Upper: b.Upper, Lower: b.Lower}
}

// #endregion fixture-loader
