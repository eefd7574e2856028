// Package critic validates a computed boost against planner thresholds and
// checks that every signal category had the driver data it needed. Its
// decision drives the routing step: proceed, escalate to a human, or ask
// the actor to rerun.
package critic

import (
	"fmt"

	"github.com/planflow/demand-planner/internal/boost"
	"github.com/planflow/demand-planner/internal/driver"
)

// #region thresholds

// Thresholds bound the total boost a planner will accept without review.
type Thresholds struct {
	Upper float64
	Lower float64
}

// DefaultThresholds accept boosts between -20% and +30%.
func DefaultThresholds() Thresholds { return Thresholds{Upper: 0.30, Lower: -0.20} }

// Outside reports whether a total boost escapes the acceptance band.
func (t Thresholds) Outside(total float64) bool {
	return total > t.Upper || total < t.Lower
}

// #endregion thresholds

// #region health

// HealthStatus classifies one category's driver completeness.
type HealthStatus string

const (
	StatusOK             HealthStatus = "ok"
	StatusIncomplete     HealthStatus = "incomplete"
	StatusMissingContext HealthStatus = "missing_context_data"
)

// CategoryHealth records which required drivers were absent or null.
type CategoryHealth struct {
	Status  HealthStatus
	Missing []string
	Nulls   []string
}

// RequiredDrivers lists the driver names a category cannot be scored
// without. POS drivers are deliberately not represented: they are
// informational, not causal.
func RequiredDrivers(cat boost.Category) []string {
	switch cat {
	case boost.CategorySocial:
		return []string{driver.TrendVelocity, driver.SentimentScore, driver.HashtagVolume, driver.InfluencerCount}
	case boost.CategoryMarketing:
		return []string{driver.MarketingSpend, driver.CampaignCTR, driver.VideoCompletion, driver.RetargetingPool}
	case boost.CategoryTradePromo:
		return []string{driver.DiscountDepth, driver.BundleActive, driver.FlashSale, driver.CartConversion}
	case boost.CategoryDigitalShelf:
		return []string{driver.KeywordRank, driver.PDPViews, driver.BuyBoxWinRate, driver.ReviewVelocity}
	case boost.CategoryWeather:
		return []string{driver.MaxTemperature, driver.HumidityIndex, driver.UVIndex, driver.AQI}
	case boost.CategoryCompetitor:
		return []string{driver.CompetitorGap, driver.CompetitorOOS, driver.CompetitorPromo, driver.CompetitorLaunch}
	}
	return nil
}

// #endregion health

// #region review

// Decision is the critic's routing verdict.
type Decision string

const (
	DecisionWithinThresholds Decision = "within_thresholds"
	DecisionRouteToHuman     Decision = "route_to_human_approval"
	DecisionAskActorRerun    Decision = "ask_actor_rerun"
)

// Issue describes one problem the review surfaced.
type Issue struct {
	Type     string
	Category boost.Category
	Missing  []string
	Nulls    []string
	Message  string
}

// ReviewResult is the critic's full verdict for one context.
type ReviewResult struct {
	Key               driver.ContextKey
	Thresholds        Thresholds
	TotalBoost        float64
	OutsideThresholds bool
	Decision          Decision
	NextAction        string
	Health            map[boost.Category]CategoryHealth
	Reruns            []boost.Category
	Issues            []Issue
}

// Review checks the aggregate boost against thresholds and audits driver
// completeness per category. An entirely empty value set marks every
// category missing_context_data and recommends a full rerun.
func Review(key driver.ContextKey, values driver.Values, agg boost.Aggregate, th Thresholds) ReviewResult {
	key = key.Normalize()
	total := agg.ClampedTotal
	outside := th.Outside(total)

	health := map[boost.Category]CategoryHealth{}
	var reruns []boost.Category
	var issues []Issue

	if len(values) == 0 {
		issues = append(issues, Issue{
			Type:    string(StatusMissingContext),
			Message: fmt.Sprintf("no demand driver values found for context %s", key),
		})
		for _, cat := range boost.Categories() {
			health[cat] = CategoryHealth{Status: StatusMissingContext, Missing: RequiredDrivers(cat)}
			reruns = append(reruns, cat)
		}
	} else {
		for _, cat := range boost.Categories() {
			var missing, nulls []string
			for _, name := range RequiredDrivers(cat) {
				v, present := values[name]
				switch {
				case !present:
					missing = append(missing, name)
				case v == nil:
					nulls = append(nulls, name)
				}
			}
			if len(missing) > 0 || len(nulls) > 0 {
				health[cat] = CategoryHealth{Status: StatusIncomplete, Missing: missing, Nulls: nulls}
				reruns = append(reruns, cat)
				issues = append(issues, Issue{
					Type:     "missing_driver_values",
					Category: cat,
					Missing:  missing,
					Nulls:    nulls,
				})
			} else {
				health[cat] = CategoryHealth{Status: StatusOK}
			}
		}
	}

	allOK := len(reruns) == 0 && len(health) > 0

	var decision Decision
	var next string
	switch {
	case outside && allOK:
		decision = DecisionRouteToHuman
		next = "Request human approval to finalize consensus demand (boost outside thresholds)."
	case outside && !allOK:
		decision = DecisionAskActorRerun
		next = "Ask the actor to rerun the flagged categories and recompute boosts."
	case !outside && allOK:
		decision = DecisionWithinThresholds
		next = "Boost within thresholds; proceed."
	default:
		decision = DecisionAskActorRerun
		next = "Boost may be unreliable due to missing driver values; rerun flagged categories."
	}

	return ReviewResult{
		Key:               key,
		Thresholds:        th,
		TotalBoost:        total,
		OutsideThresholds: outside,
		Decision:          decision,
		NextAction:        next,
		Health:            health,
		Reruns:            reruns,
		Issues:            issues,
	}
}

// #endregion review
