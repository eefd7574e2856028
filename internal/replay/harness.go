package replay

import (
	"context"
	"fmt"
	"math"

	"github.com/planflow/demand-planner/internal/actor"
	"github.com/planflow/demand-planner/internal/critic"
	"github.com/planflow/demand-planner/internal/driver"
)

// #region types

// Result captures the outcome of replaying one fixture case through the
// actor/critic pipeline.
type Result struct {
	Key     driver.ContextKey
	Passed  bool
	Reason  string
	Actual  FixtureExpected
	Review  critic.ReviewResult
	Outcome actor.Result
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalCases int
	Passes     int
	Failures   int
}

// #endregion types

// #region replay

// tolerance for comparing recorded floats against recomputed ones.
const tolerance = 1e-9

// Replay runs every fixture case through the actor and critic and
// compares the recomputed outcome against the recording. This is the
// primary regression net: if step bands, caps, or threshold routing
// change, the fixture catches the drift.
func Replay(ctx context.Context, act *actor.Actor, f *Fixture) []Result {
	th := f.Thresholds.ToThresholds()
	results := make([]Result, 0, len(f.Cases))

	for i := range f.Cases {
		c := &f.Cases[i]
		key := c.Key()

		res := act.Run(ctx, key)
		review := critic.Review(key, res.Values, res.Forecast.Boost, th)

		actual := FixtureExpected{
			Scenario:      res.Scenario,
			TotalBoost:    res.Forecast.TotalBoost,
			FinalForecast: res.Forecast.FinalForecast,
			Decision:      string(review.Decision),
		}

		r := Result{Key: key, Actual: actual, Review: review, Outcome: res, Passed: true}
		switch {
		case actual.Scenario != c.Expected.Scenario:
			r.Passed = false
			r.Reason = fmt.Sprintf("scenario %q, recorded %q", actual.Scenario, c.Expected.Scenario)
		case math.Abs(actual.TotalBoost-c.Expected.TotalBoost) > tolerance:
			r.Passed = false
			r.Reason = fmt.Sprintf("total boost %.4f, recorded %.4f", actual.TotalBoost, c.Expected.TotalBoost)
		case math.Abs(actual.FinalForecast-c.Expected.FinalForecast) > tolerance:
			r.Passed = false
			r.Reason = fmt.Sprintf("final forecast %.2f, recorded %.2f", actual.FinalForecast, c.Expected.FinalForecast)
		case actual.Decision != c.Expected.Decision:
			r.Passed = false
			r.Reason = fmt.Sprintf("decision %q, recorded %q", actual.Decision, c.Expected.Decision)
		}
		results = append(results, r)
	}
	return results
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []Result) Summary {
	s := Summary{TotalCases: len(results)}
	for _, r := range results {
		if r.Passed {
			s.Passes++
		} else {
			s.Failures++
		}
	}
	return s
}

// #endregion replay
