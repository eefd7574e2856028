// Package actor executes the computation step for one context: pull the
// real-time drivers, compute the boosted forecast, and narrate it.
package actor

import (
	"context"

	"github.com/planflow/demand-planner/internal/boost"
	"github.com/planflow/demand-planner/internal/driver"
	"github.com/planflow/demand-planner/internal/narrator"
)

// #region types

// Result carries everything one actor pass produced for a context.
type Result struct {
	Key             driver.ContextKey
	Scenario        string
	Values          driver.Values
	Notes           driver.Notes
	Forecast        boost.Forecast
	Narrative       string
	NarrativeSource string
}

// Actor computes boosted forecasts from a driver feed.
type Actor struct {
	provider driver.Provider
	reasoner *narrator.Reasoner
}

// #endregion types

// New builds an Actor. The reasoner may wrap a nil narrator, in which
// case explanations come from the template.
func New(provider driver.Provider, reasoner *narrator.Reasoner) *Actor {
	if reasoner == nil {
		reasoner = narrator.NewReasoner(nil)
	}
	return &Actor{provider: provider, reasoner: reasoner}
}

// Run executes one full computation pass. It never fails: an unknown
// context simply produces a zero forecast that the critic will flag.
func (a *Actor) Run(ctx context.Context, key driver.ContextKey) Result {
	key = key.Normalize()
	values := a.provider.Values(key)
	notes := a.provider.Notes(key)
	scenario := a.provider.Scenario(key)

	forecast := boost.Compose(key, values)

	text, source := a.reasoner.Narrate(ctx, narrator.Payload{
		Key:      key,
		Scenario: scenario,
		Forecast: forecast,
		Notes:    notes,
	})

	return Result{
		Key:             key,
		Scenario:        scenario,
		Values:          values,
		Notes:           notes,
		Forecast:        forecast,
		Narrative:       text,
		NarrativeSource: source,
	}
}
