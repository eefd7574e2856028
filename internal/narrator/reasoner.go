package narrator

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/planflow/demand-planner/internal/boost"
	"github.com/planflow/demand-planner/internal/driver"
)

// #region payload

// Payload is the structured reasoning context handed to the narration
// service: what was computed, under which scenario, with which notes.
type Payload struct {
	Key      driver.ContextKey `json:"context"`
	Scenario string            `json:"scenario,omitempty"`
	Forecast boost.Forecast    `json:"forecast"`
	Notes    driver.Notes      `json:"driver_notes,omitempty"`
}

const systemInstructions = "You are a demand planning assistant. Explain the computed " +
	"demand boost and final forecast to a consumer goods planner in a short " +
	"paragraph. Mention the dominant tailwinds and headwinds by category and " +
	"keep the numbers exactly as given."

// Sources reported alongside narration text.
const (
	SourceLLM      = "llm"
	SourceTemplate = "template"
)

// #endregion payload

// #region reasoner

// Reasoner prefers the narration service and degrades to the template
// whenever the service is absent or fails.
type Reasoner struct {
	llm Narrator
}

// NewReasoner wraps a Narrator; llm may be nil for template-only mode.
func NewReasoner(llm Narrator) *Reasoner {
	return &Reasoner{llm: llm}
}

// Narrate produces the explanation text and reports its source.
func (r *Reasoner) Narrate(ctx context.Context, p Payload) (text string, source string) {
	if r.llm != nil {
		if raw, err := json.Marshal(p); err == nil {
			if out, err := r.llm.Generate(ctx, systemInstructions, string(raw)); err == nil && strings.TrimSpace(out) != "" {
				return strings.TrimSpace(out), SourceLLM
			}
		}
	}
	return Template(p), SourceTemplate
}

// #endregion reasoner

// #region template

// Template renders a deterministic explanation. Driver notes are capped
// at six so the text stays readable in the REPL.
func Template(p Payload) string {
	var b strings.Builder

	scenario := p.Scenario
	if scenario == "" {
		scenario = "UNLABELED"
	}
	fmt.Fprintf(&b, "%s @ %s on %s for %s (%s scenario): ",
		p.Key.SKU, p.Key.Customer, p.Key.AsOfDate, p.Key.Location, scenario)
	fmt.Fprintf(&b, "baseline %.2f units with a total demand boost of %+.2f%% gives a final forecast of %.2f units.",
		p.Forecast.Baseline, boost.PercentOf(p.Forecast.TotalBoost), p.Forecast.FinalForecast)

	var pos, neg []string
	for _, cat := range boost.Categories() {
		res, ok := p.Forecast.Boost.Breakdown[cat]
		if !ok || res.BoostFraction == 0 {
			continue
		}
		part := fmt.Sprintf("%s %+.0f%%", cat.DisplayName(), boost.PercentOf(res.BoostFraction))
		if res.BoostFraction > 0 {
			pos = append(pos, part)
		} else {
			neg = append(neg, part)
		}
	}
	if len(pos) > 0 {
		fmt.Fprintf(&b, " Tailwinds: %s.", strings.Join(pos, "; "))
	}
	if len(neg) > 0 {
		fmt.Fprintf(&b, " Headwinds: %s.", strings.Join(neg, "; "))
	}

	if len(p.Notes) > 0 {
		names := make([]string, 0, len(p.Notes))
		for name := range p.Notes {
			names = append(names, name)
		}
		sort.Strings(names)
		if len(names) > 6 {
			names = names[:6]
		}
		b.WriteString(" Analyst notes:")
		for _, name := range names {
			fmt.Fprintf(&b, " [%s] %s", name, p.Notes[name])
		}
	}

	return b.String()
}

// #endregion template
