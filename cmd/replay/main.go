package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/planflow/demand-planner/internal/actor"
	"github.com/planflow/demand-planner/internal/critic"
	"github.com/planflow/demand-planner/internal/driver"
	"github.com/planflow/demand-planner/internal/replay"
	"github.com/planflow/demand-planner/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to demand_planner.db (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/demand_planner.db")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}
	if f.Description != "" {
		fmt.Printf("fixture: %s\n", f.Description)
	}

	act := actor.New(driver.NewStaticProvider(), nil)
	results := replay.Replay(context.Background(), act, f)
	return printResults(results)
}

// #endregion fixture-mode

// #region db-mode

// runDBMode recomputes every stored planned record through the live
// actor/critic pipeline and compares the recorded critic decision and
// forecast against the recomputation.
func runDBMode(dbPath string) int {
	st, err := store.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer st.Close()

	recs, err := st.ListPlanned()
	if err != nil {
		fmt.Fprintf(os.Stderr, "list planned: %v\n", err)
		return 2
	}
	if len(recs) == 0 {
		fmt.Fprintln(os.Stderr, "no planned records found")
		return 2
	}

	f := &replay.Fixture{
		Thresholds: replay.FixtureBounds{
			Upper: critic.DefaultThresholds().Upper,
			Lower: critic.DefaultThresholds().Lower,
		},
	}
	provider := driver.NewStaticProvider()
	for _, rec := range recs {
		f.Cases = append(f.Cases, replay.FixtureCase{
			SKUID:      rec.Key.SKU,
			CustomerID: rec.Key.Customer,
			LocationID: rec.Key.Location,
			AsOfDate:   rec.Key.AsOfDate,
			Expected: replay.FixtureExpected{
				Scenario:      provider.Scenario(rec.Key),
				TotalBoost:    rec.TotalBoostFraction,
				FinalForecast: rec.FinalDemandForecast,
				Decision:      rec.CriticDecision,
			},
		})
	}

	act := actor.New(provider, nil)
	results := replay.Replay(context.Background(), act, f)
	return printResults(results)
}

// #endregion db-mode

// #region output

func printResults(results []replay.Result) int {
	fmt.Printf("%-60s %-6s %s\n", "CONTEXT", "OK", "REASON")
	for _, r := range results {
		ok := "pass"
		if !r.Passed {
			ok = "FAIL"
		}
		fmt.Printf("%-60s %-6s %s\n", r.Key, ok, r.Reason)
	}

	s := replay.Summarize(results)
	fmt.Printf("\n%d cases: %d passed, %d failed\n", s.TotalCases, s.Passes, s.Failures)
	if s.Failures > 0 {
		return 1
	}
	return 0
}

// #endregion output
