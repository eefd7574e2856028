package main

import (
	"context"
	"encoding/json"
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
	dbPath := flag.String("db", "", "export recorded planned records from this db (default: seeded dataset)")
	outPath := flag.String("out", "", "output fixture JSON path")
	desc := flag.String("desc", "Recorded scenario outcomes for the seeded driver dataset.", "fixture description")
	flag.Parse()

	if *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --out path/to/fixture.json [--db path/to/db]")
		os.Exit(2)
	}

	if err := run(*dbPath, *outPath, *desc); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region export

func run(dbPath, outPath, desc string) error {
	th := critic.DefaultThresholds()
	f := &replay.Fixture{
		Description: desc,
		Thresholds:  replay.FixtureBounds{Upper: th.Upper, Lower: th.Lower},
	}

	keys, err := contextKeys(dbPath)
	if err != nil {
		return err
	}

	provider := driver.NewStaticProvider()
	act := actor.New(provider, nil)
	ctx := context.Background()

	// Recompute every context through the live pipeline so the fixture
	// records current behavior, then freeze it as the regression baseline.
	for _, key := range keys {
		res := act.Run(ctx, key)
		review := critic.Review(key, res.Values, res.Forecast.Boost, th)
		f.Cases = append(f.Cases, replay.FixtureCase{
			SKUID:      key.SKU,
			CustomerID: key.Customer,
			LocationID: key.Location,
			AsOfDate:   key.AsOfDate,
			Expected: replay.FixtureExpected{
				Scenario:      res.Scenario,
				TotalBoost:    res.Forecast.TotalBoost,
				FinalForecast: res.Forecast.FinalForecast,
				Decision:      string(review.Decision),
			},
		})
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	fmt.Printf("wrote %d cases to %s\n", len(f.Cases), outPath)
	return nil
}

// contextKeys picks the contexts to export: every stored planned record
// when a db is given, otherwise the full seeded dataset.
func contextKeys(dbPath string) ([]driver.ContextKey, error) {
	if dbPath == "" {
		return driver.NewStaticProvider().Keys(), nil
	}

	st, err := store.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	defer st.Close()

	recs, err := st.ListPlanned()
	if err != nil {
		return nil, fmt.Errorf("list planned: %w", err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("no planned records in %s", dbPath)
	}
	keys := make([]driver.ContextKey, 0, len(recs))
	for _, rec := range recs {
		keys = append(keys, rec.Key)
	}
	return keys, nil
}

// #endregion export
