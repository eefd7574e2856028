package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/planflow/demand-planner/internal/audit"
	"github.com/planflow/demand-planner/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to demand_planner.db")
	mode := flag.String("mode", "planned", "planned | pending | approved")
	runID := flag.String("run", "", "dump the audit trail for one run id")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/demand_planner.db [--mode planned|pending|approved] [--run id] [--json]")
		os.Exit(2)
	}

	st, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if *runID != "" {
		if err := runAuditMode(st, *runID, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if err := runRecordMode(st, *mode, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region records

func runRecordMode(st *store.Store, mode string, jsonOut bool) error {
	switch mode {
	case "approved":
		recs, err := st.ListApproved()
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(recs)
		}
		printHeader("SKU", "CUSTOMER", "DATE", "BASELINE", "BOOST%", "FORECAST", "APPROVED AT")
		for _, r := range recs {
			fmt.Printf("%-28s %-8s %-10s %9.2f %8.2f %9.2f  %s\n",
				r.Key.SKU, r.Key.Customer, r.Key.AsOfDate,
				r.BaselineForecast, r.TotalBoostPercent, r.FinalDemandForecast,
				r.ApprovedAt.UTC().Format(time.RFC3339))
		}
		return nil
	case "planned", "pending":
		var recs []store.PlannedRecord
		var err error
		if mode == "pending" {
			recs, err = st.ListPending()
		} else {
			recs, err = st.ListPlanned()
		}
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(recs)
		}
		printHeader("SKU", "CUSTOMER", "DATE", "BASELINE", "BOOST%", "FORECAST", "DECISION", "STATUS")
		for _, r := range recs {
			fmt.Printf("%-28s %-8s %-10s %9.2f %8.2f %9.2f  %-24s %s\n",
				r.Key.SKU, r.Key.Customer, r.Key.AsOfDate,
				r.BaselineForecast, r.TotalBoostPercent, r.FinalDemandForecast,
				r.CriticDecision, r.ApprovalStatus)
		}
		return nil
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

// #endregion records

// #region audit

func runAuditMode(st *store.Store, runID string, jsonOut bool) error {
	entries, err := audit.ListByRun(st.DB(), runID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no audit entries for run %s", runID)
	}
	if jsonOut {
		return printJSON(entries)
	}
	printHeader("STEP", "SKU", "ATTEMPT", "DECISION", "AT")
	for _, e := range entries {
		fmt.Printf("%-16s %-28s %7d  %-24s %s\n",
			e.Step, e.SKU, e.Attempt, e.Decision,
			e.CreatedAt.UTC().Format(time.RFC3339))
	}
	return nil
}

// #endregion audit

// #region output

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printHeader(cols ...string) {
	fmt.Println(strings.Join(cols, "  "))
	fmt.Println(strings.Repeat("-", 100))
}

// #endregion output
