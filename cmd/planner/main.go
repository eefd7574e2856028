package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/planflow/demand-planner/internal/actor"
	"github.com/planflow/demand-planner/internal/catalog"
	"github.com/planflow/demand-planner/internal/config"
	"github.com/planflow/demand-planner/internal/driver"
	"github.com/planflow/demand-planner/internal/narrator"
	"github.com/planflow/demand-planner/internal/request"
	"github.com/planflow/demand-planner/internal/store"
	"github.com/planflow/demand-planner/internal/workflow"
)

// #region main
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	st, err := store.NewStore(cfg.Storage.DBPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	// The narrator service is optional: without it, explanations come
	// from the deterministic template.
	var llm narrator.Narrator
	narratorClient, err := narrator.NewClient(cfg.Narrator.Addr)
	if err != nil {
		log.Printf("narrator unavailable at %s, using template explanations: %v", cfg.Narrator.Addr, err)
	} else {
		defer narratorClient.Close()
		llm = narratorClient
	}

	provider := driver.NewStaticProvider()
	act := actor.New(provider, narrator.NewReasoner(llm))
	engine, err := workflow.NewEngine(provider, catalog.NewStatic(), st, act, request.NewParser(llm))
	if err != nil {
		log.Fatalf("failed to build engine: %v", err)
	}

	fmt.Println("Demand Planner ready.")
	fmt.Printf("  DB: %s | Narrator: %s\n", cfg.Storage.DBPath, cfg.Narrator.Addr)
	fmt.Println("Type a planning request, or 'pending', 'approve <sku> <date>', 'reject <sku> <date>', 'quit':")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		switch fields := strings.Fields(line); strings.ToLower(fields[0]) {
		case "pending":
			listPending(st)
		case "approve", "reject":
			resolve(engine, fields)
		default:
			runQuery(engine, cfg, line)
		}
	}
}

// #endregion main

// #region commands

func runQuery(engine *workflow.Engine, cfg *config.Config, query string) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Narrator.Timeout)
	defer cancel()

	res, err := engine.Run(ctx, workflow.RunParams{
		Query:      query,
		MaxRetries: cfg.Planner.MaxRetries,
	})
	if err != nil {
		log.Printf("run error: %v", err)
		return
	}

	if res.Params.NeedsClarification {
		fmt.Println("\nI need a bit more detail before this run is trustworthy:")
		for _, q := range res.Params.Questions {
			fmt.Printf("  - %s\n", q)
		}
		fmt.Println("(ran with defaults for now)")
	}

	for _, item := range res.Items {
		fmt.Printf("\n%s\n", item.Actor.Narrative)
		fmt.Printf("[%s] attempt=%d boost=%+.2f%% forecast=%.2f decision=%s status=%s\n",
			item.Key, item.Attempt,
			item.Actor.Forecast.TotalBoost*100, item.Actor.Forecast.FinalForecast,
			item.Review.Decision, item.ApprovalStatus)
	}
	for _, key := range res.PendingApprovals {
		fmt.Printf("\nPending approval: %s (resolve with 'approve %s %s')\n", key, key.SKU, key.AsOfDate)
	}
}

func listPending(st *store.Store) {
	recs, err := st.ListPending()
	if err != nil {
		log.Printf("list pending: %v", err)
		return
	}
	if len(recs) == 0 {
		fmt.Println("no pending approvals")
		return
	}
	for _, rec := range recs {
		fmt.Printf("%s boost=%+.2f%% forecast=%.2f\n",
			rec.Key, rec.TotalBoostPercent, rec.FinalDemandForecast)
	}
}

func resolve(engine *workflow.Engine, fields []string) {
	if len(fields) < 3 {
		fmt.Printf("usage: %s <sku> <as-of-date> [customer] [location]\n", fields[0])
		return
	}
	key := driver.ContextKey{
		SKU:      fields[1],
		AsOfDate: fields[2],
		Customer: "BLINKIT",
		Location: "BANGALORE",
	}
	if len(fields) > 3 {
		key.Customer = fields[3]
	}
	if len(fields) > 4 {
		key.Location = fields[4]
	}

	rec, err := engine.ApplyDecision(key, fields[0])
	if err != nil {
		log.Printf("apply decision: %v", err)
		return
	}
	fmt.Printf("%s -> %s (forecast %.2f)\n", rec.Key, rec.ApprovalStatus, rec.FinalDemandForecast)
}

// #endregion commands
