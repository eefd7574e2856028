package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/planflow/demand-planner/internal/actor"
	"github.com/planflow/demand-planner/internal/api"
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

	srv := api.NewServer(cfg.Server.HTTPAddr, engine, st)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("server error: %v", err)
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// #endregion main
