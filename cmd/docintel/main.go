// Command docintel runs a document through both analysis paths and
// prints the results as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"docintel/internal/common/config"
	"docintel/internal/common/logger"
	"docintel/internal/common/observability"
	"docintel/internal/engine"
	"docintel/internal/inference"
	"docintel/internal/orchestrator"
	"docintel/internal/textsource"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <document-file>\n", os.Args[0])
		os.Exit(2)
	}
	documentRef := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source := textsource.NewFileSource()
	text, err := source.GetText(ctx, documentRef)
	if err != nil {
		zapLog.Fatal("document read failed", zap.Error(err))
	}
	documentName := filepath.Base(documentRef)

	eng := engine.New(log)
	analysis := eng.Analyze(text)
	printJSON("analysis", analysis)

	if cfg.Inference.BaseURL == "" {
		zapLog.Info("no inference endpoint configured, skipping orchestration")
		return
	}

	client := inference.NewHTTPClient(cfg.Inference, log)
	orch, err := orchestrator.New(client, cfg.Orchestrator, log, orchestrator.WithObservability(obs))
	if err != nil {
		zapLog.Fatal("orchestrator setup failed", zap.Error(err))
	}

	result, err := orch.Orchestrate(ctx, text, documentName)
	if err != nil {
		zapLog.Fatal("orchestration failed", zap.Error(err))
	}
	printJSON("orchestration", result)
}

func printJSON(label string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal %s: %v\n", label, err)
		return
	}
	fmt.Printf("%s:\n%s\n", label, data)
}
