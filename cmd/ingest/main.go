package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hallenstats/handball-ingest/internal/app"
	"github.com/hallenstats/handball-ingest/internal/config"
	"github.com/hallenstats/handball-ingest/internal/observability"
	"github.com/hallenstats/handball-ingest/internal/platform/logging"
)

func main() {
	idFile := flag.String("file", "", "path to a file with one match id per line")
	discover := flag.String("discover", "", "comma separated schedule page urls to scrape for match ids")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("shutdown tracing", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = stopProfiler()
	}()

	pipeline, err := app.NewPipeline(ctx, cfg, logger)
	if err != nil {
		logger.Error("build pipeline", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = pipeline.Close()
	}()

	matchIDs, err := collectMatchIDs(ctx, pipeline, cfg, *idFile, *discover, flag.Args())
	if err != nil {
		logger.Error("collect match ids", "error", err)
		os.Exit(1)
	}
	if len(matchIDs) == 0 {
		logger.Warn("no match ids to ingest")
		fmt.Println("total=0 success=0 errors=0")
		return
	}

	result, err := pipeline.Ingest.Run(ctx, matchIDs, cfg.IngestBatchSize)
	if err != nil {
		logger.Error("ingest run failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("total=%d success=%d errors=%d\n", result.Total, result.Success, result.Error)
	if result.Error > 0 && result.Success == 0 {
		os.Exit(1)
	}
}

// collectMatchIDs merges ids from positional arguments, an id file and
// scraped schedule pages, preserving first-seen order.
func collectMatchIDs(ctx context.Context, pipeline *app.Pipeline, cfg config.Config, idFile, discover string, args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(id string) {
		id = strings.TrimSpace(id)
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	for _, id := range args {
		add(id)
	}

	if idFile != "" {
		file, err := os.Open(idFile)
		if err != nil {
			return nil, fmt.Errorf("open id file: %w", err)
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			add(line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read id file: %w", err)
		}
	}

	if discover != "" {
		var pages []string
		for _, page := range strings.Split(discover, ",") {
			if page = strings.TrimSpace(page); page != "" {
				pages = append(pages, page)
			}
		}
		ids, err := pipeline.Client.DiscoverMatchIDs(ctx, pages, cfg.DiscoveryWorkers)
		if err != nil {
			return nil, fmt.Errorf("discover match ids: %w", err)
		}
		for _, id := range ids {
			add(id)
		}
	}

	return out, nil
}
