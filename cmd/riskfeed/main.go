// Command riskfeed computes geopolitical/aviation risk analyses for the
// configured regions and hands them to the configured publishers, printing
// each analysis as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/skywatch-ops/riskfeed/internal/analysis"
	"github.com/skywatch-ops/riskfeed/internal/cache"
	"github.com/skywatch-ops/riskfeed/internal/config"
	"github.com/skywatch-ops/riskfeed/internal/logger"
	"github.com/skywatch-ops/riskfeed/pkg/httpclient"
	"github.com/skywatch-ops/riskfeed/pkg/publishers"
	"github.com/skywatch-ops/riskfeed/pkg/sources"
)

func main() {
	regionsFlag := flag.String("regions", "", "comma-separated region names (default: all configured regions)")
	flag.Parse()

	if err := run(*regionsFlag); err != nil {
		fmt.Fprintf(os.Stderr, "riskfeed: %v\n", err)
		os.Exit(1)
	}
}

func run(regionsFlag string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(settings.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	regionTable, err := config.LoadRegions(settings.RegionsFile)
	if err != nil {
		return err
	}

	srcCfgs := sources.DefaultSources()
	if settings.SourcesFile != "" {
		if srcCfgs, err = sources.LoadRegistryFile(settings.SourcesFile); err != nil {
			return err
		}
	}

	client := httpclient.NewRestyClient(settings.HTTPTimeout)
	registry, err := sources.BuildAll(srcCfgs, client, regionTable.Keywords, os.Getenv, log)
	if err != nil {
		return err
	}

	store := cache.Store(cache.NewMemoryStore(settings.CacheTTL))
	if settings.CachePath != "" {
		boltStore, closeStore, err := cache.NewBoltStore(settings.CachePath, settings.CacheTTL)
		if err != nil {
			return err
		}
		defer closeStore() //nolint:errcheck // best-effort close on exit
		store = boltStore
	}

	service := analysis.NewService(analysis.NewOrchestrator(registry, log), store, log)

	var pubs []publishers.Publisher
	if settings.PublishersFile != "" {
		sinks, err := publishers.LoadSinks(settings.PublishersFile)
		if err != nil {
			return err
		}
		if pubs, err = publishers.BuildAll(ctx, sinks.Enabled(), log); err != nil {
			return err
		}
	}

	regions := regionTable.Names()
	if regionsFlag = strings.TrimSpace(regionsFlag); regionsFlag != "" {
		regions = nil
		for _, r := range strings.Split(regionsFlag, ",") {
			if r = strings.TrimSpace(r); r != "" {
				regions = append(regions, r)
			}
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, region := range regions {
		if ctx.Err() != nil {
			break
		}

		result := service.RegionRiskAnalysis(ctx, region)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encode analysis for %s: %w", region, err)
		}

		if len(pubs) > 0 {
			delivered := publishers.PublishAll(ctx, pubs, publishers.NewEvent(result), log)
			log.InfoObj("analysis published", "analysis_published", map[string]any{
				"region":     region,
				"delivered":  delivered,
				"publishers": len(pubs),
			})
		}
	}

	return nil
}
