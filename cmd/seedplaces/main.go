// Package main loads a CSV file of places into the Elasticsearch places index.
//
// Usage:
//
//	seedplaces [-tab] places.csv
//
// The Elasticsearch URL and index come from ELASTICSEARCH_URL and PLACES_INDEX.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ghfreaks/eventlocator/internal/config"
	"github.com/ghfreaks/eventlocator/internal/places"
)

func main() {
	tab := flag.Bool("tab", false, "fields are tab-separated")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(*tab, *timeout, flag.Args(), logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(tab bool, timeout time.Duration, args []string, logger *slog.Logger) error {
	if len(args) != 1 {
		return errors.New("usage: seedplaces [-tab] <file>")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.PlacesEnabled() {
		return errors.New("ELASTICSEARCH_URL is not set")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	comma := ','
	if tab {
		comma = '\t'
	}
	list, err := places.ReadCSV(f, comma)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := places.NewElasticClient(cfg.ElasticsearchURL)
	if err != nil {
		return err
	}
	// Indexing does not depend on the search region.
	searcher := places.NewElasticSearcher(client, cfg.PlacesIndex, places.DefaultRegion(), logger, nil)

	if err := searcher.EnsureIndex(ctx); err != nil {
		return err
	}
	if err := searcher.IndexPlaces(ctx, list); err != nil {
		return err
	}

	logger.Info("places indexed", "index", cfg.PlacesIndex, "count", len(list))
	return nil
}
