package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jmcgarr/genrss/app/cache"
	"github.com/jmcgarr/genrss/app/catalog"
	"github.com/jmcgarr/genrss/app/cfg"
	"github.com/jmcgarr/genrss/app/feed"
	"github.com/jmcgarr/genrss/app/history"
)

func main() {
	c, err := cfg.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if c == nil {
		// Help was shown, exit gracefully
		return
	}

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(c); err != nil {
		slog.Error("Run failed", "error", err)
		os.Exit(1)
	}
}

func run(c *cfg.Cfg) error {
	now := time.Now().UTC()
	windowStart := now.AddDate(0, 0, -c.Days)

	slog.Debug("Configuration",
		"history", c.HistoryFile,
		"output", c.OutputFile,
		"days", c.Days,
		"media_types", c.MediaKinds,
		"alt_dirs", c.AltDirs,
		"mp3", c.ForceMP3,
		"enrich", c.Enrich,
		"version", c.Version)

	historyFile, err := os.Open(c.HistoryFile)
	if err != nil {
		return fmt.Errorf("failed to open download history: %w", err)
	}
	defer historyFile.Close()

	// Enrichment is optional; without it every item carries locally
	// derived metadata only.
	var enricher *catalog.Enricher
	var store *cache.Store
	if c.Enrich {
		store, err = cache.Open(c.CacheDir)
		if err != nil {
			return err
		}
		defer store.Close()
		enricher = catalog.NewEnricher(catalog.NewClient(c.CatalogURL, "genrss/"+c.Version), store)
	}

	resolver := history.NewResolver(c.AltDirs, c.ForceMP3)
	builder := feed.NewBuilder(c.DownloadsURL, enricher)
	assembler := feed.NewAssembler(feed.Channel{
		Title:       c.Title,
		Description: c.Description,
		Link:        c.PageURL,
		ImageURL:    c.ImageURL,
		TTL:         c.TTL,
		WebMaster:   c.WebMaster,
	})

	ctx := context.Background()
	scanned, included := 0, 0

	records := history.NewReconstructor(historyFile)
	for records.Scan() {
		scanned++

		rec, err := history.ParseRecord(records.Text())
		if err != nil {
			slog.Warn("Skipping malformed record", "error", err)
			continue
		}

		if !history.ShouldInclude(rec, windowStart, c.MediaKinds) {
			slog.Debug("Record excluded by filter", "programme", rec.ProgramID, "kind", rec.Kind, "added", rec.AddedAt)
			continue
		}

		resolved, err := resolver.Resolve(rec)
		if err != nil {
			slog.Warn("Media file not found in download location or alternatives, skipping",
				"programme", rec.ProgramID, "path", rec.FilePath)
			continue
		}

		item, seriesKey, meta := builder.Build(ctx, rec, resolved)
		assembler.Add(seriesKey, item, meta)
		included++
	}
	if err := records.Err(); err != nil {
		return fmt.Errorf("failed to read download history: %w", err)
	}

	written, err := assembler.WriteAll(c.OutputFile, now)
	if err != nil {
		return err
	}

	slog.Info("RSS feeds written",
		"records", scanned,
		"items", included,
		"series", len(assembler.SeriesKeys()),
		"files", len(written),
		"output", c.OutputFile)

	if enricher != nil {
		if live := enricher.LiveIDs(); len(live) > 0 {
			pruned, err := store.Prune(live)
			if err != nil {
				slog.Warn("Cache pruning failed", "error", err)
			} else if pruned > 0 {
				slog.Debug("Pruned stale cache entries", "count", pruned, "live", len(live))
			}
		}
	}

	return nil
}
