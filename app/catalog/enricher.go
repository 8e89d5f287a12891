package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// Store is the slice of the metadata cache the enricher needs.
type Store interface {
	Get(programID string) (string, bool, error)
	Put(programID, raw string) error
}

// Enricher resolves programme metadata through the cache, fetching from
// the catalog on a miss. Every programme ID it is asked about is
// recorded as live so the cache can be pruned down to the current run's
// working set afterwards.
type Enricher struct {
	client *Client
	store  Store
	live   map[string]struct{}
}

func NewEnricher(client *Client, store Store) *Enricher {
	return &Enricher{
		client: client,
		store:  store,
		live:   make(map[string]struct{}),
	}
}

// Enrich returns the catalog metadata for a programme ID. Any failure
// (network, cache, malformed payload) is returned as an error for the
// caller to log and fall back on; it never aborts the run.
func (e *Enricher) Enrich(ctx context.Context, programID string) (*Programme, error) {
	// Live regardless of the lookup outcome
	e.live[programID] = struct{}{}

	raw, ok, err := e.store.Get(programID)
	if err != nil {
		return nil, fmt.Errorf("cache lookup failed for %s: %w", programID, err)
	}
	if ok {
		slog.Debug("Cache hit", "programme", programID)
		return ParseProgramme([]byte(raw))
	}

	body, err := e.client.Fetch(ctx, programID)
	if err != nil {
		return nil, err
	}

	// Persist the raw response even if it later fails to parse; a
	// rerun then skips the network round trip.
	if err := e.store.Put(programID, string(body)); err != nil {
		slog.Debug("Failed to cache catalog response", "programme", programID, "error", err)
	}

	return ParseProgramme(body)
}

// LiveIDs returns every programme ID touched so far, sorted.
func (e *Enricher) LiveIDs() []string {
	ids := make([]string, 0, len(e.live))
	for id := range e.live {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
