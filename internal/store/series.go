package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/snapshot"
)

// decodeConcurrency bounds how many snapshot documents are decoded at
// once during a series load.
const decodeConcurrency = 8

// Series is a snapshot history ordered by timestamp.
type Series []*snapshot.Snapshot

// At returns the snapshot recorded at the exact timestamp.
func (s Series) At(ts time.Time) (*snapshot.Snapshot, bool) {
	for _, snap := range s {
		if snap.Timestamp.Equal(ts) {
			return snap, true
		}
	}
	return nil, false
}

// SeriesPoint is one observation of a check across the history.
type SeriesPoint struct {
	// Timestamp is the snapshot's run time.
	Timestamp time.Time
	// Result is the check's stored result in that snapshot.
	Result check.Result
}

// CheckSeries is a timestamp-ordered list of one check's results.
type CheckSeries []SeriesPoint

// LoadSeries reads every snapshot document of the project whose
// timestamp falls inside the inclusive [from, to] window. A nil bound
// is unbounded; from after to yields an empty series. Documents are
// decoded concurrently, and one unreadable document fails the whole
// load.
func (w *Workspace) LoadSeries(ctx context.Context, projectID string, from, to *time.Time) (Series, error) {
	if from != nil && to != nil && from.After(*to) {
		return Series{}, nil
	}
	if _, err := w.Project(ctx, projectID); err != nil {
		return nil, err
	}

	dir := w.snapshotsDir(projectID)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return Series{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot documents: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	// Pre-allocate to keep document order; each goroutine writes its
	// own slot only.
	decoded := make([]*snapshot.Snapshot, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(decodeConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()

			snap, err := snapshot.Decode(f)
			if err != nil {
				return fmt.Errorf("document %s: %w", path, err)
			}
			decoded[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load series of %s: %w", projectID, err)
	}

	series := make(Series, 0, len(decoded))
	for _, snap := range decoded {
		ts := snap.Timestamp
		if from != nil && ts.Before(*from) {
			continue
		}
		if to != nil && ts.After(*to) {
			continue
		}
		series = append(series, snap)
	}
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})

	w.logger.Info("loaded series",
		"project_id", projectID,
		"documents", len(paths),
		"retained", len(series),
	)
	return series, nil
}

// LoadCheckSeries collects per-check result series across the
// project's history, keyed by identity fingerprint.
//
// With an empty identity filter every first-level unit of every
// snapshot contributes under its own fingerprint. With identities
// given, each snapshot is restored into a report first and the results
// are read back through it, so a stored result is only used where the
// check rebuilds cleanly; snapshots not containing a wanted identity
// contribute nothing.
func (w *Workspace) LoadCheckSeries(ctx context.Context, projectID string, from, to *time.Time, idents []check.Identity) (map[string]CheckSeries, error) {
	series, err := w.LoadSeries(ctx, projectID, from, to)
	if err != nil {
		return nil, err
	}

	out := make(map[string]CheckSeries)
	if len(idents) == 0 {
		for _, snap := range series {
			seen := make(map[string]bool)
			for _, unit := range snap.FirstLevelUnits() {
				fp := unit.Identity().Fingerprint()
				if seen[fp] {
					continue
				}
				seen[fp] = true
				out[fp] = append(out[fp], SeriesPoint{
					Timestamp: snap.Timestamp,
					Result:    unit.Result,
				})
			}
		}
		return out, nil
	}

	for _, snap := range series {
		r, err := snapshot.Restore(snap, w.types, w.renderers)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", snap.ID, err)
		}
		units := r.Units()
		for _, ident := range idents {
			for pos, id := range units {
				if !id.Equal(ident) {
					continue
				}
				result, err := r.UnitResult(pos)
				if err != nil {
					return nil, fmt.Errorf("snapshot %s: %w", snap.ID, err)
				}
				out[ident.Fingerprint()] = append(out[ident.Fingerprint()], SeriesPoint{
					Timestamp: snap.Timestamp,
					Result:    result,
				})
				break
			}
		}
	}
	return out, nil
}
