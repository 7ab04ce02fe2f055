// Package syncer reconciles a local mods directory with a collection.
package syncer

import (
	"context"
	"fmt"
	"sort"

	"github.com/apex/log"
	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/tie/modsync/fetcher"
	"github.com/tie/modsync/inventory"
	"github.com/tie/modsync/modsync"
)

const DefaultWorkers = 5

// Syncer runs the reconciliation for every project in a collection.
type Syncer struct {
	Remote Remote
	Files  billy.Filesystem
	Target modsync.Target

	// Workers bounds the number of projects processed at once.
	// Default: DefaultWorkers.
	Workers int

	Update bool
	DryRun bool

	// Log defaults to the apex/log package logger.
	Log log.Interface
}

func (s *Syncer) logger() log.Interface {
	if s.Log == nil {
		return log.Log
	}
	return s.Log
}

func (s *Syncer) workers() int {
	if s.Workers <= 0 {
		return DefaultWorkers
	}
	return s.Workers
}

func (s *Syncer) collection(ctx context.Context, id string) (*modsync.Collection, error) {
	col, err := s.Remote.Collection(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch collection %q", id)
	}
	return col, nil
}

// Run fetches the collection, scans the mods directory and reconciles
// every project. Failures of individual projects are logged and
// reported in the results; only a failure to fetch the collection or
// scan the directory is returned as an error. Results are in
// collection order.
func (s *Syncer) Run(ctx context.Context, collectionID string) ([]Result, error) {
	l := s.logger()
	col, err := s.collection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	projects := dedupe(col.Projects, l)
	l.WithField("mods", projects).Info("mods in collection")

	idx, err := inventory.Scan(s.Files, l)
	if err != nil {
		return nil, err
	}

	r := &Reconciler{
		Remote: s.Remote,
		Fetcher: &fetcher.Fetcher{
			Files:  s.Files,
			Client: s.Remote,
		},
		Index:  idx,
		Target: s.Target,
		Update: s.Update,
		DryRun: s.DryRun,
		Log:    l,
	}

	results := make([]Result, len(projects))
	var g errgroup.Group
	g.SetLimit(s.workers())
	for i, id := range projects {
		i, id := i, id
		g.Go(func() error {
			results[i] = reconcile(ctx, r, id)
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

// reconcile isolates a single task so that a panic in one project
// does not take down the pool.
func reconcile(ctx context.Context, r *Reconciler, id string) (res Result) {
	defer func() {
		if v := recover(); v != nil {
			err := fmt.Errorf("panic: %v", v)
			r.Log.WithField("mod", id).WithError(err).Error("reconcile")
			res = Result{ModID: id, Outcome: OutcomeFailed, Err: err}
		}
	}()
	if err := ctx.Err(); err != nil {
		return Result{ModID: id, Outcome: OutcomeFailed, Err: err}
	}
	return r.Reconcile(ctx, id)
}

// Prune removes managed files whose project is not part of the
// collection, duplicate files of a project and partial downloads.
// It returns the removed file names in lexical order.
func (s *Syncer) Prune(ctx context.Context, collectionID string) ([]string, error) {
	l := s.logger()
	col, err := s.collection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	inv, err := inventory.Read(s.Files, l)
	if err != nil {
		return nil, err
	}
	keep := make(map[string]bool, len(col.Projects))
	for _, id := range col.Projects {
		keep[id] = true
	}

	stale := make(map[string]string)
	for _, m := range inv.Index.Mods() {
		if !keep[m.ID] {
			stale[m.Filename] = "not in collection"
		}
	}
	for _, m := range inv.Duplicates {
		stale[m.Filename] = "duplicate"
	}
	for _, name := range inv.Partial {
		stale[name] = "partial download"
	}
	names := make([]string, 0, len(stale))
	for name := range stale {
		names = append(names, name)
	}
	sort.Strings(names)

	f := &fetcher.Fetcher{Files: s.Files}
	var removed []string
	for _, name := range names {
		fl := l.WithFields(log.Fields{"file": name, "reason": stale[name]})
		if s.DryRun {
			fl.Info("would remove")
			removed = append(removed, name)
			continue
		}
		fl.Info("removing")
		if err := f.Remove(name); err != nil {
			return removed, err
		}
		removed = append(removed, name)
	}
	return removed, nil
}

func dedupe(ids []string, l log.Interface) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			l.WithField("mod", id).Warn("duplicate project in collection")
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
