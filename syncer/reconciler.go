package syncer

import (
	"context"

	"github.com/apex/log"

	"github.com/tie/modsync/fetcher"
	"github.com/tie/modsync/inventory"
	"github.com/tie/modsync/modsync"
)

// Remote is the subset of the Modrinth API used for synchronization.
type Remote interface {
	Collection(ctx context.Context, id string) (*modsync.Collection, error)
	Versions(ctx context.Context, projectID string) ([]modsync.Version, error)
	fetcher.Downloader
}

// Reconciler decides and applies the action for a single project.
// It is safe for concurrent use as long as Index is not modified.
type Reconciler struct {
	Remote  Remote
	Fetcher *fetcher.Fetcher
	Index   inventory.Index
	Target  modsync.Target

	// Update replaces installed mods with the latest matching version.
	// Without it installed mods are left alone and not even looked up.
	Update bool
	// DryRun reports outcomes without touching the filesystem.
	DryRun bool

	Log log.Interface
}

func (r *Reconciler) Reconcile(ctx context.Context, id string) Result {
	l := r.Log.WithField("mod", id)
	res := Result{ModID: id}

	existing, installed := r.Index.Lookup(id)
	if installed && !r.Update {
		l.WithField("file", existing.Filename).Info("already exists, skipping")
		return skip(res, modsync.ErrAlreadyInstalled)
	}

	versions, err := r.Remote.Versions(ctx, id)
	if err != nil {
		l.WithError(err).Error("fetch versions")
		return fail(res, err)
	}
	v, ok := modsync.SelectVersion(versions, r.Target)
	if !ok {
		l.WithFields(log.Fields{
			"game_version": r.Target.GameVersion,
			"loader":       r.Target.Loader,
		}).Warn("no version found")
		return skip(res, modsync.ErrNoVersion)
	}
	file, ok := modsync.PrimaryFile(v)
	if !ok {
		l.WithField("version", v.VersionNumber).Warn("no file to download")
		return skip(res, modsync.ErrNoPrimaryFile)
	}
	name, err := modsync.ManagedName(file.Filename, id)
	if err != nil {
		l.WithError(err).Error("derive file name")
		return fail(res, err)
	}
	res.Filename = name

	if installed && existing.Filename == name {
		l.WithField("file", name).Info("latest version already exists")
		return skip(res, modsync.ErrUpToDate)
	}

	res.Outcome = OutcomeInstall
	msg := "downloading"
	if installed {
		res.Outcome = OutcomeUpdate
		res.Replaced = existing.Filename
		msg = "updating"
	}
	l = l.WithFields(log.Fields{
		"file":          file.Filename,
		"loaders":       v.Loaders,
		"game_versions": v.GameVersions,
	})
	if r.DryRun {
		l.Info(msg + " (dry run)")
		return res
	}
	l.Info(msg)
	if err := r.Fetcher.Fetch(ctx, file.URL, name); err != nil {
		l.WithError(err).Error("download")
		return fail(res, err)
	}

	// Only remove the previous version once the new one is in place.
	if installed {
		l.WithField("previous", existing.Filename).Info("removing previous version")
		if err := r.Fetcher.Remove(existing.Filename); err != nil {
			l.WithError(err).Error("remove previous version")
			return fail(res, err)
		}
	}
	return res
}

func skip(res Result, reason error) Result {
	res.Outcome = OutcomeSkip
	res.Err = reason
	return res
}

func fail(res Result, err error) Result {
	res.Outcome = OutcomeFailed
	res.Err = err
	return res
}
