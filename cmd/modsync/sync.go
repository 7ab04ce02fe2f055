package main

import (
	"context"
	"flag"

	"github.com/apex/log"
	"github.com/google/subcommands"

	"github.com/tie/modsync/config"
	"github.com/tie/modsync/modrinth"
	"github.com/tie/modsync/syncer"
)

type SyncCommand struct {
	ConfigPath string
	Update     bool
	Workers    int
	DryRun     bool
}

func (*SyncCommand) Name() string     { return "sync" }
func (*SyncCommand) Synopsis() string { return "download missing and outdated mods" }
func (*SyncCommand) Usage() string {
	return `Usage: modsync sync [-c modsync.hcl] [-update] [-workers n] [-n]

	Downloads the primary file of every project in the configured
	collection that matches the configured game version and loader.
	Downloaded files are named <name>.<project id>.<ext> so that they
	can be recognized on subsequent runs.

	Installed mods are skipped unless -update is given, in which case
	they are replaced by the latest matching version and the previous
	file is removed.

	If modsync.hcl does not exist, config.json is used instead.
	MODRINTH_TOKEN from the environment or a .env file is used to
	access private collections.

Flags:
`
}

func (cmd *SyncCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.ConfigPath, "c", config.DefaultPath, "config path")
	fs.BoolVar(&cmd.Update, "update", false, "replace installed mods with the latest version")
	fs.BoolVar(&cmd.Update, "upgrade", false, "alias for -update")
	fs.IntVar(&cmd.Workers, "workers", 0, "number of mods processed in parallel (default from config or 5)")
	fs.BoolVar(&cmd.DryRun, "n", false, "print actions without downloading or removing files")
}

func (cmd *SyncCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if fs.NArg() > 0 {
		fs.Usage()
		return subcommands.ExitUsageError
	}

	c, ok := loadConfig(cmd.ConfigPath)
	if !ok {
		return subcommands.ExitFailure
	}

	workers := c.Workers
	if cmd.Workers > 0 {
		workers = cmd.Workers
	}

	files, err := openMods(c.ModPath)
	if err != nil {
		log.WithError(err).Errorf("open mods dir %q", c.ModPath)
		return subcommands.ExitFailure
	}

	s := syncer.Syncer{
		Remote:  modrinth.NewClient(c.API),
		Files:   files,
		Target:  c.Target,
		Workers: workers,
		Update:  cmd.Update,
		DryRun:  cmd.DryRun,
		Log:     log.Log,
	}
	results, err := s.Run(ctx, c.CollectionID)
	if err != nil {
		log.WithError(err).Errorf("collection id=%s not found", c.CollectionID)
		return subcommands.ExitFailure
	}

	sum := syncer.Summarize(results)
	log.WithFields(log.Fields{
		"installed": sum.Installed,
		"updated":   sum.Updated,
		"skipped":   sum.Skipped,
		"failed":    sum.Failed,
	}).Info("done")
	return subcommands.ExitSuccess
}
