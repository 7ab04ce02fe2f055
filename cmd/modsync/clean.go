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

type CleanCommand struct {
	ConfigPath string
	DryRun     bool
}

func (*CleanCommand) Name() string     { return "clean" }
func (*CleanCommand) Synopsis() string { return "remove mods that are not in the collection" }
func (*CleanCommand) Usage() string {
	return `Usage: modsync clean [-c modsync.hcl] [-n]

	Removes downloaded mods whose project is no longer part of the
	collection, extra files of a project that has more than one and
	partial downloads. Files without a project id segment in their
	name, such as "iris-1.7.0.jar", are never touched.

Flags:
`
}

func (cmd *CleanCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.ConfigPath, "c", config.DefaultPath, "config path")
	fs.BoolVar(&cmd.DryRun, "n", false, "print files without removing them")
}

func (cmd *CleanCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	c, ok := loadConfig(cmd.ConfigPath)
	if !ok {
		return subcommands.ExitFailure
	}
	files, err := openMods(c.ModPath)
	if err != nil {
		log.WithError(err).Errorf("open mods dir %q", c.ModPath)
		return subcommands.ExitFailure
	}

	s := syncer.Syncer{
		Remote: modrinth.NewClient(c.API),
		Files:  files,
		DryRun: cmd.DryRun,
		Log:    log.Log,
	}
	removed, err := s.Prune(ctx, c.CollectionID)
	if err != nil {
		log.WithError(err).Errorf("clean %q", c.ModPath)
		return subcommands.ExitFailure
	}
	log.WithField("removed", len(removed)).Info("done")
	return subcommands.ExitSuccess
}
