package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/apex/log"
	"github.com/google/subcommands"

	"github.com/tie/internal/renameio"

	"github.com/tie/modsync/config"
	"github.com/tie/modsync/config/hclspec"
)

type InitCommand struct {
	OutputPath string
	FromPath   string
	Force      bool

	Spec hclspec.Config
}

func (*InitCommand) Name() string     { return "init" }
func (*InitCommand) Synopsis() string { return "create a config file" }
func (*InitCommand) Usage() string {
	return `Usage: modsync init [-o modsync.hcl] [-from config.json] -collection id -version v -loader l [-dir mods]

	Creates a new config file. Values can be given with flags or
	migrated from an existing config file with -from; flags override
	migrated values.

Flags:
`
}

func (cmd *InitCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.OutputPath, "o", config.DefaultPath, "output config path")
	fs.StringVar(&cmd.FromPath, "from", "", "existing config to migrate")
	fs.BoolVar(&cmd.Force, "f", false, "overwrite existing config")
	fs.StringVar(&cmd.Spec.CollectionID, "collection", "", "collection id")
	fs.StringVar(&cmd.Spec.GameVersion, "version", "", "game version, e.g. 1.20.4")
	fs.StringVar(&cmd.Spec.Loader, "loader", "", "mod loader, e.g. fabric")
	fs.StringVar(&cmd.Spec.ModPath, "dir", "", "mods directory")
}

func (cmd *InitCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	var spec hclspec.Config
	if cmd.FromPath != "" {
		var ok bool
		spec, ok = parseConfig(cmd.FromPath)
		if !ok {
			return subcommands.ExitFailure
		}
	}
	spec = mergeSpec(spec, cmd.Spec)

	if _, err := config.New(spec); err != nil {
		log.WithError(err).Error("init")
		fs.Usage()
		return subcommands.ExitUsageError
	}

	fpath := cmd.OutputPath
	if !cmd.Force {
		_, err := os.Stat(fpath)
		if err == nil {
			log.Errorf("%q already exists, use -f to overwrite", fpath)
			return subcommands.ExitFailure
		}
		if !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).Errorf("stat %q", fpath)
			return subcommands.ExitFailure
		}
	}

	data := config.Encode(spec)
	if err := renameio.WriteFile(fpath, data, 0644); err != nil {
		log.WithError(err).Errorf("write %q", fpath)
		return subcommands.ExitFailure
	}
	log.WithField("config", fpath).Info("created")
	return subcommands.ExitSuccess
}

// mergeSpec overrides base with the non-empty values of flags.
func mergeSpec(base, flags hclspec.Config) hclspec.Config {
	if flags.CollectionID != "" {
		base.CollectionID = flags.CollectionID
	}
	if flags.GameVersion != "" {
		base.GameVersion = flags.GameVersion
	}
	if flags.Loader != "" {
		base.Loader = flags.Loader
	}
	if flags.ModPath != "" {
		base.ModPath = flags.ModPath
	}
	return base
}
