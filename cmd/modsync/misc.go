package main

import (
	"errors"
	"os"

	"github.com/apex/log"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/tie/internal/robustio"

	"github.com/tie/modsync/config"
	"github.com/tie/modsync/config/hclspec"
)

const (
	// legacyConfig is used when the default config does not exist.
	legacyConfig = "config.json"
	dotenvPath   = ".env"
)

func newDiagWr(p *hclparse.Parser) (diagWr hcl.DiagnosticWriter, color bool) {
	files := p.Files()
	stderr := os.Stderr
	fd := int(stderr.Fd())
	istty, color := fdinfo(fd)
	if !istty {
		diagWr := hcl.NewDiagnosticTextWriter(stderr, files, 80, color)
		return diagWr, color
	}
	width := uint(80)
	if w, _, err := terminal.GetSize(fd); err != nil {
		log.WithError(err).Debug("get term size")
	} else if w > 0 {
		width = uint(w)
	}
	return hcl.NewDiagnosticTextWriter(stderr, files, width, color), color
}

func fdinfo(fd int) (istty, color bool) {
	istty = terminal.IsTerminal(fd)
	if istty {
		color = true
	}
	// See https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color = false
	}
	return
}

// resolveConfigPath falls back to the legacy JSON config when the
// default path was requested but does not exist.
func resolveConfigPath(path string) string {
	if path != config.DefaultPath {
		return path
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		return path
	}
	if _, err := os.Stat(legacyConfig); err == nil {
		return legacyConfig
	}
	return path
}

func parseConfig(path string) (hclspec.Config, bool) {
	var spec hclspec.Config

	parser := hclparse.NewParser()
	diagWr, _ := newDiagWr(parser)

	src, err := robustio.ReadFile(path)
	if err != nil {
		log.WithError(err).Errorf("read %q", path)
		return spec, false
	}

	spec, diags := config.Parse(parser, src, path)
	if err := diagWr.WriteDiagnostics(diags); err != nil {
		log.WithError(err).Error("write diags")
		return spec, false
	}
	return spec, !diags.HasErrors()
}

func loadConfig(path string) (*config.Config, bool) {
	if err := config.LoadEnv(dotenvPath); err != nil {
		log.WithError(err).Warnf("load %q", dotenvPath)
	}
	path = resolveConfigPath(path)
	spec, ok := parseConfig(path)
	if !ok {
		return nil, false
	}
	c, err := config.New(spec)
	if err != nil {
		log.WithError(err).Errorf("config %q", path)
		return nil, false
	}
	log.WithField("config", path).Debug("loaded config")
	return c, true
}

// openMods opens the mods directory, creating it if absent.
func openMods(path string) (billy.Filesystem, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, err
	}
	return osfs.New(path), nil
}
