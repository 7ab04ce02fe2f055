// Package config loads modsync configuration files.
//
// Both HCL and JSON syntax are accepted; the JSON keys are the same
// as the HCL attribute names, e.g.
//
//	collection_id = "AbCdEf12"
//	mc_version    = "1.20.4"
//	loader        = "fabric"
//	mod_path      = "~/.minecraft/mods"
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/subosito/gotenv"

	"github.com/tie/modsync/config/hclspec"
	"github.com/tie/modsync/modrinth"
	"github.com/tie/modsync/modsync"
)

const (
	DefaultPath      = "modsync.hcl"
	DefaultModPath   = "mods"
	DefaultUserAgent = "tie/modsync"

	// TokenEnv names the environment variable holding the API token.
	TokenEnv = "MODRINTH_TOKEN"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	CollectionID string
	Target       modsync.Target

	// ModPath is the mods directory with "~" expanded.
	ModPath string
	// Workers is zero if unset.
	Workers int

	API modrinth.Options
}

// IsJSON reports whether filename is parsed with JSON syntax.
func IsJSON(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".json")
}

// Parse parses and decodes src. The syntax is chosen by the
// extension of filename. Parsed files are registered with p so
// that diagnostics can show source snippets.
func Parse(p *hclparse.Parser, src []byte, filename string) (hclspec.Config, hcl.Diagnostics) {
	var c hclspec.Config
	var file *hcl.File
	var diags hcl.Diagnostics
	if IsJSON(filename) {
		file, diags = p.ParseJSON(src, filename)
	} else {
		file, diags = p.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return c, diags
	}
	decodeDiags := gohcl.DecodeBody(file.Body, nil, &c)
	diags = append(diags, decodeDiags...)
	return c, diags
}

// New validates the decoded spec and fills in defaults.
// The API token is taken from the environment.
func New(spec hclspec.Config) (*Config, error) {
	for _, attr := range []struct {
		name, val string
	}{
		{"collection_id", spec.CollectionID},
		{"mc_version", spec.GameVersion},
		{"loader", spec.Loader},
	} {
		if strings.TrimSpace(attr.val) == "" {
			return nil, errors.Wrapf(ErrInvalid, "%s must not be empty", attr.name)
		}
	}
	if spec.Workers < 0 {
		return nil, errors.Wrap(ErrInvalid, "workers must not be negative")
	}

	modPath := spec.ModPath
	if modPath == "" {
		modPath = DefaultModPath
	}
	modPath, err := homedir.Expand(modPath)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalid, "mod_path: %v", err)
	}

	ua := spec.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Config{
		CollectionID: spec.CollectionID,
		Target: modsync.Target{
			GameVersion: spec.GameVersion,
			Loader:      strings.ToLower(spec.Loader),
		},
		ModPath: modPath,
		Workers: spec.Workers,
		API: modrinth.Options{
			BaseURL:   spec.APIURL,
			UserAgent: ua,
			Token:     os.Getenv(TokenEnv),
		},
	}, nil
}

// LoadEnv loads variables from a dotenv file if it exists.
// Variables already set in the environment take precedence.
func LoadEnv(path string) error {
	err := gotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
