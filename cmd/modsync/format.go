package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/apex/log"
	"github.com/google/subcommands"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/pkg/diff"

	"github.com/tie/internal/renameio"
	"github.com/tie/internal/robustio"

	"github.com/tie/modsync/config"
)

type FormatCommand struct {
	DisableCheck bool
	Overwrite    bool
	ContextSize  int
}

func (*FormatCommand) Name() string     { return "fmt" }
func (*FormatCommand) Synopsis() string { return "format config files" }
func (*FormatCommand) Usage() string {
	return `Usage: modsync fmt [-c int] [-w] [-nocheck] [config paths]

	Formats HCL config files using standard syntax. It can either write
	files in-place or generate unified diff with specified context size.
	JSON config files are left as is.

Flags:
`
}

func (cmd *FormatCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&cmd.DisableCheck, "nocheck", false, "disable diagnostics")
	fs.BoolVar(&cmd.Overwrite, "w", false, "write result to (source) file instead of stdout")
	fs.IntVar(&cmd.ContextSize, "c", 3, "output n lines of diff context")
}

func (cmd *FormatCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	var color bool
	var parser *hclparse.Parser
	var diagWr hcl.DiagnosticWriter
	if !cmd.DisableCheck {
		parser = hclparse.NewParser()
		diagWr, color = newDiagWr(parser)
	}

	paths := fs.Args()
	if len(paths) <= 0 {
		paths = []string{config.DefaultPath}
	} else {
		sort.Strings(paths)
	}

	seen := make(map[string]bool, len(paths))
	for _, fpath := range paths {
		if seen[fpath] {
			continue
		}
		seen[fpath] = true
		if config.IsJSON(fpath) {
			log.WithField("config", fpath).Debug("skipping JSON config")
			continue
		}
		src, err := robustio.ReadFile(fpath)
		if err != nil {
			log.WithError(err).Errorf("read config %q", fpath)
			return subcommands.ExitFailure
		}

		if !cmd.DisableCheck {
			_, diags := config.Parse(parser, src, fpath)
			if err := diagWr.WriteDiagnostics(diags); err != nil {
				log.WithError(err).Error("write diags")
				return subcommands.ExitFailure
			}
			if diags.HasErrors() {
				return subcommands.ExitFailure
			}
		}

		outSrc := hclwrite.Format(src)
		if bytes.Equal(src, outSrc) {
			continue
		}
		if !cmd.Overwrite {
			if err := writeDiff(ctx, fpath, src, outSrc, cmd.ContextSize, color); err != nil {
				log.WithError(err).Error("write diff")
				return subcommands.ExitFailure
			}
			continue
		}
		if err := renameio.WriteFile(fpath, outSrc, 0644); err != nil {
			log.WithError(err).Errorf("write file %q", fpath)
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}

func writeDiff(ctx context.Context, fpath string, src, outSrc []byte, contextSize int, color bool) error {
	fpath = filepath.ToSlash(fpath)
	aname := fmt.Sprintf("a/%s", fpath)
	bname := fmt.Sprintf("b/%s", fpath)
	names := diff.Names(aname, bname)
	opts := []diff.WriteOpt{names}
	if color {
		c := diff.TerminalColor()
		opts = append(opts, c)
	}
	a, b := splitLines(src), splitLines(outSrc)
	pair := diff.Bytes(a, b)
	edit := diff.Myers(ctx, pair)
	if contextSize >= 0 {
		edit = edit.WithContextSize(contextSize)
	}
	_, err := edit.WriteUnified(os.Stdout, pair, opts...)
	return err
}

func splitLines(b []byte) [][]byte {
	return bytes.Split(b, []byte("\n"))
}
