package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/google/subcommands"
)

const programName = "modsync"

func main() {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.Bool("h", false, "alias for help")
	fs.Bool("help", false, "print usage")
	verbose := fs.Bool("v", false, "verbose output")

	cdr := subcommands.NewCommander(fs, programName)
	cdr.Register(&SyncCommand{}, "")
	cdr.Register(&CleanCommand{}, "")
	cdr.Register(&InitCommand{}, "")
	cdr.Register(&FormatCommand{}, "")
	cdr.Register(cdr.HelpCommand(), "help")
	cdr.Register(cdr.FlagsCommand(), "help")
	cdr.Register(cdr.CommandsCommand(), "help")

	args := os.Args[1:]
	if len(args) <= 0 {
		args = []string{"sync"}
	}
	if err := fs.Parse(args); err != nil {
		log.WithError(err).Fatal("parse flags")
	}

	log.SetHandler(cli.New(os.Stdout))
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rc := cdr.Execute(ctx)
	stop()
	switch rc {
	case subcommands.ExitFailure:
		os.Exit(1)
	case subcommands.ExitUsageError:
		os.Exit(2)
	}
}
