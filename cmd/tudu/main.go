package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aybkr/tudu/internal/cli"
	"github.com/aybkr/tudu/internal/config"
	"github.com/aybkr/tudu/internal/logging"
	"github.com/aybkr/tudu/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	groupPending := flag.Bool("group", false, "group plain listing by pending/done")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	styles := ui.NewStyles(cfg.Theme)

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Group:  *groupPending,
		Config: cfg,
		Logger: logger,
		Styles: styles,
	})
	os.Exit(code)
}
