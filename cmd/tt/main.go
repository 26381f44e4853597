package main

import (
	"fmt"
	"os"

	"timetrack/internal/cli"
	"timetrack/internal/config"
	"timetrack/internal/tracker"
)

func main() {
	// Load configuration: defaults, then config file, then environment.
	// Command-line flags override on top once cobra parses them.
	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	repo, err := config.CreateRepository(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	engine := tracker.New(repo, cfg.WeekStartDay())

	root := cli.NewRootCommand(engine, cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
