// Package main is the entry point for the rectmode demo editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rectmode/rectmode/internal/app"
	"github.com/rectmode/rectmode/internal/config"
	"github.com/rectmode/rectmode/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  = flag.String("config", defaultConfigPath(), "path to the TOML config file")
		scriptPath  = flag.String("script", "", "run a Lua script against the file and print the result")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("rectmode %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}

	var text string
	path := flag.Arg(0)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: reading %s: %v\n", path, err)
			return 1
		}
		text = string(data)
	}

	logger := app.NewLogger(app.DefaultLoggerConfig())
	session, err := app.New(cfg, logger, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer session.Close()

	if *scriptPath != "" {
		return runScript(session, *scriptPath)
	}

	ui, err := newUI(session)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	// Live-reload the config while the UI runs. A missing file simply
	// leaves reloading off.
	if watcher, err := config.NewWatcher(*configPath, func(cfg config.Config, err error) {
		if err != nil {
			logger.Error("config reload: %v", err)
			return
		}
		ui.postReload(cfg)
	}); err == nil {
		defer watcher.Close()
	}

	if err := ui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runScript executes a Lua script headless and prints the resulting buffer.
func runScript(session *app.App, path string) int {
	engine, err := script.NewEngine(session)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: script engine: %v\n", err)
		return 1
	}
	defer engine.Close()

	if err := engine.DoFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: script: %v\n", err)
		return 1
	}
	session.Drain()
	fmt.Print(session.Buffer().Text())
	return 0
}

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "rectmode", "rectmode.toml")
	}
	return "rectmode.toml"
}
