// cmd/ogc/main.go
//
// Entry point for the ogc CLI.
//
// Flow:
// 1. Parse the subcommand (init, workflow, validate, list)
// 2. Load config.toml and build the generator registry
// 3. Run the requested operation and report results

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogcontrol/ogc/internal/config"
	"github.com/ogcontrol/ogc/internal/generator"
	"github.com/ogcontrol/ogc/internal/generators"
	"github.com/ogcontrol/ogc/internal/generators/ghworkflow"
	"github.com/ogcontrol/ogc/internal/logging"
	"github.com/ogcontrol/ogc/internal/output"
	"github.com/ogcontrol/ogc/internal/runner"
	"github.com/ogcontrol/ogc/internal/tui"
	"github.com/ogcontrol/ogc/plugins"
)

const version = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "init":
		return runInit(args[1:], stdout, stderr)
	case "workflow":
		return runWorkflow(args[1:], stdout, stderr)
	case "validate":
		return runValidate(args[1:], stdout, stderr)
	case "list":
		return runList(args[1:], stdout, stderr)
	case "version", "--version":
		fmt.Fprintf(stdout, "ogc %s\n", version)
		return 0
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "ogc: unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `ogc generates opencode agents, commands, and workflows from config.toml.

Usage:
  ogc init     [--config path] [--interactive] [--watch]
  ogc workflow [--config path] [--output path|-] [--verbose]
  ogc validate [--config path]
  ogc list     [--config path]
  ogc version
`)
}

// loadConfig wraps config.Load with a setup hint for the common case of
// running ogc in a directory without a config file.
func loadConfig(path string, stderr io.Writer) (*config.Config, bool) {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "ogc: %v\n", err)
		if errors.Is(err, config.ErrNotFound) {
			fmt.Fprintln(stderr, "ogc: create a config.toml or point --config at one")
		}
		return nil, false
	}
	return cfg, true
}

// buildRegistry assembles the built-in generators plus any custom
// definitions found under custom/.
func buildRegistry(cfg *config.Config) (*generator.Registry, error) {
	reg := generator.NewRegistry()
	generators.RegisterBuiltins(reg)
	if err := plugins.RegisterCustomGenerators(reg, cfg); err != nil {
		return nil, err
	}
	return reg, nil
}

func runInit(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.ConfigFileName, "path to the configuration file")
	interactive := fs.Bool("interactive", false, "show an interactive progress view")
	watch := fs.Bool("watch", false, "re-run generators whenever the config file changes")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *interactive && *watch {
		fmt.Fprintln(stderr, "ogc: --interactive and --watch cannot be combined")
		return 2
	}

	once := func() (runner.Tally, error) {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return runner.Tally{}, err
		}
		reg, err := buildRegistry(cfg)
		if err != nil {
			return runner.Tally{}, err
		}
		log, err := logging.New(cfg.ProjectRoot)
		if err != nil {
			fmt.Fprintf(stderr, "ogc: log file unavailable: %v\n", err)
		}
		defer log.Close()
		ctx := generator.NewContext(cfg, log)

		var entries []runner.Entry
		if *interactive {
			// The tea program renders the summary as its final frame.
			entries, err = tui.RunInit(reg, ctx)
			if err != nil {
				return runner.Tally{}, err
			}
		} else {
			entries = runner.Run(reg, ctx)
			fmt.Fprint(stdout, runner.Summary(entries))
		}
		return runner.Count(entries), nil
	}

	tally, err := once()
	if err != nil {
		fmt.Fprintf(stderr, "ogc: %v\n", err)
		return 1
	}

	if *watch {
		cfg, ok := loadConfig(*configPath, stderr)
		if !ok {
			return 1
		}
		fmt.Fprintf(stdout, "watching %s (ctrl+c to stop)\n", cfg.Path)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = runner.Watch(ctx, cfg.Path, func() {
			if _, err := once(); err != nil {
				fmt.Fprintf(stderr, "ogc: %v\n", err)
			}
		})
		if err != nil {
			fmt.Fprintf(stderr, "ogc: %v\n", err)
			return 1
		}
		return 0
	}

	if tally.HasFailures() {
		return 1
	}
	return 0
}

func runWorkflow(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("workflow", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.ConfigFileName, "path to the configuration file")
	outputPath := fs.String("output", "", "output file, or - for stdout")
	verbose := fs.Bool("verbose", false, "print the substituted settings")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, ok := loadConfig(*configPath, stderr)
	if !ok {
		return 1
	}
	rendered, settings, err := ghworkflow.Render(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "ogc: %v\n", err)
		return 1
	}
	for _, warning := range settings.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", warning)
	}
	if *verbose {
		fmt.Fprintf(stderr, "env_key: %s\nmodel: %s\n", settings.EnvKey, settings.Model)
		flat := cfg.Flatten()
		for _, key := range cfg.FlattenKeys() {
			fmt.Fprintf(stderr, "  %s = %s\n", key, flat[key])
		}
	}

	if *outputPath == "-" {
		fmt.Fprint(stdout, rendered)
		return 0
	}
	path := cfg.WorkflowPath()
	if *outputPath != "" {
		path = cfg.ResolvePath(*outputPath)
	}
	if err := output.WriteFile(path, []byte(rendered)); err != nil {
		fmt.Fprintf(stderr, "ogc: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %s\n", path)
	return 0
}

func runValidate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.ConfigFileName, "path to the configuration file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, ok := loadConfig(*configPath, stderr)
	if !ok {
		return 1
	}

	failed := false
	settings, err := ghworkflow.LoadSettings(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "gh.workflow: %v\n", err)
		failed = true
	} else {
		for _, warning := range settings.Warnings {
			fmt.Fprintf(stderr, "warning: %s\n", warning)
		}
	}

	// Registering exercises definition validation and ID collision checks.
	if _, err := buildRegistry(cfg); err != nil {
		fmt.Fprintf(stderr, "custom: %v\n", err)
		failed = true
	}

	if failed {
		return 1
	}
	fmt.Fprintf(stdout, "%s is valid\n", cfg.Path)
	return 0
}

func runList(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.ConfigFileName, "path to the configuration file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, ok := loadConfig(*configPath, stderr)
	if !ok {
		return 1
	}
	reg, err := buildRegistry(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "ogc: %v\n", err)
		return 1
	}

	ctx := generator.NewContext(cfg, nil)
	for _, id := range reg.IDs() {
		gen, err := reg.Resolve(id)
		if err != nil {
			fmt.Fprintf(stdout, "%-24s %-8s broken: %v\n", id, "?", err)
			continue
		}
		info := gen.Info()
		status := "enabled"
		if ok, reason := gen.Enabled(ctx); !ok {
			status = "skipped"
			if reason != "" {
				status = "skipped: " + reason
			}
		}
		fmt.Fprintf(stdout, "%-24s %-8s %s\n", id, info.Kind, status)
	}
	return 0
}
