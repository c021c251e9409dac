// Package main provides the genex CLI entry point.
//
// Overview:
//   - Responsibility: CLI command parsing, configuration loading and logger setup
//   - Key Types: Cobra command tree
//   - Concurrency Model: Single-threaded CLI execution
//   - Error Semantics: Errors are printed through ui and exit with status 1
//   - Performance Notes: Configuration is loaded once per invocation
//
// Usage:
//
//	genex generate --entity person --attributes 'id:Long;name:String'
//	genex add-lombok-mapstruct --pom pom.xml
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"go.eggybyte.com/genex/core/log"
	"go.eggybyte.com/genex/internal/configschema"
	"go.eggybyte.com/genex/internal/ui"
	"go.eggybyte.com/genex/logx"
)

var (
	configPath string
	verbose    bool
	jsonOutput bool
	logFormat  string
)

// Loaded by the root command before any subcommand runs.
var (
	cfg    *configschema.Config
	logger log.Logger = log.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "genex",
	Short: "Java entity scaffolding for Maven projects",
	Long: `genex generates JPA entities, DTOs, MapStruct mappers and Spring Data
repositories from a compact attribute list, and wires Lombok and MapStruct
into a project's pom.xml.

Defaults are read from genex.yaml and GENEX_* environment variables.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func setup(cmd *cobra.Command, _ []string) error {
	ui.SetVerbose(verbose)
	ui.SetJSONOutput(jsonOutput)

	l, err := newLogger(cmd)
	if err != nil {
		return err
	}
	logger = l

	var diags *configschema.Diagnostics
	if cmd.Flags().Changed("config") {
		cfg, diags = configschema.Load(configPath)
	} else {
		cfg, diags = configschema.LoadOrDefault(configPath)
	}
	for _, d := range diags.Items() {
		switch d.Severity {
		case configschema.SeverityWarning:
			ui.Warning("%s: %s", d.Path, d.Message)
		case configschema.SeverityInfo:
			ui.Debug("%s: %s", d.Path, d.Message)
		}
	}
	return diags.Err()
}

func newLogger(cmd *cobra.Command) (log.Logger, error) {
	format, err := logx.ParseFormat(logFormat)
	if err != nil {
		return nil, invalidArgument("--log-format", err)
	}

	level, _ := logx.ParseLevel("warn")
	if verbose {
		level, _ = logx.ParseLevel("debug")
	}

	return logx.New(
		logx.WithFormat(format),
		logx.WithLevel(level),
		logx.WithColor(format == logx.FormatLogfmt && isTerminal(os.Stderr) && os.Getenv("NO_COLOR") == ""),
		logx.WithWriter(cmd.ErrOrStderr()),
	).With(logx.Str("cmd", cmd.Name())), nil
}

// isTerminal reports whether f is a terminal, Cygwin and MSYS ptys included.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", configschema.DefaultPath, "Configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", string(logx.FormatLogfmt), "Log format: logfmt or json")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		ui.Error("Command failed: %v", err)
		os.Exit(1)
	}
}
