package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/lexweb/internal/clock"
	"github.com/roach88/lexweb/internal/config"
	"github.com/roach88/lexweb/internal/ids"
)

// RootOptions holds global flags for all commands, and the configuration
// resolved from them before any subcommand runs.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Database   string
	Owner      string
	Metrics    bool

	// Clock and IDs override the wall clock and UUIDv7 generator (for testing).
	Clock clock.Clock
	IDs   ids.Generator

	cfg    *config.Config
	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the lexweb CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexweb",
		Short: "lexweb - lexicons and webs of related terms",
		Long: `Manage lexicons (vocabularies of unique terms) and webs (labeled graphs
whose edges relate terms from any lexicon).

Configuration is read from --config, then LEXWEB_DB, LEXWEB_OWNER,
LEXWEB_LOG_LEVEL and LEXWEB_LOG_FORMAT, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (debug logging)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database")
	cmd.PersistentFlags().StringVar(&opts.Owner, "owner", "", "owner of lexicons and webs")
	cmd.PersistentFlags().BoolVar(&opts.Metrics, "metrics", false, "print operation counters to stderr on exit")

	cmd.AddCommand(NewLexiconCommand(opts))
	cmd.AddCommand(NewWebCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// resolve validates flags and builds the effective configuration and logger.
func (opts *RootOptions) resolve(cmd *cobra.Command) error {
	if !isValidFormat(opts.Format) {
		return opts.configError(cmd, fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return opts.configError(cmd, err)
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Database = opts.Database
	}
	if flags.Changed("owner") {
		cfg.Owner = opts.Owner
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return opts.configError(cmd, err)
	}

	opts.cfg = cfg
	opts.logger = cfg.NewLogger(cmd.ErrOrStderr())
	opts.logger.Debug("configuration resolved", "database", cfg.Database, "owner", cfg.Owner)
	return nil
}

func (opts *RootOptions) configError(cmd *cobra.Command, err error) error {
	f := opts.formatter(cmd)
	_ = f.Error(ErrCodeConfig, err.Error(), nil)
	return WrapExitError(ExitCommandError, "invalid configuration", err)
}

func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	format := opts.Format
	if !isValidFormat(format) {
		format = "text"
	}
	return &OutputFormatter{
		Format:    format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
