package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagekeep/pagekeep/internal/store"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "text" | "json"
	Config   string
	Database string
	Guild    string
	Actor    string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the pagekeep CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "pagekeep",
		Short: "pagekeep - a guild wiki engine",
		Long: `pagekeep stores titled wiki pages per guild, keeps every edit as an
immutable revision, and resolves member access from role permissions
and per-page overwrites.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			logLevel := slog.LevelWarn
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})))

			explicit := cmd.Flags().Changed("config")
			path := opts.Config
			if path == "" {
				path = defaultConfigPath()
			}
			cfg, err := loadConfig(path, explicit)
			if err != nil {
				return err
			}
			if opts.Database == "" {
				opts.Database = cfg.Database
			}
			if opts.Guild == "" {
				opts.Guild = cfg.Guild
			}
			if opts.Actor == "" {
				opts.Actor = cfg.Actor
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (default ~/.config/pagekeep/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database")
	cmd.PersistentFlags().StringVar(&opts.Guild, "guild", "", "guild id")
	cmd.PersistentFlags().StringVar(&opts.Actor, "actor", "", "acting member id")

	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewRenameCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewRecentCommand(opts))
	cmd.AddCommand(NewRevsCommand(opts))
	cmd.AddCommand(NewPermsCommand(opts))
	cmd.AddCommand(NewOverwriteCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}

// Execute runs the root command and returns a process exit code.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pagekeep: %v\n", err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openStore validates the shared flags and opens the database.
func (o *RootOptions) openStore() (*store.Store, error) {
	if o.Database == "" {
		return nil, WrapExitError(ExitCommandError, "no database configured", fmt.Errorf("pass --db or set database in the config file"))
	}
	if o.Guild == "" {
		return nil, WrapExitError(ExitCommandError, "no guild configured", fmt.Errorf("pass --guild or set guild in the config file"))
	}
	slog.Debug("opening database", "path", o.Database)
	s, err := store.Open(o.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return s, nil
}
