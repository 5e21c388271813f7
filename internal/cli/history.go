package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <title>",
		Short: "List a page's revisions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			revs, err := drain(s.PageRevisions(cmd.Context(), opts.Guild, args[0]))
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), toPageJSONs(revs))
			}
			renderHistory(cmd.OutOrStdout(), revs)
			return nil
		},
	}
}

// NewRecentCommand creates the recent command.
func NewRecentCommand(opts *RootOptions) *cobra.Command {
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List guild revisions newer than a cutoff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			cutoff := time.Now().Add(-since)
			revs, err := drain(s.RecentRevisions(cmd.Context(), opts.Guild, cutoff))
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), toPageJSONs(revs))
			}
			renderHistory(cmd.OutOrStdout(), revs)
			return nil
		},
	}

	cmd.Flags().DurationVar(&since, "since", 24*time.Hour, "how far back to look")
	return cmd
}

// NewRevsCommand creates the revs command, which resolves specific
// revision ids in full, oldest first, for comparing versions.
func NewRevsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "revs <id>...",
		Short: "Show specific revisions in full, oldest first",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, a := range args {
				id, err := strconv.ParseInt(a, 10, 64)
				if err != nil {
					return WrapExitError(ExitCommandError, fmt.Sprintf("invalid revision id %q", a), err)
				}
				ids = append(ids, id)
			}

			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			revs, err := s.IndividualRevisions(cmd.Context(), opts.Guild, ids)
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), toPageJSONs(revs))
			}
			renderRevisions(cmd.OutOrStdout(), revs)
			return nil
		},
	}
}
