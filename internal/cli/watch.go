package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command group.
func NewWatchCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Manage the acting member's watch list",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <title>",
		Short: "Add a page to the watch list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.WatchPage(cmd.Context(), opts.Actor, opts.Guild, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "watching %q\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <title>",
		Short: "Remove a page from the watch list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.UnwatchPage(cmd.Context(), opts.Actor, opts.Guild, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "no longer watching %q\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the watch list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			var titles []string
			for title, err := range s.WatchList(cmd.Context(), opts.Actor, opts.Guild) {
				if err != nil {
					return err
				}
				titles = append(titles, title)
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), titles)
			}
			for _, t := range titles {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	})

	return cmd
}
