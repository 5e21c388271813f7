package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewOverwriteCommand creates the overwrite command group for per-page,
// per-role allow/deny masks.
func NewOverwriteCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overwrite",
		Short: "Inspect and adjust per-page permission overwrites",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <title>",
		Short: "List a page's overwrites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ows, err := s.PageOverwrites(cmd.Context(), opts.Guild, args[0])
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), toOverwriteJSONs(ows))
			}
			renderOverwrites(cmd.OutOrStdout(), ows)
			return nil
		},
	})

	var allowArg, denyArg string
	setCmd := &cobra.Command{
		Use:   "set <title> <role>",
		Short: "Replace both masks for a (page, role) pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			allow, err := parseMask(allowArg)
			if err != nil {
				return WrapExitError(ExitCommandError, "bad allow mask", err)
			}
			deny, err := parseMask(denyArg)
			if err != nil {
				return WrapExitError(ExitCommandError, "bad deny mask", err)
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.SetPageOverwrite(cmd.Context(), opts.Guild, args[0], args[1], allow, deny); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "overwrite on %q for role %s: allow %s, deny %s\n", args[0], args[1], allow, deny)
			return nil
		},
	}
	setCmd.Flags().StringVar(&allowArg, "allow", "0", "allow mask (names or integer)")
	setCmd.Flags().StringVar(&denyArg, "deny", "0", "deny mask (names or integer)")
	cmd.AddCommand(setCmd)

	var addAllowArg, addDenyArg string
	addCmd := &cobra.Command{
		Use:   "add <title> <role>",
		Short: "Merge bits into both masks for a (page, role) pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			allow, err := parseMask(addAllowArg)
			if err != nil {
				return WrapExitError(ExitCommandError, "bad allow mask", err)
			}
			deny, err := parseMask(addDenyArg)
			if err != nil {
				return WrapExitError(ExitCommandError, "bad deny mask", err)
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.AddPageOverwrite(cmd.Context(), opts.Guild, args[0], args[1], allow, deny); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "merged overwrite on %q for role %s\n", args[0], args[1])
			return nil
		},
	}
	addCmd.Flags().StringVar(&addAllowArg, "allow", "0", "allow bits to merge (names or integer)")
	addCmd.Flags().StringVar(&addDenyArg, "deny", "0", "deny bits to merge (names or integer)")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "clear <title> <role> <mask>",
		Short: "Clear bits from both masks, reverting them to base resolution",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			mask, err := parseMask(args[2])
			if err != nil {
				return WrapExitError(ExitCommandError, "bad mask", err)
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.ClearPageOverwriteBits(cmd.Context(), opts.Guild, args[0], args[1], mask); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s on %q for role %s\n", mask, args[0], args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unset <title> <role>",
		Short: "Delete the overwrite row; the role reverts to base-only resolution",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.UnsetPageOverwrite(cmd.Context(), opts.Guild, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "unset overwrite on %q for role %s\n", args[0], args[1])
			return nil
		},
	})

	return cmd
}
