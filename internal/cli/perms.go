package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagekeep/pagekeep/internal/store"
	"github.com/pagekeep/pagekeep/internal/wiki"
)

// parseMask accepts either a raw integer or a comma-separated list of
// flag names ("view,edit").
func parseMask(arg string) (wiki.Permissions, error) {
	if n, err := strconv.ParseUint(arg, 10, 64); err == nil {
		return wiki.Permissions(n), nil
	}
	var mask wiki.Permissions
	for _, name := range strings.Split(arg, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		bit, ok := wiki.ParsePermission(name)
		if !ok {
			return 0, fmt.Errorf("unknown permission %q", name)
		}
		mask |= bit
	}
	return mask, nil
}

// NewPermsCommand creates the perms command group.
func NewPermsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perms",
		Short: "Inspect and adjust role permissions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <role>",
		Short: "Show a role's base permissions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			mask, err := s.RolePermissions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writePermissions(cmd, opts, mask)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <role> <mask>",
		Short: "Replace a role's base permissions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mask, err := parseMask(args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "bad mask", err)
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.SetRolePermissions(cmd.Context(), opts.Guild, args[0], mask); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "role %s: %s\n", args[0], mask)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "allow <role> <mask>",
		Short: "Add bits to a role's base permissions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mask, err := parseMask(args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "bad mask", err)
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.AllowRolePermissions(cmd.Context(), opts.Guild, args[0], mask); err != nil {
				return err
			}
			return printRole(cmd, s, args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "deny <role> <mask>",
		Short: "Clear bits from a role's base permissions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mask, err := parseMask(args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "bad mask", err)
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DenyRolePermissions(cmd.Context(), opts.Guild, args[0], mask); err != nil {
				return err
			}
			return printRole(cmd, s, args[0])
		},
	})

	var roles []string
	forCmd := &cobra.Command{
		Use:   "for <title>",
		Short: "Resolve the acting member's effective permissions on a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			member := wiki.Member{UserID: opts.Actor, GuildID: opts.Guild, RoleIDs: roles}
			mask, err := s.PermissionsFor(cmd.Context(), member, args[0])
			if err != nil {
				return err
			}
			return writePermissions(cmd, opts, mask)
		},
	}
	forCmd.Flags().StringSliceVar(&roles, "roles", nil, "the member's resolved role ids")
	cmd.AddCommand(forCmd)

	return cmd
}

// printRole re-reads and prints a role's base mask after a mutation.
func printRole(cmd *cobra.Command, s *store.Store, role string) error {
	mask, err := s.RolePermissions(cmd.Context(), role)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "role %s: %s\n", role, mask)
	return nil
}

func writePermissions(cmd *cobra.Command, opts *RootOptions, mask wiki.Permissions) error {
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), permissionsJSON{Mask: uint64(mask), Names: mask.String()})
	}
	fmt.Fprintln(cmd.OutOrStdout(), mask)
	return nil
}
