package cli

import (
	"fmt"
	"iter"

	"github.com/spf13/cobra"

	"github.com/pagekeep/pagekeep/internal/wiki"
)

// NewCreateCommand creates the create command.
func NewCreateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create <title> <content>",
		Short: "Create a page with its first revision",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			pr, err := s.CreatePage(cmd.Context(), opts.Guild, args[0], args[1], opts.Actor)
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), toPageJSON(pr))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %q (revision #%d)\n", pr.Page.Title, pr.Revision.RevisionID)
			return nil
		},
	}
}

// NewShowCommand creates the show command.
func NewShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <title>",
		Short: "Show a page's current content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			pr, err := s.GetPage(cmd.Context(), opts.Guild, args[0])
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), toPageJSON(pr))
			}
			renderPage(cmd.OutOrStdout(), pr)
			return nil
		},
	}
}

// NewEditCommand creates the edit command.
func NewEditCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <title> <content>",
		Short: "Append a new revision to a page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			rev, err := s.RevisePage(cmd.Context(), opts.Guild, args[0], args[1], opts.Actor)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revised %q (revision #%d)\n", args[0], rev.RevisionID)
			return nil
		},
	}
}

// NewRenameCommand creates the rename command.
func NewRenameCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <title> <new-title>",
		Short: "Rename a page, keeping its history",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.RenamePage(cmd.Context(), opts.Guild, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "renamed %q to %q\n", args[0], args[1])
			return nil
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <title>",
		Short: "Delete a page and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeletePage(cmd.Context(), opts.Guild, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", args[0])
			return nil
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all pages in the guild",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			pages, err := drain(s.AllPages(cmd.Context(), opts.Guild))
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), toPageJSONs(pages))
			}
			renderPageList(cmd.OutOrStdout(), pages)
			return nil
		},
	}
}

// NewSearchCommand creates the search command.
func NewSearchCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-search page titles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			pages, err := drain(s.SearchPages(cmd.Context(), opts.Guild, args[0]))
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), toPageJSONs(pages))
			}
			renderPageList(cmd.OutOrStdout(), pages)
			return nil
		},
	}
}

// drain materializes a lazy page sequence for rendering.
func drain(seq iter.Seq2[wiki.PageWithRevision, error]) ([]wiki.PageWithRevision, error) {
	var out []wiki.PageWithRevision
	for pr, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, nil
}
