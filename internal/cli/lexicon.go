package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLexiconCommand creates the lexicon command tree.
func NewLexiconCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Manage lexicons and their lexemes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a lexicon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, true, func(s *session) error {
				l, err := s.svc.CreateLexicon(cmd.Context(), s.owner, args[0])
				if err != nil {
					return err
				}
				return s.out.Success(outcome{fmt.Sprintf("Created lexicon %s", l.Name), l})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <name> <new-name>",
		Short: "Rename a lexicon",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, true, func(s *session) error {
				ctx := cmd.Context()
				l, err := s.svc.FindLexicon(ctx, s.owner, args[0])
				if err != nil {
					return err
				}
				if err := s.svc.RenameLexicon(ctx, &l, args[1]); err != nil {
					return err
				}
				return s.out.Success(outcome{fmt.Sprintf("Renamed lexicon %s to %s", args[0], l.Name), l})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a lexicon, its lexemes and every relation using them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, true, func(s *session) error {
				ctx := cmd.Context()
				l, err := s.svc.FindLexicon(ctx, s.owner, args[0])
				if err != nil {
					return err
				}
				if err := s.svc.DeleteLexicon(ctx, l.ID); err != nil {
					return err
				}
				return s.out.Success(outcome{fmt.Sprintf("Deleted lexicon %s", l.Name), l})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List lexicons, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, true, func(s *session) error {
				list, err := s.svc.ListLexicons(cmd.Context(), s.owner)
				if err != nil {
					return err
				}
				return s.out.Success(lexiconList(list))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show a lexicon and its lexemes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, true, func(s *session) error {
				ctx := cmd.Context()
				l, err := s.svc.FindLexicon(ctx, s.owner, args[0])
				if err != nil {
					return err
				}
				lexemes, err := s.svc.Lexemes(ctx, l.ID)
				if err != nil {
					return err
				}
				return s.out.Success(lexiconDetail{Lexicon: l, Lexemes: lexemes})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name> <text>...",
		Short: "Add lexemes to a lexicon",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, true, func(s *session) error {
				ctx := cmd.Context()
				l, err := s.svc.FindLexicon(ctx, s.owner, args[0])
				if err != nil {
					return err
				}
				for _, text := range args[1:] {
					lx, err := s.svc.AddLexeme(ctx, &l, text)
					if err != nil {
						return err
					}
					s.out.VerboseLog("added %s to %s", lx.Text, l.Name)
				}
				return s.out.Success(outcome{fmt.Sprintf("Added %d lexeme(s) to %s", len(args)-1, l.Name), l})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <name> <text>",
		Short: "Remove a lexeme and every relation using it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, true, func(s *session) error {
				ctx := cmd.Context()
				l, err := s.svc.FindLexicon(ctx, s.owner, args[0])
				if err != nil {
					return err
				}
				lx, err := s.svc.LookupLexeme(ctx, l.ID, args[1])
				if err != nil {
					return err
				}
				if err := s.svc.RemoveLexeme(ctx, &l, lx); err != nil {
					return err
				}
				return s.out.Success(outcome{fmt.Sprintf("Removed %s from %s", lx.Text, l.Name), l})
			})
		},
	})

	return cmd
}
