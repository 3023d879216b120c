package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lexweb/internal/graph"
	"github.com/roach88/lexweb/internal/model"
)

// RelateOptions holds flags shared by relate and unrelate.
type RelateOptions struct {
	*RootOptions
	Lexicon   string
	Symmetric bool
}

// NewWebCommand creates the web command tree.
func NewWebCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "web",
		Short: "Manage webs and their relations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a web",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, true, func(s *session) error {
				w, err := s.svc.CreateWeb(cmd.Context(), s.owner, args[0])
				if err != nil {
					return err
				}
				return s.out.Success(outcome{fmt.Sprintf("Created web %s", w.Name), w})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <name> <new-name>",
		Short: "Rename a web",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, true, func(s *session) error {
				ctx := cmd.Context()
				w, err := s.svc.FindWeb(ctx, s.owner, args[0])
				if err != nil {
					return err
				}
				if err := s.svc.RenameWeb(ctx, &w, args[1]); err != nil {
					return err
				}
				return s.out.Success(outcome{fmt.Sprintf("Renamed web %s to %s", args[0], w.Name), w})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a web and its relations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, true, func(s *session) error {
				ctx := cmd.Context()
				w, err := s.svc.FindWeb(ctx, s.owner, args[0])
				if err != nil {
					return err
				}
				if err := s.svc.DeleteWeb(ctx, w.ID); err != nil {
					return err
				}
				return s.out.Success(outcome{fmt.Sprintf("Deleted web %s", w.Name), w})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List webs, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, true, func(s *session) error {
				list, err := s.svc.ListWebs(cmd.Context(), s.owner)
				if err != nil {
					return err
				}
				return s.out.Success(webList(list))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show a web and its relations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, true, func(s *session) error {
				w, rels, err := s.webRelations(cmd, args[0])
				if err != nil {
					return err
				}
				return s.out.Success(webDetail{Web: w, Relations: rels})
			})
		},
	})

	cmd.AddCommand(newRelateCommand(rootOpts))
	cmd.AddCommand(newUnrelateCommand(rootOpts))
	cmd.AddCommand(newNeighborsCommand(rootOpts))

	cmd.AddCommand(&cobra.Command{
		Use:   "cycles <name>",
		Short: "List groups of terms that reach each other through directed relations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, true, func(s *session) error {
				_, rels, err := s.webRelations(cmd, args[0])
				if err != nil {
					return err
				}
				return s.out.Success(cycleList{Cycles: graph.Build(rels).Cycles()})
			})
		},
	})

	return cmd
}

func newRelateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RelateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "relate <web> <name> <source> <sink>",
		Short: "Add the relation name(source, sink) to a web",
		Long: `Add the relation name(source, sink) to a web.

Each of name, source and sink is looked up by text in --lexicon, or in the
owner's lexicons oldest first when --lexicon is not set.

Example:
  lexweb web relate "Food Chain" eats cat mouse --lexicon Animals
  lexweb web relate "Food Chain" related cat dog --symmetric`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, true, func(s *session) error {
				ctx := cmd.Context()
				w, err := s.svc.FindWeb(ctx, s.owner, args[0])
				if err != nil {
					return err
				}
				name, source, sink, err := s.resolveTriple(cmd, opts.Lexicon, args[1:])
				if err != nil {
					return err
				}
				r, err := s.svc.AddRelation(ctx, &w, name, source, sink, opts.Symmetric)
				if err != nil {
					return err
				}
				return s.out.Success(outcome{fmt.Sprintf("Added %s to %s", r, w.Name), r})
			})
		},
	}

	cmd.Flags().StringVar(&opts.Lexicon, "lexicon", "", "lexicon to look terms up in")
	cmd.Flags().BoolVar(&opts.Symmetric, "symmetric", false, "relation holds in both directions")

	return cmd
}

func newUnrelateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RelateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "unrelate <web> <name> <source> <sink>",
		Short: "Remove the relation name(source, sink) from a web",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, true, func(s *session) error {
				ctx := cmd.Context()
				w, err := s.svc.FindWeb(ctx, s.owner, args[0])
				if err != nil {
					return err
				}
				name, source, sink, err := s.resolveTriple(cmd, opts.Lexicon, args[1:])
				if err != nil {
					return err
				}
				r, err := s.svc.LookupRelation(ctx, w.ID, name, source, sink)
				if err != nil {
					return err
				}
				if err := s.svc.RemoveRelation(ctx, &w, r); err != nil {
					return err
				}
				return s.out.Success(outcome{fmt.Sprintf("Removed %s from %s", r, w.Name), r})
			})
		},
	}

	cmd.Flags().StringVar(&opts.Lexicon, "lexicon", "", "lexicon to look terms up in")

	return cmd
}

func newNeighborsCommand(rootOpts *RootOptions) *cobra.Command {
	var reachable bool

	cmd := &cobra.Command{
		Use:   "neighbors <web> <text>",
		Short: "List the relations leaving a term; symmetric relations count from both ends",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, true, func(s *session) error {
				_, rels, err := s.webRelations(cmd, args[0])
				if err != nil {
					return err
				}
				g := graph.Build(rels)
				node := model.NormalizeText(args[1])
				if !g.Has(node) {
					return model.NewNotFoundError(model.KindLexeme, node)
				}
				if reachable {
					return s.out.Success(reachableList{Node: node, Reachable: g.Reachable(node)})
				}
				return s.out.Success(neighborList{Node: node, Edges: g.Neighbors(node)})
			})
		},
	}

	cmd.Flags().BoolVar(&reachable, "reachable", false, "list every term reachable in one or more steps")

	return cmd
}

func (s *session) webRelations(cmd *cobra.Command, webName string) (model.Web, []model.Relation, error) {
	ctx := cmd.Context()
	w, err := s.svc.FindWeb(ctx, s.owner, webName)
	if err != nil {
		return model.Web{}, nil, err
	}
	rels, err := s.svc.Relations(ctx, w.ID)
	if err != nil {
		return model.Web{}, nil, err
	}
	return w, rels, nil
}

func (s *session) resolveTriple(cmd *cobra.Command, lexicon string, texts []string) (name, source, sink model.Lexeme, err error) {
	ctx := cmd.Context()
	if name, err = s.svc.ResolveLexeme(ctx, s.owner, lexicon, texts[0]); err != nil {
		return
	}
	if source, err = s.svc.ResolveLexeme(ctx, s.owner, lexicon, texts[1]); err != nil {
		return
	}
	sink, err = s.svc.ResolveLexeme(ctx, s.owner, lexicon, texts[2])
	return
}
