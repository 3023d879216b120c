package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/lexweb/internal/fixture"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Create lexicons and webs from a YAML fixture",
		Long: `Create lexicons and webs from a YAML fixture.

The document is checked against the fixture schema first; nothing is written
if it does not match. Entities are then created in document order and the
import stops at the first rejected operation.

Example:
  lexweb import ./animals.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := fixture.Load(args[0])
			if err != nil {
				out := rootOpts.formatter(cmd)
				return out.Fail(err)
			}
			return run(rootOpts, cmd, false, func(s *session) error {
				sum, err := fixture.Import(cmd.Context(), s.svc, doc)
				if err != nil {
					return err
				}
				return s.out.Success(outcome{
					fmt.Sprintf("Imported %d lexicon(s), %d lexeme(s), %d web(s), %d relation(s) for %s",
						sum.Lexicons, sum.Lexemes, sum.Webs, sum.Relations, doc.Owner),
					sum,
				})
			})
		},
	}
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the owner's lexicons and webs as a YAML fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, true, func(s *session) error {
				doc, err := fixture.Export(cmd.Context(), s.svc, s.owner)
				if err != nil {
					return err
				}
				if s.out.Format == "json" && output == "" {
					return s.out.Success(doc)
				}
				data, err := fixture.Marshal(doc)
				if err != nil {
					return err
				}
				if output == "" {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(output, data, 0644); err != nil {
					_ = s.out.Error(ErrCodeWriteFailed, err.Error(), map[string]string{"path": output})
					return WrapExitError(ExitCommandError, "failed to write fixture", err)
				}
				return s.out.Success(outcome{fmt.Sprintf("Exported to %s", output), map[string]string{"path": output}})
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default stdout)")

	return cmd
}
