package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"protgroup/core/matcher"
	"protgroup/internal/app"
)

func newInferCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "infer <peptides> <fasta>",
		Short: "Run the full pipeline: annotate, matrix, greedy parsimony",
		Long: `Maps every peptide onto the FASTA database, builds the
peptide-protein matrix and reports the minimal protein-group cover as
{peptide, protein_group, n_proteins_in_group} rows.`,
		Args: requireTwoFiles("infer"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Infer(cmd.Context(), st.logger, st.options(args[0], args[1]), cmd.OutOrStdout()); err != nil {
				st.logger.Error("inference failed", "err", err)
				return err
			}
			return nil
		},
	}
}

func newAnnotateCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "annotate <peptides> <fasta>",
		Short: "Report peptide-protein matches without inference",
		Args:  requireTwoFiles("annotate"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Annotate(cmd.Context(), st.logger, st.options(args[0], args[1]), cmd.OutOrStdout()); err != nil {
				st.logger.Error("annotation failed", "err", err)
				return err
			}
			return nil
		},
	}
}

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List available matcher backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, b := range matcher.Backends() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), b); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
