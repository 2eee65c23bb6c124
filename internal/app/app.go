// Package app orchestrates the inference pipeline: load inputs, run
// the annotator, build the matrix, run greedy parsimony, and hand the
// tabular projections to a writer.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"protgroup/core/annotate"
	"protgroup/core/fasta"
	"protgroup/core/greedy"
	"protgroup/core/pepmatrix"
	"protgroup/internal/peplist"
	"protgroup/internal/pipeline"
	"protgroup/internal/writers"
)

// Options collects everything one run needs. Field semantics follow
// config.Config; PeptideFile/FastaFile come from positionals.
type Options struct {
	PeptideFile string
	FastaFile   string
	Column      string

	Backend       string
	FilterTryptic bool
	Cleavage      string
	Subsume       bool
	Weighting     string
	Threads       int

	Output string
	Header bool
}

func loadAndAnnotate(ctx context.Context, logger *log.Logger, opts Options) ([]string, *annotate.Result, error) {
	peptides, err := peplist.ReadPath(opts.PeptideFile, opts.Column)
	if err != nil {
		return nil, nil, fmt.Errorf("read peptides: %w", err)
	}
	logger.Debug("peptides loaded", "n", len(peptides), "file", opts.PeptideFile)

	db, err := fasta.ReadPath(opts.FastaFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read fasta: %w", err)
	}
	logger.Debug("database loaded", "proteins", db.Len(), "file", opts.FastaFile)

	annOpts := annotate.Options{
		Backend:       opts.Backend,
		FilterTryptic: opts.FilterTryptic,
		Tryptic:       annotate.DefaultTryptic(),
	}
	if opts.Cleavage != "" {
		annOpts.Tryptic.Cleavage = opts.Cleavage
	}

	res, err := pipeline.Annotate(ctx, peptides, db, annOpts, opts.Threads)
	if err != nil {
		return nil, nil, fmt.Errorf("annotate: %w", err)
	}
	logger.Info("annotation done",
		"matches", res.Len(),
		"peptides", len(res.Peptides()),
		"proteins", len(res.Proteins()))
	return peptides, res, nil
}

// Annotate runs the matching stage only and writes the match table.
func Annotate(ctx context.Context, logger *log.Logger, opts Options, out io.Writer) error {
	_, res, err := loadAndAnnotate(ctx, logger, opts)
	if err != nil {
		return err
	}
	return writers.WriteMatches(opts.Output, out, res.Rows(), opts.Header)
}

// Infer runs the full pipeline and writes the protein-group table.
// Input peptides that no protein explains are reported as a warning;
// deciding whether that is fatal stays with the caller of the report.
func Infer(ctx context.Context, logger *log.Logger, opts Options, out io.Writer) error {
	peptides, res, err := loadAndAnnotate(ctx, logger, opts)
	if err != nil {
		return err
	}

	weighting, err := pepmatrix.ParseWeighting(opts.Weighting)
	if err != nil {
		return err
	}
	m := pepmatrix.FromAnnotations(res, weighting)
	nPep, nProt := m.Dims()
	logger.Debug("matrix built", "peptides", nPep, "proteins", nProt, "density", m.Density())

	result := greedy.Parsimony(m, greedy.Options{Subsume: opts.Subsume})
	logger.Info("parsimony done",
		"groups", result.NGroups(),
		"proteins", result.NProteins(),
		"peptides", result.NPeptides())

	if missing := result.Unexplained(peptides); len(missing) > 0 {
		logger.Warn("peptides with no matching protein; check that the peptide source and FASTA match",
			"n", len(missing))
	}

	return writers.WriteGroups(opts.Output, out, result.Rows(), opts.Header)
}
