// Package cli wires the cobra command tree: flag and config binding,
// logger construction, and dispatch into internal/app.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"protgroup/internal/app"
	"protgroup/internal/config"
	"protgroup/internal/version"
)

// Execute runs the root command with argv and returns a process exit
// code.
func Execute(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(argv)
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

type state struct {
	v      *viper.Viper
	logger *log.Logger
	cfg    config.Config

	configFile string
	verbose    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	st := &state{v: viper.New()}

	root := &cobra.Command{
		Use:   "protgroup",
		Short: "Protein inference from peptide evidence by greedy parsimony",
		Long: `protgroup maps identified peptides onto a protein FASTA database and
computes the minimal set of protein groups explaining the evidence
(Occam's razor, with indistinguishability grouping and subsumption).`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return st.initialize(stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&st.configFile, "config", "", "config file (default: ./protgroup.yaml)")
	pf.BoolVarP(&st.verbose, "verbose", "v", false, "debug logging")
	pf.String("backend", "auto", "matcher backend: auto | reference | ahocorasick")
	pf.Int("threads", 0, "worker threads for the protein scan (0 = all CPUs)")
	pf.String("output", "text", "output format: text | json")
	pf.Bool("no-header", false, "suppress the header line in text output")
	pf.Bool("filter-tryptic", false, "keep only occurrences with tryptic boundaries")
	pf.String("cleavage", "RK", "cleavage residues for the tryptic filter")
	pf.Bool("subsume", true, "fold subset-evidence proteins into the winning group")
	pf.String("weighting", "none", "matrix weighting: none | inverse")
	pf.String("column", "peptide", "peptide column name for tabular input")
	for _, name := range []string{
		"backend", "threads", "output", "no-header",
		"filter-tryptic", "cleavage", "subsume", "weighting", "column",
	} {
		_ = st.v.BindPFlag(name, pf.Lookup(name))
	}

	root.AddCommand(newInferCmd(st))
	root.AddCommand(newAnnotateCmd(st))
	root.AddCommand(newBackendsCmd())
	return root
}

func (st *state) initialize(stderr io.Writer) error {
	st.logger = log.NewWithOptions(stderr, log.Options{Prefix: "protgroup"})
	if st.verbose {
		st.logger.SetLevel(log.DebugLevel)
	} else {
		st.logger.SetLevel(log.InfoLevel)
	}

	config.SetDefaults(st.v)
	if st.configFile != "" {
		st.v.SetConfigFile(st.configFile)
	} else {
		st.v.SetConfigName("protgroup")
		st.v.AddConfigPath(".")
	}
	cfg, err := config.Load(st.v)
	if err != nil {
		return err
	}
	st.cfg = cfg
	if used := st.v.ConfigFileUsed(); used != "" {
		st.logger.Debug("config loaded", "file", used)
	}
	return nil
}

// options assembles app.Options from the resolved config and the two
// positional inputs.
func (st *state) options(peptideFile, fastaFile string) app.Options {
	return app.Options{
		PeptideFile:   peptideFile,
		FastaFile:     fastaFile,
		Column:        st.cfg.Column,
		Backend:       st.cfg.Backend,
		FilterTryptic: st.cfg.FilterTryptic,
		Cleavage:      st.cfg.Cleavage,
		Subsume:       st.cfg.Subsume,
		Weighting:     st.cfg.Weighting,
		Threads:       st.cfg.Threads,
		Output:        st.cfg.Output,
		Header:        !st.cfg.NoHeader,
	}
}

func requireTwoFiles(use string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("%s requires exactly two arguments: <peptides> <fasta>", use)
		}
		return nil
	}
}
