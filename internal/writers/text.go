package writers

import (
	"bufio"
	"fmt"
	"io"

	"protgroup/core/annotate"
	"protgroup/core/greedy"
)

func init() {
	RegisterMatch("text", writeMatchText)
	RegisterGroup("text", writeGroupText)
}

// writeMatchText prints one TSV line per match.
func writeMatchText(w io.Writer, rows []annotate.Row, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		if _, err := fmt.Fprintln(bw, "peptide\tprotein_id\tstart\tend\tlength"); err != nil {
			return err
		}
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%d\t%d\t%d\n",
			r.Peptide, r.ProteinID, r.Start, r.End, r.Length); err != nil {
			return err
		}
	}
	return flush(bw)
}

// writeGroupText prints one TSV line per peptide assignment.
func writeGroupText(w io.Writer, rows []greedy.Row, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		if _, err := fmt.Fprintln(bw, "peptide\tprotein_group\tn_proteins_in_group"); err != nil {
			return err
		}
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%d\n",
			r.Peptide, r.ProteinGroup, r.NProteinsInGroup); err != nil {
			return err
		}
	}
	return flush(bw)
}

func flush(bw *bufio.Writer) error {
	if err := bw.Flush(); err != nil && !IsBrokenPipe(err) {
		return err
	}
	return nil
}
