// Package peplist loads identified peptide sequences from a plain
// list (one peptide per line) or from a TSV with a peptide column.
package peplist

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Read parses peptides from r. If the first line contains a tab, the
// input is treated as TSV and column names the field to extract;
// otherwise every non-empty, non-comment line is one peptide.
// Duplicates are preserved (the annotator deduplicates).
func Read(r io.Reader, column string) ([]string, error) {
	sc := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, 16*1024*1024)

	var (
		peptides []string
		colIdx   = -1
		first    = true
		tabular  bool
	)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if first {
			first = false
			tabular = strings.ContainsRune(line, '\t')
			if tabular {
				for i, name := range strings.Split(line, "\t") {
					if strings.EqualFold(name, column) {
						colIdx = i
						break
					}
				}
				if colIdx < 0 {
					return nil, fmt.Errorf("peptide column %q not found in header", column)
				}
				continue
			}
		}
		if tabular {
			fields := strings.Split(line, "\t")
			if colIdx < len(fields) && fields[colIdx] != "" {
				peptides = append(peptides, fields[colIdx])
			}
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		peptides = append(peptides, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return peptides, nil
}

// ReadPath reads peptides from a file; gzip is detected by suffix and
// "-" means stdin.
func ReadPath(path, column string) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = fh.Close() }()
		r = fh
		if strings.HasSuffix(path, ".gz") {
			gr, err := gzip.NewReader(fh)
			if err != nil {
				return nil, err
			}
			defer func() { _ = gr.Close() }()
			r = gr
		}
	}
	return Read(r, column)
}
