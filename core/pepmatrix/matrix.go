// Package pepmatrix builds the sparse peptide×protein incidence matrix
// that drives parsimony inference. Rows are sorted unique peptides,
// columns sorted unique proteins; label lists stay index-aligned with
// the matrix through every subsetting operation.
package pepmatrix

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"protgroup/core/annotate"
)

// Weighting selects the cell value scheme.
type Weighting int

const (
	// Binary marks presence with 1 regardless of occurrence count.
	Binary Weighting = iota
	// Inverse scales each nonzero row to sum 1.0 (weight 1/n matching
	// proteins per peptide).
	Inverse
)

// ParseWeighting maps the config strings "none"/"" and "inverse".
func ParseWeighting(s string) (Weighting, error) {
	switch s {
	case "", "none", "binary":
		return Binary, nil
	case "inverse":
		return Inverse, nil
	}
	return Binary, fmt.Errorf("unknown weighting %q (want none or inverse)", s)
}

// Matrix is a sparse peptide×protein matrix with aligned label lists.
type Matrix struct {
	csr      *sparse.CSR // nil iff either dimension is zero
	Peptides []string    // row labels, sorted lexicographic at build
	Proteins []string    // column labels, sorted lexicographic at build
}

// Dims returns (n_peptides, n_proteins).
func (m *Matrix) Dims() (int, int) { return len(m.Peptides), len(m.Proteins) }

// NNZ returns the number of stored nonzero cells.
func (m *Matrix) NNZ() int {
	if m.csr == nil {
		return 0
	}
	return m.csr.NNZ()
}

// At returns the cell value for (peptide row i, protein column j).
func (m *Matrix) At(i, j int) float64 {
	if m.csr == nil {
		return 0
	}
	return m.csr.At(i, j)
}

// DoNonZero calls fn for every stored nonzero cell.
func (m *Matrix) DoNonZero(fn func(i, j int, v float64)) {
	if m.csr == nil {
		return
	}
	m.csr.DoNonZero(fn)
}

// FromAnnotations builds the matrix from an annotation result.
// Multiple occurrences of one peptide in one protein collapse into a
// single presence cell.
func FromAnnotations(res *annotate.Result, w Weighting) *Matrix {
	return build(res.Peptides(), res.Proteins(), res.Annotations, w)
}

// FromRows builds the matrix from a flat peptide/protein table, e.g.
// report rows joined outside this package. Positions are ignored.
func FromRows(rows []annotate.Row, w Weighting) *Matrix {
	anns := make([]annotate.Annotation, len(rows))
	for i, r := range rows {
		anns[i] = annotate.Annotation{Peptide: r.Peptide, ProteinID: r.ProteinID, Start: r.Start, End: r.End}
	}
	res := &annotate.Result{Annotations: anns}
	return build(res.Peptides(), res.Proteins(), anns, w)
}

func build(peptides, proteins []string, anns []annotate.Annotation, w Weighting) *Matrix {
	m := &Matrix{Peptides: peptides, Proteins: proteins}
	if len(peptides) == 0 || len(proteins) == 0 {
		return m
	}

	pepIdx := make(map[string]int, len(peptides))
	for i, p := range peptides {
		pepIdx[p] = i
	}
	protIdx := make(map[string]int, len(proteins))
	for j, p := range proteins {
		protIdx[p] = j
	}

	// Presence cells, deduplicated across repeated occurrences.
	type cell struct{ i, j int }
	cells := make(map[cell]struct{}, len(anns))
	rowCount := make([]int, len(peptides))
	for _, a := range anns {
		c := cell{pepIdx[a.Peptide], protIdx[a.ProteinID]}
		if _, dup := cells[c]; dup {
			continue
		}
		cells[c] = struct{}{}
		rowCount[c.i]++
	}

	dok := sparse.NewDOK(len(peptides), len(proteins))
	for c := range cells {
		v := 1.0
		if w == Inverse && rowCount[c.i] > 0 { // zero rows stay zero
			v = 1.0 / float64(rowCount[c.i])
		}
		dok.Set(c.i, c.j, v)
	}
	m.csr = dok.ToCSR()
	return m
}
