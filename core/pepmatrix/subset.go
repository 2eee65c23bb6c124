package pepmatrix

import "github.com/james-bowman/sparse"

// SubsetPeptides returns a new matrix keeping only the given peptide
// rows, in the given order; row labels follow the retained rows.
func (m *Matrix) SubsetPeptides(rows []int) *Matrix {
	keepPeps := make([]string, len(rows))
	rowMap := make(map[int]int, len(rows)) // old row -> new row
	for newI, oldI := range rows {
		keepPeps[newI] = m.Peptides[oldI]
		rowMap[oldI] = newI
	}
	out := &Matrix{Peptides: keepPeps, Proteins: append([]string(nil), m.Proteins...)}
	if len(keepPeps) == 0 || len(m.Proteins) == 0 {
		return out
	}
	dok := sparse.NewDOK(len(keepPeps), len(m.Proteins))
	m.DoNonZero(func(i, j int, v float64) {
		if newI, ok := rowMap[i]; ok {
			dok.Set(newI, j, v)
		}
	})
	out.csr = dok.ToCSR()
	return out
}

// SubsetProteins returns a new matrix keeping only the given protein
// columns; column labels follow the retained columns.
func (m *Matrix) SubsetProteins(cols []int) *Matrix {
	keepProts := make([]string, len(cols))
	colMap := make(map[int]int, len(cols))
	for newJ, oldJ := range cols {
		keepProts[newJ] = m.Proteins[oldJ]
		colMap[oldJ] = newJ
	}
	out := &Matrix{Peptides: append([]string(nil), m.Peptides...), Proteins: keepProts}
	if len(m.Peptides) == 0 || len(keepProts) == 0 {
		return out
	}
	dok := sparse.NewDOK(len(m.Peptides), len(keepProts))
	m.DoNonZero(func(i, j int, v float64) {
		if newJ, ok := colMap[j]; ok {
			dok.Set(i, newJ, v)
		}
	})
	out.csr = dok.ToCSR()
	return out
}

// RemoveZeroRows drops peptides with no protein matches.
func (m *Matrix) RemoveZeroRows() *Matrix {
	var keep []int
	for i, sum := range m.ProteinsPerPeptide() {
		if sum > 0 {
			keep = append(keep, i)
		}
	}
	return m.SubsetPeptides(keep)
}

// RemoveZeroCols drops proteins with no peptide matches.
func (m *Matrix) RemoveZeroCols() *Matrix {
	var keep []int
	for j, sum := range m.PeptidesPerProtein() {
		if sum > 0 {
			keep = append(keep, j)
		}
	}
	return m.SubsetProteins(keep)
}
