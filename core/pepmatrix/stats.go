package pepmatrix

import "gonum.org/v1/gonum/floats"

// PeptidesPerProtein returns the column sums.
func (m *Matrix) PeptidesPerProtein() []float64 {
	_, nc := m.Dims()
	sums := make([]float64, nc)
	m.DoNonZero(func(_, j int, v float64) { sums[j] += v })
	return sums
}

// ProteinsPerPeptide returns the row sums.
func (m *Matrix) ProteinsPerPeptide() []float64 {
	nr, _ := m.Dims()
	sums := make([]float64, nr)
	m.DoNonZero(func(i, _ int, v float64) { sums[i] += v })
	return sums
}

// ProteotypicPeptides returns the peptides whose row sums to exactly 1,
// i.e. peptides matching a single protein on a binary matrix.
func (m *Matrix) ProteotypicPeptides() []string {
	var out []string
	for i, sum := range m.ProteinsPerPeptide() {
		if sum == 1 {
			out = append(out, m.Peptides[i])
		}
	}
	return out
}

// ProteotypicFraction returns the share of peptides that are
// proteotypic; 0 for an empty matrix.
func (m *Matrix) ProteotypicFraction() float64 {
	sums := m.ProteinsPerPeptide()
	if len(sums) == 0 {
		return 0
	}
	ones := floats.Count(func(v float64) bool { return v == 1 }, sums)
	return float64(ones) / float64(len(sums))
}

// Density returns the nonzero fraction of the matrix; 0 for an empty
// matrix.
func (m *Matrix) Density() float64 {
	nr, nc := m.Dims()
	if nr == 0 || nc == 0 {
		return 0
	}
	return float64(m.NNZ()) / float64(nr*nc)
}
