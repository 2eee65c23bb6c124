// Package greedy computes a minimal, evidence-consistent set of
// protein groups explaining a peptide×protein matrix (Occam's razor
// set cover with indistinguishability grouping and subsumption).
package greedy

import (
	"sort"
	"strconv"
	"strings"

	"protgroup/core/pepmatrix"
)

// Options configures the parsimony loop.
type Options struct {
	// Subsume folds proteins whose remaining evidence is a subset of a
	// winning group's peptide set into that group.
	Subsume bool
}

// DefaultOptions enables subsumption.
func DefaultOptions() Options { return Options{Subsume: true} }

// Group is a set of proteins indistinguishable by current evidence,
// with the peptides assigned to it. Both lists are sorted.
type Group struct {
	Proteins []string
	Peptides []string
}

// ID is the semicolon-joined sorted protein id list, the compatibility
// contract for downstream tabular reports.
func (g Group) ID() string { return strings.Join(g.Proteins, ";") }

// NProteins returns the group's protein count.
func (g Group) NProteins() int { return len(g.Proteins) }

// NPeptides returns the group's peptide count.
func (g Group) NPeptides() int { return len(g.Peptides) }

// Row is the flat projection of one peptide assignment.
type Row struct {
	Peptide          string
	ProteinGroup     string
	NProteinsInGroup int
}

// Result is an ordered list of groups, strongest evidence first.
type Result struct {
	Groups []Group
}

// NGroups returns the number of groups.
func (r *Result) NGroups() int { return len(r.Groups) }

// NProteins returns the total protein count across groups, without
// deduplication.
func (r *Result) NProteins() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Proteins)
	}
	return n
}

// NPeptides returns the number of distinct assigned peptides.
func (r *Result) NPeptides() int {
	seen := make(map[string]struct{})
	for _, g := range r.Groups {
		for _, p := range g.Peptides {
			seen[p] = struct{}{}
		}
	}
	return len(seen)
}

// PeptideMap maps each assigned peptide to its group id.
func (r *Result) PeptideMap() map[string]string {
	out := make(map[string]string)
	for _, g := range r.Groups {
		id := g.ID()
		for _, p := range g.Peptides {
			out[p] = id
		}
	}
	return out
}

// Rows returns {peptide, protein_group, n_proteins_in_group} rows in
// group selection order.
func (r *Result) Rows() []Row {
	var rows []Row
	for _, g := range r.Groups {
		id := g.ID()
		for _, p := range g.Peptides {
			rows = append(rows, Row{Peptide: p, ProteinGroup: id, NProteinsInGroup: len(g.Proteins)})
		}
	}
	return rows
}

// Unexplained returns the sorted unique members of input that no group
// covers. A nonempty return usually means the peptide source and the
// FASTA database do not match; callers decide how fatal that is.
func (r *Result) Unexplained(input []string) []string {
	covered := make(map[string]struct{})
	for _, g := range r.Groups {
		for _, p := range g.Peptides {
			covered[p] = struct{}{}
		}
	}
	seen := make(map[string]struct{})
	var out []string
	for _, p := range input {
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		if _, ok := covered[p]; !ok {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// Parsimony runs the greedy cover over m. Groups are emitted in
// selection order; peptides matching no protein are omitted from the
// result. Output is deterministic for identical inputs.
func Parsimony(m *pepmatrix.Matrix, opts Options) *Result {
	nPep, nProt := m.Dims()
	res := &Result{}
	if nPep == 0 || nProt == 0 {
		return res
	}

	// Incidence lists from the sparse structure. Column labels are
	// sorted lexicographically, so ascending protein index order is
	// also lexicographic id order; the tie-break below relies on it.
	protPeps := make([][]int, nProt)
	pepProts := make([][]int, nPep)
	m.DoNonZero(func(i, j int, v float64) {
		if v == 0 {
			return
		}
		protPeps[j] = append(protPeps[j], i)
		pepProts[i] = append(pepProts[i], j)
	})
	for j := range protPeps {
		sort.Ints(protPeps[j])
	}

	activePep := make([]bool, nPep)
	for i := range activePep {
		activePep[i] = true
	}
	activeProt := make([]bool, nProt)
	for j := range activeProt {
		activeProt[j] = true
	}
	counts := make([]int, nProt) // active peptides covered, per protein
	for j := range counts {
		counts[j] = len(protPeps[j])
	}

	for {
		// 1–2: max active coverage; 0 means the rest is unexplainable.
		max := 0
		for j := 0; j < nProt; j++ {
			if activeProt[j] && counts[j] > max {
				max = counts[j]
			}
		}
		if max == 0 {
			break
		}

		// 3–4: partition the tied candidates by their exact signature
		// over active peptides. Ascending index scan keeps partition
		// discovery order deterministic.
		type partition struct {
			members []int
			sig     []int
		}
		var parts []partition
		byKey := make(map[string]int)
		for j := 0; j < nProt; j++ {
			if !activeProt[j] || counts[j] != max {
				continue
			}
			sig := make([]int, 0, max)
			for _, i := range protPeps[j] {
				if activePep[i] {
					sig = append(sig, i)
				}
			}
			key := sigKey(sig)
			if k, ok := byKey[key]; ok {
				parts[k].members = append(parts[k].members, j)
				continue
			}
			byKey[key] = len(parts)
			parts = append(parts, partition{members: []int{j}, sig: sig})
		}

		// 5: largest partition wins; equal sizes break on the
		// lexicographically smallest member id (= smallest index).
		best := 0
		for k := 1; k < len(parts); k++ {
			switch {
			case len(parts[k].members) > len(parts[best].members):
				best = k
			case len(parts[k].members) == len(parts[best].members) &&
				parts[k].members[0] < parts[best].members[0]:
				best = k
			}
		}
		winners := parts[best].members
		covered := parts[best].sig

		coveredSet := make(map[int]struct{}, len(covered))
		for _, i := range covered {
			coveredSet[i] = struct{}{}
		}
		inGroup := make(map[int]struct{}, len(winners))
		for _, j := range winners {
			inGroup[j] = struct{}{}
		}

		// 7: fold in proteins whose remaining evidence is a subset of
		// the winning peptide set. Only proteins sharing at least one
		// covered peptide qualify; evidence-less proteins stay active
		// until the M==0 exit.
		if opts.Subsume {
			var shared []int
			seen := make(map[int]struct{})
			for _, i := range covered {
				for _, j := range pepProts[i] {
					if !activeProt[j] {
						continue
					}
					if _, dup := seen[j]; dup {
						continue
					}
					seen[j] = struct{}{}
					if _, won := inGroup[j]; !won {
						shared = append(shared, j)
					}
				}
			}
			sort.Ints(shared)
			for _, j := range shared {
				subset := true
				for _, i := range protPeps[j] {
					if !activePep[i] {
						continue
					}
					if _, ok := coveredSet[i]; !ok {
						subset = false
						break
					}
				}
				if subset {
					inGroup[j] = struct{}{}
				}
			}
		}

		// 6: emit the group.
		g := Group{}
		for j := range inGroup {
			g.Proteins = append(g.Proteins, m.Proteins[j])
		}
		sort.Strings(g.Proteins)
		for _, i := range covered {
			g.Peptides = append(g.Peptides, m.Peptides[i])
		}
		sort.Strings(g.Peptides)
		res.Groups = append(res.Groups, g)

		// 8: retire peptides and proteins, decrement survivors.
		for j := range inGroup {
			activeProt[j] = false
		}
		for _, i := range covered {
			activePep[i] = false
			for _, j := range pepProts[i] {
				if activeProt[j] {
					counts[j]--
				}
			}
		}
	}
	return res
}

func sigKey(sig []int) string {
	var b strings.Builder
	for _, i := range sig {
		b.WriteString(strconv.Itoa(i))
		b.WriteByte(',')
	}
	return b.String()
}
