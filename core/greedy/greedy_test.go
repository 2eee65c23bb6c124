package greedy

import (
	"reflect"
	"testing"

	"protgroup/core/annotate"
	"protgroup/core/pepmatrix"
)

// matrixOf builds a binary matrix from protein -> peptides evidence.
func matrixOf(t *testing.T, evidence map[string][]string) *pepmatrix.Matrix {
	t.Helper()
	var anns []annotate.Annotation
	for prot, peps := range evidence {
		for _, pep := range peps {
			anns = append(anns, annotate.Annotation{Peptide: pep, ProteinID: prot, End: len(pep)})
		}
	}
	return pepmatrix.FromAnnotations(&annotate.Result{Annotations: anns}, pepmatrix.Binary)
}

func TestEmptyInput(t *testing.T) {
	res := Parsimony(matrixOf(t, nil), DefaultOptions())
	if res.NGroups() != 0 || res.NProteins() != 0 || res.NPeptides() != 0 {
		t.Fatalf("empty matrix produced groups: %+v", res.Groups)
	}
}

// Proteins with identical evidence collapse into one group.
func TestIndistinguishableProteins(t *testing.T) {
	m := matrixOf(t, map[string][]string{
		"A": {"PEP1", "PEP2"},
		"B": {"PEP1", "PEP2"},
	})
	res := Parsimony(m, DefaultOptions())
	if res.NGroups() != 1 {
		t.Fatalf("got %d groups, want 1", res.NGroups())
	}
	g := res.Groups[0]
	if !reflect.DeepEqual(g.Proteins, []string{"A", "B"}) {
		t.Errorf("proteins = %v", g.Proteins)
	}
	if !reflect.DeepEqual(g.Peptides, []string{"PEP1", "PEP2"}) {
		t.Errorf("peptides = %v", g.Peptides)
	}
	if res.NProteins() != 2 || res.NPeptides() != 2 {
		t.Errorf("counts: proteins=%d peptides=%d", res.NProteins(), res.NPeptides())
	}
}

// A covers {p1,p2,p3}; B covers {p1,p2}. Subsumption folds B into A's
// group; without it B vanishes with no group of its own.
func TestSubsumption(t *testing.T) {
	evidence := map[string][]string{
		"A": {"p1", "p2", "p3"},
		"B": {"p1", "p2"},
	}

	res := Parsimony(matrixOf(t, evidence), DefaultOptions())
	if res.NGroups() != 1 {
		t.Fatalf("subsume on: got %d groups, want 1", res.NGroups())
	}
	g := res.Groups[0]
	if !reflect.DeepEqual(g.Proteins, []string{"A", "B"}) {
		t.Errorf("subsume on: proteins = %v", g.Proteins)
	}
	if !reflect.DeepEqual(g.Peptides, []string{"p1", "p2", "p3"}) {
		t.Errorf("subsume on: peptides = %v", g.Peptides)
	}

	res = Parsimony(matrixOf(t, evidence), Options{Subsume: false})
	if res.NGroups() != 1 {
		t.Fatalf("subsume off: got %d groups, want 1", res.NGroups())
	}
	if !reflect.DeepEqual(res.Groups[0].Proteins, []string{"A"}) {
		t.Errorf("subsume off: proteins = %v", res.Groups[0].Proteins)
	}
}

// Most evidence wins; shared peptides go to the first selected group.
func TestSharedPeptideAssignment(t *testing.T) {
	m := matrixOf(t, map[string][]string{
		"BIG":   {"p1", "p2", "p3"},
		"SMALL": {"p3", "p4"},
	})
	res := Parsimony(m, DefaultOptions())
	if res.NGroups() != 2 {
		t.Fatalf("got %d groups: %+v", res.NGroups(), res.Groups)
	}
	if !reflect.DeepEqual(res.Groups[0].Proteins, []string{"BIG"}) {
		t.Errorf("selection order wrong: %+v", res.Groups)
	}
	// p3 belongs to BIG's group; SMALL keeps only p4.
	if !reflect.DeepEqual(res.Groups[1].Peptides, []string{"p4"}) {
		t.Errorf("shared peptide not retired: %+v", res.Groups[1])
	}
}

// Peptides matching no protein are silently excluded from the cover.
func TestUnexplainablePeptideOmitted(t *testing.T) {
	var anns []annotate.Annotation
	for _, pep := range []string{"p1", "p2"} {
		anns = append(anns, annotate.Annotation{Peptide: pep, ProteinID: "A", End: len(pep)})
	}
	// ORPHAN appears as a row with no matches (zero row via subset).
	anns = append(anns, annotate.Annotation{Peptide: "ORPHAN", ProteinID: "GONE", End: 6})
	m := pepmatrix.FromAnnotations(&annotate.Result{Annotations: anns}, pepmatrix.Binary)
	m = m.SubsetProteins([]int{0}) // keep A only; ORPHAN row goes all-zero

	res := Parsimony(m, DefaultOptions())
	if res.NGroups() != 1 || res.NPeptides() != 2 {
		t.Fatalf("got %+v", res.Groups)
	}
	if _, ok := res.PeptideMap()["ORPHAN"]; ok {
		t.Error("orphan peptide assigned to a group")
	}
	if got := res.Unexplained([]string{"p1", "p2", "ORPHAN"}); !reflect.DeepEqual(got, []string{"ORPHAN"}) {
		t.Errorf("Unexplained = %v", got)
	}
}

// Group peptide sets are pairwise disjoint (a partition of explainable
// peptides).
func TestPartitionInvariant(t *testing.T) {
	m := matrixOf(t, map[string][]string{
		"A": {"p1", "p2", "p3"},
		"B": {"p2", "p3", "p4"},
		"C": {"p4", "p5"},
		"D": {"p5", "p1"},
	})
	res := Parsimony(m, DefaultOptions())
	seen := make(map[string]string)
	for _, g := range res.Groups {
		for _, p := range g.Peptides {
			if prev, dup := seen[p]; dup {
				t.Fatalf("peptide %s in groups %s and %s", p, prev, g.ID())
			}
			seen[p] = g.ID()
		}
	}
	if len(seen) != 5 {
		t.Errorf("covered %d peptides, want 5", len(seen))
	}
}

// Equal-size partitions break on the lexicographically smallest
// protein id.
func TestTieBreakDeterministic(t *testing.T) {
	m := matrixOf(t, map[string][]string{
		"ZZ": {"p1", "p2"},
		"AA": {"p3", "p4"},
	})
	res := Parsimony(m, DefaultOptions())
	if res.NGroups() != 2 {
		t.Fatalf("got %d groups", res.NGroups())
	}
	if !reflect.DeepEqual(res.Groups[0].Proteins, []string{"AA"}) {
		t.Errorf("tie-break picked %v first", res.Groups[0].Proteins)
	}
}

// Identical inputs always produce identical results.
func TestDeterminism(t *testing.T) {
	evidence := map[string][]string{
		"A": {"p1", "p2", "p3"},
		"B": {"p1", "p2", "p3"},
		"C": {"p2", "p4", "p5"},
		"D": {"p4", "p5"},
		"E": {"p6"},
	}
	first := Parsimony(matrixOf(t, evidence), DefaultOptions())
	for run := 0; run < 20; run++ {
		again := Parsimony(matrixOf(t, evidence), DefaultOptions())
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\nfirst: %+v\nagain: %+v", run, first.Groups, again.Groups)
		}
	}
}

// A fully redundant database yields exactly one group with all
// proteins.
func TestAllIndistinguishable(t *testing.T) {
	m := matrixOf(t, map[string][]string{
		"A": {"p1", "p2"},
		"B": {"p1", "p2"},
		"C": {"p1", "p2"},
	})
	res := Parsimony(m, DefaultOptions())
	if res.NGroups() != 1 {
		t.Fatalf("got %d groups", res.NGroups())
	}
	if !reflect.DeepEqual(res.Groups[0].Proteins, []string{"A", "B", "C"}) {
		t.Errorf("proteins = %v", res.Groups[0].Proteins)
	}
}

func TestGroupIDAndRows(t *testing.T) {
	m := matrixOf(t, map[string][]string{
		"B2": {"p1"},
		"A1": {"p1"},
	})
	res := Parsimony(m, DefaultOptions())
	if res.NGroups() != 1 {
		t.Fatalf("got %+v", res.Groups)
	}
	if id := res.Groups[0].ID(); id != "A1;B2" {
		t.Errorf("group id = %q, want sorted semicolon join", id)
	}
	rows := res.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows = %+v", rows)
	}
	want := Row{Peptide: "p1", ProteinGroup: "A1;B2", NProteinsInGroup: 2}
	if rows[0] != want {
		t.Errorf("row = %+v, want %+v", rows[0], want)
	}
	if pm := res.PeptideMap(); pm["p1"] != "A1;B2" {
		t.Errorf("peptide map = %v", pm)
	}
}

// Subsumption must not extend a group's peptide set.
func TestSubsumptionKeepsPeptideSet(t *testing.T) {
	m := matrixOf(t, map[string][]string{
		"A": {"p1", "p2", "p3"},
		"B": {"p2"},
		"C": {"p3", "p4"},
	})
	res := Parsimony(m, DefaultOptions())
	if res.NGroups() != 2 {
		t.Fatalf("got %+v", res.Groups)
	}
	g := res.Groups[0]
	if !reflect.DeepEqual(g.Proteins, []string{"A", "B"}) {
		t.Errorf("first group proteins = %v", g.Proteins)
	}
	if !reflect.DeepEqual(g.Peptides, []string{"p1", "p2", "p3"}) {
		t.Errorf("first group peptides = %v", g.Peptides)
	}
	// C is not subsumed (p4 uncovered) and survives as its own group.
	if !reflect.DeepEqual(res.Groups[1].Proteins, []string{"C"}) {
		t.Errorf("second group = %+v", res.Groups[1])
	}
	if !reflect.DeepEqual(res.Groups[1].Peptides, []string{"p4"}) {
		t.Errorf("second group peptides = %v", res.Groups[1].Peptides)
	}
}
