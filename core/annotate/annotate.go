// Package annotate maps identified peptides onto a protein database
// using one multi-pattern matcher pass per protein.
package annotate

import (
	"sort"

	"protgroup/core/fasta"
	"protgroup/core/matcher"
)

// Annotation is one exact peptide occurrence within a protein.
// Start/End are half-open byte offsets into the protein sequence.
type Annotation struct {
	Peptide   string
	ProteinID string
	Start     int
	End       int
}

// Length returns the peptide length of the occurrence.
func (a Annotation) Length() int { return a.End - a.Start }

// Row is the flat tabular projection of one annotation.
type Row struct {
	Peptide   string
	ProteinID string
	Start     int
	End       int
	Length    int
}

// Result holds all peptide-protein matches of one annotation run.
// Derived views are recomputed from the current match list.
type Result struct {
	Annotations []Annotation
}

// Len returns the number of matches.
func (r *Result) Len() int { return len(r.Annotations) }

// Peptides returns the sorted unique peptides present in the matches.
func (r *Result) Peptides() []string {
	return uniqueSorted(r.Annotations, func(a Annotation) string { return a.Peptide })
}

// Proteins returns the sorted unique protein ids present in the matches.
func (r *Result) Proteins() []string {
	return uniqueSorted(r.Annotations, func(a Annotation) string { return a.ProteinID })
}

// Rows returns the flat {peptide, protein_id, start, end, length}
// projection in match order.
func (r *Result) Rows() []Row {
	rows := make([]Row, len(r.Annotations))
	for i, a := range r.Annotations {
		rows[i] = Row{Peptide: a.Peptide, ProteinID: a.ProteinID, Start: a.Start, End: a.End, Length: a.Length()}
	}
	return rows
}

func uniqueSorted(anns []Annotation, key func(Annotation) string) []string {
	seen := make(map[string]struct{}, len(anns))
	var out []string
	for _, a := range anns {
		k := key(a)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// TrypticOptions configures the digestion-specificity filter.
type TrypticOptions struct {
	Cleavage          string // residues allowed immediately before a peptide
	AllowNTerm        bool   // keep peptides at the protein N-terminus
	AllowAfterInitMet bool   // keep peptides at position 1 after an initiator Met
}

// DefaultTryptic is trypsin specificity: cleave C-terminal to R/K,
// with N-terminal and initiator-Met-excision exceptions.
func DefaultTryptic() TrypticOptions {
	return TrypticOptions{Cleavage: "RK", AllowNTerm: true, AllowAfterInitMet: true}
}

// FilterTryptic returns a new Result keeping only occurrences whose
// upstream boundary matches the digestion specificity. Occurrences in
// proteins missing from db are dropped.
func (r *Result) FilterTryptic(db *fasta.Database, opts TrypticOptions) *Result {
	var kept []Annotation
	for _, a := range r.Annotations {
		seq, ok := db.Seq[a.ProteinID]
		if !ok || seq == "" {
			continue
		}
		switch {
		case a.Start == 0:
			if opts.AllowNTerm {
				kept = append(kept, a)
			}
		case a.Start == 1 && opts.AllowAfterInitMet && seq[0] == 'M':
			kept = append(kept, a)
		case contains(opts.Cleavage, seq[a.Start-1]):
			kept = append(kept, a)
		}
	}
	return &Result{Annotations: kept}
}

func contains(set string, b byte) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == b {
			return true
		}
	}
	return false
}

// Options configures an annotation run.
type Options struct {
	Backend       string // matcher backend ("" = auto)
	FilterTryptic bool
	Tryptic       TrypticOptions
}

// DefaultOptions uses auto backend selection and no tryptic filter.
func DefaultOptions() Options {
	return Options{Backend: matcher.BackendAuto, Tryptic: DefaultTryptic()}
}

// Dedupe returns the sorted unique peptides of in. The sort makes
// matcher construction and downstream output independent of input
// order.
func Dedupe(peptides []string) []string {
	seen := make(map[string]struct{}, len(peptides))
	var out []string
	for _, p := range peptides {
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// ScanProtein runs the matcher over one protein and returns the
// occurrences sorted by (start, end, peptide) so that output order
// does not depend on the backend.
func ScanProtein(m matcher.Matcher, proteinID, seq string) []Annotation {
	hits := m.FindAll(seq)
	if len(hits) == 0 {
		return nil
	}
	anns := make([]Annotation, len(hits))
	for i, h := range hits {
		anns[i] = Annotation{Peptide: h.Pattern, ProteinID: proteinID, Start: h.Start, End: h.End}
	}
	sort.Slice(anns, func(i, j int) bool {
		if anns[i].Start != anns[j].Start {
			return anns[i].Start < anns[j].Start
		}
		if anns[i].End != anns[j].End {
			return anns[i].End < anns[j].End
		}
		return anns[i].Peptide < anns[j].Peptide
	})
	return anns
}

// Annotate finds every occurrence of every peptide across db, scanning
// proteins in database order. An empty peptide collection yields an
// empty result without constructing a matcher.
func Annotate(peptides []string, db *fasta.Database, opts Options) (*Result, error) {
	deduped := Dedupe(peptides)
	if len(deduped) == 0 || db == nil || db.Len() == 0 {
		return &Result{}, nil
	}

	m, err := matcher.New(deduped, matcher.Options{Backend: opts.Backend, CaseSensitive: true})
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, id := range db.IDs {
		res.Annotations = append(res.Annotations, ScanProtein(m, id, db.Seq[id])...)
	}

	if opts.FilterTryptic {
		res = res.FilterTryptic(db, opts.Tryptic)
	}
	return res, nil
}
