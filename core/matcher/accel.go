//go:build !purego

package matcher

import (
	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Accelerated backend wrapping the aho-corasick port. Built out with
// the purego tag, in which case "auto" falls back to the reference
// backend and an explicit "ahocorasick" request errors.

type accelMatcher struct {
	ac       ahocorasick.AhoCorasick
	patterns []string // original case
}

func init() { register(BackendAccel, newAccel) }

func newAccel(patterns []string, caseSensitive bool) (Matcher, error) {
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: !caseSensitive,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.StandardMatch,
		DFA:                  true,
	})
	return &accelMatcher{ac: builder.Build(patterns), patterns: patterns}, nil
}

func (m *accelMatcher) FindAll(text string) []Match {
	if len(m.patterns) == 0 || text == "" {
		return nil
	}
	var out []Match
	iter := m.ac.IterOverlapping(text)
	for next := iter.Next(); next != nil; next = iter.Next() {
		out = append(out, Match{
			Pattern: m.patterns[next.Pattern()],
			Start:   next.Start(),
			End:     next.End(),
		})
	}
	return out
}
