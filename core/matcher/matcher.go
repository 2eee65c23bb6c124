// Package matcher provides multi-pattern exact string matching over a
// fixed pattern set, with pluggable backends selected at construction
// time.
package matcher

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Backend names accepted by Options.Backend.
const (
	BackendAuto      = "auto"
	BackendReference = "reference"
	BackendAccel     = "ahocorasick"
)

// Match is one exact occurrence of a pattern in the scanned text.
// Start/End are byte offsets, half-open [Start, End).
type Match struct {
	Pattern string
	Start   int
	End     int
}

// Matcher scans text for every occurrence of its pattern set,
// overlapping occurrences included.
type Matcher interface {
	FindAll(text string) []Match
}

// Options selects and configures a backend.
type Options struct {
	Backend       string // "auto" (default), "reference", "ahocorasick"
	CaseSensitive bool
}

// ErrBackendUnavailable is returned when an explicitly requested
// backend is not registered. "auto" never returns it.
var ErrBackendUnavailable = errors.New("matcher backend unavailable")

type constructor func(patterns []string, caseSensitive bool) (Matcher, error)

// Backend registry (name → constructor). The reference backend always
// registers; the accelerated one registers unless built out.
var backends = map[string]constructor{}

func register(name string, fn constructor) { backends[name] = fn }

// Backends returns the registered backend names, sorted.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for n := range backends {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New builds a matcher over patterns. Callers are expected to have
// deduplicated patterns already. With Backend "auto" (or empty) the
// accelerated backend is preferred and the reference backend is the
// silent fallback; an explicit backend name fails loudly if it cannot
// be constructed.
func New(patterns []string, opts Options) (Matcher, error) {
	name := opts.Backend
	if name == "" {
		name = BackendAuto
	}
	if name == BackendAuto {
		if fn, ok := backends[BackendAccel]; ok {
			if m, err := fn(patterns, opts.CaseSensitive); err == nil {
				return m, nil
			}
		}
		return backends[BackendReference](patterns, opts.CaseSensitive)
	}
	fn, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %s)",
			ErrBackendUnavailable, name, strings.Join(Backends(), ", "))
	}
	m, err := fn(patterns, opts.CaseSensitive)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBackendUnavailable, name, err)
	}
	return m, nil
}
