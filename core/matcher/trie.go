package matcher

/*
Reference Aho–Corasick backend.

- build: trie over all pattern bytes, BFS to set failure links and
  propagate outputs.
- FindAll: one pass over the text; every state's output list yields a
  match ending at the current byte, so overlapping occurrences are all
  reported.
*/

// node is one state in the automaton.
type node struct {
	next [256]int // 0 => absent (root is state 0)
	fail int
	out  []int // pattern indexes that end at this state
}

type trieMatcher struct {
	nodes    []node
	patterns []string // original case, reported in matches
	folded   []string // lower-cased when case-insensitive, else == patterns
	fold     bool
}

func init() { register(BackendReference, newTrie) }

func newTrie(patterns []string, caseSensitive bool) (Matcher, error) {
	m := &trieMatcher{
		patterns: patterns,
		folded:   patterns,
		fold:     !caseSensitive,
	}
	if m.fold {
		m.folded = make([]string, len(patterns))
		for i, p := range patterns {
			m.folded[i] = foldASCII(p)
		}
	}

	// 1) Build trie edges
	m.nodes = make([]node, 1) // state 0 = root
	for i, p := range m.folded {
		cur := 0
		for j := 0; j < len(p); j++ {
			b := p[j]
			if m.nodes[cur].next[b] == 0 {
				m.nodes = append(m.nodes, node{})
				m.nodes[cur].next[b] = len(m.nodes) - 1
			}
			cur = m.nodes[cur].next[b]
		}
		m.nodes[cur].out = append(m.nodes[cur].out, i)
	}

	// 2) BFS to set fail links and propagate outputs
	queue := make([]int, 0, len(m.nodes))
	for c := 0; c < 256; c++ {
		if child := m.nodes[0].next[c]; child != 0 {
			m.nodes[child].fail = 0
			queue = append(queue, child)
		}
	}
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		for c := 0; c < 256; c++ {
			s := m.nodes[r].next[c]
			if s == 0 {
				continue
			}
			queue = append(queue, s)
			f := m.nodes[r].fail
			for f > 0 && m.nodes[f].next[c] == 0 {
				f = m.nodes[f].fail
			}
			if m.nodes[f].next[c] != 0 {
				f = m.nodes[f].next[c]
			}
			m.nodes[s].fail = f
			if len(m.nodes[f].out) > 0 {
				m.nodes[s].out = append(m.nodes[s].out, m.nodes[f].out...)
			}
		}
	}
	return m, nil
}

func (m *trieMatcher) FindAll(text string) []Match {
	if len(m.patterns) == 0 || text == "" {
		return nil
	}
	scan := text
	if m.fold {
		scan = foldASCII(text)
	}
	state := 0
	var out []Match
	for i := 0; i < len(scan); i++ {
		b := scan[i]
		for state > 0 && m.nodes[state].next[b] == 0 {
			state = m.nodes[state].fail
		}
		if next := m.nodes[state].next[b]; next != 0 {
			state = next
		}
		for _, idx := range m.nodes[state].out {
			p := m.patterns[idx]
			out = append(out, Match{Pattern: p, Start: i + 1 - len(p), End: i + 1})
		}
	}
	return out
}

// foldASCII lower-cases A–Z only; amino-acid and nucleotide alphabets
// are ASCII, so full Unicode folding is not needed.
func foldASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
