// Package vocab assigns dense integer ids to distinct symbols and encodes
// symbol sequences against the resulting vocabulary.
package vocab

// Sentinel is the default token id emitted for symbols absent from the
// vocabulary. Assigned ids are non-negative, so the sentinel can never
// collide with a real id.
const Sentinel = -1

// Vocabulary maps distinct symbols to the dense id range [0, Len).
// Ids are assigned in first-occurrence order during Build, so the same
// input always produces the same mapping. A Vocabulary is never written
// after Build returns; concurrent read-only use is safe.
type Vocabulary struct {
	ids     map[string]int
	symbols []string // index == id
}

// Build scans symbols once and assigns the next free id to each symbol on
// first sight. Duplicates are ignored. An empty input yields an empty
// vocabulary.
func Build(symbols []string) Vocabulary {
	v := Vocabulary{ids: make(map[string]int)}
	for _, s := range symbols {
		if _, seen := v.ids[s]; seen {
			continue
		}
		v.ids[s] = len(v.symbols)
		v.symbols = append(v.symbols, s)
	}
	return v
}

// Len returns the number of distinct symbols in the vocabulary.
func (v Vocabulary) Len() int { return len(v.symbols) }

// ID returns the id assigned to symbol and whether the symbol is present.
func (v Vocabulary) ID(symbol string) (int, bool) {
	id, ok := v.ids[symbol]
	return id, ok
}

// Contains reports whether symbol was observed during Build.
func (v Vocabulary) Contains(symbol string) bool {
	_, ok := v.ids[symbol]
	return ok
}

// Symbols returns a copy of the symbols in id order (index == id).
func (v Vocabulary) Symbols() []string {
	return append([]string(nil), v.symbols...)
}

// Encode maps each symbol in order to its id, substituting sentinel for
// symbols outside the vocabulary. The output always has the same length as
// the input; encoding is total and never fails. Against an empty vocabulary
// every output element is the sentinel.
func Encode(symbols []string, v Vocabulary, sentinel int) []int {
	tokens := make([]int, len(symbols))
	for i, s := range symbols {
		id, ok := v.ids[s]
		if !ok {
			id = sentinel
		}
		tokens[i] = id
	}
	return tokens
}

// Decode maps each id back to its symbol. Ids outside [0, Len) -- the
// sentinel included -- yield the unknown placeholder. Like Encode it is
// total and preserves length.
func Decode(tokens []int, v Vocabulary, unknown string) []string {
	symbols := make([]string, len(tokens))
	for i, id := range tokens {
		if id < 0 || id >= len(v.symbols) {
			symbols[i] = unknown
			continue
		}
		symbols[i] = v.symbols[id]
	}
	return symbols
}
