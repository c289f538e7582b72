// Package segment splits raw text into ordered symbol sequences.
//
// Two strategies are supported: character segmentation, which produces one
// symbol per Unicode code point (whitespace and punctuation included), and
// word segmentation, which produces one symbol per whitespace-delimited run.
// Neither strategy normalizes the input in any way.
package segment

import (
	"fmt"
	"strings"
)

// Strategy selects how Split breaks text into symbols.
type Strategy string

const (
	// Characters produces one symbol per Unicode code point.
	Characters Strategy = "characters"
	// Words produces one symbol per whitespace-delimited non-empty run.
	Words Strategy = "words"
)

// Strategies returns all supported segmentation strategies.
func Strategies() []Strategy {
	return []Strategy{Characters, Words}
}

// ParseStrategy converts a case-insensitive strategy name to a Strategy.
// An empty string returns Characters. Unknown names return an error.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "", "characters", "chars", "char":
		return Characters, nil
	case "words", "word":
		return Words, nil
	default:
		return Characters, fmt.Errorf("unknown segmentation strategy %q (want characters|words)", s)
	}
}

// Split breaks text into an ordered symbol sequence under the given strategy.
// Order and duplicates are preserved; empty input yields an empty sequence.
// Callers validate strategy names via ParseStrategy; any value other than
// Words segments by characters.
func Split(text string, strategy Strategy) []string {
	if strategy == Words {
		return strings.Fields(text)
	}

	symbols := make([]string, 0, len(text))
	for _, r := range text {
		symbols = append(symbols, string(r))
	}
	return symbols
}
