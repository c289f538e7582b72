// Package tokenizer composes segmentation, vocabulary building, and encoding
// into a single tokenize pipeline.
//
// Each Tokenize call is independent: the vocabulary is built fresh from that
// call's symbols and owned by the returned Result. There is no process-wide
// tokenizer state.
package tokenizer

import (
	"github.com/example/vocabtok/internal/segment"
	"github.com/example/vocabtok/internal/vocab"
)

// Result holds everything one tokenize pass produces.
type Result struct {
	// Symbols is the segmented input, order and duplicates preserved.
	Symbols []string
	// Vocab maps each distinct symbol to a dense id, assigned in
	// first-occurrence order.
	Vocab vocab.Vocabulary
	// Tokens is Symbols encoded against Vocab; len(Tokens) == len(Symbols).
	Tokens []int
}

// Tokenizer segments text, builds a vocabulary from the segmented symbols,
// and encodes the symbols against it.
type Tokenizer interface {
	Tokenize(text string) Result
}

// New returns a Tokenizer for the given segmentation strategy using the
// default sentinel for out-of-vocabulary symbols.
func New(strategy segment.Strategy) Tokenizer {
	return NewWithSentinel(strategy, vocab.Sentinel)
}

// NewWithSentinel returns a Tokenizer emitting the given sentinel for
// out-of-vocabulary symbols. With a vocabulary built from the same text the
// sentinel never appears in Result.Tokens; it matters for EncodeWith.
func NewWithSentinel(strategy segment.Strategy, sentinel int) Tokenizer {
	return pipeline{strategy: strategy, sentinel: sentinel}
}

type pipeline struct {
	strategy segment.Strategy
	sentinel int
}

func (p pipeline) Tokenize(text string) Result {
	symbols := segment.Split(text, p.strategy)
	v := vocab.Build(symbols)

	return Result{
		Symbols: symbols,
		Vocab:   v,
		Tokens:  vocab.Encode(symbols, v, p.sentinel),
	}
}

// EncodeWith segments text and encodes it against a previously built
// vocabulary instead of building a fresh one. Symbols absent from v encode
// to sentinel; the output length equals the segmented symbol count.
func EncodeWith(text string, v vocab.Vocabulary, strategy segment.Strategy, sentinel int) []int {
	return vocab.Encode(segment.Split(text, strategy), v, sentinel)
}
