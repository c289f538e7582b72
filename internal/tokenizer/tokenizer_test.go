package tokenizer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/vocabtok/internal/segment"
	"github.com/example/vocabtok/internal/vocab"
)

func TestTokenizeCharacters(t *testing.T) {
	res := New(segment.Characters).Tokenize("Hello, world!")

	// 13 characters, punctuation and the space included.
	if len(res.Symbols) != 13 {
		t.Errorf("len(Symbols) = %d; want 13", len(res.Symbols))
	}
	if len(res.Tokens) != 13 {
		t.Errorf("len(Tokens) = %d; want 13", len(res.Tokens))
	}

	// Distinct characters: H e l o , space w r d !
	if res.Vocab.Len() != 10 {
		t.Errorf("Vocab.Len() = %d; want 10", res.Vocab.Len())
	}

	// First-occurrence id assignment over "Hello, world!".
	wantTokens := []int{0, 1, 2, 2, 3, 4, 5, 6, 3, 7, 2, 8, 9}
	if diff := cmp.Diff(wantTokens, res.Tokens); diff != "" {
		t.Errorf("Tokens mismatch (-want +got):\n%s", diff)
	}

	// No symbol from the vocabulary-building text encodes to the sentinel.
	for i, id := range res.Tokens {
		if id == vocab.Sentinel {
			t.Errorf("Tokens[%d] is the sentinel for in-vocabulary symbol %q", i, res.Symbols[i])
		}
	}
}

func TestTokenizeWords(t *testing.T) {
	res := New(segment.Words).Tokenize("Hello, world!")

	wantSymbols := []string{"Hello,", "world!"}
	if diff := cmp.Diff(wantSymbols, res.Symbols); diff != "" {
		t.Errorf("Symbols mismatch (-want +got):\n%s", diff)
	}
	if res.Vocab.Len() != 2 {
		t.Errorf("Vocab.Len() = %d; want 2", res.Vocab.Len())
	}
	wantTokens := []int{0, 1}
	if diff := cmp.Diff(wantTokens, res.Tokens); diff != "" {
		t.Errorf("Tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeEmptyText(t *testing.T) {
	for _, strategy := range segment.Strategies() {
		res := New(strategy).Tokenize("")

		if len(res.Symbols) != 0 {
			t.Errorf("strategy %q: len(Symbols) = %d; want 0", strategy, len(res.Symbols))
		}
		if len(res.Tokens) != 0 {
			t.Errorf("strategy %q: len(Tokens) = %d; want 0", strategy, len(res.Tokens))
		}
		if res.Vocab.Len() != 0 {
			t.Errorf("strategy %q: Vocab.Len() = %d; want 0", strategy, res.Vocab.Len())
		}
	}
}

func TestTokenizeRepeatedWords(t *testing.T) {
	res := New(segment.Words).Tokenize("the cat and the hat")

	if res.Vocab.Len() != 4 {
		t.Errorf("Vocab.Len() = %d; want 4", res.Vocab.Len())
	}
	wantTokens := []int{0, 1, 2, 0, 3}
	if diff := cmp.Diff(wantTokens, res.Tokens); diff != "" {
		t.Errorf("Tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeWithCrossText(t *testing.T) {
	// Build a character vocabulary from one text, encode a different one.
	res := New(segment.Characters).Tokenize("Hello, world!")

	got := EncodeWith("Goodbye World!", res.Vocab, segment.Characters, vocab.Sentinel)

	// G o o d b y e _ W o r l d !
	want := []int{
		vocab.Sentinel, // G
		3,              // o
		3,              // o
		8,              // d
		vocab.Sentinel, // b
		vocab.Sentinel, // y
		1,              // e
		5,              // space
		vocab.Sentinel, // W (case differs from w)
		3,              // o
		7,              // r
		2,              // l
		8,              // d
		9,              // !
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EncodeWith mismatch (-want +got):\n%s", diff)
	}
	if len(got) != 14 {
		t.Errorf("len = %d; want 14", len(got))
	}
}

func TestEncodeWithDisjointTextIsAllSentinel(t *testing.T) {
	res := New(segment.Words).Tokenize("alpha beta gamma")

	got := EncodeWith("delta epsilon", res.Vocab, segment.Words, vocab.Sentinel)
	if len(got) != 2 {
		t.Fatalf("len = %d; want 2", len(got))
	}
	for i, id := range got {
		if id != vocab.Sentinel {
			t.Errorf("got[%d] = %d; want sentinel", i, id)
		}
	}
}

func TestNewWithSentinel(t *testing.T) {
	tok := NewWithSentinel(segment.Words, -7)
	res := tok.Tokenize("a b")

	got := EncodeWith("c", res.Vocab, segment.Words, -7)
	want := []int{-7}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EncodeWith mismatch (-want +got):\n%s", diff)
	}
}
