package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/vocabtok/internal/config"
)

func TestReadTokenizeText(t *testing.T) {
	tests := []struct {
		name     string
		flagText string
		stdin    string
		want     string
	}{
		{
			name:     "flag text wins over stdin",
			flagText: "from flag",
			stdin:    "from stdin",
			want:     "from flag",
		},
		{
			name:     "empty flag reads stdin",
			flagText: "",
			stdin:    "from stdin",
			want:     "from stdin",
		},
		{
			name:     "dash reads stdin",
			flagText: "-",
			stdin:    "piped",
			want:     "piped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readTokenizeText(tt.flagText, strings.NewReader(tt.stdin))
			if err != nil {
				t.Fatalf("readTokenizeText: %v", err)
			}
			if got != tt.want {
				t.Errorf("readTokenizeText = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestRunTokenizePlain(t *testing.T) {
	cfg := config.DefaultConfig()

	var buf bytes.Buffer
	err := runTokenize(&buf, cfg, tokenizeOptions{Text: "Hello, world!"})
	if err != nil {
		t.Fatalf("runTokenize: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"strategy: characters",
		"symbols:  13",
		"distinct: 10",
		"tokens:   [0 1 2 2 3 4 5 6 3 7 2 8 9]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunTokenizeWordsJSON(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tokenizer.Strategy = "words"

	var buf bytes.Buffer
	err := runTokenize(&buf, cfg, tokenizeOptions{Text: "Hello, world!", JSON: true})
	if err != nil {
		t.Fatalf("runTokenize: %v", err)
	}

	var out tokenizeOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if out.Strategy != "words" {
		t.Errorf("strategy = %q; want %q", out.Strategy, "words")
	}
	if diff := cmp.Diff([]string{"Hello,", "world!"}, out.Symbols); diff != "" {
		t.Errorf("symbols mismatch (-want +got):\n%s", diff)
	}
	if out.Distinct != 2 {
		t.Errorf("distinct = %d; want 2", out.Distinct)
	}
	if diff := cmp.Diff([]int{0, 1}, out.Tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestRunTokenizeAgainst(t *testing.T) {
	cfg := config.DefaultConfig()

	var buf bytes.Buffer
	err := runTokenize(&buf, cfg, tokenizeOptions{
		Text:    "Goodbye World!",
		Against: "Hello, world!",
		JSON:    true,
	})
	if err != nil {
		t.Fatalf("runTokenize: %v", err)
	}

	var out tokenizeOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}

	if len(out.Tokens) != 14 {
		t.Fatalf("len(tokens) = %d; want 14", len(out.Tokens))
	}
	// Distinct count reflects the vocabulary text, not the input.
	if out.Distinct != 10 {
		t.Errorf("distinct = %d; want 10", out.Distinct)
	}

	want := []int{-1, 3, 3, 8, -1, -1, 1, 5, -1, 3, 7, 2, 8, 9}
	if diff := cmp.Diff(want, out.Tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestRunTokenizeEmptyText(t *testing.T) {
	cfg := config.DefaultConfig()

	var buf bytes.Buffer
	err := runTokenize(&buf, cfg, tokenizeOptions{Text: ""})
	if err != nil {
		t.Fatalf("runTokenize: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"symbols:  0", "distinct: 0", "tokens:   []"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
