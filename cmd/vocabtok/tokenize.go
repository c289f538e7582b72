package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/vocabtok/internal/config"
	"github.com/example/vocabtok/internal/segment"
	"github.com/example/vocabtok/internal/tokenizer"
)

func newTokenizeCmd() *cobra.Command {
	var text string
	var against string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tokenize",
		Short: "Segment text, build a vocabulary, and encode it",
		Long: `Segment text into symbols, assign each distinct symbol a dense integer id
in first-occurrence order, and print the encoded token sequence.

With --against, the vocabulary is built from the given text instead and the
input is encoded against it; symbols missing from that vocabulary encode to
the sentinel id.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			inputText, err := readTokenizeText(text, os.Stdin)
			if err != nil {
				return err
			}

			return runTokenize(cmd.OutOrStdout(), cfg, tokenizeOptions{
				Text:    inputText,
				Against: against,
				JSON:    asJSON,
			})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to tokenize (if empty, read from stdin)")
	cmd.Flags().StringVar(&against, "against", "", "Build the vocabulary from this text instead of the input")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the result as JSON")

	return cmd
}

// readTokenizeText returns the flag text, or reads all of stdin when the
// flag is empty or "-".
func readTokenizeText(flagText string, stdin io.Reader) (string, error) {
	if flagText != "" && flagText != "-" {
		return flagText, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read text from stdin: %w", err)
	}
	return string(data), nil
}

type tokenizeOptions struct {
	Text    string
	Against string
	JSON    bool
}

type tokenizeOutput struct {
	Strategy string   `json:"strategy"`
	Symbols  []string `json:"symbols"`
	Distinct int      `json:"distinct"`
	Tokens   []int    `json:"tokens"`
}

func runTokenize(w io.Writer, cfg config.Config, opts tokenizeOptions) error {
	strategy := cfg.Strategy()
	sentinel := cfg.Tokenizer.Sentinel

	var out tokenizeOutput
	if opts.Against != "" {
		res := tokenizer.NewWithSentinel(strategy, sentinel).Tokenize(opts.Against)
		out = tokenizeOutput{
			Strategy: string(strategy),
			Symbols:  segment.Split(opts.Text, strategy),
			Distinct: res.Vocab.Len(),
			Tokens:   tokenizer.EncodeWith(opts.Text, res.Vocab, strategy, sentinel),
		}
	} else {
		res := tokenizer.NewWithSentinel(strategy, sentinel).Tokenize(opts.Text)
		out = tokenizeOutput{
			Strategy: string(strategy),
			Symbols:  res.Symbols,
			Distinct: res.Vocab.Len(),
			Tokens:   res.Tokens,
		}
	}

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	_, err := fmt.Fprintf(w, "strategy: %s\nsymbols:  %d\ndistinct: %d\ntokens:   %s\n",
		out.Strategy, len(out.Symbols), out.Distinct, formatTokens(out.Tokens))
	return err
}

func formatTokens(tokens []int) string {
	parts := make([]string, len(tokens))
	for i, id := range tokens {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
