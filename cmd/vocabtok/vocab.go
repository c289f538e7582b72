package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/example/vocabtok/internal/tokenizer"
)

func newVocabCmd() *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Print the vocabulary built from a text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			inputText, err := readTokenizeText(text, os.Stdin)
			if err != nil {
				return err
			}

			res := tokenizer.New(cfg.Strategy()).Tokenize(inputText)

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Symbol"})
			for id, sym := range res.Vocab.Symbols() {
				table.Append([]string{strconv.Itoa(id), strconv.Quote(sym)})
			}
			table.Render()

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d distinct symbols from %d total\n",
				res.Vocab.Len(), len(res.Symbols))
			return err
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to build the vocabulary from (if empty, read from stdin)")

	return cmd
}
