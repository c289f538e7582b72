package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/vocabtok/internal/server"
)

func newHealthCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.ListenAddr
			}
			if err := server.ProbeHTTP(addr); err != nil {
				return fmt.Errorf("probe %s: %w", addr, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\n", addr)
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP server address to probe")

	return cmd
}
