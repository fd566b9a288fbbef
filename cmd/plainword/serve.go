package main

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/csheth/plainword/internal/stubserver"
	"github.com/csheth/plainword/internal/suggest"
)

func newServeStubCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve-stub",
		Short: "Run a local stand-in for the suggestion service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			score, _ := cmd.Flags().GetFloat64("score")
			delay, _ := cmd.Flags().GetDuration("delay")
			fmt.Fprintf(cmd.OutOrStdout(), "stub listening on http://%s/prompt\n", addr)
			log.Printf("[stub] score=%.2f delay=%s", score, delay)
			return stubserver.Serve(cmd.Context(), addr, stubserver.Options{Score: score, Delay: delay})
		},
	}
	cmd.Flags().String("addr", "127.0.0.1:5000", "listen address")
	cmd.Flags().Float64("score", suggest.DefaultMockScore, "score reported for every rewrite")
	cmd.Flags().Duration("delay", time.Duration(0), "artificial latency per request")
	return cmd
}
