package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csheth/plainword/internal/document"
	"github.com/csheth/plainword/internal/erruser"
	"github.com/csheth/plainword/internal/review"
	"github.com/csheth/plainword/internal/sentence"
	"github.com/csheth/plainword/internal/suggest"
)

func newSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <file>",
		Short: "Print rewrites for every sentence without opening the review screen",
		Args:  cobra.ExactArgs(1),
		RunE:  runSuggest,
	}
	cmd.Flags().Bool("json", false, "emit results as a JSON array")
	cmd.Flags().Bool("all", false, "include rewrites whose score falls outside the band")
	return cmd
}

func runSuggest(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	all, _ := cmd.Flags().GetBool("all")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	buf, err := document.Open(args[0])
	if err != nil {
		return erruser.New("Could not open the document.", err)
	}
	text, err := buf.Text(cmd.Context())
	if err != nil {
		return erruser.New("Could not read the document.", err)
	}
	src, err := buildSource(cfg)
	if err != nil {
		return err
	}

	results, err := suggest.Batch(cmd.Context(), src, sentence.Split(text))
	if err != nil {
		return erruser.New("Suggestion run was interrupted.", err)
	}
	band := reviewOptions(cfg).Band
	kept := make([]suggest.Result, 0, len(results))
	for _, res := range results {
		if all || band.Contains(res.Score) {
			kept = append(kept, res)
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(kept); err != nil {
			return erruser.New("Could not write suggestions.", err)
		}
		return nil
	}
	for _, res := range kept {
		if _, err := fmt.Fprintf(out, "%6.2f  %s\n        %s\n", res.Score, res.Original, res.Simplified); err != nil {
			return erruser.New("Could not write suggestions.", err)
		}
	}
	_, err = fmt.Fprintf(out, "%d of %d sentences in band %s.\n", len(kept), len(results), formatBand(band))
	return err
}

func formatBand(b review.Band) string {
	return fmt.Sprintf("[%.2f, %.2f]", b.Min, b.Max)
}
