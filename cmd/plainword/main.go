package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/csheth/plainword/internal/config"
	"github.com/csheth/plainword/internal/erruser"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, erruser.Message(err))
		if details := erruser.Details(err); details != "" {
			fmt.Fprintf(os.Stderr, "Details: %s\n", details)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "plainword <file>",
		Short: "Review plain-language rewrites of a document, one sentence at a time",
		Long: "plainword sends every sentence of a text, Markdown or PDF document to a\n" +
			"simplification service and lets you accept, edit, deny, regenerate and\n" +
			"undo the rewrites before writing the file back.",
		Args:          cobra.ExactArgs(1),
		RunE:          runReview,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default <user config dir>/plainword/config.toml)")
	pf.String("provider", "", "suggestion source: remote, mock, ollama or openai")
	pf.String("endpoint", "", "suggestion service URL or LLM host")
	pf.String("model", "", "LLM model for the ollama and openai providers")
	pf.Bool("mock", false, "use the offline mock source")
	pf.Int("page-size", 0, "suggestions shown per page")
	pf.String("journal", "", "append review decisions to this JSON file")
	pf.Bool("no-cache", false, "bypass the on-disk suggestion cache")

	addReviewFlags(root)

	root.AddCommand(newReviewCmd())
	root.AddCommand(newSuggestCmd())
	root.AddCommand(newServeStubCmd())
	return root
}

// newReviewCmd is the explicit spelling of the root command.
func newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review <file>",
		Short: "Open the review screen for a document",
		Args:  cobra.ExactArgs(1),
		RunE:  runReview,
	}
	addReviewFlags(cmd)
	return cmd
}

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-alt-screen", false, "disable the alternate screen buffer")
	cmd.Flags().String("log-file", "", "write debug logs to this file")
	cmd.Flags().Bool("export", false, "export the document as soon as the screen opens")
}

// loadConfig layers the flags that were actually set over file and
// environment settings.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	o := &config.Overrides{}
	if flags.Changed("provider") {
		v, _ := flags.GetString("provider")
		o.Provider = &v
	}
	if flags.Changed("mock") {
		v, _ := flags.GetBool("mock")
		o.UseMock = &v
	}
	if flags.Changed("endpoint") {
		v, _ := flags.GetString("endpoint")
		o.Endpoint = &v
	}
	if flags.Changed("model") {
		v, _ := flags.GetString("model")
		o.Model = &v
	}
	if flags.Changed("page-size") {
		v, _ := flags.GetInt("page-size")
		o.PageSize = &v
	}
	if flags.Changed("journal") {
		v, _ := flags.GetString("journal")
		o.JournalPath = &v
	}
	if flags.Changed("no-cache") {
		v, _ := flags.GetBool("no-cache")
		o.NoCache = &v
	}
	return config.Load(cmd.Context(), config.LoadOptions{Path: path, Overrides: o})
}
