package main

import (
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/csheth/plainword/internal/document"
	"github.com/csheth/plainword/internal/erruser"
	"github.com/csheth/plainword/internal/journal"
	"github.com/csheth/plainword/internal/mutate"
	"github.com/csheth/plainword/internal/review"
	"github.com/csheth/plainword/internal/tui"
)

func runReview(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	noAltScreen, _ := flags.GetBool("no-alt-screen")
	logFile, _ := flags.GetString("log-file")
	autoExport, _ := flags.GetBool("export")

	// The screen owns stdout, so logs go to a file or nowhere.
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "plainword")
		if err != nil {
			return erruser.New("Could not open the log file.", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	buf, err := document.Open(args[0])
	if err != nil {
		return erruser.New("Could not open the document.", err)
	}
	src, err := buildSource(cfg)
	if err != nil {
		return err
	}
	mutator := mutate.New(buf, cfg.AnchorLimit)
	session := review.NewSession(mutator, src, reviewOptions(cfg))

	watcher, err := document.Watch(buf)
	if err != nil {
		log.Printf("[watch] disabled: %v", err)
		watcher = nil
	} else {
		defer watcher.Close()
	}

	log.Printf("[review] %s (%s) via %s", buf.Path(), buf.Format(), src.Name())

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Session:    session,
			Document:   buf,
			Mutator:    mutator,
			Journal:    journal.Open(cfg.JournalPath),
			Watcher:    watcher,
			SourceName: src.Name(),
			AutoExport: autoExport,
		}),
		opts...,
	)
	if _, err := program.Run(); err != nil {
		return erruser.New("The review screen stopped unexpectedly.", err)
	}
	return nil
}
