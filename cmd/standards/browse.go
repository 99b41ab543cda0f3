package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/swellfound/standards/internal/delivery/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive catalog browser",
	Long: `Opens the full-screen browser. Type to search, tab switches to
browsing by category, ctrl+n opens the submission form and ctrl+r refetches
the catalog.`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	svc := newServices()
	defer svc.Close()

	store, closePrefs := openPrefs()
	defer closePrefs()

	model := tui.New(tui.Options{
		Catalog:   svc.catalog,
		Submitter: svc.submissions,
		Prefs:     store,
		PrefsTTL:  cfg.Prefs.TTL,
		Debounce:  cfg.Search.Debounce,
		Logger:    logger,
	})
	defer model.Shutdown()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err := p.Run()
	return err
}
