package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/swellfound/standards/internal/domain"
)

var (
	searchBrowse   bool
	searchCategory string
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search the catalog from the command line",
	Long: `Prints standards matching any word of the query. With --browse or
--category the query is ignored and the catalog is listed instead.

Example:
  standards search cast iron
  standards search --category Tool`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVarP(&searchBrowse, "browse", "b", false, "List the whole catalog")
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "List one category")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print results as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	svc := newServices()
	defer svc.Close()

	state := domain.NewSearchFilter().WithQuery(strings.Join(args, " "))
	if searchBrowse || searchCategory != "" {
		state = state.WithMode(domain.ModeBrowseAll).WithCategory(searchCategory)
	}

	results, err := svc.catalog.Search(cmd.Context(), state)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if searchJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	printStandards(out, results)
	return nil
}

func printStandards(w io.Writer, records []domain.Standard) {
	if len(records) == 0 {
		fmt.Fprintln(w, color.New(color.FgYellow).Sprint("No results found."))
		return
	}

	title := color.New(color.FgCyan, color.Bold).SprintFunc()
	tag := color.New(color.FgMagenta).SprintFunc()
	price := color.New(color.FgGreen).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	for _, rec := range records {
		name := rec.Title
		if name == "" {
			name = "Untitled"
		}
		line := title(name)
		if t := rec.PrimaryTag(); t != "" {
			line += " " + tag("["+t+"]")
		}
		if rec.Price != "" {
			line += " " + price(rec.Price)
		}
		fmt.Fprintln(w, line)
		if rec.Quicktake != "" {
			fmt.Fprintf(w, "  %s\n", rec.Quicktake)
		}
		fmt.Fprintf(w, "  %s\n", faint(rec.ID))
	}
	fmt.Fprintf(w, "\n%d result(s)\n", len(records))
}
