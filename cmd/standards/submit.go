package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/swellfound/standards/internal/domain"
)

// submitFlags maps flag names to submission fields.
var submitFlags = []struct {
	flag  string
	field string
	usage string
}{
	{"name", domain.FieldSubmitterName, "Your name"},
	{"email", domain.FieldSubmitterMail, "Your email address"},
	{"three-words", domain.FieldThreeWords, "Three words that describe you"},
	{"title", domain.FieldTitle, "Product or practice name"},
	{"standard", domain.FieldStandard, "The standard it sets"},
	{"type", domain.FieldSubmitType, "Category (Taste, Technique, Tool or Toy)"},
	{"quicktake", domain.FieldQuicktake, "One-line summary"},
	{"details", domain.FieldDetails, "Why it belongs in the catalog"},
}

var submitValues = make(map[string]*string, len(submitFlags))

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Suggest a new standard",
	Long: `Creates a submission record. Only the fields given as flags are sent.

Example:
  standards submit --name Ada --title "Cast iron pan" --type Tool`,
	RunE: runSubmit,
}

func init() {
	for _, f := range submitFlags {
		submitValues[f.flag] = submitCmd.Flags().String(f.flag, "", f.usage)
	}
}

func runSubmit(cmd *cobra.Command, args []string) error {
	fields := make(map[string]string)
	for _, f := range submitFlags {
		if cmd.Flags().Changed(f.flag) {
			fields[f.field] = *submitValues[f.flag]
		}
	}
	if len(fields) == 0 {
		return fmt.Errorf("nothing to submit: set at least one of --name, --title, --details")
	}

	svc := newServices()
	defer svc.Close()

	if err := svc.submissions.Submit(cmd.Context(), fields); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.New(color.FgGreen).Sprint("Thank you! Your submission has been received."))
	return nil
}
