package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swellfound/standards/internal/domain"
)

var onboardingCmd = &cobra.Command{
	Use:   "onboarding",
	Short: "Manage the welcome cards",
}

var onboardingResetCmd = &cobra.Command{
	Use:         "reset",
	Short:       "Show the welcome cards again on the next launch",
	Annotations: map[string]string{localConfig: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closePrefs := openPrefs()
		defer closePrefs()
		if store == nil {
			return fmt.Errorf("preferences unavailable at %s", cfg.Prefs.Path)
		}
		if err := store.Delete(cmd.Context(), domain.PrefHideOnboarding); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Welcome cards will show on the next launch.")
		return nil
	},
}

var onboardingStatusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Report whether the welcome cards are hidden",
	Annotations: map[string]string{localConfig: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closePrefs := openPrefs()
		defer closePrefs()
		if store == nil {
			return fmt.Errorf("preferences unavailable at %s", cfg.Prefs.Path)
		}
		hide, err := store.GetBool(cmd.Context(), domain.PrefHideOnboarding)
		switch {
		case errors.Is(err, domain.ErrPreferenceNotFound):
			hide = false
		case err != nil:
			return err
		}
		if hide {
			fmt.Fprintln(cmd.OutOrStdout(), "hidden")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "shown")
		}
		return nil
	},
}

func init() {
	onboardingCmd.AddCommand(onboardingResetCmd, onboardingStatusCmd)
}
