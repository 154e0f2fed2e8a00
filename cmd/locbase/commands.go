package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"location-base/internal/app"
	"location-base/internal/config"
	"location-base/internal/logger"
	"location-base/internal/models"

	"github.com/spf13/cobra"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture the current position and store it",
	Args:  cobra.NoArgs,
	RunE:  runCapture,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored positions in capture order",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var darkModeCmd = &cobra.Command{
	Use:       "darkmode [show|on|off|toggle]",
	Short:     "Show or change the dark-mode preference",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"show", "on", "off", "toggle"},
	RunE:      runDarkMode,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the storage schema if it does not exist",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.LogLevel, true)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return app.New(ctx, cfg)
}

func runCapture(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	record, err := a.Capture.Capture(cmd.Context())
	if err != nil {
		return err
	}

	printLocation(cmd.OutOrStdout(), record)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	locations, err := a.Capture.ListAll(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(locations) == 0 {
		fmt.Fprintln(out, "No locations captured yet")
		return nil
	}
	for _, loc := range locations {
		printLocation(out, loc)
	}
	return nil
}

func runDarkMode(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	action := "show"
	if len(args) == 1 {
		action = strings.ToLower(args[0])
	}

	// Persistence failures are logged by the service; the flag still changes for this run.
	var saveErr error
	switch action {
	case "on":
		saveErr = a.Preferences.Save(cmd.Context(), true)
	case "off":
		saveErr = a.Preferences.Save(cmd.Context(), false)
	case "toggle":
		_, saveErr = a.Preferences.Toggle(cmd.Context())
	}

	state := "off"
	if a.Preferences.Current() {
		state = "on"
	}
	if saveErr != nil {
		state += " (not persisted)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Dark mode: %s\n", state)
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
	return nil
}

func printLocation(w io.Writer, loc models.Location) {
	fmt.Fprintf(w, "Location %d\tLatitude: %v | Longitude: %v\n", loc.ID, loc.Latitude, loc.Longitude)
}
