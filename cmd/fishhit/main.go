package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fishinghit/fishhit/internal/prefs"
	"github.com/fishinghit/fishhit/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	config *Config
	log    *zap.Logger
)

func main() {
	var err error
	config, err = LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log = newLogger(config.LogLevel, config.Environment)
	defer log.Sync()

	rootCmd := &cobra.Command{
		Use:   "fishhit",
		Short: "Angler's diary: fishing spots, catches, gear and fish guide",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnboarding(cmd)
		},
	}

	rootCmd.AddCommand(sessionCmd())
	rootCmd.AddCommand(catchCmd())
	rootCmd.AddCommand(spotCmd())
	rootCmd.AddCommand(routeCmd())
	rootCmd.AddCommand(checklistCmd())
	rootCmd.AddCommand(guideCmd())
	rootCmd.AddCommand(supportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getStore() (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(config.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.New(config.DBPath)
}

func getPrefs() (*prefs.Prefs, error) {
	if err := os.MkdirAll(filepath.Dir(config.PrefsPath), 0o755); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}
	return prefs.Open(config.PrefsPath, log)
}

// runOnboarding prints the welcome walkthrough on first run, then defers
// to the usual help text
func runOnboarding(cmd *cobra.Command) error {
	p, err := getPrefs()
	if err != nil {
		return err
	}
	defer p.Close()

	if !p.GetBool(prefs.KeyOnboarding) {
		fmt.Println("Welcome to Fishing Hit!")
		fmt.Println()
		fmt.Println("  fishhit spot add       save a fishing spot with depth and gear")
		fmt.Println("  fishhit catch add      log a catch with photo, audio and video notes")
		fmt.Println("  fishhit guide list     browse the fish reference guide")
		fmt.Println("  fishhit checklist      keep your gear checklists")
		fmt.Println("  fishhit session login  sign in to sync your profile")
		fmt.Println()
		if err := p.SetBool(prefs.KeyOnboarding, true); err != nil {
			log.Warn("persist onboarding flag", zap.Error(err))
		}
		return nil
	}

	return cmd.Help()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
