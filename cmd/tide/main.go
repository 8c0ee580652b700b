package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vulpemventures/tide/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	datadir   = btcutil.AppDataDir("tide-cli", false)
	statePath = filepath.Join(datadir, "state.json")

	rootCmd = &cobra.Command{
		Use:   "tide",
		Short: "CLI for the tide multisig wallet service",
		Long: "This CLI lets you bootstrap and inspect multisig wallets held " +
			"with the co-signing service",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if _, err := os.Stat(datadir); os.IsNotExist(err) {
				os.Mkdir(datadir, os.ModeDir|0755)
			}
			log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
		},
		Version: formatVersion(),
	}
)

func initialState() map[string]string {
	return map[string]string{
		"api_url":    config.GetString(config.ApiUrlKey),
		"api_key":    "",
		"api_secret": "",
		"network":    config.GetString(config.NetworkKey),
	}
}

func init() {
	rootCmd.AddCommand(configCmd, walletCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func formatVersion() string {
	return fmt.Sprintf(
		"\nVersion: %s\nCommit: %s\nDate: %s", version, commit, date,
	)
}
