package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	apiUrl    string
	apiKey    string
	apiSecret string
	network   string

	configSetCmd = &cobra.Command{
		Use:   "set",
		Short: "edit single CLI config entry",
		Long: "this command lets you customize a single configuration entry " +
			"of the tide CLI",
		Args: cobra.ExactArgs(2),
		RunE: configSet,
	}
	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "edit multiple CLI config entries",
		Long: "this command lets you customize multiple configuration entries " +
			"of the tide CLI",
		RunE: configInit,
	}
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "print or edit CLI configuration",
		Long: "this command lets you show or customize the configuration of " +
			"the tide CLI",
		RunE: configPrint,
	}
)

func init() {
	configInitCmd.Flags().StringVar(
		&apiUrl, "api-url", initialState()["api_url"],
		"endpoint of the co-signing service to connect to",
	)
	configInitCmd.Flags().StringVar(
		&apiKey, "api-key", "", "API key identifying the caller",
	)
	configInitCmd.Flags().StringVar(
		&apiSecret, "api-secret", "", "API secret used to sign requests",
	)
	configInitCmd.Flags().StringVar(
		&network, "network", initialState()["network"],
		"network of the wallets managed through the service",
	)
	configCmd.AddCommand(configSetCmd, configInitCmd)
}

func configSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	// Prevent setting anything that is not part of the state.
	if _, ok := initialState()[key]; !ok {
		return nil
	}

	if err := setState(map[string]string{key: value}); err != nil {
		return err
	}

	fmt.Printf("%s has been set\n", key)

	return nil
}

func configInit(cmd *cobra.Command, args []string) error {
	if _, err := getState(); err != nil {
		return err
	}

	if err := setState(map[string]string{
		"api_url":    apiUrl,
		"api_key":    apiKey,
		"api_secret": apiSecret,
		"network":    network,
	}); err != nil {
		return err
	}

	fmt.Println("CLI has been configured")

	return nil
}

func configPrint(_ *cobra.Command, _ []string) error {
	state, err := getState()
	if err != nil {
		return err
	}

	// The secret never shows up in terminal output.
	if len(state["api_secret"]) > 0 {
		state["api_secret"] = "********"
	}

	buf, _ := json.MarshalIndent(state, "", "   ")
	fmt.Println(string(buf))

	return nil
}
