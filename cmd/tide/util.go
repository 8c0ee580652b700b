package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/vulpemventures/tide/internal/config"
	"github.com/vulpemventures/tide/internal/core/application"
	cosigner_client "github.com/vulpemventures/tide/internal/infrastructure/cosigner-client"
	"golang.org/x/term"
)

var (
	colorRed = string("\033[31m")

	supportedNetworks = map[string]*chaincfg.Params{
		chaincfg.MainNetParams.Name:       &chaincfg.MainNetParams,
		chaincfg.TestNet3Params.Name:      &chaincfg.TestNet3Params,
		chaincfg.RegressionNetParams.Name: &chaincfg.RegressionNetParams,
	}
)

func getClient() (*cosigner_client.Client, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}

	apiUrl := state["api_url"]
	if override, ok := config.GetApiUrlOverride(); ok {
		apiUrl = override
	}
	apiKey := state["api_key"]
	if len(apiKey) <= 0 {
		return nil, fmt.Errorf("set api_key with `tide config set api_key`")
	}
	apiSecret := state["api_secret"]
	if len(apiSecret) <= 0 {
		return nil, fmt.Errorf("set api_secret with `tide config set api_secret`")
	}

	timeout := time.Duration(config.GetInt(config.RequestTimeoutKey)) * time.Second
	return cosigner_client.NewClient(cosigner_client.ClientArgs{
		BaseURL:   apiUrl,
		APIKey:    apiKey,
		APISecret: apiSecret,
		Timeout:   timeout,
	})
}

func getBootstrapService() (*application.BootstrapService, error) {
	client, err := getClient()
	if err != nil {
		return nil, err
	}

	state, err := getState()
	if err != nil {
		return nil, err
	}
	net, ok := supportedNetworks[state["network"]]
	if !ok {
		return nil, fmt.Errorf("unknown network %q", state["network"])
	}

	return application.NewBootstrapService(client, net), nil
}

func getState() (map[string]string, error) {
	file, err := os.ReadFile(statePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := writeState(initialState()); err != nil {
			return nil, err
		}
		return initialState(), nil
	}

	data := map[string]string{}
	json.Unmarshal(file, &data)
	return data, nil
}

func setState(partialState map[string]string) error {
	state, err := getState()
	if err != nil {
		return err
	}

	for key, value := range partialState {
		state[key] = value
	}
	return writeState(state)
}

func writeState(state map[string]string) error {
	dir := filepath.Dir(statePath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err = os.MkdirAll(dir, 0755)
		if err != nil {
			return fmt.Errorf("failed to create directory: %v", err)
		}
	}

	buf, _ := json.MarshalIndent(state, "", "  ")
	if err := os.WriteFile(statePath, buf, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func readPassphrase(prompt string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", prompt)
	buf, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func jsonResponse(v interface{}) (string, error) {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %s", err)
	}
	return string(buf), nil
}

func printErr(err error) {
	msg := fmt.Sprintf("%s%s", colorRed, capitalize(err.Error()))
	fmt.Fprintln(os.Stderr, msg)
}

func capitalize(s string) string {
	if len(s) <= 0 {
		return s
	}
	ss := strings.ToUpper(s[0:1])
	ss += s[1:]
	return ss
}
