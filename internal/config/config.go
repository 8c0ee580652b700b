package config

import (
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/spf13/viper"
)

const (
	// ApiUrlKey is the key to override the co-signing service endpoint, for
	// pointing the client at a non-default service instance.
	ApiUrlKey = "API_URL"
	// ApiKeyKey is the key for the API key identifying the caller.
	ApiKeyKey = "API_KEY"
	// ApiSecretKey is the key for the API secret used to sign requests.
	ApiSecretKey = "API_SECRET"
	// NetworkKey is the key to customize the Bitcoin network.
	NetworkKey = "NETWORK"
	// LogLevelKey is the key to customize the log level to catch more
	// specific or more high level logs.
	LogLevelKey = "LOG_LEVEL"
	// RequestTimeoutKey is the key to customize the timeout of a single
	// request to the service.
	RequestTimeoutKey = "REQUEST_TIMEOUT_IN_SECONDS"
)

const envPrefix = "TIDE"

var (
	vip *viper.Viper

	defaultApiUrl         = "https://cosigner.vulpem.com/api/v1"
	defaultNetwork        = chaincfg.MainNetParams.Name
	defaultLogLevel       = 4
	defaultRequestTimeout = 30

	supportedNetworks = map[string]*chaincfg.Params{
		chaincfg.MainNetParams.Name:       &chaincfg.MainNetParams,
		chaincfg.TestNet3Params.Name:      &chaincfg.TestNet3Params,
		chaincfg.RegressionNetParams.Name: &chaincfg.RegressionNetParams,
	}
)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix(envPrefix)
	vip.AutomaticEnv()

	vip.SetDefault(ApiUrlKey, defaultApiUrl)
	vip.SetDefault(NetworkKey, defaultNetwork)
	vip.SetDefault(LogLevelKey, defaultLogLevel)
	vip.SetDefault(RequestTimeoutKey, defaultRequestTimeout)

	if err := validate(); err != nil {
		log.Fatalf("invalid config: %s", err)
	}
}

func validate() error {
	apiUrl := GetString(ApiUrlKey)
	if u, err := url.Parse(apiUrl); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api url must be a valid absolute url")
	}

	net := GetString(NetworkKey)
	if len(net) == 0 {
		return fmt.Errorf("network must not be null")
	}
	if _, ok := supportedNetworks[net]; !ok {
		nets := make([]string, 0, len(supportedNetworks))
		for net := range supportedNetworks {
			nets = append(nets, net)
		}
		return fmt.Errorf("unknown network, must be one of: %v", nets)
	}

	if timeout := GetInt(RequestTimeoutKey); timeout <= 0 {
		return fmt.Errorf("request timeout must be a positive number of seconds")
	}

	return nil
}

// GetNetwork returns the chain params selected by the NETWORK key.
func GetNetwork() *chaincfg.Params {
	return supportedNetworks[GetString(NetworkKey)]
}

// GetApiUrlOverride reports whether the endpoint override variable is set in
// the environment, regardless of the configured default.
func GetApiUrlOverride() (string, bool) {
	return os.LookupEnv(envPrefix + "_" + ApiUrlKey)
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func Set(key string, val interface{}) {
	vip.Set(key, val)
}

func IsSet(key string) bool {
	return vip.IsSet(key)
}
