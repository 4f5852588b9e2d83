package config

import (
	"encoding/json"
	"os"

	"github.com/tokenforge/authapi/internal/flagx"
	"github.com/tokenforge/authapi/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for validity fields, which allows
// parsing both string values such as "30m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP string `json:"endpoint_addr_http"`
	DatabaseDSN      string `json:"database_dsn"`

	UserTokenIssuer           string         `json:"user_token_issuer"`
	UserTokenAudience         string         `json:"user_token_audience"`
	UserTokenValidityDuration timex.Duration `json:"user_token_validity_duration"`

	ServiceTokenIssuer           string         `json:"service_token_issuer"`
	ServiceTokenAudience         string         `json:"service_token_audience"`
	ServiceTokenValidityDuration timex.Duration `json:"service_token_validity_duration"`

	SecretProjectID      string `json:"secret_project_id"`
	SigningSecretName    string `json:"signing_secret_name"`
	SigningSecretVersion string `json:"signing_secret_version"`
	ClientIDSecretName   string `json:"client_id_secret_name"`
	ClientSecretName     string `json:"client_secret_name"`

	SecretsRegion          string `json:"secrets_region"`
	SecretsEndpoint        string `json:"secrets_endpoint"`
	SecretsAccessKeyID     string `json:"secrets_access_key_id"`
	SecretsSecretAccessKey string `json:"secrets_secret_access_key"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. An unreadable or
// invalid file panics: a half-applied config is worse than a crash at
// startup.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.UserTokenIssuer = c.UserTokenIssuer
	config.UserTokenAudience = c.UserTokenAudience
	config.UserTokenValidityDuration = c.UserTokenValidityDuration.Duration
	config.ServiceTokenIssuer = c.ServiceTokenIssuer
	config.ServiceTokenAudience = c.ServiceTokenAudience
	config.ServiceTokenValidityDuration = c.ServiceTokenValidityDuration.Duration
	config.SecretProjectID = c.SecretProjectID
	config.SigningSecretName = c.SigningSecretName
	config.SigningSecretVersion = c.SigningSecretVersion
	config.ClientIDSecretName = c.ClientIDSecretName
	config.ClientSecretName = c.ClientSecretName
	config.SecretsRegion = c.SecretsRegion
	config.SecretsEndpoint = c.SecretsEndpoint
	config.SecretsAccessKeyID = c.SecretsAccessKeyID
	config.SecretsSecretAccessKey = c.SecretsSecretAccessKey
}
