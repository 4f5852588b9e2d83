package config

import (
	"os"
	"time"
)

// parseEnv overlays Config fields from environment variables. Environment
// has the last word so container deployments can override anything without
// touching files or flags. Credential material for the secret store itself
// only comes from the environment or the SDK default chain, never from
// flags.
func parseEnv(config *Config) {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setDuration := func(dst *time.Duration, key string) {
		if v, ok := os.LookupEnv(key); ok {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	setString(&config.EndpointAddrHTTP, "ADDRESS")
	setString(&config.DatabaseDSN, "DATABASE_DSN")

	setString(&config.UserTokenIssuer, "USER_TOKEN_ISSUER")
	setString(&config.UserTokenAudience, "USER_TOKEN_AUDIENCE")
	setDuration(&config.UserTokenValidityDuration, "USER_TOKEN_VALIDITY")

	setString(&config.ServiceTokenIssuer, "SERVICE_TOKEN_ISSUER")
	setString(&config.ServiceTokenAudience, "SERVICE_TOKEN_AUDIENCE")
	setDuration(&config.ServiceTokenValidityDuration, "SERVICE_TOKEN_VALIDITY")

	setString(&config.SecretProjectID, "SECRET_PROJECT_ID")
	setString(&config.SigningSecretName, "SIGNING_SECRET_NAME")
	setString(&config.SigningSecretVersion, "SIGNING_SECRET_VERSION")
	setString(&config.ClientIDSecretName, "CLIENT_ID_SECRET_NAME")
	setString(&config.ClientSecretName, "CLIENT_SECRET_NAME")

	setString(&config.SecretsRegion, "SECRETS_REGION")
	setString(&config.SecretsEndpoint, "SECRETS_ENDPOINT")
	setString(&config.SecretsAccessKeyID, "SECRETS_ACCESS_KEY_ID")
	setString(&config.SecretsSecretAccessKey, "SECRETS_SECRET_ACCESS_KEY")
}
