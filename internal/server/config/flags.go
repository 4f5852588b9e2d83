package config

import (
	"flag"
	"os"

	"github.com/tokenforge/authapi/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string               HTTP bind address (e.g., ":8080")
//	-d string               PostgreSQL DSN
//	-user-issuer string     user token issuer
//	-user-audience string   user token audience
//	-user-validity dur      user token validity (e.g., "168h")
//	-svc-issuer string      service token issuer
//	-svc-audience string    service token audience
//	-svc-validity dur       service token validity (e.g., "30m")
//	-project string         secret store project id
//	-signing-secret string  signing secret name
//	-secret-version string  secret version ("latest" selects the current one)
//	-client-id-secret string     reference client-id secret name
//	-client-secret-secret string reference client-secret secret name
//	-secrets-region string   secret store region
//	-secrets-endpoint string secret store base endpoint (for local stacks)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d",
		"-user-issuer", "-user-audience", "-user-validity",
		"-svc-issuer", "-svc-audience", "-svc-validity",
		"-project", "-signing-secret", "-secret-version",
		"-client-id-secret", "-client-secret-secret",
		"-secrets-region", "-secrets-endpoint",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	fs.StringVar(&config.UserTokenIssuer, "user-issuer", config.UserTokenIssuer, "user token issuer")
	fs.StringVar(&config.UserTokenAudience, "user-audience", config.UserTokenAudience, "user token audience")
	fs.DurationVar(&config.UserTokenValidityDuration, "user-validity", config.UserTokenValidityDuration, "user token validity")

	fs.StringVar(&config.ServiceTokenIssuer, "svc-issuer", config.ServiceTokenIssuer, "service token issuer")
	fs.StringVar(&config.ServiceTokenAudience, "svc-audience", config.ServiceTokenAudience, "service token audience")
	fs.DurationVar(&config.ServiceTokenValidityDuration, "svc-validity", config.ServiceTokenValidityDuration, "service token validity")

	fs.StringVar(&config.SecretProjectID, "project", config.SecretProjectID, "secret store project id")
	fs.StringVar(&config.SigningSecretName, "signing-secret", config.SigningSecretName, "signing secret name")
	fs.StringVar(&config.SigningSecretVersion, "secret-version", config.SigningSecretVersion, "signing secret version")
	fs.StringVar(&config.ClientIDSecretName, "client-id-secret", config.ClientIDSecretName, "reference client-id secret name")
	fs.StringVar(&config.ClientSecretName, "client-secret-secret", config.ClientSecretName, "reference client-secret secret name")

	fs.StringVar(&config.SecretsRegion, "secrets-region", config.SecretsRegion, "secret store region")
	fs.StringVar(&config.SecretsEndpoint, "secrets-endpoint", config.SecretsEndpoint, "secret store base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
