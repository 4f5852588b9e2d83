// Package secrets provides access to named, versioned secret material held
// in a remote secret-management service.
//
// Secrets are fetched on demand and never cached: each token issuance
// re-reads the store so rotated material is picked up immediately. Payloads
// must never be logged.
package secrets

import "context"

// Store fetches the payload of a single secret version.
//
// projectID namespaces secrets per deployment, name identifies the secret
// and version selects a concrete revision ("latest" or empty selects the
// current one). Implementations return common.ErrSecretUnavailable when the
// store is unreachable or the secret/version does not exist.
type Store interface {
	AccessSecret(ctx context.Context, projectID, name, version string) ([]byte, error)
}
