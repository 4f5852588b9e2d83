// Package common defines shared constants and sentinel errors used across
// the service layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")

	// Secret-store errors. A secret being unreachable or absent is fatal to
	// the calling operation; no retry happens at this level.
	ErrSecretUnavailable = errors.New("secret unavailable")

	// Token issuance errors. The message deliberately does not say which of
	// client id / client secret mismatched.
	ErrInvalidClientCredentials = errors.New("invalid client credentials")
)
