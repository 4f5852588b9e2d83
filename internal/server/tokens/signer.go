// Package tokens builds and signs the two bearer-token profiles issued by
// the service: long-lived user session tokens and short-lived
// machine-to-machine service tokens. Both are compact HS256 JWTs; the
// signing secret is fetched from the secret store on every issuance so
// rotated material takes effect immediately.
package tokens

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tokenforge/authapi/internal/common"
	"github.com/tokenforge/authapi/internal/secrets"
	"github.com/tokenforge/authapi/internal/server/config"
	"github.com/tokenforge/authapi/internal/server/users"
)

// ServiceTokenType is the token_type claim value that distinguishes service
// tokens from user session tokens for downstream verifiers.
const ServiceTokenType = "service"

// UserClaims is the claim set of a user session token.
type UserClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ServiceClaims is the claim set of a service token. The jti lives in
// RegisteredClaims.ID.
type ServiceClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}

// Signer issues signed tokens. It is stateless and safe for concurrent use.
type Signer struct {
	secrets secrets.Store
	cfg     *config.Config
	now     func() time.Time
}

func NewSigner(store secrets.Store, cfg *config.Config) *Signer {
	return &Signer{secrets: store, cfg: cfg, now: time.Now}
}

// IssueUserToken signs a session token for the given user: subject is the
// user id, email and name are carried as named claims, expiry is issuance
// time plus the configured user-token validity (7 days by default).
func (s *Signer) IssueUserToken(ctx context.Context, user users.User) (string, error) {
	secret, err := s.signingSecret(ctx)
	if err != nil {
		return "", err
	}

	now := s.now()
	claims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.cfg.UserTokenIssuer,
			Audience:  jwt.ClaimStrings{s.cfg.UserTokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.UserTokenValidityDuration)),
		},
		Email: user.Email,
		Name:  user.UserName,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// IssueServiceToken authenticates a machine client against the reference
// client-id and client-secret held in the secret store and, on success,
// signs a short-lived service token (30 minutes by default) with a fresh
// jti and the token_type claim set to "service".
//
// Both reference values are compared constant-time and the same
// common.ErrInvalidClientCredentials comes back no matter which of the two
// mismatched.
func (s *Signer) IssueServiceToken(ctx context.Context, clientID, clientSecret string) (string, error) {
	refID, err := s.secrets.AccessSecret(ctx, s.cfg.SecretProjectID, s.cfg.ClientIDSecretName, s.cfg.SigningSecretVersion)
	if err != nil {
		return "", err
	}
	refSecret, err := s.secrets.AccessSecret(ctx, s.cfg.SecretProjectID, s.cfg.ClientSecretName, s.cfg.SigningSecretVersion)
	if err != nil {
		return "", err
	}

	idOK := subtle.ConstantTimeCompare(refID, []byte(clientID)) == 1
	secretOK := subtle.ConstantTimeCompare(refSecret, []byte(clientSecret)) == 1
	if !idOK || !secretOK {
		return "", common.ErrInvalidClientCredentials
	}

	secret, err := s.signingSecret(ctx)
	if err != nil {
		return "", err
	}

	now := s.now()
	claims := ServiceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			ID:        uuid.NewString(),
			Issuer:    s.cfg.ServiceTokenIssuer,
			Audience:  jwt.ClaimStrings{s.cfg.ServiceTokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.ServiceTokenValidityDuration)),
		},
		TokenType: ServiceTokenType,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *Signer) signingSecret(ctx context.Context) ([]byte, error) {
	return s.secrets.AccessSecret(ctx, s.cfg.SecretProjectID, s.cfg.SigningSecretName, s.cfg.SigningSecretVersion)
}
