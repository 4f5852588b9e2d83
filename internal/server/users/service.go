package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tokenforge/authapi/internal/cryptox"
)

// Postgres error code for unique constraint violations.
const pgUniqueViolation = "23505"

// TokenIssuer mints signed bearer tokens for the two claim profiles.
type TokenIssuer interface {
	IssueUserToken(ctx context.Context, user User) (string, error)
	IssueServiceToken(ctx context.Context, clientID, clientSecret string) (string, error)
}

// UserDTO is the outward-facing projection of a User; the credential hash
// never leaves the service.
type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginResult carries the outcome of a login attempt. A nil User signals a
// failed attempt; wrong password and unknown username are deliberately
// indistinguishable.
type LoginResult struct {
	User  *UserDTO
	Token string
}

// Service composes the user repository, the credential hasher and the token
// issuer into the register/login/service-token flows. It holds no state of
// its own; every dependency is passed in.
type Service struct {
	repo   Repository
	hasher cryptox.Hasher
	tokens TokenIssuer
}

func NewService(repo Repository, hasher cryptox.Hasher, tokens TokenIssuer) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

// NormalizeUserName maps an email or username to its lookup form.
func NormalizeUserName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Register creates a new user whose username derives from the normalized
// email. It returns a non-empty message when the request was rejected for a
// reason the caller can fix (only the first reason, to keep the response
// surface simple) and an empty message on success. Unexpected failures
// propagate as errors, unchanged.
func (s *Service) Register(ctx context.Context, email, name, password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		UserName:     NormalizeUserName(email),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Version:      1,
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Sprintf("email '%s' is already taken", email), nil
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return "", nil
}

// Login verifies the password for the given username and, on success, mints
// a user session token. An unknown username or a failed verification both
// return a result with a nil User and no error; only infrastructure
// failures surface as errors.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	matches, err := s.repo.FindAll(ctx, ByUserName(NormalizeUserName(username)))
	if err != nil {
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	if len(matches) == 0 {
		return &LoginResult{}, nil
	}

	// Uniqueness is store-enforced; first match wins.
	user := matches[0]

	if !s.hasher.Verify(user.PasswordHash, password) {
		return &LoginResult{}, nil
	}

	token, err := s.tokens.IssueUserToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:  &UserDTO{ID: user.ID, Email: user.Email, Name: user.Name},
		Token: token,
	}, nil
}

// GenerateServiceToken delegates to the token issuer; its failures pass
// through unchanged.
func (s *Service) GenerateServiceToken(ctx context.Context, clientID, clientSecret string) (string, error) {
	return s.tokens.IssueServiceToken(ctx, clientID, clientSecret)
}
