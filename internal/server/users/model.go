package users

import "github.com/tokenforge/authapi/internal/repository"

// User is a registered account. UserName is the case-normalized email and is
// unique across the store; PasswordHash is opaque to everything except the
// credential hasher; Version backs optimistic-concurrency updates.
type User struct {
	ID           string
	UserName     string
	Email        string
	Name         string
	PasswordHash string
	Version      int64
}

func (u User) EntityID() string     { return u.ID }
func (u User) EntityVersion() int64 { return u.Version }

type mapper struct{}

func (mapper) Table() string         { return "users" }
func (mapper) IDColumn() string      { return "id" }
func (mapper) VersionColumn() string { return "version" }

func (mapper) Columns() []string {
	return []string{"id", "username", "email", "name", "password_hash", "version"}
}

func (mapper) Scan(row repository.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.UserName, &u.Email, &u.Name, &u.PasswordHash, &u.Version)
	return u, err
}

func (mapper) Values(u User) []any {
	return []any{u.ID, u.UserName, u.Email, u.Name, u.PasswordHash, u.Version}
}
