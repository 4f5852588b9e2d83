// Package httpapi is the HTTP boundary of the service. It exposes the
// register, login and service-token operations as JSON endpoints and keeps
// every internal error detail on its side of the wire.
package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tokenforge/authapi/internal/logging"
	"github.com/tokenforge/authapi/internal/server/users"
)

// AuthService is the application surface the HTTP layer drives.
type AuthService interface {
	Register(ctx context.Context, email, name, password string) (string, error)
	Login(ctx context.Context, username, password string) (*users.LoginResult, error)
	GenerateServiceToken(ctx context.Context, clientID, clientSecret string) (string, error)
}

type Server struct {
	address string
	logger  logging.Logger
	auth    AuthService
	app     *fiber.App
}

func NewServer(address string, l logging.Logger, auth AuthService) *Server {
	s := &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		auth:    auth,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	api := app.Group("/api/auth")
	api.Post("/register", s.register)
	api.Post("/login", s.login)
	api.Post("/service-token", s.serviceToken)

	s.app = app
	return s
}

// App exposes the underlying fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(5 * time.Second); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return s.app.Listen(s.address)
}
