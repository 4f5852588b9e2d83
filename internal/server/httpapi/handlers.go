package httpapi

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"

	"github.com/tokenforge/authapi/internal/common"
	"github.com/tokenforge/authapi/internal/server/users"
)

// envelope is the uniform response body of every endpoint.
type envelope struct {
	IsSuccess bool   `json:"is_success"`
	Message   string `json:"message,omitempty"`
	Result    any    `json:"result,omitempty"`
}

func respondOK(c *fiber.Ctx, result any) error {
	return c.Status(fiber.StatusOK).JSON(envelope{IsSuccess: true, Result: result})
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(envelope{IsSuccess: false, Message: message})
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

func (s *Server) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}

	msg, err := s.auth.Register(c.UserContext(), req.Email, req.Name, req.Password)
	if err != nil {
		s.logger.Error(c.UserContext(), "register failed", "error", err)
		return respondError(c, fiber.StatusInternalServerError, "internal error")
	}
	if msg != "" {
		return respondError(c, fiber.StatusBadRequest, msg)
	}

	return respondOK(c, nil)
}

type loginRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserName, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type loginResponse struct {
	User  *users.UserDTO `json:"user"`
	Token string         `json:"token"`
}

func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := s.auth.Login(c.UserContext(), req.UserName, req.Password)
	if err != nil {
		s.logger.Error(c.UserContext(), "login failed", "error", err)
		return respondError(c, fiber.StatusInternalServerError, "internal error")
	}
	if result.User == nil {
		return respondError(c, fiber.StatusBadRequest, "username or password is incorrect")
	}

	return respondOK(c, loginResponse{User: result.User, Token: result.Token})
}

type serviceTokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

func (r serviceTokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ClientID, validation.Required),
		validation.Field(&r.ClientSecret, validation.Required),
	)
}

func (s *Server) serviceToken(c *fiber.Ctx) error {
	var req serviceTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}

	token, err := s.auth.GenerateServiceToken(c.UserContext(), req.ClientID, req.ClientSecret)
	if err != nil {
		if errors.Is(err, common.ErrInvalidClientCredentials) {
			return respondError(c, fiber.StatusUnauthorized, "invalid client credentials")
		}
		s.logger.Error(c.UserContext(), "service token issuance failed", "error", err)
		return respondError(c, fiber.StatusInternalServerError, "internal error")
	}

	return respondOK(c, token)
}
