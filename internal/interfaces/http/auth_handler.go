package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agendafacil/agendafacil-api/internal/application/auth"
	"github.com/agendafacil/agendafacil-api/internal/application/dto"
)

// AuthHandler rotas públicas de registro e login.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler constrói o handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuário
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "nome, email, senha, tipo (cliente|empresa|admin_rede)"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return erro(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email e senha"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return erro(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(out)
}
