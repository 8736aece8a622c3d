package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/agendafacil/agendafacil-api/internal/application/dto"
	"github.com/agendafacil/agendafacil-api/internal/application/scheduling"
	"github.com/agendafacil/agendafacil-api/pkg/jwt"
)

// Locals keys para identidade do token no Fiber.
const (
	LocalUserID    = "user_id"
	LocalEmpresaID = "empresa_id"
	LocalTipo      = "tipo"
)

// AuthMiddleware valida o Bearer Token JWT e extrai UserID, EmpresaID e Tipo para c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		userID, empresaID, tipo, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalEmpresaID, empresaID)
		c.Locals(LocalTipo, tipo)
		return c.Next()
	}
}

// GetUserID devolve o UserID do contexto (depois do middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetEmpresaID devolve o EmpresaID do contexto (vazio para clientes e admins de rede).
func GetEmpresaID(c *fiber.Ctx) string {
	return localString(c, LocalEmpresaID)
}

// GetTipo devolve o tipo de usuário do contexto.
func GetTipo(c *fiber.Ctx) string {
	return localString(c, LocalTipo)
}

// AtorDe monta o Ator dos usecases a partir do token.
func AtorDe(c *fiber.Ctx) scheduling.Ator {
	return scheduling.Ator{
		UserID:    GetUserID(c),
		Tipo:      GetTipo(c),
		EmpresaID: GetEmpresaID(c),
	}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
