package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/agendafacil/agendafacil-api/internal/application/dto"
)

// redeChecker é o contrato mínimo que o middleware precisa para validar a rede.
// Implementado por *rede.UseCase; a interface evita o import circular.
type redeChecker interface {
	ValidarOperacao(ctx context.Context, adminID, redeID string) error
}

// RequireRedeAtiva devolve um middleware Fiber que bloqueia rotas de rede quando o
// trial expirou ou a rede está inativa. Deve vir DEPOIS de AuthMiddleware e em rotas
// com o parâmetro :redeId. Os usecases repetem a checagem dentro da transação; o
// middleware só antecipa a resposta.
func RequireRedeAtiva(checker redeChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminID := GetUserID(c)
		if adminID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id não encontrado no token",
			})
		}
		redeID := c.Params("redeId")
		if redeID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: "redeId obrigatório na rota",
			})
		}
		if err := checker.ValidarOperacao(c.Context(), adminID, redeID); err != nil {
			return respondErro(c, err)
		}
		return c.Next()
	}
}
