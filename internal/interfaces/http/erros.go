package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/agendafacil/agendafacil-api/internal/application/dto"
	"github.com/agendafacil/agendafacil-api/internal/domain"
)

// respondErro traduz erros de domínio para status HTTP e corpo padronizado.
// A taxonomia é estável: clientes de API podem decidir pelo campo code.
func respondErro(c *fiber.Ctx, err error) error {
	var trialErr *domain.TrialExpiradoError
	if errors.As(err, &trialErr) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "TRIAL_EXPIRADO",
			Message: fmt.Sprintf("trial expirado há %d dia(s); faça upgrade do plano para continuar", trialErr.DiasExpirado()),
		})
	}
	var limiteErr *domain.LimiteExcedidoError
	if errors.As(err, &limiteErr) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "LIMITE_EXCEDIDO",
			Message: limiteErr.Error(),
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return erro(c, fiber.StatusBadRequest, "VALIDATION", "dados inválidos")
	case errors.Is(err, domain.ErrHorarioInvalido):
		return erro(c, fiber.StatusBadRequest, "HORARIO_INVALIDO", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return erro(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciais inválidas")
	case errors.Is(err, domain.ErrForbidden):
		return erro(c, fiber.StatusForbidden, "FORBIDDEN", "acesso negado ao recurso")
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRedeNaoEncontrada):
		return erro(c, fiber.StatusNotFound, "NOT_FOUND", "recurso não encontrado")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return erro(c, fiber.StatusConflict, "EMAIL_EXISTS", err.Error())
	case errors.Is(err, domain.ErrCapacidadeEsgotada):
		return erro(c, fiber.StatusConflict, "CAPACIDADE_ESGOTADA", err.Error())
	case errors.Is(err, domain.ErrTransicaoInvalida):
		return erro(c, fiber.StatusConflict, "TRANSICAO_INVALIDA", err.Error())
	case errors.Is(err, domain.ErrAgendaComAgendamentos):
		return erro(c, fiber.StatusConflict, "AGENDA_COM_AGENDAMENTOS", err.Error())
	case errors.Is(err, domain.ErrRedeJaExiste):
		return erro(c, fiber.StatusConflict, "REDE_JA_EXISTE", err.Error())
	case errors.Is(err, domain.ErrCpfCnpjJaUsado):
		return erro(c, fiber.StatusConflict, "CPF_CNPJ_JA_USADO", err.Error())
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return erro(c, fiber.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, domain.ErrCancelamentoNaoPermitido):
		return erro(c, fiber.StatusForbidden, "CANCELAMENTO_NAO_PERMITIDO", err.Error())
	case errors.Is(err, domain.ErrReagendamentoNaoPermitido):
		return erro(c, fiber.StatusForbidden, "REAGENDAMENTO_NAO_PERMITIDO", err.Error())
	}
	return erro(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
}

func erro(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}
