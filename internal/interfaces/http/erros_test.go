package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendafacil/agendafacil-api/internal/application/dto"
	"github.com/agendafacil/agendafacil-api/internal/domain"
)

// respondeCom monta uma rota que devolve o erro dado via respondErro e captura
// o status e o corpo da resposta.
func respondeCom(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return respondErro(c, err)
	})

	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

// ──────────────────────────────────────────────────────────────────────────────
// Taxonomia de erros → status HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestRespondErro_MapaDeStatus(t *testing.T) {
	casos := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{domain.ErrHorarioInvalido, http.StatusBadRequest, "HORARIO_INVALIDO"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrRedeNaoEncontrada, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrEmailAlreadyExists, http.StatusConflict, "EMAIL_EXISTS"},
		{domain.ErrCapacidadeEsgotada, http.StatusConflict, "CAPACIDADE_ESGOTADA"},
		{domain.ErrTransicaoInvalida, http.StatusConflict, "TRANSICAO_INVALIDA"},
		{domain.ErrAgendaComAgendamentos, http.StatusConflict, "AGENDA_COM_AGENDAMENTOS"},
		{domain.ErrRedeJaExiste, http.StatusConflict, "REDE_JA_EXISTE"},
		{domain.ErrCpfCnpjJaUsado, http.StatusConflict, "CPF_CNPJ_JA_USADO"},
		{domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{domain.ErrCancelamentoNaoPermitido, http.StatusForbidden, "CANCELAMENTO_NAO_PERMITIDO"},
		{domain.ErrReagendamentoNaoPermitido, http.StatusForbidden, "REAGENDAMENTO_NAO_PERMITIDO"},
	}
	for _, c := range casos {
		status, body := respondeCom(t, c.err)
		assert.Equal(t, c.status, status, c.code)
		assert.Equal(t, c.code, body.Code)
	}
}

func TestRespondErro_TrialExpirado_403(t *testing.T) {
	agora := time.Now()
	status, body := respondeCom(t, &domain.TrialExpiradoError{
		TrialFim: agora.Add(-5 * 24 * time.Hour),
		Agora:    agora,
	})

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "TRIAL_EXPIRADO", body.Code)
	assert.Contains(t, body.Message, "5 dia(s)")
	assert.Contains(t, body.Message, "upgrade")
}

func TestRespondErro_LimiteExcedido_403(t *testing.T) {
	status, body := respondeCom(t, &domain.LimiteExcedidoError{
		Recurso: "empresas",
		Atual:   1,
		Limite:  1,
		Plano:   "basico",
	})

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "LIMITE_EXCEDIDO", body.Code)
	assert.Contains(t, body.Message, "empresas")
	assert.Contains(t, body.Message, "basico")
}

func TestRespondErro_ErroDesconhecido_500(t *testing.T) {
	status, body := respondeCom(t, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body.Code)
}
