package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendafacil/agendafacil-api/internal/application/dto"
	"github.com/agendafacil/agendafacil-api/internal/domain"
	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
	"github.com/agendafacil/agendafacil-api/internal/domain/repository"
)

func novoAgendaUC(agora time.Time) (*AgendaUseCase, *fakeAgendaRepo, *fakeAgendamentoRepo) {
	agendas := newFakeAgendaRepo()
	agendamentos := newFakeAgendamentoRepo()
	tx := &fakeTxRunner{agendaRepo: agendas, agendamentoRepo: agendamentos}
	uc := NewAgendaUseCase(tx, agendas, agendamentos)
	uc.agora = func() time.Time { return agora }
	return uc, agendas, agendamentos
}

func criarAgendaRequest() dto.CreateAgendaRequest {
	return dto.CreateAgendaRequest{
		Titulo:     "Corte de cabelo",
		Data:       "2026-03-11",
		HoraInicio: "09:00",
		HoraFim:    "18:00",
		Duracao:    30,
		Preco:      decimal.NewFromInt(50),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Criar — defaults e validações
// ──────────────────────────────────────────────────────────────────────────────

func TestCriarAgenda_Defaults(t *testing.T) {
	uc, _, _ := novoAgendaUC(agoraTeste)

	out, err := uc.Criar(context.Background(), "p1", criarAgendaRequest())
	require.NoError(t, err)

	assert.Equal(t, entity.AgendaStatusDisponivel, out.Status)
	assert.Equal(t, entity.AgendaTipoUnico, out.Tipo)
	assert.Equal(t, "BRL", out.Moeda)
	assert.Equal(t, 1, out.MaxAgendamentos, "capacidade padrão é 1")
	assert.Equal(t, 1, out.VagasDisponiveis)
	assert.True(t, out.Configuracoes.ConfirmacaoAutomatica, "sem configurações, aplica os defaults")
}

func TestCriarAgenda_SemTitulo(t *testing.T) {
	uc, _, _ := novoAgendaUC(agoraTeste)

	in := criarAgendaRequest()
	in.Titulo = ""

	_, err := uc.Criar(context.Background(), "p1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCriarAgenda_HoraInvalida(t *testing.T) {
	uc, _, _ := novoAgendaUC(agoraTeste)

	in := criarAgendaRequest()
	in.HoraInicio = "9h00"

	_, err := uc.Criar(context.Background(), "p1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCriarAgenda_JanelaInvertida(t *testing.T) {
	uc, _, _ := novoAgendaUC(agoraTeste)

	in := criarAgendaRequest()
	in.HoraInicio = "18:00"
	in.HoraFim = "09:00"

	_, err := uc.Criar(context.Background(), "p1", in)
	assert.ErrorIs(t, err, domain.ErrHorarioInvalido)
}

func TestCriarAgenda_RecorrenteExigeRecorrencia(t *testing.T) {
	uc, _, _ := novoAgendaUC(agoraTeste)

	in := criarAgendaRequest()
	in.Tipo = entity.AgendaTipoRecorrente

	_, err := uc.Criar(context.Background(), "p1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in.Recorrencia = &entity.Recorrencia{Frequencia: "semanal", DiasSemana: []int{1, 3, 5}}
	out, err := uc.Criar(context.Background(), "p1", in)
	require.NoError(t, err)
	assert.Equal(t, entity.AgendaTipoRecorrente, out.Tipo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelar — cascata sobre os agendamentos vivos
// ──────────────────────────────────────────────────────────────────────────────

func seedAgendaComAgendamentos(agendas *fakeAgendaRepo, agendamentos *fakeAgendamentoRepo) {
	agendas.agendas["agd-1"] = &entity.Agenda{
		ID:              "agd-1",
		UsuarioID:       "p1",
		Titulo:          "Consulta",
		Data:            time.Date(2026, 3, 11, 0, 0, 0, 0, time.Local),
		HoraInicio:      "09:00",
		HoraFim:         "18:00",
		Duracao:         60,
		MaxAgendamentos: 5,
		Status:          entity.AgendaStatusDisponivel,
		Configuracoes:   entity.DefaultConfiguracoes(),
	}
	seed := func(id, status string) {
		agendamentos.items[id] = &entity.Agendamento{
			ID:       id,
			AgendaID: "agd-1",
			Status:   status,
			Data:     time.Date(2026, 3, 11, 0, 0, 0, 0, time.Local),
		}
	}
	seed("ag-1", entity.AgendamentoPendente)
	seed("ag-2", entity.AgendamentoConfirmado)
	seed("ag-3", entity.AgendamentoRealizado) // fechado; a cascata não o toca
	agendas.agendas["agd-1"].AgendamentosAtuais = 2
}

func TestCancelarAgenda_CascataCancelaVivos(t *testing.T) {
	uc, agendas, agendamentos := novoAgendaUC(agoraTeste)
	seedAgendaComAgendamentos(agendas, agendamentos)

	cancelados, err := uc.Cancelar(context.Background(), "p1", "agd-1")
	require.NoError(t, err)

	assert.Equal(t, 2, cancelados, "somente pendente e confirmado entram na cascata")
	assert.Equal(t, entity.AgendamentoCancelado, agendamentos.status("ag-1"))
	assert.Equal(t, entity.AgendamentoCancelado, agendamentos.status("ag-2"))
	assert.Equal(t, entity.AgendamentoRealizado, agendamentos.status("ag-3"))
	assert.Equal(t, entity.AgendaStatusCancelado, agendas.agendas["agd-1"].Status)
}

func TestCancelarAgenda_DeOutroPrestador_Negado(t *testing.T) {
	uc, agendas, agendamentos := novoAgendaUC(agoraTeste)
	seedAgendaComAgendamentos(agendas, agendamentos)

	_, err := uc.Cancelar(context.Background(), "p2", "agd-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCancelarAgenda_JaCancelada(t *testing.T) {
	uc, agendas, agendamentos := novoAgendaUC(agoraTeste)
	seedAgendaComAgendamentos(agendas, agendamentos)
	agendas.agendas["agd-1"].Status = entity.AgendaStatusCancelado

	_, err := uc.Cancelar(context.Background(), "p1", "agd-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Remover — só sem agendamentos vivos
// ──────────────────────────────────────────────────────────────────────────────

func TestRemoverAgenda_ComAgendamentos_Negado(t *testing.T) {
	uc, agendas, agendamentos := novoAgendaUC(agoraTeste)
	seedAgendaComAgendamentos(agendas, agendamentos)

	err := uc.Remover(context.Background(), "p1", "agd-1")
	assert.ErrorIs(t, err, domain.ErrAgendaComAgendamentos)
}

func TestRemoverAgenda_Vazia(t *testing.T) {
	uc, agendas, agendamentos := novoAgendaUC(agoraTeste)
	seedAgendaComAgendamentos(agendas, agendamentos)
	agendas.agendas["agd-1"].AgendamentosAtuais = 0

	err := uc.Remover(context.Background(), "p1", "agd-1")
	require.NoError(t, err)

	_, err = agendas.GetByID(context.Background(), "agd-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listar
// ──────────────────────────────────────────────────────────────────────────────

func TestListarAgendas_FiltraPorStatus(t *testing.T) {
	uc, agendas, agendamentos := novoAgendaUC(agoraTeste)
	seedAgendaComAgendamentos(agendas, agendamentos)

	outra := *agendas.agendas["agd-1"]
	outra.ID = "agd-2"
	outra.Status = entity.AgendaStatusCancelado
	agendas.agendas["agd-2"] = &outra

	out, err := uc.Listar(context.Background(), "p1", repository.AgendaFiltros{Status: entity.AgendaStatusDisponivel}, dto.PageRequest{})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "agd-1", out[0].ID)
}
