package repository

import (
	"context"
	"time"

	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
)

// AgendamentoFiltros filtros para listagem de agendamentos conforme o papel do caller.
type AgendamentoFiltros struct {
	UsuarioID    string // prestador
	EmpresaID    string
	ClienteEmail string
	Status       string
	Data         *time.Time
}

// AgendamentoRepository porta de persistência de agendamentos.
// As transições de status gravam também os timestamps correspondentes.
type AgendamentoRepository interface {
	Create(ctx context.Context, ag *entity.Agendamento) error
	GetByID(ctx context.Context, id string) (*entity.Agendamento, error)
	List(ctx context.Context, f AgendamentoFiltros, limit, offset int) ([]*entity.Agendamento, error)

	Confirmar(ctx context.Context, id string, quando time.Time) error
	Cancelar(ctx context.Context, id, justificativa, canceladoPor string, quando time.Time) error
	MarcarReagendado(ctx context.Context, id string, quando time.Time) error
	MarcarRealizado(ctx context.Context, id string, quando time.Time) error
	MarcarNaoCompareceu(ctx context.Context, id string, quando time.Time) error

	// CancelarAtivosDaAgenda cancela em lote os agendamentos vivos de uma agenda
	// (remoção em cascata). Devolve quantos foram cancelados.
	CancelarAtivosDaAgenda(ctx context.Context, agendaID, justificativa string, quando time.Time) (int, error)

	// CountByRedeNoMes conta os agendamentos do mês de ref em todas as empresas da
	// rede. Contagem viva sobre as linhas, não um contador mantido.
	CountByRedeNoMes(ctx context.Context, redeID string, ref time.Time) (int, error)
}
