package repository

import (
	"context"
	"time"

	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
)

// AgendaFiltros filtros opcionais para listagem de agendas.
type AgendaFiltros struct {
	Data   *time.Time
	Status string
}

// AgendaRepository porta de persistência de agendas.
//
// ReservarVaga e LiberarVaga são as ÚNICAS mutações de agendamentos_atuais:
// implementações devem usar um update condicional atômico (WHERE contra a
// capacidade), nunca read-then-write.
type AgendaRepository interface {
	Create(ctx context.Context, agenda *entity.Agenda) error
	GetByID(ctx context.Context, id string) (*entity.Agenda, error)
	ListByUsuario(ctx context.Context, usuarioID string, f AgendaFiltros, limit, offset int) ([]*entity.Agenda, error)

	// ReservarVaga incrementa agendamentos_atuais se houver vaga; ao lotar,
	// muda o status para ocupado. Devolve domain.ErrCapacidadeEsgotada se não há vaga.
	ReservarVaga(ctx context.Context, agendaID string) error

	// LiberarVaga decrementa agendamentos_atuais (piso 0) e reabre agendas ocupadas.
	LiberarVaga(ctx context.Context, agendaID string) error

	// Cancelar marca a agenda como cancelada (sem tocar nos agendamentos).
	Cancelar(ctx context.Context, agendaID string) error

	Delete(ctx context.Context, agendaID string) error
}
