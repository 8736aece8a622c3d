package scheduling

import (
	"context"

	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
	"github.com/agendafacil/agendafacil-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando repositórios
// amarrados a essa tx. Garante atomicidade entre a reserva de vaga e a escrita do
// agendamento: ou ambas acontecem, ou nenhuma.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		agendaRepo repository.AgendaRepository,
		agendamentoRepo repository.AgendamentoRepository,
	) error) error
}

// Notificador porta de notificações disparadas após o commit. Fire-and-forget:
// os métodos não devolvem erro e nunca revertem a operação que os originou.
type Notificador interface {
	AgendamentoCriado(ctx context.Context, ag *entity.Agendamento)
	AgendamentoConfirmado(ctx context.Context, ag *entity.Agendamento)
	AgendamentoCancelado(ctx context.Context, ag *entity.Agendamento)
	AgendamentoReagendado(ctx context.Context, novo, anterior *entity.Agendamento)
}
