// Package notifier implementação de notificações pós-commit.
// Hoje registra eventos estruturados no log; o contrato já isola um futuro
// envio por email/WhatsApp sem tocar nos usecases.
package notifier

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agendafacil/agendafacil-api/internal/application/scheduling"
	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
	"github.com/agendafacil/agendafacil-api/pkg/logger"
)

var _ scheduling.Notificador = (*LogNotifier)(nil)

// LogNotifier Notificador que emite eventos no log estruturado.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier constrói o notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) AgendamentoCriado(_ context.Context, ag *entity.Agendamento) {
	n.evento("agendamento_criado", ag).Str("status", ag.Status).Msg("agendamento criado")
}

func (n *LogNotifier) AgendamentoConfirmado(_ context.Context, ag *entity.Agendamento) {
	n.evento("agendamento_confirmado", ag).Msg("agendamento confirmado")
}

func (n *LogNotifier) AgendamentoCancelado(_ context.Context, ag *entity.Agendamento) {
	n.evento("agendamento_cancelado", ag).
		Str("cancelado_por", ag.CanceladoPor).
		Msg("agendamento cancelado")
}

func (n *LogNotifier) AgendamentoReagendado(_ context.Context, novo, anterior *entity.Agendamento) {
	n.evento("agendamento_reagendado", novo).
		Str("anterior_id", anterior.ID).
		Msg("agendamento reagendado")
}

func (n *LogNotifier) evento(tipo string, ag *entity.Agendamento) *zerolog.Event {
	return n.log.Info().
		Str("evento", tipo).
		Str("agendamento_id", ag.ID).
		Str("agenda_id", ag.AgendaID).
		Str("cliente_email", ag.ClienteEmail).
		Str("data", ag.Data.Format("2006-01-02")).
		Str("hora_inicio", ag.HoraInicio)
}
