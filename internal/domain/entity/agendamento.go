package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status possíveis de um agendamento. Máquina de estados:
//
//	pendente   → confirmado | cancelado
//	confirmado → realizado | cancelado | reagendado | nao_compareceu
//
// Os demais status são terminais para a instância: um agendamento reagendado nunca
// reabre; um novo agendamento é criado apontando para ele via ReagendadoDe.
const (
	AgendamentoPendente      = "pendente"
	AgendamentoConfirmado    = "confirmado"
	AgendamentoCancelado     = "cancelado"
	AgendamentoReagendado    = "reagendado"
	AgendamentoRealizado     = "realizado"
	AgendamentoNaoCompareceu = "nao_compareceu"
)

// Canais de atendimento.
const (
	CanalPresencial = "presencial"
	CanalOnline     = "online"
	CanalTelefone   = "telefone"
)

// Autores possíveis de um cancelamento.
const (
	CanceladoPorCliente     = "cliente"
	CanceladoPorFuncionario = "funcionario"
	CanceladoPorSistema     = "sistema"
)

// Agendamento é a reserva de um cliente contra exatamente uma agenda.
type Agendamento struct {
	ID               string
	AgendaID         string
	UsuarioID        string // prestador
	EmpresaID        string // vazio para prestador autônomo
	ClienteNome      string
	ClienteEmail     string
	ClienteTelefone  string
	Data             time.Time
	HoraInicio       string // "HH:MM"
	HoraFim          string // "HH:MM"
	Duracao          int    // minutos
	Status           string
	Canal            string
	Preco            decimal.Decimal
	StatusPagamento  string
	Observacoes      string
	Justificativa    string // justificativa do cancelamento
	CanceladoPor     string
	ReagendadoDe     string // ID do agendamento anterior na cadeia (nunca um ciclo)
	DataConfirmacao  *time.Time
	DataRealizacao   *time.Time
	DataCancelamento *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// InicioEm compõe a data e a hora de início num instante concreto.
func (a *Agendamento) InicioEm() time.Time {
	return comporHorario(a.Data, a.HoraInicio)
}

// FimEm compõe a data e a hora de fim num instante concreto.
func (a *Agendamento) FimEm() time.Time {
	return comporHorario(a.Data, a.HoraFim)
}

// PodeConfirmar: só agendamentos pendentes podem ser confirmados.
func (a *Agendamento) PodeConfirmar() bool {
	return a.Status == AgendamentoPendente
}

// PodeCancelar: pendente e confirmado são os únicos status vivos canceláveis.
// A antecedência mínima é decisão da policy de cancelamento, não da entidade.
func (a *Agendamento) PodeCancelar() bool {
	return a.Status == AgendamentoPendente || a.Status == AgendamentoConfirmado
}

// PodeReagendar: somente agendamentos confirmados entram na cadeia de reagendamento.
func (a *Agendamento) PodeReagendar() bool {
	return a.Status == AgendamentoConfirmado
}

// PodeFinalizar: realizado/nao_compareceu só a partir de confirmado.
func (a *Agendamento) PodeFinalizar() bool {
	return a.Status == AgendamentoConfirmado
}

// EstaAtivo informa se o agendamento ainda ocupa vaga na agenda.
func (a *Agendamento) EstaAtivo() bool {
	return a.Status == AgendamentoPendente || a.Status == AgendamentoConfirmado
}

// comporHorario junta uma data (só dia) com "HH:MM" no fuso local.
func comporHorario(data time.Time, hora string) time.Time {
	var hh, mm int
	fmt.Sscanf(hora, "%d:%d", &hh, &mm)
	return time.Date(data.Year(), data.Month(), data.Day(), hh, mm, 0, 0, time.Local)
}
