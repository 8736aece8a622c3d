package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status possíveis de uma agenda (devem coincidir com o CHECK da tabela agendas).
const (
	AgendaStatusDisponivel = "disponivel"
	AgendaStatusOcupado    = "ocupado"
	AgendaStatusCancelado  = "cancelado"
	AgendaStatusPausado    = "pausado"
)

// Tipos de agenda.
const (
	AgendaTipoUnico      = "unico"
	AgendaTipoRecorrente = "recorrente"
)

// Agenda representa um horário disponibilizado por um prestador, com capacidade finita.
// agendamentos_atuais é mantido exclusivamente por ReservarVaga/LiberarVaga no repositório
// (update condicional, nunca read-then-write).
type Agenda struct {
	ID                 string
	UsuarioID          string // prestador dono da agenda
	Titulo             string
	Descricao          string
	Data               time.Time // só a data; horas em HoraInicio/HoraFim
	HoraInicio         string    // "HH:MM"
	HoraFim            string    // "HH:MM"
	Duracao            int       // minutos
	Intervalo          int       // intervalo entre agendamentos, minutos
	MaxAgendamentos    int
	AgendamentosAtuais int
	Status             string
	Tipo               string
	Recorrencia        *Recorrencia
	Preco              decimal.Decimal
	Moeda              string
	Local              string
	Configuracoes      AgendaConfiguracoes
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Recorrencia descreve a repetição de uma agenda recorrente (coluna jsonb).
type Recorrencia struct {
	Frequencia string `json:"frequencia"` // diaria, semanal, mensal
	DiasSemana []int  `json:"dias_semana,omitempty"`
	AteData    string `json:"ate_data,omitempty"` // "2006-01-02"
}

// AgendaConfiguracoes configurações por agenda (coluna jsonb).
type AgendaConfiguracoes struct {
	ConfirmacaoAutomatica  bool `json:"confirmacao_automatica"`
	Lembrete24h            bool `json:"lembrete_24h"`
	Lembrete1h             bool `json:"lembrete_1h"`
	CancelamentoAteHoras   int  `json:"cancelamento_ate"` // horas de antecedência
	ReagendamentoPermitido bool `json:"reagendamento_permitido"`
	PagamentoObrigatorio   bool `json:"pagamento_obrigatorio"`
}

// DefaultConfiguracoes valores padrão quando o prestador não envia configurações.
func DefaultConfiguracoes() AgendaConfiguracoes {
	return AgendaConfiguracoes{
		ConfirmacaoAutomatica:  true,
		Lembrete24h:            true,
		Lembrete1h:             true,
		CancelamentoAteHoras:   24,
		ReagendamentoPermitido: true,
		PagamentoObrigatorio:   false,
	}
}

// EstaDisponivel informa se a agenda aceita novos agendamentos.
func (a *Agenda) EstaDisponivel() bool {
	return a.Status == AgendaStatusDisponivel && a.AgendamentosAtuais < a.MaxAgendamentos
}

// ContemHorario verifica se o intervalo pedido cabe na janela da agenda.
// Horas em "HH:MM" com zero à esquerda comparam corretamente como string.
func (a *Agenda) ContemHorario(horaInicio, horaFim string) bool {
	return horaInicio < horaFim && horaInicio >= a.HoraInicio && horaFim <= a.HoraFim
}

// CancelamentoAteHoras devolve a antecedência mínima da agenda, ou o padrão do sistema
// quando a agenda não define a sua (0).
func (a *Agenda) CancelamentoAteHoras(padrao int) int {
	if a.Configuracoes.CancelamentoAteHoras > 0 {
		return a.Configuracoes.CancelamentoAteHoras
	}
	return padrao
}

// HorarioValido valida a janela no momento da criação: inicio < fim, duração positiva
// e capacidade mínima de 1.
func (a *Agenda) HorarioValido() bool {
	if a.HoraInicio == "" || a.HoraFim == "" || a.HoraInicio >= a.HoraFim {
		return false
	}
	return a.Duracao > 0 && a.MaxAgendamentos >= 1
}
