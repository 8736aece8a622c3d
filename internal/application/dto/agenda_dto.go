package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
)

// CreateAgendaRequest payload de criação de agenda.
type CreateAgendaRequest struct {
	Titulo          string                      `json:"titulo"`
	Descricao       string                      `json:"descricao"`
	Data            string                      `json:"data"`        // "2006-01-02"
	HoraInicio      string                      `json:"hora_inicio"` // "HH:MM"
	HoraFim         string                      `json:"hora_fim"`    // "HH:MM"
	Duracao         int                         `json:"duracao"`     // minutos
	Intervalo       int                         `json:"intervalo"`
	MaxAgendamentos int                         `json:"max_agendamentos"`
	Tipo            string                      `json:"tipo"`
	Recorrencia     *entity.Recorrencia         `json:"recorrencia,omitempty"`
	Preco           decimal.Decimal             `json:"preco"`
	Moeda           string                      `json:"moeda"`
	Local           string                      `json:"local"`
	Configuracoes   *entity.AgendaConfiguracoes `json:"configuracoes,omitempty"`
}

// AgendaResponse representação de uma agenda na API.
type AgendaResponse struct {
	ID                 string                     `json:"id"`
	UsuarioID          string                     `json:"usuario_id"`
	Titulo             string                     `json:"titulo"`
	Descricao          string                     `json:"descricao,omitempty"`
	Data               string                     `json:"data"`
	HoraInicio         string                     `json:"hora_inicio"`
	HoraFim            string                     `json:"hora_fim"`
	Duracao            int                        `json:"duracao"`
	Intervalo          int                        `json:"intervalo"`
	MaxAgendamentos    int                        `json:"max_agendamentos"`
	AgendamentosAtuais int                        `json:"agendamentos_atuais"`
	VagasDisponiveis   int                        `json:"vagas_disponiveis"`
	Status             string                     `json:"status"`
	Tipo               string                     `json:"tipo"`
	Recorrencia        *entity.Recorrencia        `json:"recorrencia,omitempty"`
	Preco              decimal.Decimal            `json:"preco"`
	Moeda              string                     `json:"moeda"`
	Local              string                     `json:"local,omitempty"`
	Configuracoes      entity.AgendaConfiguracoes `json:"configuracoes"`
	CreatedAt          time.Time                  `json:"created_at"`
}

// ToAgendaResponse converte a entidade na representação da API.
func ToAgendaResponse(a *entity.Agenda) AgendaResponse {
	vagas := a.MaxAgendamentos - a.AgendamentosAtuais
	if vagas < 0 {
		vagas = 0
	}
	return AgendaResponse{
		ID:                 a.ID,
		UsuarioID:          a.UsuarioID,
		Titulo:             a.Titulo,
		Descricao:          a.Descricao,
		Data:               a.Data.Format("2006-01-02"),
		HoraInicio:         a.HoraInicio,
		HoraFim:            a.HoraFim,
		Duracao:            a.Duracao,
		Intervalo:          a.Intervalo,
		MaxAgendamentos:    a.MaxAgendamentos,
		AgendamentosAtuais: a.AgendamentosAtuais,
		VagasDisponiveis:   vagas,
		Status:             a.Status,
		Tipo:               a.Tipo,
		Recorrencia:        a.Recorrencia,
		Preco:              a.Preco,
		Moeda:              a.Moeda,
		Local:              a.Local,
		Configuracoes:      a.Configuracoes,
		CreatedAt:          a.CreatedAt,
	}
}

// ToAgendaResponses converte uma lista de entidades.
func ToAgendaResponses(agendas []*entity.Agenda) []AgendaResponse {
	out := make([]AgendaResponse, 0, len(agendas))
	for _, a := range agendas {
		out = append(out, ToAgendaResponse(a))
	}
	return out
}
