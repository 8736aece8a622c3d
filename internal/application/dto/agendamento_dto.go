package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
)

// CreateAgendamentoRequest payload de criação de agendamento. A hora de fim é
// derivada da duração da agenda, não do cliente.
type CreateAgendamentoRequest struct {
	AgendaID        string `json:"agenda_id"`
	ClienteNome     string `json:"cliente_nome"`
	ClienteEmail    string `json:"cliente_email"`
	ClienteTelefone string `json:"cliente_telefone"`
	Data            string `json:"data"`        // "2006-01-02"
	HoraInicio      string `json:"hora_inicio"` // "HH:MM"
	Canal           string `json:"canal"`
	Observacoes     string `json:"observacoes"`
}

// CancelarAgendamentoRequest payload de cancelamento.
type CancelarAgendamentoRequest struct {
	Justificativa string `json:"justificativa"`
}

// ReagendarAgendamentoRequest payload de reagendamento. AgendaID pode apontar
// para outra agenda do mesmo prestador.
type ReagendarAgendamentoRequest struct {
	AgendaID      string `json:"agenda_id"`
	Data          string `json:"data"`
	HoraInicio    string `json:"hora_inicio"`
	Justificativa string `json:"justificativa"`
}

// AgendamentoResponse representação de um agendamento na API.
type AgendamentoResponse struct {
	ID               string          `json:"id"`
	AgendaID         string          `json:"agenda_id"`
	UsuarioID        string          `json:"usuario_id"`
	EmpresaID        string          `json:"empresa_id,omitempty"`
	ClienteNome      string          `json:"cliente_nome"`
	ClienteEmail     string          `json:"cliente_email"`
	ClienteTelefone  string          `json:"cliente_telefone,omitempty"`
	Data             string          `json:"data"`
	HoraInicio       string          `json:"hora_inicio"`
	HoraFim          string          `json:"hora_fim"`
	Duracao          int             `json:"duracao"`
	Status           string          `json:"status"`
	Canal            string          `json:"canal"`
	Preco            decimal.Decimal `json:"preco"`
	StatusPagamento  string          `json:"status_pagamento,omitempty"`
	Observacoes      string          `json:"observacoes,omitempty"`
	Justificativa    string          `json:"justificativa,omitempty"`
	CanceladoPor     string          `json:"cancelado_por,omitempty"`
	ReagendadoDe     string          `json:"reagendado_de,omitempty"`
	DataConfirmacao  *time.Time      `json:"data_confirmacao,omitempty"`
	DataRealizacao   *time.Time      `json:"data_realizacao,omitempty"`
	DataCancelamento *time.Time      `json:"data_cancelamento,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ToAgendamentoResponse converte a entidade na representação da API.
func ToAgendamentoResponse(a *entity.Agendamento) AgendamentoResponse {
	return AgendamentoResponse{
		ID:               a.ID,
		AgendaID:         a.AgendaID,
		UsuarioID:        a.UsuarioID,
		EmpresaID:        a.EmpresaID,
		ClienteNome:      a.ClienteNome,
		ClienteEmail:     a.ClienteEmail,
		ClienteTelefone:  a.ClienteTelefone,
		Data:             a.Data.Format("2006-01-02"),
		HoraInicio:       a.HoraInicio,
		HoraFim:          a.HoraFim,
		Duracao:          a.Duracao,
		Status:           a.Status,
		Canal:            a.Canal,
		Preco:            a.Preco,
		StatusPagamento:  a.StatusPagamento,
		Observacoes:      a.Observacoes,
		Justificativa:    a.Justificativa,
		CanceladoPor:     a.CanceladoPor,
		ReagendadoDe:     a.ReagendadoDe,
		DataConfirmacao:  a.DataConfirmacao,
		DataRealizacao:   a.DataRealizacao,
		DataCancelamento: a.DataCancelamento,
		CreatedAt:        a.CreatedAt,
	}
}

// ToAgendamentoResponses converte uma lista de entidades.
func ToAgendamentoResponses(ags []*entity.Agendamento) []AgendamentoResponse {
	out := make([]AgendamentoResponse, 0, len(ags))
	for _, a := range ags {
		out = append(out, ToAgendamentoResponse(a))
	}
	return out
}
