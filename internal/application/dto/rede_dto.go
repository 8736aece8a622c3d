package dto

import (
	"time"

	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
)

// CreateRedeRequest payload de criação de rede empresarial.
type CreateRedeRequest struct {
	NomeRede  string `json:"nome_rede"`
	Descricao string `json:"descricao"`
	CpfCnpj   string `json:"cpf_cnpj"`
	Plano     string `json:"plano"` // vazio = trial
}

// RedeResponse representação de uma rede na API.
type RedeResponse struct {
	ID             string     `json:"id"`
	NomeRede       string     `json:"nome_rede"`
	Descricao      string     `json:"descricao,omitempty"`
	UsuarioAdminID string     `json:"usuario_admin_id"`
	Plano          string     `json:"plano"`
	LimiteEmpresas int        `json:"limite_empresas"`
	EmpresasAtivas int        `json:"empresas_ativas"`
	TrialInicio    *time.Time `json:"trial_inicio,omitempty"`
	TrialFim       *time.Time `json:"trial_fim,omitempty"`
	Ativo          bool       `json:"ativo"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToRedeResponse converte a entidade na representação da API.
func ToRedeResponse(r *entity.RedeEmpresarial) RedeResponse {
	return RedeResponse{
		ID:             r.ID,
		NomeRede:       r.NomeRede,
		Descricao:      r.Descricao,
		UsuarioAdminID: r.UsuarioAdminID,
		Plano:          r.Plano,
		LimiteEmpresas: r.LimiteEmpresas,
		EmpresasAtivas: r.EmpresasAtivas,
		TrialInicio:    r.TrialInicio,
		TrialFim:       r.TrialFim,
		Ativo:          r.Ativo,
		CreatedAt:      r.CreatedAt,
	}
}

// TrialStatusResponse resposta de GET /api/redes/:redeId/trial-status.
type TrialStatusResponse struct {
	RedeID         string     `json:"rede_id"`
	Plano          string     `json:"plano"`
	TrialAtivo     bool       `json:"trial_ativo"`
	Expirado       bool       `json:"expirado"`
	TrialFim       *time.Time `json:"trial_fim,omitempty"`
	DiasRestantes  int        `json:"dias_restantes"`
	EmpresasAtivas int        `json:"empresas_ativas"`
	LimiteEmpresas int        `json:"limite_empresas"`
}

// CreateEmpresaRequest payload de criação de empresa (unidade) numa rede.
type CreateEmpresaRequest struct {
	NomeUnidade string `json:"nome_unidade"`
	Endereco    string `json:"endereco"`
	Cidade      string `json:"cidade"`
	Estado      string `json:"estado"`
	CEP         string `json:"cep"`
	WhatsApp    string `json:"whatsapp"`
}

// EmpresaResponse representação de uma empresa na API.
type EmpresaResponse struct {
	ID          string    `json:"id"`
	RedeID      string    `json:"rede_id"`
	NomeUnidade string    `json:"nome_unidade"`
	Endereco    string    `json:"endereco,omitempty"`
	Cidade      string    `json:"cidade,omitempty"`
	Estado      string    `json:"estado,omitempty"`
	CEP         string    `json:"cep,omitempty"`
	WhatsApp    string    `json:"whatsapp,omitempty"`
	Ativo       bool      `json:"ativo"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToEmpresaResponse converte a entidade na representação da API.
func ToEmpresaResponse(e *entity.Empresa) EmpresaResponse {
	return EmpresaResponse{
		ID:          e.ID,
		RedeID:      e.RedeID,
		NomeUnidade: e.NomeUnidade,
		Endereco:    e.Endereco,
		Cidade:      e.Cidade,
		Estado:      e.Estado,
		CEP:         e.CEP,
		WhatsApp:    e.WhatsApp,
		Ativo:       e.Ativo,
		CreatedAt:   e.CreatedAt,
	}
}

// ToEmpresaResponses converte uma lista de entidades.
func ToEmpresaResponses(es []*entity.Empresa) []EmpresaResponse {
	out := make([]EmpresaResponse, 0, len(es))
	for _, e := range es {
		out = append(out, ToEmpresaResponse(e))
	}
	return out
}

// CreateFuncionarioRequest payload de cadastro de funcionário numa empresa.
type CreateFuncionarioRequest struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Senha    string `json:"senha"`
	Telefone string `json:"telefone"`
}
