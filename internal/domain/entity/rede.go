package entity

import (
	"math"
	"time"
)

// Planos de assinatura de uma rede empresarial.
const (
	PlanoTrial      = "trial"
	PlanoBasico     = "basico"
	PlanoPremium    = "premium"
	PlanoEnterprise = "enterprise"
)

// RedeEmpresarial agrupa empresas de um mesmo administrador sob um plano.
// empresas_ativas é um contador mantido: só muda dentro das transações de
// criação/desativação de empresa (update condicional contra limite_empresas).
type RedeEmpresarial struct {
	ID             string
	NomeRede       string
	Descricao      string
	UsuarioAdminID string
	Plano          string
	LimiteEmpresas int
	EmpresasAtivas int
	TrialInicio    *time.Time
	TrialFim       *time.Time
	CpfCnpjUsado   string // único; impede múltiplos trials com o mesmo documento
	Ativo          bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TrialValido informa se a rede pode operar no instante dado.
// Planos pagos sempre passam; trial só enquanto agora <= trial_fim.
func (r *RedeEmpresarial) TrialValido(agora time.Time) bool {
	if r.Plano != PlanoTrial {
		return true
	}
	if r.TrialFim == nil {
		return false
	}
	return !agora.After(*r.TrialFim)
}

// TrialExpirado é a negação de TrialValido restrita a redes trial.
func (r *RedeEmpresarial) TrialExpirado(agora time.Time) bool {
	return r.Plano == PlanoTrial && !r.TrialValido(agora)
}

// DiasRestantes devolve os dias que faltam do trial (teto, mínimo 0).
// Para planos pagos devolve 0.
func (r *RedeEmpresarial) DiasRestantes(agora time.Time) int {
	if r.Plano != PlanoTrial || r.TrialFim == nil {
		return 0
	}
	dias := int(math.Ceil(r.TrialFim.Sub(agora).Hours() / 24))
	if dias < 0 {
		return 0
	}
	return dias
}
