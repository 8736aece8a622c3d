package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
	"github.com/agendafacil/agendafacil-api/internal/domain/plan"
)

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo de planos — cotas por recurso
// ──────────────────────────────────────────────────────────────────────────────

func TestDoPlano_Basico(t *testing.T) {
	l := plan.DoPlano(entity.PlanoBasico)
	assert.Equal(t, 1, l.Empresas)
	assert.Equal(t, 5, l.FuncionariosPorEmpresa)
	assert.Equal(t, 200, l.AgendamentosPorMes)
}

func TestDoPlano_Premium(t *testing.T) {
	l := plan.DoPlano(entity.PlanoPremium)
	assert.Equal(t, 3, l.Empresas)
	assert.Equal(t, 20, l.FuncionariosPorEmpresa)
	assert.Equal(t, 1000, l.AgendamentosPorMes)
}

func TestDoPlano_TrialEEnterprise_SemCotas(t *testing.T) {
	for _, plano := range []string{entity.PlanoTrial, entity.PlanoEnterprise} {
		l := plan.DoPlano(plano)
		assert.True(t, plan.SemLimite(l.Empresas), plano)
		assert.True(t, plan.SemLimite(l.FuncionariosPorEmpresa), plano)
		assert.True(t, plan.SemLimite(l.AgendamentosPorMes), plano)
	}
}

func TestDoPlano_Desconhecido_CaiNoBasico(t *testing.T) {
	// Plano com typo nunca pode abrir cota ilimitada por engano.
	assert.Equal(t, plan.DoPlano(entity.PlanoBasico), plan.DoPlano("premiun"))
	assert.Equal(t, plan.DoPlano(entity.PlanoBasico), plan.DoPlano(""))
}

// ──────────────────────────────────────────────────────────────────────────────
// Excede — comparação de uso contra cota
// ──────────────────────────────────────────────────────────────────────────────

func TestExcede_AbaixoDaCota(t *testing.T) {
	assert.False(t, plan.Excede(4, 5))
}

func TestExcede_NaCota_Bloqueia(t *testing.T) {
	// atual == cota significa que a cota já foi consumida: o próximo excede.
	assert.True(t, plan.Excede(5, 5))
	assert.True(t, plan.Excede(6, 5))
}

func TestExcede_Ilimitado_NuncaBloqueia(t *testing.T) {
	assert.False(t, plan.Excede(1_000_000, plan.Ilimitado))
}

func TestLimiteEmpresasColuna(t *testing.T) {
	assert.Equal(t, 1, plan.LimiteEmpresasColuna(entity.PlanoBasico))
	assert.Equal(t, 3, plan.LimiteEmpresasColuna(entity.PlanoPremium))
	// Cotas ilimitadas persistem 999 na coluna limite_empresas.
	assert.Equal(t, 999, plan.LimiteEmpresasColuna(entity.PlanoTrial))
	assert.Equal(t, 999, plan.LimiteEmpresasColuna(entity.PlanoEnterprise))
}
