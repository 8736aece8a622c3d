// Package plan define o catálogo estático de planos e seus limites.
// É a única fonte de verdade das cotas: nenhuma rota define limites próprios.
package plan

import "github.com/agendafacil/agendafacil-api/internal/domain/entity"

// Ilimitado marca um recurso sem cota no plano.
const Ilimitado = 0

// Limites cotas numéricas de um plano. Zero significa ilimitado (ver Ilimitado).
type Limites struct {
	Empresas               int
	FuncionariosPorEmpresa int
	AgendamentosPorMes     int
}

// catalogo tabela de referência plano → limites.
// trial: sem cotas durante a janela de 15 dias (o bloqueio vem do TrialGate, não daqui).
var catalogo = map[string]Limites{
	entity.PlanoTrial:      {Empresas: Ilimitado, FuncionariosPorEmpresa: Ilimitado, AgendamentosPorMes: Ilimitado},
	entity.PlanoBasico:     {Empresas: 1, FuncionariosPorEmpresa: 5, AgendamentosPorMes: 200},
	entity.PlanoPremium:    {Empresas: 3, FuncionariosPorEmpresa: 20, AgendamentosPorMes: 1000},
	entity.PlanoEnterprise: {Empresas: Ilimitado, FuncionariosPorEmpresa: Ilimitado, AgendamentosPorMes: Ilimitado},
}

// DoPlano devolve os limites do plano. Planos desconhecidos recebem os limites
// do básico (o mais restritivo) para nunca abrir cota por engano de digitação.
func DoPlano(plano string) Limites {
	if l, ok := catalogo[plano]; ok {
		return l
	}
	return catalogo[entity.PlanoBasico]
}

// SemLimite informa se a cota dada é ilimitada.
func SemLimite(cota int) bool {
	return cota == Ilimitado
}

// Excede compara o uso atual contra a cota, respeitando Ilimitado.
func Excede(atual, cota int) bool {
	return !SemLimite(cota) && atual >= cota
}

// LimiteEmpresasColuna devolve o valor persistido em redes.limite_empresas na criação.
// Cotas ilimitadas gravam 999, preservando o contrato histórico das linhas existentes.
func LimiteEmpresasColuna(plano string) int {
	cota := DoPlano(plano).Empresas
	if SemLimite(cota) {
		return 999
	}
	return cota
}
