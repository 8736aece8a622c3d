// Package policy concentra as regras puras de cancelamento e reagendamento.
// Funções sem efeitos colaterais: recebem instantes e devolvem decisões,
// o que permite testá-las exaustivamente sem storage.
package policy

import "time"

// PodeCancelar decide se um agendamento pode ser cancelado no instante agora.
// Regra: a antecedência até o início deve ser de pelo menos horasAntecedencia.
// O limite é inclusivo: faltando exatamente 24h, o cancelamento ainda é permitido.
func PodeCancelar(inicio, agora time.Time, horasAntecedencia int) bool {
	if horasAntecedencia <= 0 {
		return true
	}
	return inicio.Sub(agora) >= time.Duration(horasAntecedencia)*time.Hour
}

// PodeReagendar exige a mesma antecedência do cancelamento e, além disso,
// que a agenda permita reagendamento.
func PodeReagendar(inicio, agora time.Time, horasAntecedencia int, reagendamentoPermitido bool) bool {
	return reagendamentoPermitido && PodeCancelar(inicio, agora, horasAntecedencia)
}
