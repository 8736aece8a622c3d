package domain

import (
	"errors"
	"fmt"
	"time"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound                  = errors.New("recurso não encontrado")
	ErrUserNotFound              = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists        = errors.New("o email já está registrado")
	ErrInvalidInput              = errors.New("entrada inválida")
	ErrDuplicate                 = errors.New("recurso duplicado")
	ErrUnauthorized              = errors.New("não autorizado")
	ErrForbidden                 = errors.New("acesso negado")
	ErrConflict                  = errors.New("conflito com o estado atual")
	ErrHorarioInvalido           = errors.New("horário fora da janela da agenda")
	ErrCapacidadeEsgotada        = errors.New("agenda sem vagas disponíveis")
	ErrCancelamentoNaoPermitido  = errors.New("cancelamento fora da antecedência mínima")
	ErrReagendamentoNaoPermitido = errors.New("reagendamento não permitido para esta agenda")
	ErrTransicaoInvalida         = errors.New("transição de status inválida")
	ErrAgendaComAgendamentos     = errors.New("agenda possui agendamentos ativos")
	ErrRedeJaExiste              = errors.New("usuário já possui uma rede empresarial")
	ErrCpfCnpjJaUsado            = errors.New("CPF/CNPJ já utilizado para criar uma rede")
	ErrRedeNaoEncontrada         = errors.New("usuário não possui uma rede empresarial")
)

// TrialExpiradoError bloqueia operações de uma rede com trial vencido.
// Carrega a data de fim para que o handler informe há quantos dias expirou.
type TrialExpiradoError struct {
	TrialFim time.Time
	Agora    time.Time
}

func (e *TrialExpiradoError) Error() string {
	return fmt.Sprintf("trial expirado em %s", e.TrialFim.Format("2006-01-02"))
}

// DiasExpirado devolve há quantos dias o trial venceu (mínimo 0).
func (e *TrialExpiradoError) DiasExpirado() int {
	d := int(e.Agora.Sub(e.TrialFim).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// LimiteExcedidoError indica que a cota do plano foi atingida para um recurso.
type LimiteExcedidoError struct {
	Recurso string // "empresas" | "funcionarios" | "agendamentos_mes"
	Atual   int
	Limite  int
	Plano   string
}

func (e *LimiteExcedidoError) Error() string {
	return fmt.Sprintf("limite de %s atingido: plano %s permite %d (atual: %d)",
		e.Recurso, e.Plano, e.Limite, e.Atual)
}
