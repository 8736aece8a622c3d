package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agendafacil/agendafacil-api/internal/application/dto"
	"github.com/agendafacil/agendafacil-api/internal/domain"
	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
	"github.com/agendafacil/agendafacil-api/internal/domain/plan"
	"github.com/agendafacil/agendafacil-api/internal/domain/policy"
	"github.com/agendafacil/agendafacil-api/internal/domain/repository"
)

// Ator identidade de quem executa a operação, extraída do token JWT pelo handler.
type Ator struct {
	UserID    string
	Tipo      string
	EmpresaID string
}

// AgendamentoUseCase ciclo de vida completo do agendamento: criação com reserva
// atômica de vaga, confirmação, cancelamento com devolução de vaga, reagendamento
// encadeado e fechamento (realizado / não compareceu).
type AgendamentoUseCase struct {
	txRunner        TxRunner
	agendaRepo      repository.AgendaRepository
	agendamentoRepo repository.AgendamentoRepository
	userRepo        repository.UserRepository
	empresaRepo     repository.EmpresaRepository
	redeRepo        repository.RedeRepository
	notificador     Notificador
	horasPadrao     int // antecedência mínima de cancelamento quando a agenda não define a sua

	agora func() time.Time
}

// NewAgendamentoUseCase constrói o caso de uso.
func NewAgendamentoUseCase(
	txRunner TxRunner,
	agendaRepo repository.AgendaRepository,
	agendamentoRepo repository.AgendamentoRepository,
	userRepo repository.UserRepository,
	empresaRepo repository.EmpresaRepository,
	redeRepo repository.RedeRepository,
	notificador Notificador,
	horasPadrao int,
) *AgendamentoUseCase {
	return &AgendamentoUseCase{
		txRunner:        txRunner,
		agendaRepo:      agendaRepo,
		agendamentoRepo: agendamentoRepo,
		userRepo:        userRepo,
		empresaRepo:     empresaRepo,
		redeRepo:        redeRepo,
		notificador:     notificador,
		horasPadrao:     horasPadrao,
		agora:           time.Now,
	}
}

// Criar cria um agendamento contra uma agenda. A vaga é reservada por update
// condicional dentro da mesma transação que grava o agendamento; sob concorrência,
// apenas as vagas existentes são concedidas.
func (uc *AgendamentoUseCase) Criar(ctx context.Context, in dto.CreateAgendamentoRequest) (*dto.AgendamentoResponse, error) {
	if in.AgendaID == "" || in.ClienteNome == "" || in.ClienteEmail == "" {
		return nil, domain.ErrInvalidInput
	}
	data, err := parseData(in.Data)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	inicioMin, ok := minutosDe(in.HoraInicio)
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	agenda, err := uc.agendaRepo.GetByID(ctx, in.AgendaID)
	if err != nil {
		return nil, err
	}
	if agenda.Status == entity.AgendaStatusCancelado || agenda.Status == entity.AgendaStatusPausado {
		return nil, domain.ErrConflict
	}
	if !mesmoDia(data, agenda.Data) {
		return nil, domain.ErrHorarioInvalido
	}
	// A hora de fim é derivada da duração da agenda, nunca do request.
	horaFim := horaDe(inicioMin + agenda.Duracao)
	if !agenda.ContemHorario(in.HoraInicio, horaFim) {
		return nil, domain.ErrHorarioInvalido
	}

	agora := uc.agora()
	empresaID, err := uc.gateRede(ctx, agenda.UsuarioID, agora)
	if err != nil {
		return nil, err
	}

	canal := in.Canal
	if canal == "" {
		canal = entity.CanalPresencial
	}
	novo := &entity.Agendamento{
		ID:              uuid.New().String(),
		AgendaID:        agenda.ID,
		UsuarioID:       agenda.UsuarioID,
		EmpresaID:       empresaID,
		ClienteNome:     in.ClienteNome,
		ClienteEmail:    in.ClienteEmail,
		ClienteTelefone: in.ClienteTelefone,
		Data:            data,
		HoraInicio:      in.HoraInicio,
		HoraFim:         horaFim,
		Duracao:         agenda.Duracao,
		Status:          entity.AgendamentoPendente,
		Canal:           canal,
		Preco:           agenda.Preco,
		Observacoes:     in.Observacoes,
		CreatedAt:       agora,
		UpdatedAt:       agora,
	}
	if novo.InicioEm().Before(agora) {
		return nil, domain.ErrHorarioInvalido
	}
	if agenda.Configuracoes.PagamentoObrigatorio {
		novo.StatusPagamento = "pendente"
	}
	if agenda.Configuracoes.ConfirmacaoAutomatica {
		novo.Status = entity.AgendamentoConfirmado
		t := agora
		novo.DataConfirmacao = &t
	}

	err = uc.txRunner.Run(ctx, func(
		agendaRepo repository.AgendaRepository,
		agendamentoRepo repository.AgendamentoRepository,
	) error {
		if err := agendaRepo.ReservarVaga(ctx, agenda.ID); err != nil {
			return err
		}
		return agendamentoRepo.Create(ctx, novo)
	})
	if err != nil {
		return nil, err
	}

	uc.notificador.AgendamentoCriado(ctx, novo)
	resp := dto.ToAgendamentoResponse(novo)
	return &resp, nil
}

// Confirmar move um agendamento pendente para confirmado.
func (uc *AgendamentoUseCase) Confirmar(ctx context.Context, ator Ator, id string) (*dto.AgendamentoResponse, error) {
	ag, err := uc.agendamentoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.autorizar(ctx, ator, ag); err != nil {
		return nil, err
	}
	if !ag.PodeConfirmar() {
		return nil, domain.ErrTransicaoInvalida
	}
	agora := uc.agora()
	if err := uc.agendamentoRepo.Confirmar(ctx, id, agora); err != nil {
		return nil, err
	}
	ag.Status = entity.AgendamentoConfirmado
	ag.DataConfirmacao = &agora

	uc.notificador.AgendamentoConfirmado(ctx, ag)
	resp := dto.ToAgendamentoResponse(ag)
	return &resp, nil
}

// Cancelar cancela um agendamento vivo e devolve a vaga na mesma transação.
// Clientes respeitam a antecedência mínima da agenda; funcionários e o sistema
// podem cancelar a qualquer momento.
func (uc *AgendamentoUseCase) Cancelar(ctx context.Context, ator Ator, id, justificativa string) (*dto.AgendamentoResponse, error) {
	ag, err := uc.agendamentoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.autorizar(ctx, ator, ag); err != nil {
		return nil, err
	}
	if !ag.PodeCancelar() {
		return nil, domain.ErrTransicaoInvalida
	}

	agenda, err := uc.agendaRepo.GetByID(ctx, ag.AgendaID)
	if err != nil {
		return nil, err
	}
	agora := uc.agora()
	canceladoPor := canceladoPorDe(ator)
	if canceladoPor == entity.CanceladoPorCliente {
		horas := agenda.CancelamentoAteHoras(uc.horasPadrao)
		if !policy.PodeCancelar(ag.InicioEm(), agora, horas) {
			return nil, domain.ErrCancelamentoNaoPermitido
		}
	}

	err = uc.txRunner.Run(ctx, func(
		agendaRepo repository.AgendaRepository,
		agendamentoRepo repository.AgendamentoRepository,
	) error {
		if err := agendamentoRepo.Cancelar(ctx, id, justificativa, canceladoPor, agora); err != nil {
			return err
		}
		return agendaRepo.LiberarVaga(ctx, ag.AgendaID)
	})
	if err != nil {
		return nil, err
	}

	ag.Status = entity.AgendamentoCancelado
	ag.Justificativa = justificativa
	ag.CanceladoPor = canceladoPor
	ag.DataCancelamento = &agora

	uc.notificador.AgendamentoCancelado(ctx, ag)
	resp := dto.ToAgendamentoResponse(ag)
	return &resp, nil
}

// Reagendar fecha o agendamento confirmado como reagendado e cria um novo apontando
// para ele via ReagendadoDe. Tudo ou nada: para outra agenda, a vaga do novo horário
// é reservada antes de qualquer escrita; se não houver vaga, o agendamento original
// permanece intacto. Na mesma agenda a vaga é devolvida antes de reservar, para a
// troca de horário não disputar a própria vaga quando a agenda está lotada.
func (uc *AgendamentoUseCase) Reagendar(ctx context.Context, ator Ator, id string, in dto.ReagendarAgendamentoRequest) (*dto.AgendamentoResponse, error) {
	ag, err := uc.agendamentoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.autorizar(ctx, ator, ag); err != nil {
		return nil, err
	}
	if !ag.PodeReagendar() {
		return nil, domain.ErrTransicaoInvalida
	}

	agendaAtual, err := uc.agendaRepo.GetByID(ctx, ag.AgendaID)
	if err != nil {
		return nil, err
	}
	agora := uc.agora()
	horas := agendaAtual.CancelamentoAteHoras(uc.horasPadrao)
	if !policy.PodeReagendar(ag.InicioEm(), agora, horas, agendaAtual.Configuracoes.ReagendamentoPermitido) {
		return nil, domain.ErrReagendamentoNaoPermitido
	}

	novaAgendaID := in.AgendaID
	if novaAgendaID == "" {
		novaAgendaID = ag.AgendaID
	}
	novaAgenda, err := uc.agendaRepo.GetByID(ctx, novaAgendaID)
	if err != nil {
		return nil, err
	}
	// Reagendamento só entre agendas do mesmo prestador.
	if novaAgenda.UsuarioID != ag.UsuarioID {
		return nil, domain.ErrForbidden
	}
	if novaAgenda.Status == entity.AgendaStatusCancelado || novaAgenda.Status == entity.AgendaStatusPausado {
		return nil, domain.ErrConflict
	}

	data, err := parseData(in.Data)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	inicioMin, ok := minutosDe(in.HoraInicio)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if !mesmoDia(data, novaAgenda.Data) {
		return nil, domain.ErrHorarioInvalido
	}
	horaFim := horaDe(inicioMin + novaAgenda.Duracao)
	if !novaAgenda.ContemHorario(in.HoraInicio, horaFim) {
		return nil, domain.ErrHorarioInvalido
	}

	novo := &entity.Agendamento{
		ID:              uuid.New().String(),
		AgendaID:        novaAgenda.ID,
		UsuarioID:       ag.UsuarioID,
		EmpresaID:       ag.EmpresaID,
		ClienteNome:     ag.ClienteNome,
		ClienteEmail:    ag.ClienteEmail,
		ClienteTelefone: ag.ClienteTelefone,
		Data:            data,
		HoraInicio:      in.HoraInicio,
		HoraFim:         horaFim,
		Duracao:         novaAgenda.Duracao,
		Status:          entity.AgendamentoPendente,
		Canal:           ag.Canal,
		Preco:           novaAgenda.Preco,
		StatusPagamento: ag.StatusPagamento,
		Observacoes:     ag.Observacoes,
		ReagendadoDe:    ag.ID,
		CreatedAt:       agora,
		UpdatedAt:       agora,
	}
	if novo.InicioEm().Before(agora) {
		return nil, domain.ErrHorarioInvalido
	}
	if novaAgenda.Configuracoes.ConfirmacaoAutomatica {
		novo.Status = entity.AgendamentoConfirmado
		t := agora
		novo.DataConfirmacao = &t
	}

	mesmaAgenda := novaAgenda.ID == ag.AgendaID
	err = uc.txRunner.Run(ctx, func(
		agendaRepo repository.AgendaRepository,
		agendamentoRepo repository.AgendamentoRepository,
	) error {
		if mesmaAgenda {
			if err := agendaRepo.LiberarVaga(ctx, ag.AgendaID); err != nil {
				return err
			}
		}
		if err := agendaRepo.ReservarVaga(ctx, novaAgenda.ID); err != nil {
			return err
		}
		if err := agendamentoRepo.Create(ctx, novo); err != nil {
			return err
		}
		if err := agendamentoRepo.MarcarReagendado(ctx, ag.ID, agora); err != nil {
			return err
		}
		if mesmaAgenda {
			return nil
		}
		return agendaRepo.LiberarVaga(ctx, ag.AgendaID)
	})
	if err != nil {
		return nil, err
	}

	uc.notificador.AgendamentoReagendado(ctx, novo, ag)
	resp := dto.ToAgendamentoResponse(novo)
	return &resp, nil
}

// MarcarRealizado fecha um agendamento confirmado como realizado. Só depois do
// horário de fim; a vaga não é devolvida, pois foi de fato consumida.
func (uc *AgendamentoUseCase) MarcarRealizado(ctx context.Context, ator Ator, id string) (*dto.AgendamentoResponse, error) {
	return uc.fechar(ctx, ator, id, entity.AgendamentoRealizado)
}

// MarcarNaoCompareceu fecha um agendamento confirmado como não compareceu.
func (uc *AgendamentoUseCase) MarcarNaoCompareceu(ctx context.Context, ator Ator, id string) (*dto.AgendamentoResponse, error) {
	return uc.fechar(ctx, ator, id, entity.AgendamentoNaoCompareceu)
}

func (uc *AgendamentoUseCase) fechar(ctx context.Context, ator Ator, id, status string) (*dto.AgendamentoResponse, error) {
	ag, err := uc.agendamentoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.autorizar(ctx, ator, ag); err != nil {
		return nil, err
	}
	if !ag.PodeFinalizar() {
		return nil, domain.ErrTransicaoInvalida
	}
	agora := uc.agora()
	if agora.Before(ag.FimEm()) {
		return nil, domain.ErrConflict
	}

	if status == entity.AgendamentoRealizado {
		err = uc.agendamentoRepo.MarcarRealizado(ctx, id, agora)
	} else {
		err = uc.agendamentoRepo.MarcarNaoCompareceu(ctx, id, agora)
	}
	if err != nil {
		return nil, err
	}
	ag.Status = status
	if status == entity.AgendamentoRealizado {
		ag.DataRealizacao = &agora
	}
	resp := dto.ToAgendamentoResponse(ag)
	return &resp, nil
}

// GetByID busca um agendamento visível para o ator.
func (uc *AgendamentoUseCase) GetByID(ctx context.Context, ator Ator, id string) (*dto.AgendamentoResponse, error) {
	ag, err := uc.agendamentoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.autorizar(ctx, ator, ag); err != nil {
		return nil, err
	}
	resp := dto.ToAgendamentoResponse(ag)
	return &resp, nil
}

// Listar lista agendamentos pelo recorte do ator: clientes veem os próprios,
// funcionários os da empresa, prestadores os das suas agendas.
func (uc *AgendamentoUseCase) Listar(ctx context.Context, ator Ator, f repository.AgendamentoFiltros, page dto.PageRequest) ([]dto.AgendamentoResponse, error) {
	page.Normalizar()
	switch ator.Tipo {
	case entity.TipoCliente:
		user, err := uc.userRepo.GetByID(ctx, ator.UserID)
		if err != nil {
			return nil, err
		}
		f.ClienteEmail = user.Email
	case entity.TipoFuncionario, entity.TipoEmpresa:
		f.EmpresaID = ator.EmpresaID
	case entity.TipoAdminRede:
		// admin de rede filtra pelo que pedir
	default:
		f.UsuarioID = ator.UserID
	}
	list, err := uc.agendamentoRepo.List(ctx, f, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return dto.ToAgendamentoResponses(list), nil
}

// gateRede aplica o bloqueio de trial e a cota mensal do plano quando o prestador
// pertence a uma empresa de rede. Prestadores autônomos não passam por gating.
// Devolve o EmpresaID a gravar no agendamento.
func (uc *AgendamentoUseCase) gateRede(ctx context.Context, prestadorID string, agora time.Time) (string, error) {
	prestador, err := uc.userRepo.GetByID(ctx, prestadorID)
	if err != nil {
		return "", err
	}
	if prestador.EmpresaID == "" {
		return "", nil
	}
	empresa, err := uc.empresaRepo.GetByID(ctx, prestador.EmpresaID)
	if err != nil {
		return "", err
	}
	if !empresa.Ativo {
		return "", domain.ErrForbidden
	}
	rede, err := uc.redeRepo.GetByID(ctx, empresa.RedeID)
	if err != nil {
		return "", err
	}
	if rede.TrialExpirado(agora) {
		fim := agora
		if rede.TrialFim != nil {
			fim = *rede.TrialFim
		}
		return "", &domain.TrialExpiradoError{TrialFim: fim, Agora: agora}
	}
	if !rede.Ativo {
		return "", domain.ErrForbidden
	}

	cota := plan.DoPlano(rede.Plano).AgendamentosPorMes
	if !plan.SemLimite(cota) {
		usados, err := uc.agendamentoRepo.CountByRedeNoMes(ctx, rede.ID, agora)
		if err != nil {
			return "", err
		}
		if plan.Excede(usados, cota) {
			return "", &domain.LimiteExcedidoError{
				Recurso: "agendamentos_mes",
				Atual:   usados,
				Limite:  cota,
				Plano:   rede.Plano,
			}
		}
	}
	return empresa.ID, nil
}

// autorizar verifica se o ator pode operar sobre o agendamento.
func (uc *AgendamentoUseCase) autorizar(ctx context.Context, ator Ator, ag *entity.Agendamento) error {
	switch ator.Tipo {
	case entity.TipoAdminRede:
		return nil
	case entity.TipoFuncionario, entity.TipoEmpresa:
		if ator.EmpresaID != "" && ator.EmpresaID == ag.EmpresaID {
			return nil
		}
		if ator.UserID == ag.UsuarioID {
			return nil
		}
		return domain.ErrForbidden
	case entity.TipoCliente:
		user, err := uc.userRepo.GetByID(ctx, ator.UserID)
		if err != nil {
			return err
		}
		if user.Email == ag.ClienteEmail {
			return nil
		}
		return domain.ErrForbidden
	}
	if ator.UserID == ag.UsuarioID {
		return nil
	}
	return domain.ErrForbidden
}

// canceladoPorDe mapeia o tipo do ator para o autor do cancelamento.
func canceladoPorDe(ator Ator) string {
	if ator.Tipo == entity.TipoCliente {
		return entity.CanceladoPorCliente
	}
	return entity.CanceladoPorFuncionario
}
