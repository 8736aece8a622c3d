package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agendafacil/agendafacil-api/internal/application/dto"
	"github.com/agendafacil/agendafacil-api/internal/domain"
	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
	"github.com/agendafacil/agendafacil-api/internal/domain/repository"
)

// AgendaUseCase CRUD de agendas do prestador. A remoção em cascata cancela os
// agendamentos vivos na mesma transação que cancela a agenda.
type AgendaUseCase struct {
	txRunner        TxRunner
	agendaRepo      repository.AgendaRepository
	agendamentoRepo repository.AgendamentoRepository

	agora func() time.Time
}

// NewAgendaUseCase constrói o caso de uso.
func NewAgendaUseCase(
	txRunner TxRunner,
	agendaRepo repository.AgendaRepository,
	agendamentoRepo repository.AgendamentoRepository,
) *AgendaUseCase {
	return &AgendaUseCase{
		txRunner:        txRunner,
		agendaRepo:      agendaRepo,
		agendamentoRepo: agendamentoRepo,
		agora:           time.Now,
	}
}

// Criar cria uma agenda para o prestador autenticado.
func (uc *AgendaUseCase) Criar(ctx context.Context, usuarioID string, in dto.CreateAgendaRequest) (*dto.AgendaResponse, error) {
	if in.Titulo == "" {
		return nil, domain.ErrInvalidInput
	}
	data, err := parseData(in.Data)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if _, ok := minutosDe(in.HoraInicio); !ok {
		return nil, domain.ErrInvalidInput
	}
	if _, ok := minutosDe(in.HoraFim); !ok {
		return nil, domain.ErrInvalidInput
	}

	tipo := in.Tipo
	if tipo == "" {
		tipo = entity.AgendaTipoUnico
	}
	if tipo != entity.AgendaTipoUnico && tipo != entity.AgendaTipoRecorrente {
		return nil, domain.ErrInvalidInput
	}
	if tipo == entity.AgendaTipoRecorrente && in.Recorrencia == nil {
		return nil, domain.ErrInvalidInput
	}
	moeda := in.Moeda
	if moeda == "" {
		moeda = "BRL"
	}
	maxAg := in.MaxAgendamentos
	if maxAg == 0 {
		maxAg = 1
	}
	cfg := entity.DefaultConfiguracoes()
	if in.Configuracoes != nil {
		cfg = *in.Configuracoes
	}

	agora := uc.agora()
	agenda := &entity.Agenda{
		ID:              uuid.New().String(),
		UsuarioID:       usuarioID,
		Titulo:          in.Titulo,
		Descricao:       in.Descricao,
		Data:            data,
		HoraInicio:      in.HoraInicio,
		HoraFim:         in.HoraFim,
		Duracao:         in.Duracao,
		Intervalo:       in.Intervalo,
		MaxAgendamentos: maxAg,
		Status:          entity.AgendaStatusDisponivel,
		Tipo:            tipo,
		Recorrencia:     in.Recorrencia,
		Preco:           in.Preco,
		Moeda:           moeda,
		Local:           in.Local,
		Configuracoes:   cfg,
		CreatedAt:       agora,
		UpdatedAt:       agora,
	}
	if !agenda.HorarioValido() {
		return nil, domain.ErrHorarioInvalido
	}
	if err := uc.agendaRepo.Create(ctx, agenda); err != nil {
		return nil, err
	}
	resp := dto.ToAgendaResponse(agenda)
	return &resp, nil
}

// GetByID busca uma agenda por ID.
func (uc *AgendaUseCase) GetByID(ctx context.Context, id string) (*dto.AgendaResponse, error) {
	agenda, err := uc.agendaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToAgendaResponse(agenda)
	return &resp, nil
}

// Listar lista as agendas do prestador com filtros e paginação.
func (uc *AgendaUseCase) Listar(ctx context.Context, usuarioID string, f repository.AgendaFiltros, page dto.PageRequest) ([]dto.AgendaResponse, error) {
	page.Normalizar()
	list, err := uc.agendaRepo.ListByUsuario(ctx, usuarioID, f, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return dto.ToAgendaResponses(list), nil
}

// Cancelar cancela a agenda e, em cascata, todos os agendamentos vivos dela,
// na mesma transação. Devolve quantos agendamentos foram cancelados.
func (uc *AgendaUseCase) Cancelar(ctx context.Context, usuarioID, agendaID string) (int, error) {
	agenda, err := uc.agendaRepo.GetByID(ctx, agendaID)
	if err != nil {
		return 0, err
	}
	if agenda.UsuarioID != usuarioID {
		return 0, domain.ErrForbidden
	}
	if agenda.Status == entity.AgendaStatusCancelado {
		return 0, domain.ErrConflict
	}

	agora := uc.agora()
	var cancelados int
	err = uc.txRunner.Run(ctx, func(
		agendaRepo repository.AgendaRepository,
		agendamentoRepo repository.AgendamentoRepository,
	) error {
		n, err := agendamentoRepo.CancelarAtivosDaAgenda(ctx, agendaID, "agenda cancelada pelo prestador", agora)
		if err != nil {
			return err
		}
		cancelados = n
		return agendaRepo.Cancelar(ctx, agendaID)
	})
	if err != nil {
		return 0, err
	}
	return cancelados, nil
}

// Remover apaga a agenda. Só permitido quando não há agendamentos vivos;
// com agendamentos, use Cancelar, que preserva o histórico.
func (uc *AgendaUseCase) Remover(ctx context.Context, usuarioID, agendaID string) error {
	agenda, err := uc.agendaRepo.GetByID(ctx, agendaID)
	if err != nil {
		return err
	}
	if agenda.UsuarioID != usuarioID {
		return domain.ErrForbidden
	}
	if agenda.AgendamentosAtuais > 0 {
		return domain.ErrAgendaComAgendamentos
	}
	return uc.agendaRepo.Delete(ctx, agendaID)
}
