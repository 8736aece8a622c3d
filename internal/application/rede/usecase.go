package rede

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/agendafacil/agendafacil-api/internal/application/dto"
	"github.com/agendafacil/agendafacil-api/internal/domain"
	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
	"github.com/agendafacil/agendafacil-api/internal/domain/plan"
	"github.com/agendafacil/agendafacil-api/internal/domain/repository"
)

// UseCase gestão de redes empresariais: criação com trial, unidades (empresas),
// funcionários e enforcement dos limites do plano.
type UseCase struct {
	txRunner    TxRunner
	redeRepo    repository.RedeRepository
	empresaRepo repository.EmpresaRepository
	userRepo    repository.UserRepository
	cache       TrialStatusCache
	trialDias   int

	agora func() time.Time
}

// NewUseCase constrói o caso de uso. cache pode ser nil.
func NewUseCase(
	txRunner TxRunner,
	redeRepo repository.RedeRepository,
	empresaRepo repository.EmpresaRepository,
	userRepo repository.UserRepository,
	cache TrialStatusCache,
	trialDias int,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		redeRepo:    redeRepo,
		empresaRepo: empresaRepo,
		userRepo:    userRepo,
		cache:       cache,
		trialDias:   trialDias,
		agora:       time.Now,
	}
}

// CriarRede cria a rede do usuário. Sem plano informado inicia em trial, com
// janela de trialDias e CPF/CNPJ marcado como usado (um trial por documento).
func (uc *UseCase) CriarRede(ctx context.Context, adminID string, in dto.CreateRedeRequest) (*dto.RedeResponse, error) {
	if in.NomeRede == "" || in.CpfCnpj == "" {
		return nil, domain.ErrInvalidInput
	}
	existente, err := uc.redeRepo.GetByAdmin(ctx, adminID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrRedeJaExiste
	}

	plano := in.Plano
	if plano == "" {
		plano = entity.PlanoTrial
	}
	switch plano {
	case entity.PlanoTrial, entity.PlanoBasico, entity.PlanoPremium, entity.PlanoEnterprise:
	default:
		return nil, domain.ErrInvalidInput
	}

	agora := uc.agora()
	rede := &entity.RedeEmpresarial{
		ID:             uuid.New().String(),
		NomeRede:       in.NomeRede,
		Descricao:      in.Descricao,
		UsuarioAdminID: adminID,
		Plano:          plano,
		LimiteEmpresas: plan.LimiteEmpresasColuna(plano),
		EmpresasAtivas: 0,
		CpfCnpjUsado:   normalizarDocumento(in.CpfCnpj),
		Ativo:          true,
		CreatedAt:      agora,
		UpdatedAt:      agora,
	}
	if rede.CpfCnpjUsado == "" {
		return nil, domain.ErrInvalidInput
	}
	if plano == entity.PlanoTrial {
		inicio := agora
		fim := agora.Add(time.Duration(uc.trialDias) * 24 * time.Hour)
		rede.TrialInicio = &inicio
		rede.TrialFim = &fim
	}
	if err := uc.redeRepo.Create(ctx, rede); err != nil {
		return nil, err
	}
	resp := dto.ToRedeResponse(rede)
	return &resp, nil
}

// MinhaRede devolve a rede do administrador autenticado.
func (uc *UseCase) MinhaRede(ctx context.Context, adminID string) (*dto.RedeResponse, error) {
	rede, err := uc.redeRepo.GetByAdmin(ctx, adminID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrRedeNaoEncontrada
		}
		return nil, err
	}
	resp := dto.ToRedeResponse(rede)
	return &resp, nil
}

// StatusTrial devolve o status do trial da rede, servindo do cache quando possível.
// O cache tem TTL curto e nunca alimenta decisões de bloqueio. A chave inclui o
// adminID: só quem já passou pela checagem de posse no Postgres encontra um hit.
func (uc *UseCase) StatusTrial(ctx context.Context, adminID, redeID string) (*dto.TrialStatusResponse, error) {
	chave := chaveTrialStatus(adminID, redeID)
	if uc.cache != nil {
		if st, ok := uc.cache.Get(ctx, chave); ok {
			return st, nil
		}
	}
	rede, err := uc.redeRepo.GetByID(ctx, redeID)
	if err != nil {
		return nil, err
	}
	if rede.UsuarioAdminID != adminID {
		return nil, domain.ErrForbidden
	}
	agora := uc.agora()
	st := &dto.TrialStatusResponse{
		RedeID:         rede.ID,
		Plano:          rede.Plano,
		TrialAtivo:     rede.Plano == entity.PlanoTrial && rede.TrialValido(agora),
		Expirado:       rede.TrialExpirado(agora),
		TrialFim:       rede.TrialFim,
		DiasRestantes:  rede.DiasRestantes(agora),
		EmpresasAtivas: rede.EmpresasAtivas,
		LimiteEmpresas: rede.LimiteEmpresas,
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, chave, st)
	}
	return st, nil
}

// chaveTrialStatus compõe a chave do cache de trial-status. Como só o dono da rede
// recebe Set, uma rede nunca fica legível por outro usuário via cache.
func chaveTrialStatus(adminID, redeID string) string {
	return redeID + ":" + adminID
}

// CriarEmpresa adiciona uma unidade à rede. O incremento de empresas_ativas é um
// update condicional contra limite_empresas, na mesma transação da criação.
func (uc *UseCase) CriarEmpresa(ctx context.Context, adminID, redeID string, in dto.CreateEmpresaRequest) (*dto.EmpresaResponse, error) {
	if in.NomeUnidade == "" {
		return nil, domain.ErrInvalidInput
	}
	rede, err := uc.validarRede(ctx, adminID, redeID)
	if err != nil {
		return nil, err
	}

	agora := uc.agora()
	empresa := &entity.Empresa{
		ID:          uuid.New().String(),
		RedeID:      rede.ID,
		NomeUnidade: in.NomeUnidade,
		Endereco:    in.Endereco,
		Cidade:      in.Cidade,
		Estado:      in.Estado,
		CEP:         in.CEP,
		WhatsApp:    in.WhatsApp,
		Ativo:       true,
		CreatedAt:   agora,
		UpdatedAt:   agora,
	}
	err = uc.txRunner.Run(ctx, func(
		redeRepo repository.RedeRepository,
		empresaRepo repository.EmpresaRepository,
		_ repository.UserRepository,
	) error {
		ok, err := redeRepo.IncrementarEmpresasAtivas(ctx, rede.ID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.LimiteExcedidoError{
				Recurso: "empresas",
				Atual:   rede.EmpresasAtivas,
				Limite:  rede.LimiteEmpresas,
				Plano:   rede.Plano,
			}
		}
		return empresaRepo.Create(ctx, empresa)
	})
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, chaveTrialStatus(adminID, rede.ID))
	}
	resp := dto.ToEmpresaResponse(empresa)
	return &resp, nil
}

// DesativarEmpresa desativa a unidade e devolve a vaga no contador da rede.
func (uc *UseCase) DesativarEmpresa(ctx context.Context, adminID, empresaID string) error {
	empresa, err := uc.empresaRepo.GetByID(ctx, empresaID)
	if err != nil {
		return err
	}
	rede, err := uc.redeRepo.GetByID(ctx, empresa.RedeID)
	if err != nil {
		return err
	}
	if rede.UsuarioAdminID != adminID {
		return domain.ErrForbidden
	}
	if !empresa.Ativo {
		return domain.ErrConflict
	}

	err = uc.txRunner.Run(ctx, func(
		redeRepo repository.RedeRepository,
		empresaRepo repository.EmpresaRepository,
		_ repository.UserRepository,
	) error {
		if err := empresaRepo.Desativar(ctx, empresaID); err != nil {
			return err
		}
		return redeRepo.DecrementarEmpresasAtivas(ctx, rede.ID)
	})
	if err != nil {
		return err
	}
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, chaveTrialStatus(adminID, rede.ID))
	}
	return nil
}

// ListarEmpresas lista as unidades da rede do administrador.
func (uc *UseCase) ListarEmpresas(ctx context.Context, adminID, redeID string) ([]dto.EmpresaResponse, error) {
	rede, err := uc.redeRepo.GetByID(ctx, redeID)
	if err != nil {
		return nil, err
	}
	if rede.UsuarioAdminID != adminID {
		return nil, domain.ErrForbidden
	}
	list, err := uc.empresaRepo.ListByRede(ctx, redeID)
	if err != nil {
		return nil, err
	}
	return dto.ToEmpresaResponses(list), nil
}

// CriarFuncionario cadastra um funcionário na empresa. O limite por plano usa
// contagem viva dentro da transação, não um contador mantido.
func (uc *UseCase) CriarFuncionario(ctx context.Context, adminID, empresaID string, in dto.CreateFuncionarioRequest) (*dto.UserResponse, error) {
	if in.Nome == "" || in.Email == "" || in.Senha == "" {
		return nil, domain.ErrInvalidInput
	}
	empresa, err := uc.empresaRepo.GetByID(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	if !empresa.Ativo {
		return nil, domain.ErrConflict
	}
	rede, err := uc.validarRede(ctx, adminID, empresa.RedeID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	agora := uc.agora()
	funcionario := &entity.User{
		ID:        uuid.New().String(),
		Nome:      in.Nome,
		Email:     in.Email,
		SenhaHash: string(hash),
		Telefone:  in.Telefone,
		Tipo:      entity.TipoFuncionario,
		EmpresaID: empresaID,
		Ativo:     true,
		CreatedAt: agora,
		UpdatedAt: agora,
	}
	cota := plan.DoPlano(rede.Plano).FuncionariosPorEmpresa
	err = uc.txRunner.Run(ctx, func(
		_ repository.RedeRepository,
		_ repository.EmpresaRepository,
		userRepo repository.UserRepository,
	) error {
		if !plan.SemLimite(cota) {
			atual, err := userRepo.CountFuncionariosAtivos(ctx, empresaID)
			if err != nil {
				return err
			}
			if plan.Excede(atual, cota) {
				return &domain.LimiteExcedidoError{
					Recurso: "funcionarios",
					Atual:   atual,
					Limite:  cota,
					Plano:   rede.Plano,
				}
			}
		}
		return userRepo.Create(ctx, funcionario)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(funcionario)
	return &resp, nil
}

// BloquearTrialsExpirados varredura de manutenção: desativa redes trial vencidas.
// Idempotente; chamada periodicamente pelo processo principal.
func (uc *UseCase) BloquearTrialsExpirados(ctx context.Context) (int, error) {
	return uc.redeRepo.DesativarTrialsExpirados(ctx, uc.agora())
}

// ValidarOperacao confere posse e bloqueio de trial sem executar nada. Usado pelo
// middleware HTTP para responder cedo; os usecases revalidam por conta própria.
func (uc *UseCase) ValidarOperacao(ctx context.Context, adminID, redeID string) error {
	_, err := uc.validarRede(ctx, adminID, redeID)
	return err
}

// validarRede carrega a rede, confere a posse e aplica o bloqueio de trial.
func (uc *UseCase) validarRede(ctx context.Context, adminID, redeID string) (*entity.RedeEmpresarial, error) {
	rede, err := uc.redeRepo.GetByID(ctx, redeID)
	if err != nil {
		return nil, err
	}
	if rede.UsuarioAdminID != adminID {
		return nil, domain.ErrForbidden
	}
	agora := uc.agora()
	if rede.TrialExpirado(agora) {
		fim := agora
		if rede.TrialFim != nil {
			fim = *rede.TrialFim
		}
		return nil, &domain.TrialExpiradoError{TrialFim: fim, Agora: agora}
	}
	if !rede.Ativo {
		return nil, domain.ErrForbidden
	}
	return rede, nil
}

// normalizarDocumento remove tudo que não for dígito do CPF/CNPJ.
func normalizarDocumento(doc string) string {
	var b strings.Builder
	for _, r := range doc {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
