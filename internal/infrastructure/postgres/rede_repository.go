package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/agendafacil/agendafacil-api/internal/domain"
	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
	"github.com/agendafacil/agendafacil-api/internal/domain/repository"
)

var _ repository.RedeRepository = (*RedeRepo)(nil)

// RedeRepo implementação de RedeRepository sobre PostgreSQL.
type RedeRepo struct {
	q Querier
}

// NewRedeRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewRedeRepository(q Querier) *RedeRepo {
	return &RedeRepo{q: q}
}

const redeColunas = `
	id, nome_rede, descricao, usuario_admin_id, plano, limite_empresas,
	empresas_ativas, trial_inicio, trial_fim, cpf_cnpj_usado, ativo,
	created_at, updated_at`

// Create insere a rede, mapeando as violações de unicidade para os erros de domínio.
func (r *RedeRepo) Create(ctx context.Context, rede *entity.RedeEmpresarial) error {
	query := `
		INSERT INTO redes_empresariais (id, nome_rede, descricao, usuario_admin_id, plano,
			limite_empresas, empresas_ativas, trial_inicio, trial_fim, cpf_cnpj_usado,
			ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		rede.ID, rede.NomeRede, rede.Descricao, rede.UsuarioAdminID, rede.Plano,
		rede.LimiteEmpresas, rede.EmpresasAtivas, rede.TrialInicio, rede.TrialFim,
		rede.CpfCnpjUsado, rede.Ativo, rede.CreatedAt, rede.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			switch constraintViolada(err) {
			case "uq_redes_cpf_cnpj":
				return domain.ErrCpfCnpjJaUsado
			case "uq_redes_admin":
				return domain.ErrRedeJaExiste
			}
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create rede: %w", err)
	}
	return nil
}

// GetByID busca uma rede por ID.
func (r *RedeRepo) GetByID(ctx context.Context, id string) (*entity.RedeEmpresarial, error) {
	query := `SELECT ` + redeColunas + ` FROM redes_empresariais WHERE id = $1`
	return r.get(ctx, query, id)
}

// GetByAdmin busca a rede pelo usuário administrador.
func (r *RedeRepo) GetByAdmin(ctx context.Context, usuarioAdminID string) (*entity.RedeEmpresarial, error) {
	query := `SELECT ` + redeColunas + ` FROM redes_empresariais WHERE usuario_admin_id = $1`
	return r.get(ctx, query, usuarioAdminID)
}

// IncrementarEmpresasAtivas soma 1 ao contador com guarda contra o limite no WHERE.
// Sob concorrência, só uma das transações em disputa pela última vaga afeta a linha.
func (r *RedeRepo) IncrementarEmpresasAtivas(ctx context.Context, redeID string) (bool, error) {
	query := `
		UPDATE redes_empresariais
		SET empresas_ativas = empresas_ativas + 1, updated_at = now()
		WHERE id = $1 AND empresas_ativas < limite_empresas`
	tag, err := r.q.Exec(ctx, query, redeID)
	if err != nil {
		return false, fmt.Errorf("incrementar empresas ativas: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// DecrementarEmpresasAtivas subtrai 1 com piso em zero.
func (r *RedeRepo) DecrementarEmpresasAtivas(ctx context.Context, redeID string) error {
	query := `
		UPDATE redes_empresariais
		SET empresas_ativas = GREATEST(empresas_ativas - 1, 0), updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, redeID)
	if err != nil {
		return fmt.Errorf("decrementar empresas ativas: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Desativar marca a rede como inativa.
func (r *RedeRepo) Desativar(ctx context.Context, redeID string) error {
	query := `UPDATE redes_empresariais SET ativo = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, redeID)
	if err != nil {
		return fmt.Errorf("desativar rede: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DesativarTrialsExpirados desativa em lote as redes trial vencidas. Idempotente.
func (r *RedeRepo) DesativarTrialsExpirados(ctx context.Context, agora time.Time) (int, error) {
	query := `
		UPDATE redes_empresariais
		SET ativo = false, updated_at = now()
		WHERE plano = 'trial' AND ativo = true AND trial_fim IS NOT NULL AND trial_fim < $1`
	tag, err := r.q.Exec(ctx, query, agora)
	if err != nil {
		return 0, fmt.Errorf("desativar trials expirados: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *RedeRepo) get(ctx context.Context, query string, arg any) (*entity.RedeEmpresarial, error) {
	var rede entity.RedeEmpresarial
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&rede.ID, &rede.NomeRede, &rede.Descricao, &rede.UsuarioAdminID, &rede.Plano,
		&rede.LimiteEmpresas, &rede.EmpresasAtivas, &rede.TrialInicio, &rede.TrialFim,
		&rede.CpfCnpjUsado, &rede.Ativo, &rede.CreatedAt, &rede.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get rede: %w", err)
	}
	return &rede, nil
}
