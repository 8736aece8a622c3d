package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agendafacil/agendafacil-api/internal/domain"
	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
	"github.com/agendafacil/agendafacil-api/internal/domain/repository"
)

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo implementação de EmpresaRepository sobre PostgreSQL.
type EmpresaRepo struct {
	q Querier
}

// NewEmpresaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewEmpresaRepository(q Querier) *EmpresaRepo {
	return &EmpresaRepo{q: q}
}

const empresaColunas = `
	id, rede_id, nome_unidade, endereco, cidade, estado, cep, whatsapp,
	ativo, created_at, updated_at`

// Create insere a empresa.
func (r *EmpresaRepo) Create(ctx context.Context, empresa *entity.Empresa) error {
	query := `
		INSERT INTO empresas (id, rede_id, nome_unidade, endereco, cidade, estado,
			cep, whatsapp, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		empresa.ID, empresa.RedeID, empresa.NomeUnidade, empresa.Endereco, empresa.Cidade,
		empresa.Estado, empresa.CEP, empresa.WhatsApp, empresa.Ativo,
		empresa.CreatedAt, empresa.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create empresa: %w", err)
	}
	return nil
}

// GetByID busca uma empresa por ID.
func (r *EmpresaRepo) GetByID(ctx context.Context, id string) (*entity.Empresa, error) {
	query := `SELECT ` + empresaColunas + ` FROM empresas WHERE id = $1`
	empresa, err := scanEmpresa(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return empresa, nil
}

// ListByRede lista as empresas da rede, ativas primeiro.
func (r *EmpresaRepo) ListByRede(ctx context.Context, redeID string) ([]*entity.Empresa, error) {
	query := `SELECT ` + empresaColunas + ` FROM empresas WHERE rede_id = $1 ORDER BY ativo DESC, created_at`
	rows, err := r.q.Query(ctx, query, redeID)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Empresa
	for rows.Next() {
		empresa, err := scanEmpresa(rows)
		if err != nil {
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		out = append(out, empresa)
	}
	return out, rows.Err()
}

// Desativar marca a empresa como inativa.
func (r *EmpresaRepo) Desativar(ctx context.Context, id string) error {
	query := `UPDATE empresas SET ativo = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("desativar empresa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEmpresa(row pgx.Row) (*entity.Empresa, error) {
	var e entity.Empresa
	err := row.Scan(
		&e.ID, &e.RedeID, &e.NomeUnidade, &e.Endereco, &e.Cidade, &e.Estado,
		&e.CEP, &e.WhatsApp, &e.Ativo, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
