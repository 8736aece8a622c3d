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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementação de UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColunas = `
	id, nome, email, senha_hash, telefone, tipo,
	COALESCE(empresa_id::text, ''), ativo, created_at, updated_at`

// Create insere o usuário. Email duplicado devolve ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, nome, email, senha_hash, telefone, tipo, empresa_id,
			ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Nome, user.Email, user.SenhaHash, user.Telefone, user.Tipo,
		nullIfEmpty(user.EmpresaID), user.Ativo, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID busca um usuário por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColunas + ` FROM users WHERE id = $1`
	return r.get(ctx, query, id)
}

// FindByEmail busca um usuário pelo email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColunas + ` FROM users WHERE email = $1`
	return r.get(ctx, query, email)
}

// CountFuncionariosAtivos contagem viva dos funcionários ativos de uma empresa.
func (r *UserRepo) CountFuncionariosAtivos(ctx context.Context, empresaID string) (int, error) {
	query := `SELECT count(*) FROM users WHERE empresa_id = $1 AND tipo = 'funcionario' AND ativo = true`
	var n int
	if err := r.q.QueryRow(ctx, query, empresaID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count funcionarios: %w", err)
	}
	return n, nil
}

func (r *UserRepo) get(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Nome, &u.Email, &u.SenhaHash, &u.Telefone, &u.Tipo,
		&u.EmpresaID, &u.Ativo, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
