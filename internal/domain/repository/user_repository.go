package repository

import (
	"context"

	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
)

// UserRepository porta de persistência de usuários.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// CountFuncionariosAtivos contagem viva dos funcionários ativos de uma empresa,
	// usada pelo enforcement de limites do plano.
	CountFuncionariosAtivos(ctx context.Context, empresaID string) (int, error)
}
