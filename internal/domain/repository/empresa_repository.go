package repository

import (
	"context"

	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
)

// EmpresaRepository porta de persistência de empresas (unidades de uma rede).
type EmpresaRepository interface {
	Create(ctx context.Context, empresa *entity.Empresa) error
	GetByID(ctx context.Context, id string) (*entity.Empresa, error)
	ListByRede(ctx context.Context, redeID string) ([]*entity.Empresa, error)
	Desativar(ctx context.Context, id string) error
}
