package repository

import (
	"context"
	"time"

	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
)

// RedeRepository porta de persistência de redes empresariais.
type RedeRepository interface {
	// Create persiste a rede. Devolve domain.ErrCpfCnpjJaUsado quando o índice
	// único de cpf_cnpj_usado é violado e domain.ErrRedeJaExiste para o de admin.
	Create(ctx context.Context, rede *entity.RedeEmpresarial) error
	GetByID(ctx context.Context, id string) (*entity.RedeEmpresarial, error)
	GetByAdmin(ctx context.Context, usuarioAdminID string) (*entity.RedeEmpresarial, error)

	// IncrementarEmpresasAtivas soma 1 ao contador com guarda contra limite_empresas
	// na própria cláusula WHERE. Devolve false quando o limite já foi atingido.
	IncrementarEmpresasAtivas(ctx context.Context, redeID string) (bool, error)

	// DecrementarEmpresasAtivas subtrai 1 com piso em zero.
	DecrementarEmpresasAtivas(ctx context.Context, redeID string) error

	// Desativar marca a rede como inativa (soft). Nunca apaga: os dados ficam
	// preservados para reativação após upgrade.
	Desativar(ctx context.Context, redeID string) error

	// DesativarTrialsExpirados varredura idempotente de manutenção: marca como
	// inativas as redes trial com trial_fim < agora. Devolve quantas mudaram.
	DesativarTrialsExpirados(ctx context.Context, agora time.Time) (int, error)
}
