package rede

import (
	"context"

	"github.com/agendafacil/agendafacil-api/internal/application/dto"
	"github.com/agendafacil/agendafacil-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando repositórios
// amarrados a essa tx. O contador empresas_ativas só muda aqui dentro, junto da
// escrita da empresa, para nunca divergir das linhas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		redeRepo repository.RedeRepository,
		empresaRepo repository.EmpresaRepository,
		userRepo repository.UserRepository,
	) error) error
}

// TrialStatusCache cache de leitura do status de trial (TTL curto). O cache nunca
// participa das decisões de bloqueio, só da rota de consulta; implementação nil
// apenas desliga a otimização. A chave é montada pelo usecase e carrega o dono,
// então um hit nunca atravessa a checagem de posse.
type TrialStatusCache interface {
	Get(ctx context.Context, chave string) (*dto.TrialStatusResponse, bool)
	Set(ctx context.Context, chave string, st *dto.TrialStatusResponse)
	Invalidate(ctx context.Context, chave string)
}
