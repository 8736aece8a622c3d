package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agendafacil/agendafacil-api/internal/application/rede"
	"github.com/agendafacil/agendafacil-api/internal/application/scheduling"
	"github.com/agendafacil/agendafacil-api/internal/domain/repository"
)

var _ scheduling.TxRunner = (*TxRunner)(nil)
var _ rede.TxRunner = (*RedeTxRunner)(nil)

// TxRunner executa callbacks do motor de agendamento dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repos amarrados à tx e faz Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	agendaRepo repository.AgendaRepository,
	agendamentoRepo repository.AgendamentoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewAgendaRepository(tx), NewAgendamentoRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RedeTxRunner executa callbacks de rede/empresa/funcionário dentro de uma transação.
type RedeTxRunner struct {
	pool *pgxpool.Pool
}

// NewRedeTxRunner constrói o runner com o pool.
func NewRedeTxRunner(pool *pgxpool.Pool) *RedeTxRunner {
	return &RedeTxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repos amarrados à tx e faz Commit ou Rollback.
func (r *RedeTxRunner) Run(ctx context.Context, fn func(
	redeRepo repository.RedeRepository,
	empresaRepo repository.EmpresaRepository,
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRedeRepository(tx), NewEmpresaRepository(tx), NewUserRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
