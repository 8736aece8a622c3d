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

var _ repository.AgendamentoRepository = (*AgendamentoRepo)(nil)

// AgendamentoRepo implementação de AgendamentoRepository sobre PostgreSQL.
// As transições de status repetem o guard de estado no WHERE: sob corrida, a
// segunda transição afeta zero linhas e devolve ErrTransicaoInvalida.
type AgendamentoRepo struct {
	q Querier
}

// NewAgendamentoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewAgendamentoRepository(q Querier) *AgendamentoRepo {
	return &AgendamentoRepo{q: q}
}

const agendamentoColunas = `
	id, agenda_id, usuario_id, COALESCE(empresa_id::text, ''),
	cliente_nome, cliente_email, cliente_telefone, data,
	to_char(hora_inicio, 'HH24:MI'), to_char(hora_fim, 'HH24:MI'), duracao,
	status, canal, preco, status_pagamento, observacoes, justificativa,
	cancelado_por, COALESCE(reagendado_de::text, ''),
	data_confirmacao, data_realizacao, data_cancelamento,
	created_at, updated_at`

// Create insere o agendamento.
func (r *AgendamentoRepo) Create(ctx context.Context, ag *entity.Agendamento) error {
	query := `
		INSERT INTO agendamentos (id, agenda_id, usuario_id, empresa_id,
			cliente_nome, cliente_email, cliente_telefone, data, hora_inicio, hora_fim,
			duracao, status, canal, preco, status_pagamento, observacoes, justificativa,
			cancelado_por, reagendado_de, data_confirmacao, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::time, $10::time,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(ctx, query,
		ag.ID, ag.AgendaID, ag.UsuarioID, nullIfEmpty(ag.EmpresaID),
		ag.ClienteNome, ag.ClienteEmail, ag.ClienteTelefone, ag.Data, ag.HoraInicio, ag.HoraFim,
		ag.Duracao, ag.Status, ag.Canal, ag.Preco, ag.StatusPagamento, ag.Observacoes, ag.Justificativa,
		ag.CanceladoPor, nullIfEmpty(ag.ReagendadoDe), ag.DataConfirmacao, ag.CreatedAt, ag.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create agendamento: %w", err)
	}
	return nil
}

// GetByID busca um agendamento por ID.
func (r *AgendamentoRepo) GetByID(ctx context.Context, id string) (*entity.Agendamento, error) {
	query := `SELECT ` + agendamentoColunas + ` FROM agendamentos WHERE id = $1`
	ag, err := scanAgendamento(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get agendamento: %w", err)
	}
	return ag, nil
}

// List lista agendamentos segundo os filtros, mais recentes primeiro.
func (r *AgendamentoRepo) List(ctx context.Context, f repository.AgendamentoFiltros, limit, offset int) ([]*entity.Agendamento, error) {
	query := `SELECT ` + agendamentoColunas + ` FROM agendamentos WHERE 1=1`
	var args []any
	if f.UsuarioID != "" {
		args = append(args, f.UsuarioID)
		query += fmt.Sprintf(" AND usuario_id = $%d", len(args))
	}
	if f.EmpresaID != "" {
		args = append(args, f.EmpresaID)
		query += fmt.Sprintf(" AND empresa_id = $%d", len(args))
	}
	if f.ClienteEmail != "" {
		args = append(args, f.ClienteEmail)
		query += fmt.Sprintf(" AND cliente_email = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Data != nil {
		args = append(args, *f.Data)
		query += fmt.Sprintf(" AND data = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY data DESC, hora_inicio DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list agendamentos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Agendamento
	for rows.Next() {
		ag, err := scanAgendamento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agendamento: %w", err)
		}
		out = append(out, ag)
	}
	return out, rows.Err()
}

// Confirmar move pendente -> confirmado.
func (r *AgendamentoRepo) Confirmar(ctx context.Context, id string, quando time.Time) error {
	query := `
		UPDATE agendamentos
		SET status = 'confirmado', data_confirmacao = $2, updated_at = $2
		WHERE id = $1 AND status = 'pendente'`
	return r.execTransicao(ctx, query, id, quando)
}

// Cancelar move pendente/confirmado -> cancelado, registrando autor e justificativa.
func (r *AgendamentoRepo) Cancelar(ctx context.Context, id, justificativa, canceladoPor string, quando time.Time) error {
	query := `
		UPDATE agendamentos
		SET status = 'cancelado', justificativa = $2, cancelado_por = $3,
		    data_cancelamento = $4, updated_at = $4
		WHERE id = $1 AND status IN ('pendente', 'confirmado')`
	tag, err := r.q.Exec(ctx, query, id, justificativa, canceladoPor, quando)
	if err != nil {
		return fmt.Errorf("cancelar agendamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransicaoInvalida
	}
	return nil
}

// MarcarReagendado fecha o agendamento de origem da cadeia de reagendamento.
func (r *AgendamentoRepo) MarcarReagendado(ctx context.Context, id string, quando time.Time) error {
	query := `
		UPDATE agendamentos
		SET status = 'reagendado', updated_at = $2
		WHERE id = $1 AND status = 'confirmado'`
	return r.execTransicao(ctx, query, id, quando)
}

// MarcarRealizado move confirmado -> realizado.
func (r *AgendamentoRepo) MarcarRealizado(ctx context.Context, id string, quando time.Time) error {
	query := `
		UPDATE agendamentos
		SET status = 'realizado', data_realizacao = $2, updated_at = $2
		WHERE id = $1 AND status = 'confirmado'`
	return r.execTransicao(ctx, query, id, quando)
}

// MarcarNaoCompareceu move confirmado -> nao_compareceu.
func (r *AgendamentoRepo) MarcarNaoCompareceu(ctx context.Context, id string, quando time.Time) error {
	query := `
		UPDATE agendamentos
		SET status = 'nao_compareceu', updated_at = $2
		WHERE id = $1 AND status = 'confirmado'`
	return r.execTransicao(ctx, query, id, quando)
}

// CancelarAtivosDaAgenda cancela em lote os agendamentos vivos de uma agenda.
func (r *AgendamentoRepo) CancelarAtivosDaAgenda(ctx context.Context, agendaID, justificativa string, quando time.Time) (int, error) {
	query := `
		UPDATE agendamentos
		SET status = 'cancelado', justificativa = $2, cancelado_por = 'sistema',
		    data_cancelamento = $3, updated_at = $3
		WHERE agenda_id = $1 AND status IN ('pendente', 'confirmado')`
	tag, err := r.q.Exec(ctx, query, agendaID, justificativa, quando)
	if err != nil {
		return 0, fmt.Errorf("cancelar ativos da agenda: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// CountByRedeNoMes conta os agendamentos criados no mês de ref pelas empresas da rede.
// Cancelamentos não devolvem cota: toda criação do mês conta.
func (r *AgendamentoRepo) CountByRedeNoMes(ctx context.Context, redeID string, ref time.Time) (int, error) {
	query := `
		SELECT count(*)
		FROM agendamentos a
		JOIN empresas e ON e.id = a.empresa_id
		WHERE e.rede_id = $1
		  AND a.created_at >= date_trunc('month', $2::timestamptz)
		  AND a.created_at < date_trunc('month', $2::timestamptz) + interval '1 month'`
	var n int
	if err := r.q.QueryRow(ctx, query, redeID, ref).Scan(&n); err != nil {
		return 0, fmt.Errorf("count agendamentos da rede no mês: %w", err)
	}
	return n, nil
}

func (r *AgendamentoRepo) execTransicao(ctx context.Context, query, id string, quando time.Time) error {
	tag, err := r.q.Exec(ctx, query, id, quando)
	if err != nil {
		return fmt.Errorf("transição de agendamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransicaoInvalida
	}
	return nil
}

func scanAgendamento(row pgx.Row) (*entity.Agendamento, error) {
	var a entity.Agendamento
	err := row.Scan(
		&a.ID, &a.AgendaID, &a.UsuarioID, &a.EmpresaID,
		&a.ClienteNome, &a.ClienteEmail, &a.ClienteTelefone, &a.Data,
		&a.HoraInicio, &a.HoraFim, &a.Duracao,
		&a.Status, &a.Canal, &a.Preco, &a.StatusPagamento, &a.Observacoes, &a.Justificativa,
		&a.CanceladoPor, &a.ReagendadoDe,
		&a.DataConfirmacao, &a.DataRealizacao, &a.DataCancelamento,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
