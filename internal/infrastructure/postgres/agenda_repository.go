package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agendafacil/agendafacil-api/internal/domain"
	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
	"github.com/agendafacil/agendafacil-api/internal/domain/repository"
)

var _ repository.AgendaRepository = (*AgendaRepo)(nil)

// AgendaRepo implementação de AgendaRepository sobre PostgreSQL (usável com pool ou tx).
type AgendaRepo struct {
	q Querier
}

// NewAgendaRepository constrói o adaptador de agendas. Passar pool ou tx (Querier).
func NewAgendaRepository(q Querier) *AgendaRepo {
	return &AgendaRepo{q: q}
}

// Horas saem como texto "HH:MM" para casar com a representação da entidade.
const agendaColunas = `
	id, usuario_id, titulo, descricao, data,
	to_char(hora_inicio, 'HH24:MI'), to_char(hora_fim, 'HH24:MI'),
	duracao, intervalo, max_agendamentos, agendamentos_atuais,
	status, tipo, recorrencia, preco, moeda, local, configuracoes,
	created_at, updated_at`

// Create insere a agenda.
func (r *AgendaRepo) Create(ctx context.Context, agenda *entity.Agenda) error {
	var recorrencia any
	if agenda.Recorrencia != nil {
		b, err := json.Marshal(agenda.Recorrencia)
		if err != nil {
			return fmt.Errorf("marshal recorrencia: %w", err)
		}
		recorrencia = b
	}
	configuracoes, err := json.Marshal(agenda.Configuracoes)
	if err != nil {
		return fmt.Errorf("marshal configuracoes: %w", err)
	}
	query := `
		INSERT INTO agendas (id, usuario_id, titulo, descricao, data, hora_inicio, hora_fim,
			duracao, intervalo, max_agendamentos, agendamentos_atuais, status, tipo,
			recorrencia, preco, moeda, local, configuracoes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::time, $7::time, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20)`
	_, err = r.q.Exec(ctx, query,
		agenda.ID, agenda.UsuarioID, agenda.Titulo, agenda.Descricao, agenda.Data,
		agenda.HoraInicio, agenda.HoraFim, agenda.Duracao, agenda.Intervalo,
		agenda.MaxAgendamentos, agenda.AgendamentosAtuais, agenda.Status, agenda.Tipo,
		recorrencia, agenda.Preco, agenda.Moeda, agenda.Local, configuracoes,
		agenda.CreatedAt, agenda.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create agenda: %w", err)
	}
	return nil
}

// GetByID busca uma agenda por ID.
func (r *AgendaRepo) GetByID(ctx context.Context, id string) (*entity.Agenda, error) {
	query := `SELECT ` + agendaColunas + ` FROM agendas WHERE id = $1`
	agenda, err := scanAgenda(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get agenda: %w", err)
	}
	return agenda, nil
}

// ListByUsuario lista as agendas do prestador, com filtros opcionais.
func (r *AgendaRepo) ListByUsuario(ctx context.Context, usuarioID string, f repository.AgendaFiltros, limit, offset int) ([]*entity.Agenda, error) {
	query := `SELECT ` + agendaColunas + ` FROM agendas WHERE usuario_id = $1`
	args := []any{usuarioID}
	if f.Data != nil {
		args = append(args, *f.Data)
		query += fmt.Sprintf(" AND data = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY data, hora_inicio LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list agendas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Agenda
	for rows.Next() {
		agenda, err := scanAgenda(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agenda: %w", err)
		}
		out = append(out, agenda)
	}
	return out, rows.Err()
}

// ReservarVaga concede uma vaga por update condicional: o WHERE contra a capacidade
// garante que, sob concorrência, nunca se concedam mais vagas do que existem.
// Ao lotar, o status muda para ocupado na mesma instrução.
func (r *AgendaRepo) ReservarVaga(ctx context.Context, agendaID string) error {
	query := `
		UPDATE agendas
		SET agendamentos_atuais = agendamentos_atuais + 1,
		    status = CASE WHEN agendamentos_atuais + 1 >= max_agendamentos THEN 'ocupado' ELSE status END,
		    updated_at = now()
		WHERE id = $1 AND status = 'disponivel' AND agendamentos_atuais < max_agendamentos`
	tag, err := r.q.Exec(ctx, query, agendaID)
	if err != nil {
		return fmt.Errorf("reservar vaga: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCapacidadeEsgotada
	}
	return nil
}

// LiberarVaga devolve uma vaga (piso 0) e reabre agendas que estavam lotadas.
func (r *AgendaRepo) LiberarVaga(ctx context.Context, agendaID string) error {
	query := `
		UPDATE agendas
		SET agendamentos_atuais = GREATEST(agendamentos_atuais - 1, 0),
		    status = CASE WHEN status = 'ocupado' THEN 'disponivel' ELSE status END,
		    updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, agendaID)
	if err != nil {
		return fmt.Errorf("liberar vaga: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Cancelar marca a agenda como cancelada.
func (r *AgendaRepo) Cancelar(ctx context.Context, agendaID string) error {
	query := `UPDATE agendas SET status = 'cancelado', updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, agendaID)
	if err != nil {
		return fmt.Errorf("cancelar agenda: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete apaga a agenda.
func (r *AgendaRepo) Delete(ctx context.Context, agendaID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM agendas WHERE id = $1`, agendaID)
	if err != nil {
		return fmt.Errorf("delete agenda: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAgenda(row pgx.Row) (*entity.Agenda, error) {
	var a entity.Agenda
	var recorrencia, configuracoes []byte
	err := row.Scan(
		&a.ID, &a.UsuarioID, &a.Titulo, &a.Descricao, &a.Data,
		&a.HoraInicio, &a.HoraFim, &a.Duracao, &a.Intervalo,
		&a.MaxAgendamentos, &a.AgendamentosAtuais, &a.Status, &a.Tipo,
		&recorrencia, &a.Preco, &a.Moeda, &a.Local, &configuracoes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(recorrencia) > 0 {
		var rec entity.Recorrencia
		if err := json.Unmarshal(recorrencia, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal recorrencia: %w", err)
		}
		a.Recorrencia = &rec
	}
	if len(configuracoes) > 0 {
		if err := json.Unmarshal(configuracoes, &a.Configuracoes); err != nil {
			return nil, fmt.Errorf("unmarshal configuracoes: %w", err)
		}
	}
	return &a, nil
}
