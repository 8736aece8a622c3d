package scheduling

import (
	"context"
	"sync"
	"time"

	"github.com/agendafacil/agendafacil-api/internal/domain"
	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
	"github.com/agendafacil/agendafacil-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória dos repositórios
//
// Reproduzem os contratos das implementações Postgres, incluindo a semântica
// dos updates condicionais (ReservarVaga atômico, transições com guarda de
// status). Os maps são protegidos por mutex para os testes de concorrência.
// ──────────────────────────────────────────────────────────────────────────────

type fakeAgendaRepo struct {
	mu      sync.Mutex
	agendas map[string]*entity.Agenda
}

func newFakeAgendaRepo() *fakeAgendaRepo {
	return &fakeAgendaRepo{agendas: make(map[string]*entity.Agenda)}
}

func (r *fakeAgendaRepo) Create(_ context.Context, agenda *entity.Agenda) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *agenda
	r.agendas[agenda.ID] = &cp
	return nil
}

func (r *fakeAgendaRepo) GetByID(_ context.Context, id string) (*entity.Agenda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.agendas[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAgendaRepo) ListByUsuario(_ context.Context, usuarioID string, f repository.AgendaFiltros, limit, offset int) ([]*entity.Agenda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Agenda
	for _, a := range r.agendas {
		if a.UsuarioID != usuarioID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

// ReservarVaga emula o update condicional: só concede se há vaga, e marca a
// agenda como ocupada quando a última vaga é tomada.
func (r *fakeAgendaRepo) ReservarVaga(_ context.Context, agendaID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.agendas[agendaID]
	if !ok {
		return domain.ErrNotFound
	}
	if a.Status != entity.AgendaStatusDisponivel || a.AgendamentosAtuais >= a.MaxAgendamentos {
		return domain.ErrCapacidadeEsgotada
	}
	a.AgendamentosAtuais++
	if a.AgendamentosAtuais >= a.MaxAgendamentos {
		a.Status = entity.AgendaStatusOcupado
	}
	return nil
}

func (r *fakeAgendaRepo) LiberarVaga(_ context.Context, agendaID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.agendas[agendaID]
	if !ok {
		return domain.ErrNotFound
	}
	if a.AgendamentosAtuais > 0 {
		a.AgendamentosAtuais--
	}
	if a.Status == entity.AgendaStatusOcupado {
		a.Status = entity.AgendaStatusDisponivel
	}
	return nil
}

func (r *fakeAgendaRepo) Cancelar(_ context.Context, agendaID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.agendas[agendaID]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = entity.AgendaStatusCancelado
	return nil
}

func (r *fakeAgendaRepo) Delete(_ context.Context, agendaID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.agendas, agendaID)
	return nil
}

// vagas devolve o contador atual, para asserções.
func (r *fakeAgendaRepo) vagas(agendaID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.agendas[agendaID].AgendamentosAtuais
}

type fakeAgendamentoRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Agendamento

	// countMes simula CountByRedeNoMes sem reconstruir o JOIN com empresas.
	countMes int
}

func newFakeAgendamentoRepo() *fakeAgendamentoRepo {
	return &fakeAgendamentoRepo{items: make(map[string]*entity.Agendamento)}
}

func (r *fakeAgendamentoRepo) Create(_ context.Context, ag *entity.Agendamento) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *ag
	r.items[ag.ID] = &cp
	return nil
}

func (r *fakeAgendamentoRepo) GetByID(_ context.Context, id string) (*entity.Agendamento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ag, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ag
	return &cp, nil
}

func (r *fakeAgendamentoRepo) List(_ context.Context, f repository.AgendamentoFiltros, limit, offset int) ([]*entity.Agendamento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Agendamento
	for _, ag := range r.items {
		if f.UsuarioID != "" && ag.UsuarioID != f.UsuarioID {
			continue
		}
		if f.EmpresaID != "" && ag.EmpresaID != f.EmpresaID {
			continue
		}
		if f.ClienteEmail != "" && ag.ClienteEmail != f.ClienteEmail {
			continue
		}
		if f.Status != "" && ag.Status != f.Status {
			continue
		}
		cp := *ag
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAgendamentoRepo) Confirmar(_ context.Context, id string, quando time.Time) error {
	return r.transicao(id, entity.AgendamentoConfirmado, quando, entity.AgendamentoPendente)
}

func (r *fakeAgendamentoRepo) Cancelar(_ context.Context, id, justificativa, canceladoPor string, quando time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ag, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !ag.EstaAtivo() {
		return domain.ErrTransicaoInvalida
	}
	ag.Status = entity.AgendamentoCancelado
	ag.Justificativa = justificativa
	ag.CanceladoPor = canceladoPor
	ag.DataCancelamento = &quando
	return nil
}

func (r *fakeAgendamentoRepo) MarcarReagendado(_ context.Context, id string, quando time.Time) error {
	return r.transicao(id, entity.AgendamentoReagendado, quando, entity.AgendamentoConfirmado)
}

func (r *fakeAgendamentoRepo) MarcarRealizado(_ context.Context, id string, quando time.Time) error {
	return r.transicao(id, entity.AgendamentoRealizado, quando, entity.AgendamentoConfirmado)
}

func (r *fakeAgendamentoRepo) MarcarNaoCompareceu(_ context.Context, id string, quando time.Time) error {
	return r.transicao(id, entity.AgendamentoNaoCompareceu, quando, entity.AgendamentoConfirmado)
}

func (r *fakeAgendamentoRepo) transicao(id, para string, quando time.Time, de ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ag, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	permitido := false
	for _, s := range de {
		if ag.Status == s {
			permitido = true
		}
	}
	if !permitido {
		return domain.ErrTransicaoInvalida
	}
	ag.Status = para
	ag.UpdatedAt = quando
	return nil
}

func (r *fakeAgendamentoRepo) CancelarAtivosDaAgenda(_ context.Context, agendaID, justificativa string, quando time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ag := range r.items {
		if ag.AgendaID == agendaID && ag.EstaAtivo() {
			ag.Status = entity.AgendamentoCancelado
			ag.Justificativa = justificativa
			ag.CanceladoPor = entity.CanceladoPorSistema
			ag.DataCancelamento = &quando
			n++
		}
	}
	return n, nil
}

func (r *fakeAgendamentoRepo) CountByRedeNoMes(_ context.Context, redeID string, ref time.Time) (int, error) {
	return r.countMes, nil
}

func (r *fakeAgendamentoRepo) status(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id].Status
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) CountFuncionariosAtivos(_ context.Context, empresaID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.users {
		if u.EmpresaID == empresaID && u.Tipo == entity.TipoFuncionario && u.Ativo {
			n++
		}
	}
	return n, nil
}

type fakeEmpresaRepo struct {
	mu       sync.Mutex
	empresas map[string]*entity.Empresa
}

func newFakeEmpresaRepo() *fakeEmpresaRepo {
	return &fakeEmpresaRepo{empresas: make(map[string]*entity.Empresa)}
}

func (r *fakeEmpresaRepo) Create(_ context.Context, empresa *entity.Empresa) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *empresa
	r.empresas[empresa.ID] = &cp
	return nil
}

func (r *fakeEmpresaRepo) GetByID(_ context.Context, id string) (*entity.Empresa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.empresas[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEmpresaRepo) ListByRede(_ context.Context, redeID string) ([]*entity.Empresa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Empresa
	for _, e := range r.empresas {
		if e.RedeID == redeID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEmpresaRepo) Desativar(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.empresas[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Ativo = false
	return nil
}

type fakeRedeRepo struct {
	mu    sync.Mutex
	redes map[string]*entity.RedeEmpresarial
}

func newFakeRedeRepo() *fakeRedeRepo {
	return &fakeRedeRepo{redes: make(map[string]*entity.RedeEmpresarial)}
}

func (r *fakeRedeRepo) Create(_ context.Context, rede *entity.RedeEmpresarial) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.redes {
		if x.CpfCnpjUsado == rede.CpfCnpjUsado {
			return domain.ErrCpfCnpjJaUsado
		}
		if x.UsuarioAdminID == rede.UsuarioAdminID {
			return domain.ErrRedeJaExiste
		}
	}
	cp := *rede
	r.redes[rede.ID] = &cp
	return nil
}

func (r *fakeRedeRepo) GetByID(_ context.Context, id string) (*entity.RedeEmpresarial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	x, ok := r.redes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *x
	return &cp, nil
}

func (r *fakeRedeRepo) GetByAdmin(_ context.Context, usuarioAdminID string) (*entity.RedeEmpresarial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.redes {
		if x.UsuarioAdminID == usuarioAdminID {
			cp := *x
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRedeRepo) IncrementarEmpresasAtivas(_ context.Context, redeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	x, ok := r.redes[redeID]
	if !ok {
		return false, domain.ErrNotFound
	}
	if x.EmpresasAtivas >= x.LimiteEmpresas {
		return false, nil
	}
	x.EmpresasAtivas++
	return true, nil
}

func (r *fakeRedeRepo) DecrementarEmpresasAtivas(_ context.Context, redeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	x, ok := r.redes[redeID]
	if !ok {
		return domain.ErrNotFound
	}
	if x.EmpresasAtivas > 0 {
		x.EmpresasAtivas--
	}
	return nil
}

func (r *fakeRedeRepo) Desativar(_ context.Context, redeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	x, ok := r.redes[redeID]
	if !ok {
		return domain.ErrNotFound
	}
	x.Ativo = false
	return nil
}

func (r *fakeRedeRepo) DesativarTrialsExpirados(_ context.Context, agora time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, x := range r.redes {
		if x.Plano == entity.PlanoTrial && x.Ativo && x.TrialFim != nil && x.TrialFim.Before(agora) {
			x.Ativo = false
			n++
		}
	}
	return n, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner e Notificador de teste
// ──────────────────────────────────────────────────────────────────────────────

// fakeTxRunner executa a função diretamente sobre os fakes. Os usecases ordenam
// as escritas de forma que a primeira falha aborta antes de qualquer efeito, o
// que dispensa rollback aqui.
type fakeTxRunner struct {
	agendaRepo      *fakeAgendaRepo
	agendamentoRepo *fakeAgendamentoRepo
}

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(
	agendaRepo repository.AgendaRepository,
	agendamentoRepo repository.AgendamentoRepository,
) error) error {
	return fn(tx.agendaRepo, tx.agendamentoRepo)
}

type fakeNotificador struct {
	mu          sync.Mutex
	criados     int
	confirmados int
	cancelados  int
	reagendados int
}

func (n *fakeNotificador) AgendamentoCriado(context.Context, *entity.Agendamento) {
	n.mu.Lock()
	n.criados++
	n.mu.Unlock()
}

func (n *fakeNotificador) AgendamentoConfirmado(context.Context, *entity.Agendamento) {
	n.mu.Lock()
	n.confirmados++
	n.mu.Unlock()
}

func (n *fakeNotificador) AgendamentoCancelado(context.Context, *entity.Agendamento) {
	n.mu.Lock()
	n.cancelados++
	n.mu.Unlock()
}

func (n *fakeNotificador) AgendamentoReagendado(context.Context, *entity.Agendamento, *entity.Agendamento) {
	n.mu.Lock()
	n.reagendados++
	n.mu.Unlock()
}
