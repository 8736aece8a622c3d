package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/agendafacil/agendafacil-api/internal/application/auth"
	"github.com/agendafacil/agendafacil-api/internal/application/dto"
	"github.com/agendafacil/agendafacil-api/internal/domain"
	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
	pkgjwt "github.com/agendafacil/agendafacil-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de UserRepository
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
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
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) CountFuncionariosAtivos(_ context.Context, empresaID string) (int, error) {
	return 0, nil
}

var jwtCfgTeste = auth.JWTConfig{
	Secret:     "segredo-de-teste",
	ExpMinutes: 60,
	Issuer:     "agendafacil-test",
}

func novoAuthUC() (*auth.UseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return auth.NewUseCase(repo, jwtCfgTeste), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_ClientePorPadrao(t *testing.T) {
	uc, repo := novoAuthUC()

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Nome:  "Maria Silva",
		Email: "maria@teste.com",
		Senha: "senha-forte",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TipoCliente, out.User.Tipo, "sem tipo informado, registra como cliente")
	assert.True(t, out.User.Ativo)
	require.NotEmpty(t, out.Token)

	// O token emitido carrega a identidade do usuário.
	userID, _, tipo, err := pkgjwt.Parse(jwtCfgTeste.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.TipoCliente, tipo)

	// A senha é persistida como hash bcrypt.
	criado := repo.users[out.User.ID]
	require.NotNil(t, criado)
	assert.NotEqual(t, "senha-forte", criado.SenhaHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(criado.SenhaHash), []byte("senha-forte")))
}

func TestRegister_AdminRede(t *testing.T) {
	uc, _ := novoAuthUC()

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "dono@rede.com",
		Senha: "senha-forte",
		Tipo:  entity.TipoAdminRede,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TipoAdminRede, out.User.Tipo)
}

func TestRegister_FuncionarioNaoSeAutoRegistra(t *testing.T) {
	// Funcionários entram pelo cadastro do admin da rede, nunca por aqui.
	uc, _ := novoAuthUC()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "func@rede.com",
		Senha: "senha-forte",
		Tipo:  entity.TipoFuncionario,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := novoAuthUC()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "maria@teste.com", Senha: "x12345"})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{Email: "maria@teste.com", Senha: "y67890"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_SemEmailOuSenha(t *testing.T) {
	uc, _ := novoAuthUC()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Senha: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{Email: "a@b.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredenciaisValidas(t *testing.T) {
	uc, _ := novoAuthUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "maria@teste.com", Senha: "senha-forte"})
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "maria@teste.com", Senha: "senha-forte"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "maria@teste.com", out.User.Email)
}

func TestLogin_SenhaErrada(t *testing.T) {
	uc, _ := novoAuthUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "maria@teste.com", Senha: "senha-forte"})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "maria@teste.com", Senha: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := novoAuthUC()

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ninguem@teste.com", Senha: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInativo(t *testing.T) {
	uc, repo := novoAuthUC()
	out, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "maria@teste.com", Senha: "senha-forte"})
	require.NoError(t, err)
	repo.users[out.User.ID].Ativo = false

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "maria@teste.com", Senha: "senha-forte"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
