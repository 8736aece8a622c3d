package dto

import (
	"time"

	"github.com/agendafacil/agendafacil-api/internal/domain/entity"
)

// RegisterRequest payload de cadastro de usuário.
type RegisterRequest struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Senha    string `json:"senha"`
	Telefone string `json:"telefone"`
	Tipo     string `json:"tipo"` // cliente, funcionario, empresa, admin_rede
}

// LoginRequest payload de login.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// AuthResponse token emitido no login/registro.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse representação de um usuário na API (sem hash de senha).
type UserResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	Telefone  string    `json:"telefone,omitempty"`
	Tipo      string    `json:"tipo"`
	EmpresaID string    `json:"empresa_id,omitempty"`
	Ativo     bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converte a entidade na representação da API.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Nome:      u.Nome,
		Email:     u.Email,
		Telefone:  u.Telefone,
		Tipo:      u.Tipo,
		EmpresaID: u.EmpresaID,
		Ativo:     u.Ativo,
		CreatedAt: u.CreatedAt,
	}
}
