package entity

import "time"

// Tipos de usuário.
const (
	TipoCliente     = "cliente"
	TipoFuncionario = "funcionario"
	TipoEmpresa     = "empresa"
	TipoAdminRede   = "admin_rede"
)

// User representa um usuário autenticável: cliente, funcionário, empresa ou admin de rede.
type User struct {
	ID        string
	Nome      string
	Email     string
	SenhaHash string
	Telefone  string
	Tipo      string // ver constantes Tipo*
	EmpresaID string // vazio para clientes e admins de rede
	Ativo     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
