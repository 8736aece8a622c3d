package entity

import "time"

// Empresa é uma unidade de negócio pertencente a uma rede empresarial.
// Relação: Rede 1-N Empresa 1-N Agenda 1-N Agendamento.
type Empresa struct {
	ID          string
	RedeID      string
	NomeUnidade string
	Endereco    string
	Cidade      string
	Estado      string
	CEP         string
	WhatsApp    string
	Ativo       bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
