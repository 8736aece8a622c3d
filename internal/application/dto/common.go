package dto

// ErrorResponse corpo padrão de erro da API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse corpo padrão para operações sem payload de retorno.
type MessageResponse struct {
	Message string `json:"message"`
}

// PageRequest paginação por limit/offset com defaults sãos.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Normalizar aplica defaults e teto de página.
func (p *PageRequest) Normalizar() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
