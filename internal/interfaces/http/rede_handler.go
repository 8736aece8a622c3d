package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agendafacil/agendafacil-api/internal/application/dto"
	"github.com/agendafacil/agendafacil-api/internal/application/rede"
)

// RedeHandler rotas de redes empresariais, unidades e funcionários (protegido).
type RedeHandler struct {
	uc *rede.UseCase
}

// NewRedeHandler constrói o handler.
func NewRedeHandler(uc *rede.UseCase) *RedeHandler {
	return &RedeHandler{uc: uc}
}

// Create godoc
// @Summary      Criar rede empresarial
// @Description  Sem plano informado, inicia em trial. Um trial por CPF/CNPJ.
// @Tags         redes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRedeRequest  true  "nome_rede, cpf_cnpj, plano (opcional)"
// @Success      201   {object}  dto.RedeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/redes [post]
func (h *RedeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRedeRequest
	if err := c.BodyParser(&in); err != nil {
		return erro(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.CriarRede(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MinhaRede godoc
// @Summary      Buscar a rede do administrador autenticado
// @Tags         redes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RedeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/redes/minha [get]
func (h *RedeHandler) MinhaRede(c *fiber.Ctx) error {
	out, err := h.uc.MinhaRede(c.Context(), GetUserID(c))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(out)
}

// TrialStatus godoc
// @Summary      Status do trial da rede
// @Description  Leitura cacheada (TTL curto). O bloqueio de operações nunca usa o cache.
// @Tags         redes
// @Security     Bearer
// @Produce      json
// @Param        redeId  path  string  true  "ID da rede"
// @Success      200  {object}  dto.TrialStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/redes/{redeId}/trial-status [get]
func (h *RedeHandler) TrialStatus(c *fiber.Ctx) error {
	out, err := h.uc.StatusTrial(c.Context(), GetUserID(c), c.Params("redeId"))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(out)
}

// CreateEmpresa godoc
// @Summary      Criar empresa (unidade) na rede
// @Description  Incremento condicional do contador contra o limite do plano, na mesma transação.
// @Tags         redes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        redeId  path  string                    true  "ID da rede"
// @Param        body    body  dto.CreateEmpresaRequest  true  "nome_unidade e endereço"
// @Success      201     {object}  dto.EmpresaResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/redes/{redeId}/empresas [post]
func (h *RedeHandler) CreateEmpresa(c *fiber.Ctx) error {
	var in dto.CreateEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return erro(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.CriarEmpresa(c.Context(), GetUserID(c), c.Params("redeId"), in)
	if err != nil {
		return respondErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEmpresas godoc
// @Summary      Listar empresas da rede
// @Tags         redes
// @Security     Bearer
// @Produce      json
// @Param        redeId  path  string  true  "ID da rede"
// @Success      200  {array}  dto.EmpresaResponse
// @Router       /api/redes/{redeId}/empresas [get]
func (h *RedeHandler) ListEmpresas(c *fiber.Ctx) error {
	out, err := h.uc.ListarEmpresas(c.Context(), GetUserID(c), c.Params("redeId"))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(out)
}

// DesativarEmpresa godoc
// @Summary      Desativar empresa
// @Description  Soft delete; devolve a vaga no contador da rede.
// @Tags         redes
// @Security     Bearer
// @Param        empresaId  path  string  true  "ID da empresa"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/empresas/{empresaId} [delete]
func (h *RedeHandler) DesativarEmpresa(c *fiber.Ctx) error {
	if err := h.uc.DesativarEmpresa(c.Context(), GetUserID(c), c.Params("empresaId")); err != nil {
		return respondErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateFuncionario godoc
// @Summary      Cadastrar funcionário na empresa
// @Description  Limite de funcionários por plano com contagem viva dentro da transação.
// @Tags         redes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        empresaId  path  string                        true  "ID da empresa"
// @Param        body       body  dto.CreateFuncionarioRequest  true  "nome, email, senha"
// @Success      201        {object}  dto.UserResponse
// @Failure      403        {object}  dto.ErrorResponse
// @Failure      409        {object}  dto.ErrorResponse
// @Router       /api/empresas/{empresaId}/funcionarios [post]
func (h *RedeHandler) CreateFuncionario(c *fiber.Ctx) error {
	var in dto.CreateFuncionarioRequest
	if err := c.BodyParser(&in); err != nil {
		return erro(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.CriarFuncionario(c.Context(), GetUserID(c), c.Params("empresaId"), in)
	if err != nil {
		return respondErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
