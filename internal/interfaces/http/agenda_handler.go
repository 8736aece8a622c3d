package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/agendafacil/agendafacil-api/internal/application/dto"
	"github.com/agendafacil/agendafacil-api/internal/application/scheduling"
	"github.com/agendafacil/agendafacil-api/internal/domain/repository"
)

// AgendaHandler rotas de agendas do prestador (protegido).
type AgendaHandler struct {
	uc *scheduling.AgendaUseCase
}

// NewAgendaHandler constrói o handler.
func NewAgendaHandler(uc *scheduling.AgendaUseCase) *AgendaHandler {
	return &AgendaHandler{uc: uc}
}

// Create godoc
// @Summary      Criar agenda
// @Tags         agendas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAgendaRequest  true  "titulo, data, hora_inicio, hora_fim, duracao, max_agendamentos"
// @Success      201   {object}  dto.AgendaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/agendas [post]
func (h *AgendaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAgendaRequest
	if err := c.BodyParser(&in); err != nil {
		return erro(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Criar(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar agendas do prestador
// @Tags         agendas
// @Security     Bearer
// @Produce      json
// @Param        data    query  string  false  "Filtrar por data (2006-01-02)"
// @Param        status  query  string  false  "Filtrar por status"
// @Success      200  {array}  dto.AgendaResponse
// @Router       /api/agendas [get]
func (h *AgendaHandler) List(c *fiber.Ctx) error {
	var f repository.AgendaFiltros
	if s := c.Query("data"); s != "" {
		d, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return erro(c, fiber.StatusBadRequest, "VALIDATION", "data inválida, use 2006-01-02")
		}
		f.Data = &d
	}
	f.Status = c.Query("status")
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}

	out, err := h.uc.Listar(c.Context(), GetUserID(c), f, page)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Buscar agenda
// @Tags         agendas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da agenda"
// @Success      200  {object}  dto.AgendaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/agendas/{id} [get]
func (h *AgendaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(out)
}

// Cancelar godoc
// @Summary      Cancelar agenda (cascata)
// @Description  Cancela a agenda e todos os agendamentos vivos dela na mesma transação.
// @Tags         agendas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da agenda"
// @Success      200  {object}  map[string]int
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/agendas/{id}/cancelar [put]
func (h *AgendaHandler) Cancelar(c *fiber.Ctx) error {
	cancelados, err := h.uc.Cancelar(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(fiber.Map{"agendamentos_cancelados": cancelados})
}

// Delete godoc
// @Summary      Remover agenda
// @Description  Só permitido sem agendamentos vivos; com agendamentos, use o cancelamento.
// @Tags         agendas
// @Security     Bearer
// @Param        id  path  string  true  "ID da agenda"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/agendas/{id} [delete]
func (h *AgendaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Remover(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
