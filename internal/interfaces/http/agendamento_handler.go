package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/agendafacil/agendafacil-api/internal/application/dto"
	"github.com/agendafacil/agendafacil-api/internal/application/scheduling"
	"github.com/agendafacil/agendafacil-api/internal/domain/repository"
)

// AgendamentoHandler rotas do ciclo de vida do agendamento (protegido).
type AgendamentoHandler struct {
	uc *scheduling.AgendamentoUseCase
}

// NewAgendamentoHandler constrói o handler.
func NewAgendamentoHandler(uc *scheduling.AgendamentoUseCase) *AgendamentoHandler {
	return &AgendamentoHandler{uc: uc}
}

// Create godoc
// @Summary      Criar agendamento
// @Description  Reserva a vaga na agenda e grava o agendamento na mesma transação.
// @Tags         agendamentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAgendamentoRequest  true  "agenda_id, cliente, data, hora_inicio"
// @Success      201   {object}  dto.AgendamentoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/agendamentos [post]
func (h *AgendamentoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAgendamentoRequest
	if err := c.BodyParser(&in); err != nil {
		return erro(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Criar(c.Context(), in)
	if err != nil {
		return respondErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar agendamentos
// @Description  Recorte conforme o papel: cliente vê os próprios, funcionário os da empresa.
// @Tags         agendamentos
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por status"
// @Param        data    query  string  false  "Filtrar por data (2006-01-02)"
// @Success      200  {array}  dto.AgendamentoResponse
// @Router       /api/agendamentos [get]
func (h *AgendamentoHandler) List(c *fiber.Ctx) error {
	var f repository.AgendamentoFiltros
	f.Status = c.Query("status")
	if s := c.Query("data"); s != "" {
		d, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return erro(c, fiber.StatusBadRequest, "VALIDATION", "data inválida, use 2006-01-02")
		}
		f.Data = &d
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}

	out, err := h.uc.Listar(c.Context(), AtorDe(c), f, page)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Buscar agendamento
// @Tags         agendamentos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do agendamento"
// @Success      200  {object}  dto.AgendamentoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/agendamentos/{id} [get]
func (h *AgendamentoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), AtorDe(c), c.Params("id"))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(out)
}

// Confirmar godoc
// @Summary      Confirmar agendamento
// @Tags         agendamentos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do agendamento"
// @Success      200  {object}  dto.AgendamentoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/agendamentos/{id}/confirmar [put]
func (h *AgendamentoHandler) Confirmar(c *fiber.Ctx) error {
	out, err := h.uc.Confirmar(c.Context(), AtorDe(c), c.Params("id"))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(out)
}

// Cancelar godoc
// @Summary      Cancelar agendamento
// @Description  Devolve a vaga na agenda. Clientes respeitam a antecedência mínima.
// @Tags         agendamentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID do agendamento"
// @Param        body  body  dto.CancelarAgendamentoRequest  true  "justificativa"
// @Success      200   {object}  dto.AgendamentoResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/agendamentos/{id}/cancelar [put]
func (h *AgendamentoHandler) Cancelar(c *fiber.Ctx) error {
	var in dto.CancelarAgendamentoRequest
	if err := c.BodyParser(&in); err != nil {
		return erro(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Cancelar(c.Context(), AtorDe(c), c.Params("id"), in.Justificativa)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(out)
}

// Reagendar godoc
// @Summary      Reagendar agendamento
// @Description  Fecha o agendamento como reagendado e cria um novo apontando para ele. Tudo ou nada.
// @Tags         agendamentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID do agendamento"
// @Param        body  body  dto.ReagendarAgendamentoRequest  true  "agenda_id (opcional), data, hora_inicio"
// @Success      201   {object}  dto.AgendamentoResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/agendamentos/{id}/reagendar [post]
func (h *AgendamentoHandler) Reagendar(c *fiber.Ctx) error {
	var in dto.ReagendarAgendamentoRequest
	if err := c.BodyParser(&in); err != nil {
		return erro(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Reagendar(c.Context(), AtorDe(c), c.Params("id"), in)
	if err != nil {
		return respondErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MarcarRealizado godoc
// @Summary      Marcar agendamento como realizado
// @Tags         agendamentos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do agendamento"
// @Success      200  {object}  dto.AgendamentoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/agendamentos/{id}/realizado [put]
func (h *AgendamentoHandler) MarcarRealizado(c *fiber.Ctx) error {
	out, err := h.uc.MarcarRealizado(c.Context(), AtorDe(c), c.Params("id"))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(out)
}

// MarcarNaoCompareceu godoc
// @Summary      Marcar não comparecimento
// @Tags         agendamentos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do agendamento"
// @Success      200  {object}  dto.AgendamentoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/agendamentos/{id}/nao-compareceu [put]
func (h *AgendamentoHandler) MarcarNaoCompareceu(c *fiber.Ctx) error {
	out, err := h.uc.MarcarNaoCompareceu(c.Context(), AtorDe(c), c.Params("id"))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(out)
}
