package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agendafacil/agendafacil-api/internal/application/auth"
	"github.com/agendafacil/agendafacil-api/internal/application/rede"
	"github.com/agendafacil/agendafacil-api/internal/application/scheduling"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	AgendaUC      *scheduling.AgendaUseCase
	AgendamentoUC *scheduling.AgendamentoUseCase
	RedeUC        *rede.UseCase
	JWTSecret     string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Agendas do prestador
	agendas := protected.Group("/agendas")
	agendaHandler := NewAgendaHandler(deps.AgendaUC)
	agendas.Post("/", agendaHandler.Create)
	agendas.Get("/", agendaHandler.List)
	agendas.Get("/:id", agendaHandler.GetByID)
	agendas.Put("/:id/cancelar", agendaHandler.Cancelar)
	agendas.Delete("/:id", agendaHandler.Delete)

	// Agendamentos
	agendamentos := protected.Group("/agendamentos")
	agendamentoHandler := NewAgendamentoHandler(deps.AgendamentoUC)
	agendamentos.Post("/", agendamentoHandler.Create)
	agendamentos.Get("/", agendamentoHandler.List)
	agendamentos.Get("/:id", agendamentoHandler.GetByID)
	agendamentos.Put("/:id/confirmar", agendamentoHandler.Confirmar)
	agendamentos.Put("/:id/cancelar", agendamentoHandler.Cancelar)
	agendamentos.Post("/:id/reagendar", agendamentoHandler.Reagendar)
	agendamentos.Put("/:id/realizado", agendamentoHandler.MarcarRealizado)
	agendamentos.Put("/:id/nao-compareceu", agendamentoHandler.MarcarNaoCompareceu)

	// Redes empresariais
	redeHandler := NewRedeHandler(deps.RedeUC)
	redes := protected.Group("/redes")
	redes.Post("/", redeHandler.Create)
	redes.Get("/minha", redeHandler.MinhaRede)
	redes.Get("/:redeId/trial-status", redeHandler.TrialStatus)
	redes.Get("/:redeId/empresas", redeHandler.ListEmpresas)
	// Mutações de rede passam pelo bloqueio de trial antes do handler.
	redes.Post("/:redeId/empresas", RequireRedeAtiva(deps.RedeUC), redeHandler.CreateEmpresa)

	empresas := protected.Group("/empresas")
	empresas.Delete("/:empresaId", redeHandler.DesativarEmpresa)
	empresas.Post("/:empresaId/funcionarios", redeHandler.CreateFuncionario)
}
