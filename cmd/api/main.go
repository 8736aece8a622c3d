package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/agendafacil/agendafacil-api/internal/application/auth"
	"github.com/agendafacil/agendafacil-api/internal/application/rede"
	"github.com/agendafacil/agendafacil-api/internal/application/scheduling"
	"github.com/agendafacil/agendafacil-api/internal/infrastructure/cache"
	"github.com/agendafacil/agendafacil-api/internal/infrastructure/notifier"
	"github.com/agendafacil/agendafacil-api/internal/infrastructure/postgres"
	httpRouter "github.com/agendafacil/agendafacil-api/internal/interfaces/http"
	"github.com/agendafacil/agendafacil-api/pkg/config"
	"github.com/agendafacil/agendafacil-api/pkg/logger"
)

// Intervalo da varredura que desativa redes trial vencidas.
const sweepTrialsIntervalo = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migrações do banco")
	}

	userRepo := postgres.NewUserRepository(pool)
	agendaRepo := postgres.NewAgendaRepository(pool)
	agendamentoRepo := postgres.NewAgendamentoRepository(pool)
	redeRepo := postgres.NewRedeRepository(pool)
	empresaRepo := postgres.NewEmpresaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	redeTxRunner := postgres.NewRedeTxRunner(pool)

	// Cache opcional do trial-status; REDIS_ADDR vazio desliga.
	trialCache, err := cache.NewTrialStatusCache(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao Redis")
	}
	var trialCachePort rede.TrialStatusCache
	if trialCache != nil {
		defer trialCache.Close()
		trialCachePort = trialCache
	}

	notificador := notifier.NewLogNotifier(log)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	agendaUC := scheduling.NewAgendaUseCase(txRunner, agendaRepo, agendamentoRepo)
	agendamentoUC := scheduling.NewAgendamentoUseCase(
		txRunner, agendaRepo, agendamentoRepo, userRepo, empresaRepo, redeRepo,
		notificador, cfg.Agenda.CancelamentoHorasPadrao,
	)
	redeUC := rede.NewUseCase(redeTxRunner, redeRepo, empresaRepo, userRepo, trialCachePort, cfg.Trial.Dias)

	// Varredura periódica de trials vencidos (idempotente).
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go func() {
		ticker := time.NewTicker(sweepTrialsIntervalo)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				n, err := redeUC.BloquearTrialsExpirados(sweepCtx)
				if err != nil {
					log.Error().Err(err).Msg("varredura de trials expirados")
					continue
				}
				if n > 0 {
					log.Info().Int("redes_desativadas", n).Msg("trials expirados desativados")
				}
			}
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AgendaFácil API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		AgendaUC:      agendaUC,
		AgendamentoUC: agendamentoUC,
		RedeUC:        redeUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
