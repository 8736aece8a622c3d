// Package cache guarda leituras quentes em Redis com TTL curto.
// Falha de cache nunca falha a requisição: degrada para a consulta no Postgres.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agendafacil/agendafacil-api/internal/application/dto"
	"github.com/agendafacil/agendafacil-api/internal/application/rede"
	"github.com/agendafacil/agendafacil-api/pkg/config"
	"github.com/agendafacil/agendafacil-api/pkg/logger"
)

var _ rede.TrialStatusCache = (*TrialStatusCache)(nil)

const trialStatusTTL = 60 * time.Second

// TrialStatusCache cache Redis do status de trial por rede.
type TrialStatusCache struct {
	client *redis.Client
	log    *logger.Logger
}

// NewTrialStatusCache conecta ao Redis e devolve o cache. Addr vazio devolve nil,
// o que desliga o cache sem caminho especial nos usecases além do teste de nil.
func NewTrialStatusCache(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*TrialStatusCache, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &TrialStatusCache{client: client, log: log}, nil
}

// Get devolve o status cacheado, se houver.
func (c *TrialStatusCache) Get(ctx context.Context, chave string) (*dto.TrialStatusResponse, bool) {
	b, err := c.client.Get(ctx, chaveRedis(chave)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("chave", chave).Msg("falha ao ler cache de trial-status")
		}
		return nil, false
	}
	var st dto.TrialStatusResponse
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, false
	}
	return &st, true
}

// Set grava o status com TTL curto.
func (c *TrialStatusCache) Set(ctx context.Context, chave string, st *dto.TrialStatusResponse) {
	b, err := json.Marshal(st)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, chaveRedis(chave), b, trialStatusTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("chave", chave).Msg("falha ao gravar cache de trial-status")
	}
}

// Invalidate remove o status cacheado após mutações na rede.
func (c *TrialStatusCache) Invalidate(ctx context.Context, chave string) {
	if err := c.client.Del(ctx, chaveRedis(chave)).Err(); err != nil {
		c.log.Warn().Err(err).Str("chave", chave).Msg("falha ao invalidar cache de trial-status")
	}
}

// Close fecha a conexão com o Redis.
func (c *TrialStatusCache) Close() error {
	return c.client.Close()
}

func chaveRedis(chave string) string {
	return "trial-status:" + chave
}
