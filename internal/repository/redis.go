package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"rolemenu-service/internal/config"
	"rolemenu-service/internal/repository/model"
)

// redisRepository stores each guild's groups as a JSON array under the plain guild id key.
type redisRepository struct {
	client *redis.Client
}

func NewRedisRepository(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, cfg config.RedisConfig) (Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.Addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolSize:        5,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := client.Close(); err != nil {
			logger.Errorw("failed to close redis client", "error", err)
		}
	}()

	return &redisRepository{client: client}, nil
}

func (r *redisRepository) GetGroup(ctx context.Context, guildId string, index int) (*model.RoleGroup, error) {
	groups, err := r.getGroups(ctx, guildId)
	if err != nil {
		return nil, err
	}

	return groupAt(groups, index)
}

func (r *redisRepository) GetGroups(ctx context.Context, guildId string) ([]*model.RoleGroup, error) {
	groups, err := r.getGroups(ctx, guildId)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toPointers(groups), nil
}

func (r *redisRepository) SetGroups(ctx context.Context, guildId string, groups []*model.RoleGroup) error {
	b, err := json.Marshal(toValues(groups))
	if err != nil {
		return fmt.Errorf("failed to marshal groups: %w", err)
	}

	return r.client.Set(ctx, guildId, b, 0).Err()
}

func (r *redisRepository) getGroups(ctx context.Context, guildId string) ([]model.RoleGroup, error) {
	s, err := r.client.Get(ctx, guildId).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get groups: %w", err)
	}

	var groups []model.RoleGroup
	if err := json.Unmarshal([]byte(s), &groups); err != nil {
		return nil, fmt.Errorf("failed to decode groups of guild %s: %w", guildId, err)
	}

	return groups, nil
}
