package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"rolemenu-service/internal/config"
	"rolemenu-service/internal/repository/model"
)

//go:generate mockgen -source=public.go -destination=mock_repository.go -package=repository

// ErrGroupNotFound is returned when a guild has no stored groups or the index is out of range.
var ErrGroupNotFound = errors.New("role group not found")

type Repository interface {
	GetGroup(ctx context.Context, guildId string, index int) (*model.RoleGroup, error)

	GetGroups(ctx context.Context, guildId string) ([]*model.RoleGroup, error)
	SetGroups(ctx context.Context, guildId string, groups []*model.RoleGroup) error
}

// NewRepository connects to the configured backend. The connection is closed once ctx is done,
// and wg is released after that.
func NewRepository(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, cfg config.StoreConfig) (Repository, error) {
	switch cfg.Backend {
	case config.StoreBackendRedis:
		return NewRedisRepository(ctx, logger, wg, cfg.Redis)
	case config.StoreBackendMongo:
		return NewMongoRepository(ctx, logger, wg, cfg.MongoDB)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func groupAt(groups []model.RoleGroup, index int) (*model.RoleGroup, error) {
	if index < 0 || index >= len(groups) {
		return nil, ErrGroupNotFound
	}
	return &groups[index], nil
}

func toPointers(groups []model.RoleGroup) []*model.RoleGroup {
	slice := make([]*model.RoleGroup, len(groups))
	for i := range groups {
		slice[i] = &groups[i]
	}
	return slice
}

func toValues(groups []*model.RoleGroup) []model.RoleGroup {
	slice := make([]model.RoleGroup, 0, len(groups))
	for _, g := range groups {
		if g != nil {
			slice = append(slice, *g)
		}
	}
	return slice
}
