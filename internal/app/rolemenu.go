package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"
	"rolemenu-service/internal/config"
	"rolemenu-service/internal/discord"
	"rolemenu-service/internal/kafka/notifier"
	"rolemenu-service/internal/repository"
	"rolemenu-service/internal/service"
)

func Run(cfg *config.Config, logger *zap.SugaredLogger) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	wg := &sync.WaitGroup{}

	delayedCtx, repoCancel := context.WithCancel(context.Background())
	defer repoCancel()
	delayedWg := &sync.WaitGroup{}

	repo, err := repository.NewRepository(delayedCtx, logger, delayedWg, cfg.Store)
	if err != nil {
		logger.Fatalw("failed to create repository", "error", err, "backend", cfg.Store.Backend)
	}

	discord.UseLogger(logger)
	roles, err := discord.NewSessionClient(cfg.Discord.Token, nil)
	if err != nil {
		logger.Fatalw("failed to create discord client", "error", err)
	}

	notif := notifier.NewNoopNotifier()
	if cfg.Kafka.Enabled {
		notif = notifier.NewKafkaNotifier(delayedCtx, delayedWg, logger, cfg.Kafka)
	}

	service.RunServices(ctx, logger, wg, cfg, repo, roles, notif)

	<-ctx.Done()
	logger.Info("shutting down")
	wg.Wait()

	logger.Info("shutting down delayed services")
	repoCancel()
	delayedWg.Wait()
}
