package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"rolemenu-service/internal/config"
)

const (
	topic = "rolemenu-member-roles"

	messageTypeHeader     = "X-Message-Type"
	memberRolesUpdateType = "rolemenu.MemberRolesUpdateMessage"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaNotifier struct {
	logger *zap.SugaredLogger
	w      messageWriter
}

func NewKafkaNotifier(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, cfg config.KafkaConfig) Notifier {
	w := &kafka.Writer{
		Addr:        kafka.TCP(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		Topic:       topic,
		Async:       true,
		Balancer:    &kafka.Hash{},
		ErrorLogger: zap.NewStdLog(logger.Desugar()),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("shutting down kafka writer")
		if err := w.Close(); err != nil {
			logger.Errorw("failed to close kafka writer", "error", err)
		}
	}()

	return &kafkaNotifier{
		logger: logger,
		w:      w,
	}
}

func (k *kafkaNotifier) MemberRolesUpdate(ctx context.Context, guildId string, userId string, added []string, removed []string) error {
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}

	msg, err := newMemberRolesUpdateMessage(guildId, userId, added, removed)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	if err := k.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func newMemberRolesUpdateMessage(guildId string, userId string, added []string, removed []string) (kafka.Message, error) {
	if added == nil {
		added = []string{}
	}
	if removed == nil {
		removed = []string{}
	}

	bytes, err := json.Marshal(MemberRolesUpdateMessage{
		GuildId: guildId,
		UserId:  userId,
		Added:   added,
		Removed: removed,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal message: %w", err)
	}

	// Keyed by guild so updates for one guild stay on one partition.
	return kafka.Message{
		Key:     []byte(guildId),
		Value:   bytes,
		Headers: []kafka.Header{{Key: messageTypeHeader, Value: []byte(memberRolesUpdateType)}},
	}, nil
}
