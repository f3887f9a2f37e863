package chat

import (
	"context"
	"encoding/json"

	"heysheets/models"
	"heysheets/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DebugSink receives per-turn debug events. The debug panel is an external
// collaborator; the pipeline only appends, best-effort.
type DebugSink interface {
	Emit(ctx context.Context, event models.ChatDebug)
}

type redisDebugSink struct {
	client *redis.Client
}

// NewRedisDebugSink writes debug events onto the list the panel drains.
func NewRedisDebugSink(client *redis.Client) DebugSink {
	return &redisDebugSink{client: client}
}

func (s *redisDebugSink) Emit(ctx context.Context, event models.ChatDebug) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	pipe := s.client.Pipeline()
	pipe.LPush(ctx, utils.DebugEventList, data)
	pipe.LTrim(ctx, utils.DebugEventList, 0, utils.DebugEventListMax-1)
	if _, err := pipe.Exec(ctx); err != nil {
		// A lost debug event never fails the turn.
		utils.GetLogger().Warn("failed to emit debug event",
			zap.String("requestID", event.RequestID), zap.Error(err))
	}
}
