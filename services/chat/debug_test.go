package chat

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heysheets/models"
	"heysheets/utils"
)

func TestRedisDebugSinkEmit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sink := NewRedisDebugSink(client)

	sink.Emit(context.Background(), models.ChatDebug{
		RequestID: "req-1",
		Intent:    models.IntentGreeting,
	})
	sink.Emit(context.Background(), models.ChatDebug{RequestID: "req-2"})

	entries, err := client.LRange(context.Background(), utils.DebugEventList, 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// LPush puts the newest event first.
	var newest models.ChatDebug
	require.NoError(t, json.Unmarshal([]byte(entries[0]), &newest))
	assert.Equal(t, "req-2", newest.RequestID)
}

func TestRedisDebugSinkTrimsList(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sink := NewRedisDebugSink(client)

	for i := 0; i < utils.DebugEventListMax+50; i++ {
		sink.Emit(context.Background(), models.ChatDebug{RequestID: "req"})
	}

	length, err := client.LLen(context.Background(), utils.DebugEventList).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(utils.DebugEventListMax), length)
}

func TestRedisDebugSinkSurvivesRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sink := NewRedisDebugSink(client)
	mr.Close()

	// Must not panic; a lost debug event never fails the turn.
	sink.Emit(context.Background(), models.ChatDebug{RequestID: "req-1"})
}
