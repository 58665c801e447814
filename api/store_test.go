package api

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cyberx/scanner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asRedisHash mimics what HGETALL returns for a hash written with HSET.
func asRedisHash(data map[string]interface{}) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = fmt.Sprint(v)
	}
	return out
}

func TestSerializeTask_CompletedTask(t *testing.T) {
	latency := int64(4)
	createdAt := time.Date(2024, 1, 2, 15, 4, 5, 123, time.UTC)
	completedAt := createdAt.Add(90 * time.Second)
	task := &ScanTask{
		ID:     testTaskID,
		Status: StatusCompleted,
		Request: ScanSettings{
			Target: "127.0.0.1", Ports: "22,53", TCP: true, UDP: true,
			TimeoutMs: 1200, Concurrency: 200, Retries: 2,
		},
		Count: 2,
		Results: []scanner.ScanResult{
			{Port: 22, Protocol: scanner.ProtocolTCP, State: scanner.StateOpen, Reason: "tcp connect ok", LatencyMs: &latency},
			{Port: 53, Protocol: scanner.ProtocolUDP, State: scanner.StateOpenOrFiltered, Reason: "no response"},
		},
		CreatedAt:   createdAt,
		CompletedAt: &completedAt,
	}

	data, err := serializeTask(task)
	require.NoError(t, err)

	got, err := deserializeTask(asRedisHash(data))
	require.NoError(t, err)

	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, task.Status, got.Status)
	assert.Equal(t, task.Request, got.Request)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, task.Results, got.Results)
	assert.True(t, createdAt.Equal(got.CreatedAt))
	require.NotNil(t, got.CompletedAt)
	assert.True(t, completedAt.Equal(*got.CompletedAt))
	assert.Empty(t, got.Error)
}

func TestSerializeTask_PendingTask(t *testing.T) {
	task := &ScanTask{
		ID:        testTaskID,
		Status:    StatusPending,
		Request:   ScanSettings{Target: "127.0.0.1", Ports: "80", TCP: true},
		CreatedAt: time.Now().UTC(),
	}

	data, err := serializeTask(task)
	require.NoError(t, err)
	assert.Equal(t, "", data["results"])
	assert.Equal(t, "", data["completed_at"])

	got, err := deserializeTask(asRedisHash(data))
	require.NoError(t, err)
	assert.Nil(t, got.Results)
	assert.Nil(t, got.CompletedAt)
	assert.Zero(t, got.Count)
}

func TestDeserializeTask_CorruptFields(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{name: "request", field: "request", value: "{"},
		{name: "results", field: "results", value: "[{]"},
		{name: "count", field: "count", value: "many"},
		{name: "created_at", field: "created_at", value: "yesterday"},
		{name: "completed_at", field: "completed_at", value: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := map[string]string{"id": testTaskID, "status": StatusRunning}
			data[tt.field] = tt.value

			_, err := deserializeTask(data)
			assert.Error(t, err)
		})
	}
}

func TestRedisStore_Unavailable(t *testing.T) {
	store := NewRedisStore(unreachableRedis(t), time.Hour)
	ctx := context.Background()

	assert.Error(t, store.Ping(ctx))

	_, err := store.GetTask(ctx, testTaskID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTaskNotFound)

	assert.Error(t, store.CreateTask(ctx, &ScanTask{ID: testTaskID, Status: StatusPending}))
	assert.Error(t, store.PushToQueue(ctx, testTaskID))
}
