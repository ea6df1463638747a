//go:build integration

package queue

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const rabbitImage = "rabbitmq:3.13-management-alpine"

// brokerURL starts a disposable RabbitMQ unless RABBITMQ_URL points at one.
func brokerURL(t *testing.T) string {
	t.Helper()

	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		return url
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        rabbitImage,
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor:   wait.ForLog("Server startup complete").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5672/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
}

func TestIntegration_BufferedMessagesReachTheWorker(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	manager, err := NewConnectionManager(Config{URL: brokerURL(t), ConnectionName: "integration"},
		WithRetryPolicy(RetryPolicy{MaxAttempts: 10, BaseDelay: 500 * time.Millisecond}))
	require.NoError(t, err)

	exchange := ExchangeSpec{Name: "relay.integration", Kind: ExchangeTopic, AutoDelete: true}

	var (
		mu       sync.Mutex
		received []string
	)

	handler := func(_ context.Context, msg Message, ctrl *MsgController) error {
		mu.Lock()
		received = append(received, string(msg.Body))
		mu.Unlock()

		return ctrl.Ack(msg)
	}

	// The worker subscribes first so its binding exists before the publisher drains.
	worker, err := NewWorker(manager, WorkerConfig{
		Queue:         QueueSpec{Name: "relay.integration.orders", AutoDelete: true},
		Exchange:      &exchange,
		BindingKey:    "orders.*",
		PrefetchCount: 5,
	}, handler)
	require.NoError(t, err)

	publisher, err := NewPublisher(manager, exchange)
	require.NoError(t, err)

	for _, body := range []string{"one", "two", "three"} {
		assert.False(t, publisher.Publish(context.Background(), "orders.created", []byte(body)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	_, err = manager.Connect(ctx)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return len(received) == 3
	}, 30*time.Second, 50*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{"one", "two", "three"}, received)
	mu.Unlock()

	assert.True(t, publisher.Publish(context.Background(), "orders.updated", []byte("four")))

	require.NoError(t, worker.Close(ctx))
	require.NoError(t, publisher.Close())
	require.NoError(t, manager.Disconnect(ctx))
	assert.Equal(t, StateIdle, manager.State())
}
