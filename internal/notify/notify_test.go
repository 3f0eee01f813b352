//go:build integration

package notify

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *Notifier {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set, skipping redis integration test")
	}
	n, err := NewNotifier(url)
	require.NoError(t, err)
	t.Cleanup(func() { n.Close() })
	return n
}

func TestPublishPhaseAdvancedIsReceivedBySubscriber(t *testing.T) {
	n := setup(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, unsubscribe := n.Subscribe(ctx, "test-game-1")
	defer unsubscribe()

	time.Sleep(100 * time.Millisecond) // allow the subscription to register

	want := PhaseAdvanced{GameID: "test-game-1", Year: 1901, Season: "Fall", NeedsOrder: true}
	require.NoError(t, n.PublishPhaseAdvanced(ctx, want))

	select {
	case got := <-events:
		require.Equal(t, want, got)
	case <-ctx.Done():
		t.Fatal("timed out waiting for phase advance notification")
	}
}

func TestNewNotifierFromClientWraps(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set, skipping redis integration test")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	n := NewNotifierFromClient(redis.NewClient(opts))
	defer n.Close()
	require.NotNil(t, n)
}
