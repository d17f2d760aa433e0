package api

import (
	"context"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-admin-backend/config"
	"github.com/rpupo63/portfolio-admin-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerRun(t *testing.T) {
	d := testutil.InitDatabase(t)

	t.Run("returns after shutdown without reporting ErrServerClosed", func(t *testing.T) {
		server := NewServer(config.ServerConfig{Port: "0"}, d, testutil.NewRecordingBackend())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- server.Run(ctx, time.Second) }()

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop after cancellation")
		}
	})

	t.Run("reports listener failures", func(t *testing.T) {
		server := NewServer(config.ServerConfig{Port: "not-a-port"}, d, testutil.NewRecordingBackend())

		err := server.Run(context.Background(), time.Second)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server stopped")
	})
}
