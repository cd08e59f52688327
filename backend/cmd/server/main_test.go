package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"friend-network/backend/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		Env:             "development",
		ShutdownTimeout: time.Second,
		StoreBackend:    config.BackendMemory,
		Relationships:   []string{"Bob knows Alice", "Alice knows Fred", "Fred knows Ganesh"},
	}
}

func TestNewService_MemorySeeded(t *testing.T) {
	svc, closeStore, err := newService(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer closeStore()

	people, err := svc.Network(context.Background())
	require.NoError(t, err)
	require.Len(t, people, 4)
	assert.Equal(t, "Bob", people[0].Name)
	assert.Equal(t, []string{"Alice", "Ganesh"}, people[2].Friends)
}

func TestNewService_BadSeed(t *testing.T) {
	cfg := testConfig()
	cfg.Relationships = []string{"Bob likes Alice"}

	_, _, err := newService(context.Background(), cfg, zap.NewNop())

	assert.Error(t, err)
}

func TestServe_GracefulShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	router := gin.New()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	srv := &http.Server{Addr: addr, Handler: router}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, testConfig(), zap.NewNop()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
