package server_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"jobverse/config"
	"jobverse/internal/app"
	"jobverse/internal/server"
	"jobverse/internal/uploads"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_ShutdownStopsListener(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store, err := uploads.NewStore(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		JWT:    config.JWTConfig{Secret: "test-secret", Expiration: time.Hour},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	application := &app.Application{Config: cfg, Uploads: store}

	srv := server.NewServer(application)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// Give the listener a moment to bind before stopping it.
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after shutdown")
	}
}
