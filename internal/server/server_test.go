package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/hb-chen/safeskill/internal/config"
	"github.com/hb-chen/safeskill/internal/skill"
	"github.com/hb-chen/safeskill/internal/skill/builtin"
	"github.com/hb-chen/safeskill/internal/skill/safe"
)

func newTestRouter(t *testing.T, config *skill.Config) *skill.Router {
	t.Helper()
	registry, err := builtin.NewRegistry()
	require.NoError(t, err)
	return skill.NewRouter(registry, config)
}

func dialBufconn(t *testing.T, s *grpc.Server) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestGRPCHealth(t *testing.T) {
	s, _ := NewGRPCServer(config.GRPCConfig{Reflection: true}, newTestRouter(t, nil))
	client := healthpb.NewHealthClient(dialBufconn(t, s))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: safe.Name})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	_, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: "unknown"})
	assert.Error(t, err)
}

func TestGRPCHealthDisabledSkill(t *testing.T) {
	disabled := false
	router := newTestRouter(t, &skill.Config{Skills: map[string]skill.SkillConfig{
		safe.Name: {Enabled: &disabled},
	}})
	s, _ := NewGRPCServer(config.GRPCConfig{}, router)
	client := healthpb.NewHealthClient(dialBufconn(t, s))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: safe.Name})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestHTTPHandler(t *testing.T) {
	handler, err := NewHTTPHandler(newTestRouter(t, nil))
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/skills/"+safe.Name+"/execute", "application/json", strings.NewReader(`{"input":"hi"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var inv skill.Invocation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&inv))
	require.NotNil(t, inv.Result)
	assert.Equal(t, "Hello from safe skill! Input: hi", inv.Result.Message)

	health, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

func TestServeStopsOnCancel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.HTTP.Addr = "127.0.0.1:0"
	cfg.Server.GRPC.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, cfg, newTestRouter(t, nil)) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServeListenError(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	cfg := &config.Config{}
	cfg.Server.HTTP.Addr = lis.Addr().String()
	cfg.Server.GRPC.Addr = "127.0.0.1:0"

	err = Serve(context.Background(), cfg, newTestRouter(t, nil))
	assert.Error(t, err)
}

func TestAccessLogMiddleware(t *testing.T) {
	h := accessLogMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("tea"))
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "tea", rec.Body.String())
}
