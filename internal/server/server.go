package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	httpapi "github.com/hb-chen/safeskill/internal/api/http"
	"github.com/hb-chen/safeskill/internal/config"
	"github.com/hb-chen/safeskill/internal/skill"
	"github.com/hb-chen/safeskill/pkg/grpc/gateway"
	"github.com/hb-chen/safeskill/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// Serve starts both HTTP and gRPC servers and blocks until ctx is done or
// one of them fails
func Serve(ctx context.Context, cfg *config.Config, router *skill.Router) error {
	g, ctx := errgroup.WithContext(ctx)

	if cfg.Server.GRPC.Addr != "" {
		g.Go(func() error {
			return runGRPC(ctx, cfg.Server.GRPC, router)
		})
	}

	if cfg.Server.HTTP.Addr != "" {
		g.Go(func() error {
			return runHTTP(ctx, cfg.Server.HTTP.Addr, router)
		})
	}

	if cfg.Skills.Config != "" && cfg.Skills.Watch {
		g.Go(func() error {
			return skill.WatchConfig(ctx, cfg.Skills.Config, router)
		})
	}

	err := g.Wait()
	logger.Info("Servers stopped")
	return err
}

// NewGRPCServer builds a gRPC server carrying the health service. Each
// registered skill is reported as its own service name; the empty name
// covers the server as a whole.
func NewGRPCServer(cfg config.GRPCConfig, router *skill.Router) (*grpc.Server, *health.Server) {
	s := grpc.NewServer()

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	for _, name := range router.GetRegistry().Names() {
		status := healthpb.HealthCheckResponse_SERVING
		if !router.IsEnabled(name) {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		hs.SetServingStatus(name, status)
	}
	healthpb.RegisterHealthServer(s, hs)

	if cfg.Reflection {
		reflection.Register(s)
	}

	return s, hs
}

// runGRPC starts the gRPC server
func runGRPC(ctx context.Context, cfg config.GRPCConfig, router *skill.Router) error {
	lis, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s, hs := NewGRPCServer(cfg, router)
	logger.Infof("gRPC server listening on %s", lis.Addr())

	go func() {
		<-ctx.Done()
		logger.Info("Stopping gRPC server...")
		hs.Shutdown()
		s.GracefulStop()
	}()

	if err := s.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("gRPC server failed: %w", err)
	}

	return nil
}

// NewHTTPHandler builds the gateway serving the skills API
func NewHTTPHandler(router *skill.Router) (http.Handler, error) {
	gw := gateway.New(
		runtime.WithErrorHandler(httpErrorHandler),
	)
	gw.Use(accessLogMiddleware)

	handlers := httpapi.NewHandlers(router, logger.Default())
	if err := handlers.Register(gw); err != nil {
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	return gw, nil
}

// runHTTP starts the HTTP server
func runHTTP(ctx context.Context, addr string, router *skill.Router) error {
	handler, err := NewHTTPHandler(router)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Infof("HTTP server listening on %s", lis.Addr())

	go func() {
		<-ctx.Done()
		logger.Info("Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	return nil
}

// httpErrorHandler handles errors from grpc-gateway
func httpErrorHandler(ctx context.Context, mux *runtime.ServeMux, marshaler runtime.Marshaler, w http.ResponseWriter, r *http.Request, err error) {
	logger.Errorf("HTTP error: %v, path: %s", err, r.URL.Path)
	runtime.DefaultHTTPErrorHandler(ctx, mux, marshaler, w, r, err)
}

// accessLogMiddleware logs one line per request
func accessLogMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next(rw, r)

		clientIP := r.RemoteAddr
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			clientIP = forwarded
		} else if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
			clientIP = realIP
		}

		userAgent := r.UserAgent()
		if userAgent == "" {
			userAgent = "-"
		}
		referer := r.Referer()
		if referer == "" {
			referer = "-"
		}

		// -1 marks an empty body
		responseSize := rw.bytesWritten
		if responseSize == 0 {
			responseSize = -1
		}
		logger.Infof("%s - \"%s %s %s\" %d %d \"%s\" \"%s\" %v",
			clientIP,
			r.Method,
			r.URL.Path,
			r.Proto,
			rw.statusCode,
			responseSize,
			referer,
			userAgent,
			time.Since(start),
		)
	}
}

// responseWriter wraps http.ResponseWriter to capture status code and response size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}
