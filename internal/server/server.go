package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/zkauthd/zkauthd/internal/logger"
	"github.com/zkauthd/zkauthd/internal/store"
	"github.com/zkauthd/zkauthd/pkg/config"
	"github.com/zkauthd/zkauthd/pkg/metrics"
	"github.com/zkauthd/zkauthd/pkg/rpc/authv1"
)

// Server bundles the gRPC listener, the optional metrics endpoint and
// the verifier sweeper under one lifecycle.
type Server struct {
	cfg   *config.Config
	store *store.Store
	auth  *metrics.Auth

	grpcServer    *grpc.Server
	metricsServer *http.Server
}

// New assembles a server from the configuration. Nothing is bound
// until Run is called.
func New(cfg *config.Config) *Server {
	st := store.New()

	var auth *metrics.Auth
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		auth = metrics.NewAuth(reg, st.PendingVerifiers, st.ActiveSessions)
		metricsServer = metrics.NewServer(cfg.Metrics.Port, reg)
	}

	grpcServer := grpc.NewServer()
	authv1.RegisterAuthServer(grpcServer, NewAuthService(st, auth))

	return &Server{
		cfg:           cfg,
		store:         st,
		auth:          auth,
		grpcServer:    grpcServer,
		metricsServer: metricsServer,
	}
}

// Run binds the listeners and serves until ctx is cancelled, then
// shuts everything down within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.cfg.Server.ListenAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Server.ListenAddr, err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("auth service listening", logger.KeyListenAddr, lis.Addr().String())
		if err := s.grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("serving gRPC: %w", err)
		}
		return nil
	})

	if s.metricsServer != nil {
		g.Go(func() error {
			logger.Info("metrics endpoint listening", logger.KeyListenAddr, s.metricsServer.Addr)
			if err := s.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving metrics: %w", err)
			}
			return nil
		})
	}

	if s.cfg.Auth.VerifierTTL > 0 && s.cfg.Auth.SweepInterval > 0 {
		g.Go(func() error {
			s.sweep(ctx)
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		s.shutdown()
		return nil
	})

	return g.Wait()
}

// sweep evicts pending verifiers whose challenge was never answered.
func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Auth.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.SweepVerifiers(s.cfg.Auth.VerifierTTL); n > 0 {
				if s.auth != nil {
					s.auth.SweptVerifiers.Add(float64(n))
				}
				logger.Debug("swept stale verifiers", logger.KeyEvicted, n)
			}
		}
	}
}

func (s *Server) shutdown() {
	logger.Info("shutting down")

	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(s.cfg.Server.ShutdownTimeout):
		logger.Warn("graceful stop timed out, forcing close")
		s.grpcServer.Stop()
	}

	if s.metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics shutdown", logger.KeyError, err.Error())
		}
	}
}
