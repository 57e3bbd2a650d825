// Package server implements the zkauth protocol service: the verifier
// side of the Chaum-Pedersen exchange behind the gRPC surface.
package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/zkauthd/zkauthd/internal/logger"
	"github.com/zkauthd/zkauthd/internal/store"
	"github.com/zkauthd/zkauthd/internal/telemetry"
	"github.com/zkauthd/zkauthd/pkg/metrics"
	"github.com/zkauthd/zkauthd/pkg/rpc/authv1"
	"github.com/zkauthd/zkauthd/pkg/zkp"
)

// AuthService drives the per-user protocol state machine:
//
//	Unknown -> SignUp -> Registered
//	Registered -> Commit -> Pending(verifier-id)
//	Pending -> Authenticate(valid) -> Authenticated
//	Pending -> Authenticate(invalid) -> Registered
//	Authenticated -> Logout -> Registered
//
// All state lives in the store; the service itself is stateless and
// safe for concurrent use.
type AuthService struct {
	store   *store.Store
	metrics *metrics.Auth
}

// NewAuthService builds the service. metrics may be nil when the
// metrics endpoint is disabled.
func NewAuthService(st *store.Store, m *metrics.Auth) *AuthService {
	return &AuthService{store: st, metrics: m}
}

// SignUp registers a username with its public signature. Duplicate
// usernames are rejected and the first signature is preserved.
func (s *AuthService) SignUp(ctx context.Context, req *authv1.SignUpRequest) (*authv1.SignUpResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "Auth.SignUp")
	defer span.End()
	defer s.observe(authv1.MethodSignUp, time.Now())

	log := logger.With(
		logger.KeyRequestID, uuid.NewString(),
		logger.KeyRPC, authv1.MethodSignUp,
		logger.KeyUsername, req.Username,
	)

	if req.Username == "" {
		log.Info("rejecting sign up", logger.KeyResult, "rejected", logger.KeyError, "empty username")
		return nil, status.Error(codes.InvalidArgument, "username required")
	}
	if req.Signature == nil {
		log.Info("rejecting sign up", logger.KeyResult, "rejected", logger.KeyError, "missing signature")
		return nil, status.Error(codes.InvalidArgument, "signature required")
	}

	// The group rides along inside the signature; sanity-check it here
	// so Commit can trust stored entries.
	group, err := req.Signature.Group.ToZKP()
	if err != nil {
		telemetry.RecordError(ctx, err)
		log.Info("rejecting sign up", logger.KeyResult, "rejected", logger.KeyError, err.Error())
		return nil, status.Error(codes.InvalidArgument, "valid group parameters required")
	}
	telemetry.SetAttributes(ctx, attribute.Int("zkauth.group_bits", group.P.BitLen()))

	if err := s.store.PutSignature(req.Username, req.Signature); err != nil {
		log.Info("rejecting sign up", logger.KeyResult, "rejected", logger.KeyError, err.Error())
		return nil, status.Error(codes.AlreadyExists, "username already exists")
	}

	if s.metrics != nil {
		s.metrics.SignUps.Inc()
	}
	log.Info("user registered", logger.KeyResult, "ok", logger.KeyGroupBits, group.P.BitLen())
	return &authv1.SignUpResponse{}, nil
}

// Commit opens an authentication attempt: it builds a verifier from
// the stored signature and the received commitment, stores it under a
// fresh verifier id, and returns the id with the challenge.
func (s *AuthService) Commit(ctx context.Context, req *authv1.CommitRequest) (*authv1.CommitResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "Auth.Commit")
	defer span.End()
	defer s.observe(authv1.MethodCommit, time.Now())

	log := logger.With(
		logger.KeyRequestID, uuid.NewString(),
		logger.KeyRPC, authv1.MethodCommit,
		logger.KeyUsername, req.Username,
	)

	if req.Commitment == nil {
		log.Info("rejecting commit", logger.KeyResult, "rejected", logger.KeyError, "missing commitment")
		return nil, status.Error(codes.InvalidArgument, "commitment required")
	}

	sig, ok := s.store.Signature(req.Username)
	if !ok {
		log.Info("rejecting commit", logger.KeyResult, "rejected", logger.KeyError, "username not found")
		return nil, status.Error(codes.NotFound, "username not found")
	}

	group, err := sig.Group.ToZKP()
	if err != nil {
		telemetry.RecordError(ctx, err)
		log.Error("stored signature has unusable group", logger.KeyError, err.Error())
		return nil, status.Error(codes.Internal, "an internal error occurred")
	}

	verifier, err := zkp.NewVerifier(group,
		authv1.Int(sig.Y1), authv1.Int(sig.Y2),
		authv1.Int(req.Commitment.R1), authv1.Int(req.Commitment.R2))
	if err != nil {
		telemetry.RecordError(ctx, err)
		log.Error("creating verifier failed", logger.KeyError, err.Error())
		return nil, status.Error(codes.Internal, "an internal error occurred")
	}

	verifierID := uuid.New()
	challenge := verifier.Challenge()
	s.store.PutVerifier(verifierID, verifier)

	log.Info("challenge issued", logger.KeyResult, "ok", logger.KeyVerifierID, verifierID.String())
	return &authv1.CommitResponse{
		VerifierID: verifierID.String(),
		Challenge:  &authv1.Challenge{C: challenge.Bytes()},
	}, nil
}

// Authenticate consumes the pending verifier and checks the response.
// The verifier is removed before verification, so a replay of the same
// verifier id always reports NotFound regardless of the first outcome.
func (s *AuthService) Authenticate(ctx context.Context, req *authv1.AuthRequest) (*authv1.AuthResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "Auth.Authenticate")
	defer span.End()
	defer s.observe(authv1.MethodAuthenticate, time.Now())

	log := logger.With(
		logger.KeyRequestID, uuid.NewString(),
		logger.KeyRPC, authv1.MethodAuthenticate,
		logger.KeyVerifierID, req.VerifierID,
	)

	if req.Solution == nil {
		log.Info("rejecting authentication", logger.KeyResult, "rejected", logger.KeyError, "missing solution")
		s.countAttempt(metrics.ResultError)
		return nil, status.Error(codes.InvalidArgument, "solution required")
	}

	verifierID, err := uuid.Parse(req.VerifierID)
	if err != nil {
		log.Info("rejecting authentication", logger.KeyResult, "rejected", logger.KeyError, "invalid verifier id")
		s.countAttempt(metrics.ResultError)
		return nil, status.Error(codes.InvalidArgument, "invalid verifier_id")
	}

	verifier, ok := s.store.TakeVerifier(verifierID)
	if !ok {
		log.Info("rejecting authentication", logger.KeyResult, "rejected", logger.KeyError, "verifier not found")
		s.countAttempt(metrics.ResultError)
		return nil, status.Error(codes.NotFound, "verifier not found")
	}

	if !verifier.Verify(authv1.Int(req.Solution.S)) {
		telemetry.SetAttributes(ctx, attribute.String("zkauth.result", "rejected"))
		log.Info("authentication failed", logger.KeyResult, "rejected")
		s.countAttempt(metrics.ResultRejected)
		return nil, status.Error(codes.Unauthenticated, "authentication failed")
	}

	sessionID := uuid.New()
	s.store.AddSession(sessionID)

	log.Info("session opened", logger.KeyResult, "ok", logger.KeySessionID, sessionID.String())
	s.countAttempt(metrics.ResultOK)
	return &authv1.AuthResponse{SessionID: sessionID.String()}, nil
}

// GetPrice is the illustrative resource endpoint gated on an active
// session.
func (s *AuthService) GetPrice(ctx context.Context, req *authv1.GetPriceRequest) (*authv1.GetPriceResponse, error) {
	_, span := telemetry.StartSpan(ctx, "Auth.GetPrice")
	defer span.End()
	defer s.observe(authv1.MethodGetPrice, time.Now())

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid session_id")
	}
	if !s.store.HasSession(sessionID) {
		return nil, status.Error(codes.Unauthenticated, "not authenticated")
	}

	// Demo payload; a real deployment would query a price feed here.
	return &authv1.GetPriceResponse{Symbol: req.Symbol, Price: "27538.23"}, nil
}

// Logout drops a session from the active set.
func (s *AuthService) Logout(ctx context.Context, req *authv1.LogoutRequest) (*authv1.LogoutResponse, error) {
	_, span := telemetry.StartSpan(ctx, "Auth.Logout")
	defer span.End()
	defer s.observe(authv1.MethodLogout, time.Now())

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid session_id")
	}
	if !s.store.RemoveSession(sessionID) {
		return nil, status.Error(codes.NotFound, "session not found")
	}

	logger.Info("session closed", logger.KeyRPC, authv1.MethodLogout, logger.KeySessionID, req.SessionID)
	return &authv1.LogoutResponse{}, nil
}

func (s *AuthService) observe(method string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RPCDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}
}

func (s *AuthService) countAttempt(result string) {
	if s.metrics != nil {
		s.metrics.AuthAttempts.WithLabelValues(result).Inc()
	}
}
