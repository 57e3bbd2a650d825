package server

import (
	"context"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/zkauthd/zkauthd/internal/store"
	"github.com/zkauthd/zkauthd/pkg/rpc/authv1"
	"github.com/zkauthd/zkauthd/pkg/zkp"
)

func startService(t *testing.T) (authv1.AuthClient, *store.Store) {
	t.Helper()

	st := store.New()
	srv := grpc.NewServer()
	authv1.RegisterAuthServer(srv, NewAuthService(st, nil))

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return authv1.NewAuthClient(conn), st
}

func testGroup(t *testing.T) *zkp.Group {
	t.Helper()
	g, err := zkp.Lookup(zkp.GroupModP5Q4)
	require.NoError(t, err)
	return g
}

func register(t *testing.T, client authv1.AuthClient, username, password string) {
	t.Helper()

	g := testGroup(t)
	prover, err := zkp.NewProver(g)
	require.NoError(t, err)

	y1, y2 := prover.Sign(prover.SecretFromPassword(password))
	_, err = client.SignUp(context.Background(), &authv1.SignUpRequest{
		Username:  username,
		Signature: authv1.SignatureMessage(g, y1, y2),
	})
	require.NoError(t, err)
}

// login runs the commit/challenge/response round and returns the
// session id or the first RPC error. It avoids failing the test
// directly so callers can run it from multiple goroutines.
func login(client authv1.AuthClient, username, password string) (string, error) {
	g, err := zkp.Lookup(zkp.GroupModP5Q4)
	if err != nil {
		return "", err
	}
	prover, err := zkp.NewProver(g)
	if err != nil {
		return "", err
	}

	r1, r2 := prover.Commit()
	commit, err := client.Commit(context.Background(), &authv1.CommitRequest{
		Username:   username,
		Commitment: authv1.CommitmentMessage(r1, r2),
	})
	if err != nil {
		return "", err
	}

	x := prover.SecretFromPassword(password)
	s := prover.Respond(x, authv1.Int(commit.Challenge.C))

	resp, err := client.Authenticate(context.Background(), &authv1.AuthRequest{
		VerifierID: commit.VerifierID,
		Solution:   &authv1.Solution{S: s.Bytes()},
	})
	if err != nil {
		return "", err
	}
	return resp.SessionID, nil
}

func TestFullAuthenticationFlow(t *testing.T) {
	client, st := startService(t)

	register(t, client, "alice", "correct horse battery")

	sessionID, err := login(client, "alice", "correct horse battery")
	require.NoError(t, err)
	_, err = uuid.Parse(sessionID)
	assert.NoError(t, err, "session id must be a UUID")
	assert.Equal(t, 1, st.ActiveSessions())
	assert.Equal(t, 0, st.PendingVerifiers(), "verifier must be consumed")

	price, err := client.GetPrice(context.Background(), &authv1.GetPriceRequest{
		SessionID: sessionID,
		Symbol:    "BTC",
	})
	require.NoError(t, err)
	assert.Equal(t, "BTC", price.Symbol)
	assert.NotEmpty(t, price.Price)

	_, err = client.Logout(context.Background(), &authv1.LogoutRequest{SessionID: sessionID})
	require.NoError(t, err)
	assert.Equal(t, 0, st.ActiveSessions())

	_, err = client.GetPrice(context.Background(), &authv1.GetPriceRequest{
		SessionID: sessionID,
		Symbol:    "BTC",
	})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestWrongPasswordRejected(t *testing.T) {
	client, st := startService(t)

	register(t, client, "alice", "right password")

	_, err := login(client, "alice", "wrong password")
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, 0, st.ActiveSessions())
	assert.Equal(t, 0, st.PendingVerifiers(), "failed attempt still consumes the verifier")

	// The account is not locked out by a failed attempt.
	_, err = login(client, "alice", "right password")
	assert.NoError(t, err)
}

func TestDuplicateSignUpKeepsFirstSignature(t *testing.T) {
	client, _ := startService(t)

	register(t, client, "alice", "original password")

	g := testGroup(t)
	prover, err := zkp.NewProver(g)
	require.NoError(t, err)
	y1, y2 := prover.Sign(prover.SecretFromPassword("attacker password"))
	_, err = client.SignUp(context.Background(), &authv1.SignUpRequest{
		Username:  "alice",
		Signature: authv1.SignatureMessage(g, y1, y2),
	})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	// The original credentials still authenticate.
	_, err = login(client, "alice", "original password")
	assert.NoError(t, err)
	_, err = login(client, "alice", "attacker password")
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestVerifierIsSingleUse(t *testing.T) {
	client, _ := startService(t)

	register(t, client, "alice", "secret password")

	prover, err := zkp.NewProver(testGroup(t))
	require.NoError(t, err)
	r1, r2 := prover.Commit()
	commit, err := client.Commit(context.Background(), &authv1.CommitRequest{
		Username:   "alice",
		Commitment: authv1.CommitmentMessage(r1, r2),
	})
	require.NoError(t, err)

	s := prover.Respond(prover.SecretFromPassword("secret password"), authv1.Int(commit.Challenge.C))
	solution := &authv1.Solution{S: s.Bytes()}

	_, err = client.Authenticate(context.Background(), &authv1.AuthRequest{
		VerifierID: commit.VerifierID,
		Solution:   solution,
	})
	require.NoError(t, err)

	// Replaying the same valid solution must fail: the verifier is gone.
	_, err = client.Authenticate(context.Background(), &authv1.AuthRequest{
		VerifierID: commit.VerifierID,
		Solution:   solution,
	})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestCommitUnknownUsername(t *testing.T) {
	client, _ := startService(t)

	prover, err := zkp.NewProver(testGroup(t))
	require.NoError(t, err)
	r1, r2 := prover.Commit()

	_, err = client.Commit(context.Background(), &authv1.CommitRequest{
		Username:   "nobody",
		Commitment: authv1.CommitmentMessage(r1, r2),
	})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestRequestValidation(t *testing.T) {
	client, _ := startService(t)
	ctx := context.Background()

	g := testGroup(t)
	prover, err := zkp.NewProver(g)
	require.NoError(t, err)
	y1, y2 := prover.Sign(prover.SecretFromPassword("pw"))

	t.Run("sign up without username", func(t *testing.T) {
		_, err := client.SignUp(ctx, &authv1.SignUpRequest{
			Signature: authv1.SignatureMessage(g, y1, y2),
		})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("sign up without signature", func(t *testing.T) {
		_, err := client.SignUp(ctx, &authv1.SignUpRequest{Username: "alice"})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("sign up with broken group", func(t *testing.T) {
		_, err := client.SignUp(ctx, &authv1.SignUpRequest{
			Username: "alice",
			Signature: &authv1.Signature{
				Group: &authv1.Group{P: []byte{11}, Q: []byte{23}, Alpha: []byte{4}, Beta: []byte{9}},
				Y1:    y1.Bytes(),
				Y2:    y2.Bytes(),
			},
		})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("commit without commitment", func(t *testing.T) {
		_, err := client.Commit(ctx, &authv1.CommitRequest{Username: "alice"})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("authenticate with malformed verifier id", func(t *testing.T) {
		_, err := client.Authenticate(ctx, &authv1.AuthRequest{
			VerifierID: "not-a-uuid",
			Solution:   &authv1.Solution{S: []byte{1}},
		})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("authenticate without solution", func(t *testing.T) {
		_, err := client.Authenticate(ctx, &authv1.AuthRequest{
			VerifierID: uuid.NewString(),
		})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("authenticate with unknown verifier id", func(t *testing.T) {
		_, err := client.Authenticate(ctx, &authv1.AuthRequest{
			VerifierID: uuid.NewString(),
			Solution:   &authv1.Solution{S: []byte{1}},
		})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("get price with malformed session id", func(t *testing.T) {
		_, err := client.GetPrice(ctx, &authv1.GetPriceRequest{SessionID: "nope", Symbol: "BTC"})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("get price with unknown session id", func(t *testing.T) {
		_, err := client.GetPrice(ctx, &authv1.GetPriceRequest{SessionID: uuid.NewString(), Symbol: "BTC"})
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("logout with unknown session id", func(t *testing.T) {
		_, err := client.Logout(ctx, &authv1.LogoutRequest{SessionID: uuid.NewString()})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})
}

func TestConcurrentLogins(t *testing.T) {
	client, st := startService(t)

	register(t, client, "alice", "shared password")

	const attempts = 8
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			_, err := login(client, "alice", "shared password")
			errs <- err
		}()
	}
	for i := 0; i < attempts; i++ {
		assert.NoError(t, <-errs)
	}
	assert.Equal(t, attempts, st.ActiveSessions())
}
