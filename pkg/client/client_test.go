package client

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/zkauthd/zkauthd/internal/server"
	"github.com/zkauthd/zkauthd/internal/store"
	"github.com/zkauthd/zkauthd/pkg/rpc/authv1"
	"github.com/zkauthd/zkauthd/pkg/zkp"
)

func startClient(t *testing.T) *Client {
	t.Helper()

	srv := grpc.NewServer()
	authv1.RegisterAuthServer(srv, server.NewAuthService(store.New(), nil))

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

	c, err := NewWithConn(conn, zkp.GroupModP5Q4)
	require.NoError(t, err)
	return c
}

func TestRegisterAndLogin(t *testing.T) {
	c := startClient(t)
	ctx := context.Background()

	require.NoError(t, c.Register(ctx, "alice", "hunter2hunter2"))

	sessionID, err := c.Login(ctx, "alice", "hunter2hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	price, err := c.GetPrice(ctx, sessionID, "BTC")
	require.NoError(t, err)
	assert.NotEmpty(t, price)

	require.NoError(t, c.Logout(ctx, sessionID))

	_, err = c.GetPrice(ctx, sessionID, "BTC")
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestLoginWrongPassword(t *testing.T) {
	c := startClient(t)
	ctx := context.Background()

	require.NoError(t, c.Register(ctx, "alice", "hunter2hunter2"))

	_, err := c.Login(ctx, "alice", "not the password")
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestLoginUnknownUser(t *testing.T) {
	c := startClient(t)

	_, err := c.Login(context.Background(), "nobody", "whatever pass")
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestRegisterDuplicate(t *testing.T) {
	c := startClient(t)
	ctx := context.Background()

	require.NoError(t, c.Register(ctx, "alice", "hunter2hunter2"))

	err := c.Register(ctx, "alice", "another password")
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

func TestDialRejectsUnknownGroup(t *testing.T) {
	_, err := Dial("localhost:0", WithGroup(zkp.GroupID(99)))
	assert.ErrorIs(t, err, zkp.ErrUnknownGroup)
}
