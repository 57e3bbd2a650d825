// Package client implements the prover side of the zkauth protocol on
// top of the gRPC surface. It derives the secret from a password,
// produces signatures and commitments, and drives the full
// commit/challenge/response round for the caller.
package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/zkauthd/zkauthd/pkg/rpc/authv1"
	"github.com/zkauthd/zkauthd/pkg/zkp"
)

// Option customizes a Client.
type Option func(*options)

type options struct {
	groupID  zkp.GroupID
	dialOpts []grpc.DialOption
}

// WithGroup selects the mod-p group used for registration and login.
func WithGroup(id zkp.GroupID) Option {
	return func(o *options) { o.groupID = id }
}

// WithDialOptions appends extra gRPC dial options.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *options) { o.dialOpts = append(o.dialOpts, opts...) }
}

// Client talks to a zkauth server. Both sides of an account must use
// the same group: the one picked at registration is embedded in the
// stored signature, and login verifies against it.
type Client struct {
	conn  *grpc.ClientConn
	rpc   authv1.AuthClient
	group *zkp.Group
}

// Dial connects to a zkauth server. The default group is the RFC 5114
// 2048-bit group with a 256-bit subgroup.
func Dial(target string, opts ...Option) (*Client, error) {
	o := options{groupID: zkp.GroupModP2048Q256}
	for _, opt := range opts {
		opt(&o)
	}

	group, err := zkp.Lookup(o.groupID)
	if err != nil {
		return nil, err
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, o.dialOpts...)

	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", target, err)
	}

	return &Client{conn: conn, rpc: authv1.NewAuthClient(conn), group: group}, nil
}

// NewWithConn wraps an existing connection, for tests and callers that
// manage their own transport.
func NewWithConn(cc grpc.ClientConnInterface, groupID zkp.GroupID) (*Client, error) {
	group, err := zkp.Lookup(groupID)
	if err != nil {
		return nil, err
	}
	return &Client{rpc: authv1.NewAuthClient(cc), group: group}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Register signs the password-derived secret and registers the
// username with the resulting public signature. The password itself
// never leaves the client.
func (c *Client) Register(ctx context.Context, username, password string) error {
	prover, err := zkp.NewProver(c.group)
	if err != nil {
		return err
	}
	y1, y2 := prover.Sign(prover.SecretFromPassword(password))

	_, err = c.rpc.SignUp(ctx, &authv1.SignUpRequest{
		Username:  username,
		Signature: authv1.SignatureMessage(c.group, y1, y2),
	})
	if err != nil {
		return fmt.Errorf("signing up: %w", err)
	}
	return nil
}

// Login runs one commit/challenge/response round and returns the
// session id issued by the server.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	prover, err := zkp.NewProver(c.group)
	if err != nil {
		return "", err
	}

	r1, r2 := prover.Commit()
	commit, err := c.rpc.Commit(ctx, &authv1.CommitRequest{
		Username:   username,
		Commitment: authv1.CommitmentMessage(r1, r2),
	})
	if err != nil {
		return "", fmt.Errorf("requesting challenge: %w", err)
	}
	if commit.Challenge == nil {
		return "", fmt.Errorf("server returned no challenge")
	}

	x := prover.SecretFromPassword(password)
	s := prover.Respond(x, authv1.Int(commit.Challenge.C))

	resp, err := c.rpc.Authenticate(ctx, &authv1.AuthRequest{
		VerifierID: commit.VerifierID,
		Solution:   &authv1.Solution{S: s.Bytes()},
	})
	if err != nil {
		return "", fmt.Errorf("authenticating: %w", err)
	}
	return resp.SessionID, nil
}

// GetPrice fetches the demo resource for an authenticated session.
func (c *Client) GetPrice(ctx context.Context, sessionID, symbol string) (string, error) {
	resp, err := c.rpc.GetPrice(ctx, &authv1.GetPriceRequest{
		SessionID: sessionID,
		Symbol:    symbol,
	})
	if err != nil {
		return "", fmt.Errorf("fetching price: %w", err)
	}
	return resp.Price, nil
}

// Logout closes the session on the server.
func (c *Client) Logout(ctx context.Context, sessionID string) error {
	if _, err := c.rpc.Logout(ctx, &authv1.LogoutRequest{SessionID: sessionID}); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	return nil
}
