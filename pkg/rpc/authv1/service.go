package authv1

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "zkauth.v1.Auth"

// Method paths as they appear on the wire.
const (
	MethodSignUp       = "/zkauth.v1.Auth/SignUp"
	MethodCommit       = "/zkauth.v1.Auth/Commit"
	MethodAuthenticate = "/zkauth.v1.Auth/Authenticate"
	MethodGetPrice     = "/zkauth.v1.Auth/GetPrice"
	MethodLogout       = "/zkauth.v1.Auth/Logout"
)

// AuthServer is the server-side contract of the zkauth service.
type AuthServer interface {
	// SignUp registers a username with its public signature.
	SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error)
	// Commit opens an authentication attempt: the server builds a
	// verifier from the stored signature and the received commitment
	// and answers with a verifier id and a challenge.
	Commit(context.Context, *CommitRequest) (*CommitResponse, error)
	// Authenticate consumes the verifier and checks the response,
	// minting a session id on success.
	Authenticate(context.Context, *AuthRequest) (*AuthResponse, error)
	// GetPrice is the illustrative resource endpoint gated on an
	// active session.
	GetPrice(context.Context, *GetPriceRequest) (*GetPriceResponse, error)
	// Logout removes a session from the active set.
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
}

// RegisterAuthServer wires an AuthServer implementation into a gRPC
// server.
func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

// AuthServiceDesc is the handwritten service descriptor for the zkauth
// service. All methods are unary.
var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SignUp", Handler: signUpHandler},
		{MethodName: "Commit", Handler: commitHandler},
		{MethodName: "Authenticate", Handler: authenticateHandler},
		{MethodName: "GetPrice", Handler: getPriceHandler},
		{MethodName: "Logout", Handler: logoutHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "zkauth/v1/auth",
}

func signUpHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SignUpRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServer).SignUp(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodSignUp}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServer).SignUp(ctx, req.(*SignUpRequest))
	})
}

func commitHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CommitRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServer).Commit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodCommit}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServer).Commit(ctx, req.(*CommitRequest))
	})
}

func authenticateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AuthRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServer).Authenticate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodAuthenticate}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServer).Authenticate(ctx, req.(*AuthRequest))
	})
}

func getPriceHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetPriceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServer).GetPrice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGetPrice}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServer).GetPrice(ctx, req.(*GetPriceRequest))
	})
}

func logoutHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(LogoutRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServer).Logout(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodLogout}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServer).Logout(ctx, req.(*LogoutRequest))
	})
}
