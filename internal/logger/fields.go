package logger

// Standard field keys. Every log statement uses these so logs can be
// aggregated and queried consistently across the service.
const (
	KeyRequestID  = "request_id"  // fresh UUID per RPC invocation
	KeyRPC        = "rpc"         // full gRPC method path
	KeyUsername   = "username"    // registered username
	KeyVerifierID = "verifier_id" // pending verifier identifier
	KeySessionID  = "session_id"  // post-auth session identifier
	KeyGroupBits  = "group_bits"  // bit length of the group prime p
	KeyResult     = "result"      // ok / rejected / error
	KeyError      = "error"       // error detail (server side only)
	KeyDurationMs = "duration_ms" // wall time of the operation
	KeyListenAddr = "listen_addr" // server bind address
	KeyEvicted    = "evicted"     // verifiers removed by a sweep
)
