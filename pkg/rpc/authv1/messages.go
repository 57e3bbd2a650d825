// Package authv1 defines the wire contract of the zkauth service:
// message shapes, the gRPC method set, and the codec that frames them.
//
// All big integers travel as big-endian unsigned byte strings of
// minimal length; identifiers are UUID v4 in canonical hyphenated
// form. Group parameters are embedded in the signature message, so the
// server needs no prior knowledge of the client's chosen group.
package authv1

// Group carries the public Schnorr group parameters.
type Group struct {
	P     []byte `json:"p"`
	Q     []byte `json:"q"`
	Alpha []byte `json:"alpha"`
	Beta  []byte `json:"beta"`
}

// Signature is the public pair (y1, y2) = (alpha^x, beta^x) mod p,
// together with the group it was computed in.
type Signature struct {
	Group *Group `json:"group"`
	Y1    []byte `json:"y1"`
	Y2    []byte `json:"y2"`
}

// Commitment is the per-attempt pair (r1, r2) = (alpha^k, beta^k) mod p.
type Commitment struct {
	R1 []byte `json:"r1"`
	R2 []byte `json:"r2"`
}

// Challenge is the verifier's random c in [0, q).
type Challenge struct {
	C []byte `json:"c"`
}

// Solution is the prover's response s = (k - c*x) mod q.
type Solution struct {
	S []byte `json:"s"`
}

type SignUpRequest struct {
	Username  string     `json:"username"`
	Signature *Signature `json:"signature"`
}

type SignUpResponse struct{}

type CommitRequest struct {
	Username   string      `json:"username"`
	Commitment *Commitment `json:"commitment"`
}

type CommitResponse struct {
	VerifierID string     `json:"verifier_id"`
	Challenge  *Challenge `json:"challenge"`
}

type AuthRequest struct {
	VerifierID string    `json:"verifier_id"`
	Solution   *Solution `json:"solution"`
}

type AuthResponse struct {
	SessionID string `json:"session_id"`
}

// GetPriceRequest is the illustrative authenticated resource query.
type GetPriceRequest struct {
	SessionID string `json:"session_id"`
	Symbol    string `json:"symbol"`
}

type GetPriceResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

type LogoutRequest struct {
	SessionID string `json:"session_id"`
}

type LogoutResponse struct{}
