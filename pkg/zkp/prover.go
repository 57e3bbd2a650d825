package zkp

import (
	"crypto/sha256"
	"fmt"
	"math/big"
)

// Prover holds the client side of the protocol: a group reference and
// a nonce k drawn fresh for each authentication attempt. The nonce
// never leaves the prover.
type Prover struct {
	group *Group
	k     *big.Int
}

// NewProver creates a prover for the given group with a fresh random
// nonce k in [0, q).
func NewProver(g *Group) (*Prover, error) {
	k, err := randBelow(g.Q)
	if err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	return &Prover{group: g, k: k}, nil
}

// Group returns the prover's group.
func (p *Prover) Group() *Group { return p.group }

// SecretFromPassword derives the secret x in [0, q) from a password:
// SHA-256 of the password interpreted as a big-endian integer, reduced
// modulo q. Deterministic in (password, q).
//
// A production deployment would salt and stretch the password first;
// this service is an honest-verifier demo of the proof itself.
func (p *Prover) SecretFromPassword(password string) *big.Int {
	sum := sha256.Sum256([]byte(password))
	x := new(big.Int).SetBytes(sum[:])
	return x.Mod(x, p.group.Q)
}

// RandomSecret draws a uniform random secret in [0, q). Used by tests
// and by callers that do not bind the secret to a password.
func (p *Prover) RandomSecret() (*big.Int, error) {
	return randBelow(p.group.Q)
}

// Sign computes the public signature (y1, y2) = (alpha^x, beta^x)
// mod p for the secret x.
func (p *Prover) Sign(x *big.Int) (y1, y2 *big.Int) {
	y1 = new(big.Int).Exp(p.group.Alpha, x, p.group.P)
	y2 = new(big.Int).Exp(p.group.Beta, x, p.group.P)
	return y1, y2
}

// Commit computes the commitment (r1, r2) = (alpha^k, beta^k) mod p
// using the stored nonce.
func (p *Prover) Commit() (r1, r2 *big.Int) {
	r1 = new(big.Int).Exp(p.group.Alpha, p.k, p.group.P)
	r2 = new(big.Int).Exp(p.group.Beta, p.k, p.group.P)
	return r1, r2
}

// Respond solves the challenge c for the secret x:
// s = (k - c*x) mod q, reduced to the canonical representative in
// [0, q) even when c*x exceeds k.
func (p *Prover) Respond(x, c *big.Int) *big.Int {
	s := new(big.Int).Mul(c, x)
	s.Sub(p.k, s)
	// big.Int.Mod is Euclidean, so the result lands in [0, q) for
	// negative differences too.
	return s.Mod(s, p.group.Q)
}
