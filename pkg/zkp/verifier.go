package zkp

import (
	"fmt"
	"math/big"
)

// Verifier holds the server side of one authentication attempt: the
// registered signature, the received commitment, and a challenge c
// drawn at construction. A verifier is single-use; the protocol layer
// discards it after one verification.
type Verifier struct {
	group *Group
	y1    *big.Int
	y2    *big.Int
	r1    *big.Int
	r2    *big.Int
	c     *big.Int
}

// NewVerifier builds a verifier from a group, a signature (y1, y2)
// and a commitment (r1, r2), drawing a fresh challenge c in [0, q).
func NewVerifier(g *Group, y1, y2, r1, r2 *big.Int) (*Verifier, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	c, err := randBelow(g.Q)
	if err != nil {
		return nil, fmt.Errorf("generating challenge: %w", err)
	}
	return &Verifier{group: g, y1: y1, y2: y2, r1: r1, r2: r2, c: c}, nil
}

// Challenge returns the challenge c issued to the prover.
func (v *Verifier) Challenge() *big.Int {
	return new(big.Int).Set(v.c)
}

// Verify reports whether the response s closes the proof, i.e. whether
// both r1 = alpha^s * y1^c and r2 = beta^s * y2^c hold mod p.
// Malformed input yields false, never a panic.
func (v *Verifier) Verify(s *big.Int) bool {
	if s == nil || s.Sign() < 0 {
		return false
	}
	if v.y1 == nil || v.y2 == nil || v.r1 == nil || v.r2 == nil {
		return false
	}

	lhs1 := new(big.Int).Exp(v.group.Alpha, s, v.group.P)
	lhs1.Mul(lhs1, new(big.Int).Exp(v.y1, v.c, v.group.P))
	lhs1.Mod(lhs1, v.group.P)

	if v.r1.Cmp(lhs1) != 0 {
		return false
	}

	lhs2 := new(big.Int).Exp(v.group.Beta, s, v.group.P)
	lhs2.Mul(lhs2, new(big.Int).Exp(v.y2, v.c, v.group.P))
	lhs2.Mod(lhs2, v.group.P)

	return v.r2.Cmp(lhs2) == 0
}
