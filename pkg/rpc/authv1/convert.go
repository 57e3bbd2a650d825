package authv1

import (
	"errors"
	"math/big"

	"github.com/zkauthd/zkauthd/pkg/zkp"
)

// ErrMissingGroup is returned when a signature arrives without its
// embedded group parameters.
var ErrMissingGroup = errors.New("signature carries no group")

// GroupMessage encodes group parameters for the wire.
func GroupMessage(g *zkp.Group) *Group {
	return &Group{
		P:     g.P.Bytes(),
		Q:     g.Q.Bytes(),
		Alpha: g.Alpha.Bytes(),
		Beta:  g.Beta.Bytes(),
	}
}

// ToZKP decodes wire group parameters, validating the structural
// invariants before use.
func (g *Group) ToZKP() (*zkp.Group, error) {
	if g == nil {
		return nil, ErrMissingGroup
	}
	return zkp.NewGroup(
		new(big.Int).SetBytes(g.P),
		new(big.Int).SetBytes(g.Q),
		new(big.Int).SetBytes(g.Alpha),
		new(big.Int).SetBytes(g.Beta),
	)
}

// SignatureMessage encodes a signature with its group for the wire.
func SignatureMessage(g *zkp.Group, y1, y2 *big.Int) *Signature {
	return &Signature{Group: GroupMessage(g), Y1: y1.Bytes(), Y2: y2.Bytes()}
}

// CommitmentMessage encodes a commitment for the wire.
func CommitmentMessage(r1, r2 *big.Int) *Commitment {
	return &Commitment{R1: r1.Bytes(), R2: r2.Bytes()}
}

// Int decodes a big-endian unsigned byte string. A nil or empty slice
// decodes to zero.
func Int(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
