package authv1

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkauthd/zkauthd/pkg/zkp"
)

func TestGroupRoundTrip(t *testing.T) {
	g, err := zkp.Lookup(zkp.GroupModP1024Q160)
	require.NoError(t, err)

	decoded, err := GroupMessage(g).ToZKP()
	require.NoError(t, err)
	assert.Zero(t, decoded.P.Cmp(g.P))
	assert.Zero(t, decoded.Q.Cmp(g.Q))
	assert.Zero(t, decoded.Alpha.Cmp(g.Alpha))
	assert.Zero(t, decoded.Beta.Cmp(g.Beta))
}

func TestToZKPRejectsBadParameters(t *testing.T) {
	var missing *Group
	_, err := missing.ToZKP()
	assert.ErrorIs(t, err, ErrMissingGroup)

	// alpha == beta fails structural validation.
	bad := &Group{
		P:     big.NewInt(23).Bytes(),
		Q:     big.NewInt(11).Bytes(),
		Alpha: big.NewInt(4).Bytes(),
		Beta:  big.NewInt(4).Bytes(),
	}
	_, err = bad.ToZKP()
	assert.ErrorIs(t, err, zkp.ErrInvalidGroup)
}

func TestIntEncoding(t *testing.T) {
	// Minimal big-endian: no leading zero bytes, zero encodes empty.
	assert.Empty(t, big.NewInt(0).Bytes())
	assert.Equal(t, []byte{0x01, 0x00}, big.NewInt(256).Bytes())

	assert.Zero(t, Int(nil).Sign())
	assert.Equal(t, int64(256), Int([]byte{0x01, 0x00}).Int64())
}

func TestCodecRoundTrip(t *testing.T) {
	c := jsonCodec{}
	in := &CommitRequest{
		Username:   "alice",
		Commitment: CommitmentMessage(big.NewInt(8), big.NewInt(4)),
	}

	data, err := c.Marshal(in)
	require.NoError(t, err)

	out := new(CommitRequest)
	require.NoError(t, c.Unmarshal(data, out))
	assert.Equal(t, in, out)
}
