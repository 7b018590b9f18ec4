package generator

import (
	"math/rand"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// maxAmount is the inclusive upper bound for transaction values and transfer amounts.
const maxAmount int64 = 1_000_000_000_000_000_000

// IDSource draws random identifiers and amounts from a single random stream.
type IDSource struct {
	rng *rand.Rand
}

// NewIDSource returns an IDSource backed by rng.
func NewIDSource(rng *rand.Rand) *IDSource {
	return &IDSource{rng: rng}
}

// Address returns a 0x-prefixed 40 character lowercase hex string.
func (s *IDSource) Address() string {
	var addr common.Address
	s.rng.Read(addr[:])
	return hexutil.Encode(addr[:])
}

// Hash returns a 0x-prefixed 64 character lowercase hex string.
func (s *IDSource) Hash() string {
	var hash common.Hash
	s.rng.Read(hash[:])
	return hexutil.Encode(hash[:])
}

// Amount returns a decimal integer in [0, 10^18].
func (s *IDSource) Amount() string {
	return strconv.FormatInt(s.rng.Int63n(maxAmount+1), 10)
}
