package generator

import (
	"math/big"
	"math/rand"
	"regexp"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

var (
	addressPattern = regexp.MustCompile(`^0x[0-9a-f]{40}$`)
	hashPattern    = regexp.MustCompile(`^0x[0-9a-f]{64}$`)
)

func TestAddressFormat(t *testing.T) {
	ids := NewIDSource(rand.New(rand.NewSource(1)))
	for i := 0; i < 100; i++ {
		addr := ids.Address()
		if !addressPattern.MatchString(addr) {
			t.Fatalf("bad address: %s", addr)
		}
		if !common.IsHexAddress(addr) {
			t.Fatalf("address not accepted by go-ethereum: %s", addr)
		}
	}
}

func TestHashFormat(t *testing.T) {
	ids := NewIDSource(rand.New(rand.NewSource(2)))
	for i := 0; i < 100; i++ {
		if hash := ids.Hash(); !hashPattern.MatchString(hash) {
			t.Fatalf("bad hash: %s", hash)
		}
	}
}

func TestAmountRange(t *testing.T) {
	ids := NewIDSource(rand.New(rand.NewSource(3)))
	upper := big.NewInt(maxAmount)
	for i := 0; i < 1000; i++ {
		amount, ok := new(big.Int).SetString(ids.Amount(), 10)
		if !ok {
			t.Fatalf("amount is not a decimal integer")
		}
		if amount.Sign() < 0 || amount.Cmp(upper) > 0 {
			t.Fatalf("amount out of range: %s", amount)
		}
	}
}
