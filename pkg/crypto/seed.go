package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// SeedFromPhrase derives the 256-bit composition seed from a user phrase.
// The phrase is hashed as raw UTF-8 bytes, so the same phrase always maps
// to the same seed on every client and on the chain.
func SeedFromPhrase(phrase string) common.Hash {
	return ethcrypto.Keccak256Hash([]byte(phrase))
}

// ParseSeed validates a 0x-prefixed 32-byte hex seed.
func ParseSeed(s string) (common.Hash, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return common.Hash{}, fmt.Errorf("seed must be 0x-prefixed")
	}

	raw := s[2:]
	if len(raw) != common.HashLength*2 {
		return common.Hash{}, fmt.Errorf("seed must be %d hex characters, got %d",
			common.HashLength*2, len(raw))
	}

	for _, c := range raw {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return common.Hash{}, fmt.Errorf("seed contains non-hex character %q", c)
		}
	}

	return common.HexToHash(s), nil
}

func GenerateRandomString() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(b), nil
}
