// Package seed assigns the unique 256-bit seed every token receives at
// mint. Candidates are derived with MiMC over the BN254 scalar field from
// host entropy, the token id, the previously assigned seed, and a retry
// counter, then checked against the set of seeds already in use.
package seed

import (
	"encoding/binary"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/holiman/uint256"

	"github.com/relicforge/go-relics/entropy"
	"github.com/relicforge/go-relics/token"
)

// DefaultMaxAttempts bounds the collision-retry loop. Collisions in a
// 254-bit space are vanishingly rare; the bound exists so a broken
// entropy source cannot loop forever.
const DefaultMaxAttempts = 16

// Generator produces pairwise-distinct seeds.
type Generator struct {
	src         entropy.Source
	maxAttempts int
	prev        *uint256.Int
}

// NewGenerator creates a generator reading from src. maxAttempts values
// below 1 fall back to DefaultMaxAttempts.
func NewGenerator(src entropy.Source, maxAttempts int) *Generator {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Generator{
		src:         src,
		maxAttempts: maxAttempts,
		prev:        uint256.NewInt(0),
	}
}

// Next returns a non-zero seed for the given token id that is distinct
// from every seed the used predicate reports as taken. It fails with
// token.ErrSeedExhausted once the retry bound is hit.
func (g *Generator) Next(id token.TokenID, used func(*uint256.Int) bool) (*uint256.Int, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		draw, err := g.src.Draw()
		if err != nil {
			return nil, fmt.Errorf("draw entropy: %w", err)
		}

		candidate := derive(draw, uint64(id), g.prev, uint64(attempt))
		if candidate.IsZero() || (used != nil && used(candidate)) {
			continue
		}

		g.prev = candidate.Clone()
		return candidate, nil
	}
	return nil, token.ErrSeedExhausted
}

// derive hashes the inputs into the BN254 scalar field and widens the
// digest to a uint256. Every input is canonicalized through fr.Element so
// MiMC never sees an out-of-field block.
func derive(draw [32]byte, id uint64, prev *uint256.Int, attempt uint64) *uint256.Int {
	var idBytes, attemptBytes [32]byte
	binary.BigEndian.PutUint64(idBytes[24:], id)
	binary.BigEndian.PutUint64(attemptBytes[24:], attempt)
	prevBytes := prev.Bytes32()

	h := mimc.NewMiMC()
	h.Write(fieldBytes(draw))
	h.Write(fieldBytes(idBytes))
	h.Write(fieldBytes(prevBytes))
	h.Write(fieldBytes(attemptBytes))

	return new(uint256.Int).SetBytes(h.Sum(nil))
}

func fieldBytes(b [32]byte) []byte {
	var e fr.Element
	e.SetBytes(b[:])
	return e.Marshal()
}
