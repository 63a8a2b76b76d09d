package merlin

import (
	"io"

	"github.com/codahale/merlin/duplex/keccak"
)

// Config recognizes the builder/constructor-level options for a Merlin/Arthur
// pair. The zero Config selects every default: a Keccak-p[1600,12] sponge over
// bytes, seeded from the OS CSPRNG.
type Config struct {
	// Sponge selects the permutation backing both the protocol's main sponge and
	// (for Merlin) the transcript CSPRNG's independent sponge. Defaults to a
	// Keccak-p[1600,12] duplex sponge (package duplex/keccak). Use
	// duplex/blake2x.New for a classical-hash-bridged sponge.
	Sponge SpongeFactory

	// Rand is the OS randomness source used to seed the prover's transcript-bound
	// CSPRNG. Defaults to crypto/rand.Reader. Injectable for deterministic tests;
	// unused by Arthur, which has no CSPRNG.
	Rand io.Reader
}

func (cfg Config) sponge() SpongeFactory {
	if cfg.Sponge != nil {
		return cfg.Sponge
	}
	return func() DuplexSponge { return keccak.New() }
}
