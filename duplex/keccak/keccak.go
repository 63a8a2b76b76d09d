// Package keccak implements a duplex sponge over the Keccak-p[1600,12] permutation,
// the default concrete DuplexSponge collaborator for the transcript engine.
package keccak

import (
	"github.com/codahale/merlin/hazmat/keccak"
	"github.com/codahale/merlin/internal/mem"
)

// Rate is the sponge rate in bytes: 200-byte state minus a 64-byte (512-bit) capacity.
const Rate = 136

const (
	padAbsorb = 0x1F // domain-separates the absorb/squeeze boundary from the rate-full case.
	padFinal  = 0x80
)

// Sponge is a DuplexSponge over bytes, built on Keccak-p[1600,12]. The zero value is a
// valid, freshly initialized sponge.
type Sponge struct {
	state     [200]byte
	pos       int
	squeezing bool
}

// New returns a zero-initialized Sponge. It satisfies the DuplexSponge contract's
// requirement for a zero-initialized default.
func New() *Sponge {
	return &Sponge{}
}

// AbsorbUnchecked absorbs units into the sponge state. Calling it after a squeeze
// permutes the state once to re-enter absorbing mode, per the duplex contract.
func (s *Sponge) AbsorbUnchecked(units []byte) {
	for len(units) > 0 {
		if s.squeezing {
			keccak.P1600_12(&s.state)
			s.pos = 0
			s.squeezing = false
		}

		n := min(Rate-s.pos, len(units))
		mem.XORInPlace(s.state[s.pos:s.pos+n], units[:n])
		s.pos += n
		units = units[n:]

		if s.pos == Rate {
			keccak.P1600_12(&s.state)
			s.pos = 0
		}
	}
}

// SqueezeUnchecked fills out with sponge output. On the first call after an absorb, it
// finalizes the absorbed data with domain-separating padding before squeezing.
func (s *Sponge) SqueezeUnchecked(out []byte) {
	if !s.squeezing {
		s.state[s.pos] ^= padAbsorb
		s.state[Rate-1] ^= padFinal
		keccak.P1600_12(&s.state)
		s.pos = 0
		s.squeezing = true
	}

	for len(out) > 0 {
		if s.pos == Rate {
			keccak.P1600_12(&s.state)
			s.pos = 0
		}

		n := copy(out, s.state[s.pos:Rate])
		s.pos += n
		out = out[n:]
	}
}

// RatchetUnchecked squeezes and discards a full rate's worth of output, then zeroes
// the rate portion of the state. Any future output is therefore a function of the
// surviving capacity passed through at least one more permutation call, not of the
// discarded rate bytes: recovering pre-ratchet state from post-ratchet state requires
// inverting the permutation.
func (s *Sponge) RatchetUnchecked() {
	var discard [Rate]byte
	s.SqueezeUnchecked(discard[:])
	clear(s.state[:Rate])
	s.pos = 0
	s.squeezing = false
}
