// Package blake2x implements a duplex sponge bridged on top of a classical hash
// function (BLAKE2s), for protocols that prefer a software-hash-backed transcript
// over the default Keccak-based sponge (a "Blake2s-bridged sponge").
//
// The construction chains keyed BLAKE2s calls: the sponge's 32-byte chaining value
// is used as the key for the next BLAKE2s invocation, and pending absorbed bytes are
// folded into the chain on the next squeeze or ratchet. This mirrors the well-known
// technique of building a sponge-like object out of a keyed hash, the same way
// curve25519-based Merlin transcripts historically bridged onto SHA-3/Keccak before a
// native duplex was available.
package blake2x

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2s"
)

const chainSize = 32

// Sponge is a DuplexSponge bridged onto keyed BLAKE2s. The zero value is a valid,
// freshly initialized sponge.
type Sponge struct {
	state     [chainSize]byte
	pending   []byte
	squeezing bool
	ctr       uint64
}

// New returns a zero-initialized Sponge.
func New() *Sponge {
	return &Sponge{}
}

// AbsorbUnchecked buffers units for folding into the chain value on the next squeeze
// or ratchet, and marks the sponge as absorbing again (so a squeeze following an
// absorb re-folds, per the duplex contract).
func (s *Sponge) AbsorbUnchecked(units []byte) {
	s.pending = append(s.pending, units...)
	s.squeezing = false
}

// SqueezeUnchecked fills out with sponge output, folding in any buffered absorbs
// first.
func (s *Sponge) SqueezeUnchecked(out []byte) {
	if !s.squeezing {
		s.fold()
		s.squeezing = true
		s.ctr = 0
	}

	for len(out) > 0 {
		h, _ := blake2s.New256(s.state[:])
		var ctrBytes [8]byte
		binary.LittleEndian.PutUint64(ctrBytes[:], s.ctr)
		_, _ = h.Write(ctrBytes[:])

		block := h.Sum(nil)
		n := copy(out, block)
		out = out[n:]
		s.ctr++
	}
}

// RatchetUnchecked folds any pending absorbs into the chain value, then replaces the
// chain value with a keyed hash of a fixed ratchet label. Because the chain value
// only ever leaves the sponge through a further keyed hash (never directly), the
// pre-ratchet chain value cannot be recovered from anything the sponge has output.
func (s *Sponge) RatchetUnchecked() {
	s.fold()

	h, _ := blake2s.New256(s.state[:])
	_, _ = h.Write([]byte("merlin-blake2x-ratchet"))
	h.Sum(s.state[:0])

	s.squeezing = false
	s.ctr = 0
}

func (s *Sponge) fold() {
	if len(s.pending) == 0 {
		return
	}

	h, _ := blake2s.New256(s.state[:])
	_, _ = h.Write(s.pending)
	h.Sum(s.state[:0])

	s.pending = s.pending[:0]
}
