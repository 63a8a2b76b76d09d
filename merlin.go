package merlin

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/codahale/merlin/internal/mem"
)

// Merlin is the prover state in an interactive proof system. It owns a [SAFE], a
// transcript-bound CSPRNG, and a growing byte transcript, and exposes the typed byte
// operations that drive them.
//
// A Merlin is single-use: build one from an [IOPattern] and run the protocol once.
// Dropping one mid-protocol is legal and silent — the partial transcript is simply
// discarded.
type Merlin struct {
	safe       *SAFE
	rand       *proverRand
	transcript []byte
}

func newMerlin(pattern *IOPattern, cfg Config) *Merlin {
	factory := cfg.sponge()
	osRand := cfg.Rand
	if osRand == nil {
		osRand = rand.Reader
	}

	return &Merlin{
		safe: newSAFE(pattern, factory),
		rand: newProverRand(factory, osRand, pattern.domainSeparator),
	}
}

// AddUnits absorbs units into the sponge, appends their serialized form to the
// transcript, and folds the appended bytes into the CSPRNG. Serialization runs
// through the [ByteUnit] contract: every concrete sponge this package ships
// operates over bytes, so writing is an identity copy, but the call site never
// assumes that.
func (m *Merlin) AddUnits(units []byte) error {
	oldLen := len(m.transcript)

	if err := m.safe.absorb(units); err != nil {
		return err
	}

	var tail []byte
	m.transcript, tail = mem.SliceForAppend(m.transcript, len(units))
	if _, err := (ByteUnit{}).Write(units, tail); err != nil {
		return fmt.Errorf("merlin: serializing units: %w", err)
	}
	m.rand.absorbTranscript(m.transcript[oldLen:])

	return nil
}

// PublicUnits absorbs units into the sponge and the CSPRNG exactly like AddUnits,
// but the transcript does not grow: callers use this for data the verifier already
// knows (a public statement), so it needn't be repeated in the proof bytes.
func (m *Merlin) PublicUnits(units []byte) error {
	oldLen := len(m.transcript)

	if err := m.AddUnits(units); err != nil {
		return err
	}

	m.transcript = m.transcript[:oldLen]
	return nil
}

// FillChallengeUnits squeezes a verifier challenge into out. The output is not
// written to the transcript.
func (m *Merlin) FillChallengeUnits(out []byte) error {
	return m.safe.squeeze(out)
}

// Ratchet performs an irreversible one-way compression of the sponge state. The
// CSPRNG's sponge is unaffected.
func (m *Merlin) Ratchet() error {
	return m.safe.ratchet()
}

// Hint writes a length-prefixed blob to the transcript without absorbing it into the
// sponge. The next IO Pattern op must be a Hint.
func (m *Merlin) Hint(data []byte) error {
	if err := m.safe.consumeHint(); err != nil {
		return err
	}

	var lengthPrefix [4]byte
	binary.LittleEndian.PutUint32(lengthPrefix[:], uint32(len(data)))

	var tail []byte
	m.transcript, tail = mem.SliceForAppend(m.transcript, len(lengthPrefix)+len(data))
	copy(tail, lengthPrefix[:])
	copy(tail[len(lengthPrefix):], data)

	return nil
}

// Rng returns the transcript-bound CSPRNG as an io.Reader. Every read is a function
// of OS randomness, all data absorbed so far by the main sponge, and a private
// sponge state ratcheted after each call.
func (m *Merlin) Rng() io.Reader {
	return m.rand
}

// Transcript returns the prover's byte transcript: exactly the absorbed non-public
// units, in declared order and declared lengths, with no framing, plus any Hint
// blobs, each preceded by its 4-byte little-endian length. It holds no information about verifier challenges, since those
// are deterministic functions of it.
func (m *Merlin) Transcript() []byte {
	return m.transcript
}

// Finalize reports whether the IO Pattern has been fully run. It is not required —
// dropping a Merlin with a partially consumed pattern is legal — but callers that
// want to catch an accidentally truncated protocol at the point of completion should
// call it.
func (m *Merlin) Finalize() error {
	if !m.safe.done() {
		return fmt.Errorf("merlin: protocol incomplete, %d op(s) remaining: %w", len(m.safe.queue), ErrInvalidIO)
	}
	return nil
}
