package merlin

import (
	"encoding/binary"
	"fmt"
)

// Arthur is the verifier state in an interactive proof system. It owns a [SAFE] and
// an immutable byte slice (the proof under verification) with a read cursor, and
// exposes the typed byte operations that drive them.
//
// Because the SAFE sponge state is bit-identical to the prover's after every pair of
// corresponding operations, any challenge Arthur squeezes equals the one Merlin
// squeezed at the same protocol position, provided the prior Absorbs matched
// bit-for-bit.
type Arthur struct {
	safe   *SAFE
	proof  []byte
	cursor int
}

func newArthur(pattern *IOPattern, proof []byte, cfg Config) *Arthur {
	return &Arthur{
		safe:  newSAFE(pattern, cfg.sponge()),
		proof: proof,
	}
}

// FillNextUnits reads len(out) units from the proof's cursor, advances the cursor,
// and absorbs the decoded units into the sponge. It fails with ErrInvalidProof if
// the proof runs out of bytes, and with ErrInvalidIO if the IO Pattern does not
// expect an Absorb of this length next. Deserialization runs through the
// [ByteUnit] contract, the same one AddUnits writes through.
func (a *Arthur) FillNextUnits(out []byte) error {
	n := len(out)
	if a.cursor+n > len(a.proof) {
		return fmt.Errorf("merlin: proof exhausted reading %d byte(s): %w", n, ErrInvalidProof)
	}

	if _, err := (ByteUnit{}).Read(a.proof[a.cursor:a.cursor+n], out); err != nil {
		return fmt.Errorf("merlin: deserializing units: %w", err)
	}
	a.cursor += n

	return a.safe.absorb(out)
}

// PublicUnits absorbs units into the sponge without touching the read cursor, for
// data the verifier already knows independent of the proof bytes.
func (a *Arthur) PublicUnits(units []byte) error {
	return a.safe.absorb(units)
}

// FillChallengeUnits squeezes a verifier challenge into out, identically to
// Merlin.FillChallengeUnits.
func (a *Arthur) FillChallengeUnits(out []byte) error {
	return a.safe.squeeze(out)
}

// Ratchet performs an irreversible one-way compression of the sponge state.
func (a *Arthur) Ratchet() error {
	return a.safe.ratchet()
}

// Hint reads a length-prefixed blob from the cursor and returns it without touching
// the sponge. The next IO Pattern op must be a Hint.
func (a *Arthur) Hint() ([]byte, error) {
	if err := a.safe.consumeHint(); err != nil {
		return nil, err
	}

	const lengthPrefixSize = 4
	if a.cursor+lengthPrefixSize > len(a.proof) {
		return nil, fmt.Errorf("merlin: proof exhausted reading hint length: %w", ErrInvalidProof)
	}

	length := binary.LittleEndian.Uint32(a.proof[a.cursor : a.cursor+lengthPrefixSize])
	a.cursor += lengthPrefixSize

	end := a.cursor + int(length)
	if end < a.cursor || end > len(a.proof) {
		return nil, fmt.Errorf("merlin: proof exhausted reading %d byte hint: %w", length, ErrInvalidProof)
	}

	data := a.proof[a.cursor:end]
	a.cursor = end

	return data, nil
}

// Finalize reports whether the IO Pattern has been fully run; see Merlin.Finalize.
func (a *Arthur) Finalize() error {
	if !a.safe.done() {
		return fmt.Errorf("merlin: verification incomplete, %d op(s) remaining: %w", len(a.safe.queue), ErrInvalidIO)
	}
	return nil
}
