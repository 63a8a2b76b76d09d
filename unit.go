package merlin

import "io"

// Unit is the contract for a single symbol a [DuplexSponge] consumes: a fixed
// per-unit byte size, and a serialize/deserialize pair into a flat byte buffer.
// [Merlin.AddUnits] and [Arthur.FillNextUnits] both serialize and deserialize
// through [ByteUnit], the core's sole concrete Unit.
//
// A prime-field Unit — byte size equal to the modulus's byte length, canonical
// little-endian encoding, rejecting non-canonical values on read — would satisfy
// the same contract for an algebraic sponge (Poseidon, Anemoi), but every concrete
// DuplexSponge this module provides operates over bytes, and package ristretto's
// typed field/group extensions bridge scalars and points to bytes before they
// ever reach a sponge. A second Unit is therefore a documented extension point,
// not a shipped type.
type Unit interface {
	// ByteSize reports the number of bytes used to encode a single unit.
	ByteSize() int
	// Write serializes units into out, which must have length >= len(units)*ByteSize().
	Write(units, out []byte) (int, error)
	// Read deserializes len(units) units from in into units.
	Read(in, units []byte) (int, error)
}

// ByteUnit is the canonical Unit: a single byte, with an identity encoding.
type ByteUnit struct{}

// ByteSize returns 1.
func (ByteUnit) ByteSize() int { return 1 }

// Write copies units into out.
func (ByteUnit) Write(units, out []byte) (int, error) {
	if len(out) < len(units) {
		return 0, io.ErrShortBuffer
	}
	return copy(out, units), nil
}

// Read copies len(units) bytes from in into units.
func (ByteUnit) Read(in, units []byte) (int, error) {
	if len(in) < len(units) {
		return 0, io.ErrShortBuffer
	}
	return copy(units, in), nil
}
