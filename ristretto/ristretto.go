// Package ristretto provides typed field/group extensions for Ristretto255 scalars
// and group elements, bridging them to the byte-oriented Merlin/Arthur transcript
// operations exactly as the reference implementation's dalek and ark plugins bridge
// their own scalar and group types: every typed call serializes to (or decodes
// from) a flat byte slice and drives the underlying Merlin.AddUnits/
// Arthur.FillNextUnits et al.
package ristretto

import (
	"fmt"

	"github.com/gtank/ristretto255"

	"github.com/codahale/merlin"
)

// ScalarSize is the canonical little-endian encoding length of a Ristretto255
// scalar, in bytes.
const ScalarSize = 32

// PointSize is the canonical compressed encoding length of a Ristretto255 group
// element, in bytes.
const PointSize = 32

// uniformBytesSize is the width ristretto255.Scalar.SetUniformBytes requires: a wide
// reduction input, independent of ScalarSize.
const uniformBytesSize = 64

// writer is satisfied by *merlin.Merlin.
type writer interface {
	AddUnits(units []byte) error
	PublicUnits(units []byte) error
	FillChallengeUnits(out []byte) error
}

// reader is satisfied by *merlin.Arthur.
type reader interface {
	FillNextUnits(out []byte) error
	PublicUnits(units []byte) error
	FillChallengeUnits(out []byte) error
}

var (
	_ writer = (*merlin.Merlin)(nil)
	_ reader = (*merlin.Arthur)(nil)
)

// AddScalars writes the canonical little-endian encoding of each scalar to the
// transcript and absorbs it into the sponge.
func AddScalars(w writer, scalars []*ristretto255.Scalar) error {
	return w.AddUnits(encodeScalars(scalars))
}

// PublicScalars absorbs each scalar's canonical encoding into the sponge without
// growing the transcript.
func PublicScalars(w writer, scalars []*ristretto255.Scalar) error {
	return w.PublicUnits(encodeScalars(scalars))
}

// NextScalars reads n scalars from the verifier's proof cursor, decoding each from
// its canonical encoding and rejecting any that are not a canonical representative
// (>= the group order, or with a non-minimal encoding).
func NextScalars(r reader, n int) ([]*ristretto255.Scalar, error) {
	buf := make([]byte, n*ScalarSize)
	if err := r.FillNextUnits(buf); err != nil {
		return nil, err
	}
	return decodeScalars(buf, n)
}

// ChallengeScalars squeezes n uniformly-distributed scalars from the sponge.
func ChallengeScalars(w writer, n int) ([]*ristretto255.Scalar, error) {
	buf := make([]byte, n*uniformBytesSize)
	if err := w.FillChallengeUnits(buf); err != nil {
		return nil, err
	}

	out := make([]*ristretto255.Scalar, n)
	for i := range n {
		s, err := ristretto255.NewScalar().SetUniformBytes(buf[i*uniformBytesSize : (i+1)*uniformBytesSize])
		if err != nil {
			// SetUniformBytes only fails on a malformed input length, which
			// can't happen here: it's an internal invariant violation, not a
			// proof-dependent error.
			panic(fmt.Sprintf("ristretto: challenge scalar reduction failed: %v", err))
		}
		out[i] = s
	}

	return out, nil
}

func encodeScalars(scalars []*ristretto255.Scalar) []byte {
	buf := make([]byte, 0, len(scalars)*ScalarSize)
	for _, s := range scalars {
		buf = append(buf, s.Bytes()...)
	}
	return buf
}

func decodeScalars(buf []byte, n int) ([]*ristretto255.Scalar, error) {
	out := make([]*ristretto255.Scalar, n)
	for i := range n {
		s, err := ristretto255.NewScalar().SetCanonicalBytes(buf[i*ScalarSize : (i+1)*ScalarSize])
		if err != nil {
			return nil, fmt.Errorf("ristretto: non-canonical scalar at index %d: %w", i, merlin.ErrSerialization)
		}
		out[i] = s
	}
	return out, nil
}

// AddPoints writes the canonical compressed encoding of each point to the
// transcript and absorbs it into the sponge. Points must already be valid
// Ristretto255 elements (the type itself guarantees prime-order-subgroup
// membership, so there is nothing further to validate on the writer side).
func AddPoints(w writer, points []*ristretto255.Element) error {
	return w.AddUnits(encodePoints(points))
}

// PublicPoints absorbs each point's canonical encoding into the sponge without
// growing the transcript.
func PublicPoints(w writer, points []*ristretto255.Element) error {
	return w.PublicUnits(encodePoints(points))
}

// NextPoints reads n points from the verifier's proof cursor, decoding and
// validating each: Ristretto255's canonical encoding check rejects any bytes that
// are not the unique representative of a point in the prime-order group, which
// subsumes both the on-curve and subgroup checks a general transcript protocol
// requires of its absorbed group elements.
func NextPoints(r reader, n int) ([]*ristretto255.Element, error) {
	buf := make([]byte, n*PointSize)
	if err := r.FillNextUnits(buf); err != nil {
		return nil, err
	}

	out := make([]*ristretto255.Element, n)
	for i := range n {
		e, err := ristretto255.NewElement().SetCanonicalBytes(buf[i*PointSize : (i+1)*PointSize])
		if err != nil {
			return nil, fmt.Errorf("ristretto: invalid point at index %d: %w", i, merlin.ErrSerialization)
		}
		out[i] = e
	}

	return out, nil
}

func encodePoints(points []*ristretto255.Element) []byte {
	buf := make([]byte, 0, len(points)*PointSize)
	for _, p := range points {
		buf = append(buf, p.Bytes()...)
	}
	return buf
}

// IOPattern wraps a *merlin.IOPattern with a builder method for every typed
// operation above, so a protocol declaring scalar/point absorbs and challenges
// never has to hand-compute byte counts.
type IOPattern struct {
	*merlin.IOPattern
}

// NewIOPattern wraps pattern for typed builder chaining.
func NewIOPattern(pattern *merlin.IOPattern) IOPattern {
	return IOPattern{pattern}
}

// AddScalars declares an Absorb of count scalars.
func (p IOPattern) AddScalars(count int, label string) IOPattern {
	p.Absorb(count*ScalarSize, label)
	return p
}

// AddPoints declares an Absorb of count points.
func (p IOPattern) AddPoints(count int, label string) IOPattern {
	p.Absorb(count*PointSize, label)
	return p
}

// ChallengeScalars declares a Squeeze sized for count uniform scalar challenges.
func (p IOPattern) ChallengeScalars(count int, label string) IOPattern {
	p.Squeeze(count*uniformBytesSize, label)
	return p
}

// ChallengeBytes declares a Squeeze of n raw challenge bytes.
func (p IOPattern) ChallengeBytes(n int, label string) IOPattern {
	p.Squeeze(n, label)
	return p
}

// Ratchet declares an irreversible one-way compression of the sponge state.
func (p IOPattern) Ratchet() IOPattern {
	p.IOPattern.Ratchet()
	return p
}
