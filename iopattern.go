package merlin

import (
	"strconv"
	"strings"
)

const (
	sepByte   byte = 0x00 // separates the domain separator and each op from the next.
	labelByte byte = 0x01 // separates an op's count from its (optional) label.
)

// IOPattern is a pre-declared, domain-separated, type-tagged description of the
// absorb/squeeze/ratchet/hint operations a protocol will perform. It is the contract
// both prover and verifier build their SAFE stack machines from.
//
// IOPattern is a builder: each method appends an op (merging consecutive Absorbs or
// Squeezes into one) and returns the same *IOPattern for chaining. Once passed to
// [IOPattern.ToMerlin] or [IOPattern.ToArthur], treat it as immutable — SAFE copies
// its op list at construction, so further mutation of the pattern afterward does not
// affect an already-constructed Merlin or Arthur, but sharing a single IOPattern
// across many Merlin/Arthur instances (the intended use) requires not mutating it
// concurrently with that use.
type IOPattern struct {
	domainSeparator string
	ops             []op
}

// NewIOPattern returns an empty IOPattern with the given domain separator. The
// domain separator must be non-empty and must not contain the IO Pattern's internal
// separator bytes; violating either is a construction-time error (panic), not a
// runtime one.
func NewIOPattern(domainSeparator string) *IOPattern {
	if domainSeparator == "" {
		panic("merlin: domain separator must be non-empty")
	}
	checkLabel(domainSeparator)
	return &IOPattern{domainSeparator: domainSeparator}
}

func checkLabel(label string) {
	if strings.IndexByte(label, sepByte) >= 0 || strings.IndexByte(label, labelByte) >= 0 {
		panic("merlin: label contains a reserved IO pattern separator byte")
	}
}

// Absorb declares that the next n units of prover-to-verifier data will be absorbed.
func (p *IOPattern) Absorb(n int, label string) *IOPattern {
	return p.push(absorbOp(n, label))
}

// Squeeze declares that the next n units will be pulled from the sponge as a
// verifier challenge.
func (p *IOPattern) Squeeze(n int, label string) *IOPattern {
	return p.push(squeezeOp(n, label))
}

// Ratchet declares an irreversible one-way compression of the sponge state.
func (p *IOPattern) Ratchet() *IOPattern {
	return p.push(ratchetOp())
}

// Hint declares an out-of-band auxiliary blob exchanged via the byte transcript only
// (never absorbed into the sponge).
func (p *IOPattern) Hint(label string) *IOPattern {
	return p.push(hintOp(label))
}

func (p *IOPattern) push(next op) *IOPattern {
	if next.label != "" {
		checkLabel(next.label)
	}
	if n := len(p.ops); n > 0 && p.ops[n-1].mergesWith(next) {
		p.ops[n-1] = p.ops[n-1].merged(next)
	} else {
		p.ops = append(p.ops, next)
	}
	return p
}

// asBytes is the canonical byte serialization used to initialize sponges: the
// domain separator, then each op as SEP || tag || [count] || [LABEL || label],
// joined in declaration order. Changing any byte of this form — including a label —
// changes every derived challenge, because it is absorbed into the sponge's initial
// state.
func (p *IOPattern) asBytes() []byte {
	var buf []byte
	buf = append(buf, p.domainSeparator...)
	for _, o := range p.ops {
		buf = append(buf, sepByte)
		buf = o.appendTo(buf)
	}
	return buf
}

func (o op) appendTo(buf []byte) []byte {
	buf = append(buf, o.kind.tag())
	switch o.kind {
	case opAbsorb, opSqueeze:
		buf = strconv.AppendInt(buf, int64(o.count), 10)
	case opRatchet:
		// No count, no label slot in the reference grammar for Ratchet.
		return buf
	case opHint:
		// No count.
	}
	if o.label != "" {
		buf = append(buf, labelByte)
		buf = append(buf, o.label...)
	}
	return buf
}

// clone returns a deep copy of the pattern's op list, for SAFE's private stack.
func (p *IOPattern) clone() []op {
	ops := make([]op, len(p.ops))
	copy(ops, p.ops)
	return ops
}

// ToMerlin returns a fresh prover state for this IO Pattern, using the default
// configuration (a Keccak-p[1600,12] sponge and crypto/rand.Reader as the OS
// randomness source).
func (p *IOPattern) ToMerlin() *Merlin {
	return p.ToMerlinWithConfig(Config{})
}

// ToMerlinWithConfig returns a fresh prover state configured per cfg (see Config for
// the recognized options and their defaults).
func (p *IOPattern) ToMerlinWithConfig(cfg Config) *Merlin {
	return newMerlin(p, cfg)
}

// ToArthur returns a fresh verifier state for this IO Pattern over the given proof
// bytes, using the default sponge configuration.
func (p *IOPattern) ToArthur(proof []byte) *Arthur {
	return p.ToArthurWithConfig(proof, Config{})
}

// ToArthurWithConfig returns a fresh verifier state configured per cfg.
func (p *IOPattern) ToArthurWithConfig(proof []byte, cfg Config) *Arthur {
	return newArthur(p, proof, cfg)
}
