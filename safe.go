package merlin

import "fmt"

// SAFE is the stack-machine layer that runs alongside a DuplexSponge, consuming IO
// Pattern ops as operations occur and erroring on any divergence from the declared
// pattern.
//
// Its state is the remaining op queue: construction copies the IO Pattern's ops in
// order, and each absorb/squeeze/ratchet pops from (or partially decrements) the
// front. An empty queue means the protocol is complete; any further operation is an
// error. Hint ops are bookkept here (so the I1 invariant — the queue after op k
// equals the IO Pattern tail after op k — holds across Hints too) but are never
// passed to the sponge; consumeHint is called by the typed byte layer, not by
// absorb/squeeze/ratchet.
type SAFE struct {
	sponge DuplexSponge
	queue  []op
}

// newSAFE constructs a SAFE from an IO Pattern: it creates a fresh sponge via
// factory, absorbs the pattern's canonical byte serialization into it, ratchets, and
// copies the pattern's op list into its queue.
func newSAFE(pattern *IOPattern, factory SpongeFactory) *SAFE {
	sponge := factory()
	sponge.AbsorbUnchecked(pattern.asBytes())
	sponge.RatchetUnchecked()
	return &SAFE{sponge: sponge, queue: pattern.clone()}
}

func (s *SAFE) head() *op {
	if len(s.queue) == 0 {
		return nil
	}
	return &s.queue[0]
}

// absorb consumes n units of Absorb from the head of the queue and feeds units to
// the sponge. A zero-length absorb is a no-op that still requires the head to be a
// matching, non-exhausted Absorb op.
func (s *SAFE) absorb(units []byte) error {
	n := len(units)
	h := s.head()
	if h == nil {
		return newIOError(nil, fmt.Sprintf("absorb(%d)", n))
	}
	if h.kind != opAbsorb || h.count < n {
		return newIOError(h, fmt.Sprintf("absorb(%d)", n))
	}

	s.sponge.AbsorbUnchecked(units)
	s.advance(n)
	return nil
}

// squeeze is symmetric to absorb, against Squeeze ops.
func (s *SAFE) squeeze(out []byte) error {
	n := len(out)
	h := s.head()
	if h == nil {
		return newIOError(nil, fmt.Sprintf("squeeze(%d)", n))
	}
	if h.kind != opSqueeze || h.count < n {
		return newIOError(h, fmt.Sprintf("squeeze(%d)", n))
	}

	s.sponge.SqueezeUnchecked(out)
	s.advance(n)
	return nil
}

// advance decrements (or pops) the head op after a successful absorb/squeeze of n
// units. n == 0 never pops: a zero-length call doesn't count against the head's
// remaining units.
func (s *SAFE) advance(n int) {
	if n == 0 {
		return
	}
	if s.queue[0].count == n {
		s.queue = s.queue[1:]
	} else {
		s.queue[0].count -= n
	}
}

// ratchet consumes a Ratchet op from the head of the queue and ratchets the sponge.
func (s *SAFE) ratchet() error {
	h := s.head()
	if h == nil {
		return newIOError(nil, "ratchet")
	}
	if h.kind != opRatchet {
		return newIOError(h, "ratchet")
	}

	s.queue = s.queue[1:]
	s.sponge.RatchetUnchecked()
	return nil
}

// consumeHint pops a Hint op from the head of the queue without touching the
// sponge.
func (s *SAFE) consumeHint() error {
	h := s.head()
	if h == nil {
		return newIOError(nil, "hint")
	}
	if h.kind != opHint {
		return newIOError(h, "hint")
	}

	s.queue = s.queue[1:]
	return nil
}

// done reports whether the IO Pattern has been fully consumed.
func (s *SAFE) done() bool {
	return len(s.queue) == 0
}
