package merlin

// DuplexSponge is the abstract sponge the SAFE layer drives. "Unchecked" means no
// IO-Pattern validation is performed; [SAFE] supplies that.
//
// An AbsorbUnchecked call followed by a SqueezeUnchecked call with no intervening
// RatchetUnchecked must behave as a single well-defined permutation of sponge state
// — no buffering across that boundary beyond what the sponge itself promises.
// RatchetUnchecked must be one-way: given the post-ratchet state, recovering the
// pre-ratchet state must be infeasible.
type DuplexSponge interface {
	AbsorbUnchecked(units []byte)
	SqueezeUnchecked(out []byte)
	RatchetUnchecked()
}

// SpongeFactory produces a zero-initialized DuplexSponge. [SAFE] calls it exactly
// once, at construction, to get the sponge it drives for the lifetime of a Merlin or
// Arthur.
type SpongeFactory func() DuplexSponge
