package merlin

import "io"

// proverRand is a transcript-bound CSPRNG: an independent sponge, seeded by an OS
// CSPRNG and by every unit the prover ever absorbs into its main sponge.
//
// Even if the OS randomness source is weak, prover randomness remains unpredictable
// to an adversary who knows only the transcript; and since every call ratchets the
// sponge, prior output can't be used to predict or recover future output (or vice
// versa).
type proverRand struct {
	sponge DuplexSponge
	os     io.Reader
}

func newProverRand(factory SpongeFactory, osRand io.Reader, domainSeparator string) *proverRand {
	sponge := factory()
	sponge.AbsorbUnchecked([]byte(domainSeparator))
	return &proverRand{sponge: sponge, os: osRand}
}

// Read implements io.Reader. Each call draws up to 32 bytes from the OS CSPRNG into
// the head of dest, absorbs them into the CSPRNG sponge, squeezes len(dest) bytes
// from the sponge into dest (overwriting the OS bytes), and ratchets the sponge.
func (r *proverRand) Read(dest []byte) (int, error) {
	n := min(len(dest), 32)
	if n > 0 {
		if _, err := io.ReadFull(r.os, dest[:n]); err != nil {
			return 0, err
		}
		r.sponge.AbsorbUnchecked(dest[:n])
	}

	r.sponge.SqueezeUnchecked(dest)
	r.sponge.RatchetUnchecked()

	return len(dest), nil
}

// absorbTranscript folds data the prover wrote to its public transcript into the
// CSPRNG sponge, so that prover randomness also depends on all data absorbed so far.
func (r *proverRand) absorbTranscript(data []byte) {
	r.sponge.AbsorbUnchecked(data)
}
