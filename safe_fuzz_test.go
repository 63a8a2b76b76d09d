package merlin_test

import (
	"bytes"
	"fmt"
	"testing"

	fuzz "github.com/trailofbits/go-fuzz-utils"

	"github.com/codahale/merlin"
	"github.com/codahale/merlin/internal/testdata"
)

// FuzzMerlinDivergence generates a random sequence of operations, builds a matching
// IOPattern, and drives two independent Merlin instances through it in parallel,
// checking that their transcripts and every squeezed challenge agree. Any
// divergence would mean two provers running the identical protocol over identical
// inputs could produce different transcripts — breaking the whole premise that a
// verifier can replay a prover's steps.
func FuzzMerlinDivergence(f *testing.F) {
	drbg := testdata.New("merlin divergence")
	for range 10 {
		f.Add(drbg.Data(1024))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		tp, err := fuzz.NewTypeProvider(data)
		if err != nil {
			t.Skip(err)
		}

		opCount, err := tp.GetUint16()
		if err != nil {
			t.Skip(err)
		}

		type step struct {
			kind  byte // 0=absorb, 1=squeeze, 2=ratchet, 3=hint
			label string
			data  []byte
			n     int
		}

		var steps []step
		pattern := merlin.NewIOPattern("merlin-divergence-fuzz")

		for range opCount % 50 {
			kindRaw, err := tp.GetByte()
			if err != nil {
				t.Skip(err)
			}
			label, err := tp.GetString()
			if err != nil {
				t.Skip(err)
			}

			const kindCount = 4
			switch kind := kindRaw % kindCount; kind {
			case 0: // absorb
				input, err := tp.GetBytes()
				if err != nil {
					t.Skip(err)
				}
				pattern.Absorb(len(input), label)
				steps = append(steps, step{kind: 0, label: label, data: input})
			case 1: // squeeze
				n, err := tp.GetUint16()
				if err != nil || n == 0 {
					t.Skip(err)
				}
				pattern.Squeeze(int(n), label)
				steps = append(steps, step{kind: 1, label: label, n: int(n)})
			case 2: // ratchet
				pattern.Ratchet()
				steps = append(steps, step{kind: 2})
			case 3: // hint
				input, err := tp.GetBytes()
				if err != nil {
					t.Skip(err)
				}
				pattern.Hint(label)
				steps = append(steps, step{kind: 3, label: label, data: input})
			default:
				panic(fmt.Sprintf("unknown operation kind: %v", kind))
			}
		}

		a := pattern.ToMerlin()
		b := pattern.ToMerlin()

		for _, s := range steps {
			switch s.kind {
			case 0:
				if err := a.AddUnits(s.data); err != nil {
					t.Fatalf("a.AddUnits: %v", err)
				}
				if err := b.AddUnits(s.data); err != nil {
					t.Fatalf("b.AddUnits: %v", err)
				}
			case 1:
				outA, outB := make([]byte, s.n), make([]byte, s.n)
				if err := a.FillChallengeUnits(outA); err != nil {
					t.Fatalf("a.FillChallengeUnits: %v", err)
				}
				if err := b.FillChallengeUnits(outB); err != nil {
					t.Fatalf("b.FillChallengeUnits: %v", err)
				}
				if !bytes.Equal(outA, outB) {
					t.Fatalf("divergent challenge outputs: %x != %x", outA, outB)
				}
			case 2:
				if err := a.Ratchet(); err != nil {
					t.Fatalf("a.Ratchet: %v", err)
				}
				if err := b.Ratchet(); err != nil {
					t.Fatalf("b.Ratchet: %v", err)
				}
			case 3:
				if err := a.Hint(s.data); err != nil {
					t.Fatalf("a.Hint: %v", err)
				}
				if err := b.Hint(s.data); err != nil {
					t.Fatalf("b.Hint: %v", err)
				}
			}
		}

		if !bytes.Equal(a.Transcript(), b.Transcript()) {
			t.Fatalf("divergent final transcripts: %x != %x", a.Transcript(), b.Transcript())
		}
	})
}

// FuzzArthurReplay generates a random prover run, then replays it through an Arthur
// over the prover's own transcript, checking that the verifier recovers identical
// challenges and completes without error. This is the core soundness-adjacent
// property the whole split between Merlin and Arthur exists to guarantee: anything
// the prover legitimately produced, the verifier can legitimately walk.
func FuzzArthurReplay(f *testing.F) {
	drbg := testdata.New("arthur replay")
	for range 10 {
		f.Add(drbg.Data(1024))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		tp, err := fuzz.NewTypeProvider(data)
		if err != nil {
			t.Skip(err)
		}

		opCount, err := tp.GetUint16()
		if err != nil {
			t.Skip(err)
		}

		type step struct {
			kind byte // 0=absorb, 1=squeeze, 2=ratchet
			data []byte
			n    int
		}

		var steps []step
		pattern := merlin.NewIOPattern("arthur-replay-fuzz")

		for range opCount % 50 {
			kindRaw, err := tp.GetByte()
			if err != nil {
				t.Skip(err)
			}
			label, err := tp.GetString()
			if err != nil {
				t.Skip(err)
			}

			const kindCount = 3
			switch kind := kindRaw % kindCount; kind {
			case 0:
				input, err := tp.GetBytes()
				if err != nil {
					t.Skip(err)
				}
				pattern.Absorb(len(input), label)
				steps = append(steps, step{kind: 0, data: input})
			case 1:
				n, err := tp.GetUint16()
				if err != nil || n == 0 {
					t.Skip(err)
				}
				pattern.Squeeze(int(n), label)
				steps = append(steps, step{kind: 1, n: int(n)})
			case 2:
				pattern.Ratchet()
				steps = append(steps, step{kind: 2})
			}
		}

		prover := pattern.ToMerlin()
		var proverChallenges [][]byte

		for _, s := range steps {
			switch s.kind {
			case 0:
				if err := prover.AddUnits(s.data); err != nil {
					t.Fatalf("AddUnits: %v", err)
				}
			case 1:
				out := make([]byte, s.n)
				if err := prover.FillChallengeUnits(out); err != nil {
					t.Fatalf("FillChallengeUnits: %v", err)
				}
				proverChallenges = append(proverChallenges, out)
			case 2:
				if err := prover.Ratchet(); err != nil {
					t.Fatalf("Ratchet: %v", err)
				}
			}
		}

		if err := prover.Finalize(); err != nil {
			t.Fatalf("Finalize: %v", err)
		}

		verifier := pattern.ToArthur(prover.Transcript())
		var verifierChallenges [][]byte

		for _, s := range steps {
			switch s.kind {
			case 0:
				out := make([]byte, len(s.data))
				if err := verifier.FillNextUnits(out); err != nil {
					t.Fatalf("FillNextUnits: %v", err)
				}
				if !bytes.Equal(out, s.data) {
					t.Fatalf("FillNextUnits returned %x, want %x", out, s.data)
				}
			case 1:
				out := make([]byte, s.n)
				if err := verifier.FillChallengeUnits(out); err != nil {
					t.Fatalf("FillChallengeUnits: %v", err)
				}
				verifierChallenges = append(verifierChallenges, out)
			case 2:
				if err := verifier.Ratchet(); err != nil {
					t.Fatalf("Ratchet: %v", err)
				}
			}
		}

		if err := verifier.Finalize(); err != nil {
			t.Fatalf("Finalize: %v", err)
		}

		if len(verifierChallenges) != len(proverChallenges) {
			t.Fatalf("got %d challenges, want %d", len(verifierChallenges), len(proverChallenges))
		}
		for i := range proverChallenges {
			if !bytes.Equal(proverChallenges[i], verifierChallenges[i]) {
				t.Fatalf("challenge %d diverged: %x != %x", i, verifierChallenges[i], proverChallenges[i])
			}
		}
	})
}
