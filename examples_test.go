package merlin_test

import (
	"fmt"

	"github.com/codahale/merlin"
)

// This example walks a minimal commit/challenge protocol end to end: a prover
// absorbs a statement, squeezes a verifier challenge, and a verifier replays the
// same steps against the prover's transcript to recover an identical challenge.
func Example() {
	pattern := merlin.NewIOPattern("example.com/commit-challenge").
		Absorb(5, "statement").
		Squeeze(16, "challenge")

	prover := pattern.ToMerlin()
	if err := prover.AddUnits([]byte("hello")); err != nil {
		fmt.Println("prover error:", err)
		return
	}

	proverChallenge := make([]byte, 16)
	if err := prover.FillChallengeUnits(proverChallenge); err != nil {
		fmt.Println("prover error:", err)
		return
	}

	if err := prover.Finalize(); err != nil {
		fmt.Println("prover error:", err)
		return
	}

	verifier := pattern.ToArthur(prover.Transcript())
	statement := make([]byte, 5)
	if err := verifier.FillNextUnits(statement); err != nil {
		fmt.Println("verifier error:", err)
		return
	}

	verifierChallenge := make([]byte, 16)
	if err := verifier.FillChallengeUnits(verifierChallenge); err != nil {
		fmt.Println("verifier error:", err)
		return
	}

	if err := verifier.Finalize(); err != nil {
		fmt.Println("verifier error:", err)
		return
	}

	fmt.Println(string(statement))
	fmt.Println(string(verifierChallenge) == string(proverChallenge))
	// Output:
	// hello
	// true
}

// This example shows a Hint exchanged alongside an ordinary Absorb: the hint
// travels through the transcript bytes but never touches the sponge, so it can
// carry auxiliary data (e.g. a cached computation) without affecting any
// challenge derived afterward.
func Example_hint() {
	pattern := merlin.NewIOPattern("example.com/hint").
		Hint("aux").
		Squeeze(8, "challenge")

	prover := pattern.ToMerlin()
	if err := prover.Hint([]byte("precomputed table index 7")); err != nil {
		fmt.Println("prover error:", err)
		return
	}

	challenge := make([]byte, 8)
	if err := prover.FillChallengeUnits(challenge); err != nil {
		fmt.Println("prover error:", err)
		return
	}

	verifier := pattern.ToArthur(prover.Transcript())
	aux, err := verifier.Hint()
	if err != nil {
		fmt.Println("verifier error:", err)
		return
	}

	fmt.Println(string(aux))
	// Output:
	// precomputed table index 7
}
