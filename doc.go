// Package merlin implements a Fiat–Shamir transcript engine for public-coin
// interactive proof protocols.
//
// It converts an interactive proof — prover sends messages, verifier sends uniformly
// random challenges — into a non-interactive one, by deriving every verifier
// challenge deterministically from the prover's prior messages through a
// cryptographic sponge. The core does not implement any particular proof system
// (Schnorr, Bulletproofs, ...); it is the scaffolding under which arbitrary
// public-coin protocols can be written safely: an [IOPattern] pre-declares the exact
// sequence of absorbs, squeezes, ratchets, and hints a protocol will perform, and a
// [SAFE] stack machine checks every sponge operation against it at runtime, so the
// prover ([Merlin]) and verifier ([Arthur]) can never silently diverge.
//
// Concrete sponge permutations (package duplex/keccak, duplex/blake2x) and concrete
// field/group arithmetic (package ristretto) are collaborators reached only through
// the [DuplexSponge] and [Unit] contracts; the core has no opinion on which one a
// protocol uses.
package merlin
