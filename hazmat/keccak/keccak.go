// Package keccak provides a pure-Go implementation of the Keccak-p[1600] family of
// permutations, as specified in FIPS 202 and generalized by the Keccak-p definition
// used by TurboSHAKE, KT128, and other reduced-round Keccak constructions.
package keccak

import "encoding/binary"

// roundConstants is the full 24-round constant schedule for Keccak-p[1600]. A
// reduced-round permutation uses the last nr entries of this table.
var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rho rotation offsets. The table is laid out [y][x]: lane (x,y) rotates by
// rho[y][x].
var rho = [5][5]uint{
	{0, 1, 62, 28, 27},
	{36, 44, 6, 55, 20},
	{3, 10, 43, 25, 39},
	{41, 45, 15, 21, 8},
	{18, 2, 61, 56, 14},
}

// P1600 applies the full 24-round Keccak-p[1600] permutation to state.
func P1600(state *[200]byte) {
	permute(state, 24)
}

// P1600_12 applies the reduced, 12-round Keccak-p[1600,12] permutation used by
// TurboSHAKE-family constructions.
func P1600_12(state *[200]byte) {
	permute(state, 12)
}

// permute applies the last nr rounds of the Keccak-p[1600] round schedule.
func permute(state *[200]byte, nr int) {
	var a [5][5]uint64
	for x := range 5 {
		for y := range 5 {
			a[x][y] = binary.LittleEndian.Uint64(state[8*(x+5*y):])
		}
	}

	for round := 24 - nr; round < 24; round++ {
		// Theta.
		var c [5]uint64
		for x := range 5 {
			c[x] = a[x][0] ^ a[x][1] ^ a[x][2] ^ a[x][3] ^ a[x][4]
		}

		var d [5]uint64
		for x := range 5 {
			d[x] = c[(x+4)%5] ^ rotl(c[(x+1)%5], 1)
		}

		for x := range 5 {
			for y := range 5 {
				a[x][y] ^= d[x]
			}
		}

		// Rho and pi.
		var b [5][5]uint64
		for x := range 5 {
			for y := range 5 {
				b[y][(2*x+3*y)%5] = rotl(a[x][y], rho[y][x])
			}
		}

		// Chi.
		for x := range 5 {
			for y := range 5 {
				a[x][y] = b[x][y] ^ (^b[(x+1)%5][y] & b[(x+2)%5][y])
			}
		}

		// Iota.
		a[0][0] ^= roundConstants[round]
	}

	for x := range 5 {
		for y := range 5 {
			binary.LittleEndian.PutUint64(state[8*(x+5*y):], a[x][y])
		}
	}
}

func rotl(x uint64, n uint) uint64 {
	return x<<n | x>>(64-n)
}
