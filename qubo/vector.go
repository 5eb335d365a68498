package qubo

import (
	"math/rand"
	"strings"
)

// Vector is a binary assignment, one entry per variable, each 0 or 1.
type Vector []uint8

// Clone returns an independent copy.
func (v Vector) Clone() Vector { return append(Vector(nil), v...) }

// Flip toggles bit i in place. Any non-zero entry counts as set and becomes 0.
func (v Vector) Flip(i int) {
	if v[i] != 0 {
		v[i] = 0
	} else {
		v[i] = 1
	}
}

// NonBinary returns the index of the first entry other than 0 or 1, or -1.
func (v Vector) NonBinary() int {
	for i, b := range v {
		if b > 1 {
			return i
		}
	}

	return -1
}

// Ones returns the number of set bits.
func (v Vector) Ones() int {
	n := 0
	for _, b := range v {
		if b != 0 {
			n++
		}
	}

	return n
}

// Equal reports whether v and w have the same length and bits.
func (v Vector) Equal(w Vector) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if v[i] != w[i] {
			return false
		}
	}

	return true
}

// String renders the bits as a 0/1 string, variable 0 first.
func (v Vector) String() string {
	var sb strings.Builder
	sb.Grow(len(v))
	for _, b := range v {
		if b != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}

// RandomVector draws n independent fair bits from r.
func RandomVector(n int, r *rand.Rand) Vector {
	v := make(Vector, n)
	for i := range v {
		v[i] = uint8(r.Intn(2))
	}

	return v
}

// FromState decodes an n-bit state index, most significant bit first:
// variable i takes bit (n−1−i) of state. n must be at most 64.
func FromState(state uint64, n int) Vector {
	v := make(Vector, n)
	for i := 0; i < n; i++ {
		v[i] = uint8((state >> uint(n-1-i)) & 1)
	}

	return v
}
