// Package qnum implements the probabilistic decimal value used for route
// selection and channel state: a fixed-width sequence of digits, each carrying
// an independent weighted distribution over the symbols 0..9.
package qnum

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// Base is the size of the digit alphabet.
const Base = 10

// Common errors for value construction
var (
	ErrEmptySuperposition = errors.New("superposition has no states")
	ErrWidthMismatch      = errors.New("superposed states differ in width")
	ErrInvalidDigit       = errors.New("digit out of range")
	ErrZeroWeight         = errors.New("total weight is zero")
)

// Distribution is a normalized weight vector over the digit alphabet.
type Distribution [Base]float64

// State is one weighted basis sequence of a superposition.
type State struct {
	Digits []uint8
	Weight float64
}

// QNum is a probabilistic decimal value. The zero value is an empty value of
// width 0. A QNum is not safe for concurrent mutation; owners that share one
// must serialize Measure and Entangle themselves.
type QNum struct {
	digits []Distribution
}

// FromDigits builds a classical value that measures to d with certainty.
// Digits outside 0..9 are reduced modulo Base.
func FromDigits(d []uint8) *QNum {
	q := &QNum{digits: make([]Distribution, len(d))}
	for i, v := range d {
		q.digits[i][v%Base] = 1
	}
	return q
}

// Zero returns the classical all-zero value of width n.
func Zero(n int) *QNum {
	if n < 0 {
		n = 0
	}
	return FromDigits(make([]uint8, n))
}

// FromSuperposed builds a value from weighted basis sequences. Weights are
// accumulated per digit position and normalized, so the result is the product
// of the per-position marginals.
func FromSuperposed(states []State) (*QNum, error) {
	if len(states) == 0 {
		return nil, ErrEmptySuperposition
	}

	width := len(states[0].Digits)
	q := &QNum{digits: make([]Distribution, width)}

	for _, s := range states {
		if len(s.Digits) != width {
			return nil, fmt.Errorf("%w: %d != %d", ErrWidthMismatch, len(s.Digits), width)
		}
		if s.Weight < 0 || math.IsNaN(s.Weight) {
			return nil, fmt.Errorf("invalid weight %v", s.Weight)
		}
		for i, d := range s.Digits {
			if d >= Base {
				return nil, fmt.Errorf("%w: %d", ErrInvalidDigit, d)
			}
			q.digits[i][d] += s.Weight
		}
	}

	for i := range q.digits {
		if !normalize(&q.digits[i]) {
			return nil, ErrZeroWeight
		}
	}
	return q, nil
}

// Len returns the number of digit positions.
func (q *QNum) Len() int {
	return len(q.digits)
}

// Clone returns an independent copy.
func (q *QNum) Clone() *QNum {
	c := &QNum{digits: make([]Distribution, len(q.digits))}
	copy(c.digits, q.digits)
	return c
}

// Probabilities returns the distribution of digit position i.
func (q *QNum) Probabilities(i int) Distribution {
	return q.digits[i]
}

// IsClassical reports whether every position is certain.
func (q *QNum) IsClassical() bool {
	for _, d := range q.digits {
		certain := false
		for _, p := range d {
			if p == 1 {
				certain = true
				break
			}
		}
		if !certain {
			return false
		}
	}
	return true
}

// Measure samples every position and collapses the value onto the outcome.
func (q *QNum) Measure() []uint8 {
	out := make([]uint8, len(q.digits))
	for i := range q.digits {
		out[i] = sample(&q.digits[i])
		q.digits[i] = Distribution{}
		q.digits[i][out[i]] = 1
	}
	return out
}

// Entropy returns the sum of the per-position Shannon entropies in nats.
func (q *QNum) Entropy() float64 {
	var h float64
	for _, d := range q.digits {
		for _, p := range d {
			if p > 0 {
				h -= p * math.Log(p)
			}
		}
	}
	return h
}

// Equal reports whether both values have the same width and every
// probability differs by at most eps.
func (q *QNum) Equal(other *QNum, eps float64) bool {
	if q.Len() != other.Len() {
		return false
	}
	for i := range q.digits {
		for s := 0; s < Base; s++ {
			if math.Abs(q.digits[i][s]-other.digits[i][s]) > eps {
				return false
			}
		}
	}
	return true
}

// String renders the most likely digit of each position.
func (q *QNum) String() string {
	var b strings.Builder
	for _, d := range q.digits {
		best := 0
		for s := 1; s < Base; s++ {
			if d[s] > d[best] {
				best = s
			}
		}
		b.WriteByte(byte('0' + best))
	}
	return b.String()
}

// Entangle correlates a and b position by position. Afterwards a holds the
// distribution of (a+b) mod 10 and b holds (a-b) mod 10, both computed from the
// values before the call. Entangling with a certain zero leaves a unchanged,
// and the entropy of a never decreases. Positions beyond the shorter width are
// left untouched. When a and b are the same value it ends up holding the sum
// (2a mod 10).
func Entangle(a, b *QNum) {
	n := min(a.Len(), b.Len())
	for i := 0; i < n; i++ {
		pa, pb := a.digits[i], b.digits[i]
		var sum, diff Distribution
		for x := 0; x < Base; x++ {
			if pa[x] == 0 {
				continue
			}
			for y := 0; y < Base; y++ {
				w := pa[x] * pb[y]
				if w == 0 {
					continue
				}
				sum[(x+y)%Base] += w
				diff[(x-y+Base)%Base] += w
			}
		}
		b.digits[i] = diff
		a.digits[i] = sum
	}
}

// Add returns the distribution of the decimal sum a+b. Position 0 is the most
// significant digit. The result has the width of the wider operand and the
// carry out of the most significant position is discarded.
func Add(a, b *QNum) *QNum {
	width := max(a.Len(), b.Len())
	out := &QNum{digits: make([]Distribution, width)}
	if width == 0 {
		return out
	}

	// carry[c] is the probability of carrying c into the current position.
	carry := [2]float64{1, 0}
	for pos := 0; pos < width; pos++ {
		da := digitFromRight(a, pos)
		db := digitFromRight(b, pos)

		var digit Distribution
		var next [2]float64
		for c := 0; c < 2; c++ {
			if carry[c] == 0 {
				continue
			}
			for x := 0; x < Base; x++ {
				if da[x] == 0 {
					continue
				}
				for y := 0; y < Base; y++ {
					w := carry[c] * da[x] * db[y]
					if w == 0 {
						continue
					}
					s := x + y + c
					digit[s%Base] += w
					next[s/Base] += w
				}
			}
		}
		out.digits[width-1-pos] = digit
		carry = next
	}
	return out
}

// digitFromRight returns the distribution at offset pos from the least
// significant digit, or a certain zero past the value's width.
func digitFromRight(q *QNum, pos int) Distribution {
	i := q.Len() - 1 - pos
	if i < 0 {
		return Distribution{1}
	}
	return q.digits[i]
}

func normalize(d *Distribution) bool {
	var total float64
	for _, p := range d {
		total += p
	}
	if total == 0 {
		return false
	}
	for s := range d {
		d[s] /= total
	}
	return true
}

func sample(d *Distribution) uint8 {
	r := rand.Float64()
	var acc float64
	last := 0
	for s, p := range d {
		if p == 0 {
			continue
		}
		acc += p
		last = s
		if r < acc {
			return uint8(s)
		}
	}
	return uint8(last)
}
