package generative

import (
	"math"
	"strconv"
)

// The recurrence constants are load-bearing: every composition ever minted
// was generated with this exact LCG, so they can never change.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Generator is a deterministic pseudo-random stream derived from a seed.
// It owns its evolving state, so concurrent compositions each construct
// their own Generator and never interfere.
type Generator struct {
	state uint64
}

// NewGenerator projects the 0x-prefixed hex seed into the initial numeric
// state: the first eight hex digits after the prefix, parsed base-16. Any
// input too short or non-hex projects to zero and still yields a valid,
// deterministic stream.
func NewGenerator(seed string) *Generator {
	var state uint64
	if len(seed) >= 10 {
		if v, err := strconv.ParseUint(seed[2:10], 16, 64); err == nil {
			state = v
		}
	}

	return &Generator{state: state}
}

// Next advances the state and returns a value in [0, 1).
func (g *Generator) Next() float64 {
	g.state = (g.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(g.state) / lcgModulus
}

// Range returns a value in [min, max).
func (g *Generator) Range(min, max float64) float64 {
	return min + g.Next()*(max-min)
}

func (g *Generator) Boolean(probability float64) bool {
	return g.Next() < probability
}

// Integer returns a value in [min, max], both inclusive.
func (g *Generator) Integer(min, max int) int {
	return int(math.Floor(g.Range(float64(min), float64(max+1))))
}

// Choice draws one element, or the zero value for an empty list.
func Choice[T any](g *Generator, list []T) T {
	var zero T
	if len(list) == 0 {
		return zero
	}

	return list[int(g.Next()*float64(len(list)))]
}

// Choices draws count distinct elements without replacement, in first-draw
// order. Count is clamped to the list length.
func Choices[T any](g *Generator, list []T, count int) []T {
	if count > len(list) {
		count = len(list)
	}
	if count <= 0 {
		return nil
	}

	drawn := make(map[int]bool, count)
	result := make([]T, 0, count)
	for len(result) < count {
		i := int(g.Next() * float64(len(list)))
		if !drawn[i] {
			drawn[i] = true
			result = append(result, list[i])
		}
	}

	return result
}
