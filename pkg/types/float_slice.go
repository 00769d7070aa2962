package types

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type Float64Slice []float64

func (s *Float64Slice) Push(v float64) {
	*s = append(*s, v)
}

func (s Float64Slice) Max() float64 {
	if len(s) == 0 {
		return -math.MaxFloat64
	}
	return floats.Max(s)
}

func (s Float64Slice) Min() float64 {
	if len(s) == 0 {
		return math.MaxFloat64
	}
	return floats.Min(s)
}

func (s Float64Slice) Sum() float64 {
	return floats.Sum(s)
}

func (s Float64Slice) Mean() float64 {
	return s.Sum() / float64(len(s))
}

func (s Float64Slice) Tail(size int) Float64Slice {
	length := len(s)
	if length <= size {
		win := make(Float64Slice, length)
		copy(win, s)
		return win
	}

	win := make(Float64Slice, size)
	copy(win, s[length-size:])
	return win
}

// Finite returns the values that are neither NaN nor infinite.
func (s Float64Slice) Finite() Float64Slice {
	var values Float64Slice
	for _, v := range s {
		if IsFinite(v) {
			values.Push(v)
		}
	}
	return values
}

// FiniteMinMax returns the min and max over the finite values, ok is false when there are none.
func (s Float64Slice) FiniteMinMax() (min, max float64, ok bool) {
	values := s.Finite()
	if len(values) == 0 {
		return 0, 0, false
	}
	return floats.Min(values), floats.Max(values), true
}

func (a *Float64Slice) Last() float64 {
	length := len(*a)
	if length > 0 {
		return (*a)[length-1]
	}
	return 0.0
}

func (a *Float64Slice) Length() int {
	return len(*a)
}

func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
