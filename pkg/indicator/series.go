package indicator

import (
	"encoding/json"
	"math"

	"github.com/moznion/go-optional"
)

// Series is aligned 1:1 with the bars it was computed from.
// An element is None when the window has not enough history.
type Series []optional.Option[float64]

func NewSeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = optional.None[float64]()
	}
	return s
}

func (s Series) Len() int {
	return len(s)
}

// At returns the value at index i, ok is false for None and out-of-range indexes.
func (s Series) At(i int) (float64, bool) {
	if i < 0 || i >= len(s) || s[i].IsNone() {
		return 0, false
	}
	return s[i].Unwrap(), true
}

// Floats projects the series to plain floats, None becomes NaN.
func (s Series) Floats() []float64 {
	values := make([]float64, len(s))
	for i := range s {
		if v, ok := s.At(i); ok {
			values[i] = v
		} else {
			values[i] = math.NaN()
		}
	}
	return values
}

// Valid counts the available values.
func (s Series) Valid() int {
	n := 0
	for _, v := range s {
		if v.IsSome() {
			n++
		}
	}
	return n
}

func (s Series) Last() (float64, bool) {
	return s.At(len(s) - 1)
}

func (s Series) MarshalJSON() ([]byte, error) {
	values := make([]*float64, len(s))
	for i := range s {
		if v, ok := s.At(i); ok {
			values[i] = &v
		}
	}
	return json.Marshal(values)
}

func (s *Series) UnmarshalJSON(data []byte) error {
	var values []*float64
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}

	out := make(Series, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = optional.None[float64]()
		} else {
			out[i] = optional.Some(*v)
		}
	}

	*s = out
	return nil
}
