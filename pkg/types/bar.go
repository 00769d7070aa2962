package types

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/moznion/go-optional"
)

type Direction int

const DirectionUp = 1
const DirectionNone = 0
const DirectionDown = -1

// Bar is one validated OHLCV price record for a single time period.
// Oscillator fields are pass-through values from the source data and are never computed here.
type Bar struct {
	// Date is time-zone naive, the wall clock is stored as UTC
	Date    time.Time
	DateStr string

	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64

	RSI14      optional.Option[float64]
	MACD       optional.Option[float64]
	MACDSignal optional.Option[float64]
	MACDHist   optional.Option[float64]
}

// Validate checks the OHLCV invariants of the bar.
func (b Bar) Validate() error {
	for _, v := range []float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite value in bar %s: O=%v H=%v L=%v C=%v V=%v", b.DateStr, b.Open, b.High, b.Low, b.Close, b.Volume)
		}
	}

	if b.High < b.Open || b.High < b.Close || b.High < b.Low ||
		b.Low > b.Open || b.Low > b.Close {
		return fmt.Errorf("invalid price relationship in bar %s: O=%v H=%v L=%v C=%v", b.DateStr, b.Open, b.High, b.Low, b.Close)
	}

	return nil
}

func (b Bar) Direction() Direction {
	switch {
	case b.Close > b.Open:
		return DirectionUp
	case b.Close < b.Open:
		return DirectionDown
	}
	return DirectionNone
}

// IsUp reports whether the bar is drawn with the up color, flat bars count as up.
func (b Bar) IsUp() bool {
	return b.Close >= b.Open
}

func (b Bar) GetChange() float64 {
	return b.Close - b.Open
}

// GetChangePercentage returns the close-vs-open change in percent, 0 when open is not positive.
func (b Bar) GetChangePercentage() float64 {
	if b.Open <= 0 {
		return 0
	}
	return b.GetChange() / b.Open * 100.0
}

func (b Bar) Mid() float64 {
	return (b.High + b.Low) / 2
}

func (b Bar) String() string {
	return fmt.Sprintf("Bar %s O: %.4f H: %.4f L: %.4f C: %.4f V: %.4f",
		b.DateStr, b.Open, b.High, b.Low, b.Close, b.Volume)
}

type barJSON struct {
	Date       time.Time `json:"date"`
	DateStr    string    `json:"dateStr"`
	Open       float64   `json:"open"`
	High       float64   `json:"high"`
	Low        float64   `json:"low"`
	Close      float64   `json:"close"`
	Volume     float64   `json:"volume"`
	RSI14      *float64  `json:"rsi14,omitempty"`
	MACD       *float64  `json:"macd,omitempty"`
	MACDSignal *float64  `json:"macdSignal,omitempty"`
	MACDHist   *float64  `json:"macdHist,omitempty"`
}

func optionalPtr(o optional.Option[float64]) *float64 {
	if o.IsNone() {
		return nil
	}
	v := o.Unwrap()
	return &v
}

func optionalFromPtr(p *float64) optional.Option[float64] {
	if p == nil {
		return optional.None[float64]()
	}
	return optional.Some(*p)
}

// MarshalJSON omits the absent oscillator fields instead of writing zero or null.
func (b Bar) MarshalJSON() ([]byte, error) {
	return json.Marshal(barJSON{
		Date:       b.Date,
		DateStr:    b.DateStr,
		Open:       b.Open,
		High:       b.High,
		Low:        b.Low,
		Close:      b.Close,
		Volume:     b.Volume,
		RSI14:      optionalPtr(b.RSI14),
		MACD:       optionalPtr(b.MACD),
		MACDSignal: optionalPtr(b.MACDSignal),
		MACDHist:   optionalPtr(b.MACDHist),
	})
}

func (b *Bar) UnmarshalJSON(data []byte) error {
	var v barJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*b = Bar{
		Date:       v.Date,
		DateStr:    v.DateStr,
		Open:       v.Open,
		High:       v.High,
		Low:        v.Low,
		Close:      v.Close,
		Volume:     v.Volume,
		RSI14:      optionalFromPtr(v.RSI14),
		MACD:       optionalFromPtr(v.MACD),
		MACDSignal: optionalFromPtr(v.MACDSignal),
		MACDHist:   optionalFromPtr(v.MACDHist),
	}
	return nil
}
