package indicator

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	talib "github.com/markcheno/go-talib"
	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/chartdesk/pkg/types"
)

const Delta = 1e-9

var randomPrices = []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

func buildBars(closes []float64) types.BarSlice {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make(types.BarSlice, len(closes))
	for i, c := range closes {
		bars[i] = types.Bar{
			Date:  start.AddDate(0, 0, i),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
	}
	return bars
}

func TestSMA(t *testing.T) {
	s := SMA([]float64{105, 102}, 2)
	require.Equal(t, 2, s.Len())
	assert.True(t, s[0].IsNone())

	v, ok := s.At(1)
	assert.True(t, ok)
	assert.InDelta(t, 103.5, v, Delta)
}

func TestSMA_Window(t *testing.T) {
	tests := []struct {
		name   string
		window int
		valid  int
	}{
		{"window 5", 5, 26},
		{"window 1", 1, 30},
		{"window equals length", 30, 1},
		{"window too long", 31, 0},
		{"zero window", 0, 0},
		{"negative window", -2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SMA(randomPrices, tt.window)
			assert.Equal(t, len(randomPrices), s.Len())
			assert.Equal(t, tt.valid, s.Valid())

			for i := 0; i < tt.window-1 && i < s.Len(); i++ {
				assert.True(t, s[i].IsNone(), "index %d", i)
			}

			for i := tt.window - 1; tt.window > 0 && i < s.Len(); i++ {
				sum := 0.0
				for _, p := range randomPrices[i-tt.window+1 : i+1] {
					sum += p
				}
				v, ok := s.At(i)
				require.True(t, ok)
				assert.InDelta(t, sum/float64(tt.window), v, Delta)
			}
		})
	}
}

func TestEMA(t *testing.T) {
	closes := []float64{10, 11, 12, 13, 12, 11, 15, 18, 17, 16}
	window := 3
	k := 2.0 / float64(window+1)

	ema := EMA(closes, window)
	sma := SMA(closes, window)

	assert.True(t, ema[0].IsNone())
	assert.True(t, ema[1].IsNone())

	seed, ok := ema.At(window - 1)
	require.True(t, ok)
	want, _ := sma.At(window - 1)
	assert.InDelta(t, want, seed, Delta)
	assert.InDelta(t, 11.0, seed, Delta)

	for i := window; i < len(closes); i++ {
		prev, _ := ema.At(i - 1)
		cur, ok := ema.At(i)
		require.True(t, ok)
		assert.InDelta(t, closes[i]*k+prev*(1-k), cur, Delta)
	}

	assert.Equal(t, 0, EMA(closes, 11).Valid())
	assert.Equal(t, 0, EMA(nil, 3).Len())
}

// cross check against the TA-Lib port
func TestMovingAverages_TALib(t *testing.T) {
	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/7) + float64(i%5)
	}

	for _, window := range []int{5, 20, 50} {
		wantSMA := talib.Sma(closes, window)
		wantEMA := talib.Ema(closes, window)

		sma := SMA(closes, window)
		ema := EMA(closes, window)

		for i := window - 1; i < len(closes); i++ {
			v, ok := sma.At(i)
			require.True(t, ok)
			assert.InDelta(t, wantSMA[i], v, 1e-6, "sma(%d) at %d", window, i)

			v, ok = ema.At(i)
			require.True(t, ok)
			assert.InDelta(t, wantEMA[i], v, 1e-6, "ema(%d) at %d", window, i)
		}
	}
}

func TestSeries_JSON(t *testing.T) {
	s := SMA([]float64{1, 2, 3}, 2)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `[null, 1.5, 2.5]`, string(data))

	var decoded Series
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 2, decoded.Valid())
	assert.True(t, decoded[0].IsNone())

	floats := decoded.Floats()
	assert.True(t, math.IsNaN(floats[0]))
	assert.Equal(t, 2.5, floats[2])

	last, ok := decoded.Last()
	assert.True(t, ok)
	assert.Equal(t, 2.5, last)
}

func TestOscillator(t *testing.T) {
	bars := buildBars([]float64{1, 2, 3})
	bars[0].RSI14 = optional.Some(40.0)
	bars[2].RSI14 = optional.Some(70.0)
	bars[1].MACD = optional.Some(math.Inf(1))

	rsi := Oscillator(bars, FieldRSI14)
	assert.Equal(t, 2, rsi.Valid())
	assert.True(t, rsi[1].IsNone())

	assert.Equal(t, 0, Oscillator(bars, FieldMACD).Valid())
	assert.True(t, HasOscillator(bars, FieldRSI14))
	assert.False(t, HasOscillator(bars, FieldMACDHist))
}

func TestCompute(t *testing.T) {
	bars := buildBars(randomPrices)

	assert.Equal(t, SMA(randomPrices, 20), Compute(bars, types.IndicatorSMA20))
	assert.Equal(t, EMA(randomPrices, 20), Compute(bars, types.IndicatorEMA20))
	assert.Equal(t, 0, Compute(bars, types.IndicatorSMA50).Valid())
	assert.Equal(t, 0, Compute(bars, types.IndicatorRSI14).Valid())
	assert.Equal(t, 0, Compute(bars, types.IndicatorKind("bollinger")).Valid())

	all := ComputeAll(bars, types.NewIndicatorSelection(types.IndicatorSMA20, types.IndicatorMACD))
	assert.Len(t, all, 2)
	assert.Equal(t, len(bars), all[types.IndicatorMACD].Len())
}
