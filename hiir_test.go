package hiir

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestRatio1IsIdentity(t *testing.T) {
	for _, dir := range []Direction{Up, Down} {
		e := New(dir, 1, PrecisionLinear, false, KindFIR)
		in := make([]float32, 128)
		rng := rand.New(rand.NewSource(7))
		for i := range in {
			in[i] = rng.Float32()*2 - 1
		}
		out := make([]float32, 128)
		e.ProcessBlock(out, in)
		for i := range in {
			if out[i] != in[i] {
				t.Fatalf("direction=%v: out[%d] = %v, want %v (ratio 1 identity)", dir, i, out[i], in[i])
			}
		}
	}
}

func TestRatio1IdentityProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dir := Up
		if rapid.Bool().Draw(rt, "down") {
			dir = Down
		}
		n := rapid.IntRange(0, 256).Draw(rt, "n")
		e := New(dir, 1, PrecisionLinear, false, KindIIR)
		in := make([]float32, n)
		for i := range in {
			in[i] = float32(rapid.Float64Range(-1, 1).Draw(rt, "x"))
		}
		out := make([]float32, n)
		e.ProcessBlock(out, in)
		for i := range in {
			if out[i] != in[i] {
				rt.Fatalf("out[%d] = %v, want %v", i, out[i], in[i])
			}
		}
	})
}

func TestZeroInputFlushesToZero(t *testing.T) {
	for _, kind := range []Kind{KindFIR, KindIIR} {
		e := New(Up, 2, Precision96DB, false, kind)
		in := make([]float32, 64)
		in[0] = 1 // a single impulse, everything after is silence
		out := make([]float32, 128)
		e.ProcessBlock(out, in)

		// Drive enough additional silent blocks to flush the impulse
		// past the engine's reported delay.
		flushSamples := int(math.Ceil(e.Delay())) + 16
		silence := make([]float32, 64)
		tail := make([]float32, 128)
		for flushed := 0; flushed < flushSamples; flushed += 64 {
			e.ProcessBlock(tail, silence)
		}
		for i, y := range tail {
			assert.InDelta(t, 0, float64(y), 1e-3, "kind=%v: tail[%d] after flush", kind, i)
		}
	}
}

func TestResetMatchesFreshEngine(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	in1 := make([]float32, 300)
	for i := range in1 {
		in1[i] = rng.Float32()*2 - 1
	}
	in2 := make([]float32, 200)
	for i := range in2 {
		in2[i] = rng.Float32()*2 - 1
	}

	warmed := New(Up, 4, Precision96DB, false, KindIIR)
	scratch := make([]float32, len(in1)*4)
	warmed.ProcessBlock(scratch, in1)
	warmed.Reset()

	out1 := make([]float32, len(in2)*4)
	warmed.ProcessBlock(out1, in2)

	fresh := New(Up, 4, Precision96DB, false, KindIIR)
	out2 := make([]float32, len(in2)*4)
	fresh.ProcessBlock(out2, in2)

	for i := range out1 {
		if out1[i] != out2[i] {
			t.Fatalf("out1[%d] = %v, out2[%d] = %v after Reset, want equal", i, out1[i], i, out2[i])
		}
	}
}

func TestBlockPartitioningIsTransparent(t *testing.T) {
	const n = 256
	const ratio = 4

	for _, dir := range []Direction{Up, Down} {
		for _, kind := range []Kind{KindFIR, KindIIR} {
			rng := rand.New(rand.NewSource(int64(dir)*2 + int64(kind) + 1))
			in := make([]float32, n)
			for i := range in {
				in[i] = rng.Float32()*2 - 1
			}

			whole := New(dir, ratio, Precision96DB, false, kind)
			split := New(dir, ratio, Precision96DB, false, kind)

			var wholeOut []float32
			if dir == Up {
				wholeOut = make([]float32, n*ratio)
			} else {
				wholeOut = make([]float32, n/ratio)
			}
			whole.ProcessBlock(wholeOut, in)

			split1 := n / 2
			if dir == Down {
				split1 -= split1 % ratio // keep both halves multiples of ratio
			}
			in1, in2 := in[:split1], in[split1:]

			var out1, out2 []float32
			if dir == Up {
				out1 = make([]float32, len(in1)*ratio)
				out2 = make([]float32, len(in2)*ratio)
			} else {
				out1 = make([]float32, len(in1)/ratio)
				out2 = make([]float32, len(in2)/ratio)
			}
			split.ProcessBlock(out1, in1)
			split.ProcessBlock(out2, in2)

			got := append(append([]float32{}, out1...), out2...)
			if len(got) != len(wholeOut) {
				t.Fatalf("dir=%v kind=%v: split output length %d, want %d", dir, kind, len(got), len(wholeOut))
			}
			for i := range wholeOut {
				if wholeOut[i] != got[i] {
					t.Fatalf("dir=%v kind=%v: sample %d: whole=%v split=%v, want equal", dir, kind, i, wholeOut[i], got[i])
				}
			}
		}
	}
}

func TestFindPrecisionForBitsExactAndRounding(t *testing.T) {
	cases := []struct {
		bits int
		want Precision
	}{
		{1, PrecisionLinear},
		{8, Precision48DB},
		{12, Precision72DB},
		{16, Precision96DB},
		{20, Precision120DB},
		{24, Precision144DB},
		{0, PrecisionLinear},  // rounds down to nearest (1)
		{32, Precision144DB},  // rounds to the top tier
		{14, Precision96DB},   // closer to 16 than 12? (|14-12|=2, |14-16|=2 tie -> higher)
	}
	for _, c := range cases {
		got := FindPrecisionForBits(c.bits)
		if got != c.want {
			t.Errorf("FindPrecisionForBits(%d) = %v, want %v", c.bits, got, c.want)
		}
	}
}

func TestUnsupportedRatioPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for ratio=3")
		}
	}()
	New(Up, 3, Precision96DB, false, KindIIR)
}

func TestRatio16RequiresFIR(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for ratio=16 with KindIIR")
		}
	}()
	New(Up, 16, Precision96DB, false, KindIIR)
}

func TestRatio16FIRWorks(t *testing.T) {
	e := New(Up, 16, Precision96DB, false, KindFIR)
	in := make([]float32, 8)
	out := make([]float32, 8*16)
	e.ProcessBlock(out, in) // must not panic
	if e.Order() == 0 {
		t.Fatal("Order() = 0 for ratio-16 FIR engine")
	}
}

func TestOverlappingBuffersPanic(t *testing.T) {
	e := New(Up, 2, Precision96DB, false, KindFIR)
	buf := make([]float32, 256)
	in := buf[0:100]
	out := buf[50:250] // overlapping, not touching

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for overlapping buffers")
		}
	}()
	e.ProcessBlock(out, in)
}

func TestDownUpCascadeRoundTripNearIdentity(t *testing.T) {
	// Upsample then downsample a band-limited sine; after both engines'
	// delay has settled, the round trip should reproduce the input to
	// within the chosen precision's accuracy bound.
	const n = 2048
	const freq = 1000.0
	const rate = 44100.0

	up := New(Up, 2, Precision144DB, false, KindIIR)
	down := New(Down, 2, Precision144DB, false, KindIIR)

	in := make([]float32, n)
	for i := range in {
		in[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / rate))
	}

	mid := make([]float32, n*2)
	up.ProcessBlock(mid, in)

	out := make([]float32, n)
	down.ProcessBlock(out, mid)

	// The combined up+down delay is approximately up.Delay()/2 +
	// down.Delay() output samples and is fractional; search a small
	// window of fractional lags around the estimate and keep whichever
	// lag gives the smallest error, so the test checks round-trip
	// fidelity rather than exact delay bookkeeping (covered separately
	// by the designer/tables tests).
	estimate := up.Delay()/2 + down.Delay()
	const window = 3
	const settle = 256 // skip the filters' start-up transient
	const margin = 8   // skip samples near the end to stay clear of any lag window's partial overlap

	bestErr := math.Inf(1)
	for lag := estimate - window; lag <= estimate+window; lag += 0.001 {
		if lag < 0 {
			continue
		}
		maxErr := 0.0
		for i := settle; i < n-margin; i++ {
			j := float64(i) - lag
			if j < 0 || j >= n {
				continue
			}
			want := math.Sin(2 * math.Pi * freq * j / rate)
			d := math.Abs(float64(out[i]) - want)
			if d > maxErr {
				maxErr = d
			}
		}
		if maxErr < bestErr {
			bestErr = maxErr
		}
	}
	assert.Less(t, bestErr, 1e-3, "round-trip max error (best lag within +/-%d of estimate %.3f)", window, estimate)
}

func TestTestFilterImplPasses(t *testing.T) {
	if !TestFilterImpl(false) {
		t.Fatal("TestFilterImpl() = false, want true (scalar and SIMD IIR stages should agree)")
	}
}

func TestSSEEnabledNeverExceedsAvailability(t *testing.T) {
	e := New(Up, 2, Precision96DB, true, KindIIR)
	if e.SSEEnabled() && !SSEAvailable() {
		t.Fatal("SSEEnabled() true but SSEAvailable() false")
	}
}

func TestProcessBlockSplitReconstructsLowBand(t *testing.T) {
	e := New(Down, 2, Precision96DB, false, KindIIR)
	comparisonLow := New(Down, 2, Precision96DB, false, KindIIR)

	const n = 512
	in := make([]float32, n)
	rng := rand.New(rand.NewSource(3))
	for i := range in {
		in[i] = rng.Float32()*2 - 1
	}

	low := make([]float32, n/2)
	high := make([]float32, n/2)
	e.ProcessBlockSplit(low, high, in)

	want := make([]float32, n/2)
	comparisonLow.ProcessBlock(want, in)

	for i := range low {
		assert.InDelta(t, float64(want[i]), float64(low[i]), 1e-5, "sample %d: split low vs ordinary down", i)
	}
}

// TestAliasingRejection8xDownsampling exercises the 3-stage cascade
// built for ratio 8 (the deepest tabulated ratio), checking the
// stop-band rejection scenario: a tone already above the 8x-decimated
// Nyquist edge must come out attenuated by at least the engine's
// tabulated precision, not merely "reduced somewhat".
func TestAliasingRejection8xDownsampling(t *testing.T) {
	const baseRate = 352800.0
	const freq = 20000.0 // in stop-band after decimation by 8 (output rate 44100)
	const n = 8192

	e := New(Down, 8, Precision96DB, false, KindIIR)
	if e.Order() == 0 {
		t.Fatal("Order() = 0 for ratio-8 IIR engine")
	}

	in := make([]float32, n)
	for i := range in {
		in[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / baseRate))
	}
	out := make([]float32, n/8)
	e.ProcessBlock(out, in)

	skip := int(math.Ceil(e.Delay())) + 4
	if skip >= len(out) {
		t.Fatalf("skip %d >= len(out) %d", skip, len(out))
	}
	steady := out[skip:]

	var sumSqOut float64
	for _, y := range steady {
		sumSqOut += float64(y) * float64(y)
	}
	outRMS := math.Sqrt(sumSqOut / float64(len(steady)))

	var sumSqIn float64
	for _, x := range in {
		sumSqIn += float64(x) * float64(x)
	}
	inRMS := math.Sqrt(sumSqIn / float64(len(in)))

	const attenDB = 96.0
	maxRatio := math.Pow(10, -attenDB/20)
	assert.Less(t, outRMS/inRMS, maxRatio, "8x-downsampled RMS ratio for a stop-band tone")
}

// TestRatio8RoundTripSmoke exercises the 3-stage cascade ratio 8
// builds (bits.TrailingZeros(8) == 3) end to end for both filter
// kinds and directions, the same block-partitioning property already
// checked at ratio 4 but at the deepest tabulated cascade depth.
func TestRatio8RoundTripSmoke(t *testing.T) {
	const n = 256
	const ratio = 8

	for _, dir := range []Direction{Up, Down} {
		for _, kind := range []Kind{KindFIR, KindIIR} {
			rng := rand.New(rand.NewSource(int64(dir)*2 + int64(kind) + 100))
			in := make([]float32, n)
			for i := range in {
				in[i] = rng.Float32()*2 - 1
			}

			e := New(dir, ratio, Precision96DB, false, kind)
			if e.Order() == 0 {
				t.Fatalf("dir=%v kind=%v: Order() = 0 for ratio-8 engine", dir, kind)
			}

			var out []float32
			if dir == Up {
				out = make([]float32, n*ratio)
			} else {
				out = make([]float32, n/ratio)
			}
			e.ProcessBlock(out, in)

			for i, y := range out {
				if math.IsNaN(float64(y)) || math.IsInf(float64(y), 0) {
					t.Fatalf("dir=%v kind=%v: out[%d] = %v, want finite", dir, kind, i, y)
				}
			}

			e.Reset()
			out2 := make([]float32, len(out))
			e.ProcessBlock(out2, in)
			for i := range out {
				if out[i] != out2[i] {
					t.Fatalf("dir=%v kind=%v: sample %d differs after Reset: %v vs %v", dir, kind, i, out[i], out2[i])
				}
			}
		}
	}
}
