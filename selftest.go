package hiir

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/thesyncim/hiir/allpass"
	"github.com/thesyncim/hiir/tables"
)

// allTabulatedPrecisions lists every precision tag that has a table
// entry (excludes PrecisionLinear, which is ratio-1-only and has no
// filter to cross-check).
var allTabulatedPrecisions = []Precision{
	Precision48DB, Precision72DB, Precision96DB, Precision120DB, Precision144DB,
}

// simdTolerance is the acceptable scalar-vs-SIMD divergence: the 4-wide
// layout carries its arithmetic in float32, so its noise floor sits
// around 2^-24 relative to a unit-amplitude signal; this is loosened to
// absorb accumulation across an up-to-9-coefficient cascade.
const simdTolerance = 1e-5

// TestFilterImpl cross-checks the scalar (allpass.Stage) and 4-wide
// (allpass.Stage4Cascade) IIR all-pass implementations against each
// other, over every tabulated precision tier and both directions,
// driving both with the same input sequence. It returns false if any
// sample diverges by more than simdTolerance; when verbose is true it
// also prints every divergent sample to stdout. This is the Go
// form of spec.md §6's test_filter_impl self-check.
func TestFilterImpl(verbose bool) bool {
	ok := true
	rng := rand.New(rand.NewSource(1))

	for _, p := range allTabulatedPrecisions {
		coefs := tables.IIRCoefs(tables.Precision(precisionDB(p)))
		if !checkUpstream(p, coefs, rng, verbose) {
			ok = false
		}
		if !checkDownstream(p, coefs, rng, verbose) {
			ok = false
		}
	}

	if verbose {
		if ok {
			fmt.Println("hiir: TestFilterImpl: scalar/SIMD cross-check passed")
		} else {
			fmt.Println("hiir: TestFilterImpl: scalar/SIMD cross-check FAILED")
		}
	}
	return ok
}

func checkUpstream(p Precision, coefs []float64, rng *rand.Rand, verbose bool) bool {
	scalar := allpass.NewStage(coefs)
	simd := allpass.NewStage4(coefs)
	ok := true

	const n = 256
	for i := 0; i < n; i++ {
		x := rng.Float64()*2 - 1
		y0s, y1s := scalar.ProcessSampleUp(x)
		y0v, y1v := simd.ProcessSampleUp(x)
		if d := math.Abs(y0s - y0v); d > simdTolerance {
			if verbose {
				fmt.Printf("hiir: TestFilterImpl up mismatch precision=%v i=%d y0 scalar=%v simd=%v diff=%v\n", p, i, y0s, y0v, d)
			}
			ok = false
		}
		if d := math.Abs(y1s - y1v); d > simdTolerance {
			if verbose {
				fmt.Printf("hiir: TestFilterImpl up mismatch precision=%v i=%d y1 scalar=%v simd=%v diff=%v\n", p, i, y1s, y1v, d)
			}
			ok = false
		}
	}
	return ok
}

func checkDownstream(p Precision, coefs []float64, rng *rand.Rand, verbose bool) bool {
	scalar := allpass.NewStage(coefs)
	simd := allpass.NewStage4(coefs)
	ok := true

	const n = 256
	for i := 0; i < n; i++ {
		xe := rng.Float64()*2 - 1
		xo := rng.Float64()*2 - 1
		ds := scalar.ProcessSample(xe, xo)
		dv := simd.ProcessSample(xe, xo)
		if d := math.Abs(ds - dv); d > simdTolerance {
			if verbose {
				fmt.Printf("hiir: TestFilterImpl down mismatch precision=%v i=%d scalar=%v simd=%v diff=%v\n", p, i, ds, dv, d)
			}
			ok = false
		}
	}
	return ok
}
