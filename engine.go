package hiir

import (
	"fmt"
	"unsafe"

	"github.com/thesyncim/hiir/tables"
)

// MaxBlockSamples bounds the number of samples ProcessBlock accepts at
// the engine's base rate: len(in) for Up, len(out) for Down. Stage
// scratch is sized for this bound at construction time so ProcessBlock
// itself never allocates; spec.md §9 leaves the maximum block size an
// implementer choice, this is ours (matching the teacher's fixed
// scratchBuf/scratchIn/scratchOut sizing in resample_libopus.go).
const MaxBlockSamples = 8192

// Engine converts a mono float32 stream between a base rate and an
// integer power-of-two multiple of it. See package doc for the overall
// shape; Engine itself only holds configuration, the active cascade,
// and conversion scratch — all filter state lives in the cascade's
// stages.
type Engine struct {
	direction  Direction
	ratio      int
	precision  Precision
	kind       Kind
	sseEnabled bool
	cascade    *cascade

	// f64In/f64Out hold the float64 working copies ProcessBlock
	// converts through, since the cascade's internal arithmetic (and
	// the designer/tables it is built from) is entirely float64, while
	// the external ABI spec.md §6 commits to is float32.
	f64In  []float64
	f64Out []float64

	// splitHigh is extra conversion scratch for ProcessBlockSplit's
	// second output band; sized once here so that call allocates
	// nothing either.
	splitHigh []float64
}

// New constructs an Engine. ratio must be one of {1, 2, 4, 8, 16}; 16
// is accepted only for kind == KindFIR (spec.md §9's open question on
// ratio-16 IIR support: the coefficient tables stop at 8, so IIR simply
// doesn't have an entry to offer). Unset/zero-value precision
// (PrecisionLinear) is valid only at ratio 1. preferSIMD is a request,
// not a guarantee: it is honoured only when kind == KindIIR and
// SSEAvailable() reports true, per spec.md §4.5.
func New(direction Direction, ratio int, precision Precision, preferSIMD bool, kind Kind) *Engine {
	switch direction {
	case Up, Down:
	default:
		panic(ErrInvalidDirection)
	}
	switch kind {
	case KindFIR, KindIIR:
	default:
		panic("hiir: unknown filter kind")
	}

	switch ratio {
	case 1, 2, 4, 8:
	case 16:
		if kind != KindFIR {
			panic(fmt.Sprintf("%v: ratio 16 requires KindFIR", ErrUnsupportedRatio))
		}
	default:
		panic(fmt.Sprintf("%v: %d", ErrUnsupportedRatio, ratio))
	}

	e := &Engine{direction: direction, ratio: ratio, precision: precision, kind: kind}

	if ratio == 1 {
		e.cascade = newCascade(direction, 1, kind, nil, false, 0, 0)
		e.presize()
		return e
	}
	if precision == PrecisionLinear {
		panic("hiir: PrecisionLinear is only valid at ratio 1")
	}

	tp := tables.Precision(precisionDB(precision))
	var coefs []float64
	var delay float64
	switch kind {
	case KindIIR:
		coefs = tables.IIRCoefs(tp)
		delay = tables.IIRDelay(tp, ratio)
		if direction == Down {
			// The table holds the upsampling delay in high-rate samples;
			// a downsampler reports it in its own, lower-rate samples.
			delay = (delay - float64(ratio-1)) / float64(ratio)
		}
	case KindFIR:
		coefs = tables.FIRTaps(tp)
		delay = tables.FIRDelay(tp, ratio, direction == Up)
	}

	e.sseEnabled = preferSIMD && kind == KindIIR && SSEAvailable()
	e.cascade = newCascade(direction, ratio, kind, coefs, preferSIMD, delay, len(coefs))
	e.presize()
	return e
}

// presize drives one throwaway block through the cascade at
// MaxBlockSamples to force its per-stage scratch to grow to its
// steady-state size, then resets all filter memory back to quiescent.
func (e *Engine) presize() {
	maxHigh := MaxBlockSamples * e.ratio
	e.f64In = make([]float64, maxHigh)
	e.f64Out = make([]float64, maxHigh)
	e.splitHigh = make([]float64, MaxBlockSamples)

	if e.ratio == 1 {
		return
	}
	switch e.direction {
	case Up:
		e.cascade.ProcessBlockUp(e.f64Out[:MaxBlockSamples*e.ratio], e.f64In[:MaxBlockSamples])
	case Down:
		e.cascade.ProcessBlockDown(e.f64Out[:MaxBlockSamples], e.f64In[:MaxBlockSamples*e.ratio])
	}
	e.cascade.Reset()
}

// ProcessBlock resamples in into out. For Up, len(out) must equal
// len(in)*ratio; for Down, len(in) must be a multiple of ratio and
// len(out) must equal len(in)/ratio. in and out may alias only as
// non-overlapping (or exactly touching) memory ranges; any other
// overlap is a contract violation (spec.md §4.4, §7). Allocates no
// memory as long as the engine's base-rate sample count stays within
// MaxBlockSamples.
func (e *Engine) ProcessBlock(out, in []float32) {
	checkBufferOverlap(in, out)

	switch e.direction {
	case Up:
		nIn := len(in)
		if nIn > MaxBlockSamples {
			panic(ErrBlockTooLarge)
		}
		if len(out) != nIn*e.ratio {
			panic("hiir: len(out) must equal len(in)*ratio for Up")
		}
		if e.ratio == 1 {
			copy(out, in)
			return
		}

		fin := e.f64In[:nIn]
		for i, x := range in {
			fin[i] = float64(x)
		}
		fout := e.f64Out[:nIn*e.ratio]
		e.cascade.ProcessBlockUp(fout, fin)
		for i, y := range fout {
			out[i] = float32(y)
		}

	case Down:
		nIn := len(in)
		if nIn%e.ratio != 0 {
			panic("hiir: len(in) must be a multiple of ratio for Down")
		}
		nOut := nIn / e.ratio
		if nOut > MaxBlockSamples {
			panic(ErrBlockTooLarge)
		}
		if len(out) != nOut {
			panic("hiir: len(out) must equal len(in)/ratio for Down")
		}
		if e.ratio == 1 {
			copy(out, in)
			return
		}

		fin := e.f64In[:nIn]
		for i, x := range in {
			fin[i] = float64(x)
		}
		fout := e.f64Out[:nOut]
		e.cascade.ProcessBlockDown(fout, fin)
		for i, y := range fout {
			out[i] = float32(y)
		}
	}
}

// ProcessBlockSplit downsamples in into its complementary low/high
// half-bands (see cascade.ProcessBlockDownSplit); valid only for a
// KindIIR, ratio-2, Down engine. len(outLow) and len(outHigh) must
// equal len(in)/2.
func (e *Engine) ProcessBlockSplit(outLow, outHigh, in []float32) {
	if e.kind != KindIIR || e.ratio != 2 || e.direction != Down {
		panic("hiir: ProcessBlockSplit requires a KindIIR, ratio-2, Down engine")
	}
	nIn := len(in)
	if nIn%2 != 0 {
		panic("hiir: len(in) must be even for ProcessBlockSplit")
	}
	nOut := nIn / 2
	if nOut > MaxBlockSamples {
		panic(ErrBlockTooLarge)
	}
	if len(outLow) != nOut || len(outHigh) != nOut {
		panic("hiir: len(outLow) and len(outHigh) must equal len(in)/2")
	}

	fin := e.f64Out[:nIn]
	for i, x := range in {
		fin[i] = float64(x)
	}
	finLow := e.f64In[:nOut]
	finHigh := e.splitHigh[:nOut]
	e.cascade.ProcessBlockDownSplit(finLow, finHigh, fin)
	for i := 0; i < nOut; i++ {
		outLow[i] = float32(finLow[i])
		outHigh[i] = float32(finHigh[i])
	}
}

// Reset clears every stage's filter memory back to quiescent. A second
// call is a no-op, since ClearBuffers is idempotent (it always writes
// zero, never reads prior state).
func (e *Engine) Reset() {
	e.cascade.Reset()
}

// Delay reports the engine's accumulated group delay, in output
// samples.
func (e *Engine) Delay() float64 {
	return e.cascade.Delay()
}

// Order reports the filter length: FIR tap count, or IIR coefficient
// count, identical at every cascade stage.
func (e *Engine) Order() int {
	return e.cascade.Order()
}

// SSEEnabled reports whether this instance actually uses the 4-wide
// IIR all-pass layout, as opposed to merely having requested it.
func (e *Engine) SSEEnabled() bool {
	return e.sseEnabled
}

func precisionDB(p Precision) int {
	switch p {
	case Precision48DB:
		return 48
	case Precision72DB:
		return 72
	case Precision96DB:
		return 96
	case Precision120DB:
		return 120
	case Precision144DB:
		return 144
	default:
		panic("hiir: precision has no associated dB tier")
	}
}

// checkBufferOverlap panics with ErrBufferOverlap if in and out share
// any memory beyond touching at a boundary. Touching ranges (one
// buffer's end address equal to the other's start) are the permitted
// in-place shift pattern of spec.md §4.4; anything else is a contract
// violation.
func checkBufferOverlap(in, out []float32) {
	if len(in) == 0 || len(out) == 0 {
		return
	}
	inStart := uintptr(unsafe.Pointer(&in[0]))
	inEnd := inStart + uintptr(len(in))*unsafe.Sizeof(in[0])
	outStart := uintptr(unsafe.Pointer(&out[0]))
	outEnd := outStart + uintptr(len(out))*unsafe.Sizeof(out[0])
	if inEnd <= outStart || outEnd <= inStart {
		return
	}
	panic(ErrBufferOverlap)
}
