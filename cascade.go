package hiir

import (
	"math/bits"

	"github.com/thesyncim/hiir/allpass"
	"github.com/thesyncim/hiir/fir"
)

// twoXStage is the behaviour a single 2x stage exposes to cascade,
// regardless of whether it is backed by an IIR all-pass pair or an FIR
// half-band filter.
type twoXStage interface {
	ProcessSampleUp(x float64) (y0, y1 float64)
	ProcessSampleDown(xEven, xOdd float64) float64
	ClearBuffers()
}

// iirStage adapts allpass.Stage/Stage4Cascade (which expose
// ProcessSample, not ProcessSampleDown) to twoXStage.
type iirStage struct {
	s interface {
		ProcessSampleUp(x float64) (float64, float64)
		ProcessSample(xEven, xOdd float64) float64
		ProcessSampleSplit(xEven, xOdd float64) (low, high float64)
		ClearBuffers()
	}
}

func (w iirStage) ProcessSampleUp(x float64) (float64, float64) { return w.s.ProcessSampleUp(x) }
func (w iirStage) ProcessSampleDown(xEven, xOdd float64) float64 {
	return w.s.ProcessSample(xEven, xOdd)
}
func (w iirStage) ClearBuffers() { w.s.ClearBuffers() }

// cascade chains log2(ratio) 2x stages into a single up- or
// down-sampler. For upsampling ratio 2^k, stage i doubles the rate
// from 2^i*base to 2^(i+1)*base: stage 0 runs first. For downsampling,
// the same stages are traversed in reverse rate order: the stage
// operating at the highest rate runs first.
type cascade struct {
	stages    []twoXStage
	direction Direction
	ratio     int
	delay     float64
	order     int

	// scratch holds one intermediate buffer per stage, sized to the
	// largest block the cascade was last asked to process; it grows on
	// demand and is otherwise reused across ProcessBlock calls to avoid
	// per-call heap allocation on the hot path.
	scratch [][]float64
}

func newCascade(direction Direction, ratio int, kind Kind, coefs []float64, preferSIMD bool, delay float64, order int) *cascade {
	nbrStages := bits.TrailingZeros(uint(ratio))
	c := &cascade{
		direction: direction,
		ratio:     ratio,
		delay:     delay,
		order:     order,
	}
	if ratio == 1 {
		return c
	}

	c.stages = make([]twoXStage, nbrStages)
	for i := range c.stages {
		switch kind {
		case KindIIR:
			if preferSIMD && SSEAvailable() {
				c.stages[i] = iirStage{s: allpass.NewStage4(coefs)}
			} else {
				c.stages[i] = iirStage{s: allpass.NewStage(coefs)}
			}
		case KindFIR:
			c.stages[i] = fir.NewStage(coefs)
		default:
			panic("hiir: unknown filter kind")
		}
	}

	c.scratch = make([][]float64, nbrStages)
	return c
}

// Reset clears every stage's filter memory.
func (c *cascade) Reset() {
	for _, s := range c.stages {
		s.ClearBuffers()
	}
}

// Delay reports the cascade's accumulated group delay, in output
// samples.
func (c *cascade) Delay() float64 {
	return c.delay
}

// Order reports the per-stage filter order (number of IIR coefficients
// or FIR taps), identical at every stage in the cascade.
func (c *cascade) Order() int {
	return c.order
}

func (c *cascade) scratchBuf(i, n int) []float64 {
	if cap(c.scratch[i]) < n {
		c.scratch[i] = make([]float64, n)
	}
	return c.scratch[i][:n]
}

// ProcessBlockUp upsamples in (length nIn) into out (length nIn*ratio).
func (c *cascade) ProcessBlockUp(out, in []float64) {
	if c.ratio == 1 {
		copy(out, in)
		return
	}

	cur := in
	for i, s := range c.stages {
		n := len(cur)
		next := c.scratchBuf(i, n*2)
		if i == len(c.stages)-1 {
			next = out
		}
		for pos := 0; pos < n; pos++ {
			next[pos*2], next[pos*2+1] = s.ProcessSampleUp(cur[pos])
		}
		cur = next
	}
}

// ProcessBlockDownSplit downsamples a single IIR 2x stage into its two
// complementary half-band outputs: outLow is the ordinary downsampled
// low-band signal, outHigh is the spectrum-flipped aliased content
// above the cutoff (see allpass.Stage.ProcessSampleSplit). It is only
// meaningful for a one-stage (ratio 2) IIR cascade: splitting a
// multi-stage cascade's intermediate bands has no single well-defined
// "the" high band, so this panics outside that case.
func (c *cascade) ProcessBlockDownSplit(outLow, outHigh, in []float64) {
	if len(c.stages) != 1 {
		panic("hiir: ProcessBlockSplit requires a single 2x (ratio-2) IIR stage")
	}
	s, ok := c.stages[0].(iirStage)
	if !ok {
		panic("hiir: ProcessBlockSplit requires KindIIR")
	}

	nbrSpl := len(outLow)
	if len(outHigh) != nbrSpl {
		panic("hiir: len(outHigh) must equal len(outLow)")
	}
	if len(in) != 2*nbrSpl {
		panic("hiir: len(in) must be 2*len(outLow)")
	}
	for pos := 0; pos < nbrSpl; pos++ {
		outLow[pos], outHigh[pos] = s.s.ProcessSampleSplit(in[pos*2], in[pos*2+1])
	}
}

// ProcessBlockDown downsamples in (length nIn) into out (length
// nIn/ratio). Stages run in reverse rate order: the first cascade
// stage (index 0, nominally the lowest-rate stage for upsampling)
// is applied LAST during downsampling.
func (c *cascade) ProcessBlockDown(out, in []float64) {
	if c.ratio == 1 {
		copy(out, in)
		return
	}

	cur := in
	for i := len(c.stages) - 1; i >= 0; i-- {
		s := c.stages[i]
		n := len(cur) / 2
		var next []float64
		if i == 0 {
			next = out
		} else {
			next = c.scratchBuf(i, n)
		}
		for pos := 0; pos < n; pos++ {
			next[pos] = s.ProcessSampleDown(cur[pos*2], cur[pos*2+1])
		}
		cur = next
	}
}
