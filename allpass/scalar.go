// Package allpass implements the two-branch polyphase IIR half-band
// filter: a cascade of first-order all-pass cells, (a + z^-2)/(1 + a*z^-2)
// realised as two independent cascades of (a + z^-1)/(1 + a*z^-1) cells
// running at the decimated rate, one fed the even-indexed samples and
// the other the odd-indexed samples. This is the structure used by
// hiir's Downsampler2x/Upsampler2x family (see
// Downsampler2xSse.hpp/Upsampler2xFpuTpl.hpp in the pandaresampler
// sources): branch 0 holds coefficients coefs[0], coefs[2], ...; branch
// 1 holds coefs[1], coefs[3], .... When downsampling, branch 0 is fed
// the later (odd-indexed) sample of each input pair and branch 1 the
// earlier (even-indexed) one.
//
// Package layout mirrors thesyncim/gopus/silk's resampler state: a flat
// struct holding fixed-size arrays, a paired alloc/zero-alloc API, and
// explicit State/SetState snapshotting.
package allpass

// MaxCoefs bounds the number of coefficients per branch this package
// holds state for, so a stage accepts at most 2*MaxCoefs coefficients;
// the enumerated precision grid tops out at 9 coefficients (144 dB).
const MaxCoefs = 16

// processBranch runs one cascade of first-order all-pass cells, each realised
// in transposed direct-form-II with a single memory register:
//
//	y = a*x + s
//	s = x - a*y
func processBranch(coefs []float64, state []float64, x float64) float64 {
	for i, a := range coefs {
		y := a*x + state[i]
		state[i] = x - a*y
		x = y
	}
	return x
}

// Stage is a single 2x half-band IIR stage: two all-pass branches
// sharing a coefficient set split by parity.
type Stage struct {
	coefs0, coefs1 []float64
	state0, state1 [MaxCoefs]float64
}

// NewStage builds a Stage from a coefficient set designed by
// designer.CoefsFromSpec or a tabulated entry (see tables.IIRCoefs).
// coefs must be non-empty.
func NewStage(coefs []float64) *Stage {
	if len(coefs) == 0 {
		panic("allpass: coefs must be non-empty")
	}
	s := &Stage{}
	s.SetCoefs(coefs)
	return s
}

// SetCoefs replaces the stage's coefficients and clears its state, as
// hiir's set_coefs does: the caller must not rely on history surviving
// a re-design.
func (s *Stage) SetCoefs(coefs []float64) {
	if len(coefs) == 0 {
		panic("allpass: coefs must be non-empty")
	}
	if len(coefs) > 2*MaxCoefs {
		panic("allpass: coefs exceeds MaxCoefs")
	}
	c0 := make([]float64, 0, (len(coefs)+1)/2)
	c1 := make([]float64, 0, len(coefs)/2)
	for i, c := range coefs {
		if i%2 == 0 {
			c0 = append(c0, c)
		} else {
			c1 = append(c1, c)
		}
	}
	s.coefs0, s.coefs1 = c0, c1
	s.ClearBuffers()
}

// Order reports the number of coefficients the stage was configured
// with (the sum of both branches' lengths).
func (s *Stage) Order() int {
	return len(s.coefs0) + len(s.coefs1)
}

// ClearBuffers zeroes all filter memory, as if the stage had processed
// silence since an infinite amount of time.
func (s *Stage) ClearBuffers() {
	s.state0 = [MaxCoefs]float64{}
	s.state1 = [MaxCoefs]float64{}
}

// ProcessSample downsamples one pair of samples (xEven, xOdd), arriving
// at the stage's input rate, to one output sample at half that rate.
// xOdd feeds branch 0 and xEven feeds branch 1.
func (s *Stage) ProcessSample(xEven, xOdd float64) float64 {
	b0 := processBranch(s.coefs0, s.state0[:], xOdd)
	b1 := processBranch(s.coefs1, s.state1[:], xEven)
	return 0.5 * (b0 + b1)
}

// ProcessSampleSplit downsamples one pair of samples and additionally
// returns the complementary high-pass/aliased output: the spectrum
// above the half-band cutoff, critically sampled and frequency-flipped.
func (s *Stage) ProcessSampleSplit(xEven, xOdd float64) (low, high float64) {
	b0 := processBranch(s.coefs0, s.state0[:], xOdd)
	b1 := processBranch(s.coefs1, s.state1[:], xEven)
	return 0.5 * (b0 + b1), 0.5 * (b0 - b1)
}

// ProcessSampleUp upsamples one input sample into two output samples
// at twice the rate.
func (s *Stage) ProcessSampleUp(x float64) (y0, y1 float64) {
	y0 = processBranch(s.coefs0, s.state0[:], x)
	y1 = processBranch(s.coefs1, s.state1[:], x)
	return y0, y1
}

// ProcessBlockDown downsamples in (length 2*nbrSpl) into out (length
// nbrSpl). in and out may overlap only as out <= in or out >= in+2*nbrSpl.
func (s *Stage) ProcessBlockDown(out, in []float64) {
	nbrSpl := len(out)
	if len(in) != 2*nbrSpl {
		panic("allpass: len(in) must be 2*len(out)")
	}
	for pos := 0; pos < nbrSpl; pos++ {
		out[pos] = s.ProcessSample(in[pos*2], in[pos*2+1])
	}
}

// ProcessBlockDownSplit is the block form of ProcessSampleSplit.
func (s *Stage) ProcessBlockDownSplit(outLow, outHigh, in []float64) {
	nbrSpl := len(outLow)
	if len(outHigh) != nbrSpl {
		panic("allpass: len(outHigh) must equal len(outLow)")
	}
	if len(in) != 2*nbrSpl {
		panic("allpass: len(in) must be 2*len(outLow)")
	}
	for pos := 0; pos < nbrSpl; pos++ {
		outLow[pos], outHigh[pos] = s.ProcessSampleSplit(in[pos*2], in[pos*2+1])
	}
}

// ProcessBlockUp upsamples in (length nbrSpl) into out (length
// 2*nbrSpl).
func (s *Stage) ProcessBlockUp(out, in []float64) {
	nbrSpl := len(in)
	if len(out) != 2*nbrSpl {
		panic("allpass: len(out) must be 2*len(in)")
	}
	for pos := 0; pos < nbrSpl; pos++ {
		out[pos*2], out[pos*2+1] = s.ProcessSampleUp(in[pos])
	}
}

// State returns a snapshot of the stage's filter memory, in branch-0
// then branch-1 order, for diagnostic or save/restore use.
func (s *Stage) State() (branch0, branch1 []float64) {
	b0 := make([]float64, len(s.coefs0))
	b1 := make([]float64, len(s.coefs1))
	copy(b0, s.state0[:len(b0)])
	copy(b1, s.state1[:len(b1)])
	return b0, b1
}

// SetState restores filter memory previously captured with State. The
// slice lengths must match the stage's current branch coefficient
// counts.
func (s *Stage) SetState(branch0, branch1 []float64) {
	if len(branch0) != len(s.coefs0) || len(branch1) != len(s.coefs1) {
		panic("allpass: state length mismatch")
	}
	s.state0 = [MaxCoefs]float64{}
	s.state1 = [MaxCoefs]float64{}
	copy(s.state0[:], branch0)
	copy(s.state1[:], branch1)
}
