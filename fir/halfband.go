// Package fir implements the symmetric linear-phase half-band FIR
// filter used for ratio-16 (and, alongside the allpass package, any
// other ratio's) resampling stage. A half-band filter of length
// L = 4h+1 has every even-offset tap equal to zero except the centre
// tap, so only h distinct coefficients (plus the centre) ever multiply
// a sample; this package carries exactly that structure, following the
// mirror-buffer / explicit-delay-line style of
// thesyncim/gopus/silk's resampler state (fixed-size history arrays,
// a single SetTaps replacing live state, ClearBuffers zeroing it).
package fir

import "math"

// MaxHalfLength bounds h (the number of non-zero off-centre tap pairs
// on one side); the enumerated precision grid tops out at h=26 (144 dB).
const MaxHalfLength = 32

const ringCap = 2*MaxHalfLength + 1

type ring struct {
	buf [ringCap]float64
	n   int
	pos int
}

func (r *ring) reset(n int) {
	r.buf = [ringCap]float64{}
	r.n = n
	r.pos = 0
}

func (r *ring) push(x float64) {
	r.pos++
	if r.pos == r.n {
		r.pos = 0
	}
	r.buf[r.pos] = x
}

// age returns the sample pushed `a` pushes ago (0 = most recent).
func (r *ring) age(a int) float64 {
	idx := r.pos - a
	for idx < 0 {
		idx += r.n
	}
	return r.buf[idx]
}

// Stage is a single half-band FIR stage, usable for either direction:
// ProcessSampleUp interpolates one input sample into two output
// samples; ProcessSampleDown decimates one input pair into one output
// sample. Both share the same tap set.
type Stage struct {
	centerTap float64
	oddTaps   []float64 // oddTaps[j-1] = taps[center-(2j-1)], j=1..h
	h         int

	main      ring // raw input history, used by ProcessSampleUp
	evenRing  ring // x_2n history, used by ProcessSampleDown
	oddRing   ring // x_2n+1 history, used by ProcessSampleDown
}

// NewStage builds a Stage from a symmetric half-band tap array of
// length 4h+1 (see tables.FIRTaps). Taps must satisfy tap[i] ==
// tap[L-1-i] and have every even-offset-from-centre entry zero except
// the centre itself; NewStage does not re-derive the filter, only
// reads out its two polyphase components.
func NewStage(taps []float64) *Stage {
	s := &Stage{}
	s.SetTaps(taps)
	return s
}

// SetTaps replaces the stage's filter and clears its history.
func (s *Stage) SetTaps(taps []float64) {
	l := len(taps)
	if l < 5 || l%4 != 1 {
		panic("fir: taps length must be 4h+1 for some h >= 1")
	}
	h := (l - 1) / 4
	if h > MaxHalfLength {
		panic("fir: taps half-length exceeds MaxHalfLength")
	}
	c := (l - 1) / 2
	for i, t := range taps {
		if math.Abs(t-taps[l-1-i]) > 1e-9*math.Max(1, math.Abs(t)) {
			panic("fir: taps must be symmetric")
		}
	}

	odd := make([]float64, h)
	for j := 1; j <= h; j++ {
		odd[j-1] = taps[c-(2*j-1)]
	}

	s.centerTap = taps[c]
	s.oddTaps = odd
	s.h = h
	s.ClearBuffers()
}

// Order reports the stage's tap count (4h+1).
func (s *Stage) Order() int {
	return 4*s.h + 1
}

// HalfLength reports h, the number of non-zero off-centre tap pairs.
func (s *Stage) HalfLength() int {
	return s.h
}

// ClearBuffers zeroes all filter history.
func (s *Stage) ClearBuffers() {
	n := 2*s.h + 1
	s.main.reset(n)
	s.evenRing.reset(n)
	s.oddRing.reset(n)
}

// ProcessSampleUp upsamples one input sample into two output samples.
// The even output is the h-sample-delayed input scaled by its
// polyphase coefficient (the centre tap); the odd output is the
// symmetric convolution of the off-centre taps against the input pairs
// straddling the point half an input sample after that delayed sample
// (ages h-j+1 and h+j for j = 1..h). Both are scaled by 2 to
// compensate for the zero-stuffing implicit in interpolation.
func (s *Stage) ProcessSampleUp(x float64) (y0, y1 float64) {
	s.main.push(x)
	y0 = 2 * s.centerTap * s.main.age(s.h)

	sum := 0.0
	for j := 1; j <= s.h; j++ {
		sum += s.oddTaps[j-1] * (s.main.age(s.h+j-1) + s.main.age(s.h-j))
	}
	y1 = 2 * sum
	return y0, y1
}

// ProcessSampleDown decimates one input pair into one output sample.
func (s *Stage) ProcessSampleDown(xEven, xOdd float64) float64 {
	s.evenRing.push(xEven)
	s.oddRing.push(xOdd)

	branch0 := s.centerTap * s.evenRing.age(s.h)

	branch1 := 0.0
	for j := 1; j <= s.h; j++ {
		branch1 += s.oddTaps[j-1] * (s.oddRing.age(s.h+j) + s.oddRing.age(s.h-j+1))
	}
	return branch0 + branch1
}

// ProcessBlockUp upsamples in (length nbrSpl) into out (length
// 2*nbrSpl).
func (s *Stage) ProcessBlockUp(out, in []float64) {
	if len(out) != 2*len(in) {
		panic("fir: len(out) must be 2*len(in)")
	}
	for pos, x := range in {
		out[pos*2], out[pos*2+1] = s.ProcessSampleUp(x)
	}
}

// ProcessBlockDown downsamples in (length 2*nbrSpl) into out (length
// nbrSpl).
func (s *Stage) ProcessBlockDown(out, in []float64) {
	nbrSpl := len(out)
	if len(in) != 2*nbrSpl {
		panic("fir: len(in) must be 2*len(out)")
	}
	for pos := 0; pos < nbrSpl; pos++ {
		out[pos] = s.ProcessSampleDown(in[pos*2], in[pos*2+1])
	}
}
