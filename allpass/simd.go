package allpass

// quad holds one pair of all-pass stages, one from each branch: the
// 4-wide layout groups [branch0 stage i, branch1 stage i, branch0
// stage i+1, branch1 stage i+1] and processes them with one exchange
// between the first and second half of the quad per pair of stages —
// the scalar analogue of hiir's SSE kernel (StageProcSseV2), which
// processes the same four lanes with a single _mm_shuffle_ps between
// stage pairs. No actual vector instructions are issued here: Go gives
// us no portable intrinsics without assembly, so this is a data-layout
// choice the compiler's auto-vectoriser can exploit, not a SIMD
// guarantee. Arithmetic is carried in float32, matching the precision
// of the hardware lane width the layout targets.
type quad struct {
	c0a, c1a float32 // branch 0/1, first stage of the pair
	c0b, c1b float32 // branch 0/1, second stage of the pair
}

type quadState struct {
	s0a, s1a float32
	s0b, s1b float32
}

// Stage4Cascade is a 2x half-band IIR stage using the 4-wide quad
// layout above, functionally equivalent to Stage (same coefficient
// convention, same State/SetState layout) but carrying its arithmetic
// in float32 and grouping work two stages at a time.
type Stage4Cascade struct {
	quads      []quad
	state      []quadState
	tailCoef0  float32 // set when branch 0 has an odd leftover stage
	tailCoef1  float32 // set when branch 1 has an odd leftover stage
	hasTail0   bool
	hasTail1   bool
	tailState0 float32
	tailState1 float32
}

// NewStage4 builds a Stage4Cascade from the same coefficient
// convention as NewStage: coefs[0], coefs[2], ... form branch 0;
// coefs[1], coefs[3], ... form branch 1.
func NewStage4(coefs []float64) *Stage4Cascade {
	if len(coefs) == 0 {
		panic("allpass: coefs must be non-empty")
	}
	s := &Stage4Cascade{}
	s.SetCoefs(coefs)
	return s
}

func (s *Stage4Cascade) SetCoefs(coefs []float64) {
	if len(coefs) == 0 {
		panic("allpass: coefs must be non-empty")
	}
	if len(coefs) > 2*MaxCoefs {
		panic("allpass: coefs exceeds MaxCoefs")
	}

	var c0, c1 []float32
	for i, c := range coefs {
		if i%2 == 0 {
			c0 = append(c0, float32(c))
		} else {
			c1 = append(c1, float32(c))
		}
	}

	nQuads := len(c0) / 2
	if len(c1)/2 < nQuads {
		nQuads = len(c1) / 2
	}

	s.quads = make([]quad, nQuads)
	for i := 0; i < nQuads; i++ {
		s.quads[i] = quad{
			c0a: c0[i*2], c1a: c1[i*2],
			c0b: c0[i*2+1], c1b: c1[i*2+1],
		}
	}

	s.hasTail0 = len(c0) > 2*nQuads
	if s.hasTail0 {
		s.tailCoef0 = c0[2*nQuads]
	}
	s.hasTail1 = len(c1) > 2*nQuads
	if s.hasTail1 {
		s.tailCoef1 = c1[2*nQuads]
	}

	s.ClearBuffers()
}

func (s *Stage4Cascade) Order() int {
	n := len(s.quads) * 4
	if s.hasTail0 {
		n++
	}
	if s.hasTail1 {
		n++
	}
	return n
}

func (s *Stage4Cascade) ClearBuffers() {
	s.state = make([]quadState, len(s.quads))
	s.tailState0 = 0
	s.tailState1 = 0
}

// processQuad advances one pair of stages for both branches, with the
// branch-0 and branch-1 first-stage outputs computed together (lanes
// 0,1) before being exchanged into the second stage's inputs (lanes
// 2,3) — the shuffle hiir's SSE kernel performs in hardware.
func processQuad(q quad, st *quadState, x0, x1 float32) (y0, y1 float32) {
	t0 := q.c0a*x0 + st.s0a
	st.s0a = x0 - q.c0a*t0

	t1 := q.c1a*x1 + st.s1a
	st.s1a = x1 - q.c1a*t1

	y0 = q.c0b*t0 + st.s0b
	st.s0b = t0 - q.c0b*y0

	y1 = q.c1b*t1 + st.s1b
	st.s1b = t1 - q.c1b*y1

	return y0, y1
}

// processPair advances branch 0 with in0 and branch 1 with in1 in a
// single pass over the quad array, processing branch 0 and branch 1's
// shared stage pair together as the layout intends.
func (s *Stage4Cascade) processPair(in0, in1 float32) (b0, b1 float32) {
	b0, b1 = in0, in1
	for i := range s.quads {
		b0, b1 = processQuad(s.quads[i], &s.state[i], b0, b1)
	}
	if s.hasTail0 {
		y := s.tailCoef0*b0 + s.tailState0
		s.tailState0 = b0 - s.tailCoef0*y
		b0 = y
	}
	if s.hasTail1 {
		y := s.tailCoef1*b1 + s.tailState1
		s.tailState1 = b1 - s.tailCoef1*y
		b1 = y
	}
	return b0, b1
}

func (s *Stage4Cascade) ProcessSample(xEven, xOdd float64) float64 {
	b0, b1 := s.processPair(float32(xOdd), float32(xEven))
	return 0.5 * float64(b0+b1)
}

func (s *Stage4Cascade) ProcessSampleSplit(xEven, xOdd float64) (low, high float64) {
	b0, b1 := s.processPair(float32(xOdd), float32(xEven))
	return 0.5 * float64(b0+b1), 0.5 * float64(b0-b1)
}

func (s *Stage4Cascade) ProcessSampleUp(x float64) (y0, y1 float64) {
	xf := float32(x)
	b0, b1 := s.processPair(xf, xf)
	return float64(b0), float64(b1)
}

func (s *Stage4Cascade) ProcessBlockDown(out, in []float64) {
	nbrSpl := len(out)
	if len(in) != 2*nbrSpl {
		panic("allpass: len(in) must be 2*len(out)")
	}
	for pos := 0; pos < nbrSpl; pos++ {
		out[pos] = s.ProcessSample(in[pos*2], in[pos*2+1])
	}
}

func (s *Stage4Cascade) ProcessBlockDownSplit(outLow, outHigh, in []float64) {
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

func (s *Stage4Cascade) ProcessBlockUp(out, in []float64) {
	nbrSpl := len(in)
	if len(out) != 2*nbrSpl {
		panic("allpass: len(out) must be 2*len(in)")
	}
	for pos := 0; pos < nbrSpl; pos++ {
		out[pos*2], out[pos*2+1] = s.ProcessSampleUp(in[pos])
	}
}

// State returns a snapshot of the cascade's filter memory, branch 0
// then branch 1, matching Stage.State's ordering so the two
// implementations are interchangeable for save/restore.
func (s *Stage4Cascade) State() (branch0, branch1 []float64) {
	n0 := len(s.quads) * 2
	if s.hasTail0 {
		n0++
	}
	n1 := len(s.quads) * 2
	if s.hasTail1 {
		n1++
	}
	b0 := make([]float64, 0, n0)
	b1 := make([]float64, 0, n1)
	for i := range s.quads {
		b0 = append(b0, float64(s.state[i].s0a), float64(s.state[i].s0b))
		b1 = append(b1, float64(s.state[i].s1a), float64(s.state[i].s1b))
	}
	if s.hasTail0 {
		b0 = append(b0, float64(s.tailState0))
	}
	if s.hasTail1 {
		b1 = append(b1, float64(s.tailState1))
	}
	return b0, b1
}

// SetState restores filter memory previously captured with State.
func (s *Stage4Cascade) SetState(branch0, branch1 []float64) {
	n0 := len(s.quads) * 2
	if s.hasTail0 {
		n0++
	}
	n1 := len(s.quads) * 2
	if s.hasTail1 {
		n1++
	}
	if len(branch0) != n0 || len(branch1) != n1 {
		panic("allpass: state length mismatch")
	}
	for i := range s.quads {
		s.state[i].s0a = float32(branch0[i*2])
		s.state[i].s0b = float32(branch0[i*2+1])
		s.state[i].s1a = float32(branch1[i*2])
		s.state[i].s1b = float32(branch1[i*2+1])
	}
	if s.hasTail0 {
		s.tailState0 = float32(branch0[len(branch0)-1])
	}
	if s.hasTail1 {
		s.tailState1 = float32(branch1[len(branch1)-1])
	}
}
