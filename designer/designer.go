// Package designer computes the coefficients of minimum-order
// half-band polyphase IIR filters from a stopband attenuation /
// transition bandwidth specification (or the inverse), using the
// elliptic-function design method.
//
// This is a direct algorithmic port of PolyphaseIir2Designer.cpp from
// the pandaresampler project: the elliptic nome series, the
// alternating-sign theta-like accumulators, and the bisection search
// over transition bandwidth constrained by group delay.
package designer

import (
	"errors"
	"fmt"
	"math"
)

// MaxOrder bounds the largest nbr_coefs this package will design for
// (CoefsSpecOrderGdly rejects a larger nbrCoefs).
const MaxOrder = 64

// Errors returned by CoefsSpecOrderGdly.
var (
	// ErrGroupDelayUnreachable means the target group delay does not
	// lie between the group delays achieved at the transition
	// bandwidth bracket's two endpoints.
	ErrGroupDelayUnreachable = errors.New("designer: target group delay unreachable within [tbwLB, tbwUB]")

	// ErrNotConverged means the bisection search exceeded its iteration
	// cap without meeting the requested precision.
	ErrNotConverged = errors.New("designer: bisection search did not converge")

	// ErrAttenuationOutOfRange means the bisection converged on a group
	// delay but the resulting attenuation fell outside [attenLB, attenUB].
	ErrAttenuationOutOfRange = errors.New("designer: achieved attenuation outside requested range")
)

// maxBisectIterations bounds the group-delay bisection search.
const maxBisectIterations = 1000

// NbrCoefsFromSpec returns the minimum number of polyphase coefficients
// N such that a 2N+1-order half-band filter meets the given stopband
// attenuation (dB, > 0) and normalised transition bandwidth (0, 0.5).
func NbrCoefsFromSpec(attenuationDB, tbw float64) int {
	if attenuationDB <= 0 {
		panic("designer: attenuationDB must be > 0")
	}
	if tbw <= 0 || tbw >= 0.5 {
		panic("designer: tbw must be in (0, 0.5)")
	}

	_, q := transitionParam(tbw)
	order := computeOrder(attenuationDB, q)
	return (order - 1) / 2
}

// AttenFromOrderTbw is the inverse of NbrCoefsFromSpec: given a
// coefficient count and transition bandwidth, returns the stopband
// attenuation (dB) the resulting filter achieves.
func AttenFromOrderTbw(nbrCoefs int, tbw float64) float64 {
	if nbrCoefs <= 0 {
		panic("designer: nbrCoefs must be > 0")
	}
	if tbw <= 0 || tbw >= 0.5 {
		panic("designer: tbw must be in (0, 0.5)")
	}

	_, q := transitionParam(tbw)
	order := nbrCoefs*2 + 1
	return computeAtten(q, order)
}

// CoefsFromSpec designs a minimum-order half-band filter for the given
// attenuation/transition spec and returns its coefficients.
func CoefsFromSpec(attenuationDB, tbw float64) []float64 {
	if attenuationDB <= 0 {
		panic("designer: attenuationDB must be > 0")
	}
	if tbw <= 0 || tbw >= 0.5 {
		panic("designer: tbw must be in (0, 0.5)")
	}

	k, q := transitionParam(tbw)
	order := computeOrder(attenuationDB, q)
	nbrCoefs := (order - 1) / 2

	coefs := make([]float64, nbrCoefs)
	for i := range coefs {
		coefs[i] = computeCoef(i, k, q, order)
	}
	return coefs
}

// CoefsSpecOrderTbw designs a half-band filter of exactly nbrCoefs
// coefficients at the given transition bandwidth, maximising the
// achieved stopband attenuation for that order/bandwidth pair.
func CoefsSpecOrderTbw(nbrCoefs int, tbw float64) []float64 {
	if nbrCoefs <= 0 {
		panic("designer: nbrCoefs must be > 0")
	}
	if tbw <= 0 || tbw >= 0.5 {
		panic("designer: tbw must be in (0, 0.5)")
	}

	k, q := transitionParam(tbw)
	order := nbrCoefs*2 + 1

	coefs := make([]float64, nbrCoefs)
	for i := range coefs {
		coefs[i] = computeCoef(i, k, q, order)
	}
	return coefs
}

// GdlyResult is the outcome of a successful CoefsSpecOrderGdly call.
type GdlyResult struct {
	Coefs       []float64
	Attenuation float64
	Tbw         float64
}

// CoefsSpecOrderGdly finds a transition bandwidth in [tbwLB, tbwUB] such
// that the resulting nbrCoefs-coefficient filter's group delay at fRel
// lies within ±prec samples of gdly, by bisection. It fails with
// ErrGroupDelayUnreachable if the target isn't bracketed,
// ErrNotConverged if the iteration cap is hit, or
// ErrAttenuationOutOfRange if the achieved attenuation falls outside
// [attenLB, attenUB].
func CoefsSpecOrderGdly(nbrCoefs int, gdly, fRel, prec, attenLB, attenUB, tbwLB, tbwUB float64) (GdlyResult, error) {
	if nbrCoefs <= 0 || nbrCoefs > MaxOrder {
		panic(fmt.Sprintf("designer: nbrCoefs must be in (0, %d]", MaxOrder))
	}
	if gdly <= 0 {
		panic("designer: gdly must be > 0")
	}
	if fRel < 0 || fRel >= 1 {
		panic("designer: fRel must be in [0, 1)")
	}
	if prec <= 0 {
		panic("designer: prec must be > 0")
	}
	if !(attenLB > 0 && attenLB < attenUB) {
		panic("designer: require 0 < attenLB < attenUB")
	}
	if !(tbwLB > 0 && tbwLB < tbwUB && tbwUB < 0.5) {
		panic("designer: require 0 < tbwLB < tbwUB < 0.5")
	}

	lbTbw, ubTbw := tbwLB, tbwUB

	ubCoefs := CoefsSpecOrderTbw(nbrCoefs, ubTbw)
	lbCoefs := CoefsSpecOrderTbw(nbrCoefs, lbTbw)
	ubGdly := GroupDelayMulti(ubCoefs, fRel, false)
	lbGdly := GroupDelayMulti(lbCoefs, fRel, false)

	if (ubGdly-gdly)*(gdly-lbGdly) <= 0 {
		return GdlyResult{}, ErrGroupDelayUnreachable
	}

	var (
		rsTbw, rsAttn float64
		coefs         = make([]float64, nbrCoefs)
	)

	converged := false
	it := 0
	for ; it < maxBisectIterations; it++ {
		rsTbw = (ubTbw + lbTbw) * 0.5
		rsAttn = AttenFromOrderTbw(nbrCoefs, rsTbw)
		rsCoefs := CoefsSpecOrderTbw(nbrCoefs, rsTbw)
		copy(coefs, rsCoefs)
		rsGdly := GroupDelayMulti(coefs, fRel, false)

		if (gdly-lbGdly)*(gdly-rsGdly) < 0 {
			ubTbw = rsTbw
		} else {
			lbTbw = rsTbw
			lbGdly = rsGdly
		}

		if math.Abs(rsGdly-gdly) <= prec {
			converged = true
			it++
			break
		}
	}

	if !converged {
		return GdlyResult{}, ErrNotConverged
	}
	if rsAttn < attenLB || rsAttn > attenUB {
		return GdlyResult{}, ErrAttenuationOutOfRange
	}

	return GdlyResult{Coefs: coefs, Attenuation: rsAttn, Tbw: rsTbw}, nil
}

// PhaseDelay returns the phase delay, in samples, introduced by a
// single all-pass cell with coefficient a at relative frequency fFs.
func PhaseDelay(a, fFs float64) float64 {
	if a < 0 || a > 1 {
		panic("designer: a must be in [0, 1]")
	}
	if fFs < 0 || fFs >= 0.5 {
		panic("designer: fFs must be in [0, 0.5)")
	}

	w := 2 * math.Pi * fFs
	c := math.Cos(w)
	s := math.Sin(w)
	x := a + c + a*(c*(a+c)+s*s)
	y := a*a*s - s
	ph := math.Atan2(y, x)
	if ph < 0 {
		ph += 2 * math.Pi
	}
	return ph / w
}

// GroupDelay returns the group delay, in samples, introduced by a
// single all-pass cell with coefficient a at relative frequency fFs.
// phaserMode selects the pi/2-phaser form (a - z^-2)/(1 - a*z^-2).
func GroupDelay(a, fFs float64, phaserMode bool) float64 {
	if a < 0 || a > 1 {
		panic("designer: a must be in [0, 1]")
	}
	if fFs < 0 || fFs >= 0.5 {
		panic("designer: fFs must be in [0, 0.5)")
	}

	w := 2 * math.Pi * fFs
	a2 := a * a
	sig := 2.0
	if phaserMode {
		sig = -2.0
	}
	return 2 * (1 - a2) / (a2 + sig*a*math.Cos(2*w) + 1)
}

// GroupDelayMulti returns the group delay, in samples, of a complete
// filter at relative frequency fFs. It sums the group delay of every
// second coefficient (branch 0 of A0(z) in the two-branch all-pass
// decomposition) — this is intentional, documented reference
// semantics, not a bug.
func GroupDelayMulti(coefs []float64, fFs float64, phaserMode bool) float64 {
	if len(coefs) == 0 {
		panic("designer: coefs must be non-empty")
	}
	if fFs < 0 || fFs >= 0.5 {
		panic("designer: fFs must be in [0, 0.5)")
	}

	total := 0.0
	for i := 0; i < len(coefs); i += 2 {
		total += GroupDelay(coefs[i], fFs, phaserMode)
	}
	return total
}

func transitionParam(transition float64) (k, q float64) {
	k = math.Tan((1 - transition*2) * math.Pi / 4)
	k *= k
	kksqrt := math.Pow(1-k*k, 0.25)
	e := 0.5 * (1 - kksqrt) / (1 + kksqrt)
	e2 := e * e
	e4 := e2 * e2
	q = e * (1 + e4*(2+e4*(15+150*e4)))
	return k, q
}

func computeOrder(attenuation, q float64) int {
	attnP2 := math.Pow(10, -attenuation/10)
	a := attnP2 / (1 - attnP2)
	order := int(math.Ceil(math.Log(a*a/16) / math.Log(q)))
	if order%2 == 0 {
		order++
	}
	if order == 1 {
		order = 3
	}
	return order
}

func computeAtten(q float64, order int) float64 {
	a := 4 * math.Exp(float64(order)*0.5*math.Log(q))
	attnP2 := a / (1 + a)
	return -10 * math.Log10(attnP2)
}

func computeCoef(index int, k, q float64, order int) float64 {
	c := index + 1
	num := computeAccNum(q, order, c) * math.Pow(q, 0.25)
	den := computeAccDen(q, order, c) + 0.5
	ww := num / den
	wwsq := ww * ww

	x := math.Sqrt((1-wwsq*k)*(1-wwsq/k)) / (1 + wwsq)
	return (1 - x) / (1 + x)
}

func computeAccNum(q float64, order, c int) float64 {
	i, j := 0, 1.0
	acc := 0.0
	for {
		qii1 := ipowp(q, i*(i+1))
		qii1 *= math.Sin(float64(i*2+1)*float64(c)*math.Pi/float64(order)) * j
		acc += qii1

		j = -j
		i++
		if math.Abs(qii1) <= 1e-100 {
			break
		}
	}
	return acc
}

func computeAccDen(q float64, order, c int) float64 {
	i, j := 1, -1.0
	acc := 0.0
	for {
		qi2 := ipowp(q, i*i)
		qi2 *= math.Cos(float64(i*2*c)*math.Pi/float64(order)) * j
		acc += qi2

		j = -j
		i++
		if math.Abs(qi2) <= 1e-100 {
			break
		}
	}
	return acc
}

// ipowp raises x to a non-negative integer power without the overhead
// of math.Pow's general float exponent path.
func ipowp(x float64, p int) float64 {
	result := 1.0
	for p > 0 {
		if p&1 != 0 {
			result *= x
		}
		x *= x
		p >>= 1
	}
	return result
}
