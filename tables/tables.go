// Package tables holds the statically precomputed (filter kind, ratio,
// precision) grid of IIR polyphase coefficients and FIR half-band taps
// described in the hiir facade, along with each entry's known group
// delay. The IIR values were generated offline by driving
// github.com/thesyncim/hiir/designer over the enumerated grid; the FIR
// taps are Kaiser-windowed designs (see fir_tables.go). Nothing in this
// package allocates or performs trigonometry at lookup time.
package tables

import "sort"

// Precision identifies one tabulated stopband attenuation tier, in
// decibels. It intentionally does not reuse the root hiir package's
// Precision type, to keep this package free of any dependency on its
// caller.
type Precision int

// The tabulated precision tiers, ascending.
const (
	Precision48  Precision = 48
	Precision72  Precision = 72
	Precision96  Precision = 96
	Precision120 Precision = 120
	Precision144 Precision = 144
)

var allPrecisions = []Precision{Precision48, Precision72, Precision96, Precision120, Precision144}

// NearestPrecision maps an arbitrary attenuation target, in decibels,
// to the closest tabulated tier, preferring the higher tier on a tie.
func NearestPrecision(attenDB float64) Precision {
	best := allPrecisions[0]
	bestDist := distance(attenDB, float64(best))
	for _, p := range allPrecisions[1:] {
		d := distance(attenDB, float64(p))
		if d < bestDist || (d == bestDist && p > best) {
			best = p
			bestDist = d
		}
	}
	return best
}

func distance(want, have float64) float64 {
	d := want - have
	if d < 0 {
		return -d
	}
	return d
}

// nearestRatio returns the entry of ratios closest to want, preferring
// the larger ratio on a tie. ratios must be non-empty.
func nearestRatio(ratios []int, want int) int {
	best := ratios[0]
	bestDist := iabs(want - best)
	for _, r := range ratios[1:] {
		d := iabs(want - r)
		if d < bestDist || (d == bestDist && r > best) {
			best = r
			bestDist = d
		}
	}
	return best
}

func iabs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sortedKeys(m map[int]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// IIRCoefs returns the polyphase all-pass coefficients tabulated at
// the nearest precision tier to p.
func IIRCoefs(p Precision) []float64 {
	return iirCoefsByPrecision[NearestPrecision(float64(p))]
}

// IIRDelay returns the accumulated group delay, in output samples, of
// an upsampling IIR half-band cascade reaching the given overall ratio,
// at the nearest tabulated (precision, ratio) pair. The root package's
// New converts this value for a downsampling engine.
func IIRDelay(p Precision, ratio int) float64 {
	byRatio := iirDelayByRatio[NearestPrecision(float64(p))]
	return byRatio[nearestRatio(sortedKeys(byRatio), ratio)]
}

// FIRTaps returns the half-band FIR taps tabulated at the nearest
// precision tier to p.
func FIRTaps(p Precision) []float64 {
	return firTapsByPrecision[NearestPrecision(float64(p))]
}

// FIRDelay returns the accumulated group delay, in output samples, of
// an FIR half-band cascade reaching the given overall ratio in the
// given direction, at the nearest tabulated (precision, ratio) pair.
func FIRDelay(p Precision, ratio int, up bool) float64 {
	table := firDelayByRatioDown
	if up {
		table = firDelayByRatioUp
	}
	byRatio := table[NearestPrecision(float64(p))]
	return byRatio[nearestRatio(sortedKeys(byRatio), ratio)]
}
