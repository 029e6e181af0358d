package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNearestPrecisionExactHits(t *testing.T) {
	for _, p := range allPrecisions {
		if got := NearestPrecision(float64(p)); got != p {
			t.Errorf("NearestPrecision(%v) = %v, want %v", p, got, p)
		}
	}
}

func TestNearestPrecisionTieBreaksHigh(t *testing.T) {
	// 84 is equidistant between 72 and 96; must prefer 96.
	if got := NearestPrecision(84); got != Precision96 {
		t.Errorf("NearestPrecision(84) = %v, want %v", got, Precision96)
	}
}

func TestIIRCoefsPresentAndIncreasing(t *testing.T) {
	// Polyphase all-pass coefficients are not symmetric taps; this just
	// checks every tier is present, non-empty, and strictly increasing
	// (a property of the elliptic design recurrence).
	for _, p := range allPrecisions {
		coefs := IIRCoefs(p)
		if len(coefs) == 0 {
			t.Fatalf("IIRCoefs(%v) is empty", p)
		}
		for i := 1; i < len(coefs); i++ {
			if coefs[i] <= coefs[i-1] {
				t.Errorf("IIRCoefs(%v)[%d] = %v not increasing over [%d] = %v", p, i, coefs[i], i-1, coefs[i-1])
			}
		}
	}
}

func TestIIRDelayIncreasesWithRatio(t *testing.T) {
	for _, p := range allPrecisions {
		d2 := IIRDelay(p, 2)
		d4 := IIRDelay(p, 4)
		d8 := IIRDelay(p, 8)
		if !(d2 < d4 && d4 < d8) {
			t.Errorf("IIRDelay(%v, .) not increasing: %v, %v, %v", p, d2, d4, d8)
		}
	}
}

func TestIIRDelayRatioFallback(t *testing.T) {
	// Ratio 3 isn't tabulated; it is equally far from 2 and 4, and ties
	// go to the larger ratio, so 4 is used.
	if got, want := IIRDelay(Precision96, 3), IIRDelay(Precision96, 4); got != want {
		t.Errorf("IIRDelay(Precision96, 3) = %v, want %v (nearest ratio fallback)", got, want)
	}
}

func TestFIRTapsSymmetric(t *testing.T) {
	for _, p := range allPrecisions {
		taps := FIRTaps(p)
		n := len(taps)
		if n == 0 {
			t.Fatalf("FIRTaps(%v) is empty", p)
		}
		for i := 0; i < n; i++ {
			assert.InDelta(t, taps[n-1-i], taps[i], 1e-9, "FIRTaps(%v)[%d] vs [%d] (symmetry)", p, i, n-1-i)
		}
	}
}

func TestFIRTapsEvenIndexedZero(t *testing.T) {
	for _, p := range allPrecisions {
		taps := FIRTaps(p)
		center := (len(taps) - 1) / 2
		for i, tap := range taps {
			if i == center {
				continue
			}
			if i%2 == 0 && tap != 0 {
				t.Errorf("FIRTaps(%v)[%d] = %v, want 0 (half-band zero tap)", p, i, tap)
			}
		}
	}
}

func TestFIRDelayUpVsDownDiffer(t *testing.T) {
	for _, p := range allPrecisions {
		up := FIRDelay(p, 2, true)
		down := FIRDelay(p, 2, false)
		if up == down {
			t.Errorf("FIRDelay(%v, 2, up) == FIRDelay(%v, 2, down) == %v, want different", p, p, up)
		}
	}
}
