// Command hiirdemo is a host-level driver for the hiir resampling
// engine: it is not part of the core library (spec.md §1 names such
// drivers "an external collaborator"). It generates a sine wave,
// resamples it through an Engine at the requested (direction, ratio,
// precision, kind), measures the steady-state error against the
// analytic expected waveform, and logs the result.
package main

import (
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/thesyncim/hiir"
)

func main() {
	direction := pflag.StringP("direction", "d", "up", "Resampling direction: up or down")
	ratio := pflag.IntP("ratio", "r", 2, "Ratio: 1, 2, 4, 8, or 16 (16 is FIR-only)")
	precision := pflag.IntP("precision", "p", 96, "Target stopband attenuation in dB: 48, 72, 96, 120, or 144")
	kind := pflag.StringP("kind", "k", "iir", "Filter kind: fir or iir")
	sse := pflag.Bool("sse", true, "Prefer the 4-wide IIR all-pass layout when available")
	freq := pflag.Float64P("freq", "f", 1000, "Test sine frequency in Hz, at the base rate")
	baseRate := pflag.Float64P("base-rate", "b", 44100, "Base sample rate in Hz")
	blockSize := pflag.IntP("block", "n", 1024, "Input block size, in samples at the engine's base rate")
	verbose := pflag.BoolP("verbose", "v", false, "Run and report the scalar/SIMD self-check")
	pflag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	var dir hiir.Direction
	switch *direction {
	case "up":
		dir = hiir.Up
	case "down":
		dir = hiir.Down
	default:
		logger.Fatalf("unknown -direction %q (want up or down)", *direction)
	}

	var k hiir.Kind
	switch *kind {
	case "fir":
		k = hiir.KindFIR
	case "iir":
		k = hiir.KindIIR
	default:
		logger.Fatalf("unknown -kind %q (want fir or iir)", *kind)
	}

	prec := hiir.FindPrecisionForBits(bitsForDB(*precision))

	if *verbose {
		ok := hiir.TestFilterImpl(true)
		logger.Info("scalar/SIMD self-check", "passed", ok)
	}

	engine := hiir.New(dir, *ratio, prec, *sse, k)
	logger.Info("engine constructed",
		"direction", dir,
		"ratio", *ratio,
		"precision", prec,
		"kind", k,
		"sse_enabled", engine.SSEEnabled(),
		"order", engine.Order(),
		"delay_samples", engine.Delay(),
	)

	in := make([]float32, *blockSize)
	w := 2 * math.Pi * *freq / *baseRate
	for i := range in {
		in[i] = float32(math.Sin(w * float64(i)))
	}

	var out []float32
	var outRate float64
	switch dir {
	case hiir.Up:
		out = make([]float32, *blockSize * *ratio)
		outRate = *baseRate * float64(*ratio)
	case hiir.Down:
		out = make([]float32, *blockSize / *ratio)
		outRate = *baseRate / float64(*ratio)
	}

	engine.ProcessBlock(out, in)

	maxErr := steadyStateError(out, *freq, outRate, engine.Delay())
	logger.Info("resample complete",
		"in_samples", len(in),
		"out_samples", len(out),
		"out_rate", outRate,
		"max_error", maxErr,
		"max_error_db", 20*math.Log10(maxErr+1e-300),
	)
}

// bitsForDB maps a requested dB target back onto the bit-depth grid
// FindPrecisionForBits expects, so the CLI can accept the more
// intuitive "dB" vocabulary while still routing through the documented
// facade helper.
func bitsForDB(db int) int {
	switch {
	case db <= 48:
		return 8
	case db <= 72:
		return 12
	case db <= 96:
		return 16
	case db <= 120:
		return 20
	default:
		return 24
	}
}

// steadyStateError compares out against the analytic sine it should
// carry once the engine's group delay worth of samples have flushed,
// per spec.md §8 scenarios 1-2, and returns the max absolute error over
// the remaining steady-state samples.
func steadyStateError(out []float32, freq, outRate, delaySamples float64) float64 {
	skip := int(math.Ceil(delaySamples)) + 1
	if skip >= len(out) {
		return 0
	}
	w := 2 * math.Pi * freq / outRate
	maxErr := 0.0
	for i := skip; i < len(out); i++ {
		want := math.Sin(w * (float64(i) - delaySamples))
		got := float64(out[i])
		if d := math.Abs(got - want); d > maxErr {
			maxErr = d
		}
	}
	return maxErr
}
