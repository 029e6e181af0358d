// Package hiir implements a real-time half-band audio resampling engine.
//
// An Engine converts a mono stream between a base sample rate and an
// integer power-of-two multiple of it (1, 2, 4, 8, and 16 with FIR
// stages only), by cascading 2x half-band stages. Two interchangeable
// stage implementations are available: a symmetric linear-phase FIR
// half-band filter, and a polyphase IIR half-band filter built from a
// chain of all-pass cells (scalar or 4-wide interleaved). Coefficients
// are selected by a target precision expressed in decibels of stopband
// attenuation; see the designer subpackage for how they are computed
// and the tables subpackage for the enumerated (kind, ratio, precision)
// grid served at construction time.
//
// Engine.ProcessBlock performs no heap allocation and is safe to call
// from a real-time audio thread. Separate Engine instances are
// independent and may be driven from different goroutines without
// synchronization; a single Engine must not be driven concurrently.
package hiir
