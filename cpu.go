package hiir

// sseAvailable reports whether the 4-wide all-pass layout can be
// selected on this host. It is overridden per-architecture by init()
// functions in cpu_amd64.go (gated on cpu.X86.HasSSE2) and cpu_arm64.go
// (always true).
var sseAvailable = func() bool { return false }

// SSEAvailable reports whether the host supports the 4-wide IIR
// all-pass layout. It does not depend on any particular Engine
// instance; Engine.SSEEnabled reports whether a given instance actually
// uses it.
func SSEAvailable() bool {
	return sseAvailable()
}
