//go:build amd64

package hiir

import "golang.org/x/sys/cpu"

func init() {
	sseAvailable = func() bool { return cpu.X86.HasSSE2 }
}
