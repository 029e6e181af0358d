package hiir

import "errors"

// Public error values for the hiir package.
var (
	// ErrUnsupportedRatio indicates a ratio that is not a supported
	// power of two for the requested filter kind.
	ErrUnsupportedRatio = errors.New("hiir: unsupported ratio for this filter kind")

	// ErrInvalidDirection indicates a Direction value outside {Up, Down}.
	ErrInvalidDirection = errors.New("hiir: invalid direction")

	// ErrBlockTooLarge indicates a process_block call whose input would
	// overflow the engine's documented maximum block size.
	ErrBlockTooLarge = errors.New("hiir: input block exceeds MaxBlockSamples")

	// ErrBufferOverlap indicates input/output buffers overlap in a
	// pattern not permitted by the block-processing aliasing contract.
	ErrBufferOverlap = errors.New("hiir: input and output buffers overlap illegally")
)
