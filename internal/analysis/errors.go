package analysis

import "errors"

var (
	// ErrNoFrames indicates an empty frame sequence.
	ErrNoFrames = errors.New("analysis: no recorded frames")

	// ErrSource indicates a source index outside the recorded scene.
	ErrSource = errors.New("analysis: source index out of range")

	// ErrAxis indicates an unrecognized axis tag or name.
	ErrAxis = errors.New("analysis: unknown axis")
)
