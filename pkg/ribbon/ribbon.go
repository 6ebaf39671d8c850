// Package ribbon turns a sparse list of control frames into a dense, ordered
// list of orthonormal output frames laid along a B-spline through the
// controls. It is the piece a rig uses to drive a joint chain along a spine,
// neck, tail or similar.
//
// A build is a pure function of its inputs. Fatal problems (bad topology,
// invalid config or controls) abort the build. Recoverable per-sample
// problems are returned as diagnostics next to the frames.
package ribbon

import "errors"

var (
	// ErrDegenerateTangent reports a sample whose tangent probe collapsed.
	// The configured aim axis was used instead.
	ErrDegenerateTangent = errors.New("degenerate tangent")
	// ErrDegenerateUp reports a sample whose up vector was parallel to the
	// tangent. The orientation's remaining axis was used instead.
	ErrDegenerateUp = errors.New("degenerate up vector")
	// ErrInvalidConfig reports a configuration that cannot produce frames.
	ErrInvalidConfig = errors.New("invalid ribbon configuration")
	// ErrInvalidControl reports a control frame with non-finite data.
	ErrInvalidControl = errors.New("invalid control frame")
)
