package stickfall

import "math"

// LerpFunc blends two frames by t in [0, 1].
type LerpFunc[T any] func(a, b T, t float64) T

// GenerateInBetweens expands keyframes into a dense sequence of exactly
// (K-1)*perGap+1 frames. Each gap contributes its first keyframe verbatim
// followed by perGap-1 blends at i/perGap; the final keyframe closes the
// sequence. A perGap below 1 is treated as 1.
func GenerateInBetweens[T any](keys []T, perGap int, fn LerpFunc[T]) []T {
	if len(keys) == 0 {
		return nil
	}
	if perGap < 1 {
		perGap = 1
	}
	out := make([]T, 0, (len(keys)-1)*perGap+1)
	for k := 0; k+1 < len(keys); k++ {
		a, b := keys[k], keys[k+1]
		out = append(out, a)
		for i := 1; i < perGap; i++ {
			out = append(out, fn(a, b, float64(i)/float64(perGap)))
		}
	}
	return append(out, keys[len(keys)-1])
}

// FrameTable is an immutable dense frame sequence sampled by a progress value.
type FrameTable[T any] struct {
	frames []T
	lerp   LerpFunc[T]
}

// NewFrameTable precomputes the dense table for keys. Build it once per
// sequence; sampling does not regenerate it.
func NewFrameTable[T any](keys []T, perGap int, fn LerpFunc[T]) *FrameTable[T] {
	return &FrameTable[T]{frames: GenerateInBetweens(keys, perGap, fn), lerp: fn}
}

// Len returns the number of dense frames.
func (ft *FrameTable[T]) Len() int { return len(ft.frames) }

// Frame returns dense frame i.
func (ft *FrameTable[T]) Frame(i int) T { return ft.frames[i] }

// Sample blends the two frames surrounding progress. Progress is clamped to
// [0, 1]. The second result is false for an empty table.
func (ft *FrameTable[T]) Sample(progress float64) (T, bool) {
	var zero T
	switch len(ft.frames) {
	case 0:
		return zero, false
	case 1:
		return ft.frames[0], true
	}
	i, frac := FrameIndex(progress, len(ft.frames))
	return ft.lerp(ft.frames[i], ft.frames[i+1], frac), true
}

// FrameIndex maps progress in [0, 1] onto a table of count frames, returning
// the base index and the blend toward the next frame. The base index never
// exceeds count-2, so progress 1.0 yields (count-2, 1.0).
func FrameIndex(progress float64, count int) (int, float64) {
	if count < 2 {
		return 0, 0
	}
	progress = clamp01(progress)
	pos := progress * float64(count-1)
	i := int(math.Floor(pos))
	if i > count-2 {
		i = count - 2
	}
	return i, pos - float64(i)
}
