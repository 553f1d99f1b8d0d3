package ldtkworld

// The editor measures everything from the top-left with Y growing
// downward; the engine wants bottom-left with Y growing upward. Every
// coordinate is converted exactly once, at the lowest level of
// decoding, by the functions in this file.

// InvertY maps a top-left-origin pixel offset into the bottom-left
// frame of a container with the given pixel extent.
func InvertY(y, extent int) int {
	return -y - extent
}

// InvertCell maps a top-left-origin cell row index into the bottom-left
// frame of a grid with the given row count.
func InvertCell(y, rows int) int {
	return rows - y - 1
}

// InvertPivot flips a fractional pivot component. Pivots are
// extent-independent, so 0.5 is a fixed point.
func InvertPivot(p float64) float64 {
	return 1 - p
}

// ReverseRows reorders a flat row-major grid from top-to-bottom rows to
// bottom-to-top rows. Rows keep their internal order; only their
// vertical order flips. The input is left untouched; a non-positive
// width returns a plain copy, and a ragged tail stays one chunk.
func ReverseRows[T any](cells []T, width int) []T {
	out := make([]T, 0, len(cells))
	if width <= 0 {
		return append(out, cells...)
	}
	rows := (len(cells) + width - 1) / width
	for i := rows - 1; i >= 0; i-- {
		end := (i + 1) * width
		if end > len(cells) {
			end = len(cells)
		}
		out = append(out, cells[i*width:end]...)
	}
	return out
}
