package ldtkworld

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestInvertY(t *testing.T) {
	tests := []struct {
		name   string
		y      int
		extent int
		want   int
	}{
		{"origin", 0, 256, -256},
		{"mid", 100, 256, -356},
		{"negative input", -16, 256, -240},
		{"zero extent", 32, 0, -32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InvertY(tt.y, tt.extent))
		})
	}
}

func TestInvertY_Involution(t *testing.T) {
	// Applying the flip twice with the same extent restores the input.
	// The boundary values y=0 and y=extent land on -extent and -2*extent
	// respectively on the first application; the encoding is asymmetric
	// around the origin but the double application still restores them.
	for _, y := range []int{0, 1, 100, 255, 256, -32} {
		assert.Equal(t, y, InvertY(InvertY(y, 256), 256), "y=%d", y)
	}
}

func TestInvertCell(t *testing.T) {
	assert.Equal(t, 2, InvertCell(0, 3))
	assert.Equal(t, 1, InvertCell(1, 3))
	assert.Equal(t, 0, InvertCell(2, 3))

	for _, y := range []int{0, 1, 2, 5, 7} {
		assert.Equal(t, y, InvertCell(InvertCell(y, 8), 8), "y=%d", y)
	}
}

func TestInvertPivot(t *testing.T) {
	assert.Equal(t, 1.0, InvertPivot(0.0))
	assert.Equal(t, 0.0, InvertPivot(1.0))
	assert.Equal(t, 0.5, InvertPivot(0.5), "0.5 is a fixed point")
	assert.Equal(t, 0.75, InvertPivot(0.25))
}

func TestReverseRows(t *testing.T) {
	tests := []struct {
		name  string
		cells []int
		width int
		want  []int
	}{
		{"2x2", []int{1, 0, 0, 1}, 2, []int{0, 1, 1, 0}},
		{"3x2", []int{1, 2, 3, 4, 5, 6}, 3, []int{4, 5, 6, 1, 2, 3}},
		{"single row", []int{7, 8, 9}, 3, []int{7, 8, 9}},
		{"single column", []int{1, 2, 3}, 1, []int{3, 2, 1}},
		{"empty", []int{}, 4, []int{}},
		{"ragged tail", []int{1, 2, 3, 4, 5}, 2, []int{5, 3, 4, 1, 2}},
		{"zero width", []int{1, 2, 3}, 0, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReverseRows(tt.cells, tt.width)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ReverseRows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReverseRows_Involution(t *testing.T) {
	cells := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	twice := ReverseRows(ReverseRows(cells, 4), 4)
	if diff := cmp.Diff(cells, twice); diff != "" {
		t.Errorf("double reversal should restore input (-want +got):\n%s", diff)
	}
}

func TestReverseRows_InputUntouched(t *testing.T) {
	cells := []int{1, 2, 3, 4}
	_ = ReverseRows(cells, 2)
	assert.Equal(t, []int{1, 2, 3, 4}, cells)
}
