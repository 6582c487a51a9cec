package systems

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlatGrainsRejectsPartialGrain(t *testing.T) {
	_, err := NewFlatGrains(make([]float32, 6), 0.95, 10, 10)
	if !errors.Is(err, ErrFlatBuffer) {
		t.Errorf("NewFlatGrains() error = %v, want ErrFlatBuffer", err)
	}
}

func TestFlatGrainsNext(t *testing.T) {
	buf := []float32{
		5, 5, 1, -1, // drifts
		0.5, 9.5, -1, 1, // crosses left and top
		9.5, 0.5, 1, -1, // crosses right and bottom
	}
	f, err := NewFlatGrains(buf, 0.5, 10, 10)
	require.NoError(t, err)
	require.Equal(t, 3, f.Len())

	f.Next()

	assert.Equal(t, []float32{
		6, 4, 0.5, -0.5,
		0.5, 9.5, 0.5, -0.5,
		9.5, 0.5, -0.5, 0.5,
	}, f.Buffer())
}
