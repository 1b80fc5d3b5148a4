package presentation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurve_Rejects(t *testing.T) {
	_, err := NewCurve([]float64{0}, []float64{1})
	assert.Error(t, err)

	_, err = NewCurve([]float64{0, 1}, []float64{1})
	assert.Error(t, err)

	_, err = NewCurve([]float64{0, 2, 1}, []float64{1, 1, 1})
	assert.Error(t, err)
}

func TestCurve_Eval(t *testing.T) {
	c, err := NewCurve([]float64{0, 10, 20}, []float64{0, 1, 0.5})
	require.NoError(t, err)

	tests := []struct {
		x, want float64
	}{
		{-100, 0},
		{0, 0},
		{5, 0.5},
		{10, 1},
		{15, 0.75},
		{20, 0.5},
		{1e9, 0.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, c.Eval(tt.x), 1e-9, "x=%v", tt.x)
	}
}

func TestCurve_ZeroWidthSegment(t *testing.T) {
	c, err := NewCurve([]float64{0, 5, 5, 10}, []float64{0, 1, 3, 3})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, c.Eval(2.5), 1e-9)
	assert.InDelta(t, 1, c.Eval(5), 1e-9)
	assert.InDelta(t, 3, c.Eval(7), 1e-9)
}

func TestCurve_EvalNaN(t *testing.T) {
	c, err := NewCurve([]float64{0, 10}, []float64{1, 0})
	require.NoError(t, err)

	assert.Equal(t, 1.0, c.Eval(math.NaN()))
}

func TestTransforms_NegativeCount(t *testing.T) {
	d := NewDriver(100)

	assert.NotPanics(t, func() {
		assert.Empty(t, d.Transforms(-1))
	})
}

func TestTransform_ClampsBeforeFirstBreakpoint(t *testing.T) {
	d := NewDriver(100)
	d.Scroll(-500)

	for i := 0; i < 10; i++ {
		tr := d.Transform(i)
		assert.Equal(t, 1.0, tr.Scale, "index %d", i)
		assert.Equal(t, 1.0, tr.Opacity, "index %d", i)
	}
}

func TestTransform_ClampsAfterLastBreakpoint(t *testing.T) {
	d := NewDriver(100)
	d.Scroll(1e7)

	for i := 0; i < 10; i++ {
		tr := d.Transform(i)
		assert.Equal(t, 0.0, tr.Scale, "index %d", i)
		assert.Equal(t, 0.0, tr.Opacity, "index %d", i)
	}
}

func TestTransform_ShrinksWhileScrollingPast(t *testing.T) {
	d := NewDriver(100)

	// 2-kartochka: top=200, scale 200..400, opacity 200..250
	d.Scroll(200)
	assert.Equal(t, ItemTransform{Index: 2, Scale: 1, Opacity: 1}, d.Transform(2))

	d.Scroll(225)
	tr := d.Transform(2)
	assert.InDelta(t, 0.875, tr.Scale, 1e-9)
	assert.InDelta(t, 0.5, tr.Opacity, 1e-9)

	d.Scroll(300)
	tr = d.Transform(2)
	assert.InDelta(t, 0.5, tr.Scale, 1e-9)
	assert.Equal(t, 0.0, tr.Opacity)

	// pastdagi kartochkalarga tegmaydi
	assert.Equal(t, ItemTransform{Index: 5, Scale: 1, Opacity: 1}, d.Transform(5))
}

func TestTransform_FirstItem(t *testing.T) {
	// index 0 da top=0, 0 kenglikdagi bo'lak paydo bo'ladi
	assert.Equal(t, 1.0, TransformAt(0, 0, 100).Scale)
	assert.InDelta(t, 0.75, TransformAt(50, 0, 100).Scale, 1e-9)
	assert.InDelta(t, 0.0, TransformAt(50, 0, 100).Opacity, 1e-9)
}

func TestTransforms_StableAcrossLengthChange(t *testing.T) {
	d := NewDriver(0)
	d.Scroll(130)

	long := d.Transforms(6)
	short := d.Transforms(2)

	require.Len(t, long, 6)
	require.Len(t, short, 2)
	assert.Equal(t, long[:2], short)
	assert.Equal(t, float64(DefaultItemHeight), d.ItemHeight())
	assert.Equal(t, 130.0, d.Offset())
}
