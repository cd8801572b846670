package layout

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linearMeasurer scales width with font size, like a real font.
type linearMeasurer struct{ perPoint float64 }

func (l linearMeasurer) MeasureText(text string, size float64) float64 {
	return float64(len([]rune(text))) * size * l.perPoint
}

// countingMeasurer records how often it was asked.
type countingMeasurer struct {
	inner TextMeasurer
	calls int
}

func (c *countingMeasurer) MeasureText(text string, size float64) float64 {
	c.calls++
	return c.inner.MeasureText(text, size)
}

// ─── FitTitle Tests ────────────────────────────────────────

func TestFitTitle_ShortTitleKeepsMaxSize(t *testing.T) {
	size, width := FitTitle("Rifa", 960, 28, 64, 2, linearMeasurer{perPoint: 0.6})
	assert.Equal(t, 64.0, size)
	assert.InDelta(t, 4*64*0.6, width, 0.001)
}

func TestFitTitle_ShrinksUntilFit(t *testing.T) {
	title := strings.Repeat("x", 30)
	// 30 chars * size * 0.6 <= 960  =>  size <= 53.33, stepping by 2 from 64 gives 52.
	size, width := FitTitle(title, 960, 28, 64, 2, linearMeasurer{perPoint: 0.6})
	assert.Equal(t, 52.0, size)
	assert.LessOrEqual(t, width, 960.0)
}

func TestFitTitle_LongTitleTerminatesAtMin(t *testing.T) {
	title := strings.Repeat("W", 200)
	m := &countingMeasurer{inner: linearMeasurer{perPoint: 0.6}}

	size, width := FitTitle(title, 1080-2*60, 28, 64, 2, m)
	assert.Equal(t, 28.0, size)
	assert.Greater(t, width, 960.0, "title overflows but is still accepted")
	assert.Equal(t, (64-28)/2+1, m.calls)
}

func TestFitTitle_EstimateIsSizeIndependent(t *testing.T) {
	title := strings.Repeat("a", 200)
	size, width := FitTitle(title, 960, 28, 64, 2, EstimateMeasurer{CharWidth: 24})
	assert.GreaterOrEqual(t, size, 28.0)
	assert.Equal(t, 28.0, size)
	assert.Equal(t, 4800.0, width)
}

func TestFitTitle_BadParameters(t *testing.T) {
	title := strings.Repeat("a", 200)
	m := EstimateMeasurer{}

	size, _ := FitTitle(title, 960, 28, 64, 0, m)
	assert.Equal(t, 28.0, size, "zero step falls back to default")

	size, _ = FitTitle(title, 960, 40, 30, 2, m)
	assert.Equal(t, 40.0, size, "max below min is raised to min")

	size, _ = FitTitle(title, 960, 0, 10, 3, m)
	assert.GreaterOrEqual(t, size, 1.0)
}

func TestFitTitle_NonFiniteMaxTerminates(t *testing.T) {
	title := strings.Repeat("a", 200)

	size, _ := FitTitle(title, 960, 28, math.Inf(1), 2, EstimateMeasurer{})
	assert.Equal(t, 28.0, size)

	size, _ = FitTitle(title, 960, 28, math.NaN(), 2, EstimateMeasurer{})
	assert.Equal(t, 28.0, size)

	size, _ = FitTitle(title, 960, 28, 1e300, 2, EstimateMeasurer{})
	assert.Equal(t, 28.0, size)
}

func TestFitTitle_OddStepClampsToMin(t *testing.T) {
	size, _ := FitTitle(strings.Repeat("a", 200), 960, 28, 64, 5, EstimateMeasurer{})
	assert.Equal(t, 28.0, size)
}

// ─── Compute Tests ─────────────────────────────────────────

func TestCompute_DefaultGrid(t *testing.T) {
	g, err := Compute(DefaultSpec("Number Board"), EstimateMeasurer{CharWidth: 24})
	require.NoError(t, err)

	// (1080 - 120 - 9*16) / 10
	assert.InDelta(t, 81.6, g.CellSize, 0.0001)
	assert.InDelta(t, 960.0, g.GridWidth, 0.0001)
	assert.InDelta(t, 60.0, g.GridLeft, 0.0001)
	assert.Equal(t, 30.0, g.TitlePos.Y)
	assert.InDelta(t, 110.0, g.GridTop, 0.0001)

	require.Len(t, g.Cells, 10)
	for _, row := range g.Cells {
		require.Len(t, row, 10)
	}
	first := g.Cells[0][0]
	last := g.Cells[9][9]
	assert.InDelta(t, g.GridLeft, first.X, 0.0001)
	assert.InDelta(t, g.GridLeft+g.GridWidth, last.MaxX(), 0.0001)
	assert.InDelta(t, g.GridTop+g.GridHeight, last.MaxY(), 0.0001)
	assert.Equal(t, g.Cells[3][7], g.CellAt(37))
}

func TestCompute_GridCenteredIndependentOfMargin(t *testing.T) {
	spec := DefaultSpec("x")
	spec.Margin = 45
	spec.Gap = 7
	g, err := Compute(spec, nil)
	require.NoError(t, err)

	leftSpace := g.GridLeft
	rightSpace := spec.CanvasWidth - (g.GridLeft + g.GridWidth)
	assert.InDelta(t, leftSpace, rightSpace, 1.0)
}

func TestCompute_TitleCentered(t *testing.T) {
	g, err := Compute(DefaultSpec("ABCD"), EstimateMeasurer{CharWidth: 24})
	require.NoError(t, err)
	assert.Equal(t, 96.0, g.TitleWidth)
	assert.Equal(t, 492.0, g.TitlePos.X)
}

func TestCompute_LogoPushesTitleDown(t *testing.T) {
	spec := DefaultSpec("Title")
	spec.LogoHeight = 120
	g, err := Compute(spec, nil)
	require.NoError(t, err)
	assert.Equal(t, 30.0+120+20, g.TitlePos.Y)
	assert.Equal(t, g.TitlePos.Y+80, g.GridTop)
}

func TestCompute_GuideAndLegend(t *testing.T) {
	g, err := Compute(DefaultSpec("Title"), nil)
	require.NoError(t, err)

	assert.InDelta(t, g.GridLeft-12, g.Guide.X, 0.0001)
	assert.InDelta(t, g.GridTop-12, g.Guide.Y, 0.0001)
	assert.InDelta(t, g.GridWidth+24, g.Guide.W, 0.0001)

	require.Len(t, g.Legend, 2)
	avail, sold := g.Legend[0], g.Legend[1]
	assert.Equal(t, "Available", avail.Caption)
	assert.False(t, avail.Sold)
	assert.Equal(t, "Sold", sold.Caption)
	assert.True(t, sold.Sold)
	assert.InDelta(t, 260.0, sold.Box.X-avail.Box.X, 0.0001)
	assert.Equal(t, avail.Box.X+40, avail.TextPos.X)
	assert.Greater(t, avail.Box.Y, g.GridTop+g.GridHeight)
	assert.LessOrEqual(t, g.Bottom(), 1580.0)
}

func TestCompute_Degenerate(t *testing.T) {
	cases := map[string]func(*Spec){
		"zero width":      func(s *Spec) { s.CanvasWidth = 0 },
		"negative height": func(s *Spec) { s.CanvasHeight = -5 },
		"no columns":      func(s *Spec) { s.Columns = 0 },
		"no rows":         func(s *Spec) { s.Rows = 0 },
		"margins too big": func(s *Spec) { s.CanvasWidth = 200; s.Margin = 100 },
		"gaps too big":    func(s *Spec) { s.CanvasWidth = 300; s.Margin = 10; s.Gap = 40 },
		"too short":       func(s *Spec) { s.CanvasHeight = 400 },
		"legend cut off":  func(s *Spec) { s.CanvasHeight = 1100 },
		"tall logo":       func(s *Spec) { s.LogoHeight = 600 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			spec := DefaultSpec("x")
			mutate(&spec)
			_, err := Compute(spec, nil)
			assert.True(t, errors.Is(err, ErrDegenerateCanvas), "got %v", err)
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	spec := DefaultSpec("Number Board - Raffle 2025-01-01 (Rifas Blue)")
	a, err := Compute(spec, linearMeasurer{perPoint: 0.55})
	require.NoError(t, err)
	b, err := Compute(spec, linearMeasurer{perPoint: 0.55})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
