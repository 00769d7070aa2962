package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/c9s/chartdesk/pkg/annotation/mocks"
	"github.com/c9s/chartdesk/pkg/types"
)

func pt(x, y float64) types.Point {
	return types.NewPoint(x, y)
}

func drag(e *Engine, from, to types.Point) {
	e.PointerDown(from)
	e.PointerMove(types.NewPoint((from.X+to.X)/2, (from.Y+to.Y)/2))
	e.PointerUp(to)
}

func TestEngine_Rectangle(t *testing.T) {
	e := NewEngine(800, 600, nil)
	e.SetTool(ToolRectangle)

	e.PointerDown(pt(10, 10))
	assert.Equal(t, StateDrawing, e.State())

	e.PointerMove(pt(30, 30))
	preview, ok := e.Preview()
	require.True(t, ok)
	assert.Equal(t, NewRectangle(pt(10, 10), pt(30, 30)), preview)
	assert.Empty(t, e.Shapes(), "preview is not committed")

	e.PointerUp(pt(50, 50))

	shapes := e.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, ShapeRectangle, shapes[0].Kind)
	assert.Equal(t, pt(10, 10), shapes[0].Start)
	assert.Equal(t, pt(50, 50), shapes[0].End)
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, ToolRectangle, e.Tool(), "tool stays active after a commit")
}

func TestEngine_ToolSwitchDiscardsGesture(t *testing.T) {
	e := NewEngine(800, 600, nil)
	e.SetTool(ToolLine)
	drag(e, pt(0, 0), pt(100, 100))
	require.Len(t, e.Shapes(), 1)

	e.SetTool(ToolRectangle)
	e.PointerDown(pt(10, 10))
	e.PointerMove(pt(40, 40))
	e.SetTool(ToolFibonacci)

	assert.Equal(t, StateIdle, e.State())
	_, ok := e.Preview()
	assert.False(t, ok)

	e.PointerUp(pt(50, 50))
	assert.Equal(t, []Shape{NewLine(pt(0, 0), pt(100, 100))}, e.Shapes())
}

func TestEngine_HorizontalLineSpansSurface(t *testing.T) {
	e := NewEngine(800, 600, nil)
	e.SetTool(ToolHorizontal)
	drag(e, pt(120, 40), pt(300, 90))

	shapes := e.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, pt(0, 40), shapes[0].Start)
	assert.Equal(t, pt(800, 40), shapes[0].End)
}

func TestEngine_PointerLeaveCommits(t *testing.T) {
	e := NewEngine(800, 600, nil)
	e.SetTool(ToolFibonacci)
	e.PointerDown(pt(10, 100))
	e.PointerLeave(pt(200, 300))

	assert.Equal(t, []Shape{NewFibonacci(pt(10, 100), pt(200, 300))}, e.Shapes())

	// no gesture in progress
	e.PointerLeave(pt(1, 1))
	assert.Len(t, e.Shapes(), 1)
}

func TestEngine_NoToolIgnoresPointer(t *testing.T) {
	e := NewEngine(800, 600, nil)
	drag(e, pt(10, 10), pt(50, 50))
	assert.Equal(t, StateIdle, e.State())
	assert.Empty(t, e.Shapes())
}

func TestEngine_TextCommitOnEnter(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	presenter := mocks.NewMockPresenter(mockCtrl)
	presenter.EXPECT().RequestTextCapture(pt(20, 30)).Times(1)
	presenter.EXPECT().DismissTextCapture().Times(1)
	presenter.EXPECT().Redraw().AnyTimes()

	e := NewEngine(800, 600, presenter)
	e.SetTool(ToolText)
	e.PointerDown(pt(20, 30))

	assert.Equal(t, StateCapturingText, e.State())
	anchor, ok := e.CaptureAnchor()
	require.True(t, ok)
	assert.Equal(t, pt(20, 30), anchor)

	assert.False(t, e.CaptureKey("R", "R"))
	assert.True(t, e.CaptureKey(KeyEnter, "Resistance"))

	// the input losing focus after the commit must not commit or dismiss again
	e.CaptureBlur("Resistance")

	shapes := e.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, ShapeText, shapes[0].Kind)
	assert.Equal(t, "Resistance", shapes[0].Text)
	assert.Equal(t, pt(20, 30), shapes[0].Anchor())
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, ToolText, e.Tool())
}

func TestEngine_TextEscapeCommitsNothing(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	presenter := mocks.NewMockPresenter(mockCtrl)
	presenter.EXPECT().RequestTextCapture(gomock.Any()).Times(1)
	presenter.EXPECT().DismissTextCapture().Times(1)
	presenter.EXPECT().Redraw().AnyTimes()

	e := NewEngine(800, 600, presenter)
	e.SetTool(ToolText)
	e.PointerDown(pt(20, 30))

	assert.True(t, e.CaptureKey(KeyEscape, "Resistance"))
	e.CaptureBlur("Resistance")
	assert.False(t, e.CaptureKey(KeyEnter, "Resistance"))

	assert.Empty(t, e.Shapes())
	assert.Equal(t, StateIdle, e.State())
}

func TestEngine_TextCommitOnBlur(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	presenter := mocks.NewMockPresenter(mockCtrl)
	presenter.EXPECT().RequestTextCapture(pt(5, 6)).Times(1)
	presenter.EXPECT().DismissTextCapture().Times(1)
	presenter.EXPECT().Redraw().AnyTimes()

	e := NewEngine(800, 600, presenter)
	e.SetTool(ToolText)
	e.PointerDown(pt(5, 6))
	e.CaptureBlur("  support  ")
	assert.False(t, e.CaptureKey(KeyEnter, "support"))

	shapes := e.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, "support", shapes[0].Text)
}

func TestEngine_TextEmptyContent(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	presenter := mocks.NewMockPresenter(mockCtrl)
	presenter.EXPECT().RequestTextCapture(gomock.Any()).Times(1)
	presenter.EXPECT().DismissTextCapture().Times(1)
	presenter.EXPECT().Redraw().AnyTimes()

	e := NewEngine(800, 600, presenter)
	e.SetTool(ToolText)
	e.PointerDown(pt(5, 6))

	assert.False(t, e.CaptureKey(KeyEnter, "   "), "empty content keeps the capture open")
	assert.Equal(t, StateCapturingText, e.State())

	e.CaptureBlur("")
	assert.Equal(t, StateIdle, e.State())
	assert.Empty(t, e.Shapes())
}

func TestEngine_TextCaptureDismissedBySecondClick(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	presenter := mocks.NewMockPresenter(mockCtrl)
	gomock.InOrder(
		presenter.EXPECT().RequestTextCapture(pt(1, 1)),
		presenter.EXPECT().DismissTextCapture(),
		presenter.EXPECT().RequestTextCapture(pt(2, 2)),
		presenter.EXPECT().DismissTextCapture(),
	)
	presenter.EXPECT().Redraw().AnyTimes()

	e := NewEngine(800, 600, presenter)
	e.SetTool(ToolText)
	e.PointerDown(pt(1, 1))
	e.PointerDown(pt(2, 2))

	anchor, ok := e.CaptureAnchor()
	require.True(t, ok)
	assert.Equal(t, pt(2, 2), anchor)

	e.SetTool(ToolLine)
	assert.Equal(t, StateIdle, e.State())
	assert.Empty(t, e.Shapes())
}

func TestEngine_KeyDown(t *testing.T) {
	e := NewEngine(800, 600, nil)

	e.KeyDown("l")
	assert.Equal(t, ToolLine, e.Tool())
	e.KeyDown("l")
	assert.Equal(t, ToolNone, e.Tool())

	e.KeyDown("r")
	assert.Equal(t, ToolRectangle, e.Tool())
	e.KeyDown("f")
	assert.Equal(t, ToolFibonacci, e.Tool())
	e.KeyDown("x")
	assert.Equal(t, ToolFibonacci, e.Tool())

	drag(e, pt(0, 0), pt(10, 10))
	require.Len(t, e.Shapes(), 1)

	// escape with an active tool only clears the tool
	e.KeyDown(KeyEscape)
	assert.Equal(t, ToolNone, e.Tool())
	assert.Len(t, e.Shapes(), 1)

	// escape outside any tool or gesture resets the session
	e.KeyDown(KeyEscape)
	assert.Empty(t, e.Shapes())
}

func TestEngine_EscapeDuringGesture(t *testing.T) {
	e := NewEngine(800, 600, nil)
	e.SetTool(ToolLine)
	drag(e, pt(0, 0), pt(10, 10))

	e.PointerDown(pt(20, 20))
	e.PointerMove(pt(30, 30))
	e.KeyDown(KeyEscape)

	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, ToolNone, e.Tool())
	assert.Len(t, e.Shapes(), 1)
}

func TestEngine_KeysIgnoredWhileCapturing(t *testing.T) {
	e := NewEngine(800, 600, nil)
	e.KeyDown("t")
	e.PointerDown(pt(10, 10))

	e.KeyDown("l")
	e.KeyDown(KeyEscape)
	assert.Equal(t, ToolText, e.Tool())
	assert.Equal(t, StateCapturingText, e.State())
}

func TestEngine_ResetAndCallbacks(t *testing.T) {
	e := NewEngine(800, 600, nil)

	var committed []Shape
	var resets int
	e.OnCommit(func(shape Shape) { committed = append(committed, shape) })
	e.OnReset(func() { resets++ })

	e.SetTool(ToolLine)
	drag(e, pt(0, 0), pt(10, 10))
	drag(e, pt(5, 5), pt(15, 15))
	assert.Len(t, committed, 2)

	e.Reset()
	assert.Equal(t, 1, resets)
	assert.Empty(t, e.Shapes())
	assert.Equal(t, ToolNone, e.Tool())
	assert.Equal(t, committed, []Shape{NewLine(pt(0, 0), pt(10, 10)), NewLine(pt(5, 5), pt(15, 15))})
}

func TestEngine_ShapesIsACopy(t *testing.T) {
	e := NewEngine(800, 600, nil)
	e.SetTool(ToolLine)
	drag(e, pt(0, 0), pt(10, 10))

	shapes := e.Shapes()
	shapes[0].Start = pt(99, 99)
	assert.Equal(t, pt(0, 0), e.Shapes()[0].Start)
}

func TestParseToolMode(t *testing.T) {
	tests := []struct {
		input   string
		want    ToolMode
		wantErr bool
	}{
		{"", ToolNone, false},
		{"line", ToolLine, false},
		{" Rectangle ", ToolRectangle, false},
		{"fibonacci", ToolFibonacci, false},
		{"brush", ToolNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseToolMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewText(t *testing.T) {
	_, err := NewText(pt(0, 0), "  \t")
	assert.ErrorIs(t, err, ErrEmptyText)

	s, err := NewText(pt(1, 2), " Resistance ")
	assert.NoError(t, err)
	assert.Equal(t, "Resistance", s.Text)
	assert.NoError(t, s.Validate())

	assert.Error(t, Shape{Kind: "circle"}.Validate())
}
