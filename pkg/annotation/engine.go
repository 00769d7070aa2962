package annotation

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/c9s/chartdesk/pkg/types"
)

var log = logrus.WithField("component", "annotation")

type State int

const (
	StateIdle State = iota
	StateDrawing
	StateCapturingText
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StateCapturingText:
		return "capturing_text"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for _, state := range []State{StateIdle, StateDrawing, StateCapturingText} {
		if state.String() == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown annotation state %q", text)
}

// Presenter materializes what the engine asks for on the user's side: the text input
// overlay and repaints of the annotation surface.
//
//go:generate mockgen -destination=mocks/mock_presenter.go -package=mocks . Presenter
type Presenter interface {
	RequestTextCapture(anchor types.Point)
	DismissTextCapture()
	Redraw()
}

type nopPresenter struct{}

func (nopPresenter) RequestTextCapture(types.Point) {}
func (nopPresenter) DismissTextCapture()            {}
func (nopPresenter) Redraw()                        {}

// Engine turns pointer and keyboard events into committed shapes for one viewing session.
// It is not safe for concurrent use.
//
//go:generate callbackgen -type Engine
type Engine struct {
	width, height float64

	tool  ToolMode
	state State

	start, current types.Point
	capture        *textCapture

	shapes []Shape

	presenter Presenter

	commitCallbacks []func(shape Shape)
	resetCallbacks  []func()
}

func NewEngine(width, height float64, presenter Presenter) *Engine {
	if presenter == nil {
		presenter = nopPresenter{}
	}

	return &Engine{
		width:     width,
		height:    height,
		tool:      ToolNone,
		state:     StateIdle,
		presenter: presenter,
	}
}

func (e *Engine) SetSize(width, height float64) {
	e.width, e.height = width, height
	e.presenter.Redraw()
}

func (e *Engine) Size() (width, height float64) {
	return e.width, e.height
}

func (e *Engine) Tool() ToolMode {
	return e.tool
}

func (e *Engine) State() State {
	return e.state
}

// Shapes returns a copy of the committed shapes in commit order.
func (e *Engine) Shapes() []Shape {
	shapes := make([]Shape, len(e.shapes))
	copy(shapes, e.shapes)
	return shapes
}

// CaptureAnchor returns where the pending text annotation will be placed.
func (e *Engine) CaptureAnchor() (types.Point, bool) {
	if e.state != StateCapturingText || e.capture == nil {
		return types.Point{}, false
	}
	return e.capture.anchor, true
}

// Preview returns the in-progress shape of the current gesture.
func (e *Engine) Preview() (Shape, bool) {
	if e.state != StateDrawing {
		return Shape{}, false
	}

	kind, ok := e.tool.ShapeKind()
	if !ok {
		return Shape{}, false
	}

	shape, err := NewGestureShape(kind, e.start, e.current, e.width)
	if err != nil {
		return Shape{}, false
	}
	return shape, true
}

func (e *Engine) PointerDown(p types.Point) {
	if e.state == StateCapturingText {
		e.endCapture()
	}

	switch {
	case e.tool == ToolText:
		e.state = StateCapturingText
		e.capture = newTextCapture(p, e.presenter)

	case e.tool.IsGesture() && e.state == StateIdle:
		e.state = StateDrawing
		e.start = p
		e.current = p
	}
}

func (e *Engine) PointerMove(p types.Point) {
	if e.state != StateDrawing {
		return
	}

	e.current = p
	e.presenter.Redraw()
}

func (e *Engine) PointerUp(p types.Point) {
	if e.state != StateDrawing {
		return
	}

	e.current = p
	shape, ok := e.Preview()
	e.state = StateIdle

	if ok {
		e.commit(shape)
	}
	e.presenter.Redraw()
}

// PointerLeave finishes the gesture as if the pointer was released at p.
func (e *Engine) PointerLeave(p types.Point) {
	e.PointerUp(p)
}

// KeyDown handles the keyboard shortcuts outside of text capture.
// Escape cancels the active tool or gesture, and resets the session when there is neither.
func (e *Engine) KeyDown(key string) {
	if e.state == StateCapturingText {
		return
	}

	if tool, ok := ToolForKey(key); ok {
		e.ToggleTool(tool)
		return
	}

	if key != KeyEscape {
		return
	}

	if e.state == StateDrawing || e.tool != ToolNone {
		e.SetTool(ToolNone)
		return
	}

	e.Reset()
}

// SetTool switches the active tool. An uncommitted gesture is discarded, a pending text
// capture is dismissed without committing.
func (e *Engine) SetTool(tool ToolMode) {
	switch e.state {
	case StateDrawing:
		log.Debugf("discard %s gesture from %s", e.tool, e.start)
		e.state = StateIdle
		e.presenter.Redraw()
	case StateCapturingText:
		e.endCapture()
	}

	e.tool = tool
}

// ToggleTool activates the tool, or deactivates it when it is already active.
func (e *Engine) ToggleTool(tool ToolMode) {
	if e.tool == tool {
		e.SetTool(ToolNone)
		return
	}
	e.SetTool(tool)
}

// Reset clears every committed shape and deactivates the tool.
func (e *Engine) Reset() {
	if e.state == StateCapturingText {
		e.endCapture()
	}

	e.state = StateIdle
	e.tool = ToolNone
	e.shapes = nil

	e.EmitReset()
	e.presenter.Redraw()
}

// CaptureKey handles a key typed into the text capture surface holding content.
// It returns true when the capture ended.
func (e *Engine) CaptureKey(key, content string) bool {
	if e.state != StateCapturingText {
		return false
	}

	switch key {
	case KeyEnter:
		if strings.TrimSpace(content) == "" {
			return false
		}
		e.commitCapture(content)
		return true

	case KeyEscape:
		e.endCapture()
		return true
	}

	return false
}

// CaptureBlur handles the capture surface losing focus. Non-empty content is committed.
func (e *Engine) CaptureBlur(content string) {
	if e.state != StateCapturingText {
		return
	}

	if strings.TrimSpace(content) == "" {
		e.endCapture()
		return
	}

	e.commitCapture(content)
}

// Render re-draws the committed shapes and then the preview of the current gesture.
func (e *Engine) Render(r chart.Renderer) {
	for _, shape := range e.shapes {
		shape.Draw(r)
	}

	if preview, ok := e.Preview(); ok {
		preview.Draw(r)
	}
}

// Element adapts the annotation layer into a chart element drawn above the series.
func (e *Engine) Element() chart.Renderable {
	return func(r chart.Renderer, _ chart.Box, _ chart.Style) {
		e.Render(r)
	}
}

func (e *Engine) commitCapture(content string) {
	anchor := e.capture.anchor
	e.endCapture()

	shape, err := NewText(anchor, content)
	if err != nil {
		log.WithError(err).Warn("text annotation not committed")
		return
	}

	e.commit(shape)
	e.presenter.Redraw()
}

func (e *Engine) endCapture() {
	if e.capture != nil {
		e.capture.dismiss()
		e.capture = nil
	}
	e.state = StateIdle
}

func (e *Engine) commit(shape Shape) {
	if err := shape.Validate(); err != nil {
		log.WithError(err).Warnf("invalid shape %s", shape)
		return
	}

	e.shapes = append(e.shapes, shape)
	log.Debugf("committed %s", shape)
	e.EmitCommit(shape)
}
