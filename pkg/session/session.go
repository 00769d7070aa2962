package session

import (
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/c9s/chartdesk/pkg/annotation"
	chartv1 "github.com/c9s/chartdesk/pkg/chart/v1"
	"github.com/c9s/chartdesk/pkg/datasource/csvsource"
	"github.com/c9s/chartdesk/pkg/metrics"
	"github.com/c9s/chartdesk/pkg/types"
)

var log = logrus.WithField("component", "session")

// ErrNotLoaded is returned by the operations that need bars before any file was loaded.
var ErrNotLoaded = errors.New("no file loaded")

// Options are the initial view settings of a new session.
type Options struct {
	Width, Height int

	Mode      types.ChartMode
	Selection types.IndicatorSelection
	Chart     chartv1.Options
}

func DefaultOptions() Options {
	return Options{
		Width:     1200,
		Height:    600,
		Mode:      types.ChartModeCandlestick,
		Selection: types.NewIndicatorSelection(types.IndicatorSMA20),
		Chart:     chartv1.DefaultOptions(),
	}
}

// Session is one viewing session: the loaded bars, the view settings and the annotation layer.
// A new load replaces the bars and the shapes wholesale.
type Session struct {
	ID string

	mu sync.Mutex

	name      string
	loadedAt  time.Time
	bars      types.BarSlice
	report    *csvsource.ParseReport
	timeRange types.TimeRange
	mode      types.ChartMode
	selection types.IndicatorSelection

	options Options
	engine  *annotation.Engine
	events  *EventHub
}

func New(id string, options Options) *Session {
	s := &Session{
		ID:        id,
		timeRange: types.TimeRangeAll,
		mode:      options.Mode,
		selection: options.Selection,
		options:   options,
		events:    NewEventHub(),
	}

	s.engine = annotation.NewEngine(float64(options.Width), float64(options.Height), s.events)
	s.engine.OnCommit(func(shape annotation.Shape) {
		metrics.CommittedShapesMetrics.WithLabelValues(string(shape.Kind)).Inc()
	})
	s.engine.OnReset(func() {
		metrics.AnnotationResetsMetrics.Inc()
	})
	return s
}

// Events is the hub the annotation presenter requests are published to.
func (s *Session) Events() *EventHub {
	return s.events
}

// Load validates the file name, parses the text and replaces the session data.
// The time range is picked from the span of the new bars.
func (s *Session) Load(name, text string) (*csvsource.ParseReport, error) {
	if err := csvsource.ValidateFileName(name); err != nil {
		metrics.ObserveLoad(0, 0, err)
		return nil, err
	}

	report, err := csvsource.ParseWithReport(text)
	if err != nil {
		metrics.ObserveLoad(0, 0, err)
		return nil, errors.Wrapf(err, "unable to load %s", name)
	}
	metrics.ObserveLoad(len(report.Bars), len(report.Skipped), nil)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.name = name
	s.loadedAt = time.Now()
	s.bars = report.Bars
	s.report = report
	s.timeRange = types.AutoTimeRange(report.Bars)
	s.engine.Reset()

	log.Infof("session %s loaded %s: %d bars, %d skipped rows, range %s",
		s.ID, name, len(report.Bars), len(report.Skipped), s.timeRange)
	return report, nil
}

func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *Session) Report() *csvsource.ParseReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

func (s *Session) SetTimeRange(r types.TimeRange) {
	s.mu.Lock()
	s.timeRange = r
	s.mu.Unlock()
}

func (s *Session) TimeRange() types.TimeRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeRange
}

func (s *Session) SetMode(mode types.ChartMode) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
}

func (s *Session) Mode() types.ChartMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Session) SetSelection(selection types.IndicatorSelection) {
	s.mu.Lock()
	s.selection = selection
	s.mu.Unlock()
}

// ToggleIndicator flips one overlay and returns the new selection.
func (s *Session) ToggleIndicator(kind types.IndicatorKind) types.IndicatorSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = s.selection.Toggle(kind)
	return s.selection
}

func (s *Session) Selection() types.IndicatorSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// Bars returns the bars inside the current time range.
func (s *Session) Bars() types.BarSlice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bars.Window(s.timeRange)
}

// AllBars returns every loaded bar regardless of the time range.
func (s *Session) AllBars() types.BarSlice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bars
}

// View is a one-off override of the session's view settings. Zero fields keep the session value.
type View struct {
	TimeRange types.TimeRange
	Mode      types.ChartMode
	Selection types.IndicatorSelection

	// Indicators marks Selection as set, so that an empty selection can be requested
	Indicators bool
}

// RenderModel filters the bars by the current time range and builds the chart description.
func (s *Session) RenderModel() (*chartv1.RenderModel, error) {
	return s.RenderModelWith(View{})
}

func (s *Session) RenderModelWith(view View) (*chartv1.RenderModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderModel(view)
}

func (s *Session) renderModel(view View) (*chartv1.RenderModel, error) {
	if len(s.bars) == 0 {
		return nil, ErrNotLoaded
	}

	timeRange, mode, selection := s.timeRange, s.mode, s.selection
	if view.TimeRange != "" {
		timeRange = view.TimeRange
	}
	if view.Mode != "" {
		mode = view.Mode
	}
	if view.Indicators {
		selection = view.Selection
	}

	m := chartv1.BuildRenderModel(s.bars.Window(timeRange), selection, mode, s.options.Chart)
	if m.Degeneracy != nil {
		metrics.DegenerateRangeMetrics.Inc()
	}
	return m, nil
}

// RenderChart draws the chart of the current view with the annotation layer on top.
func (s *Session) RenderChart(w io.Writer, view View, format chartv1.Format, width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer metrics.ObserveRender("chart", string(format), time.Now())

	m, err := s.renderModel(view)
	if err != nil {
		return err
	}

	if width <= 0 || height <= 0 {
		width, height = s.options.Width, s.options.Height
	}

	c := m.Chart(width, height)
	c.Elements = append(c.Elements, s.engine.Element())
	return errors.Wrap(c.Render(format.RendererProvider(), w), "unable to render session chart")
}

// RenderVolume draws the volume bars of the current time range.
func (s *Session) RenderVolume(w io.Writer, format chartv1.Format, width, height int) error {
	defer metrics.ObserveRender("volume", string(format), time.Now())
	return chartv1.RenderVolume(w, s.Bars(), format, width, height)
}

// RenderAnnotations draws the annotation layer alone.
func (s *Session) RenderAnnotations(w io.Writer, format chartv1.Format, width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer metrics.ObserveRender("annotations", string(format), time.Now())
	return s.engine.Overlay(w, format, width, height)
}

// Tooltip returns the tooltip of the bar at index within the current view.
func (s *Session) Tooltip(index int) (chartv1.Tooltip, bool, error) {
	m, err := s.RenderModel()
	if err != nil {
		return chartv1.Tooltip{}, false, err
	}

	t, ok := m.Tooltip(index)
	return t, ok, nil
}

// Annotate runs fn with the annotation engine while holding the session lock, so that
// events are applied in delivery order.
func (s *Session) Annotate(fn func(e *annotation.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}

// Shapes returns the committed annotation shapes.
func (s *Session) Shapes() []annotation.Shape {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Shapes()
}

// ResetAnnotations clears the shapes and the active tool.
func (s *Session) ResetAnnotations() {
	s.Annotate(func(e *annotation.Engine) {
		e.Reset()
	})
}

// AnnotationSnapshot is the observable state of the annotation layer.
type AnnotationSnapshot struct {
	State   annotation.State    `json:"state"`
	Tool    annotation.ToolMode `json:"tool"`
	Shapes  []annotation.Shape  `json:"shapes"`
	Preview *annotation.Shape   `json:"preview,omitempty"`
	Anchor  *types.Point        `json:"anchor,omitempty"`
}

// Snapshot captures the annotation layer.
func (s *Session) Snapshot() AnnotationSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.engine)
}

// AnnotateSnapshot applies fn like Annotate and captures the resulting state under the same lock.
func (s *Session) AnnotateSnapshot(fn func(e *annotation.Engine) error) (AnnotationSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn(s.engine)
	return snapshot(s.engine), err
}

func snapshot(e *annotation.Engine) AnnotationSnapshot {
	snap := AnnotationSnapshot{
		State:  e.State(),
		Tool:   e.Tool(),
		Shapes: e.Shapes(),
	}

	if preview, ok := e.Preview(); ok {
		snap.Preview = &preview
	}

	if anchor, ok := e.CaptureAnchor(); ok {
		snap.Anchor = &anchor
	}

	return snap
}
